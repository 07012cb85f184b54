package v1

import (
	"context"
	"testing"
	"time"

	"atm-monitor/models"
)

func TestReportRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepositories(t)
	now := time.Date(2026, 10, 19, 13, 10, 0, 0, time.UTC)

	down, err := BuildReport(models.ReportInput{
		BranchName:        "Bole",
		AtmID:             "B-1",
		AtmStatus:         models.StatusDown,
		DowntimeStart:     "2026-10-19T10:00:00Z",
		DowntimeEnd:       "2026-10-19T11:30:00Z",
		ReasonForDowntime: "HARD_FAULT",
	}, now, 1)
	if err != nil {
		t.Fatal(err)
	}
	up, err := BuildReport(models.ReportInput{BranchName: "Piassa", AtmID: "P-1", AtmStatus: models.StatusUp}, now.Add(2*time.Hour), 1)
	if err != nil {
		t.Fatal(err)
	}
	yesterday, err := BuildReport(models.ReportInput{BranchName: "Bole", AtmID: "B-2", AtmStatus: models.StatusParked}, now.Add(-24*time.Hour), 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []*models.Report{down, up, yesterday} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create(%s) error: %v", r.AtmID, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d rows, want 3", len(all))
	}
	// newest date first, then latest window
	gotOrder := []string{all[0].AtmID, all[1].AtmID, all[2].AtmID}
	if gotOrder[0] != "P-1" || gotOrder[1] != "B-1" || gotOrder[2] != "B-2" {
		t.Errorf("List() order = %v, want [P-1 B-1 B-2]", gotOrder)
	}

	stored := all[1]
	if stored.DowntimeDurationHours == nil || *stored.DowntimeDurationHours != 1.5 {
		t.Errorf("stored duration = %v, want 1.5", stored.DowntimeDurationHours)
	}
	if stored.DowntimeStart == nil || !stored.DowntimeStart.Equal(*down.DowntimeStart) {
		t.Errorf("stored start = %v, want %v", stored.DowntimeStart, down.DowntimeStart)
	}
	if stored.ReportingWindow != "12:00-14:00" || stored.ReportDate != "2026-10-19" {
		t.Errorf("stored window/date = %s %s", stored.ReportingWindow, stored.ReportDate)
	}
	if all[0].DowntimeStart != nil || all[0].DowntimeDurationHours != nil {
		t.Errorf("UP report carries downtime data: %+v", all[0])
	}

	byCreated, err := repo.ListByCreated(ctx)
	if err != nil {
		t.Fatalf("ListByCreated() error: %v", err)
	}
	if byCreated[0].AtmID != "P-1" || byCreated[2].AtmID != "B-2" {
		t.Errorf("ListByCreated() order = %s %s %s", byCreated[0].AtmID, byCreated[1].AtmID, byCreated[2].AtmID)
	}

	today, err := repo.ListByDate(ctx, "2026-10-19")
	if err != nil {
		t.Fatalf("ListByDate() error: %v", err)
	}
	if len(today) != 2 {
		t.Errorf("ListByDate() returned %d rows, want 2", len(today))
	}

	// status change keeps the old downtime data
	err = repo.Update(ctx, stored.ID, models.ReportUpdate{BranchName: "Bole", AtmID: "B-1", AtmStatus: models.StatusUp})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	today, _ = repo.ListByDate(ctx, "2026-10-19")
	var updated models.Report
	for _, r := range today {
		if r.ID == stored.ID {
			updated = r
		}
	}
	if updated.AtmStatus != models.StatusUp {
		t.Errorf("updated status = %s, want UP", updated.AtmStatus)
	}
	if updated.ReasonForDowntime != nil {
		t.Errorf("updated reason = %q, want nil", *updated.ReasonForDowntime)
	}
	if updated.DowntimeDurationHours == nil || *updated.DowntimeDurationHours != 1.5 {
		t.Errorf("updated duration = %v, want untouched 1.5", updated.DowntimeDurationHours)
	}

	if err := repo.Update(ctx, 9999, models.ReportUpdate{BranchName: "x", AtmID: "y", AtmStatus: models.StatusUp}); err != nil {
		t.Errorf("Update(missing) error = %v, want nil", err)
	}
	if err := repo.Delete(ctx, 9999); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
	if err := repo.Delete(ctx, stored.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	all, _ = repo.List(ctx)
	if len(all) != 2 {
		t.Errorf("after Delete() %d rows remain, want 2", len(all))
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	_, users := newTestRepositories(t)

	u, err := users.FindByUsername(ctx, "admin")
	if err != nil || u != nil {
		t.Fatalf("FindByUsername(missing) = %v, %v; want nil, nil", u, err)
	}

	if err := users.Upsert(ctx, "admin", "hash-1", models.RoleAdmin); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if err := users.SetActive(ctx, "admin", false); err != nil {
		t.Fatalf("SetActive() error: %v", err)
	}
	if err := users.Upsert(ctx, "admin", "hash-2", models.RoleOperator); err != nil {
		t.Fatalf("second Upsert() error: %v", err)
	}

	u, err = users.FindByUsername(ctx, "admin")
	if err != nil || u == nil {
		t.Fatalf("FindByUsername() = %v, %v", u, err)
	}
	if u.PasswordHash != "hash-2" || u.Role != models.RoleOperator || !u.Active() {
		t.Errorf("user after upsert = %+v, want hash-2 OPERATOR active", u)
	}
}
