package main

import (
	"log"

	"atm-monitor/api"
	"atm-monitor/client"
	"atm-monitor/config"
	v1 "atm-monitor/services/v1"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db := client.ConnectDatabase()
	if err := client.InitSchema(db, cfg.DatabaseDriver); err != nil {
		log.Fatal(err)
	}
	sdb := client.StatementBuilder(cfg.DatabaseDriver)

	metrics := v1.NewMetrics()
	activity := v1.NewActivityRecorder(client.ConnectRedis())
	reportRepo := v1.NewReportRepository(db, sdb)

	summaries := &v1.SummaryService{
		Reports:          reportRepo,
		ThresholdMinutes: cfg.SLAThresholdMinutes,
		Location:         cfg.Location,
		Metrics:          metrics,
	}
	deps := api.Deps{
		Auth: &v1.AuthService{
			Users:  v1.NewUserRepository(db, sdb),
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.TokenTTL,
		},
		Reports: &v1.ReportService{
			Reports:  reportRepo,
			Activity: activity,
			Metrics:  metrics,
			Location: cfg.Location,
		},
		Summaries:   summaries,
		Activity:    activity,
		Metrics:     metrics,
		Location:    cfg.Location,
		CORSOrigins: cfg.CORSOrigins,
	}

	// Start the SLA sweep in the background; an empty schedule disables it
	if cfg.SLASweepSchedule != "" {
		watcher := &v1.SLAWatcher{Summaries: summaries, Activity: activity}
		go func() {
			if _, err := watcher.Start(cfg.SLASweepSchedule); err != nil {
				log.Printf("[CRON] SLA sweep disabled: %v", err)
			}
		}()
	}

	log.Printf("[HTTP] ATM monitor listening on :%s", cfg.Port)
	if err := api.StartServer(deps); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
