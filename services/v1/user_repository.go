package v1

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"atm-monitor/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// UserRepository reads and writes the users table.
type UserRepository struct {
	db  *sqlx.DB
	sdb sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, sdb sq.StatementBuilderType) *UserRepository {
	return &UserRepository{db: db, sdb: sdb}
}

// FindByUsername returns the user, or nil when no such username exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := r.sdb.Select("id", "username", "password_hash", "role", "is_active").
		From("users").
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u models.User
	if err := r.db.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &u, nil
}

// Upsert creates the user or, when the username exists, resets its hash and role and
// reactivates it.
func (r *UserRepository) Upsert(ctx context.Context, username, passwordHash, role string) error {
	_, err := r.sdb.Insert("users").
		Columns("username", "password_hash", "role", "is_active").
		Values(username, passwordHash, role, 1).
		Suffix("ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash, role = excluded.role, is_active = 1").
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert user %q: %w", username, err)
	}
	return nil
}

// SetActive enables or disables login for username.
func (r *UserRepository) SetActive(ctx context.Context, username string, active bool) error {
	v := 0
	if active {
		v = 1
	}
	_, err := r.sdb.Update("users").
		Set("is_active", v).
		Where(sq.Eq{"username": username}).
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("set user %q active: %w", username, err)
	}
	return nil
}
