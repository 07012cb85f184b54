package client

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username VARCHAR(64) NOT NULL UNIQUE,
    password_hash VARCHAR(128) NOT NULL,
    role VARCHAR(32) NOT NULL DEFAULT 'USER',
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS atm_reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    branch_name VARCHAR(120) NOT NULL,
    atm_id VARCHAR(64) NOT NULL,
    atm_status VARCHAR(16) NOT NULL,
    downtime_start DATETIME,
    downtime_end DATETIME,
    downtime_duration_hours REAL,
    reason_for_downtime VARCHAR(255),
    expected_restoration_time DATETIME,
    report_date VARCHAR(10) NOT NULL,
    reporting_window VARCHAR(11) NOT NULL,
    created_by INTEGER,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_atm_reports_date ON atm_reports(report_date, reporting_window);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(64) NOT NULL UNIQUE,
    password_hash VARCHAR(128) NOT NULL,
    role VARCHAR(32) NOT NULL DEFAULT 'USER',
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS atm_reports (
    id SERIAL PRIMARY KEY,
    branch_name VARCHAR(120) NOT NULL,
    atm_id VARCHAR(64) NOT NULL,
    atm_status VARCHAR(16) NOT NULL,
    downtime_start TIMESTAMPTZ,
    downtime_end TIMESTAMPTZ,
    downtime_duration_hours NUMERIC(10,2),
    reason_for_downtime VARCHAR(255),
    expected_restoration_time TIMESTAMPTZ,
    report_date VARCHAR(10) NOT NULL,
    reporting_window VARCHAR(11) NOT NULL,
    created_by INTEGER,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_atm_reports_date ON atm_reports(report_date, reporting_window);
`

// InitSchema creates the users and atm_reports tables when they do not exist yet.
func InitSchema(conn *sqlx.DB, driver string) error {
	schema := sqliteSchema
	if driver == "postgres" {
		schema = postgresSchema
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}
