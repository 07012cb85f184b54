package client

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"atm-monitor/config"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	db   *sqlx.DB
	once sync.Once
)

// ConnectDatabase returns the shared report store pool, opening it on first use.
func ConnectDatabase() *sqlx.DB {
	once.Do(func() {
		var err error
		db, err = OpenDatabase(config.AppConfig.DatabaseDriver, config.AppConfig.DatabaseURI)
		if err != nil {
			log.Fatal("Database connection failed:", err)
		}
	})

	return db
}

// OpenDatabase opens and pings a pool for the given driver ("postgres" or "sqlite").
func OpenDatabase(driver, uri string) (*sqlx.DB, error) {
	conn, err := sqlx.Open(driver, uri)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	if driver == "sqlite" {
		// every connection to an in-memory database is a separate database
		if strings.Contains(uri, ":memory:") {
			conn.SetMaxOpenConns(1)
		}
		conn.Exec("PRAGMA journal_mode=WAL")
		conn.Exec("PRAGMA synchronous=NORMAL")
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(15 * time.Minute)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// StatementBuilder returns a squirrel builder using the placeholder style of the driver.
func StatementBuilder(driver string) sq.StatementBuilderType {
	if driver == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
