package main

import (
	"context"
	"log"

	"atm-monitor/client"
	"atm-monitor/config"
	v1 "atm-monitor/services/v1"
)

// seed creates or resets the admin account from ADMIN_USERNAME / ADMIN_PASSWORD / ADMIN_ROLE.
func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	db := client.ConnectDatabase()
	if err := client.InitSchema(db, cfg.DatabaseDriver); err != nil {
		log.Fatal(err)
	}

	hash, err := v1.HashPassword(cfg.AdminPassword, 0)
	if err != nil {
		log.Fatal(err)
	}

	users := v1.NewUserRepository(db, client.StatementBuilder(cfg.DatabaseDriver))
	if err := users.Upsert(context.Background(), cfg.AdminUsername, hash, cfg.AdminRole); err != nil {
		log.Fatal(err)
	}
	log.Printf("Seeded user: %s (%s)", cfg.AdminUsername, cfg.AdminRole)
}
