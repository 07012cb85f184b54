package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SLA_THRESHOLD_MINUTES", "")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local,")

	cfg := FromEnv()

	if cfg.SLAThresholdMinutes != 30 {
		t.Errorf("SLAThresholdMinutes = %d, want 30", cfg.SLAThresholdMinutes)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.local" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestFromEnvBadInteger(t *testing.T) {
	t.Setenv("SLA_THRESHOLD_MINUTES", "half an hour")
	if got := FromEnv().SLAThresholdMinutes; got != 30 {
		t.Errorf("SLAThresholdMinutes = %d, want fallback 30", got)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DatabaseDriver:      "postgres",
			DatabaseURI:         "postgres://x",
			JWTSecret:           "k",
			TokenTTL:            time.Hour,
			SLAThresholdMinutes: 30,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "sqlite driver", mutate: func(c *Config) { c.DatabaseDriver = "sqlite" }},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: true},
		{name: "empty uri", mutate: func(c *Config) { c.DatabaseURI = "" }, wantErr: true},
		{name: "zero threshold", mutate: func(c *Config) { c.SLAThresholdMinutes = 0 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
