package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

func getEnv(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[CONFIG] %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvLocation(key string, defaultValue *time.Location) *time.Location {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		log.Printf("[CONFIG] %s=%q is not a valid time zone, using %s", key, value, defaultValue)
		return defaultValue
	}
	return loc
}
