package config

import (
	"fmt"
	"os"
)

// DatabaseURL assembles the Postgres connection string from environment
// variables. Both DB stacks (database/sql and pgx) share it.
func DatabaseURL() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		getenvDefault("DB_SSLMODE", "disable"),
	)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
