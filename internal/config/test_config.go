package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the database configuration for integration tests from TEST_DB_* variables.
// When any of them is missing, a Config with an empty database section is returned, so DSN() is ""
// and tests can skip themselves.
func LoadTestConfig() (*Config, error) {
	// The .env file is optional
	_ = godotenv.Load()

	cfg := &Config{}
	for _, key := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"} {
		if os.Getenv(key) == "" {
			return cfg, nil
		}
	}

	port, err := intFromEnv("TEST_DB_PORT", 0)
	if err != nil {
		return nil, err
	}

	cfg.Database = DatabaseConfig{
		Host:     os.Getenv("TEST_DB_HOST"),
		Port:     port,
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   os.Getenv("TEST_DB_NAME"),
	}
	return cfg, nil
}
