package config

import (
	"fmt"
	"os"
)

const (
	BackendAirtable = "airtable"
	BackendMySQL    = "mysql"
)

type Config struct {
	HTTPAddr string

	// StoreBackend selects the record store: the hosted service or the
	// self-hosted MySQL one.
	StoreBackend string

	AirtableAPIKey string
	AirtableBaseID string
	AirtableURL    string

	MySQLDSN string

	// Optional extras; empty disables the feature.
	RedisAddr     string
	AMQPURL       string
	OrderExchange string
}

// Load reads the environment and validates everything the selected backend
// needs. Missing required settings fail here, at startup, not per request.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		StoreBackend:   getenv("STORE_BACKEND", BackendAirtable),
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		AirtableURL:    os.Getenv("AIRTABLE_URL"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		AMQPURL:        os.Getenv("AMQP_URL"),
		OrderExchange:  getenv("ORDER_EXCHANGE", "order.exchange"),
	}

	switch cfg.StoreBackend {
	case BackendAirtable:
		if cfg.AirtableAPIKey == "" {
			return Config{}, fmt.Errorf("AIRTABLE_API_KEY is required")
		}
		if cfg.AirtableBaseID == "" {
			return Config{}, fmt.Errorf("AIRTABLE_BASE_ID is required")
		}
	case BackendMySQL:
		if cfg.MySQLDSN == "" {
			return Config{}, fmt.Errorf("MYSQL_DSN is required")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
