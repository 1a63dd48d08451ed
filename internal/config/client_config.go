package config

import (
	"os"
	"time"
)

const expirySkewEnvVar = "LIFTING_LOG_EXPIRY_SKEW"

type ClientConfig interface {
	GetHTTPTimeout() time.Duration
	GetExpirySkew() time.Duration
	GetGETRetries() uint64
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetHTTPTimeout() time.Duration {
	return 30 * time.Second
}

// GetExpirySkew returns how long before its nominal expiry a token is
// treated as expired. Zero by default; set LIFTING_LOG_EXPIRY_SKEW to
// a duration (e.g. "30s") to absorb client/server clock drift.
func (Client) GetExpirySkew() time.Duration {
	value := os.Getenv(expirySkewEnvVar)
	if value == "" {
		return 0
	}
	skew, err := time.ParseDuration(value)
	if err != nil || skew < 0 {
		return 0
	}
	return skew
}

func (Client) GetGETRetries() uint64 {
	return 2
}
