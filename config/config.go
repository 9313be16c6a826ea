package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by Load.
const (
	// EnvMasterKey holds the 32-byte master key protecting stored secrets
	EnvMasterKey = "BOTVAULT_MASTER_KEY"

	// EnvTokenSecret holds the bearer token signing secret
	EnvTokenSecret = "BOTVAULT_TOKEN_SECRET"

	// EnvTokenTTL optionally overrides the bearer token lifetime
	EnvTokenTTL = "BOTVAULT_TOKEN_TTL"
)

const (
	// MasterKeySize is the required master key length in bytes (AES-256)
	MasterKeySize = 32

	// DefaultTokenTTL is used when EnvTokenTTL is not set
	DefaultTokenTTL = 24 * time.Hour
)

// Config carries the immutable startup configuration of the credential
// core. Values are loaded once at process start and never mutated; the
// components copy what they need at construction time.
type Config struct {
	MasterKey   []byte
	TokenSecret string
	TokenTTL    time.Duration
}

// Load reads configuration from the environment.
// A .env file in the working directory is applied first when present; a
// missing file is not an error. Missing or malformed required values are
// returned as a single descriptive error and should be treated as fatal
// at startup - they are configuration problems, not retry conditions.
func Load() (*Config, error) {
	// .env удобен для локальной разработки; в production значения
	// приходят из окружения процесса и файл просто отсутствует
	_ = godotenv.Load()

	masterKey := os.Getenv(EnvMasterKey)
	if masterKey == "" {
		return nil, fmt.Errorf("%s is required", EnvMasterKey)
	}
	if len(masterKey) != MasterKeySize {
		return nil, fmt.Errorf("%s must be exactly %d bytes, got %d",
			EnvMasterKey, MasterKeySize, len(masterKey))
	}

	tokenSecret := os.Getenv(EnvTokenSecret)
	if tokenSecret == "" {
		return nil, fmt.Errorf("%s is required", EnvTokenSecret)
	}

	tokenTTL := DefaultTokenTTL
	if raw := os.Getenv(EnvTokenTTL); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvTokenTTL, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("%s must be positive, got %s", EnvTokenTTL, parsed)
		}
		tokenTTL = parsed
	}

	return &Config{
		MasterKey:   []byte(masterKey),
		TokenSecret: tokenSecret,
		TokenTTL:    tokenTTL,
	}, nil
}
