package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  The gateway owns no
// database: its only mandatory collaborator is the backend API it
// fronts, so BackendBaseURL is the one address that must be present.
type Config struct {
	Env            string          // application environment (e.g. "dev", "prod")
	Port           string          // HTTP port to listen on
	BackendBaseURL string          // base URL of the cinema backend API (scheme://host:port)
	BackendTimeout time.Duration   // per-request timeout for backend calls
	JWTSecret      string          // secret used to verify access tokens
	ServiceFee     decimal.Decimal // flat display-only service fee added to booking summaries
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),          // environment (dev/test/prod)
		Port:           must("APP_PORT"),         // port to bind the HTTP server
		BackendBaseURL: must("BACKEND_API_URL"),  // backend host, e.g. http://localhost:8080
		BackendTimeout: durationOr("BACKEND_TIMEOUT", 10*time.Second),
		JWTSecret:      must("JWT_SECRET"),       // secret for verifying bearer tokens
		ServiceFee:     feeOr("SERVICE_FEE", "30.00"), // shown in summaries, never charged here
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// durationOr parses an optional duration variable, falling back to def
// when unset or invalid.
func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

// feeOr parses an optional decimal money variable, falling back to def
// when unset.  An unparsable value is a configuration error and fatal,
// the same way must() treats missing required variables.
func feeOr(key, def string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Fatalf("invalid decimal for %s: %q", key, v)
	}
	return d
}
