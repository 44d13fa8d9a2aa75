// Package config handles configuration for the review server: defaults,
// environment (optionally seeded from a .env file), a JSON overlay and
// command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the server. It is built once at startup
// and shared read-only by every component.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API and static files.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory user store.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: lifetime of issued tokens.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - InferenceURL / InferenceTimeout: generate endpoint of the local model
//     server; a zero timeout means the call is bounded only by the request.
//   - StaticDir: directory with the pre-built frontend.
//   - S3*: optional S3-compatible archive for finished reviews. Empty
//     S3Bucket disables archiving.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	InferenceURL          string
	InferenceTimeout      time.Duration
	StaticDir             string
	LogLevel              string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 1 * time.Hour
	c.BcryptCost = 10
	c.InferenceURL = "http://localhost:11434/api/generate"
	c.InferenceTimeout = 0
	c.StaticDir = "frontend"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// ArchiveEnabled reports whether finished reviews should be written to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config from defaults, then the environment, then an
// optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
