package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/flagx"
	"github.com/joho/godotenv"
)

// loadDotEnv seeds the process environment from a dotenv file. Variables that
// are already set win over the file. A missing default ".env" is not an error;
// a missing file named explicitly with -env is.
var loadDotEnv = func(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return godotenv.Load(path)
}

// parseEnv overlays values found in environment variables:
//
//	PORT              listen port (becomes ":PORT")
//	DATABASE_URL      PostgreSQL DSN
//	JWT_SECRET        token signing secret
//	JWT_EXPIRES_IN    token lifetime: "3600" (ms), "2 days", "7d", "1h30m"
//	BCRYPT_COST       bcrypt work factor
//	OLLAMA_URL        inference generate endpoint
//	OLLAMA_TIMEOUT    inference call timeout (Go duration)
//	STATIC_DIR        frontend directory
//	LOG_LEVEL         debug|info|warn|error
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//
// Malformed numeric or duration values panic, like a malformed config file.
func parseEnv(cfg *Config) {
	if err := loadDotEnv(flagx.EnvFileFlag()); err != nil {
		panic(err)
	}

	if v, ok := lookup("PORT"); ok {
		if strings.Contains(v, ":") {
			cfg.EndpointAddrHTTP = v
		} else {
			cfg.EndpointAddrHTTP = ":" + v
		}
	}
	setString(&cfg.DatabaseDSN, "DATABASE_URL")
	setString(&cfg.SecretKey, "JWT_SECRET")
	if v, ok := lookup("JWT_EXPIRES_IN"); ok {
		d, err := ParseExpiresIn(v)
		if err != nil {
			panic(fmt.Errorf("JWT_EXPIRES_IN: %w", err))
		}
		cfg.TokenValidityDuration = d
	}
	if v, ok := lookup("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("BCRYPT_COST: %w", err))
		}
		cfg.BcryptCost = n
	}
	setString(&cfg.InferenceURL, "OLLAMA_URL")
	if v, ok := lookup("OLLAMA_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("OLLAMA_TIMEOUT: %w", err))
		}
		cfg.InferenceTimeout = d
	}
	setString(&cfg.StaticDir, "STATIC_DIR")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.S3RootUser, "S3_ROOT_USER")
	setString(&cfg.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

// expiresInPattern matches the vercel/ms syntax: a number with an optional
// unit, separated by optional spaces. A bare number is milliseconds.
var expiresInPattern = regexp.MustCompile(`(?i)^(-?\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

const day = 24 * time.Hour

var expiresInUnits = map[string]time.Duration{
	"": time.Millisecond, "ms": time.Millisecond, "msec": time.Millisecond, "msecs": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"y": day * 36525 / 100, "yr": day * 36525 / 100, "yrs": day * 36525 / 100,
	"year": day * 36525 / 100, "years": day * 36525 / 100,
}

// ParseExpiresIn parses JWT_EXPIRES_IN the way jsonwebtoken reads a string
// expiresIn: "3600" is 3600ms, "2 days", "1.5h", "7d" and "1y" carry units.
// Compound Go durations such as "1h30m" are accepted as well.
func ParseExpiresIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}

	m := expiresInPattern.FindStringSubmatch(s)
	if m == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return d, nil
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(n * float64(expiresInUnits[strings.ToLower(m[2])])), nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}
