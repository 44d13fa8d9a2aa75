package config

import "time"

// Config holds runtime settings for the review CLI.
//
// Fields:
//   - ServerURL: base URL of the review backend.
//   - DefaultModel: model label sent with reviews when none is given.
//     Empty lets the server pick its default.
//   - OnlineCheckInterval: how often the client probes /ping.
type Config struct {
	ServerURL           string
	DefaultModel        string
	OnlineCheckInterval time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.DefaultModel = ""
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
