package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/flagx"
	"github.com/dmitrijs2005/codereviewer/internal/timex"
)

// JsonConfig is the on-disk form. Intervals may be "3s" or nanoseconds.
type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	DefaultModel        string         `json:"default_model"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the file named by -c/-config. Fields absent from
// the file keep their current values. Panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DefaultModel != "" {
		cfg.DefaultModel = jc.DefaultModel
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
}
