package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
	"github.com/dmitrijs2005/gophchat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "2s"
// or as integer nanoseconds.
type JsonConfig struct {
	StorageDir      string         `json:"storage_dir"`
	StoragePassword string         `json:"storage_password"`
	PollInterval    timex.Duration `json:"poll_interval"`
	LogBackend      string         `json:"log_backend"`
	Development     bool           `json:"development"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. If no path is given, nothing is loaded. Panics
// on read or unmarshal errors (caller may recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorageDir != "" {
		cfg.StorageDir = jc.StorageDir
	}
	if jc.StoragePassword != "" {
		cfg.StoragePassword = jc.StoragePassword
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.LogBackend != "" {
		cfg.LogBackend = LogBackend(jc.LogBackend)
	}
	cfg.Development = cfg.Development || jc.Development
}
