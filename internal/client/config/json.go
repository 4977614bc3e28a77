package config

import (
	"encoding/json"
	"os"

	"github.com/pantrypal/pantrypal/internal/flagx"
)

// JsonConfig is the DTO for JSON unmarshalling; values are copied into the
// runtime Config afterwards.
type JsonConfig struct {
	APIBaseURL  string `json:"api_base_url"`
	StoragePath string `json:"storage_path"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. Absent flags mean no JSON is loaded. Only fields present
// in the file override the current values. Read or unmarshal errors panic;
// the caller may recover if a missing config file should be non-fatal.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
}
