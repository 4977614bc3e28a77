// Package config assembles runtime settings for the PantryPal client from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence (later sources win).
package config

// Config holds runtime settings for the PantryPal client.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the backend REST endpoint.
//   - StoragePath: path of the on-device sqlite database holding the
//     session and cart.
type Config struct {
	APIBaseURL  string
	StoragePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StoragePath = "pantrypal.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
