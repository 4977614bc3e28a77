package config

import (
	"flag"
	"os"

	"github.com/pantrypal/pantrypal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend REST endpoint
//	-s string   path of the on-device database
//
// os.Args is filtered to just these flags first, so flags owned by other
// components do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST endpoint")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "path of the on-device database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
