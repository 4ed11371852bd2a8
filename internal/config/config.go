// Package config loads scheduler configuration via viper, with an
// optional local .env preload via godotenv — grounded on
// noah-isme-sma-adp-api/pkg/config and hasan-ston-mactrack's env loading
// (see SPEC_FULL.md AMBIENT STACK).
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the driver/solver knobs spec.md §6 names as configuration
// constants.
type Config struct {
	MaxCreditsPerSemester int     `mapstructure:"MAX_CREDITS_PER_SEMESTER"`
	MaxTotalCredits       int     `mapstructure:"MAX_TOTAL_CREDITS"`
	SolverTimeLimitSecs   float64 `mapstructure:"SOLVER_TIME_LIMIT_SECONDS"`
	CatalogDir            string  `mapstructure:"CATALOG_DIR"`
}

// Load reads configuration from environment variables (optionally
// preloaded from a local .env file via godotenv), falling back to
// spec.md §6's defaults. envFile may be empty, in which case no .env
// preload is attempted.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		// A missing .env file is not an error: it's optional local
		// developer convenience, not a deployment requirement.
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("MAX_CREDITS_PER_SEMESTER", 18)
	v.SetDefault("MAX_TOTAL_CREDITS", 120)
	v.SetDefault("SOLVER_TIME_LIMIT_SECONDS", 0.0)
	v.SetDefault("CATALOG_DIR", "./catalog")

	var cfg Config
	cfg.MaxCreditsPerSemester = v.GetInt("MAX_CREDITS_PER_SEMESTER")
	cfg.MaxTotalCredits = v.GetInt("MAX_TOTAL_CREDITS")
	cfg.SolverTimeLimitSecs = v.GetFloat64("SOLVER_TIME_LIMIT_SECONDS")
	cfg.CatalogDir = v.GetString("CATALOG_DIR")
	return cfg, nil
}
