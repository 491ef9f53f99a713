package configs

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"quizmatch/internal/infrastructure/env"
)

// DetermineConfigPath resolves the config file from the --config flag, the
// QUIZMATCH_CONFIG variable, or a handful of conventional locations. An
// empty result is fine: Load falls back to defaults and env overrides.
func DetermineConfigPath() string {
	godotenv.Load()

	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("QUIZMATCH_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"/etc/quizmatch/config.yaml",
			"/app/config.yaml",
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	return configPath
}
