package env

import (
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/docsearch/pkg/utils"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the .env files named by ENV_PATH (comma separated), or from defaultPath.
// Variables already present in the environment win. A missing file is an error only for local runs (ENV empty or "local").
func LoadDotEnv(env string, defaultPath string) error {
	paths := utils.SplitAndTrim(os.Getenv("ENV_PATH"), ",")
	if len(paths) == 0 {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		paths = []string{defaultPath}
	}

	if err := godotenv.Load(paths...); err != nil {
		if env == "local" || env == "" {
			slog.Warn("Failed to load .env in local mode", "paths", paths, "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "env", env)
	}

	return nil
}
