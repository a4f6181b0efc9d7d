package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvConfigPath = "FNOL_CONFIG"
	EnvLogLevel   = "FNOL_LOG_LEVEL"
	EnvLogFormat  = "FNOL_LOG_FORMAT"
	EnvParallel   = "FNOL_PARALLEL"
)

// Settings are the process settings that come from the environment rather
// than from the rules file. CLI flags take precedence over them.
type Settings struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Parallel   int
}

// LoadEnv loads the first readable .env file (if any) into the process
// environment and returns the FNOL_* settings. Variables already set in
// the environment win over .env values. With no files given it looks for
// ".env" in the working directory.
func LoadEnv(files ...string) Settings {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			break
		}
	}

	parallel, err := strconv.Atoi(getEnv(EnvParallel, "4"))
	if err != nil || parallel < 1 {
		parallel = 4
	}

	return Settings{
		ConfigPath: getEnv(EnvConfigPath, ""),
		LogLevel:   getEnv(EnvLogLevel, "info"),
		LogFormat:  getEnv(EnvLogFormat, "text"),
		Parallel:   parallel,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
