package main

import (
	"fmt"

	"fnol/internal/config"
	"fnol/internal/logging"
	"fnol/internal/pipeline"
)

// loadConfig returns the built-in rules, overlaid with the file named by
// --config or $FNOL_CONFIG when one is set.
func loadConfig() (config.Config, error) {
	if settings.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromPath(settings.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func buildPipeline() (*pipeline.Pipeline, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	p, err := pipeline.New(cfg, pipeline.WithLogger(logging.New("pipeline")))
	if err != nil {
		return nil, config.Config{}, err
	}
	return p, cfg, nil
}
