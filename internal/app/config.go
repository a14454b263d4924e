package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RequestPath string // render request .hcl file
	ModelsPath  string // model manifest .hcl file

	EngineURL string
	DryRun    bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a config value and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RequestPath == "" {
		return nil, errors.New("RequestPath is a required configuration field and cannot be empty")
	}
	if cfg.ModelsPath == "" {
		return nil, errors.New("ModelsPath is a required configuration field and cannot be empty")
	}
	if !cfg.DryRun && cfg.EngineURL == "" {
		return nil, errors.New("EngineURL is required unless running with DryRun")
	}
	return &cfg, nil
}
