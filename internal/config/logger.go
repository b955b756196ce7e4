package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateLogger builds a development logger when debug is set, either from
// the flag or the config, and a production logger otherwise. A configured
// path replaces stderr as the output.
func (c *Config) CreateLogger(debug bool) (*zap.Logger, error) {
	debug = debug || c.Logging.Debug

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if c.Logging.Path != "" {
		cfg.OutputPaths = []string{c.Logging.Path}
	}

	logger, err := cfg.Build()
	return logger, errors.Wrap(err, "create logger")
}
