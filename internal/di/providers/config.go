// Package providers contains dependency injection providers for the review
// audit command.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/reviewaudit/internal/config"
	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/validation"
)

// ProvideValidator provides the struct validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideConfig loads the configuration from the command-line flags value
// registered in the container.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags, err := do.Invoke[config.Flags](i)
	if err != nil {
		return nil, err
	}
	v := do.MustInvoke[*validation.Validator](i)
	return config.Load(flags, v)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting review audit",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"books_path", cfg.Input.BooksPath,
		"reviews_path", cfg.Input.ReviewsPath,
		"flags_path", cfg.Output.FlagsPath,
	)

	return log, nil
}
