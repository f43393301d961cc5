// Package di provides dependency injection configuration for the review
// audit command.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/reviewaudit/internal/config"
	"github.com/listenupapp/reviewaudit/internal/di/providers"
	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/pipeline"
)

// NewContainer creates and configures the DI container with all providers.
// flags are the values parsed from the command line.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, flags)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage
	do.Provide(injector, providers.ProvideStore)

	// Model collaborators
	do.Provide(injector, providers.ProvideVectorizerFactory)
	do.Provide(injector, providers.ProvideClassifierFactory)
	do.Provide(injector, providers.ProvideExplainer)
	do.Provide(injector, providers.ProvideScorer)
	do.Provide(injector, providers.ProvideRanker)

	// Pipeline
	do.Provide(injector, providers.ProvidePipeline)

	return injector
}

// Bootstrap initializes the services and returns the pipeline ready to run.
// Configuration errors surface here.
func Bootstrap(injector *do.RootScope) (*pipeline.Pipeline, *logger.Logger, error) {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return nil, nil, err
	}
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, nil, err
	}
	p, err := do.Invoke[*pipeline.Pipeline](injector)
	if err != nil {
		return nil, nil, err
	}
	return p, log, nil
}
