package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/reviewaudit/internal/config"
	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/pipeline"
	"github.com/listenupapp/reviewaudit/internal/ranker"
	"github.com/listenupapp/reviewaudit/internal/scorer"
)

// ProvidePipeline provides the audit pipeline.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return nil, err
	}
	log := do.MustInvoke[*logger.Logger](i)
	store, err := do.Invoke[*StoreHandle](i)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Options{
		BooksPath:   cfg.Input.BooksPath,
		ReviewsPath: cfg.Input.ReviewsPath,
		FlagsPath:   cfg.Output.FlagsPath,
		Subject:     cfg.Audit.Subject,
	},
		store.Store,
		do.MustInvoke[*scorer.Scorer](i),
		do.MustInvoke[*ranker.Ranker](i),
		log,
	), nil
}
