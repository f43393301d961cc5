// Package pipeline runs the review audit stages in order and writes the
// flags file when every stage succeeds.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/listenupapp/reviewaudit/internal/dataset"
	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/flags"
	"github.com/listenupapp/reviewaudit/internal/id"
	"github.com/listenupapp/reviewaudit/internal/identity"
	"github.com/listenupapp/reviewaudit/internal/labeler"
	"github.com/listenupapp/reviewaudit/internal/locator"
	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/ranker"
	"github.com/listenupapp/reviewaudit/internal/scorer"
)

// Stage names used in logs.
const (
	StageIdentify = "identify"
	StageLoad     = "load"
	StageLocate   = "locate"
	StageLabel    = "label"
	StageScore    = "score"
	StageRank     = "rank"
	StageFlags    = "flags"
)

// Store is the table storage the pipeline loads and queries.
type Store interface {
	locator.Store
	Reset(ctx context.Context) error
	InsertBooks(ctx context.Context, books []domain.BookRecord) error
	InsertReviews(ctx context.Context, reviews []domain.ReviewRecord) error
	ReviewsForKey(ctx context.Context, key string) ([]domain.ReviewRecord, error)
}

// Options locate the inputs and output of a run.
type Options struct {
	BooksPath   string
	ReviewsPath string
	FlagsPath   string
	Subject     string
}

// Result summarizes a successful run.
type Result struct {
	RunID       string                   `json:"run_id"`
	Identity    identity.Identity        `json:"identity"`
	Target      *domain.TargetBook       `json:"target"`
	Labels      domain.LabelCounts       `json:"labels"`
	Attribution domain.AttributionResult `json:"attribution"`
	TopWords    []string                 `json:"top_words"`
	Flags       domain.Flags             `json:"flags"`
	FlagsPath   string                   `json:"flags_path"`
	Duration    time.Duration            `json:"duration"`
}

// Pipeline wires the stages together.
type Pipeline struct {
	opts   Options
	store  Store
	scorer *scorer.Scorer
	ranker *ranker.Ranker
	logger *logger.Logger
}

// New creates a pipeline.
func New(opts Options, store Store, sc *scorer.Scorer, rk *ranker.Ranker, log *logger.Logger) *Pipeline {
	return &Pipeline{
		opts:   opts,
		store:  store,
		scorer: sc,
		ranker: rk,
		logger: log,
	}
}

// Run executes every stage. Cancellation of ctx is honored between stages.
// The flags file is only written after all stages succeed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	runID, err := id.NewRunID()
	if err != nil {
		return nil, err
	}
	log := p.logger.WithRunID(runID)
	res := &Result{RunID: runID, FlagsPath: p.opts.FlagsPath}

	res.Identity = identity.Derive(p.opts.Subject)
	log.WithStage(StageIdentify).Info("identifier derived",
		"subject", res.Identity.Subject,
		"digest", res.Identity.Digest,
		"hash_id", res.Identity.HashID,
	)

	if err := p.load(ctx, log.WithStage(StageLoad)); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Target, err = locator.New(p.store, log.WithStage(StageLocate).Logger).Locate(ctx, res.Identity)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bookReviews, err := p.store.ReviewsForKey(ctx, res.Target.Key)
	if err != nil {
		return nil, fmt.Errorf("reviews for %s: %w", res.Target.Key, err)
	}
	labeled, err := labeler.Collect(bookReviews, res.Target.Key, log.WithStage(StageLabel).Logger)
	if err != nil {
		return nil, err
	}
	res.Labels = domain.CountLabels(labeled)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fitted, err := p.scorer.WithLogger(log.WithStage(StageScore).Logger).Score(labeled)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Attribution, err = p.ranker.WithLogger(log.WithStage(StageRank).Logger).Rank(fitted, labeled, res.Identity)
	if err != nil {
		return nil, err
	}
	res.TopWords = res.Attribution.Top(ranker.TopK)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Flags = flags.Compose(res.Target, res.Identity, res.TopWords)
	if err := flags.Write(p.opts.FlagsPath, res.Flags); err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)

	log.WithStage(StageFlags).Info("flags written",
		"path", p.opts.FlagsPath,
		"flag1", res.Flags.Flag1,
		"flag2", res.Flags.Flag2,
		"flag3", res.Flags.Flag3,
		"duration", res.Duration,
	)
	return res, nil
}

// load reads both CSV tables and replaces the store contents with them.
func (p *Pipeline) load(ctx context.Context, log *logger.Logger) error {
	books, err := dataset.LoadBooks(p.opts.BooksPath)
	if err != nil {
		return err
	}
	reviews, err := dataset.LoadReviews(p.opts.ReviewsPath)
	if err != nil {
		return err
	}

	if err := p.store.Reset(ctx); err != nil {
		return err
	}
	if err := p.store.InsertBooks(ctx, books); err != nil {
		return err
	}
	if err := p.store.InsertReviews(ctx, reviews); err != nil {
		return err
	}

	log.Info("tables loaded",
		"books", len(books),
		"reviews", len(reviews),
		"books_path", p.opts.BooksPath,
		"reviews_path", p.opts.ReviewsPath,
	)
	return nil
}
