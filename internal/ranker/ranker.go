// Package ranker finds the words that most lower the suspicion score of the
// least suspicious genuine reviews.
package ranker

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/listenupapp/reviewaudit/internal/attribution"
	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/identity"
	"github.com/listenupapp/reviewaudit/internal/model"
)

const (
	// SampleCap bounds the genuine sample size.
	SampleCap = 50
	// TopK is the number of words reported.
	TopK = 3
)

// Ranker explains the fitted model over a genuine sample.
type Ranker struct {
	explainer model.Explainer
	logger    *slog.Logger
}

// New creates a ranker.
func New(explainer model.Explainer, logger *slog.Logger) *Ranker {
	return &Ranker{explainer: explainer, logger: logger}
}

// WithLogger returns a copy of the ranker that logs to logger.
func (r *Ranker) WithLogger(logger *slog.Logger) *Ranker {
	c := *r
	c.logger = logger
	return &c
}

// GenuineSample returns up to SampleCap genuine reviews that do not mention
// the identifier, least suspicious first. Equal scores keep input order.
func GenuineSample(reviews []domain.LabeledReview, id identity.Identity) ([]domain.LabeledReview, error) {
	var sample []domain.LabeledReview
	for _, r := range reviews {
		if r.Label != domain.LabelGenuine || id.MentionedIn(&r.Text) {
			continue
		}
		sample = append(sample, r)
	}
	if len(sample) == 0 {
		return nil, errors.NoGenuineReviews("no genuine reviews left after excluding the identifier")
	}

	slices.SortStableFunc(sample, func(a, b domain.LabeledReview) int {
		return cmp.Compare(a.SuspicionScore, b.SuspicionScore)
	})
	if len(sample) > SampleCap {
		sample = sample[:SampleCap]
	}
	return sample, nil
}

// Rank attributes the model output over the genuine sample and returns
// every vocabulary word ordered by ascending mean attribution.
func (r *Ranker) Rank(fitted *model.Fitted, reviews []domain.LabeledReview, id identity.Identity) (domain.AttributionResult, error) {
	sample, err := GenuineSample(reviews, id)
	if err != nil {
		return domain.AttributionResult{}, err
	}

	docs := make([]string, len(sample))
	for i, s := range sample {
		docs[i] = s.Text
	}
	x, err := fitted.Vectorizer.Transform(docs)
	if err != nil {
		return domain.AttributionResult{}, err
	}

	phi, err := r.explainer.Explain(fitted.Classifier, fitted.Training, x)
	if err != nil {
		return domain.AttributionResult{}, err
	}

	words, err := attribution.Rank(fitted.Vectorizer.Vocabulary(), attribution.MeanByFeature(phi))
	if err != nil {
		return domain.AttributionResult{}, err
	}

	result := domain.AttributionResult{Words: words, SampleSize: len(sample)}
	r.logger.Info("attribution ranked",
		"sample_size", result.SampleSize,
		"top_words", result.Top(TopK),
	)
	return result, nil
}
