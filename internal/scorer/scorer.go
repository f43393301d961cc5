// Package scorer fits the suspicion model on the labeled reviews and scores
// every one of them in sample.
package scorer

import (
	"log/slog"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/model"
)

// Scorer builds a fresh vectorizer and classifier for each run.
type Scorer struct {
	newVectorizer func() model.Vectorizer
	newClassifier func() model.Classifier
	logger        *slog.Logger
}

// New creates a scorer from collaborator factories.
func New(newVectorizer func() model.Vectorizer, newClassifier func() model.Classifier, logger *slog.Logger) *Scorer {
	return &Scorer{
		newVectorizer: newVectorizer,
		newClassifier: newClassifier,
		logger:        logger,
	}
}

// WithLogger returns a copy of the scorer that logs to logger.
func (s *Scorer) WithLogger(logger *slog.Logger) *Scorer {
	c := *s
	c.logger = logger
	return &c
}

// Score fits the model on reviews and sets SuspicionScore on each element
// of reviews in place.
func (s *Scorer) Score(reviews []domain.LabeledReview) (*model.Fitted, error) {
	docs := make([]string, len(reviews))
	targets := make([]float64, len(reviews))
	for i, r := range reviews {
		docs[i] = r.Text
		targets[i] = float64(r.Label)
	}

	vec := s.newVectorizer()
	if err := vec.Fit(docs); err != nil {
		return nil, err
	}

	counts := domain.CountLabels(reviews)
	if counts.Suspicious == 0 || counts.Genuine == 0 {
		return nil, errors.InsufficientLabelsf("labeled reviews are missing a class").
			WithDetails(counts)
	}

	x, err := vec.Transform(docs)
	if err != nil {
		return nil, err
	}

	clf := s.newClassifier()
	if err := clf.Fit(x, targets); err != nil {
		return nil, err
	}

	probs, err := clf.PredictProba(x)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].SuspicionScore = probs[i]
	}

	_, features := x.Dims()
	s.logger.Info("suspicion model fitted",
		"samples", len(reviews),
		"features", features,
	)

	return &model.Fitted{Vectorizer: vec, Classifier: clf, Training: x}, nil
}
