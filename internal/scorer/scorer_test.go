package scorer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/logreg"
	"github.com/listenupapp/reviewaudit/internal/model"
	"github.com/listenupapp/reviewaudit/internal/tfidf"
)

func newTestScorer() *Scorer {
	return New(
		func() model.Vectorizer { return tfidf.New() },
		func() model.Classifier { return logreg.New() },
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func labeled(text string, label domain.Label) domain.LabeledReview {
	return domain.LabeledReview{Text: text, Rating: 5, Label: label}
}

func TestScore_AssignsProbabilities(t *testing.T) {
	reviews := []domain.LabeledReview{
		labeled("best book ever", domain.LabelSuspicious),
		labeled("amazing must-read", domain.LabelSuspicious),
		labeled("perfect amazing best", domain.LabelSuspicious),
		labeled("The characters felt real and the plot moved well", domain.LabelGenuine),
		labeled("Slow pacing in the middle chapters but a strong ending", domain.LabelGenuine),
		labeled("The author builds the world carefully over many chapters", domain.LabelGenuine),
	}

	fitted, err := newTestScorer().Score(reviews)
	require.NoError(t, err)
	require.NotNil(t, fitted)

	rows, cols := fitted.Training.Dims()
	assert.Equal(t, len(reviews), rows)
	assert.Len(t, fitted.Vectorizer.Vocabulary(), cols)

	for i, r := range reviews {
		assert.True(t, r.SuspicionScore > 0 && r.SuspicionScore < 1, "review %d score %v", i, r.SuspicionScore)
	}
	assert.Greater(t, reviews[0].SuspicionScore, reviews[3].SuspicionScore)
}

func TestScore_MissingClass(t *testing.T) {
	reviews := []domain.LabeledReview{
		labeled("best book ever", domain.LabelSuspicious),
		labeled("amazing", domain.LabelSuspicious),
		labeled("great great", domain.LabelSuspicious),
		labeled("perfect read", domain.LabelSuspicious),
		labeled("awesome", domain.LabelSuspicious),
	}

	_, err := newTestScorer().Score(reviews)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInsufficientLabels))
	assert.Contains(t, err.Error(), "missing a class")
	for _, r := range reviews {
		assert.Zero(t, r.SuspicionScore)
	}
}

func TestScore_DegenerateVocabulary(t *testing.T) {
	reviews := []domain.LabeledReview{
		labeled("a", domain.LabelSuspicious),
		labeled("!", domain.LabelGenuine),
	}

	_, err := newTestScorer().Score(reviews)
	assert.True(t, errors.Is(err, errors.ErrDegenerateVocabulary))
}
