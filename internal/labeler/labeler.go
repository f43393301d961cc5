// Package labeler turns unlabeled five-star reviews into a binary training
// set with a fixed word-count and lexicon heuristic.
package labeler

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
)

// Heuristic thresholds.
const (
	LabeledRating  = 5  // only reviews with this rating are labeled
	ShortThreshold = 3  // at most this many words is always suspicious
	LongThreshold  = 5  // at least this many words reads as genuine
	PraiseWindow   = 10 // fewer words than this plus a superlative is suspicious
	MinLabeled     = 5  // minimum labeled reviews needed for training
)

// Superlatives mark gushing praise.
//
//nolint:gochecknoglobals // Static lexicon
var Superlatives = []string{
	"best", "amazing", "awesome", "must-read",
	"perfect", "incredible", "great", "excellent", "wonderful",
}

// BookWords mark a review that talks about the book itself.
//
//nolint:gochecknoglobals // Static lexicon
var BookWords = []string{
	"characters", "plot", "narrative", "writing",
	"pacing", "worldbuilding", "prose", "story", "book",
	"read", "author", "chapter", "good", "jones", "life",
}

// Label classifies one review. The boolean is false when the review is
// excluded: missing text, a rating other than five, or an ambiguous body.
func Label(text *string, rating float64) (domain.Label, bool) {
	if text == nil {
		return 0, false
	}
	if rating != LabeledRating {
		return 0, false
	}

	lower := cases.Lower(language.Und).String(*text)
	wordCount := len(strings.FieldsFunc(lower, isSpace))
	hasSuper := containsAny(lower, Superlatives)
	hasBookWord := containsAny(lower, BookWords)

	if wordCount <= ShortThreshold || (wordCount < PraiseWindow && hasSuper) {
		return domain.LabelSuspicious, true
	}
	if wordCount >= LongThreshold || hasBookWord {
		return domain.LabelGenuine, true
	}
	return 0, false
}

// Collect labels every review that belongs to key, in input order, and
// fails when fewer than MinLabeled reviews receive a label.
func Collect(reviews []domain.ReviewRecord, key string, logger *slog.Logger) ([]domain.LabeledReview, error) {
	var (
		belonging int
		labeled   []domain.LabeledReview
	)
	for _, r := range reviews {
		if !r.BelongsTo(key) {
			continue
		}
		belonging++

		label, ok := Label(r.Text, r.Rating)
		if !ok {
			continue
		}
		labeled = append(labeled, domain.LabeledReview{
			Row:    r.Row,
			Text:   *r.Text,
			Rating: r.Rating,
			Label:  label,
		})
	}

	counts := domain.CountLabels(labeled)
	logger.Info("reviews labeled",
		"book_reviews", belonging,
		"labeled", len(labeled),
		"suspicious", counts.Suspicious,
		"genuine", counts.Genuine,
	)

	if len(labeled) < MinLabeled {
		return nil, errors.InsufficientLabelsf("not enough labeled reviews for training, got %d", len(labeled)).
			WithDetails(counts)
	}
	return labeled, nil
}

// isSpace matches Unicode white space plus the ASCII information
// separators, which also split words.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
