// Package locator finds the single target book shared by the rating filter
// and the reviews that carry the derived identifier.
package locator

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/identity"
)

// Exact book criteria. Compared with ==, no tolerance.
const (
	TargetRatingNumber  = 1234
	TargetAverageRating = 5.0
)

// Store is the table access the locator needs.
type Store interface {
	BooksWithRating(ctx context.Context, ratingNumber, averageRating float64) ([]domain.BookRecord, error)
	ReviewsMentioning(ctx context.Context, needle string) ([]domain.ReviewRecord, error)
	CandidateKeys(ctx context.Context, needle string) ([]string, error)
}

// Locator selects the target book.
type Locator struct {
	store  Store
	logger *slog.Logger
}

// New creates a locator over store.
func New(store Store, logger *slog.Logger) *Locator {
	return &Locator{store: store, logger: logger}
}

// Locate runs the book filter, the review filter and the key intersection.
// When several keys qualify the lexicographically smallest one wins.
func (l *Locator) Locate(ctx context.Context, id identity.Identity) (*domain.TargetBook, error) {
	books, err := l.store.BooksWithRating(ctx, TargetRatingNumber, TargetAverageRating)
	if err != nil {
		return nil, fmt.Errorf("filter books: %w", err)
	}
	l.logger.Info("books matching criteria", "count", len(books),
		"rating_number", TargetRatingNumber, "average_rating", TargetAverageRating)
	if len(books) == 0 {
		return nil, errors.NoMatchingBooks(fmt.Sprintf(
			"no book has rating_number == %d and average_rating == %.1f", TargetRatingNumber, TargetAverageRating))
	}

	reviews, err := l.store.ReviewsMentioning(ctx, id.HashID)
	if err != nil {
		return nil, fmt.Errorf("filter reviews: %w", err)
	}
	l.logger.Info("reviews containing hash id", "count", len(reviews), "hash_id", id.HashID)
	if len(reviews) == 0 {
		return nil, errors.NoMatchingReviews("no review text contains " + id.HashID)
	}

	candidates, err := l.store.CandidateKeys(ctx, id.HashID)
	if err != nil {
		return nil, fmt.Errorf("collect candidate keys: %w", err)
	}
	l.logger.Info("candidate keys", "keys", candidates)

	shared := Intersect(candidates, books)
	if len(shared) == 0 {
		return nil, errors.NoKeyIntersection("no book key matches a review key").
			WithDetails(map[string]any{"candidates": candidates})
	}
	if len(shared) > 1 {
		l.logger.Warn("several books share review keys, taking the smallest", "keys", shared)
	}

	key := shared[0]
	book, ok := firstWithKey(books, key)
	if !ok {
		return nil, errors.Internalf("book with key %s vanished from filtered set", key)
	}
	if book.Title == nil {
		return nil, errors.Validationf("target book %s has no title", key)
	}

	target := &domain.TargetBook{
		Key:         key,
		Book:        book,
		TitlePrefix: domain.TitlePrefix(*book.Title),
	}
	l.logger.Info("target book located",
		"key", target.Key,
		"title", *book.Title,
		"title_prefix", target.TitlePrefix,
	)
	return target, nil
}

// Intersect returns the sorted, de-duplicated keys present both in
// candidates and among the books' parent keys.
func Intersect(candidates []string, books []domain.BookRecord) []string {
	bookKeys := make(map[string]struct{}, len(books))
	for _, b := range books {
		if b.ParentASIN != nil {
			bookKeys[*b.ParentASIN] = struct{}{}
		}
	}

	var shared []string
	for _, c := range candidates {
		if _, ok := bookKeys[c]; ok {
			shared = append(shared, c)
		}
	}
	slices.Sort(shared)
	return slices.Compact(shared)
}

func firstWithKey(books []domain.BookRecord, key string) (domain.BookRecord, bool) {
	for _, b := range books {
		if b.ParentASIN != nil && *b.ParentASIN == key {
			return b, true
		}
	}
	return domain.BookRecord{}, false
}
