package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/listenupapp/reviewaudit/internal/domain"
)

// reviewColumns must match the scan order in scanReview.
const reviewColumns = `row_idx, text, rating, asin, parent_asin`

// mentionClause matches reviews whose text contains the lowercased needle.
// SQLite's lower() folds ASCII only, which covers hex identifiers; NULL
// text never matches.
const mentionClause = `text IS NOT NULL AND instr(lower(text), ?) > 0`

func scanReview(scanner interface{ Scan(dest ...any) error }) (domain.ReviewRecord, error) {
	var (
		r          domain.ReviewRecord
		text       sql.NullString
		rating     sql.NullFloat64
		asin       sql.NullString
		parentASIN sql.NullString
	)

	if err := scanner.Scan(&r.Row, &text, &rating, &asin, &parentASIN); err != nil {
		return domain.ReviewRecord{}, err
	}

	r.Text = stringPtr(text)
	r.Rating = floatOrNaN(rating)
	r.ASIN = stringPtr(asin)
	r.ParentASIN = stringPtr(parentASIN)
	return r, nil
}

// InsertReviews loads review rows in a single transaction.
func (s *Store) InsertReviews(ctx context.Context, reviews []domain.ReviewRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO reviews (`+reviewColumns+`) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare review insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reviews {
		if _, err := stmt.ExecContext(ctx,
			r.Row,
			nullableString(r.Text),
			nullFloat(r.Rating),
			nullableString(r.ASIN),
			nullableString(r.ParentASIN),
		); err != nil {
			return fmt.Errorf("insert review row %d: %w", r.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reviews: %w", err)
	}

	s.logger.Debug("reviews loaded", "rows", len(reviews))
	return nil
}

// ReviewsMentioning returns reviews whose text contains needle, ignoring
// case, in file order.
func (s *Store) ReviewsMentioning(ctx context.Context, needle string) ([]domain.ReviewRecord, error) {
	return s.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE `+mentionClause+` ORDER BY row_idx`,
		strings.ToLower(needle),
	)
}

// CandidateKeys returns the distinct non-null asin and parent_asin values
// of reviews mentioning needle, sorted.
func (s *Store) CandidateKeys(ctx context.Context, needle string) ([]string, error) {
	lowered := strings.ToLower(needle)
	rows, err := s.db.QueryContext(ctx,
		`SELECT asin FROM reviews WHERE asin IS NOT NULL AND `+mentionClause+`
		UNION
		SELECT parent_asin FROM reviews WHERE parent_asin IS NOT NULL AND `+mentionClause+`
		ORDER BY 1`,
		lowered, lowered,
	)
	if err != nil {
		return nil, fmt.Errorf("query candidate keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan candidate key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ReviewsForKey returns every review whose asin or parent_asin equals key,
// in file order.
func (s *Store) ReviewsForKey(ctx context.Context, key string) ([]domain.ReviewRecord, error) {
	return s.queryReviews(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE asin = ? OR parent_asin = ? ORDER BY row_idx`,
		key, key,
	)
}

// CountReviews returns the number of loaded review rows.
func (s *Store) CountReviews(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func (s *Store) queryReviews(ctx context.Context, query string, args ...any) ([]domain.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.ReviewRecord
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
