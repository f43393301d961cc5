package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/listenupapp/reviewaudit/internal/domain"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `row_idx, rating_number, average_rating, parent_asin, title`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.BookRecord.
func scanBook(scanner interface{ Scan(dest ...any) error }) (domain.BookRecord, error) {
	var (
		b             domain.BookRecord
		ratingNumber  sql.NullFloat64
		averageRating sql.NullFloat64
		parentASIN    sql.NullString
		title         sql.NullString
	)

	if err := scanner.Scan(&b.Row, &ratingNumber, &averageRating, &parentASIN, &title); err != nil {
		return domain.BookRecord{}, err
	}

	b.RatingNumber = floatOrNaN(ratingNumber)
	b.AverageRating = floatOrNaN(averageRating)
	b.ParentASIN = stringPtr(parentASIN)
	b.Title = stringPtr(title)
	return b, nil
}

// InsertBooks loads book rows in a single transaction.
func (s *Store) InsertBooks(ctx context.Context, books []domain.BookRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO books (`+bookColumns+`) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare book insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range books {
		if _, err := stmt.ExecContext(ctx,
			b.Row,
			nullFloat(b.RatingNumber),
			nullFloat(b.AverageRating),
			nullableString(b.ParentASIN),
			nullableString(b.Title),
		); err != nil {
			return fmt.Errorf("insert book row %d: %w", b.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit books: %w", err)
	}

	s.logger.Debug("books loaded", "rows", len(books))
	return nil
}

// BooksWithRating returns books whose rating count and average rating
// equal the given values exactly, in file order.
func (s *Store) BooksWithRating(ctx context.Context, ratingNumber, averageRating float64) ([]domain.BookRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		WHERE rating_number = ? AND average_rating = ?
		ORDER BY row_idx`,
		ratingNumber, averageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("query books by rating: %w", err)
	}
	defer rows.Close()

	var books []domain.BookRecord
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CountBooks returns the number of loaded book rows.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
