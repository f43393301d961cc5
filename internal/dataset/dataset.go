// Package dataset loads the books and reviews CSV tables.
//
// Cells follow the usual data-frame conventions: a cell holding one of the
// recognised missing-value tokens (empty, "NA", "NaN", "null", ...) is
// treated as missing, and numeric cells that do not parse become NaN.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
)

// Column names of the books table.
const (
	ColRatingNumber  = "rating_number"
	ColAverageRating = "average_rating"
	ColParentASIN    = "parent_asin"
	ColTitle         = "title"
)

// Column names of the reviews table.
const (
	ColText   = "text"
	ColRating = "rating"
	ColASIN   = "asin"
)

var (
	bookColumns   = []string{ColRatingNumber, ColAverageRating, ColParentASIN, ColTitle}
	reviewColumns = []string{ColText, ColRating, ColParentASIN}
)

// missingTokens are the cell values read as missing.
//
//nolint:gochecknoglobals // Static lookup table
var missingTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// utf8BOM is stripped from the first header cell.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed CSV table with its header index.
type Table struct {
	Name    string
	columns map[string]int
	rows    [][]string
}

// ReadTable parses a CSV stream whose first record is the header.
func ReadTable(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.Validationf("%s table is empty", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeValidation, "read %s header", name)
	}
	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), utf8BOM))
	}

	t := &Table{
		Name:    name,
		columns: make(map[string]int, len(header)),
	}
	for i, col := range header {
		col = strings.TrimSpace(col)
		if _, dup := t.columns[col]; !dup {
			t.columns[col] = i
		}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeValidation, "read %s row %d", name, len(t.rows))
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, errors.Validationf("%s line %d has %d fields, header has %d", name, line, len(record), len(header))
		}
		t.rows = append(t.rows, record)
	}

	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the header contains col.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.columns[col]
	return ok
}

// Require fails with a MissingColumn error naming the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, col := range cols {
		if !t.HasColumn(col) {
			return errors.MissingColumnf("column %q missing in %s table", col, t.Name).
				WithDetails(map[string]string{"table": t.Name, "column": col})
		}
	}
	return nil
}

// Cell returns the cell at (row, col), or nil when missing.
func (t *Table) Cell(row int, col string) *string {
	idx, ok := t.columns[col]
	if !ok || idx >= len(t.rows[row]) {
		return nil
	}
	v := t.rows[row][idx]
	if missingTokens[v] {
		return nil
	}
	return &v
}

// Float returns the cell at (row, col) as a float, or NaN when missing or
// not numeric.
func (t *Table) Float(row int, col string) float64 {
	v := t.Cell(row, col)
	if v == nil {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Books converts the table into book records.
func (t *Table) Books() ([]domain.BookRecord, error) {
	if err := t.Require(bookColumns...); err != nil {
		return nil, err
	}
	books := make([]domain.BookRecord, t.Len())
	for i := range t.rows {
		books[i] = domain.BookRecord{
			Row:           i,
			RatingNumber:  t.Float(i, ColRatingNumber),
			AverageRating: t.Float(i, ColAverageRating),
			ParentASIN:    t.Cell(i, ColParentASIN),
			Title:         t.Cell(i, ColTitle),
		}
	}
	return books, nil
}

// Reviews converts the table into review records.
// The asin column is optional and read as missing when absent.
func (t *Table) Reviews() ([]domain.ReviewRecord, error) {
	if err := t.Require(reviewColumns...); err != nil {
		return nil, err
	}
	reviews := make([]domain.ReviewRecord, t.Len())
	for i := range t.rows {
		reviews[i] = domain.ReviewRecord{
			Row:        i,
			Text:       t.Cell(i, ColText),
			Rating:     t.Float(i, ColRating),
			ASIN:       t.Cell(i, ColASIN),
			ParentASIN: t.Cell(i, ColParentASIN),
		}
	}
	return reviews, nil
}

// LoadBooks reads the books CSV at path.
func LoadBooks(path string) ([]domain.BookRecord, error) {
	t, err := readFile("books", path)
	if err != nil {
		return nil, err
	}
	return t.Books()
}

// LoadReviews reads the reviews CSV at path.
func LoadReviews(path string) ([]domain.ReviewRecord, error) {
	t, err := readFile("reviews", path)
	if err != nil {
		return nil, err
	}
	return t.Reviews()
}

func readFile(name, path string) (*Table, error) {
	f, err := os.Open(path) //#nosec G304 -- Input path comes from configuration
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeValidation, "open %s table", name)
	}
	defer f.Close()

	t, err := ReadTable(name, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
