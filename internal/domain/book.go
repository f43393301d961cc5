// Package domain contains the core entities of the review audit pipeline.
package domain

import (
	"math"
	"strings"
	"unicode/utf8"
)

// TitlePrefixLength is the number of characters kept from a space-stripped title.
const TitlePrefixLength = 8

// BookRecord is one row of the books table.
// Numeric fields are NaN and string fields nil when the cell is missing.
type BookRecord struct {
	ParentASIN    *string `json:"parent_asin,omitempty"`
	Title         *string `json:"title,omitempty"`
	Row           int     `json:"row"`
	RatingNumber  float64 `json:"rating_number"`
	AverageRating float64 `json:"average_rating"`
}

// MatchesRating reports whether the book has exactly ratingNumber ratings
// averaging exactly averageRating. Missing values never match.
func (b BookRecord) MatchesRating(ratingNumber, averageRating float64) bool {
	if math.IsNaN(b.RatingNumber) || math.IsNaN(b.AverageRating) {
		return false
	}
	return b.RatingNumber == ratingNumber && b.AverageRating == averageRating
}

// TargetBook is the single book selected by the record locator.
type TargetBook struct {
	Key         string     `json:"key"`
	TitlePrefix string     `json:"title_prefix"`
	Book        BookRecord `json:"book"`
}

// TitlePrefix removes every space character from title and keeps the
// first TitlePrefixLength characters.
func TitlePrefix(title string) string {
	stripped := strings.ReplaceAll(title, " ", "")
	if utf8.RuneCountInString(stripped) <= TitlePrefixLength {
		return stripped
	}
	runes := []rune(stripped)
	return string(runes[:TitlePrefixLength])
}
