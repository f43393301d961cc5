package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTitlePrefix(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"The Long Way Home", "TheLongW"},
		{"Dune", "Dune"},
		{"  A B  ", "AB"},
		{"Tab\tStays In", "Tab\tStay"},
		{"Café Société Nights", "CaféSoci"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, TitlePrefix(tt.title))
		})
	}
}

func TestBookRecord_MatchesRating(t *testing.T) {
	tests := []struct {
		name string
		book BookRecord
		want bool
	}{
		{"exact", BookRecord{RatingNumber: 1234, AverageRating: 5.0}, true},
		{"count differs", BookRecord{RatingNumber: 1235, AverageRating: 5.0}, false},
		{"average differs", BookRecord{RatingNumber: 1234, AverageRating: 4.9}, false},
		{"average nearly equal", BookRecord{RatingNumber: 1234, AverageRating: math.Nextafter(5.0, 0)}, false},
		{"missing count", BookRecord{RatingNumber: math.NaN(), AverageRating: 5.0}, false},
		{"missing average", BookRecord{RatingNumber: 1234, AverageRating: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.book.MatchesRating(1234, 5.0))
		})
	}
}

func TestReviewRecord_Keys(t *testing.T) {
	r := ReviewRecord{ASIN: strPtr("B001"), ParentASIN: strPtr("P001")}
	assert.Equal(t, []string{"B001", "P001"}, r.Keys())
	assert.True(t, r.BelongsTo("B001"))
	assert.True(t, r.BelongsTo("P001"))
	assert.False(t, r.BelongsTo("X"))

	empty := ReviewRecord{}
	assert.Empty(t, empty.Keys())
	assert.False(t, empty.BelongsTo(""))
}

func TestCountLabels(t *testing.T) {
	counts := CountLabels([]LabeledReview{
		{Label: LabelSuspicious},
		{Label: LabelGenuine},
		{Label: LabelGenuine},
	})
	assert.Equal(t, LabelCounts{Suspicious: 1, Genuine: 2}, counts)
}

func TestAttributionResult_Top(t *testing.T) {
	r := AttributionResult{Words: []WordAttribution{{"a", -2}, {"b", -1}, {"c", 0}, {"d", 1}}}
	assert.Equal(t, []string{"a", "b", "c"}, r.Top(3))
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.Top(10))
}
