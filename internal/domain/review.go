package domain

// ReviewRecord is one row of the reviews table.
type ReviewRecord struct {
	Text       *string `json:"text,omitempty"`
	ASIN       *string `json:"asin,omitempty"`
	ParentASIN *string `json:"parent_asin,omitempty"`
	Row        int     `json:"row"`
	Rating     float64 `json:"rating"`
}

// BelongsTo reports whether either product key of the review equals key.
func (r ReviewRecord) BelongsTo(key string) bool {
	return (r.ASIN != nil && *r.ASIN == key) || (r.ParentASIN != nil && *r.ParentASIN == key)
}

// Keys returns the non-missing product keys of the review.
func (r ReviewRecord) Keys() []string {
	keys := make([]string, 0, 2)
	if r.ASIN != nil {
		keys = append(keys, *r.ASIN)
	}
	if r.ParentASIN != nil {
		keys = append(keys, *r.ParentASIN)
	}
	return keys
}

// Label is the heuristic class of a review.
type Label int

const (
	// LabelGenuine marks a review that reads like a real reader wrote it.
	LabelGenuine Label = 0
	// LabelSuspicious marks a short or superlative-heavy review.
	LabelSuspicious Label = 1
)

// String returns the label name used in logs.
func (l Label) String() string {
	if l == LabelSuspicious {
		return "suspicious"
	}
	return "genuine"
}

// LabeledReview is a review of the target book that received a label.
// SuspicionScore is assigned once by the scorer.
type LabeledReview struct {
	Text           string  `json:"text"`
	Row            int     `json:"row"`
	Rating         float64 `json:"rating"`
	Label          Label   `json:"label"`
	SuspicionScore float64 `json:"suspicion_score"`
}

// LabelCounts summarizes a labeled set.
type LabelCounts struct {
	Suspicious int `json:"suspicious"`
	Genuine    int `json:"genuine"`
}

// CountLabels tallies the labels in reviews.
func CountLabels(reviews []LabeledReview) LabelCounts {
	var c LabelCounts
	for _, r := range reviews {
		if r.Label == LabelSuspicious {
			c.Suspicious++
		} else {
			c.Genuine++
		}
	}
	return c
}
