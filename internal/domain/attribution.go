package domain

// WordAttribution is the mean attribution of one vocabulary word across the
// genuine sample. Negative scores pull the suspicion score down.
type WordAttribution struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// AttributionResult lists every vocabulary word ordered by ascending score.
type AttributionResult struct {
	Words      []WordAttribution `json:"words"`
	SampleSize int               `json:"sample_size"`
}

// Top returns up to k words with the most negative mean attribution.
func (r AttributionResult) Top(k int) []string {
	if k > len(r.Words) {
		k = len(r.Words)
	}
	out := make([]string, k)
	for i := range k {
		out[i] = r.Words[i].Word
	}
	return out
}

// Flags are the three output tokens of a run.
type Flags struct {
	Flag1 string `json:"flag1"`
	Flag2 string `json:"flag2"`
	Flag3 string `json:"flag3"`
}
