// Package attribution computes SHAP values for linear models.
//
// For a model with log-odds w·x + b and an independent masker over a
// background dataset with feature means μ, the exact Shapley value of
// feature j for sample i is w_j (x_ij − μ_j).
package attribution

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/listenupapp/reviewaudit/internal/domain"
	"github.com/listenupapp/reviewaudit/internal/errors"
	"github.com/listenupapp/reviewaudit/internal/model"
)

// Defaults for the background sample.
const (
	DefaultMaxBackground = 100
	DefaultSeed          = 0
)

// Linear is implemented by classifiers whose log-odds are linear in the
// features.
type Linear interface {
	Coefficients() []float64
}

// LinearExplainer explains linear classifiers against a background sample.
type LinearExplainer struct {
	// MaxBackground caps the rows of the background used for the means.
	// Zero or negative keeps every row.
	MaxBackground int
	Seed          uint64
}

// NewLinearExplainer returns an explainer with the default background cap.
func NewLinearExplainer() *LinearExplainer {
	return &LinearExplainer{MaxBackground: DefaultMaxBackground, Seed: DefaultSeed}
}

var _ model.Explainer = (*LinearExplainer)(nil)

// Explain returns one row of attributions per sample.
func (e *LinearExplainer) Explain(clf model.Classifier, background, samples mat.Matrix) (*mat.Dense, error) {
	lin, ok := clf.(Linear)
	if !ok {
		return nil, errors.Internalf("attribution: classifier %T is not linear", clf)
	}
	w := lin.Coefficients()

	bn, bd := background.Dims()
	sn, sd := samples.Dims()
	if bn == 0 || sn == 0 {
		return nil, errors.Internal("attribution: empty background or sample")
	}
	if bd != len(w) || sd != len(w) {
		return nil, errors.Internalf("attribution: %d coefficients, background has %d features, sample has %d",
			len(w), bd, sd)
	}

	mu := e.backgroundMeans(background)

	phi := mat.NewDense(sn, sd, nil)
	phi.Apply(func(_, j int, v float64) float64 {
		return w[j] * (v - mu[j])
	}, samples)
	return phi, nil
}

// backgroundMeans returns the per-feature means of the (possibly sampled)
// background rows.
func (e *LinearExplainer) backgroundMeans(background mat.Matrix) []float64 {
	n, d := background.Dims()
	rows := e.sampleRows(n)

	mu := make([]float64, d)
	col := make([]float64, len(rows))
	for j := range d {
		for k, i := range rows {
			col[k] = background.At(i, j)
		}
		mu[j] = stat.Mean(col, nil)
	}
	return mu
}

// sampleRows picks the background row indices, in ascending order.
func (e *LinearExplainer) sampleRows(n int) []int {
	if e.MaxBackground <= 0 || n <= e.MaxBackground {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	rng := rand.New(rand.NewPCG(e.Seed, e.Seed))
	rows := rng.Perm(n)[:e.MaxBackground]
	slices.Sort(rows)
	return rows
}

// MeanByFeature averages each column of phi.
func MeanByFeature(phi mat.Matrix) []float64 {
	n, d := phi.Dims()
	means := make([]float64, d)
	col := make([]float64, n)
	for j := range d {
		mat.Col(col, j, phi)
		means[j] = stat.Mean(col, nil)
	}
	return means
}

// Rank pairs vocab with scores and sorts ascending by score. Ties keep
// vocabulary order.
func Rank(vocab []string, scores []float64) ([]domain.WordAttribution, error) {
	if len(vocab) != len(scores) {
		return nil, errors.Internalf("attribution: %d words but %d scores", len(vocab), len(scores))
	}
	ranked := make([]domain.WordAttribution, len(vocab))
	for i, word := range vocab {
		ranked[i] = domain.WordAttribution{Word: word, Score: scores[i]}
	}
	slices.SortStableFunc(ranked, func(a, b domain.WordAttribution) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return ranked, nil
}
