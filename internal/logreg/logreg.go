// Package logreg implements L2-regularised binary logistic regression fitted
// with L-BFGS.
//
// The objective is
//
//	sum_i [log(1 + exp(z_i)) - y_i z_i] + ||w||^2 / (2C),  z_i = w·x_i + b
//
// with an unpenalised intercept b. The problem is strictly convex whenever
// both classes are present, so the optimum does not depend on the solver's
// starting point.
package logreg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/listenupapp/reviewaudit/internal/errors"
)

// Default hyperparameters.
const (
	DefaultC       = 1.0
	DefaultMaxIter = 1000
	DefaultTol     = 1e-4
)

// Model is a logistic regression classifier.
type Model struct {
	C       float64
	MaxIter int
	Tol     float64

	coef      []float64
	intercept float64
	status    optimize.Status
	fitted    bool
}

// New returns a model with the default hyperparameters.
func New() *Model {
	return &Model{C: DefaultC, MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

// Fit learns coefficients from x and 0/1 targets y.
func (m *Model) Fit(x mat.Matrix, y []float64) error {
	n, d := x.Dims()
	if n != len(y) {
		return errors.Internalf("logreg: %d rows but %d targets", n, len(y))
	}
	if n == 0 || d == 0 {
		return errors.Internal("logreg: empty training matrix")
	}
	if m.C <= 0 {
		return errors.Validationf("logreg: C must be positive, got %v", m.C)
	}

	var positives int
	for _, v := range y {
		if v != 0 && v != 1 {
			return errors.Validationf("logreg: targets must be 0 or 1, got %v", v)
		}
		if v == 1 {
			positives++
		}
	}
	if positives == 0 || positives == n {
		return errors.InsufficientLabelsf("logreg: training data contains a single class")
	}

	obj := &objective{x: x, y: mat.NewVecDense(n, y), n: n, d: d, invC: 1 / m.C}
	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}
	settings := &optimize.Settings{
		MajorIterations:   m.MaxIter,
		GradientThreshold: m.Tol,
	}

	result, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if result == nil || !allFinite(result.X) {
		if err == nil {
			err = errors.Internal("logreg: optimizer produced no finite solution")
		}
		return errors.Wrap(err, errors.CodeInternal, "logreg: fit")
	}

	m.coef = append([]float64(nil), result.X[:d]...)
	m.intercept = result.X[d]
	m.status = result.Status
	m.fitted = true
	return nil
}

// DecisionFunction returns the log-odds w·x + b for each row of x.
func (m *Model) DecisionFunction(x mat.Matrix) ([]float64, error) {
	if !m.fitted {
		return nil, errors.Internal("logreg: model used before Fit")
	}
	n, d := x.Dims()
	if d != len(m.coef) {
		return nil, errors.Internalf("logreg: matrix has %d features, model has %d", d, len(m.coef))
	}

	z := mat.NewVecDense(n, nil)
	z.MulVec(x, mat.NewVecDense(d, m.coef))
	out := make([]float64, n)
	for i := range out {
		out[i] = z.AtVec(i) + m.intercept
	}
	return out, nil
}

// PredictProba returns P(y = 1) for each row of x.
func (m *Model) PredictProba(x mat.Matrix) ([]float64, error) {
	z, err := m.DecisionFunction(x)
	if err != nil {
		return nil, err
	}
	for i, v := range z {
		z[i] = sigmoid(v)
	}
	return z, nil
}

// Coefficients returns a copy of the feature weights.
func (m *Model) Coefficients() []float64 {
	return append([]float64(nil), m.coef...)
}

// Intercept returns the fitted bias term.
func (m *Model) Intercept() float64 {
	return m.intercept
}

// Status reports how the optimizer stopped.
func (m *Model) Status() optimize.Status {
	return m.status
}

// objective evaluates the penalised log loss over params = [w..., b].
type objective struct {
	x    mat.Matrix
	y    *mat.VecDense
	n, d int
	invC float64
}

func (o *objective) logits(params []float64) *mat.VecDense {
	z := mat.NewVecDense(o.n, nil)
	z.MulVec(o.x, mat.NewVecDense(o.d, params[:o.d]))
	b := params[o.d]
	for i := range o.n {
		z.SetVec(i, z.AtVec(i)+b)
	}
	return z
}

func (o *objective) value(params []float64) float64 {
	z := o.logits(params)
	var loss float64
	for i := range o.n {
		zi := z.AtVec(i)
		loss += softplus(zi) - o.y.AtVec(i)*zi
	}
	w := params[:o.d]
	return loss + 0.5*o.invC*floats.Dot(w, w)
}

func (o *objective) gradient(grad, params []float64) {
	z := o.logits(params)
	residual := mat.NewVecDense(o.n, nil)
	var bias float64
	for i := range o.n {
		r := sigmoid(z.AtVec(i)) - o.y.AtVec(i)
		residual.SetVec(i, r)
		bias += r
	}

	gw := mat.NewVecDense(o.d, grad[:o.d])
	gw.MulVec(o.x.T(), residual)
	floats.AddScaled(grad[:o.d], o.invC, params[:o.d])
	grad[o.d] = bias
}

func allFinite(xs []float64) bool {
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// softplus computes log(1 + exp(z)) without overflow.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
