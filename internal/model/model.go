// Package model defines the machine-learning collaborators of the pipeline.
// The scorer and ranker only talk to these interfaces, so another
// vectorizer, classifier or attribution method can be swapped in through
// the DI container.
package model

import "gonum.org/v1/gonum/mat"

// Vectorizer maps documents to feature rows over a vocabulary frozen by Fit.
type Vectorizer interface {
	Fit(docs []string) error
	Transform(docs []string) (*mat.Dense, error)
	Vocabulary() []string
}

// Classifier is a binary probabilistic classifier.
type Classifier interface {
	Fit(x mat.Matrix, y []float64) error
	// PredictProba returns P(class = 1) for each row of x.
	PredictProba(x mat.Matrix) ([]float64, error)
}

// Explainer attributes a classifier's output to input features relative to
// a background dataset. The result has one row per sample and one column
// per feature.
type Explainer interface {
	Explain(clf Classifier, background, samples mat.Matrix) (*mat.Dense, error)
}

// Fitted bundles a vectorizer and classifier fitted together with the
// training matrix they were fitted on.
type Fitted struct {
	Vectorizer Vectorizer
	Classifier Classifier
	Training   *mat.Dense
}
