package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/reviewaudit/internal/attribution"
	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/logreg"
	"github.com/listenupapp/reviewaudit/internal/model"
	"github.com/listenupapp/reviewaudit/internal/ranker"
	"github.com/listenupapp/reviewaudit/internal/scorer"
	"github.com/listenupapp/reviewaudit/internal/tfidf"
)

// VectorizerFactory builds an unfitted vectorizer per run.
type VectorizerFactory func() model.Vectorizer

// ClassifierFactory builds an unfitted classifier per run.
type ClassifierFactory func() model.Classifier

// ProvideVectorizerFactory provides the TF-IDF vectorizer factory.
func ProvideVectorizerFactory(_ do.Injector) (VectorizerFactory, error) {
	return func() model.Vectorizer { return tfidf.New() }, nil
}

// ProvideClassifierFactory provides the logistic regression factory.
func ProvideClassifierFactory(_ do.Injector) (ClassifierFactory, error) {
	return func() model.Classifier { return logreg.New() }, nil
}

// ProvideExplainer provides the linear SHAP explainer.
func ProvideExplainer(_ do.Injector) (model.Explainer, error) {
	return attribution.NewLinearExplainer(), nil
}

// ProvideScorer provides the suspicion scorer.
func ProvideScorer(i do.Injector) (*scorer.Scorer, error) {
	log := do.MustInvoke[*logger.Logger](i)
	newVectorizer := do.MustInvoke[VectorizerFactory](i)
	newClassifier := do.MustInvoke[ClassifierFactory](i)
	return scorer.New(newVectorizer, newClassifier, log.Logger), nil
}

// ProvideRanker provides the attribution ranker.
func ProvideRanker(i do.Injector) (*ranker.Ranker, error) {
	log := do.MustInvoke[*logger.Logger](i)
	explainer := do.MustInvoke[model.Explainer](i)
	return ranker.New(explainer, log.Logger), nil
}
