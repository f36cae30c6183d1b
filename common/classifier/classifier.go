// Package classifier loads the pre-trained detection artifacts and runs
// inference against them. Artifacts are produced by the offline training
// pipeline and are read-only for the lifetime of the process.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/Mahender123pavani/Fake-News-Detector/common/models"
)

// Class indices are a frozen contract with the training pipeline.
const (
	ClassReal = 0
	ClassFake = 1
)

// ErrIncompatibleArtifacts reports a vectorizer and classifier that were
// not trained on the same feature space. This is a configuration error,
// not a per-request condition.
var ErrIncompatibleArtifacts = errors.New("classifier and vectorizer feature spaces do not match")

// ArtifactError wraps a failure to load one of the backing artifacts.
type ArtifactError struct {
	Resource string // "classifier" or "vectorizer"
	Path     string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("load %s artifact %q: %v", e.Resource, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// vectorizerArtifact is the serialized TF-IDF vectorizer.
type vectorizerArtifact struct {
	Kind       string         `json:"kind"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// classifierArtifact is the serialized linear classifier.
type classifierArtifact struct {
	Kind      string           `json:"kind"`
	Weights   []float64        `json:"weights"`
	Intercept float64          `json:"intercept"`
	Metadata  artifactMetadata `json:"metadata"`
}

type artifactMetadata struct {
	Name            string `json:"name"`
	Algorithm       string `json:"algorithm"`
	TrainedArticles int    `json:"trained_articles"`
	FakeArticles    int    `json:"fake_articles"`
}

// Model holds both loaded artifacts. Immutable after Load.
type Model struct {
	vectorizer vectorizerArtifact
	classifier classifierArtifact
	featureDim int // highest vocabulary index + 1
}

// Load reads and validates both artifacts from disk. A missing or corrupt
// file is returned as an *ArtifactError naming the resource so the caller
// can surface a precise diagnostic.
func Load(classifierPath, vectorizerPath string) (*Model, error) {
	m := &Model{}

	if err := readArtifact(vectorizerPath, &m.vectorizer); err != nil {
		return nil, &ArtifactError{Resource: "vectorizer", Path: vectorizerPath, Err: err}
	}
	if len(m.vectorizer.Vocabulary) == 0 {
		return nil, &ArtifactError{Resource: "vectorizer", Path: vectorizerPath, Err: errors.New("empty vocabulary")}
	}
	for _, idx := range m.vectorizer.Vocabulary {
		if idx+1 > m.featureDim {
			m.featureDim = idx + 1
		}
	}
	if len(m.vectorizer.IDF) < m.featureDim {
		return nil, &ArtifactError{Resource: "vectorizer", Path: vectorizerPath, Err: errors.New("idf table shorter than vocabulary")}
	}

	if err := readArtifact(classifierPath, &m.classifier); err != nil {
		return nil, &ArtifactError{Resource: "classifier", Path: classifierPath, Err: err}
	}
	if len(m.classifier.Weights) == 0 {
		return nil, &ArtifactError{Resource: "classifier", Path: classifierPath, Err: errors.New("empty weight vector")}
	}

	return m, nil
}

func readArtifact(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

var (
	sharedOnce  sync.Once
	sharedModel *Model
	sharedErr   error
)

// Shared returns the process-wide model, loading the artifacts on first
// call. Concurrent first callers serialize on the load; everyone observes
// the same instance. The artifacts are never reloaded.
func Shared(classifierPath, vectorizerPath string) (*Model, error) {
	sharedOnce.Do(func() {
		sharedModel, sharedErr = Load(classifierPath, vectorizerPath)
	})
	return sharedModel, sharedErr
}

// Classify vectorizes cleaned text and scores it. It returns the predicted
// class (ClassReal or ClassFake) and the probability vector [pReal, pFake],
// which sums to 1. The input must already be normalized.
func (m *Model) Classify(cleaned string) (int, [2]float64, error) {
	// Trained on different feature spaces. Fatal configuration error,
	// surfaced on the first classification attempt.
	if m.featureDim > len(m.classifier.Weights) {
		return 0, [2]float64{}, fmt.Errorf("vectorizer has %d features, classifier has %d weights: %w",
			m.featureDim, len(m.classifier.Weights), ErrIncompatibleArtifacts)
	}

	features := m.vectorize(cleaned)

	score := m.classifier.Intercept
	for idx, value := range features {
		score += m.classifier.Weights[idx] * value
	}

	pFake := sigmoid(score)
	probs := [2]float64{1 - pFake, pFake}

	class := ClassReal
	if probs[ClassFake] > probs[ClassReal] {
		class = ClassFake
	}
	return class, probs, nil
}

// Info exposes the artifact metadata for display.
func (m *Model) Info() models.ModelInfo {
	return models.ModelInfo{
		Name:            m.classifier.Metadata.Name,
		Algorithm:       m.classifier.Metadata.Algorithm,
		Vectorizer:      m.vectorizer.Kind,
		TrainedArticles: m.classifier.Metadata.TrainedArticles,
		FakeArticles:    m.classifier.Metadata.FakeArticles,
		VocabularySize:  len(m.vectorizer.Vocabulary),
	}
}

// vectorize builds a sparse l2-normalized tf-idf vector keyed by feature
// index. Terms outside the vocabulary are ignored, matching training.
func (m *Model) vectorize(cleaned string) map[int]float64 {
	counts := make(map[int]int)
	for _, term := range strings.Fields(cleaned) {
		if idx, ok := m.vectorizer.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	features := make(map[int]float64, len(counts))
	var norm float64
	for idx, tf := range counts {
		v := float64(tf) * m.vectorizer.IDF[idx]
		features[idx] = v
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range features {
			features[idx] /= norm
		}
	}
	return features
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
