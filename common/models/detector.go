package models

import "time"

// Label is the verdict of the binary classifier.
type Label string

const (
	LabelReal Label = "REAL"
	LabelFake Label = "FAKE"
)

// ConfidenceTier buckets the winning probability for presentation emphasis.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// InputFields carries the raw form fields for one analysis request.
type InputFields struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Body   string `json:"text"`
}

// ClassificationResult is the unit result of one inference.
type ClassificationResult struct {
	ID                     string         `json:"id"`
	Timestamp              time.Time      `json:"timestamp"`
	Title                  string         `json:"title"`
	Source                 string         `json:"source"`
	Label                  Label          `json:"label"`
	ConfidencePercent      float64        `json:"confidence_percent"`
	FakeProbabilityPercent float64        `json:"fake_probability_percent"`
	RealProbabilityPercent float64        `json:"real_probability_percent"`
	ConfidenceTier         ConfidenceTier `json:"confidence_tier"`
	Advisory               string         `json:"advisory,omitempty"`
}

// ModelInfo describes the loaded artifacts for display.
type ModelInfo struct {
	Name            string `json:"name"`
	Algorithm       string `json:"algorithm"`
	Vectorizer      string `json:"vectorizer"`
	TrainedArticles int    `json:"trained_articles"`
	FakeArticles    int    `json:"fake_articles"`
	VocabularySize  int    `json:"vocabulary_size"`
}
