// Package analyzer turns raw form fields into a classification result.
// It is a pure decision function over the model gateway: appending the
// result to a session's history is the caller's follow-up, so the
// analyzer stays testable without a ledger.
package analyzer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Mahender123pavani/Fake-News-Detector/common/classifier"
	"github.com/Mahender123pavani/Fake-News-Detector/common/models"
	"github.com/Mahender123pavani/Fake-News-Detector/common/textnorm"
)

// DefaultMinTextLength is the minimum cleaned-text length forwarded to
// the model. Shorter inputs carry too little signal to score.
const DefaultMinTextLength = 10

// ErrInsufficientInput reports a request with no usable text. It is a
// recoverable, user-facing condition.
var ErrInsufficientInput = errors.New("please enter a title or text")

// AdvisoryBorderline is attached to low-confidence results.
const AdvisoryBorderline = "the text mixes signal cues from both classes; treat this verdict as borderline, not conclusive"

// Gateway is the inference operation the analyzer depends on.
// *classifier.Model satisfies it.
type Gateway interface {
	Classify(cleaned string) (class int, probs [2]float64, err error)
}

// Analyzer derives classification results from raw input fields.
type Analyzer struct {
	gateway   Gateway
	minLength int
	now       func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMinTextLength sets the minimum cleaned-text length. Zero disables
// the guard and forwards any non-empty input straight to the model.
func WithMinTextLength(n int) Option {
	return func(a *Analyzer) { a.minLength = n }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer over the given gateway.
func New(gw Gateway, opts ...Option) *Analyzer {
	a := &Analyzer{
		gateway:   gw,
		minLength: DefaultMinTextLength,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze normalizes the fields, scores them through the gateway and
// builds the result record. The raw title and source are copied into the
// result for display; only the model sees the normalized text.
func (a *Analyzer) Analyze(fields models.InputFields) (models.ClassificationResult, error) {
	cleaned := textnorm.Normalize(textnorm.Join(fields.Title, fields.Source, fields.Body))
	if cleaned == "" {
		return models.ClassificationResult{}, ErrInsufficientInput
	}
	if a.minLength > 0 && len(cleaned) < a.minLength {
		return models.ClassificationResult{}, fmt.Errorf("cleaned text is %d characters, need at least %d: %w",
			len(cleaned), a.minLength, ErrInsufficientInput)
	}

	class, probs, err := a.gateway.Classify(cleaned)
	if err != nil {
		return models.ClassificationResult{}, fmt.Errorf("classify: %w", err)
	}

	fakePct := probs[classifier.ClassFake] * 100
	realPct := probs[classifier.ClassReal] * 100

	label := models.LabelReal
	if class == classifier.ClassFake {
		label = models.LabelFake
	}

	result := models.ClassificationResult{
		ID:                     uuid.New().String(),
		Timestamp:              a.now(),
		Title:                  fields.Title,
		Source:                 fields.Source,
		Label:                  label,
		ConfidencePercent:      math.Max(fakePct, realPct),
		FakeProbabilityPercent: fakePct,
		RealProbabilityPercent: realPct,
	}

	result.ConfidenceTier = tierFor(result.ConfidencePercent)
	if result.ConfidenceTier == models.TierLow {
		result.Advisory = AdvisoryBorderline
	}
	return result, nil
}

func tierFor(confidence float64) models.ConfidenceTier {
	switch {
	case confidence >= 80:
		return models.TierHigh
	case confidence >= 60:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
