// Package history keeps the per-session record of past classification
// results. Ledgers live in memory only; nothing survives a restart.
package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/Mahender123pavani/Fake-News-Detector/common/models"
)

// csvHeader is the fixed export header. Order matches the result fields.
var csvHeader = []string{
	"Time",
	"Title",
	"Source",
	"Prediction",
	"Prediction Confidence (%)",
	"Fake Probability (%)",
	"Real Probability (%)",
}

const csvTimeLayout = "2006-01-02 15:04:05"

// Ledger is an append-only, insertion-ordered sequence of results.
// Appends within one session may arrive concurrently, so writes are
// serialized; entries are never edited in place.
type Ledger struct {
	mu      sync.Mutex
	results []models.ClassificationResult
}

// Append adds a result to the end of the sequence.
func (l *Ledger) Append(result models.ClassificationResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
}

// Results returns a copy of the sequence in insertion order.
func (l *Ledger) Results() []models.ClassificationResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ClassificationResult, len(l.results))
	copy(out, l.results)
	return out
}

// Len reports the number of recorded results.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}

// Clear empties the sequence. Irreversible.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = nil
}

// WriteCSV serializes the sequence as CSV: the fixed header, then one row
// per result in insertion order, percentages rounded to one decimal.
// An empty ledger yields header-only output.
func (l *Ledger) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range l.Results() {
		row := []string{
			r.Timestamp.Format(csvTimeLayout),
			r.Title,
			r.Source,
			string(r.Label),
			formatPercent(r.ConfidencePercent),
			formatPercent(r.FakeProbabilityPercent),
			formatPercent(r.RealProbabilityPercent),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV is WriteCSV into a byte slice.
func (l *Ledger) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Registry hands out one ledger per session. Sessions are identified by
// opaque IDs; a session that ends is simply dropped.
type Registry struct {
	mu      sync.RWMutex
	ledgers map[string]*Ledger
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{ledgers: make(map[string]*Ledger)}
}

// Get returns the ledger for the session, creating it on first use.
// An empty id mints a fresh session. The returned id identifies the
// session on subsequent calls.
func (r *Registry) Get(id string) (string, *Ledger) {
	if id == "" {
		id = uuid.New().String()
	}

	r.mu.RLock()
	ledger, ok := r.ledgers[id]
	r.mu.RUnlock()
	if ok {
		return id, ledger
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ledger, ok = r.ledgers[id]; !ok {
		ledger = &Ledger{}
		r.ledgers[id] = ledger
	}
	return id, ledger
}

// Drop discards a session and its ledger.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ledgers, id)
}
