package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mahender123pavani/Fake-News-Detector/common/analyzer"
	"github.com/Mahender123pavani/Fake-News-Detector/common/classifier"
	"github.com/Mahender123pavani/Fake-News-Detector/common/history"
	"github.com/Mahender123pavani/Fake-News-Detector/common/models"
)

type stubGateway struct {
	class int
	probs [2]float64
}

func (s *stubGateway) Classify(string) (int, [2]float64, error) {
	return s.class, s.probs, nil
}

func newTestRouter(gw analyzer.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(
		analyzer.New(gw),
		history.NewRegistry(),
		models.ModelInfo{Name: "news-id", Algorithm: "logistic-regression", TrainedArticles: 300000},
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubGateway{probs: [2]float64{1, 0}})
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAnalyzeAppendsToSession(t *testing.T) {
	router := newTestRouter(&stubGateway{class: 1, probs: [2]float64{0.13, 0.87}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", "", models.InputFields{
		Title:  "Government to Shut Down Internet for 7 Days Starting Monday",
		Source: "DailyNationNow.com",
		Body:   "Officials confirm the unbelievable shutdown plan, sources say.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("no session id minted")
	}
	if got := w.Header().Get(sessionHeader); got != resp.SessionID {
		t.Errorf("session header %q != body session id %q", got, resp.SessionID)
	}
	if resp.Result.Label != models.LabelFake {
		t.Errorf("label = %q, want FAKE", resp.Result.Label)
	}
	if resp.Result.ConfidencePercent != 87 {
		t.Errorf("confidence = %v, want 87", resp.Result.ConfidencePercent)
	}
	if resp.Result.ConfidenceTier != models.TierHigh {
		t.Errorf("tier = %q, want high", resp.Result.ConfidenceTier)
	}

	// The result landed in this session's history.
	w = doJSON(t, router, http.MethodGet, "/api/v1/history", resp.SessionID, nil)
	var hist HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if hist.Count != 1 || len(hist.Results) != 1 {
		t.Fatalf("history count = %d, want 1", hist.Count)
	}
	if hist.Results[0].ID != resp.Result.ID {
		t.Errorf("history holds %q, want %q", hist.Results[0].ID, resp.Result.ID)
	}

	// A different session sees an empty history.
	w = doJSON(t, router, http.MethodGet, "/api/v1/history", "other-session", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if hist.Count != 0 {
		t.Errorf("other session has %d results, want 0", hist.Count)
	}
}

func TestAnalyzeInsufficientInput(t *testing.T) {
	router := newTestRouter(&stubGateway{probs: [2]float64{1, 0}})

	for _, fields := range []models.InputFields{
		{},
		{Title: "", Source: "", Body: "  "},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", "", fields)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 for %+v", w.Code, fields)
		}
		if !strings.Contains(w.Body.String(), "please enter") {
			t.Errorf("body %q lacks user-facing message", w.Body)
		}
	}
}

func TestAnalyzeInvalidBody(t *testing.T) {
	router := newTestRouter(&stubGateway{probs: [2]float64{1, 0}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHistoryExportAndClear(t *testing.T) {
	router := newTestRouter(&stubGateway{class: 1, probs: [2]float64{0.1, 0.9}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", "csv-session", models.InputFields{
		Title: "Miracle cure discovered, doctors furious",
		Body:  "You will not believe what happened next in this shocking report.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/history/export", "csv-session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "history.csv") {
		t.Errorf("content disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("export has %d lines, want header + 1 row:\n%s", len(lines), w.Body)
	}
	if lines[0] != "Time,Title,Source,Prediction,Prediction Confidence (%),Fake Probability (%),Real Probability (%)" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "FAKE,90.0,90.0,10.0") {
		t.Errorf("row = %q", lines[1])
	}

	// Clear, then the export is header-only again.
	w = doJSON(t, router, http.MethodDelete, "/api/v1/history", "csv-session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/v1/history/export", "csv-session", nil)
	if got := strings.Count(strings.TrimRight(w.Body.String(), "\n"), "\n"); got != 0 {
		t.Errorf("export after clear has %d extra lines", got)
	}
}

func TestModelInfo(t *testing.T) {
	router := newTestRouter(&stubGateway{probs: [2]float64{1, 0}})
	w := doJSON(t, router, http.MethodGet, "/api/v1/model", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var info models.ModelInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Name != "news-id" || info.TrainedArticles != 300000 {
		t.Errorf("info = %+v", info)
	}
}

// End-to-end against real artifacts: the derived numbers must follow the
// probabilities the model returns, whatever they are.
func TestAnalyzeEndToEnd(t *testing.T) {
	model, err := classifier.Load(
		"../../common/classifier/testdata/classifier.json",
		"../../common/classifier/testdata/vectorizer.json",
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := newRouter(analyzer.New(model), history.NewRegistry(), model.Info())

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", "", models.InputFields{
		Title:  "Government to Shut Down Internet for 7 Days Starting Monday",
		Source: "DailyNationNow.com",
		Body:   "Shock miracle: officials announce the internet will vanish overnight.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := resp.Result
	if sum := r.FakeProbabilityPercent + r.RealProbabilityPercent; sum < 99.999 || sum > 100.001 {
		t.Errorf("probabilities sum to %v, want 100", sum)
	}
	if want := max(r.FakeProbabilityPercent, r.RealProbabilityPercent); r.ConfidencePercent != want {
		t.Errorf("confidence %v != max probability %v", r.ConfidencePercent, want)
	}
	if r.ConfidencePercent < 50 || r.ConfidencePercent > 100 {
		t.Errorf("confidence %v out of [50,100]", r.ConfidencePercent)
	}
}
