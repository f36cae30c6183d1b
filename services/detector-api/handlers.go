package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Mahender123pavani/Fake-News-Detector/common/analyzer"
	"github.com/Mahender123pavani/Fake-News-Detector/common/classifier"
	"github.com/Mahender123pavani/Fake-News-Detector/common/history"
	"github.com/Mahender123pavani/Fake-News-Detector/common/models"

	_ "github.com/Mahender123pavani/Fake-News-Detector/services/detector-api/docs"
)

// sessionHeader carries the opaque session id. The server mints one on
// the first analyze call and echoes it back so the client can keep its
// history together.
const sessionHeader = "X-Session-ID"

// AnalyzeResponse is the response for a successful analysis.
type AnalyzeResponse struct {
	SessionID string                      `json:"session_id"`
	Result    models.ClassificationResult `json:"result"`
}

// HistoryResponse lists a session's results in insertion order.
type HistoryResponse struct {
	SessionID string                        `json:"session_id"`
	Count     int                           `json:"count"`
	Results   []models.ClassificationResult `json:"results"`
}

type server struct {
	analyzer *analyzer.Analyzer
	sessions *history.Registry
	info     models.ModelInfo
}

// newRouter builds the Gin router with all middleware and routes.
func newRouter(a *analyzer.Analyzer, sessions *history.Registry, info models.ModelInfo) *gin.Engine {
	s := &server{analyzer: a, sessions: sessions, info: info}

	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:    []string{"Content-Length", sessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "detector-api",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.GET("/history", s.handleHistory)
		v1.GET("/history/export", s.handleHistoryExport)
		v1.DELETE("/history", s.handleHistoryClear)
		v1.GET("/model", s.handleModelInfo)
	}

	// Swagger documentation
	router.GET("/api/v1/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// session resolves the request's ledger and makes sure the id reaches
// the response so follow-up calls land in the same session.
func (s *server) session(c *gin.Context) (string, *history.Ledger) {
	id, ledger := s.sessions.Get(c.GetHeader(sessionHeader))
	c.Header(sessionHeader, id)
	return id, ledger
}

// handleAnalyze godoc
// @Summary Classify a news article as real or fake
// @Description Normalizes the submitted fields, runs the classifier and appends the result to the session history.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param article body models.InputFields true "News title, source and body text"
// @Param X-Session-ID header string false "Session id from a previous call"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /analyze [post]
func (s *server) handleAnalyze(c *gin.Context) {
	var fields models.InputFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.analyzer.Analyze(fields)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrInsufficientInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": analyzer.ErrInsufficientInput.Error()})
		case errors.Is(err, classifier.ErrIncompatibleArtifacts):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "model artifacts are misconfigured; contact the operator"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "classification failed"})
		}
		return
	}

	// Sessions are only minted for requests that produced a result, so
	// rejected input never touches the registry.
	sessionID, ledger := s.session(c)
	ledger.Append(result)

	c.JSON(http.StatusOK, AnalyzeResponse{
		SessionID: sessionID,
		Result:    result,
	})
}

// handleHistory godoc
// @Summary List the session's classification history
// @Tags History
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (s *server) handleHistory(c *gin.Context) {
	sessionID, ledger := s.session(c)
	results := ledger.Results()
	c.JSON(http.StatusOK, HistoryResponse{
		SessionID: sessionID,
		Count:     len(results),
		Results:   results,
	})
}

// handleHistoryExport godoc
// @Summary Export the session's history as CSV
// @Tags History
// @Produce text/csv
// @Param X-Session-ID header string false "Session id"
// @Success 200 {string} string "CSV document"
// @Failure 500 {object} map[string]string
// @Router /history/export [get]
func (s *server) handleHistoryExport(c *gin.Context) {
	_, ledger := s.session(c)
	data, err := ledger.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="history.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// handleHistoryClear godoc
// @Summary Clear the session's classification history
// @Tags History
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} map[string]string
// @Router /history [delete]
func (s *server) handleHistoryClear(c *gin.Context) {
	sessionID, ledger := s.session(c)
	ledger.Clear()
	c.JSON(http.StatusOK, gin.H{
		"status":     "cleared",
		"session_id": sessionID,
	})
}

// handleModelInfo godoc
// @Summary Describe the loaded model artifacts
// @Tags Model
// @Produce json
// @Success 200 {object} models.ModelInfo
// @Router /model [get]
func (s *server) handleModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.info)
}
