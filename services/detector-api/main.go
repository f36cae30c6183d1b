package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mahender123pavani/Fake-News-Detector/common/analyzer"
	"github.com/Mahender123pavani/Fake-News-Detector/common/classifier"
	"github.com/Mahender123pavani/Fake-News-Detector/common/history"
)

// @title          Fake News Detector API
// @version        1.0
// @description    Classifies news articles as real or fake using pre-trained artifacts

// @license.name MIT
// @license.url  https://opensource.org/licenses/MIT

// @host      localhost:8085
// @BasePath  /api/v1

func main() {
	// Set Gin mode based on environment
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "debug"
	}
	gin.SetMode(ginMode)

	// Artifact locations from environment or defaults
	classifierPath := os.Getenv("DETECTOR_MODEL_PATH")
	if classifierPath == "" {
		classifierPath = "artifacts/classifier.json"
	}
	vectorizerPath := os.Getenv("DETECTOR_VECTORIZER_PATH")
	if vectorizerPath == "" {
		vectorizerPath = "artifacts/vectorizer.json"
	}

	minLength := analyzer.DefaultMinTextLength
	if v := os.Getenv("DETECTOR_MIN_TEXT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("Invalid DETECTOR_MIN_TEXT_LENGTH %q", v)
		}
		minLength = n
	}

	// Load artifacts eagerly; the service cannot run without a model.
	model, err := classifier.Shared(classifierPath, vectorizerPath)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	log.Printf("Loaded model %q (%d-term vocabulary)", model.Info().Name, model.Info().VocabularySize)

	router := newRouter(
		analyzer.New(model, analyzer.WithMinTextLength(minLength)),
		history.NewRegistry(),
		model.Info(),
	)

	// Get server address from environment or use default
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = ":8085"
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting Detector API server on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down Detector API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Detector API server exited")
}
