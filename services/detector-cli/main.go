package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mahender123pavani/Fake-News-Detector/common/analyzer"
	"github.com/Mahender123pavani/Fake-News-Detector/common/classifier"
	"github.com/Mahender123pavani/Fake-News-Detector/common/models"
)

const version = "1.0.0"

var (
	classifierPath string
	vectorizerPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "detector",
		Short: "Fake news detector over pre-trained artifacts",
	}

	rootCmd.PersistentFlags().StringVar(&classifierPath, "classifier", envOr("DETECTOR_MODEL_PATH", "artifacts/classifier.json"), "classifier artifact path")
	rootCmd.PersistentFlags().StringVar(&vectorizerPath, "vectorizer", envOr("DETECTOR_VECTORIZER_PATH", "artifacts/vectorizer.json"), "vectorizer artifact path")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(modelCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadModel() (*classifier.Model, error) {
	m, err := classifier.Shared(classifierPath, vectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("model artifacts unavailable: %w", err)
	}
	return m, nil
}

func analyzeCmd() *cobra.Command {
	var title, source string
	var minLength int

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Classify one article; body from args or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.Join(args, " ")
			if body == "" {
				stat, _ := os.Stdin.Stat()
				if stat.Mode()&os.ModeCharDevice == 0 {
					data, err := io.ReadAll(os.Stdin)
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
					body = string(data)
				}
			}

			model, err := loadModel()
			if err != nil {
				return err
			}

			a := analyzer.New(model, analyzer.WithMinTextLength(minLength))
			result, err := a.Analyze(models.InputFields{Title: title, Source: source, Body: body})
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "news headline")
	cmd.Flags().StringVar(&source, "source", "", "news source (optional)")
	cmd.Flags().IntVar(&minLength, "min-length", analyzer.DefaultMinTextLength, "minimum cleaned-text length (0 disables)")
	return cmd
}

func printResult(r models.ClassificationResult) {
	if r.Label == models.LabelFake {
		fmt.Println("Verdict: FAKE NEWS DETECTED")
	} else {
		fmt.Println("Verdict: REAL NEWS")
	}
	fmt.Printf("Confidence: %.1f%% (%s)\n", r.ConfidencePercent, r.ConfidenceTier)
	fmt.Printf("Fake probability: %.1f%%\n", r.FakeProbabilityPercent)
	fmt.Printf("Real probability: %.1f%%\n", r.RealProbabilityPercent)
	if r.Advisory != "" {
		fmt.Printf("Note: %s\n", r.Advisory)
	}
}

func modelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the loaded artifact metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := loadModel()
			if err != nil {
				return err
			}
			info := model.Info()
			fmt.Printf("Model: %s (%s)\n", info.Name, info.Algorithm)
			fmt.Printf("Vectorizer: %s, %d terms\n", info.Vectorizer, info.VocabularySize)
			fmt.Printf("Trained on %d articles, %d fake\n", info.TrainedArticles, info.FakeArticles)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the detector version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("detector", version)
		},
	}
}
