package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/joho/godotenv"

	"menu-analyze-service/config"
	"menu-analyze-service/metrics"
	"menu-analyze-service/models"
	"menu-analyze-service/openai"
	"menu-analyze-service/service"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Analyze menu images into structured JSON + HTML\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  menu-batch [options] <image> [<image> ...]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// guessMime guesses an image mime type from the file extension.
func guessMime(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "image/jpeg"
}

func main() {
	targetLanguage := flag.String("target-language", "en", "Target language code/name")
	allergies := flag.String("allergies", "", `Comma-separated allergies, e.g. "peanut,shellfish"`)
	currency := flag.String("currency", "", "Currency code, e.g. CNY, EUR")
	ocrText := flag.String("ocr-text", "", "Optional OCR text to include")
	outPrefix := flag.String("out-prefix", "menu_result", "Output file prefix for JSON/HTML")
	flag.Usage = usage
	flag.Parse()

	imagePaths := flag.Args()
	if len(imagePaths) == 0 {
		usage()
		os.Exit(2)
	}

	// Real environment variables win over .env values.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := config.Load()
	log.SetLevelFromString(cfg.LogLevel)

	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	metrics.Register()

	req := &models.AnalyzeRequest{
		TargetLanguage: *targetLanguage,
		UserAllergies:  models.ParseAllergies(*allergies),
		OCRText:        *ocrText,
		Currency:       *currency,
	}

	// An unreadable image path is fatal; no partial processing.
	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read image %s: %v", path, err)
		}
		req.Images = append(req.Images, models.ImageInput{Data: data, MimeType: guessMime(path)})
	}

	svc := service.New(cfg, openai.NewClient(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	result, err := svc.AnalyzeMenu(ctx, req)
	if err != nil {
		var noCall *openai.NoToolCallError
		if errors.As(err, &noCall) {
			fmt.Println("Model did not return a tool call. Raw response below:")
			fmt.Println(string(noCall.Raw))
		} else {
			fmt.Printf("Menu analysis failed: %v\n", err)
		}
		os.Exit(1)
	}

	jsonPath, htmlPath, err := svc.SaveArtifacts(result, *outPrefix)
	if err != nil {
		log.Fatalf("Failed to write artifacts: %v", err)
	}

	fmt.Printf("Saved JSON -> %s\n", jsonPath)
	fmt.Printf("Saved HTML -> %s\n", htmlPath)
	fmt.Println("Open the HTML in a browser to preview.")
}
