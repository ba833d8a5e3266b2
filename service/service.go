package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"

	"menu-analyze-service/config"
	"menu-analyze-service/llm"
	"menu-analyze-service/metrics"
	"menu-analyze-service/models"
	"menu-analyze-service/openai"
	"menu-analyze-service/prompt"
	"menu-analyze-service/render"
)

// Service runs the analysis pipeline: normalize inputs, call the inference
// gateway once, backfill request metadata the model omitted. The gateway is
// injected so tests can substitute a stub.
type Service struct {
	config    *config.Config
	llmClient llm.Client
}

// New creates a new menu analysis service.
func New(cfg *config.Config, client llm.Client) *Service {
	log.Infof("Analyzer LLM provider=%s model=%s", client.SourceName(), cfg.OpenAIModel)
	return &Service{
		config:    cfg,
		llmClient: client,
	}
}

// AnalyzeMenu runs one request through the pipeline. There is exactly one
// outbound inference call and no retry loop; both failure classes (transport
// error, no structured call returned) are terminal and surface to the caller
// with their raw context intact.
func (s *Service) AnalyzeMenu(ctx context.Context, req *models.AnalyzeRequest) (*models.MenuAnalysis, error) {
	start := time.Now()

	fragments := prompt.BuildFragments(req)
	result, err := s.llmClient.AnalyzeMenu(ctx, fragments)
	if err != nil {
		label := metrics.ResultUpstreamError
		var noCall *openai.NoToolCallError
		if errors.As(err, &noCall) {
			label = metrics.ResultNoToolCall
		}
		metrics.AnalyzeTotal.WithLabelValues(label).Inc()
		metrics.AnalyzeDurationSeconds.WithLabelValues(label).Observe(time.Since(start).Seconds())
		return nil, err
	}

	applyRequestDefaults(result, req)

	metrics.AnalyzeTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.AnalyzeDurationSeconds.WithLabelValues(metrics.ResultOK).Observe(time.Since(start).Seconds())
	metrics.DishesParsedTotal.Add(float64(len(result.Dishes)))

	log.Infof("Analyzed menu request_id=%s dishes=%d", result.RequestID, len(result.Dishes))
	return result, nil
}

// applyRequestDefaults guarantees the result echoes the request's target
// language, allergies, and currency even when the model omitted them, so
// rendering and artifacts always carry them.
func applyRequestDefaults(m *models.MenuAnalysis, req *models.AnalyzeRequest) {
	if m.TargetLanguage == "" {
		m.TargetLanguage = req.TargetLanguage
	}
	if m.UserAllergies == nil {
		m.UserAllergies = req.UserAllergies
	}
	if m.Currency == "" && req.Currency != "" {
		m.Currency = req.Currency
	}
}

// SaveArtifacts writes the structured result and its HTML report next to
// each other under the given prefix and returns both paths. The JSON is
// pretty-printed with non-ASCII characters preserved.
func (s *Service) SaveArtifacts(m *models.MenuAnalysis, prefix string) (string, string, error) {
	jsonPath := prefix + ".json"
	htmlPath := prefix + ".html"

	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", jsonPath, err)
	}
	defer jsonFile.Close()

	enc := json.NewEncoder(jsonFile)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	if err := os.WriteFile(htmlPath, []byte(render.HTML(m)), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	return jsonPath, htmlPath, nil
}
