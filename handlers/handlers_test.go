package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"menu-analyze-service/config"
	"menu-analyze-service/models"
	"menu-analyze-service/openai"
	"menu-analyze-service/prompt"
	"menu-analyze-service/service"
	"menu-analyze-service/stubllm"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenAIModel:    "gpt-4o-mini",
		Temperature:    0.2,
		RequestTimeout: 5 * time.Second,
	}
}

// noToolCallClient simulates a provider that answers with free text instead
// of the forced structured call.
type noToolCallClient struct {
	raw string
}

func (c noToolCallClient) SourceName() string { return "NoToolCall" }

func (c noToolCallClient) AnalyzeMenu(ctx context.Context, fragments []prompt.Fragment) (*models.MenuAnalysis, error) {
	return nil, &openai.NoToolCallError{Raw: json.RawMessage(c.raw)}
}

func multipartRequest(t *testing.T, fields map[string]string, images map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	for name, data := range images {
		part, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/analyze_menu", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func perform(handler *Handlers, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler.AnalyzeMenu(c)
	return w
}

func TestAnalyzeMenuMissingTargetLanguage(t *testing.T) {
	handler := NewHandlers(service.New(testConfig(), stubllm.NewClient()))

	req := multipartRequest(t, map[string]string{"ocr_text": "Pizza 10"}, nil)
	w := perform(handler, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "target_language")
}

func TestAnalyzeMenuUpstreamNoToolCall(t *testing.T) {
	// A provider answer with no structured call maps to 502 with the raw
	// response embedded for diagnosis.
	raw := `{"output":[{"type":"message","content":[{"type":"output_text","text":"no"}]}]}`
	handler := NewHandlers(service.New(testConfig(), noToolCallClient{raw: raw}))

	req := multipartRequest(t, map[string]string{
		"target_language": "es",
		"ocr_text":        "Tacos al pastor - $50 MXN",
		"allergy_info":    "",
	}, nil)
	w := perform(handler, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body struct {
		Error string          `json:"error"`
		Raw   json.RawMessage `json:"raw"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No tool call returned", body.Error)
	assert.JSONEq(t, raw, string(body.Raw))
}

func TestAnalyzeMenuSuccess(t *testing.T) {
	handler := NewHandlers(service.New(testConfig(), stubllm.NewClient()))

	req := multipartRequest(t, map[string]string{
		"target_language": "en",
		"allergy_info":    "peanut, shellfish",
		"currency":        "EUR",
	}, map[string][]byte{
		"menu.jpg": {0xff, 0xd8, 0xff},
	})
	w := perform(handler, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.MenuAnalysis
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "en", result.TargetLanguage)
	assert.Equal(t, []string{"peanut", "shellfish"}, result.UserAllergies)
	assert.Equal(t, "EUR", result.Currency)
	assert.NotEmpty(t, result.RequestID)
	assert.NotEmpty(t, result.Dishes)
}

func TestAnalyzeMenuNoImagesIsAccepted(t *testing.T) {
	// Images and OCR text are both optional; the request still goes out with
	// instructions and metadata only.
	handler := NewHandlers(service.New(testConfig(), stubllm.NewClient()))

	req := multipartRequest(t, map[string]string{"target_language": "en"}, nil)
	w := perform(handler, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	handler := NewHandlers(service.New(testConfig(), stubllm.NewClient()))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/health", nil)
	handler.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
