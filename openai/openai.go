package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"menu-analyze-service/config"
	"menu-analyze-service/models"
	"menu-analyze-service/prompt"
)

const defaultEndpoint = "https://api.openai.com/v1/responses"

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type responsesRequest struct {
	Model       string     `json:"model"`
	Input       []message  `json:"input"`
	Tools       []Tool     `json:"tools"`
	ToolChoice  ToolChoice `json:"tool_choice"`
	Temperature float64    `json:"temperature"`
}

// Client calls the OpenAI Responses API with multimodal input and a forced
// return_menu function call. Model and temperature are fixed configuration,
// held constant for reproducibility of behavior.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	endpoint    string
	client      *http.Client
}

// NewClient creates a new OpenAI gateway client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.OpenAIModel,
		temperature: cfg.Temperature,
		endpoint:    defaultEndpoint,
		client:      &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// SourceName identifies this provider in logs.
func (c *Client) SourceName() string {
	return "OpenAI"
}

// encodeImageToDataURL converts image bytes to a base64 data URL.
func encodeImageToDataURL(data []byte, mime string) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// toContentParts maps normalized fragments onto the provider wire format,
// preserving order.
func toContentParts(fragments []prompt.Fragment) []contentPart {
	parts := make([]contentPart, 0, len(fragments))
	for _, f := range fragments {
		if f.Image != nil {
			parts = append(parts, contentPart{
				Type:     "input_image",
				ImageURL: encodeImageToDataURL(f.Image.Data, f.Image.MimeType),
			})
			continue
		}
		parts = append(parts, contentPart{Type: "input_text", Text: f.Text})
	}
	return parts
}

// AnalyzeMenu submits the fragments plus the menu schema in a single request
// and extracts the forced return_menu call from the response. The two
// failure classes are transport/provider errors and a response with no
// matching invocation; both are terminal, there is no retry loop.
func (c *Client) AnalyzeMenu(ctx context.Context, fragments []prompt.Fragment) (*models.MenuAnalysis, error) {
	reqBody := responsesRequest{
		Model:       c.model,
		Input:       []message{{Role: "user", Content: toContentParts(fragments)}},
		Tools:       []Tool{menuTool()},
		ToolChoice:  ToolChoice{Type: "function", Name: toolName},
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	args, ok := extractToolArgs(&parsed)
	if !ok {
		return nil, &NoToolCallError{Raw: json.RawMessage(body)}
	}

	var result models.MenuAnalysis
	if err := decodeArguments(args, &result); err != nil {
		return nil, err
	}

	result.RequestID = requestID(&parsed)
	return &result, nil
}

// requestID prefers the provider-supplied response identifier and otherwise
// synthesizes a short token. It only needs to be unique enough for log
// correlation.
func requestID(resp *Response) string {
	if resp.ID != "" {
		return resp.ID
	}
	u := uuid.New()
	return "req_" + hex.EncodeToString(u[:4])
}
