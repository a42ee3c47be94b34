// Package llm is the client for the hosted Gemini text generation API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/simaogato/umbral-backend/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
)

// GeminiClient calls the generateContent REST endpoint
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	enabled    bool
	httpClient *http.Client
	log        zerolog.Logger
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a Gemini client. Without an API key the client is disabled.
// An empty baseURL selects the public API, an empty model selects DefaultModel.
func NewGeminiClient(apiKey, baseURL, model string, log zerolog.Logger) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "gemini").Logger(),
	}
}

// Enabled reports whether an API key is configured
func (c *GeminiClient) Enabled() bool {
	return c.enabled
}

// Generate sends the conversation and returns the concatenated text of the first candidate
func (c *GeminiClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("gemini client is not configured")
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	body := generateContentRequest{Contents: make([]content, 0, len(req.Messages))}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}
	for _, m := range req.Messages {
		body.Contents = append(body.Contents, content{
			Role:  string(m.Role),
			Parts: []part{{Text: m.Text}},
		})
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	var genResp generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", err
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	var text strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	c.log.Debug().
		Str("model", model).
		Int("messages", len(req.Messages)).
		Dur("duration", time.Since(start)).
		Msg("Generated content")

	return text.String(), nil
}
