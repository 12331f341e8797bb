// Package gemini implements domain.TextGenerator using the Google
// Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/geopredictor/geopredictor-api/internal/observability"
)

// Client calls the Gemini generateContent endpoint with a fixed model.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Gemini client. The API key comes from process
// environment via config; absence of a key is handled upstream by not
// constructing a client at all.
func NewClient(apiKey, model string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		metrics: metrics,
		logger:  logger,
	}
}

// GenerateText sends a prompt and returns the model's text verbatim.
// The response content is not parsed or validated beyond extraction.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.InsightRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("generate content request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.InsightDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.InsightRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: status %d: %s", resp.StatusCode, body)
	}

	var geminiResp response
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		c.metrics.InsightRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := geminiResp.text()
	if text == "" {
		c.metrics.InsightRequests.WithLabelValues("empty").Inc()
		return "", fmt.Errorf("gemini returned no candidates")
	}

	c.metrics.InsightRequests.WithLabelValues("success").Inc()
	return text, nil
}

// Gemini API request/response types.

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

func (r response) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
