package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("generative model not configured")
	// ErrSchema is returned when the model output does not match the expected shape.
	ErrSchema = errors.New("model output does not match schema")
)

// Output is a typed model response that can check its own invariants.
type Output interface {
	Validate() error
}

// Generator turns a prompt into a JSON document decoded into out.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, out Output) error
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// Requests per second.
	Rate float64
}

// GeminiClient calls the generateContent REST endpoint in JSON response mode.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

func (c *GeminiClient) Configured() bool { return c.apiKey != "" }

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON sends one prompt and strictly decodes the returned JSON into out.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, out Output) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json", Temperature: 0.2},
	})
	if err != nil {
		return err
	}

	// The key travels in a header so transport errors, which quote the URL, never carry it.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("generative request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return fmt.Errorf("generative API returned unreadable body (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if gr.Error != nil {
			msg = gr.Error.Message
		}
		return fmt.Errorf("generative API error (status %d): %s", resp.StatusCode, msg)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: empty response", ErrSchema)
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return DecodeStrict(text.String(), out)
}

// DecodeStrict decodes a single JSON object into out, rejecting unknown fields, then validates it.
func DecodeStrict(text string, out Output) error {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after object", ErrSchema)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
