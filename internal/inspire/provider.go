package inspire

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
)

// ErrNoCredential is returned by GenerativeProvider when no API key is set.
var ErrNoCredential = errors.New("no API key configured")

// Provider produces inspiration text.
type Provider interface {
	Content(ctx context.Context, kind Kind) (string, error)
}

// Defaults for GenerativeConfig.
const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.5-flash"
	DefaultTimeout  = 10 * time.Second
)

// GenerativeConfig configures a GenerativeProvider.
type GenerativeConfig struct {
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration

	// Client is the HTTP client to use. Default: a client with Timeout.
	Client *http.Client
}

// GenerativeProvider asks a generateContent-style HTTP API for text.
type GenerativeProvider struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

var _ Provider = (*GenerativeProvider)(nil)

// NewGenerativeProvider creates a provider, filling unset config fields
// with the defaults.
func NewGenerativeProvider(cfg GenerativeConfig) *GenerativeProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &GenerativeProvider{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		client:   client,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Content sends the prompt for kind and returns the text of the first
// candidate.
func (p *GenerativeProvider) Content(ctx context.Context, kind Kind) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoCredential
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: Prompt(kind)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent", p.endpoint, url.PathEscape(p.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate content: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("generate content: decode response: %w", err)
	}

	var b strings.Builder
	if len(out.Candidates) > 0 {
		for _, pt := range out.Candidates[0].Content.Parts {
			b.WriteString(pt.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}
	return text, nil
}
