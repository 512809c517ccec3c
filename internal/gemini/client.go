// Package gemini implements the client for the external generative
// image-editing API. It sends a source image, an optional selection mask and
// a natural-language instruction, and returns the edited image or a typed
// refusal.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash-image"
)

// Config configures a Client. The API key is explicit constructor input;
// the client never reads ambient process state.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout applies to the default HTTP client only; zero leaves the
	// transport default in place.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// EditRequest carries one image-editing call.
type EditRequest struct {
	Image       []byte
	MIME        string
	Mask        []byte // PNG mask, nil when no selection is active
	Instruction string
	AspectRatio string
}

// EditResult is the edited image returned by the model.
type EditResult struct {
	Image []byte
	MIME  string
	// Text is any accompanying commentary the model attached to the image.
	Text string
}

// Client talks to the generateContent endpoint. A single request is one
// non-cancelable round trip: no retries, no partial progress.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// New constructs a Client, rejecting an empty API key.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}, nil
}

// EditImage performs the edit. The first inline-image part of the response
// wins; a text-only response is classified as either a *RefusalError or
// ErrNoImage.
func (c *Client) EditImage(ctx context.Context, req EditRequest) (*EditResult, error) {
	if len(req.Image) == 0 {
		return nil, errors.New("gemini: empty source image")
	}
	if req.Instruction == "" {
		return nil, errors.New("gemini: empty instruction")
	}

	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, extractError(resp.Body))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return classify(parsed)
}

func (c *Client) buildRequest(req EditRequest) generateRequest {
	parts := []part{
		{Text: req.Instruction},
		{InlineData: &inlineData{
			MimeType: req.MIME,
			Data:     base64.StdEncoding.EncodeToString(req.Image),
		}},
	}
	if len(req.Mask) > 0 {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(req.Mask),
		}})
	}

	gen := &generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}}
	if req.AspectRatio != "" {
		gen.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	return generateRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: gen,
	}
}

// classify walks the candidate parts: first inline image wins, text is
// collected as commentary or, with no image at all, inspected for refusal.
func classify(resp generateResponse) (*EditResult, error) {
	var texts []string
	var result *EditResult

	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && result == nil {
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode image part: %w", err)
				}
				result = &EditResult{Image: data, MIME: p.InlineData.MimeType}
			}
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
	}

	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if result != nil {
		result.Text = text
		return result, nil
	}

	if text != "" && detectRefusal(text) {
		return nil, &RefusalError{Detail: text}
	}
	if text != "" {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, text)
	}
	return nil, ErrNoImage
}
