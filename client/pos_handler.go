package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// POSClient talks to a spaCy-services style dependency endpoint.
type POSClient struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type posDepRequest struct {
	Text                string `json:"text"`
	Model               string `json:"model"`
	CollapsePunctuation int    `json:"collapse_punctuation"`
	CollapsePhrases     int    `json:"collapse_phrases"`
}

type posDepResponse struct {
	Arcs  []DepArc `json:"arcs"`
	Words []Token  `json:"words"`
}

type Token struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

type DepArc struct {
	Dir   string `json:"dir"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

type POSHandler interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}

func NewPosClient(baseURL, model string, timeout time.Duration) *POSClient {
	if model == "" {
		model = "en"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &POSClient{
		BaseURL: baseURL,
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Tag sends text to the /dep endpoint and returns one token per word with its
// fine-grained POS tag. Punctuation and phrases are not collapsed so tokens map
// one to one onto the input words.
func (c *POSClient) Tag(ctx context.Context, text string) ([]Token, error) {
	reqBody := posDepRequest{
		Text:  text,
		Model: c.Model,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/dep", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pos service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed posDepResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return parsed.Words, nil
}

// Models lists the models the service has loaded. Used as a startup probe.
func (c *POSClient) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var models []string
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return models, nil
}
