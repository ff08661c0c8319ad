package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AllMinilmL6V2 calls a text-embeddings-inference server hosting
// sentence-transformers/all-MiniLM-L6-v2. Inputs longer than the model window
// are truncated server side.
type AllMinilmL6V2 struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAllMinilmL6V2(baseURL string, timeout time.Duration) *AllMinilmL6V2 {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AllMinilmL6V2{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *AllMinilmL6V2) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := EmbeddingRequest{
		Inputs:    texts,
		Normalize: true,
		Truncate:  true,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/embed", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AllMinilmL6V2 service returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var embeddings EmbeddingResponse
	if err := json.Unmarshal(body, &embeddings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings))
	}

	return embeddings, nil
}

// Ping embeds a short probe text so an unreachable model fails at startup.
func (c *AllMinilmL6V2) Ping(ctx context.Context) error {
	_, err := c.GetEmbeddings(ctx, []string{"ping"})
	return err
}
