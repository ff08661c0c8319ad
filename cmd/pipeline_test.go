package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"keyphrase/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPipeline_EmbeddingUnavailable(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
	}{
		{"closed port", func(*testing.T) string { return "http://127.0.0.1:1" }},
		{"server error", func(t *testing.T) string {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			}))
			t.Cleanup(srv.Close)
			return srv.URL
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Embedding.URL = tt.url(t)

			p, err := newPipeline(context.Background(), cfg, zap.NewNop())
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorContains(t, err, "embedding model unavailable at "+cfg.Embedding.URL)
		})
	}
}
