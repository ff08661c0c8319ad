package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPOSClient_Tag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dep", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req posDepRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "the river bank", req.Text)
		assert.Equal(t, "en", req.Model)
		assert.Zero(t, req.CollapsePhrases)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(posDepResponse{
			Words: []Token{{Text: "the", Tag: "DT"}, {Text: "river", Tag: "NN"}, {Text: "bank", Tag: "NN"}},
			Arcs:  []DepArc{{Dir: "left", Start: 0, End: 2, Label: "det"}},
		})
	}))
	defer server.Close()

	c := NewPosClient(server.URL, "", 0)
	tokens, err := c.Tag(context.Background(), "the river bank")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Text: "bank", Tag: "NN"}, tokens[2])
}

func TestPOSClient_TagErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewPosClient(server.URL, "en", 0)
	_, err := c.Tag(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestPOSClient_Models(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]string{"en", "de"})
	}))
	defer server.Close()

	models, err := NewPosClient(server.URL, "en", 0).Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, models)
}
