package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"keyphrase/config"
	"keyphrase/keyword"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputModeFlags(t *testing.T) {
	t.Setenv("KEYPHRASE_CONFIG", "")

	blank := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte(" \n\t "), 0o644))
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no mode", []string{"keyphrase"}, errInputMode},
		{"text and api", []string{"keyphrase", "--text", "hello", "--api"}, errInputMode},
		{"text and file", []string{"keyphrase", "--text", "hello", "--file", "a.txt"}, errInputMode},
		{"whitespace text", []string{"keyphrase", "--text", "   "}, errEmptyText},
		{"empty text", []string{"keyphrase", "--text", ""}, errEmptyText},
		{"whitespace file", []string{"keyphrase", "--file", blank}, errEmptyText},
		{"empty file", []string{"keyphrase", "--file", empty}, errEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			app := newApp()
			app.Writer = &out
			err := app.Run(tt.args)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, out.String())
		})
	}
}

func TestFileFlag_RejectsNonText(t *testing.T) {
	t.Setenv("KEYPHRASE_CONFIG", "")
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"keyphrase", "--file", path})
	assert.ErrorContains(t, err, ".txt")
}

func TestWriteKeywords(t *testing.T) {
	var buf bytes.Buffer
	writeKeywords(&buf, []keyword.KeywordScore{
		{Keyword: "river bank", Score: 0.61234},
		{Keyword: "fox", Score: 0.5},
	})
	assert.Equal(t, "Extracted Keywords:\nriver bank: 0.6123\nfox: 0.5000\n", buf.String())

	buf.Reset()
	writeKeywords(&buf, nil)
	assert.Equal(t, "Extracted Keywords:\n", buf.String())
}

func TestScorerConfig(t *testing.T) {
	cfg := scorerConfig(config.Default().Extraction)
	assert.Equal(t, keyword.DefaultScorerConfig(), cfg)
}
