package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IsTextFile reports whether name has a .txt extension, ignoring case.
func IsTextFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}

// DecodeText validates that data is UTF-8 and returns it as a string. A
// leading byte order mark is dropped.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// ReadTextFile reads a UTF-8 .txt file from disk.
func ReadTextFile(path string) (string, error) {
	if !IsTextFile(path) {
		return "", ErrUnsupportedFormat
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeText(data)
}

// TxtExtractor implements TextExtractor for plain text files.
type TxtExtractor struct{}

func NewTxtExtractor() *TxtExtractor {
	return &TxtExtractor{}
}

func (TxtExtractor) ExtractText(fp string) (*ExtractionResult, error) {
	text, err := ReadTextFile(fp)
	if err != nil {
		return nil, err
	}
	return &ExtractionResult{Text: text, FilePath: fp}, nil
}
