package file

import "errors"

var (
	ErrUnsupportedFormat = errors.New("only .txt files are supported")
	ErrInvalidEncoding   = errors.New("file must be UTF-8 encoded text")
)

type ExtractionResult struct {
	Text     string `json:"text"`
	FilePath string `json:"filepath"`
}

type TextExtractor interface {
	ExtractText(filepath string) (*ExtractionResult, error)
}
