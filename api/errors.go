package api

import (
	"errors"
	"net/http"

	"keyphrase/file"
)

var (
	ErrNoText          = errors.New("No text provided")
	ErrEmptyText       = errors.New("Empty text provided")
	ErrInvalidEncoding = file.ErrInvalidEncoding
)

// httpError is an error carrying the status code it should be reported with.
type httpError struct {
	Code    int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

func badRequest(msg string) *httpError {
	return &httpError{Code: http.StatusBadRequest, Message: msg}
}
