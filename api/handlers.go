package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"keyphrase/file"
	"keyphrase/keyword"

	"go.uber.org/zap"
)

type extractRequest struct {
	Text *string `json:"text"`
}

type extractResponse struct {
	Keywords []keyword.KeywordScore `json:"keywords"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ExtractKeywordsHandler serves POST /extract_keywords.
func (s *Server) ExtractKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("request_id", RequestIDFrom(r.Context())))
	logger.Info("received keyword extraction request")

	text, err := s.readText(w, r)
	if err != nil {
		var he *httpError
		if errors.As(err, &he) {
			logger.Warn("rejected request", zap.String("reason", he.Message))
			s.writeError(w, he.Code, he.Message)
			return
		}
		logger.Error("failed to read request", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	keywords, err := s.extractor.ExtractKeywords(r.Context(), text)
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("keyword extraction timed out", zap.Error(err))
		s.writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}
	if err != nil {
		logger.Error("keyword extraction failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if keywords == nil {
		keywords = []keyword.KeywordScore{}
	}

	s.writeJSON(w, http.StatusOK, extractResponse{Keywords: keywords})
}

// readText pulls the input from a multipart "file" part when one is present,
// otherwise from a JSON body.
func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if isMultipart(r) {
		text, ok, err := s.readUpload(r)
		if err != nil || ok {
			return text, err
		}
		return "", badRequest(ErrNoText.Error())
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", &httpError{Code: http.StatusRequestEntityTooLarge, Message: "request body too large"}
		}
		return "", badRequest(ErrNoText.Error())
	}
	if req.Text == nil {
		return "", badRequest(ErrNoText.Error())
	}
	if strings.TrimSpace(*req.Text) == "" {
		return "", badRequest(ErrEmptyText.Error())
	}
	return *req.Text, nil
}

func (s *Server) readUpload(r *http.Request) (string, bool, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", false, &httpError{Code: http.StatusRequestEntityTooLarge, Message: "request body too large"}
		}
		return "", false, badRequest(ErrNoText.Error())
	}

	f, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, badRequest(err.Error())
	}
	defer f.Close()

	if !file.IsTextFile(header.Filename) {
		return "", true, badRequest("Only .txt files are supported")
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", true, err
	}
	text, err := file.DecodeText(data)
	if err != nil {
		return "", true, badRequest(ErrInvalidEncoding.Error())
	}
	if strings.TrimSpace(text) == "" {
		return "", true, badRequest(ErrEmptyText.Error())
	}
	return text, true, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
