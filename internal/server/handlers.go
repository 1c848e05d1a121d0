package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/lattice/internal/layout"
	"github.com/MeKo-Tech/lattice/internal/pipeline"
	"github.com/MeKo-Tech/lattice/internal/version"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// handleHealth reports liveness and version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// handlePage accepts a multipart form with a "results" part holding the
// recognizer's PageResult JSON and an optional "image" part holding the
// page image. Without an image, table detection is skipped and the page
// serializes as pure flow markup.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	res, err := decodeResults(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, pipeline.ErrNoRecognition) {
			status = http.StatusUnprocessableEntity
		}
		writeJSONError(w, status, err.Error())
		pagesProcessedTotal.WithLabelValues("error").Inc()
		return
	}

	imagePath, cleanup, err := saveUploadedImage(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		pagesProcessedTotal.WithLabelValues("error").Inc()
		return
	}
	defer cleanup()
	if imagePath != "" {
		res.Page.ImagePath = imagePath
	}

	start := time.Now()
	loc, err := s.pipeline.DetectTables(r.Context(), res.Page.ImagePath)
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		pagesProcessedTotal.WithLabelValues("error").Inc()
		return
	}
	ser := layout.NewSerializer(s.pipeline.Config().Serializer, loc)
	markup := ser.Page(res.Page, res.Words)

	pageProcessingDuration.Observe(time.Since(start).Seconds())
	tablesDetected.Observe(float64(loc.TableCount()))
	markupLength.Observe(float64(len(markup)))
	pagesProcessedTotal.WithLabelValues("success").Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, markup); err != nil {
		slog.Warn("failed writing response", "error", err)
	}
}

// decodeResults extracts the PageResult JSON from the form.
func decodeResults(r *http.Request) (*pipeline.PageResult, error) {
	f, _, err := r.FormFile("results")
	if err != nil {
		return nil, errors.New("missing results part")
	}
	defer func() { _ = f.Close() }()

	var res pipeline.PageResult
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, errors.New("malformed results JSON: " + err.Error())
	}
	if res.Words == nil {
		return nil, pipeline.ErrNoRecognition
	}
	return &res, nil
}

// saveUploadedImage stores an optional "image" part in a temp file and
// returns its path plus a cleanup func. An absent part returns an empty
// path and is not an error.
func saveUploadedImage(r *http.Request) (string, func(), error) {
	noop := func() {}
	f, hdr, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", noop, nil
		}
		return "", noop, errors.New("invalid image part: " + err.Error())
	}
	defer func() { _ = f.Close() }()

	ext := filepath.Ext(hdr.Filename)
	if ext == "" {
		ext = ".png"
	}
	tmp, err := os.CreateTemp("", "lattice-page-*"+ext)
	if err != nil {
		return "", noop, errors.New("storing image: " + err.Error())
	}
	if _, err := io.Copy(tmp, f); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", noop, errors.New("storing image: " + err.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", noop, errors.New("storing image: " + err.Error())
	}
	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}
