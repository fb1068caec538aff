package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/niloysannyal/form-summary/internal/extract"
	"github.com/niloysannyal/form-summary/internal/form"
	"github.com/niloysannyal/form-summary/internal/summarize"
)

// Handler serves single-document processing requests. Each upload is an
// independent request producing one record and one rendered summary; no
// state is retained between requests.
type Handler struct {
	extractor      *extract.Extractor
	summarizer     *summarize.Summarizer
	maxFileSize    int64
	includePrompts bool
	logger         zerolog.Logger
}

// NewHandler creates a document handler.
func NewHandler(ex *extract.Extractor, sum *summarize.Summarizer, maxFileSize int64, includePrompts bool, logger zerolog.Logger) *Handler {
	return &Handler{
		extractor:      ex,
		summarizer:     sum,
		maxFileSize:    maxFileSize,
		includePrompts: includePrompts,
		logger:         logger,
	}
}

// DocumentResponse is the processing result for one uploaded document.
type DocumentResponse struct {
	Record  *form.Record `json:"record"`
	Summary string       `json:"summary"`
	Prompts string       `json:"prompts,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ProcessDocument accepts a multipart PDF upload under the "file" field,
// runs extraction and summarization, and returns the results as JSON.
func (h *Handler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "missing or unreadable 'file' upload")
		return
	}
	defer file.Close()

	tmpPath, err := h.saveUpload(file)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store upload")
		h.writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(tmpPath)

	rec, err := h.extractor.ExtractFile(tmpPath)
	if err != nil {
		if extract.IsDecodeError(err) {
			h.writeError(w, http.StatusUnprocessableEntity, "document could not be decoded as a PDF form")
			return
		}
		h.logger.Error().Err(err).Msg("extraction failed")
		h.writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}
	rec.SourceFile = filepath.Base(header.Filename)

	rendered, err := h.summarizer.Render(rec)
	if err != nil {
		h.logger.Error().Err(err).Msg("summarization failed")
		h.writeError(w, http.StatusInternalServerError, "summarization failed")
		return
	}

	resp := DocumentResponse{
		Record:  rec,
		Summary: rendered.Summary,
	}
	if h.includePrompts {
		resp.Prompts = rendered.Prompts
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// saveUpload writes the uploaded stream to a uniquely named temp file so
// concurrent uploads never collide.
func (h *Handler) saveUpload(src io.Reader) (string, error) {
	tmpPath := filepath.Join(os.TempDir(), "adt1-"+uuid.NewString()+".pdf")
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

// Health reports server liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
