package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

// ImportResponse is returned from the import endpoint.
type ImportResponse struct {
	Name   string       `json:"name"`
	Paths  []PathResult `json:"paths"`
	Bounds engine.Rect  `json:"bounds"`
}

// Handler serves SVG document imports.
type Handler struct {
	conv          pathdata.Converter
	maxUploadSize int64
}

// NewHandler creates an import handler accepting uploads up to
// maxUploadSize bytes.
func NewHandler(conv pathdata.Converter, maxUploadSize int64) *Handler {
	return &Handler{conv: conv, maxUploadSize: maxUploadSize}
}

// Upload handles POST /import (multipart form with "file" field).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		http.Error(w, fmt.Sprintf("file too large (max %d bytes)", h.maxUploadSize), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/svg+xml") &&
		!strings.HasSuffix(strings.ToLower(header.Filename), ".svg") {
		http.Error(w, "only SVG documents are supported", http.StatusBadRequest)
		return
	}

	results, bounds, err := Import(h.conv, file)
	if err != nil {
		http.Error(w, "invalid svg: "+err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("svg imported", "name", header.Filename, "paths", len(results))

	body, err := json.Marshal(ImportResponse{
		Name:   header.Filename,
		Paths:  results,
		Bounds: bounds,
	})
	if err != nil {
		slog.Error("encode import", "error", err, "name", header.Filename)
		http.Error(w, "imported geometry cannot be encoded", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
