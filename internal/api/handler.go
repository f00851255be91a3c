package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

var errPathTooLong = errors.New("path data too long")

// Handler serves the stateless format and convert endpoints.
type Handler struct {
	conv          pathdata.Converter
	maxPathLength int
}

func NewHandler(conv pathdata.Converter, maxPathLength int) *Handler {
	return &Handler{conv: conv, maxPathLength: maxPathLength}
}

type formatRequest struct {
	D string `json:"d"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
}

type convertRequest struct {
	D         string            `json:"d"`
	Transform *engine.Transform `json:"transform,omitempty"`
}

type convertResponse struct {
	Path   []engine.PathCommand `json:"path"`
	Bounds engine.Rect          `json:"bounds"`
	Draw   engine.DrawCommand   `json:"draw"`
}

func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.checkLength(req.D); err != nil {
		handleError(w, err)
		return
	}

	formatted, err := h.conv.Format(req.D)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formatResponse{Formatted: formatted})
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.checkLength(req.D); err != nil {
		handleError(w, err)
		return
	}

	eng := engine.NewEngine(h.conv)
	if err := eng.SetPath(req.D); err != nil {
		handleError(w, err)
		return
	}
	if req.Transform != nil {
		eng.SetTransform(*req.Transform)
	}

	path := eng.Path()
	if path == nil {
		path = []engine.PathCommand{}
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Path:   path,
		Bounds: eng.Bounds(),
		Draw:   eng.DrawCommand(""),
	})
}

func (h *Handler) checkLength(d string) error {
	if h.maxPathLength > 0 && len(d) > h.maxPathLength {
		return errPathTooLong
	}
	return nil
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errPathTooLong):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	case pathdata.Kind(err) != "":
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  err.Error(),
			"kind":   pathdata.Kind(err),
			"offset": pathdata.Offset(err),
		})
	default:
		slog.Error("path transform failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// writeJSON encodes before writing the header, so a value JSON cannot hold
// (an infinite coordinate after a huge transform) becomes a 500 instead of
// an empty 200.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
