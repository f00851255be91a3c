package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

const drawing = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <g id="layer1">
    <path id="tri" d="M0 0 L10 0 L10 10 Z"/>
    <rect x="0" y="0" width="5" height="5"/>
    <path d="m20 20 h5 v5"/>
    <path id="broken" d="M0,0C1,2"/>
    <path id="empty"/>
  </g>
</svg>`

func TestExtractPaths(t *testing.T) {
	paths, err := ExtractPaths(strings.NewReader(drawing))
	require.NoError(t, err)
	assert.Equal(t, []SVGPath{
		{ID: "tri", D: "M0 0 L10 0 L10 10 Z"},
		{D: "m20 20 h5 v5"},
		{ID: "broken", D: "M0,0C1,2"},
	}, paths)
}

func TestExtractPathsRejectsNonSVG(t *testing.T) {
	_, err := ExtractPaths(strings.NewReader(`<html><path d="M0,0"/></html>`))
	assert.Error(t, err)

	_, err = ExtractPaths(strings.NewReader(`<svg><path d="M0,0"`))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	results, bounds, err := Import(pathdata.Converter{}, strings.NewReader(drawing))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "M0,0L10,0L10,10Z", results[0].Formatted)
	assert.Equal(t, engine.Rect{X: 0, Y: 0, Width: 10, Height: 10}, results[0].Bounds)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, "m20,20h5v5", results[1].Formatted)
	assert.Equal(t, engine.Rect{X: 20, Y: 20, Width: 5, Height: 5}, results[1].Bounds)

	assert.Equal(t, "broken", results[2].ID)
	assert.Equal(t, "structural", results[2].Kind)
	require.NotNil(t, results[2].Offset)
	assert.Equal(t, 4, *results[2].Offset)
	assert.Nil(t, results[2].Path)

	assert.Equal(t, engine.Rect{X: 0, Y: 0, Width: 25, Height: 25}, bounds)
}

func upload(t *testing.T, h *Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	h := NewHandler(pathdata.Converter{}, 1<<20)

	rec := upload(t, h, "drawing.svg", drawing)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "drawing.svg", resp.Name)
	assert.Len(t, resp.Paths, 3)
	assert.Equal(t, engine.Rect{X: 0, Y: 0, Width: 25, Height: 25}, resp.Bounds)
}

func TestUploadRejects(t *testing.T) {
	h := NewHandler(pathdata.Converter{}, 1<<20)

	rec := upload(t, h, "photo.png", "not an svg")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, h, "broken.svg", "<svg><path")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("plain"))
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadUnencodableBounds(t *testing.T) {
	h := NewHandler(pathdata.Converter{}, 1<<20)

	// Each number is finite but the combined extent is not.
	rec := upload(t, h, "wide.svg", `<svg><path d="M-1.5e308,0L1.5e308,0"/></svg>`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
