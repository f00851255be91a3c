package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
)

// SVGPath is one <path> element found in a document.
type SVGPath struct {
	ID string
	D  string
}

// ExtractPaths returns every <path> element with a d attribute in document
// order.
func ExtractPaths(r io.Reader) ([]SVGPath, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var (
		paths  []SVGPath
		sawSVG bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "svg":
			sawSVG = true
		case "path":
			p := SVGPath{}
			hasD := false
			for _, attr := range start.Attr {
				switch attr.Name.Local {
				case "d":
					p.D = attr.Value
					hasD = true
				case "id":
					p.ID = attr.Value
				}
			}
			if hasD {
				paths = append(paths, p)
			}
		}
	}

	if !sawSVG {
		return nil, errors.New("parse svg: no <svg> element")
	}
	return paths, nil
}

// PathResult is the outcome of importing one path. Paths that fail to
// convert carry the error instead of geometry.
type PathResult struct {
	Index     int                  `json:"index"`
	ID        string               `json:"id,omitempty"`
	Source    string               `json:"source"`
	Formatted string               `json:"formatted,omitempty"`
	Path      []engine.PathCommand `json:"path,omitempty"`
	Bounds    engine.Rect          `json:"bounds"`
	Error     string               `json:"error,omitempty"`
	Kind      string               `json:"kind,omitempty"`
	Offset    *int                 `json:"offset,omitempty"`
}

// Import formats and converts every path in the document. The returned
// rect is the union of the bounds of the paths that converted.
func Import(conv pathdata.Converter, r io.Reader) ([]PathResult, engine.Rect, error) {
	paths, err := ExtractPaths(r)
	if err != nil {
		return nil, engine.Rect{}, err
	}

	var bounds engine.Rect
	results := make([]PathResult, 0, len(paths))
	for i, p := range paths {
		res := PathResult{Index: i, ID: p.ID, Source: p.D}

		eng := engine.NewEngine(conv)
		if err := eng.SetPath(p.D); err != nil {
			offset := pathdata.Offset(err)
			res.Error = err.Error()
			res.Kind = pathdata.Kind(err)
			res.Offset = &offset
			results = append(results, res)
			continue
		}

		res.Formatted = eng.Formatted()
		res.Path = eng.Path()
		res.Bounds = eng.Bounds()
		bounds = bounds.Union(res.Bounds)
		results = append(results, res)
	}

	return results, bounds, nil
}
