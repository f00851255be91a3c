package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/inamate/pathconv/internal/db"
	"github.com/inamate/pathconv/internal/engine"
	"github.com/inamate/pathconv/internal/pathdata"
	"github.com/inamate/pathconv/internal/typeid"
)

var (
	ErrNotFound    = errors.New("path not found")
	ErrForbidden   = errors.New("forbidden")
	ErrPathTooLong = errors.New("path data too long")
)

// Queries is the slice of db.Queries the library needs.
type Queries interface {
	CreatePath(ctx context.Context, arg db.CreatePathParams) (db.Path, error)
	GetPath(ctx context.Context, id string) (db.Path, error)
	ListPathsForOwner(ctx context.Context, ownerID string) ([]db.Path, error)
	UpdatePath(ctx context.Context, arg db.UpdatePathParams) (db.Path, error)
	DeletePath(ctx context.Context, id string) error
}

type Service struct {
	queries       Queries
	conv          pathdata.Converter
	maxPathLength int
}

func NewService(queries Queries, conv pathdata.Converter, maxPathLength int) *Service {
	return &Service{queries: queries, conv: conv, maxPathLength: maxPathLength}
}

// SavedPath is a stored path together with its rendering. A stored path
// that no longer converts under the current settings (strict commands, a
// lower length limit) has no Draw and carries the reason in Error.
type SavedPath struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	OwnerID   string              `json:"ownerId"`
	Source    string              `json:"source"`
	Formatted string              `json:"formatted"`
	Draw      *engine.DrawCommand `json:"draw,omitempty"`
	Error     string              `json:"error,omitempty"`
	CreatedAt string              `json:"createdAt"`
	UpdatedAt string              `json:"updatedAt"`
}

// Create validates d by converting it and stores it with its canonical
// form. Path data that does not convert is never stored.
func (s *Service) Create(ctx context.Context, ownerID, name, d string) (*SavedPath, error) {
	eng, err := s.load(d)
	if err != nil {
		return nil, err
	}

	p, err := s.queries.CreatePath(ctx, db.CreatePathParams{
		ID:        typeid.NewPathID(),
		OwnerID:   ownerID,
		Name:      name,
		Source:    d,
		Formatted: eng.Formatted(),
	})
	if err != nil {
		return nil, fmt.Errorf("create path: %w", err)
	}

	return toSavedPath(p, eng), nil
}

func (s *Service) Get(ctx context.Context, pathID, userID string) (*SavedPath, error) {
	p, err := s.owned(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}
	return s.stored(p), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]SavedPath, error) {
	rows, err := s.queries.ListPathsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}

	paths := make([]SavedPath, 0, len(rows))
	for _, p := range rows {
		paths = append(paths, *s.stored(p))
	}

	return paths, nil
}

// Update replaces the name and path data of a saved path. An empty name
// keeps the current one.
func (s *Service) Update(ctx context.Context, pathID, userID, name, d string) (*SavedPath, error) {
	current, err := s.owned(ctx, pathID, userID)
	if err != nil {
		return nil, err
	}

	eng, err := s.load(d)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}

	p, err := s.queries.UpdatePath(ctx, db.UpdatePathParams{
		ID:        pathID,
		Name:      name,
		Source:    d,
		Formatted: eng.Formatted(),
	})
	if err != nil {
		return nil, fmt.Errorf("update path: %w", err)
	}

	return toSavedPath(p, eng), nil
}

func (s *Service) Delete(ctx context.Context, pathID, userID string) error {
	if _, err := s.owned(ctx, pathID, userID); err != nil {
		return err
	}
	return s.queries.DeletePath(ctx, pathID)
}

func (s *Service) owned(ctx context.Context, pathID, userID string) (db.Path, error) {
	p, err := s.queries.GetPath(ctx, pathID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Path{}, ErrNotFound
		}
		return db.Path{}, fmt.Errorf("get path: %w", err)
	}
	if p.OwnerID != userID {
		return db.Path{}, ErrForbidden
	}
	return p, nil
}

// stored renders a row read back from the database.
func (s *Service) stored(p db.Path) *SavedPath {
	eng, err := s.load(p.Source)
	if err != nil {
		slog.Warn("stored path no longer converts", "path", p.ID, "error", err)
		sp := toSavedPath(p, nil)
		sp.Error = err.Error()
		return sp
	}
	return toSavedPath(p, eng)
}

func (s *Service) load(d string) (*engine.Engine, error) {
	if s.maxPathLength > 0 && len(d) > s.maxPathLength {
		return nil, ErrPathTooLong
	}
	eng := engine.NewEngine(s.conv)
	if err := eng.SetPath(d); err != nil {
		return nil, fmt.Errorf("convert path: %w", err)
	}
	return eng, nil
}

func toSavedPath(p db.Path, eng *engine.Engine) *SavedPath {
	sp := &SavedPath{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Source:    p.Source,
		Formatted: p.Formatted,
		CreatedAt: p.CreatedAt.Time.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.Time.Format("2006-01-02T15:04:05Z"),
	}
	if eng != nil {
		draw := eng.DrawCommand(p.ID)
		sp.Draw = &draw
	}
	return sp
}
