package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   pgtype.Timestamptz
}

type Path struct {
	ID        string
	OwnerID   string
	Name      string
	Source    string
	Formatted string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

const createUser = `INSERT INTO users (id, email, password, display_name)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password, display_name, created_at`

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Email, arg.Password, arg.DisplayName)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.DisplayName, &i.CreatedAt)
	return i, err
}

const getUserByEmail = `SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.DisplayName, &i.CreatedAt)
	return i, err
}

const getUserByID = `SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Email, &i.Password, &i.DisplayName, &i.CreatedAt)
	return i, err
}

const createPath = `INSERT INTO paths (id, owner_id, name, source, formatted)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, owner_id, name, source, formatted, created_at, updated_at`

type CreatePathParams struct {
	ID        string
	OwnerID   string
	Name      string
	Source    string
	Formatted string
}

func (q *Queries) CreatePath(ctx context.Context, arg CreatePathParams) (Path, error) {
	row := q.db.QueryRow(ctx, createPath, arg.ID, arg.OwnerID, arg.Name, arg.Source, arg.Formatted)
	var i Path
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Source, &i.Formatted, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getPath = `SELECT id, owner_id, name, source, formatted, created_at, updated_at FROM paths WHERE id = $1`

func (q *Queries) GetPath(ctx context.Context, id string) (Path, error) {
	row := q.db.QueryRow(ctx, getPath, id)
	var i Path
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Source, &i.Formatted, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listPathsForOwner = `SELECT id, owner_id, name, source, formatted, created_at, updated_at
FROM paths WHERE owner_id = $1 ORDER BY updated_at DESC`

func (q *Queries) ListPathsForOwner(ctx context.Context, ownerID string) ([]Path, error) {
	rows, err := q.db.Query(ctx, listPathsForOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Path
	for rows.Next() {
		var i Path
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Source, &i.Formatted, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updatePath = `UPDATE paths SET name = $2, source = $3, formatted = $4, updated_at = now()
WHERE id = $1
RETURNING id, owner_id, name, source, formatted, created_at, updated_at`

type UpdatePathParams struct {
	ID        string
	Name      string
	Source    string
	Formatted string
}

func (q *Queries) UpdatePath(ctx context.Context, arg UpdatePathParams) (Path, error) {
	row := q.db.QueryRow(ctx, updatePath, arg.ID, arg.Name, arg.Source, arg.Formatted)
	var i Path
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Source, &i.Formatted, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deletePath = `DELETE FROM paths WHERE id = $1`

func (q *Queries) DeletePath(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deletePath, id)
	return err
}
