package templates

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	DB Querier
}

func NewStore(db Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, type, document, created_at, updated_at
    FROM templates
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		var doc []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &doc, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		categories, err := Canonicalize(doc)
		if err != nil {
			return nil, err
		}
		t.Categories = categories
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Template, error) {
	var t Template
	var doc []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, type, document, created_at, updated_at
    FROM templates
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Name, &t.Type, &doc, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, err
	}
	t.Categories, err = Canonicalize(doc)
	return t, err
}

func (s *Store) Create(ctx context.Context, t Template) (string, error) {
	doc, err := MarshalCategories(t.Categories)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO templates (name, type, document)
    VALUES ($1, $2, $3)
    RETURNING id
  `, t.Name, t.Type, doc).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, t Template) error {
	doc, err := MarshalCategories(t.Categories)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE templates
    SET name = $2, type = $3, document = $4, updated_at = now()
    WHERE id = $1
  `, t.ID, t.Name, t.Type, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
