package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// postgresStore keeps documents in a single jsonb table, one row per
// document. It exists for deployments that already run Postgres and do not
// want a second database; the primitives behave identically to the Mongo
// backend.
type postgresStore struct {
	db *sqlx.DB
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id UUID NOT NULL,
	doc JSONB NOT NULL,
	PRIMARY KEY (collection, id)
)`

// NewPostgresStore opens the connection and ensures the documents table
// exists.
func NewPostgresStore(dsn string) (Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Create(ctx context.Context, collection string, id uuid.UUID, doc interface{}) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}
	fields["id"] = id.String()

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	query := `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, collection, id, data); err != nil {
		return fmt.Errorf("failed to create document in %s: %w", collection, err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, collection string, id uuid.UUID, out interface{}) error {
	query := `SELECT doc FROM documents WHERE collection = $1 AND id = $2`
	var data []byte
	err := s.db.GetContext(ctx, &data, query, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get document from %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

func (s *postgresStore) Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]interface{}) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	query := `UPDATE documents SET doc = doc || $3::jsonb WHERE collection = $1 AND id = $2`
	res, err := s.db.ExecContext(ctx, query, collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to update document in %s: %w", collection, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) List(ctx context.Context, collection string, filters []Filter, out interface{}) error {
	query := `SELECT doc FROM documents WHERE collection = $1`
	args := []interface{}{collection}
	for _, f := range filters {
		args = append(args, f.Field, f.Value)
		query += fmt.Sprintf(" AND doc->>$%d = $%d", len(args)-1, len(args))
	}

	var rows [][]byte
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("failed to list documents in %s: %w", collection, err)
	}

	docs := make([]map[string]interface{}, 0, len(rows))
	for _, data := range rows {
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	return fromDocuments(docs, out)
}

func (s *postgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}
