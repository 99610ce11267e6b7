package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	"searchmind/internal/rag/schema"
	"searchmind/pkg/logger"
)

// PostgresStore is a VectorStore backed by Postgres with the pgvector
// extension. Similarity is 1 - cosine distance, computed by the `<=>`
// operator; ties fall back to insertion order via the primary key.
type PostgresStore struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgresStore creates a PostgresStore on an initialized database handle.
func NewPostgresStore(db *sql.DB, log *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// Insert persists one embedding record.
func (s *PostgresStore) Insert(ctx context.Context, content string, vector []float32, meta schema.Metadata) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (content, embedding, metadata) VALUES ($1, $2, $3)`,
		content, pgvector.NewVector(vector), metaJSON,
	)
	if err != nil {
		return fmt.Errorf("%w: insert: %v", ErrUnavailable, err)
	}
	return nil
}

// Nearest performs a cosine similarity search above threshold.
func (s *PostgresStore) Nearest(ctx context.Context, vector []float32, k int, threshold float64) ([]schema.RetrievedDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			content,
			metadata,
			1 - (embedding <=> $1) AS similarity
		FROM documents
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY embedding <=> $1, id
		LIMIT $3`,
		pgvector.NewVector(vector), threshold, k,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity query: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var results []schema.RetrievedDocument
	for rows.Next() {
		var doc schema.RetrievedDocument
		var metaJSON []byte
		if err := rows.Scan(&doc.Content, &metaJSON, &doc.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrUnavailable, err)
		}
		if err := json.Unmarshal(metaJSON, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrUnavailable, err)
	}

	return results, nil
}

// Count returns the number of persisted records.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrUnavailable, err)
	}
	return count, nil
}

// LastUpdated returns the most recent insert timestamp, nil when empty.
func (s *PostgresStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT MAX(created_at) FROM documents`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("%w: last updated: %v", ErrUnavailable, err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

// DeleteAll removes every record.
func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return fmt.Errorf("%w: delete all: %v", ErrUnavailable, err)
	}
	s.log.Info("All documents have been removed from the store")
	return nil
}

var _ VectorStore = (*PostgresStore)(nil)
