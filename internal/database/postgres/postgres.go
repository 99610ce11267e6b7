package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"searchmind/internal/config"
	"searchmind/pkg/logger"
)

// connectTimeout bounds the initial connectivity probe.
const connectTimeout = 5 * time.Second

// GetDB opens a pooled connection to Postgres and prepares the schema the
// vector store needs: the pgvector extension, the documents table and an HNSW
// cosine index. Under load the bounded pool degrades as latency, never as
// unbounded queuing.
func GetDB(cfg *config.PostgresConfig, log *logger.Logger) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is not configured")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(30 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := bootstrap(ctx, db, cfg.EmbeddingDim); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("Database initialized successfully")
	return db, nil
}

// bootstrap creates the extension, table and index if they do not exist.
func bootstrap(ctx context.Context, db *sql.DB, embeddingDim int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, embeddingDim),
		`CREATE INDEX IF NOT EXISTS documents_embedding_idx
			ON documents USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
