package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
)

// PostgresStore keeps content as bytea rows in the file_blobs table.
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore constructs a store bound to the given DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	query :=
		`INSERT INTO file_blobs (storage_key, content)
		 VALUES ($1, $2)
		 `

	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query :=
		`SELECT content FROM file_blobs
		 WHERE storage_key = $1
		 `

	var content []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	// Scan returns nil for an empty bytea; callers expect bytes.
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM file_blobs WHERE storage_key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
