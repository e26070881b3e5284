// Package files provides the PostgreSQL-backed repository for file metadata.
// Content bytes are handled separately by the blob store.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
)

const fileColumns = `id, name, content_type, size, storage_key, folder_id, owner_id, created_at`

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file metadata row. A hit on the (owner_id, folder_id,
// name) unique index yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (id, name, content_type, size, storage_key, folder_id, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.Name, file.ContentType, file.Size, file.StorageKey, file.FolderID, file.OwnerID, file.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.Name, &file.ContentType, &file.Size, &file.StorageKey, &file.FolderID, &file.OwnerID, &file.CreatedAt)

	if err != nil {
		// A non-uuid id fails the cast; same outcome as a missing row.
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) GetByNameAndFolder(ctx context.Context, name, folderID, ownerID string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE name = $1 AND folder_id = $2 AND owner_id = $3`

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, name, folderID, ownerID).Scan(
		&file.ID, &file.Name, &file.ContentType, &file.Size, &file.StorageKey, &file.FolderID, &file.OwnerID, &file.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// SelectByOwner returns metadata for every file the user owns, oldest first.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE owner_id = $1 ORDER BY created_at`

	return r.selectMany(ctx, query, ownerID)
}

// SelectByFolderAndOwner returns metadata for the files in one folder,
// scoped to the owner.
func (r *PostgresRepository) SelectByFolderAndOwner(ctx context.Context, folderID, ownerID string) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE folder_id = $1 AND owner_id = $2 ORDER BY created_at`

	return r.selectMany(ctx, query, folderID, ownerID)
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.File, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(
			&item.ID, &item.Name, &item.ContentType, &item.Size, &item.StorageKey, &item.FolderID, &item.OwnerID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes one file row. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByFolder removes all file rows for a folder scoped to the owner.
// Zero affected rows is fine (empty folder).
func (r *PostgresRepository) DeleteByFolder(ctx context.Context, folderID, ownerID string) error {
	query := `DELETE FROM files WHERE folder_id = $1 AND owner_id = $2`

	if _, err := r.db.ExecContext(ctx, query, folderID, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
