// Package folders provides the PostgreSQL-backed repository for folder rows.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a folder row. A hit on the (owner_id, name) unique index
// yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {

	query :=
		`INSERT INTO folders (id, name, owner_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.Name, folder.OwnerID, folder.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query :=
		`SELECT id, name, owner_id, created_at FROM folders
		 WHERE id = $1
		 `

	folder := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&folder.ID, &folder.Name, &folder.OwnerID, &folder.CreatedAt)

	if err != nil {
		// A non-uuid id fails the cast; same outcome as a missing row.
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

func (r *PostgresRepository) GetByNameAndOwner(ctx context.Context, name, ownerID string) (*models.Folder, error) {
	query :=
		`SELECT id, name, owner_id, created_at FROM folders
		 WHERE name = $1 AND owner_id = $2
		 `

	folder := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, name, ownerID).Scan(&folder.ID, &folder.Name, &folder.OwnerID, &folder.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

// SelectByOwner returns every folder owned by ownerID, oldest first.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	query :=
		`SELECT id, name, owner_id, created_at FROM folders
		 WHERE owner_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		var item models.Folder
		if err := rows.Scan(&item.ID, &item.Name, &item.OwnerID, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the folder row. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM folders WHERE id = $1`

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
