package files

import (
	"context"

	"github.com/dmitrijs2005/gophstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	GetByNameAndFolder(ctx context.Context, name, folderID, ownerID string) (*models.File, error)
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.File, error)
	SelectByFolderAndOwner(ctx context.Context, folderID, ownerID string) ([]*models.File, error)
	Delete(ctx context.Context, id string) error
	DeleteByFolder(ctx context.Context, folderID, ownerID string) error
}
