package folders

import (
	"context"

	"github.com/dmitrijs2005/gophstore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	GetByID(ctx context.Context, id string) (*models.Folder, error)
	GetByNameAndOwner(ctx context.Context, name, ownerID string) (*models.Folder, error)
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error)
	Delete(ctx context.Context, id string) error
}
