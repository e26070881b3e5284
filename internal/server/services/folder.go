package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/server/blob"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// FolderListing is a folder together with the metadata of every file it
// contains, as returned by ListFolders.
type FolderListing struct {
	Folder *models.Folder
	Files  []*models.File
}

// FolderService enforces per-owner folder name uniqueness and the
// files-before-folder cascade on delete.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	logger      logging.Logger
}

func NewFolderService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, logger logging.Logger) *FolderService {
	return &FolderService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      logger.With("module", "folder_service"),
	}
}

// CreateFolder persists a new folder for ownerID. A folder with the same
// name for the same owner yields common.ErrorAlreadyExists. The friendly
// pre-check is racy on its own; the (owner_id, name) unique index backstops
// it and the constraint hit maps to the same error.
func (s *FolderService) CreateFolder(ctx context.Context, name, ownerID string) (*models.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name must not be empty", common.ErrorValidation)
	}

	repo := s.repomanager.Folders(s.db)

	_, err := repo.GetByNameAndOwner(ctx, name, ownerID)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := repo.Create(ctx, folder)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// ListFolders returns every folder owned by ownerID, each eagerly populated
// with its file metadata. Not paginated.
func (s *FolderService) ListFolders(ctx context.Context, ownerID string) ([]*FolderListing, error) {
	folderRepo := s.repomanager.Folders(s.db)
	fileRepo := s.repomanager.Files(s.db)

	folders, err := folderRepo.SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	result := make([]*FolderListing, 0, len(folders))
	for _, folder := range folders {
		files, err := fileRepo.SelectByFolderAndOwner(ctx, folder.ID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		result = append(result, &FolderListing{Folder: folder, Files: files})
	}
	return result, nil
}

// DeleteFolder removes the folder and everything in it. A missing folder and
// a folder owned by someone else are indistinguishable to the caller. File
// rows and the folder row go in one transaction; content blobs are removed
// after commit, best-effort (an orphan blob is unreachable, a dangling file
// row is not).
func (s *FolderService) DeleteFolder(ctx context.Context, folderID, ownerID string) error {
	folderRepo := s.repomanager.Folders(s.db)

	folder, err := folderRepo.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFoundOrForbidden
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if folder.OwnerID != ownerID {
		return common.ErrorNotFoundOrForbidden
	}

	files, err := s.repomanager.Files(s.db).SelectByFolderAndOwner(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Files(tx).DeleteByFolder(ctx, folderID, ownerID); err != nil {
			return err
		}
		return s.repomanager.Folders(tx).Delete(ctx, folderID)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	for _, f := range files {
		if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
			s.logger.Warn(ctx, "orphan blob left behind", "storage_key", f.StorageKey, "error", err.Error())
		}
	}
	return nil
}
