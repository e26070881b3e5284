package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/server/blob"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// FileContent is the payload returned by DownloadFile: the stored bytes plus
// the metadata a client needs to reconstruct the original upload.
type FileContent struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileService handles file uploads, downloads and deletion. Metadata lives in
// the files table, content bytes in a blob.Store keyed by an opaque storage
// key generated at upload time.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	logger      logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		logger:      logger.With("module", "file_service"),
	}
}

// UploadFile stores content under a fresh storage key and records the file
// metadata. The target folder must exist and belong to ownerID, otherwise
// common.ErrorNotFoundOrForbidden. A file with the same name in the same
// folder yields common.ErrorAlreadyExists, enforced both by a pre-check and
// by the (owner_id, folder_id, name) unique index.
func (s *FileService) UploadFile(ctx context.Context, folderID, name, contentType string, content []byte, ownerID string) (*models.File, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: file name must not be empty", common.ErrorValidation)
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	folder, err := s.repomanager.Folders(s.db).GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFoundOrForbidden
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if folder.OwnerID != ownerID {
		return nil, common.ErrorNotFoundOrForbidden
	}

	fileRepo := s.repomanager.Files(s.db)

	_, err = fileRepo.GetByNameAndFolder(ctx, name, folderID, ownerID)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	key := blob.NewStorageKey()
	if err := s.blobs.Put(ctx, key, content); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	file := &models.File{
		ID:          uuid.NewString(),
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		StorageKey:  key,
		FolderID:    folderID,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := fileRepo.Create(ctx, file)
	if err != nil {
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			s.logger.Warn(ctx, "orphan blob left behind", "storage_key", key, "error", derr.Error())
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// DownloadFile returns the stored content of the file. A missing file and a
// file owned by someone else are indistinguishable to the caller.
func (s *FileService) DownloadFile(ctx context.Context, fileID, ownerID string) (*FileContent, error) {
	file, err := s.getOwned(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	data, err := s.blobs.Get(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &FileContent{
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        data,
	}, nil
}

// DeleteFile removes the metadata row and then the content blob. Blob removal
// is best-effort after the row is gone.
func (s *FileService) DeleteFile(ctx context.Context, fileID, ownerID string) error {
	file, err := s.getOwned(ctx, fileID, ownerID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Files(s.db).Delete(ctx, fileID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFoundOrForbidden
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		s.logger.Warn(ctx, "orphan blob left behind", "storage_key", file.StorageKey, "error", err.Error())
	}
	return nil
}

// ListFiles returns metadata for every file owned by ownerID across all
// folders.
func (s *FileService) ListFiles(ctx context.Context, ownerID string) ([]*models.File, error) {
	files, err := s.repomanager.Files(s.db).SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return files, nil
}

func (s *FileService) getOwned(ctx context.Context, fileID, ownerID string) (*models.File, error) {
	file, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFoundOrForbidden
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if file.OwnerID != ownerID {
		return nil, common.ErrorNotFoundOrForbidden
	}
	return file, nil
}
