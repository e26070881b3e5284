package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/dbx"
	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/files"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/users"
)

// In-memory fakes used by service tests. They implement the repository
// interfaces over plain maps and ignore the DBTX they are handed, so service
// logic can be exercised without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.nextID++
	u := *user
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeFolderRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{byID: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.OwnerID == folder.OwnerID && f.Name == folder.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *folder
	r.byID[c.ID] = &c
	return &c, nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *f
	return &c, nil
}

func (r *fakeFolderRepo) GetByNameAndOwner(ctx context.Context, name, ownerID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.OwnerID == ownerID && f.Name == name {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeFolderRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Folder
	for _, f := range r.byID {
		if f.OwnerID == ownerID {
			c := *f
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeFileRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.File
	createErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{byID: make(map[string]*models.File)}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, f := range r.byID {
		if f.OwnerID == file.OwnerID && f.FolderID == file.FolderID && f.Name == file.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *file
	r.byID[c.ID] = &c
	return &c, nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *f
	return &c, nil
}

func (r *fakeFileRepo) GetByNameAndFolder(ctx context.Context, name, folderID, ownerID string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.OwnerID == ownerID && f.FolderID == folderID && f.Name == name {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeFileRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.File
	for _, f := range r.byID {
		if f.OwnerID == ownerID {
			c := *f
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *fakeFileRepo) SelectByFolderAndOwner(ctx context.Context, folderID, ownerID string) ([]*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.File
	for _, f := range r.byID {
		if f.OwnerID == ownerID && f.FolderID == folderID {
			c := *f
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeFileRepo) DeleteByFolder(ctx context.Context, folderID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, f := range r.byID {
		if f.OwnerID == ownerID && f.FolderID == folderID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeRepoManager struct {
	users   *fakeUserRepo
	folders *fakeFolderRepo
	files   *fakeFileRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newFakeUserRepo(),
		folders: newFakeFolderRepo(),
		files:   newFakeFileRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeRepoManager) Folders(db dbx.DBTX) folders.Repository              { return m.folders }
func (m *fakeRepoManager) Files(db dbx.DBTX) files.Repository                  { return m.files }

type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	c := make([]byte, len(data))
	copy(c, data)
	s.objects[key] = c
	return nil
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := make([]byte, len(data))
	copy(c, data)
	return c, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeBlobStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func addFile(t *testing.T, m *fakeRepoManager, id, name, folderID, ownerID, storageKey string) *models.File {
	t.Helper()
	f, err := m.files.Create(context.Background(), &models.File{
		ID:          id,
		Name:        name,
		ContentType: "text/plain",
		Size:        int64(len(name)),
		StorageKey:  storageKey,
		FolderID:    folderID,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("addFile: %v", err)
	}
	return f
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (nopLogger) With(args ...any) logging.Logger                    { return nopLogger{} }
