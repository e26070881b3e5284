// Package httpapi exposes the storage services over HTTP/JSON. Routes use
// method-qualified ServeMux patterns; responses are uniform success/message
// envelopes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/server/config"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/services"
)

// Service seams let handler tests substitute fakes for the real services.
type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type folderService interface {
	CreateFolder(ctx context.Context, name, ownerID string) (*models.Folder, error)
	ListFolders(ctx context.Context, ownerID string) ([]*services.FolderListing, error)
	DeleteFolder(ctx context.Context, folderID, ownerID string) error
}

type fileService interface {
	UploadFile(ctx context.Context, folderID, name, contentType string, content []byte, ownerID string) (*models.File, error)
	DownloadFile(ctx context.Context, fileID, ownerID string) (*services.FileContent, error)
	DeleteFile(ctx context.Context, fileID, ownerID string) error
	ListFiles(ctx context.Context, ownerID string) ([]*models.File, error)
}

type Server struct {
	address       string
	logger        logging.Logger
	users         userService
	folders       folderService
	files         fileService
	jwtSecret     []byte
	tokenIssuer   string
	tokenAudience string
}

func NewServer(cfg *config.Config, l logging.Logger, us userService, fos folderService, fis fileService) *Server {
	return &Server{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		users:         us,
		folders:       fos,
		files:         fis,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenIssuer:   cfg.TokenIssuer,
		tokenAudience: cfg.TokenAudience,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("POST /api/folders", s.withAuth(s.handleCreateFolder))
	mux.HandleFunc("GET /api/folders", s.withAuth(s.handleListFolders))
	mux.HandleFunc("DELETE /api/folders/{folderId}", s.withAuth(s.handleDeleteFolder))

	mux.HandleFunc("POST /api/files/upload", s.withAuth(s.handleUploadFile))
	mux.HandleFunc("GET /api/files/download/{fileId}", s.withAuth(s.handleDownloadFile))
	mux.HandleFunc("DELETE /api/files/{fileId}", s.withAuth(s.handleDeleteFile))
	mux.HandleFunc("GET /api/files", s.withAuth(s.handleListFiles))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
