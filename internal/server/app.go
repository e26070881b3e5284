// Package server initializes and runs the storage server: it opens the
// database, applies migrations, wires repositories, services and the HTTP
// transport, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophstore/internal/logging"
	"github.com/dmitrijs2005/gophstore/internal/server/blob"
	"github.com/dmitrijs2005/gophstore/internal/server/config"
	"github.com/dmitrijs2005/gophstore/internal/server/httpapi"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophstore/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	userService   *services.UserService
	folderService *services.FolderService
	fileService   *services.FileService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := newBlobStore(cfg, db)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(db, m, cfg)
	fos := services.NewFolderService(db, m, blobs, logger)
	fis := services.NewFileService(db, m, blobs, logger)

	return &App{
		config:        cfg,
		logger:        logger,
		userService:   us,
		folderService: fos,
		fileService:   fis,
	}, nil
}

func newBlobStore(cfg *config.Config, db *sql.DB) (blob.Store, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendPostgres:
		return blob.NewPostgresStore(db), nil
	case config.BlobBackendS3:
		return blob.NewS3Store(blob.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		}), nil
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.BlobBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config, app.logger, app.userService, app.folderService, app.fileService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
