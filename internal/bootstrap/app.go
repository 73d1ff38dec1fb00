package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"donordesk-backend/internal/donations"
	"donordesk-backend/internal/donors"
	"donordesk-backend/internal/messaging"
	"donordesk-backend/internal/organizations"
	"donordesk-backend/internal/receipts"
	"donordesk-backend/internal/roles"
	"donordesk-backend/internal/shared/config"
	"donordesk-backend/internal/shared/pdf"
	"donordesk-backend/internal/shared/pdf/chrome"
	"donordesk-backend/internal/shared/server"
	"donordesk-backend/internal/shared/storage/db"
	"donordesk-backend/internal/shared/storage/object"
	localstore "donordesk-backend/internal/shared/storage/object/local"
	s3store "donordesk-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DonorsRepo        donors.Repo
	DonationsRepo     donations.Repo
	OrganizationsRepo organizations.Repo
	RolesRepo         roles.Repo

	DonorsService    *donors.Service
	DonationsService *donations.Service
	ReceiptsService  *receipts.Service

	Messenger messaging.Sender
	PDFEngine pdf.Engine
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, localDir, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		Messenger: messaging.NewGatewayClient(cfg.MessagingURL, cfg.MessagingAppKey, cfg.MessagingAuth),
		PDFEngine: chrome.New(cfg.ChromePath),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		DonorHandler:        donors.NewHandler(app.DonorsService),
		DonationHandler:     donations.NewHandler(app.DonationsService),
		OrganizationHandler: organizations.NewHandler(app.OrganizationsRepo),
		RoleHandler:         roles.NewHandler(app.RolesRepo),
		ReceiptHandler:      receipts.NewHandler(app.ReceiptsService),
		LocalFilesDir:       localDir,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// buildStore returns the object store plus the directory to serve under
// /files when running on the local store.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, string, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, "", fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		return store, "", err
	default:
		store := localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL)
		return store, cfg.LocalStoreDir, nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.DonorsRepo = &donors.PGRepo{DB: app.DB}
		app.DonationsRepo = &donations.PGRepo{DB: app.DB}
		app.OrganizationsRepo = &organizations.PGRepo{DB: app.DB}
		app.RolesRepo = &roles.PGRepo{DB: app.DB}
	} else {
		app.DonorsRepo = donors.NewMemoryRepo()
		app.DonationsRepo = donations.NewMemoryRepo()
		app.OrganizationsRepo = organizations.NewMemoryRepo()
		app.RolesRepo = roles.NewMemoryRepo()
	}

	app.DonorsService = donors.NewService(app.DonorsRepo)
	app.DonationsService = donations.NewService(app.DonationsRepo, app.DonorsRepo)

	renderer, err := receipts.NewRenderer()
	if err != nil {
		return err
	}
	app.ReceiptsService = receipts.NewService(app.DonorsRepo, app.Store, app.Messenger, renderer, app.PDFEngine)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
