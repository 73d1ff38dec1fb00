package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"donordesk-backend/internal/donations"
	"donordesk-backend/internal/donors"
	"donordesk-backend/internal/organizations"
	"donordesk-backend/internal/receipts"
	"donordesk-backend/internal/roles"
	"donordesk-backend/internal/shared/config"
	"donordesk-backend/internal/shared/metrics"
	"donordesk-backend/internal/shared/server/middleware"
	"donordesk-backend/internal/shared/server/respond"
)

// RouterDeps carries everything NewRouter needs. Handlers are constructed by
// bootstrap so tests can substitute repositories and clients.
type RouterDeps struct {
	Config              config.Config
	DonorHandler        *donors.Handler
	DonationHandler     *donations.Handler
	OrganizationHandler *organizations.Handler
	RoleHandler         *roles.Handler
	ReceiptHandler      *receipts.Handler

	// LocalFilesDir, when non-empty, serves the local object store under
	// /files so PublicURL links resolve in dev.
	LocalFilesDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.LocalFilesDir != "" {
		r.Static("/files", deps.LocalFilesDir)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.DonorHandler.RegisterRoutes(api)
	deps.DonationHandler.RegisterRoutes(api)
	deps.OrganizationHandler.RegisterRoutes(api)
	deps.RoleHandler.RegisterRoutes(api)
	deps.ReceiptHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
