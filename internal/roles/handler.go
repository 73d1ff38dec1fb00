package roles

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"donordesk-backend/internal/shared/server/respond"
)

// Handler exposes role CRUD over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches role routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/roles", h.create)
	rg.GET("/roles", h.list)
	rg.GET("/roles/:id", h.get)
	rg.PUT("/roles/:id", h.update)
	rg.DELETE("/roles/:id", h.remove)
}

type roleRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}
	if req.Permissions == nil {
		req.Permissions = map[string]bool{}
	}

	role := Role{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Permissions: req.Permissions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), role); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create role", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, role)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list roles", nil)
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	role, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch role")
		return
	}
	respond.JSON(c, http.StatusOK, role)
}

func (h *Handler) update(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}
	if req.Permissions == nil {
		req.Permissions = map[string]bool{}
	}

	role := Role{
		ID:          c.Param("id"),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Permissions: req.Permissions,
	}
	if err := h.Repo.Update(c.Request.Context(), role); err != nil {
		h.writeError(c, err, "failed to update role")
		return
	}

	updated, err := h.Repo.GetByID(c.Request.Context(), role.ID)
	if err != nil {
		h.writeError(c, err, "failed to fetch role")
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete role")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
