package organizations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"donordesk-backend/internal/shared/server/respond"
)

// Handler wires organization CRUD directly to the repository.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches organization routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/organizations", h.create)
	rg.GET("/organizations", h.list)
	rg.GET("/organizations/:id", h.get)
	rg.PUT("/organizations/:id", h.update)
	rg.DELETE("/organizations/:id", h.remove)
}

type orgRequest struct {
	Name        string `json:"name"`
	AddressLine string `json:"addressLine,omitempty"`
	City        string `json:"city,omitempty"`
	HeaderImage string `json:"headerImage,omitempty"`
	FooterImage string `json:"footerImage,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req orgRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	org := Organization{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		AddressLine: req.AddressLine,
		City:        req.City,
		HeaderImage: req.HeaderImage,
		FooterImage: req.FooterImage,
		Logo:        req.Logo,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), org); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create organization", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, org)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list organizations", nil)
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	org, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch organization")
		return
	}
	respond.JSON(c, http.StatusOK, org)
}

func (h *Handler) update(c *gin.Context) {
	var req orgRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	org := Organization{
		ID:          c.Param("id"),
		Name:        strings.TrimSpace(req.Name),
		AddressLine: req.AddressLine,
		City:        req.City,
		HeaderImage: req.HeaderImage,
		FooterImage: req.FooterImage,
		Logo:        req.Logo,
	}
	if err := h.Repo.Update(c.Request.Context(), org); err != nil {
		h.writeError(c, err, "failed to update organization")
		return
	}

	updated, err := h.Repo.GetByID(c.Request.Context(), org.ID)
	if err != nil {
		h.writeError(c, err, "failed to fetch organization")
		return
	}
	respond.JSON(c, http.StatusOK, updated)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete organization")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "organization not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
