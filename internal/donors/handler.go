package donors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"donordesk-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches donor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/donors", h.create)
	rg.GET("/donors", h.list)
	rg.GET("/donors/:id", h.get)
	rg.GET("/donors/code/:code", h.getByCode)
	rg.PUT("/donors/:id", h.update)
	rg.DELETE("/donors/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var req DonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	donor, err := h.Svc.Create(c.Request.Context(), req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create donor", nil)
		}
		return
	}

	c.Set("donorCode", donor.Code)
	respond.JSON(c, http.StatusCreated, toResponse(donor))
}

func (h *Handler) list(c *gin.Context) {
	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)

	out, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list donors", nil)
		return
	}

	resp := make([]DonorResponse, 0, len(out))
	for _, donor := range out {
		resp = append(resp, toResponse(donor))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid donor id", nil)
		return
	}

	donor, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "failed to fetch donor")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(donor))
}

func (h *Handler) getByCode(c *gin.Context) {
	donor, err := h.Svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err, "failed to fetch donor")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(donor))
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid donor id", nil)
		return
	}

	var req DonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	donor := req.toModel()
	donor.ID = id
	if err := h.Svc.Update(c.Request.Context(), donor); err != nil {
		h.writeError(c, err, "failed to update donor")
		return
	}

	updated, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "failed to fetch donor")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid donor id", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "failed to delete donor")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "donor not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	val := def
	if raw := c.Query(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			val = parsed
		}
	}
	if val < 0 {
		val = 0
	}
	return val
}
