package donations

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

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

// RegisterRoutes attaches donation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/donations", h.create)
	rg.GET("/donations", h.list)
	rg.GET("/donations/report", h.report)
	rg.GET("/donations/report/pdf", h.reportPDF)
	rg.GET("/donations/:id", h.get)
	rg.PUT("/donations/:id", h.update)
	rg.DELETE("/donations/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	donation, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid date, expected YYYY-MM-DD", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), donation)
	if err != nil {
		h.writeError(c, err, "failed to create donation")
		return
	}

	c.Set("donationId", created.ID)
	respond.JSON(c, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	out, err := h.Svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list donations", nil)
		return
	}

	resp := make([]DonationResponse, 0, len(out))
	for _, donation := range out {
		resp = append(resp, toResponse(donation))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) report(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	summary, err := h.Svc.Summarize(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build report", nil)
		return
	}
	respond.JSON(c, http.StatusOK, summary)
}

func (h *Handler) reportPDF(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	rows, err := h.Svc.ListAll(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build report", nil)
		return
	}

	pdfBytes, err := RenderReportPDF(rows, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render report", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="donations_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) get(c *gin.Context) {
	donation, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch donation")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(donation))
}

func (h *Handler) update(c *gin.Context) {
	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	donation, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	donation.ID = c.Param("id")

	if err := h.Svc.Update(c.Request.Context(), donation); err != nil {
		h.writeError(c, err, "failed to update donation")
		return
	}

	updated, err := h.Svc.Get(c.Request.Context(), donation.ID)
	if err != nil {
		h.writeError(c, err, "failed to fetch donation")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(updated))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete donation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "donation not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func filterFromQuery(c *gin.Context) (Filter, error) {
	filter := Filter{
		DonorCode:     c.Query("donorCode"),
		PaymentMethod: c.Query("paymentMethod"),
		Purpose:       c.Query("purpose"),
	}
	if filter.PaymentMethod != "" && !ValidMethod(filter.PaymentMethod) {
		return Filter{}, fmt.Errorf("unknown payment method %q", filter.PaymentMethod)
	}
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		filter.To = parsed
	}
	return filter, nil
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
