package receipts

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"donordesk-backend/internal/shared/metrics"
	"donordesk-backend/internal/shared/telemetry"
)

// maxReceiptUpload caps the prepared-document upload size at 10 MiB.
const maxReceiptUpload = 10 << 20

// Handler exposes the two receipt delivery modes. Response shapes here are a
// fixed external contract consumed by the UI, so the bodies are plain
// {message} objects rather than the shared error envelope.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes attaches receipt routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/receipts/send", h.sendPrepared)
	rg.POST("/receipts/render", h.renderAndSend)
}

// sendPrepared handles the manual-upload mode: multipart form with donorId
// and a PDF file.
func (h *Handler) sendPrepared(c *gin.Context) {
	donorID := c.PostForm("donorId")
	fileHeader, err := c.FormFile("file")
	if donorID == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	if fileHeader.Size > maxReceiptUpload {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxReceiptUpload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to read uploaded file"})
		return
	}

	start := time.Now()
	resp, err := h.Service.SendPrepared(c.Request.Context(), donorID, fileHeader.Filename, content)
	if err != nil {
		h.writeSendError(c, err)
		return
	}
	metrics.IncReceiptSent()
	metrics.ObserveReceiptDurationMs(float64(time.Since(start).Milliseconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent successfully", "response": resp})
}

type renderAndSendRequest struct {
	DonorID     string `json:"donorId"`
	ReceiptData struct {
		Organization    OrganizationInfo `json:"organization"`
		Donation        DonationInfo     `json:"donation"`
		ReceiptMessage  string           `json:"receiptMessage"`
		NoCustomMessage bool             `json:"noCustomMessage"`
	} `json:"receiptData"`
}

// renderAndSend handles the render mode: JSON payload with donorId and the
// receipt data to template into a PDF.
func (h *Handler) renderAndSend(c *gin.Context) {
	var req renderAndSendRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DonorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	start := time.Now()
	_, err := h.Service.RenderAndSend(c.Request.Context(), req.DonorID, RenderRequest{
		Organization:    req.ReceiptData.Organization,
		Donation:        req.ReceiptData.Donation,
		Message:         req.ReceiptData.ReceiptMessage,
		NoCustomMessage: req.ReceiptData.NoCustomMessage,
	})
	if err != nil {
		h.writeRenderError(c, err)
		return
	}
	metrics.IncReceiptSent()
	metrics.ObserveReceiptDurationMs(float64(time.Since(start).Milliseconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent successfully"})
}

// writeSendError maps pipeline errors for the manual-upload mode, which
// distinguishes bad input (400) and a donor without a phone number (404).
func (h *Handler) writeSendError(c *gin.Context, err error) {
	metrics.IncReceiptFailed()
	switch {
	case errors.Is(err, ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
	case errors.Is(err, ErrPhoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Donor phone number not found"})
	default:
		telemetry.Error("receipt pipeline failed", map[string]any{"err": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// writeRenderError maps pipeline errors for the render mode. Its contract is
// 200 or 500 only: everything past request binding, including an unknown
// donor, surfaces as 500 with the error text.
func (h *Handler) writeRenderError(c *gin.Context, err error) {
	metrics.IncReceiptFailed()
	telemetry.Error("receipt pipeline failed", map[string]any{"err": err.Error()})
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}
