package receipts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"donordesk-backend/internal/donors"
	"donordesk-backend/internal/messaging"
	"donordesk-backend/internal/shared/pdf"
	"donordesk-backend/internal/shared/storage/object"
	"donordesk-backend/internal/shared/telemetry"
	"donordesk-backend/internal/shared/util"
)

const thankYouMessage = "Thank you for your generous donation. Please find your receipt attached."

// Service orchestrates the receipt delivery pipeline: obtain PDF bytes
// (prepared upload or template render), stage them in object storage, send
// the public URL through the messaging gateway, then remove the staged
// object. The staged object never outlives the request.
type Service struct {
	Donors    donors.Repo
	Store     object.ObjectStore
	Messenger messaging.Sender
	Renderer  *Renderer
	PDF       pdf.Engine

	// now is swappable for deterministic storage keys in tests.
	now func() time.Time
}

// NewService constructs a Service.
func NewService(donorRepo donors.Repo, store object.ObjectStore, sender messaging.Sender, renderer *Renderer, engine pdf.Engine) *Service {
	return &Service{
		Donors:    donorRepo,
		Store:     store,
		Messenger: sender,
		Renderer:  renderer,
		PDF:       engine,
		now:       time.Now,
	}
}

// SendPrepared delivers a caller-supplied PDF to the donor identified by
// code. Returns the messaging gateway's response payload.
func (s *Service) SendPrepared(ctx context.Context, donorCode, fileName string, content []byte) (map[string]any, error) {
	if donorCode == "" || fileName == "" || len(content) == 0 {
		return nil, ErrMissingFields
	}

	donor, err := s.lookupDonor(ctx, donorCode)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, donor, fileName, content)
}

// RenderAndSend renders a receipt PDF from donation data and delivers it to
// the donor identified by code.
func (s *Service) RenderAndSend(ctx context.Context, donorCode string, req RenderRequest) (map[string]any, error) {
	if donorCode == "" {
		return nil, ErrMissingFields
	}

	donor, err := s.lookupDonor(ctx, donorCode)
	if err != nil {
		return nil, err
	}

	html, err := s.Renderer.Render(req, donor.DisplayName(), donor.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	content, err := s.PDF.RenderHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	fileName := fmt.Sprintf("receipt_%d.pdf", req.Donation.ReceiptNo)
	return s.deliver(ctx, donor, fileName, content)
}

// lookupDonor distinguishes "phone missing" (explicit not-found, 404 to the
// caller) from an underlying lookup failure (propagated).
func (s *Service) lookupDonor(ctx context.Context, code string) (donors.Donor, error) {
	donor, err := s.Donors.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, donors.ErrNotFound) {
			return donors.Donor{}, ErrPhoneNotFound
		}
		return donors.Donor{}, fmt.Errorf("donor lookup failed: %w", err)
	}
	if donor.Phone == "" {
		return donors.Donor{}, ErrPhoneNotFound
	}
	return donor, nil
}

// deliver runs the shared upload → dispatch → cleanup sequence. The staged
// object is removed on every exit path once the upload has happened; cleanup
// failure is logged and never masks the primary outcome.
func (s *Service) deliver(ctx context.Context, donor donors.Donor, fileName string, content []byte) (map[string]any, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}
	storageKey := fmt.Sprintf("receipts/%d_%s", s.now().UnixMilli(), name)

	if _, err := s.Store.SaveWithKey(ctx, storageKey, "application/pdf", bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	fileURL := s.Store.PublicURL(storageKey)
	resp, err := s.Messenger.Send(ctx, donor.Phone, thankYouMessage, fileURL)
	s.cleanup(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	telemetry.Info("receipt delivered", map[string]any{
		"donorCode": donor.Code,
		"to":        donor.Phone,
		"key":       storageKey,
	})
	return resp, nil
}

func (s *Service) cleanup(ctx context.Context, storageKey string) {
	if err := s.Store.Remove(ctx, storageKey); err != nil {
		telemetry.Warn("receipt cleanup failed", map[string]any{
			"key": storageKey,
			"err": err.Error(),
		})
	}
}
