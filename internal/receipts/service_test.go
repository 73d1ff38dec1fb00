package receipts

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"donordesk-backend/internal/donors"
)

// recordingStore tracks every object-store call so tests can assert on the
// upload/remove lifecycle.
type recordingStore struct {
	mu        sync.Mutex
	uploads   []string
	removes   []string
	saveErr   error
	removeErr error
}

func (s *recordingStore) SaveWithKey(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	n, _ := io.Copy(io.Discard, r)
	s.uploads = append(s.uploads, key)
	return n, nil
}

func (s *recordingStore) PublicURL(key string) string {
	return "https://files.example.org/" + key
}

func (s *recordingStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes = append(s.removes, key)
	return s.removeErr
}

type recordedSend struct {
	to, message, fileURL string
}

type recordingSender struct {
	mu    sync.Mutex
	sends []recordedSend
	err   error
}

func (s *recordingSender) Send(ctx context.Context, to, message, fileURL string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.sends = append(s.sends, recordedSend{to: to, message: message, fileURL: fileURL})
	return map[string]any{"status": "queued"}, nil
}

type stubEngine struct {
	err error
}

func (e stubEngine) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.4 " + html[:min(20, len(html))]), nil
}

func newTestService(t *testing.T, store *recordingStore, sender *recordingSender, engine stubEngine) (*Service, donors.Donor) {
	t.Helper()
	repo := donors.NewMemoryRepo()
	donor, err := repo.Create(context.Background(), donors.Donor{
		Type:      donors.TypePerson,
		FirstName: "Asha",
		LastName:  "Raman",
		Phone:     "+919999999999",
	})
	if err != nil {
		t.Fatalf("seed donor: %v", err)
	}

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	svc := NewService(repo, store, sender, renderer, engine)
	return svc, donor
}

func TestSendPreparedHappyPathCleansUp(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	resp, err := svc.SendPrepared(context.Background(), donor.Code, "receipt.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("SendPrepared: %v", err)
	}
	if resp["status"] != "queued" {
		t.Fatalf("unexpected response: %v", resp)
	}
	if len(store.uploads) != 1 || len(store.removes) != 1 {
		t.Fatalf("uploads=%d removes=%d, want 1/1", len(store.uploads), len(store.removes))
	}
	if store.uploads[0] != store.removes[0] {
		t.Fatalf("removed %q, uploaded %q", store.removes[0], store.uploads[0])
	}
	if !strings.HasPrefix(store.uploads[0], "receipts/") {
		t.Fatalf("key %q not under receipts/", store.uploads[0])
	}
	if len(sender.sends) != 1 || sender.sends[0].to != "+919999999999" {
		t.Fatalf("unexpected sends: %+v", sender.sends)
	}
	if !strings.Contains(sender.sends[0].fileURL, store.uploads[0]) {
		t.Fatalf("file URL %q does not reference uploaded key", sender.sends[0].fileURL)
	}
}

func TestDeliveryFailureStillRemovesUpload(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{err: errors.New("gateway returned 503")}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	_, err := svc.SendPrepared(context.Background(), donor.Code, "receipt.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrDelivery) {
		t.Fatalf("err = %v, want ErrDelivery", err)
	}
	if len(store.uploads) != 1 || len(store.removes) != 1 {
		t.Fatalf("uploads=%d removes=%d, want 1/1", len(store.uploads), len(store.removes))
	}
}

func TestCleanupFailureDoesNotMaskSuccess(t *testing.T) {
	store := &recordingStore{removeErr: errors.New("object gone")}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	if _, err := svc.SendPrepared(context.Background(), donor.Code, "receipt.pdf", []byte("%PDF-1.4")); err != nil {
		t.Fatalf("cleanup failure leaked into result: %v", err)
	}
}

func TestLookupFailureNeverTouchesStorage(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, _ := newTestService(t, store, sender, stubEngine{})

	_, err := svc.SendPrepared(context.Background(), "DNR99999", "receipt.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("err = %v, want ErrPhoneNotFound", err)
	}
	if len(store.uploads) != 0 || len(store.removes) != 0 || len(sender.sends) != 0 {
		t.Fatal("storage or messaging was touched before lookup succeeded")
	}
}

func TestMissingPhoneIsNotFound(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, _ := newTestService(t, store, sender, stubEngine{})
	repo := svc.Donors.(*donors.MemoryRepo)
	noPhone, err := repo.Create(context.Background(), donors.Donor{Type: donors.TypePerson, FirstName: "Kiran"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.SendPrepared(context.Background(), noPhone.Code, "receipt.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("err = %v, want ErrPhoneNotFound", err)
	}
	if len(store.uploads) != 0 {
		t.Fatal("uploaded despite missing phone")
	}
}

func TestValidationPrecedesAllCalls(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	cases := []struct {
		name    string
		code    string
		file    string
		content []byte
	}{
		{"missing donor", "", "receipt.pdf", []byte("x")},
		{"missing file name", donor.Code, "", []byte("x")},
		{"empty content", donor.Code, "receipt.pdf", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SendPrepared(context.Background(), tc.code, tc.file, tc.content)
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("err = %v, want ErrMissingFields", err)
			}
		})
	}
	if len(store.uploads) != 0 || len(store.removes) != 0 || len(sender.sends) != 0 {
		t.Fatal("collaborators called on invalid input")
	}
}

func TestStorageKeysAreUniquePerRequest(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	ts := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		ts = ts.Add(time.Millisecond)
		return ts
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.SendPrepared(context.Background(), donor.Code, "receipt.pdf", []byte("%PDF-1.4")); err != nil {
			t.Fatalf("SendPrepared: %v", err)
		}
	}
	if len(store.uploads) != 2 || store.uploads[0] == store.uploads[1] {
		t.Fatalf("expected two distinct keys, got %v", store.uploads)
	}
}

func TestUploadFailureSkipsCleanupAndDispatch(t *testing.T) {
	store := &recordingStore{saveErr: errors.New("bucket unavailable")}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	_, err := svc.SendPrepared(context.Background(), donor.Code, "receipt.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, ErrUpload) {
		t.Fatalf("err = %v, want ErrUpload", err)
	}
	if len(store.removes) != 0 || len(sender.sends) != 0 {
		t.Fatal("remove or send called after failed upload")
	}
}

func TestRenderAndSendEndToEnd(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{})

	req := RenderRequest{
		Organization: OrganizationInfo{Name: "Helping Hands Trust", City: "Chennai"},
		Donation: DonationInfo{
			Amount:    500,
			Date:      "2024-01-10",
			Method:    "Online",
			Purposes:  []string{"General Fund"},
			ReceiptNo: 42,
		},
		Message: "With gratitude.",
	}
	if _, err := svc.RenderAndSend(context.Background(), donor.Code, req); err != nil {
		t.Fatalf("RenderAndSend: %v", err)
	}
	if len(store.uploads) != 1 || len(store.removes) != 1 {
		t.Fatalf("uploads=%d removes=%d, want 1/1", len(store.uploads), len(store.removes))
	}
	if len(sender.sends) != 1 {
		t.Fatalf("sends = %d, want 1", len(sender.sends))
	}
	got := sender.sends[0]
	if got.to != "+919999999999" || got.fileURL == "" {
		t.Fatalf("unexpected dispatch: %+v", got)
	}
}

func TestRenderFailureSkipsUpload(t *testing.T) {
	store := &recordingStore{}
	sender := &recordingSender{}
	svc, donor := newTestService(t, store, sender, stubEngine{err: errors.New("chrome crashed")})

	_, err := svc.RenderAndSend(context.Background(), donor.Code, RenderRequest{
		Organization: OrganizationInfo{Name: "Helping Hands Trust"},
		Donation:     DonationInfo{Amount: 100, Date: "2024-01-10", ReceiptNo: 1},
	})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("err = %v, want ErrRender", err)
	}
	if len(store.uploads) != 0 || len(store.removes) != 0 {
		t.Fatal("storage touched after render failure")
	}
}
