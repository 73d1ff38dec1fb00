package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveURLAndRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "http://localhost:8080/")
	ctx := context.Background()

	key := "receipts/1704067200000_receipt.pdf"
	n, err := store.SaveWithKey(ctx, key, "application/pdf", strings.NewReader("%PDF-1.4 test"))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != int64(len("%PDF-1.4 test")) {
		t.Fatalf("expected %d bytes written, got %d", len("%PDF-1.4 test"), n)
	}

	if _, err := os.Stat(filepath.Join(dir, "receipts", "1704067200000_receipt.pdf")); err != nil {
		t.Fatalf("expected object on disk: %v", err)
	}

	if got, want := store.PublicURL(key), "http://localhost:8080/files/"+key; got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "receipts", "1704067200000_receipt.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected object removed, stat err=%v", err)
	}
}

func TestSaveRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080")
	if _, err := store.SaveWithKey(context.Background(), "../escape.pdf", "application/pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
	if err := store.Remove(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute key to be rejected")
	}
}
