package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewaySendPostsFormFields(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"appkey":  r.PostForm.Get("appkey"),
			"authkey": r.PostForm.Get("authkey"),
			"to":      r.PostForm.Get("to"),
			"message": r.PostForm.Get("message"),
			"file":    r.PostForm.Get("file"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message_status":"Success"}`))
	}))
	defer srv.Close()

	client := NewGatewayClient(srv.URL, "app-key-1", "auth-key-1")
	resp, err := client.Send(context.Background(), "+919999999999", "thank you", "https://files.example/receipts/1_r.pdf")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp["message_status"] != "Success" {
		t.Fatalf("expected gateway payload, got %v", resp)
	}

	want := map[string]string{
		"appkey":  "app-key-1",
		"authkey": "auth-key-1",
		"to":      "+919999999999",
		"message": "thank you",
		"file":    "https://files.example/receipts/1_r.pdf",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Fatalf("form field %s = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestGatewaySendNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid auth key", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewGatewayClient(srv.URL, "app", "bad")
	if _, err := client.Send(context.Background(), "+911111111111", "hi", ""); err == nil {
		t.Fatalf("expected error on 403 response")
	}
}

func TestGatewaySendWithoutEndpointFails(t *testing.T) {
	client := NewGatewayClient("", "app", "auth")
	if _, err := client.Send(context.Background(), "+911111111111", "hi", ""); err == nil {
		t.Fatalf("expected error when endpoint not configured")
	}
}
