package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "sk", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "sk", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientCreateSession(t *testing.T) {
	var (
		gotAuth    string
		gotIdemKey string
		gotBody    createSessionRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotIdemKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_123",
			URL:           "https://pay.example/cs_123",
			Status:        "open",
			PaymentStatus: "unpaid",
			AmountTotal:   4999,
			Currency:      "usd",
			Metadata:      map[string]string{"purchase_id": "42"},
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk_test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	session, err := client.CreateSession(context.Background(), SessionParams{
		Amount:      4999,
		Currency:    "usd",
		ProductName: "Intro to Go",
		Metadata:    map[string]string{"purchase_id": "42"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "cs_123" || session.URL != "https://pay.example/cs_123" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Paid {
		t.Fatal("expected unpaid session")
	}
	if gotAuth != "Bearer sk_test" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if gotIdemKey == "" {
		t.Fatal("expected idempotency key header")
	}
	if gotBody.Amount != 4999 || gotBody.ProductName != "Intro to Go" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestHTTPClientGetSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions/cs_123" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_123",
			Status:        "complete",
			PaymentStatus: "paid",
			AmountTotal:   4999,
			Currency:      "usd",
		})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk_test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	session, err := client.GetSession(context.Background(), "cs_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Paid {
		t.Fatal("expected paid session")
	}
	if session.Status != "complete" {
		t.Fatalf("unexpected status %s", session.Status)
	}
}

func TestHTTPClientGetSessionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk_test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.GetSession(context.Background(), "cs_missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHTTPClientTooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk_test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.GetSession(context.Background(), "cs_123")
	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if tooMany.RetryAfter != 30*time.Second {
		t.Fatalf("unexpected retry-after %s", tooMany.RetryAfter)
	}
}

func TestHTTPClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "sk_test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.GetSession(context.Background(), "cs_123"); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 5*time.Second {
		t.Fatalf("expected default, got %s", got)
	}
	if got := parseRetryAfter("12"); got != 12*time.Second {
		t.Fatalf("expected 12s, got %s", got)
	}
	if got := parseRetryAfter("garbage"); got != 5*time.Second {
		t.Fatalf("expected default for garbage, got %s", got)
	}
}
