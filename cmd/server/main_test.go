package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/events"
)

func TestCorsMiddleware(t *testing.T) {
	called := false
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/splitledger.v1.LedgerService/GetSummary", nil))
	if rec.Code != http.StatusOK || called {
		t.Errorf("preflight should short-circuit with 200, got %d (called=%v)", rec.Code, called)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/splitledger.v1.LedgerService/GetSummary", nil))
	if !called {
		t.Error("POST should reach the wrapped handler")
	}
}

func TestOpenPublisher_Disabled(t *testing.T) {
	if _, ok := openPublisher(&config.Config{}).(events.Nop); !ok {
		t.Error("expected Nop publisher without AMQP_URL")
	}
}
