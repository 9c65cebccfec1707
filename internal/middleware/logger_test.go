package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsStatusAndPath(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/batches", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["path"] != "/api/batches" {
		t.Fatalf("path = %v, want /api/batches", fields["path"])
	}
	if fields["status"] != int64(http.StatusAccepted) {
		t.Fatalf("status = %v, want %d", fields["status"], http.StatusAccepted)
	}
}
