package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logger(logger))
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	serve(r, "/fail")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v: %s", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["route"] != "/fail" {
		t.Errorf("route = %v, want /fail", entry["route"])
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Error("request_id missing")
	}
	if entry["status"] != float64(500) {
		t.Errorf("status = %v, want 500", entry["status"])
	}
}

func TestLoggerNil(t *testing.T) {
	rec := serve(newRouter(Logger(nil)), "/items/9")
	if rec.Body.String() != "9" {
		t.Errorf("body = %q, want 9", rec.Body.String())
	}
}
