package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesServiceField(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer
	logger := New(Config{Level: "info"}, &buf)
	logger.Info().Str(FieldChatID, "c1").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line[FieldService] != ServiceName || line[FieldChatID] != "c1" {
		t.Errorf("unexpected fields: %v", line)
	}

	buf.Reset()
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Error("debug line written at info level")
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), logger)

	l := Ctx(ctx)
	l.Info().Msg("scoped")
	if buf.Len() == 0 {
		t.Error("context logger not used")
	}

	if got := Ctx(context.Background()); got.GetLevel() != L().GetLevel() {
		t.Error("expected global logger without a scoped one")
	}
}

func TestHTTPMiddlewareSetsRequestID(t *testing.T) {
	var seen bool
	h := HTTPMiddleware(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := Ctx(r.Context())
		seen = l.GetLevel() == zerolog.Nop().GetLevel()
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get(headerRequestID) == "" {
		t.Error("missing request id header")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if !seen {
		t.Error("handler did not receive the scoped logger")
	}
}
