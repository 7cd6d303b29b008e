package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

func testBasic(t *testing.T, handler http.Handler) *basicSynthesizer {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &basicSynthesizer{
		log:        log,
		client:     srv.Client(),
		endpoint:   srv.URL,
		maxRetries: 2,
	}
}

func TestBasicSynthesize(t *testing.T) {
	var gotQuery string
	s := testBasic(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("mp3-bytes"))
	}))

	audio, err := s.Synthesize(context.Background(), "czerwony", "pl")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("audio: want=%q got=%q", "mp3-bytes", audio)
	}
	if want := "q=czerwony"; gotQuery == "" || !strings.Contains(gotQuery, want) {
		t.Fatalf("query %q missing %q", gotQuery, want)
	}
	if want := "tl=pl"; !strings.Contains(gotQuery, want) {
		t.Fatalf("query %q missing %q", gotQuery, want)
	}
}

func TestBasicSynthesizeRetriesTransient(t *testing.T) {
	attempts := 0
	s := testBasic(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	audio, err := s.Synthesize(ctx, "tak", "pl")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "ok" {
		t.Fatalf("audio: want=%q got=%q", "ok", audio)
	}
	if attempts != 2 {
		t.Fatalf("attempts: want=2 got=%d", attempts)
	}
}

func TestBasicSynthesizeFailsFastOnClientError(t *testing.T) {
	attempts := 0
	s := testBasic(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))

	if _, err := s.Synthesize(context.Background(), "nie", "pl"); err == nil {
		t.Fatalf("Synthesize: expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("attempts: want=1 got=%d", attempts)
	}
}

func TestBasicSynthesizeRejectsEmptyText(t *testing.T) {
	s := testBasic(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("endpoint should not be called for empty text")
	}))
	if _, err := s.Synthesize(context.Background(), "", "pl"); err == nil {
		t.Fatalf("Synthesize(empty): expected error, got nil")
	}
}
