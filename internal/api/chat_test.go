package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/xonecas/lifeos/internal/agent"
	"github.com/xonecas/lifeos/internal/store"
)

type stubResponder struct {
	reply string
	err   error
	got   string
}

func (s *stubResponder) Respond(ctx context.Context, userMessage string) (string, error) {
	s.got = userMessage
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func setupChatTest(t *testing.T, responder *stubResponder) (*chi.Mux, *store.Store) {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	h := NewHandler(s, responder)
	r := chi.NewRouter()
	h.RegisterChatRoutes(r)
	return r, s
}

func TestPostChat(t *testing.T) {
	responder := &stubResponder{reply: "Hi there!"}
	r, _ := setupChatTest(t, responder)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if responder.got != "hello" {
		t.Errorf("responder received %q", responder.got)
	}

	var resp BaseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Message != "Message sent" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if resp.Data != "Hi there!" {
		t.Errorf("expected reply in data, got %#v", resp.Data)
	}
}

func TestPostChatEmptyMessage(t *testing.T) {
	r, _ := setupChatTest(t, &stubResponder{reply: "unused"})

	for _, body := range []string{`{"message": ""}`, `{"message": "   "}`, `{}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %q: expected 422, got %d", body, w.Code)
		}
	}
}

func TestPostChatUpstreamError(t *testing.T) {
	responder := &stubResponder{err: agent.ErrUpstreamModel}
	r, _ := setupChatTest(t, responder)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "error" || resp.Message != "Error processing request" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestPostChatStorageError(t *testing.T) {
	responder := &stubResponder{err: agent.ErrStorage}
	r, _ := setupChatTest(t, responder)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestGetChatPagination(t *testing.T) {
	r, s := setupChatTest(t, &stubResponder{})

	for i := 0; i < 25; i++ {
		if _, err := s.AddMessage(store.MessageRoleUser, "hello", nil); err != nil {
			t.Fatalf("AddMessage() error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/chat?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data     []store.Message `json:"data"`
		Metadata struct {
			Pagination Pagination `json:"pagination"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Data) != 10 {
		t.Errorf("expected 10 messages, got %d", len(resp.Data))
	}
	p := resp.Metadata.Pagination
	if p.CurrentPage != 2 || p.TotalPages != 3 || p.TotalItems != 25 || p.CurrentItems != 10 || p.Limit != 10 {
		t.Errorf("unexpected pagination: %+v", p)
	}
}

func TestGetChatInvalidParams(t *testing.T) {
	r, _ := setupChatTest(t, &stubResponder{})

	for _, query := range []string{"?page=0", "?page=abc", "?limit=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/chat"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("query %q: expected 422, got %d", query, w.Code)
		}
	}
}

func TestGetChatLimitCapped(t *testing.T) {
	r, _ := setupChatTest(t, &stubResponder{})

	req := httptest.NewRequest(http.MethodGet, "/chat?limit=500", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp struct {
		Metadata struct {
			Pagination Pagination `json:"pagination"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Metadata.Pagination.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", resp.Metadata.Pagination.Limit)
	}
}
