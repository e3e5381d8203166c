package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isla-dev/isla/pkg/render"
	"github.com/isla-dev/isla/pkg/vdom"
)

func newTestServer() *Server {
	cfg := DefaultConfig()
	cfg.Metrics = false
	cfg.Logger = log.New(io.Discard, "", 0)
	return New(cfg)
}

func TestHandlePageRendersHTML(t *testing.T) {
	s := newTestServer()
	s.HandlePage("/", func(r *http.Request, rd *render.Renderer) (*vdom.VNode, error) {
		return vdom.Div(vdom.Class("home"), vdom.Text("welcome")), nil
	})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if body := rec.Body.String(); body != `<div class="home">welcome</div>` {
		t.Errorf("body = %q", body)
	}
}

func TestHandlePageWithIslandStateScript(t *testing.T) {
	s := newTestServer()
	s.HandlePage("/", func(r *http.Request, rd *render.Renderer) (*vdom.VNode, error) {
		rd.SetStateScript("counter-state", `{"count":0}`)
		return vdom.IslandNode(&vdom.Island{
			ID:        "counter",
			ScriptURL: "/islands/counter.js",
			State:     vdom.ScriptState("counter-state"),
			Children:  []*vdom.VNode{vdom.Button(vdom.Text("0"))},
		}), nil
	})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `state="#counter-state"`) {
		t.Errorf("island missing state ref: %q", body)
	}
	if !strings.Contains(body, `<script type="application/json" id="counter-state">`) {
		t.Errorf("state script not emitted: %q", body)
	}
}

func TestHandlePageError(t *testing.T) {
	s := newTestServer()
	s.HandlePage("/broken", func(r *http.Request, rd *render.Renderer) (*vdom.VNode, error) {
		return nil, errors.New("page exploded")
	})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/broken", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "exploded") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestHandleStateServesJSON(t *testing.T) {
	s := newTestServer()
	s.HandleState("/state/cart", func(r *http.Request) (any, error) {
		return map[string]int{"items": 3}, nil
	})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/state/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["items"] != 3 {
		t.Errorf("items = %d, want 3", got["items"])
	}
}

func TestHandleStateError(t *testing.T) {
	s := newTestServer()
	s.HandleState("/state/x", func(r *http.Request) (any, error) {
		return nil, errors.New("no such cart")
	})

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/state/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestReloadHubDisabledByDefault(t *testing.T) {
	s := newTestServer()
	if s.Reload() != nil {
		t.Error("reload hub present without DevReload")
	}
}

func TestReloadHubEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = false
	cfg.DevReload = true
	cfg.Logger = log.New(io.Discard, "", 0)
	s := New(cfg)

	hub := s.Reload()
	if hub == nil {
		t.Fatal("reload hub missing with DevReload enabled")
	}
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount = %d, want 0", got)
	}

	// Broadcasts with no clients are a no-op, not an error.
	hub.NotifyReload()
	hub.NotifyCSS("/app.css")
	hub.NotifyError("build failed")
	hub.ClearError()
}
