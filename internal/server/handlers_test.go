package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zincsforboats/zincfinder/internal/config"
	"github.com/zincsforboats/zincfinder/internal/models"
	"github.com/zincsforboats/zincfinder/internal/respond"
)

type stubCatalog struct {
	products []models.Product
	err      error
}

func (s *stubCatalog) Search(_ context.Context, _ string) ([]models.Product, error) {
	return s.products, s.err
}

func newTestServer(cat *stubCatalog) *Server {
	return newTestServerPerPage(cat, models.DefaultPerPage)
}

func newTestServerPerPage(cat *stubCatalog, defaultPerPage int) *Server {
	composer := respond.NewComposer("https://zincsforboats.com", true)
	engine := respond.NewEngine(cat, nil, composer, zap.NewNop())
	return NewServer(engine,
		&config.ServerConfig{Host: "localhost", Port: 5000},
		&config.ReplyConfig{DefaultPerPage: defaultPerPage},
		zap.NewNop())
}

func threeProducts() []models.Product {
	return []models.Product{
		{Title: "Skeg Zinc", Handle: "skeg-zinc"},
		{Title: "Hull Anode", Handle: "hull-anode"},
		{Title: "Rudder Zinc", Handle: "rudder-zinc"},
	}
}

func TestHandleHome(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.handleHome(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	if w.Body.String() != "Welcome to the Boat Zincs API" {
		t.Errorf("body: got %q", w.Body.String())
	}
}

func TestHandleGetResponse_MissingQuery(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	for _, target := range []string{"/get_response", "/get_response?query="} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		srv.handleGetResponse(w, r)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want 400", target, w.Code)
		}
		if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Query is required"}` {
			t.Errorf("%s: body got %s", target, got)
		}
	}
}

func TestHandleGetResponse_ScenarioPaginatedSingle(t *testing.T) {
	srv := newTestServer(&stubCatalog{products: threeProducts()})
	r := httptest.NewRequest(http.MethodGet,
		"/get_response?query=zinc+plate+2005+Hewescraft+16+Sportsman&page=1&per_page=1", nil)
	w := httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var reply models.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(reply.Message, "]("); got != 1 {
		t.Errorf("links: got %d, want exactly 1", got)
	}
	if reply.TotalPages != 3 {
		t.Errorf("total_pages: got %d, want 3", reply.TotalPages)
	}
	if reply.CurrentPage != 1 {
		t.Errorf("current_page: got %d, want 1", reply.CurrentPage)
	}
}

func TestHandleGetResponse_CatalogFailureIsFailOpen(t *testing.T) {
	srv := newTestServer(&stubCatalog{err: errors.New("upstream down")})
	r := httptest.NewRequest(http.MethodGet, "/get_response?query=zinc+plate", nil)
	w := httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (fail-open)", w.Code)
	}
	var reply models.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Message, "use the on-site search option") {
		t.Errorf("expected fallback message, got:\n%s", reply.Message)
	}
}

func TestHandleGetResponse_EmptyResultFallbackText(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	r := httptest.NewRequest(http.MethodGet, "/get_response?query=zinc+plate+2005", nil)
	w := httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	var reply models.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	want := "We currently do not have the exact product you're looking for in our system, " +
		"but we may have them in stock. Please visit our [Shopify store](https://zincsforboats.com) " +
		"and use the on-site search option. Thank you for visiting today, and we appreciate the " +
		"opportunity to earn your business."
	if reply.Message != want {
		t.Errorf("message:\n got %q\nwant %q", reply.Message, want)
	}
}

func TestHandleGetResponse_MalformedPage(t *testing.T) {
	srv := newTestServer(&stubCatalog{products: threeProducts()})
	for _, target := range []string{
		"/get_response?query=zinc&page=abc",
		"/get_response?query=zinc&per_page=1.5",
	} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		srv.handleGetResponse(w, r)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: status got %d, want 500", target, w.Code)
		}
		if got := strings.TrimSpace(w.Body.String()); got != `{"error":"An unexpected error occurred."}` {
			t.Errorf("%s: body got %s", target, got)
		}
	}
}

func TestHandleGetResponse_ConfiguredDefaultPerPage(t *testing.T) {
	products := make([]models.Product, 0, 12)
	for i := 1; i <= 12; i++ {
		products = append(products, models.Product{
			Title:  fmt.Sprintf("Zinc %d", i),
			Handle: fmt.Sprintf("zinc-%d", i),
		})
	}
	srv := newTestServerPerPage(&stubCatalog{products: products}, 5)

	// Without per_page the configured default drives the page size.
	r := httptest.NewRequest(http.MethodGet, "/get_response?query=zinc", nil)
	w := httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	var reply models.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(reply.Message, "]("); got != 5 {
		t.Errorf("links: got %d, want 5 from configured default", got)
	}
	if reply.TotalPages != 3 {
		t.Errorf("total_pages: got %d, want 3", reply.TotalPages)
	}

	// An explicit per_page still wins over the configured default.
	r = httptest.NewRequest(http.MethodGet, "/get_response?query=zinc&per_page=12", nil)
	w = httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(reply.Message, "]("); got != 12 {
		t.Errorf("links: got %d, want 12 from explicit per_page", got)
	}
	if reply.TotalPages != 1 {
		t.Errorf("total_pages: got %d, want 1", reply.TotalPages)
	}
}

func TestHandleGetResponse_DefaultPaging(t *testing.T) {
	srv := newTestServer(&stubCatalog{products: threeProducts()})
	r := httptest.NewRequest(http.MethodGet, "/get_response?query=zinc", nil)
	w := httptest.NewRecorder()
	srv.handleGetResponse(w, r)
	var reply models.Reply
	if err := json.NewDecoder(w.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.TotalPages != 1 || reply.CurrentPage != 1 {
		t.Errorf("pages: got %d/%d, want 1/1", reply.TotalPages, reply.CurrentPage)
	}
}

func TestHandleData(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	// Parameters must not affect the fixed payload.
	for _, target := range []string{"/data", "/data?query=zinc&page=9"} {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		srv.handleData(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status: got %d", w.Code)
		}
		var out map[string]string
		if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if len(out) != 2 {
			t.Errorf("entries: got %d, want 2", len(out))
		}
		if out["product_1"] != "Johnson Evinrude Skeg Zinc 40 - 75 Hp 1999 - 2006" {
			t.Errorf("product_1: got %q", out["product_1"])
		}
		if out["product_2"] != "Coastal Copper 450 Multi-Season Ablative Antifouling Bottom Paint Black Gallon" {
			t.Errorf("product_2: got %q", out["product_2"])
		}
	}
}

func TestRouter_RequestIDAndCORS(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d", res.StatusCode)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID header")
	}
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected permissive CORS header")
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/get_response", nil)
	pre, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer pre.Body.Close()
	if pre.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want 204", pre.StatusCode)
	}
}
