package opname

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"opname/infrastructure/backend"
	"opname/internal/config"
)

func newTestBackend(t *testing.T, handler http.Handler) (*backend.Client, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return client, &calls
}

func withSessionID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonEnvelope(data any) []byte {
	body, _ := json.Marshal(map[string]any{"success": true, "data": data})
	return body
}

func TestCreateDetailCommandHandler_NoProductSelectedNeverCallsBackend(t *testing.T) {
	api, calls := newTestBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called")
	}))
	handler := CreateDetailCommandHandler(api)

	form := url.Values{"product_name": {"Laptop"}, "qty": {"5"}}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withSessionID(postForm("/opname/5/details", form), "5"))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rr.Code)
	}
	location := rr.Header().Get("Location")
	if !strings.Contains(location, url.QueryEscape("select a product")) {
		t.Fatalf("unexpected redirect: %s", location)
	}
	if !strings.Contains(location, "product_name=Laptop") {
		t.Fatalf("expected form values preserved, got %s", location)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero backend calls, got %d", calls.Load())
	}
}

func TestCreateDetailCommandHandler_RejectsBadQuantityLocally(t *testing.T) {
	api, calls := newTestBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called")
	}))
	handler := CreateDetailCommandHandler(api)

	for _, qty := range []string{"", "-1", "3.5", "abc"} {
		form := url.Values{"product_id": {"3"}, "product_name": {"Laptop"}, "qty": {qty}}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, withSessionID(postForm("/opname/5/details", form), "5"))

		location := rr.Header().Get("Location")
		if !strings.Contains(location, url.QueryEscape("quantity must be")) {
			t.Fatalf("qty %q: unexpected redirect %s", qty, location)
		}
	}
	if calls.Load() != 0 {
		t.Fatalf("expected zero backend calls, got %d", calls.Load())
	}
}

func TestCreateDetailCommandHandler_SubmitsTrimmedPayload(t *testing.T) {
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/sessions/5/details" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["product_id"] != float64(3) || body["jumlah_barang"] != float64(0) || body["catatan"] != "ok" {
			t.Fatalf("unexpected payload: %v", body)
		}
		_, _ = w.Write(jsonEnvelope(nil))
	}))
	handler := CreateDetailCommandHandler(api)

	form := url.Values{"product_id": {"3"}, "product_name": {"Laptop"}, "qty": {" 0 "}, "note": {" ok "}}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withSessionID(postForm("/opname/5/details", form), "5"))

	if location := rr.Header().Get("Location"); location != "/opname/5" {
		t.Fatalf("unexpected redirect: %s", location)
	}
}

func TestCompleteSessionCommandHandler_RefusesEmptySession(t *testing.T) {
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			t.Fatal("complete must not be called for an empty session")
		}
		_, _ = w.Write(jsonEnvelope([]any{}))
	}))
	handler := CompleteSessionCommandHandler(api)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withSessionID(postForm("/opname/5/complete", nil), "5"))

	location := rr.Header().Get("Location")
	if !strings.Contains(location, url.QueryEscape("at least one counted item")) {
		t.Fatalf("unexpected redirect: %s", location)
	}
}

func TestCompleteSessionCommandHandler_CompletesAndRedirectsToHistory(t *testing.T) {
	var completed atomic.Bool
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			details := []map[string]any{{
				"id": 1, "session_id": 5, "product_id": 3, "jumlah_barang": 5,
				"product": map[string]any{"id": 3, "kode_produk": "P001", "nama_produk": "Laptop"},
			}}
			_, _ = w.Write(jsonEnvelope(details))
		case r.Method == http.MethodPut && r.URL.Path == "/api/sessions/5/complete":
			completed.Store(true)
			_, _ = w.Write(jsonEnvelope(nil))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	handler := CompleteSessionCommandHandler(api)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withSessionID(postForm("/opname/5/complete", nil), "5"))

	if !completed.Load() {
		t.Fatal("expected complete call to reach backend")
	}
	if location := rr.Header().Get("Location"); location != "/sessions" {
		t.Fatalf("unexpected redirect: %s", location)
	}
}

func TestSearchProductsQueryHandler_BlankQuerySkipsBackend(t *testing.T) {
	api, calls := newTestBackend(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("backend must not be called")
	}))
	handler := SearchProductsQueryHandler(api)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/opname/5/products/search?q=+++", nil), "5")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if calls.Load() != 0 {
		t.Fatalf("expected zero backend calls, got %d", calls.Load())
	}
	if body := rr.Body.String(); !strings.Contains(body, `id="product_suggestions"`) || !strings.Contains(body, "hidden") {
		t.Fatalf("expected hidden empty list, got: %s", body)
	}
}

func TestSearchProductsQueryHandler_RendersEscapedSuggestions(t *testing.T) {
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/search" || r.URL.Query().Get("q") != "lap" {
			t.Fatalf("unexpected request: %s %s", r.URL.Path, r.URL.RawQuery)
		}
		products := []map[string]any{{
			"id": 3, "kode_produk": "P001", "nama_produk": `Laptop <15">`, "kategori_produk": "Elektronik",
		}}
		_, _ = w.Write(jsonEnvelope(products))
	}))
	handler := SearchProductsQueryHandler(api)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/opname/5/products/search?q=lap", nil), "5")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, `data-id="3"`) {
		t.Fatalf("expected product id attribute, got: %s", body)
	}
	if !strings.Contains(body, "Laptop &lt;15&#34;&gt;") {
		t.Fatalf("expected escaped product name, got: %s", body)
	}
	if strings.Contains(body, `Laptop <15">`) {
		t.Fatalf("raw product name leaked into markup: %s", body)
	}
}

func TestOpnamePageQueryHandler_RendersDetailsWithPrefillAttributes(t *testing.T) {
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sessions":
			sessions := []map[string]any{{"id": 5, "lokasi": "Gudang A", "status": "active"}}
			_, _ = w.Write(jsonEnvelope(sessions))
		case "/api/sessions/5/details":
			details := []map[string]any{{
				"id": 1, "session_id": 5, "product_id": 3, "jumlah_barang": 5, "catatan": "ok",
				"product": map[string]any{"id": 3, "kode_produk": "P001", "nama_produk": "Laptop", "kategori_produk": "Elektronik"},
			}}
			_, _ = w.Write(jsonEnvelope(details))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	handler := OpnamePageQueryHandler(api)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/opname/5", nil), "5")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Gudang A",
		`data-detail-product-id="3"`,
		`data-qty="5"`,
		`data-note="ok"`,
		`action="/opname/5/complete"`,
		"lokasi=Gudang+A",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in page: %s", want, body)
		}
	}
}

func TestOpnamePageQueryHandler_UnknownSessionIs404(t *testing.T) {
	api, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jsonEnvelope([]any{}))
	}))
	handler := OpnamePageQueryHandler(api)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/opname/99", nil), "99")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
