package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"opname/infrastructure/backend"
	"opname/internal/config"
)

func newTestBackend(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func reportRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/report/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		difference int64
		want       string
	}{
		{0, DiffAccurate},
		{1, DiffSurplus},
		{250000, DiffSurplus},
		{-1, DiffShortage},
		{-999999, DiffShortage},
	}
	for _, tc := range cases {
		if got := Classify(tc.difference); got != tc.want {
			t.Fatalf("Classify(%d) = %q, want %q", tc.difference, got, tc.want)
		}
	}
}

func TestReportPageQueryHandler_RendersServerNumbersVerbatim(t *testing.T) {
	api := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/4/report" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body := map[string]any{
			"success": true,
			"data": map[string]any{
				"session_info": map[string]any{"lokasi": "Gudang A", "status": "completed",
					"waktu_mulai": "2025-03-10T09:00:00Z", "waktu_selesai": "2025-03-10T11:00:00Z"},
				"summary": map[string]any{"total_items_counted": 3, "items_accurate": 1,
					"items_with_discrepancy": 2, "accuracy_percentage": 33.33},
				"discrepancies": []map[string]any{
					{"kode_produk": "P001", "nama_produk": "Laptop", "saldo_awal": 10, "jumlah_barang": 10, "selisih": 0},
					{"kode_produk": "P002", "nama_produk": "Mouse", "saldo_awal": 5, "jumlah_barang": 8, "selisih": 3, "catatan": "found extra box"},
					{"kode_produk": "P003", "nama_produk": "Kabel", "saldo_awal": 20, "jumlah_barang": 18, "selisih": -2},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	handler := ReportPageQueryHandler(api)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, reportRequest("4"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"33.33%",
		`<span class="diff accurate">0</span>`,
		`<span class="diff surplus">+3</span>`,
		`<span class="diff shortage">-2</span>`,
		"found extra box",
		"report.xlsx?lokasi=Gudang+A",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in page: %s", want, body)
		}
	}
}

func TestReportPageQueryHandler_LoadErrorOffersRetry(t *testing.T) {
	api := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "report belum tersedia"})
	}))
	handler := ReportPageQueryHandler(api)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, reportRequest("4"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with retry prompt, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "report belum tersedia") {
		t.Fatalf("expected verbatim server message, got: %s", body)
	}
	if !strings.Contains(body, `href="/report/4"`) {
		t.Fatalf("expected retry link, got: %s", body)
	}
}
