package sessions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
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

func withSessionID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestFormatDuration(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	finish := func(d time.Duration) *time.Time {
		end := base.Add(d)
		return &end
	}

	cases := []struct {
		name   string
		start  *time.Time
		finish *time.Time
		want   string
	}{
		{"unfinished", &base, nil, "-"},
		{"never started", nil, finish(time.Hour), "-"},
		{"minutes only", &base, finish(45 * time.Minute), "45m"},
		{"hours and minutes", &base, finish(2*time.Hour + 5*time.Minute), "2h 5m"},
		{"zero", &base, finish(0), "0m"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.start, tc.finish); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSessionsPageQueryHandler_RendersRowsAndPager(t *testing.T) {
	api := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("per_page") != "10" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		body := map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 4, "lokasi": "Gudang A", "status": "completed", "created_by": "andi", "total_items": 12,
					"waktu_mulai": "2025-03-10T09:00:00Z", "waktu_selesai": "2025-03-10T11:05:00Z"},
				{"id": 5, "lokasi": "Toko 1", "status": "active", "created_by": "budi", "total_items": 3,
					"waktu_mulai": "2025-03-11T08:00:00Z"},
			},
			"pagination": map[string]any{"page": 2, "per_page": 10, "total": 23, "pages": 3},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	handler := SessionsPageQueryHandler(api)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions?page=2", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Gudang A",
		"2h 5m",
		`href="/opname/5"`,
		`href="/report/5"`,
		`href="/report/4"`,
		"report.xlsx?lokasi=Gudang+A",
		"data.csv?lokasi=Gudang+A",
		`href="/sessions?page=1"`,
		`href="/sessions?page=3"`,
		"Page 2 of 3",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in page: %s", want, body)
		}
	}
	for _, unwanted := range []string{
		"report.xlsx?lokasi=Toko+1",
		"data.csv?lokasi=Toko+1",
	} {
		if strings.Contains(body, unwanted) {
			t.Fatalf("active session must not offer exports, found %q: %s", unwanted, body)
		}
	}
}

func TestSessionsPageQueryHandler_DisablesPagerAtBounds(t *testing.T) {
	cases := []struct {
		name         string
		page         int
		wantDisabled string
		wantLink     string
	}{
		{"first page", 1, `<span class="btn small disabled">Previous</span>`, `href="/sessions?page=2"`},
		{"last page", 2, `<span class="btn small disabled">Next</span>`, `href="/sessions?page=1"`},
	}
	for _, tc := range cases {
		api := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			body := map[string]any{
				"success":    true,
				"data":       []map[string]any{{"id": 1, "lokasi": "Gudang A", "status": "active"}},
				"pagination": map[string]any{"page": tc.page, "per_page": 10, "total": 11, "pages": 2},
			}
			_ = json.NewEncoder(w).Encode(body)
		}))
		handler := SessionsPageQueryHandler(api)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions?page="+strconv.Itoa(tc.page), nil))

		body := rr.Body.String()
		if !strings.Contains(body, tc.wantDisabled) {
			t.Fatalf("%s: expected disabled control %q: %s", tc.name, tc.wantDisabled, body)
		}
		if !strings.Contains(body, tc.wantLink) {
			t.Fatalf("%s: expected pager link %q: %s", tc.name, tc.wantLink, body)
		}
	}
}

func TestReportExcelQueryHandler_StreamsNamedDownload(t *testing.T) {
	api := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/4/report/excel" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = io.WriteString(w, "excel-bytes")
	}))
	handler := ReportExcelQueryHandler(api)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/sessions/4/report.xlsx?lokasi=Gudang+A", nil), "4")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	disposition := rr.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "laporan_stock_opname_Gudang A_4_") || !strings.HasSuffix(disposition, `.xlsx"`) {
		t.Fatalf("unexpected disposition: %s", disposition)
	}
	if rr.Body.String() != "excel-bytes" {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}
