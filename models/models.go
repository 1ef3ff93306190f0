package models

import (
	"encoding/json"
	"time"
)

// Session statuses as reported by the backend.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// Session is one stock opname run at a single location. JSON tags follow
// the backend wire format.
type Session struct {
	ID         int64      `json:"id"`
	Location   string     `json:"lokasi"`
	CreatedBy  string     `json:"created_by"`
	Status     string     `json:"status"`
	StartedAt  *time.Time `json:"waktu_mulai"`
	FinishedAt *time.Time `json:"waktu_selesai"`
	TotalItems int        `json:"total_items"`
}

// Active reports whether the session still accepts counted items.
func (s Session) Active() bool {
	return s.Status == SessionActive
}

// Product is a catalog entry. Codes are unique and user-assigned.
type Product struct {
	ID             int64      `json:"id"`
	Code           string     `json:"kode_produk"`
	Name           string     `json:"nama_produk"`
	Category       string     `json:"kategori_produk"`
	InitialBalance int64      `json:"saldo_awal"`
	CreatedAt      *time.Time `json:"created_at"`
}

// SessionDetail is one counted observation of a product within a session.
type SessionDetail struct {
	ID        int64      `json:"id"`
	SessionID int64      `json:"session_id"`
	ProductID int64      `json:"product_id"`
	Product   Product    `json:"product"`
	Quantity  int64      `json:"jumlah_barang"`
	Note      string     `json:"catatan"`
	CreatedAt *time.Time `json:"created_at"`
}

// Pagination accompanies paginated list responses.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Report is the server-computed discrepancy report for a session. The
// client renders it and never recomputes any of its numbers.
type Report struct {
	SessionInfo   ReportSessionInfo `json:"session_info"`
	Summary       ReportSummary     `json:"summary"`
	Discrepancies []Discrepancy     `json:"discrepancies"`
}

type ReportSessionInfo struct {
	Location   string     `json:"lokasi"`
	Status     string     `json:"status"`
	StartedAt  *time.Time `json:"waktu_mulai"`
	FinishedAt *time.Time `json:"waktu_selesai"`
}

// ReportSummary keeps AccuracyPercentage as a json.Number so the value is
// displayed exactly as the server sent it.
type ReportSummary struct {
	TotalItemsCounted    int         `json:"total_items_counted"`
	ItemsAccurate        int         `json:"items_accurate"`
	ItemsWithDiscrepancy int         `json:"items_with_discrepancy"`
	AccuracyPercentage   json.Number `json:"accuracy_percentage"`
}

// Discrepancy is one product row of the report. Difference is counted
// minus expected.
type Discrepancy struct {
	ProductCode string `json:"kode_produk"`
	ProductName string `json:"nama_produk"`
	Expected    int64  `json:"saldo_awal"`
	Counted     int64  `json:"jumlah_barang"`
	Difference  int64  `json:"selisih"`
	Note        string `json:"catatan"`
}
