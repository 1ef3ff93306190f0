package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"opname/models"
)

// DetailInput is one counted observation to record against a session.
type DetailInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"jumlah_barang"`
	Note      string `json:"catatan"`
}

// CreateSession starts a new counting session and returns its id.
func (c *Client) CreateSession(ctx context.Context, location, createdBy string) (int64, error) {
	payload := map[string]any{
		"lokasi":     location,
		"created_by": createdBy,
	}
	var data struct {
		ID int64 `json:"id"`
	}
	if _, err := c.sendJSON(ctx, http.MethodPost, "/api/sessions", payload, &data); err != nil {
		return 0, err
	}
	return data.ID, nil
}

// ListSessions returns one page of sessions, newest first.
func (c *Client) ListSessions(ctx context.Context, page, perPage int) ([]models.Session, *models.Pagination, error) {
	query := map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(perPage),
	}
	sessions := make([]models.Session, 0)
	pagination, err := c.getJSON(ctx, "/api/sessions", query, &sessions)
	if err != nil {
		return nil, nil, err
	}
	return sessions, pagination, nil
}

// FindSession loads a single session. The backend exposes no per-id
// lookup, so this fetches the list and picks the matching entry.
func (c *Client) FindSession(ctx context.Context, id int64) (*models.Session, error) {
	sessions := make([]models.Session, 0)
	if _, err := c.getJSON(ctx, "/api/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, ErrSessionNotFound
}

// ListDetails returns all counted items recorded for a session.
func (c *Client) ListDetails(ctx context.Context, sessionID int64) ([]models.SessionDetail, error) {
	details := make([]models.SessionDetail, 0)
	path := fmt.Sprintf("/api/sessions/%d/details", sessionID)
	if _, err := c.getJSON(ctx, path, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// CreateDetail records one counted observation. Whether re-submitting a
// product updates or appends is decided by the backend.
func (c *Client) CreateDetail(ctx context.Context, sessionID int64, input DetailInput) error {
	path := fmt.Sprintf("/api/sessions/%d/details", sessionID)
	_, err := c.sendJSON(ctx, http.MethodPost, path, input, nil)
	return err
}

// CompleteSession marks a session completed. The backend rejects sessions
// that are already completed.
func (c *Client) CompleteSession(ctx context.Context, sessionID int64) error {
	path := fmt.Sprintf("/api/sessions/%d/complete", sessionID)
	_, err := c.sendJSON(ctx, http.MethodPut, path, nil, nil)
	return err
}

// SessionExport streams the raw counted-data export for a session.
func (c *Client) SessionExport(ctx context.Context, sessionID int64) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/api/sessions/%d/export", sessionID))
}

// SessionReport fetches the server-computed discrepancy report.
func (c *Client) SessionReport(ctx context.Context, sessionID int64) (*models.Report, error) {
	var report models.Report
	path := fmt.Sprintf("/api/sessions/%d/report", sessionID)
	if _, err := c.getJSON(ctx, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SessionReportExcel streams the spreadsheet rendition of the report.
func (c *Client) SessionReportExcel(ctx context.Context, sessionID int64) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/api/sessions/%d/report/excel", sessionID))
}
