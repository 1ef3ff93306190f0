package sessions

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"opname/frontend/shared/download"
	"opname/infrastructure/backend"
	"opname/models"
)

const sessionsPerPage = 10

// SessionsPageQueryHandler renders the paginated session history.
func SessionsPageQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		list, pagination, err := api.ListSessions(r.Context(), page, sessionsPerPage)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to load session history"), http.StatusBadGateway)
			return
		}

		data := PageData{
			Page:    page,
			Message: strings.TrimSpace(r.URL.Query().Get("error")),
		}
		if pagination != nil {
			data.Page = pagination.Page
			data.Pages = pagination.Pages
			data.Total = pagination.Total
		}
		for _, session := range list {
			data.Sessions = append(data.Sessions, newSessionView(session))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := SessionsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render session history", http.StatusInternalServerError)
			return
		}
	}
}

func newSessionView(session models.Session) SessionView {
	return SessionView{
		ID:         session.ID,
		Location:   session.Location,
		CreatedBy:  session.CreatedBy,
		Status:     session.Status,
		StartedAt:  formatTimestamp(session.StartedAt),
		FinishedAt: formatTimestamp(session.FinishedAt),
		Duration:   formatDuration(session.StartedAt, session.FinishedAt),
		TotalItems: session.TotalItems,
		Active:     session.Active(),
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// formatDuration renders the elapsed time of a finished session, such as
// "2h 5m" or "45m". Unfinished sessions show "-".
func formatDuration(start, finish *time.Time) string {
	if start == nil || finish == nil {
		return "-"
	}
	elapsed := finish.Sub(*start)
	if elapsed < 0 {
		return "-"
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ReportExcelQueryHandler streams the spreadsheet report for a session.
func ReportExcelQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		dl, err := api.SessionReportExcel(r.Context(), sessionID)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to export report"), http.StatusBadGateway)
			return
		}

		filename := download.Filename("laporan_stock_opname", r.URL.Query().Get("lokasi"), sessionID, "xlsx")
		download.Serve(w, dl, filename)
	}
}

// SessionDataQueryHandler streams the raw counted-data export for a
// session from the history screen.
func SessionDataQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		dl, err := api.SessionExport(r.Context(), sessionID)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to export session data"), http.StatusBadGateway)
			return
		}

		filename := download.Filename("stock_opname", r.URL.Query().Get("lokasi"), sessionID, "csv")
		download.Serve(w, dl, filename)
	}
}
