package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"opname/infrastructure/backend"
	"opname/models"
)

// ReportPageQueryHandler renders the discrepancy report for a session.
// All report numbers come from the backend as-is; nothing is recomputed
// here except the per-row difference class.
func ReportPageQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		data := PageData{SessionID: sessionID}
		result, err := api.SessionReport(r.Context(), sessionID)
		if err != nil {
			data.LoadError = backend.UserMessage(err, "failed to load report")
		} else {
			data = newPageData(sessionID, result)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ReportPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render report", http.StatusInternalServerError)
			return
		}
	}
}

func newPageData(sessionID int64, result *models.Report) PageData {
	data := PageData{
		SessionID:       sessionID,
		Location:        result.SessionInfo.Location,
		Status:          result.SessionInfo.Status,
		StartedAt:       formatTimestamp(result.SessionInfo.StartedAt),
		FinishedAt:      formatTimestamp(result.SessionInfo.FinishedAt),
		TotalCounted:    result.Summary.TotalItemsCounted,
		Accurate:        result.Summary.ItemsAccurate,
		WithDiscrepancy: result.Summary.ItemsWithDiscrepancy,
		Accuracy:        result.Summary.AccuracyPercentage.String() + "%",
	}
	for _, row := range result.Discrepancies {
		data.Rows = append(data.Rows, DiscrepancyView{
			Code:       row.ProductCode,
			Name:       row.ProductName,
			Expected:   row.Expected,
			Counted:    row.Counted,
			Difference: formatDifference(row.Difference),
			Class:      Classify(row.Difference),
			Note:       row.Note,
		})
	}
	return data
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatDifference(difference int64) string {
	if difference > 0 {
		return "+" + strconv.FormatInt(difference, 10)
	}
	return strconv.FormatInt(difference, 10)
}
