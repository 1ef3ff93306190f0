package home

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"opname/infrastructure/backend"
)

// LandingPageQueryHandler renders the session creation screen.
func LandingPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Message:  strings.TrimSpace(r.URL.Query().Get("error")),
			Location: r.URL.Query().Get("lokasi"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := LandingPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render landing page", http.StatusInternalServerError)
			return
		}
	}
}

// CreateSessionCommandHandler starts a new counting session for the
// submitted location and redirects into the counting screen.
func CreateSessionCommandHandler(api *backend.Client, operator string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		// Empty locations are rejected locally, before any backend call.
		location := strings.TrimSpace(r.FormValue("lokasi"))
		if location == "" {
			http.Redirect(w, r, "/?error="+url.QueryEscape("location is required"), http.StatusSeeOther)
			return
		}

		id, err := api.CreateSession(r.Context(), location, operator)
		if err != nil {
			message := backend.UserMessage(err, "failed to create session")
			http.Redirect(w, r, "/?error="+url.QueryEscape(message)+"&lokasi="+url.QueryEscape(location), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/opname/%d", id), http.StatusSeeOther)
	}
}
