package opname

import (
	"errors"
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"opname/frontend/shared/download"
	"opname/infrastructure/backend"
	"opname/models"
)

const suggestionLimit = 10

func sessionIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// OpnamePageQueryHandler renders the counting screen for one session.
func OpnamePageQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		data, err := LoadPageData(r.Context(), api, sessionID)
		if err != nil {
			if errors.Is(err, backend.ErrSessionNotFound) {
				http.Error(w, "session not found", http.StatusNotFound)
				return
			}
			http.Error(w, backend.UserMessage(err, "failed to load session"), http.StatusBadGateway)
			return
		}

		q := r.URL.Query()
		data.Message = strings.TrimSpace(q.Get("error"))
		data.Form = FormState{
			ProductID:   q.Get("product_id"),
			ProductName: q.Get("product_name"),
			Quantity:    q.Get("qty"),
			Note:        q.Get("note"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := OpnamePage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render opname page", http.StatusInternalServerError)
			return
		}
	}
}

// SearchProductsQueryHandler returns suggestion list markup for the
// product search box. A blank query clears the list without touching the
// backend.
func SearchProductsQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sessionIDFromRequest(r); err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if q == "" {
			writeProductSuggestionListHTML(w, q, nil)
			return
		}

		products, err := api.SearchProducts(r.Context(), q, suggestionLimit)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to search products"), http.StatusBadGateway)
			return
		}
		writeProductSuggestionListHTML(w, q, products)
	}
}

func writeProductSuggestionListHTML(w io.Writer, q string, products []models.Product) {
	listClass := "suggestions"
	if q == "" {
		listClass += " hidden"
	}

	var b strings.Builder
	b.WriteString(`<ul id="product_suggestions" class="`)
	b.WriteString(listClass)
	b.WriteString(`">`)

	if q != "" && len(products) == 0 {
		b.WriteString(`<li><span class="muted">No matching products</span></li>`)
	}

	for _, product := range products {
		name := strings.TrimSpace(product.Name)
		if name == "" {
			continue
		}
		code := strings.TrimSpace(product.Code)
		category := strings.TrimSpace(product.Category)
		label := name
		if code != "" {
			label += " (" + code + ")"
		}
		if category != "" {
			label += " - " + category
		}
		b.WriteString(`<li><button type="button" onclick="selectProduct(this)" data-id="`)
		b.WriteString(strconv.FormatInt(product.ID, 10))
		b.WriteString(`" data-code="`)
		b.WriteString(stdhtml.EscapeString(code))
		b.WriteString(`" data-name="`)
		b.WriteString(stdhtml.EscapeString(name))
		b.WriteString(`">`)
		b.WriteString(stdhtml.EscapeString(label))
		b.WriteString(`</button></li>`)
	}

	b.WriteString(`</ul>`)
	_, _ = io.WriteString(w, b.String())
}

// CreateDetailCommandHandler records one counted item. Product selection
// and quantity are validated locally before any backend call.
func CreateDetailCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, sessionID, "invalid form", nil)
			return
		}

		productIDRaw := strings.TrimSpace(r.FormValue("product_id"))
		productName := strings.TrimSpace(r.FormValue("product_name"))
		qtyRaw := strings.TrimSpace(r.FormValue("qty"))
		note := strings.TrimSpace(r.FormValue("note"))

		form := url.Values{}
		form.Set("product_id", productIDRaw)
		form.Set("product_name", productName)
		form.Set("qty", qtyRaw)
		form.Set("note", note)

		productID, err := strconv.ParseInt(productIDRaw, 10, 64)
		if productIDRaw == "" || err != nil || productID <= 0 {
			redirectWithError(w, r, sessionID, "select a product from the search results first", form)
			return
		}

		qty, err := strconv.ParseInt(qtyRaw, 10, 64)
		if qtyRaw == "" || err != nil || qty < 0 {
			redirectWithError(w, r, sessionID, "quantity must be a whole number of zero or more", form)
			return
		}

		input := backend.DetailInput{ProductID: productID, Quantity: qty, Note: note}
		if err := api.CreateDetail(r.Context(), sessionID, input); err != nil {
			redirectWithError(w, r, sessionID, backend.UserMessage(err, "failed to save counted item"), form)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/opname/%d", sessionID), http.StatusSeeOther)
	}
}

// CompleteSessionCommandHandler finalizes a session. Sessions without any
// counted item are refused locally.
func CompleteSessionCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}

		details, err := api.ListDetails(r.Context(), sessionID)
		if err != nil {
			redirectWithError(w, r, sessionID, backend.UserMessage(err, "failed to load counted items"), nil)
			return
		}
		if len(details) == 0 {
			redirectWithError(w, r, sessionID, "record at least one counted item before completing", nil)
			return
		}

		if err := api.CompleteSession(r.Context(), sessionID); err != nil {
			redirectWithError(w, r, sessionID, backend.UserMessage(err, "failed to complete session"), nil)
			return
		}

		http.Redirect(w, r, "/sessions", http.StatusSeeOther)
	}
}

// SessionExportQueryHandler streams the raw counted-data export as a CSV
// download named after the session location.
func SessionExportQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromRequest(r)
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

func redirectWithError(w http.ResponseWriter, r *http.Request, sessionID int64, message string, form url.Values) {
	values := url.Values{}
	if form != nil {
		values = form
	}
	values.Set("error", message)
	http.Redirect(w, r, fmt.Sprintf("/opname/%d?%s", sessionID, values.Encode()), http.StatusSeeOther)
}
