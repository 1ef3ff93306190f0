package products

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"opname/frontend/shared/download"
	"opname/infrastructure/backend"
)

const (
	productsPerPage = 10
	maxImportSize   = 10 << 20
)

// ProductsPageQueryHandler renders the catalog with search and paging.
// Changing the search term always restarts from the first page.
func ProductsPageQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		search := strings.TrimSpace(q.Get("q"))

		list, pagination, err := api.ListProducts(r.Context(), page, productsPerPage, search)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to load products"), http.StatusBadGateway)
			return
		}

		data := PageData{
			Products: list,
			Query:    search,
			Page:     page,
			Message:  strings.TrimSpace(q.Get("error")),
			Status:   strings.TrimSpace(q.Get("status")),
			Form: FormState{
				Code:  q.Get("kode_produk"),
				Name:  q.Get("nama_produk"),
				Stock: q.Get("saldo_awal"),
			},
		}
		if pagination != nil {
			data.Page = pagination.Page
			data.Pages = pagination.Pages
			data.Total = pagination.Total
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render products page", http.StatusInternalServerError)
			return
		}
	}
}

// CreateProductCommandHandler adds one product. Code, name and a
// non-negative whole-number stock are required before the backend is
// called.
func CreateProductCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, "invalid form", nil)
			return
		}

		code := strings.TrimSpace(r.FormValue("kode_produk"))
		name := strings.TrimSpace(r.FormValue("nama_produk"))
		stockRaw := strings.TrimSpace(r.FormValue("saldo_awal"))

		form := url.Values{}
		form.Set("kode_produk", code)
		form.Set("nama_produk", name)
		form.Set("saldo_awal", stockRaw)

		if code == "" || name == "" || stockRaw == "" {
			redirectWithError(w, r, "code, name and initial stock are required", form)
			return
		}
		stock, err := strconv.ParseInt(stockRaw, 10, 64)
		if err != nil || stock < 0 {
			redirectWithError(w, r, "initial stock must be a whole number of zero or more", form)
			return
		}

		input := backend.ProductInput{Code: code, Name: name, InitialBalance: stock}
		if err := api.CreateProduct(r.Context(), input); err != nil {
			redirectWithError(w, r, backend.UserMessage(err, "failed to add product"), form)
			return
		}

		http.Redirect(w, r, "/products?status="+url.QueryEscape("product "+code+" added"), http.StatusSeeOther)
	}
}

// ImportProductsCommandHandler relays an uploaded spreadsheet to the bulk
// importer and reports the aggregate result. Row-level errors are logged,
// not shown.
func ImportProductsCommandHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// MaxBytesReader is the actual cap; the ParseMultipartForm argument
		// only bounds in-memory buffering.
		r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			redirectWithError(w, r, "upload is too large or invalid", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			redirectWithError(w, r, "choose a file to import", nil)
			return
		}
		defer func() { _ = file.Close() }()

		result, err := api.ImportProducts(r.Context(), header.Filename, file)
		if err != nil {
			redirectWithError(w, r, backend.UserMessage(err, "failed to import products"), nil)
			return
		}

		for _, rowErr := range result.Errors {
			slog.Warn("product import row rejected", slog.String("file", header.Filename), slog.String("reason", rowErr))
		}

		message := fmt.Sprintf("import finished: %d added, %d rejected", result.SuccessCount, result.ErrorCount)
		http.Redirect(w, r, "/products?status="+url.QueryEscape(message), http.StatusSeeOther)
	}
}

// ExportProductsQueryHandler streams the full catalog export.
func ExportProductsQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dl, err := api.ExportProducts(r.Context())
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to export products"), http.StatusBadGateway)
			return
		}
		download.Serve(w, dl, download.DatedFilename("products", "csv"))
	}
}

// ImportTemplateQueryHandler streams the import template spreadsheet.
func ImportTemplateQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dl, err := api.ProductTemplate(r.Context())
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to fetch import template"), http.StatusBadGateway)
			return
		}
		download.Serve(w, dl, download.DatedFilename("product_import_template", "csv"))
	}
}

// ProductLabelQueryHandler renders a printable barcode label PDF for one
// product code.
func ProductLabelQueryHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "code"))
		if code == "" {
			http.Error(w, "invalid product code", http.StatusBadRequest)
			return
		}

		matches, err := api.SearchProducts(r.Context(), code, productsPerPage)
		if err != nil {
			http.Error(w, backend.UserMessage(err, "failed to load product"), http.StatusBadGateway)
			return
		}

		for _, product := range matches {
			if product.Code != code {
				continue
			}
			pdfBytes, err := renderProductLabelPDF(product)
			if err != nil {
				slog.Error("render product label", slog.String("code", code), slog.Any("err", err))
				http.Error(w, "failed to render label", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `inline; filename="label_`+code+`.pdf"`)
			_, _ = w.Write(pdfBytes)
			return
		}

		http.Error(w, "product not found", http.StatusNotFound)
	}
}

func redirectWithError(w http.ResponseWriter, r *http.Request, message string, form url.Values) {
	values := url.Values{}
	if form != nil {
		values = form
	}
	values.Set("error", message)
	http.Redirect(w, r, "/products?"+values.Encode(), http.StatusSeeOther)
}
