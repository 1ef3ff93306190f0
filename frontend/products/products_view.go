package products

import (
	"context"
	stdhtml "html"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	sharedhtml "opname/frontend/shared/html"
	"opname/frontend/shared/nav"
)

// ProductsPage renders the catalog: search, add form, import and export
// controls, and the paginated product table.
func ProductsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.Bar(nav.ScreenProducts))
		b.WriteString(`<header class="pagehead"><h1>Product Catalog</h1><p class="muted">` + strconv.Itoa(data.Total) + ` products</p></header>`)

		if data.Message != "" {
			b.WriteString(`<div class="banner error">` + stdhtml.EscapeString(data.Message) + `</div>`)
		}
		if data.Status != "" {
			b.WriteString(`<div class="banner success">` + stdhtml.EscapeString(data.Status) + `</div>`)
		}

		writeAddForm(&b, data)
		writeImportExport(&b)
		writeSearchForm(&b, data)
		writeProductTable(&b, data)
		writeCatalogPager(&b, data)

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Product Catalog", b.String()))
		return err
	})
}

func writeAddForm(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card">
<h2>Add Product</h2>
<form method="POST" action="/products/new" class="row">
<input name="kode_produk" placeholder="Code" value="` + stdhtml.EscapeString(data.Form.Code) + `">
<input name="nama_produk" placeholder="Name" value="` + stdhtml.EscapeString(data.Form.Name) + `">
<input name="saldo_awal" inputmode="numeric" placeholder="Initial stock" value="` + stdhtml.EscapeString(data.Form.Stock) + `">
<button type="submit" class="btn primary">Add</button>
</form>
</section>`)
}

func writeImportExport(b *strings.Builder) {
	b.WriteString(`<section class="card">
<h2>Import &amp; Export</h2>
<form method="POST" action="/products/import" enctype="multipart/form-data" class="row">
<input type="file" name="file" accept=".csv,.xlsx">
<button type="submit" class="btn">Import</button>
</form>
<div class="row">
<a class="btn ghost" href="/products/template.csv">Download Template</a>
<a class="btn ghost" href="/products/export.csv">Export Catalog</a>
</div>
</section>`)
}

func writeSearchForm(b *strings.Builder, data PageData) {
	b.WriteString(`<form method="GET" action="/products" class="row searchbar">
<input name="q" placeholder="Search by name, code or category" value="` + stdhtml.EscapeString(data.Query) + `">
<button type="submit" class="btn">Search</button>
</form>`)
}

func writeProductTable(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card">`)
	if len(data.Products) == 0 {
		b.WriteString(`<p class="muted">No products found.</p></section>`)
		return
	}

	b.WriteString(`<table><thead><tr><th>Code</th><th>Name</th><th>Category</th><th>Initial stock</th><th>Added</th><th></th></tr></thead><tbody>`)
	for _, product := range data.Products {
		b.WriteString(`<tr><td>` + stdhtml.EscapeString(product.Code) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(product.Name) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(product.Category) + `</td>`)
		b.WriteString(`<td>` + strconv.FormatInt(product.InitialBalance, 10) + `</td>`)
		b.WriteString(`<td>` + formatCreatedAt(product.CreatedAt) + `</td>`)
		b.WriteString(`<td><a class="btn small ghost" href="/products/` + url.PathEscape(product.Code) + `/label.pdf" target="_blank">Label</a></td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writeCatalogPager(b *strings.Builder, data PageData) {
	if data.Pages <= 1 {
		return
	}
	query := url.Values{}
	if data.Query != "" {
		query.Set("q", data.Query)
	}
	href := func(page int) string {
		q := url.Values{}
		for key, vals := range query {
			q[key] = vals
		}
		q.Set("page", strconv.Itoa(page))
		return "/products?" + q.Encode()
	}

	b.WriteString(`<nav class="pager">`)
	if data.HasPrev() {
		b.WriteString(`<a class="btn small" href="` + href(data.Page-1) + `">Previous</a>`)
	} else {
		b.WriteString(`<span class="btn small disabled">Previous</span>`)
	}
	b.WriteString(`<span class="muted">Page ` + strconv.Itoa(data.Page) + ` of ` + strconv.Itoa(data.Pages) + `</span>`)
	if data.HasNext() {
		b.WriteString(`<a class="btn small" href="` + href(data.Page+1) + `">Next</a>`)
	} else {
		b.WriteString(`<span class="btn small disabled">Next</span>`)
	}
	b.WriteString(`</nav>`)
}

func formatCreatedAt(created *time.Time) string {
	if created == nil {
		return "-"
	}
	return created.Local().Format("2006-01-02")
}
