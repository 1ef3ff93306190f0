package home

import (
	"context"
	stdhtml "html"
	"io"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "opname/frontend/shared/html"
	"opname/frontend/shared/nav"
)

// LandingPage renders the location form plus shortcuts into the other
// screens.
func LandingPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.Bar(nav.ScreenHome))
		b.WriteString(`<header class="hero"><h1>Stock Opname System</h1><p>Count, review and export physical inventory per location</p></header>`)

		if data.Message != "" {
			b.WriteString(`<div class="banner error">` + stdhtml.EscapeString(data.Message) + `</div>`)
		}

		b.WriteString(`<section class="card">
<h2>Start Stock Opname</h2>
<p class="muted">Enter a location to start a new counting session</p>
<form method="POST" action="/sessions/new" class="stack">
<label for="lokasi">Location</label>
<input id="lokasi" name="lokasi" placeholder="e.g. Gudang A, Toko Cabang 1" value="` + stdhtml.EscapeString(data.Location) + `" autofocus>
<button type="submit" class="btn primary">Start Stock Opname</button>
</form>
</section>`)

		b.WriteString(`<section class="grid3">
<a class="card linkcard" href="/products"><h3>Product Catalog</h3><p class="muted">Add products, import and export the catalog</p></a>
<a class="card linkcard" href="/sessions"><h3>Session History</h3><p class="muted">Review every stock opname run so far</p></a>
<a class="card linkcard" href="/sessions"><h3>Reports &amp; Export</h3><p class="muted">Discrepancy reports and spreadsheet exports</p></a>
</section>`)

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Stock Opname", b.String()))
		return err
	})
}
