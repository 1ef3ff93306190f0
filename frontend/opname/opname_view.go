package opname

import (
	"context"
	"fmt"
	stdhtml "html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "opname/frontend/shared/html"
	"opname/frontend/shared/nav"
)

// OpnamePage renders the counting screen: product search, the quantity
// form and the list of items recorded so far.
func OpnamePage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.Bar(""))

		b.WriteString(`<header class="pagehead"><h1>Stock Opname: ` + stdhtml.EscapeString(data.Session.Location) + `</h1>`)
		b.WriteString(statusBadge(data.Session.Status))
		b.WriteString(`</header>`)

		if data.Message != "" {
			b.WriteString(`<div class="banner error">` + stdhtml.EscapeString(data.Message) + `</div>`)
		}

		if data.Session.Active() {
			writeDetailForm(&b, data)
		} else {
			b.WriteString(`<div class="banner info">This session is completed and no longer accepts counted items.</div>`)
		}

		writeDetailList(&b, data)
		writeActions(&b, data)
		b.WriteString(pageScript(data.Session.ID))

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Stock Opname "+data.Session.Location, b.String()))
		return err
	})
}

func statusBadge(status string) string {
	class := "badge"
	if status == "active" {
		class += " active"
	}
	return `<span class="` + class + `">` + stdhtml.EscapeString(status) + `</span>`
}

func writeDetailForm(b *strings.Builder, data PageData) {
	sessionID := strconv.FormatInt(data.Session.ID, 10)
	b.WriteString(`<section class="card">
<h2>Record Counted Item</h2>
<form method="POST" action="/opname/` + sessionID + `/details" class="stack">
<label for="product_search">Product</label>
<input id="product_search" name="product_name" autocomplete="off" placeholder="Search by name or code" oninput="searchProducts(this.value)" value="` + stdhtml.EscapeString(data.Form.ProductName) + `">
<div id="suggestion_box"><ul id="product_suggestions" class="suggestions hidden"></ul></div>
<input type="hidden" id="product_id" name="product_id" value="` + stdhtml.EscapeString(data.Form.ProductID) + `">
<label for="qty_input">Counted quantity</label>
<input id="qty_input" name="qty" inputmode="numeric" value="` + stdhtml.EscapeString(data.Form.Quantity) + `">
<label for="note_input">Note</label>
<input id="note_input" name="note" placeholder="Optional note" value="` + stdhtml.EscapeString(data.Form.Note) + `">
<button type="submit" class="btn primary">Save Item</button>
</form>
</section>`)
}

func writeDetailList(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card">
<h2>Recorded Items (` + strconv.Itoa(len(data.Details)) + `)</h2>`)

	if len(data.Details) == 0 {
		b.WriteString(`<p class="muted">Nothing counted yet. Search for a product above to begin.</p></section>`)
		return
	}

	b.WriteString(`<table><thead><tr><th>Code</th><th>Product</th><th>Category</th><th>Qty</th><th>Note</th></tr></thead><tbody>`)
	for _, detail := range data.Details {
		b.WriteString(`<tr class="detail-row" data-detail-product-id="`)
		b.WriteString(strconv.FormatInt(detail.ProductID, 10))
		b.WriteString(`" data-qty="`)
		b.WriteString(strconv.FormatInt(detail.Quantity, 10))
		b.WriteString(`" data-note="`)
		b.WriteString(stdhtml.EscapeString(detail.Note))
		b.WriteString(`"><td>` + stdhtml.EscapeString(detail.ProductCode) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(detail.ProductName) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(detail.ProductCategory) + `</td>`)
		b.WriteString(`<td>` + strconv.FormatInt(detail.Quantity, 10) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(detail.Note) + `</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writeActions(b *strings.Builder, data PageData) {
	sessionID := strconv.FormatInt(data.Session.ID, 10)
	b.WriteString(`<section class="actions">`)

	if len(data.Details) > 0 {
		exportHref := "/opname/" + sessionID + "/export?lokasi=" + url.QueryEscape(data.Session.Location)
		b.WriteString(`<a class="btn" href="` + exportHref + `">Export Data (CSV)</a>`)
	}

	if data.CanComplete() {
		b.WriteString(`<form method="POST" action="/opname/` + sessionID + `/complete" onsubmit="return confirm('Complete this stock opname session? Counted items can no longer be changed.')">
<button type="submit" class="btn primary">Complete Session</button>
</form>`)
	}

	if !data.Session.Active() {
		b.WriteString(`<a class="btn" href="/report/` + sessionID + `">View Report</a>`)
	}

	b.WriteString(`<a class="btn ghost" href="/sessions">Back to History</a></section>`)
}

// pageScript wires the product search box. Every keystroke fetches fresh
// suggestions and whichever response arrives last replaces the list.
// Selecting a product that is already recorded pre-fills quantity and
// note from its table row.
func pageScript(sessionID int64) string {
	return fmt.Sprintf(`<script>
function searchProducts(q) {
	var box = document.getElementById('suggestion_box');
	if (!box) { return; }
	if (!q.trim()) {
		box.innerHTML = '<ul id="product_suggestions" class="suggestions hidden"></ul>';
		return;
	}
	fetch('/opname/%d/products/search?q=' + encodeURIComponent(q))
		.then(function (resp) { return resp.text(); })
		.then(function (markup) { box.innerHTML = markup; });
}
function selectProduct(el) {
	var hidden = document.getElementById('product_id');
	var search = document.getElementById('product_search');
	var qty = document.getElementById('qty_input');
	var note = document.getElementById('note_input');
	var box = document.getElementById('suggestion_box');
	if (hidden) { hidden.value = el.dataset.id || ''; }
	if (search) { search.value = el.dataset.name || ''; }
	var existing = document.querySelector('[data-detail-product-id="' + (el.dataset.id || '') + '"]');
	if (qty) { qty.value = existing ? (existing.dataset.qty || '') : ''; }
	if (note) { note.value = existing ? (existing.dataset.note || '') : ''; }
	if (box) { box.innerHTML = '<ul id="product_suggestions" class="suggestions hidden"></ul>'; }
	if (qty) { qty.focus(); }
}
</script>`, sessionID)
}
