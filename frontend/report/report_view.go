package report

import (
	"context"
	stdhtml "html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "opname/frontend/shared/html"
	"opname/frontend/shared/nav"
)

// ReportPage renders the report, or a retry prompt when loading failed.
func ReportPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.Bar(nav.ScreenSessions))
		b.WriteString(`<header class="pagehead"><h1>Stock Opname Report</h1></header>`)

		if data.LoadError != "" {
			sessionID := strconv.FormatInt(data.SessionID, 10)
			b.WriteString(`<section class="card">
<div class="banner error">` + stdhtml.EscapeString(data.LoadError) + `</div>
<a class="btn primary" href="/report/` + sessionID + `">Try Again</a>
<a class="btn ghost" href="/sessions">Back to History</a>
</section>`)
		} else {
			writeInfoCard(&b, data)
			writeSummaryCard(&b, data)
			writeDiscrepancyTable(&b, data)
			writeReportActions(&b, data)
		}

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Stock Opname Report", b.String()))
		return err
	})
}

func writeInfoCard(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card"><h2>Session</h2><dl class="facts">
<dt>Location</dt><dd>` + stdhtml.EscapeString(data.Location) + `</dd>
<dt>Status</dt><dd>` + stdhtml.EscapeString(data.Status) + `</dd>
<dt>Started</dt><dd>` + stdhtml.EscapeString(data.StartedAt) + `</dd>
<dt>Finished</dt><dd>` + stdhtml.EscapeString(data.FinishedAt) + `</dd>
</dl></section>`)
}

func writeSummaryCard(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="grid4">
<div class="card stat"><span class="num">` + strconv.Itoa(data.TotalCounted) + `</span><span class="muted">Items counted</span></div>
<div class="card stat"><span class="num">` + strconv.Itoa(data.Accurate) + `</span><span class="muted">Accurate</span></div>
<div class="card stat"><span class="num">` + strconv.Itoa(data.WithDiscrepancy) + `</span><span class="muted">With discrepancy</span></div>
<div class="card stat"><span class="num">` + stdhtml.EscapeString(data.Accuracy) + `</span><span class="muted">Accuracy</span></div>
</section>`)
}

func writeDiscrepancyTable(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card"><h2>Detail per Product</h2>`)
	if len(data.Rows) == 0 {
		b.WriteString(`<p class="muted">No counted items in this session.</p></section>`)
		return
	}

	b.WriteString(`<table><thead><tr><th>Code</th><th>Product</th><th>Expected</th><th>Counted</th><th>Difference</th><th>Note</th></tr></thead><tbody>`)
	for _, row := range data.Rows {
		b.WriteString(`<tr class="` + row.Class + `"><td>` + stdhtml.EscapeString(row.Code) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(row.Name) + `</td>`)
		b.WriteString(`<td>` + strconv.FormatInt(row.Expected, 10) + `</td>`)
		b.WriteString(`<td>` + strconv.FormatInt(row.Counted, 10) + `</td>`)
		b.WriteString(`<td><span class="diff ` + row.Class + `">` + row.Difference + `</span></td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(row.Note) + `</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writeReportActions(b *strings.Builder, data PageData) {
	sessionID := strconv.FormatInt(data.SessionID, 10)
	lokasi := url.QueryEscape(data.Location)
	b.WriteString(`<section class="actions">
<a class="btn primary" href="/sessions/` + sessionID + `/report.xlsx?lokasi=` + lokasi + `">Download Excel</a>
<a class="btn" href="/sessions/` + sessionID + `/data.csv?lokasi=` + lokasi + `">Download CSV</a>
<a class="btn ghost" href="/sessions">Back to History</a>
</section>`)
}
