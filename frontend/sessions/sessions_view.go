package sessions

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

// SessionsPage renders the session history table with paging controls.
func SessionsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.Bar(nav.ScreenSessions))
		b.WriteString(`<header class="pagehead"><h1>Session History</h1><p class="muted">` + strconv.Itoa(data.Total) + ` sessions</p></header>`)

		if data.Message != "" {
			b.WriteString(`<div class="banner error">` + stdhtml.EscapeString(data.Message) + `</div>`)
		}

		if len(data.Sessions) == 0 {
			b.WriteString(`<section class="card"><p class="muted">No stock opname sessions yet. <a href="/">Start one</a>.</p></section>`)
		} else {
			writeSessionTable(&b, data)
		}

		writePager(&b, data)

		_, err := io.WriteString(w, sharedhtml.RenderLayout("Session History", b.String()))
		return err
	})
}

func writeSessionTable(b *strings.Builder, data PageData) {
	b.WriteString(`<section class="card"><table><thead><tr><th>Location</th><th>Status</th><th>Started</th><th>Finished</th><th>Duration</th><th>Items</th><th>By</th><th></th></tr></thead><tbody>`)
	for _, session := range data.Sessions {
		id := strconv.FormatInt(session.ID, 10)
		lokasi := url.QueryEscape(session.Location)

		b.WriteString(`<tr><td>` + stdhtml.EscapeString(session.Location) + `</td>`)
		b.WriteString(`<td><span class="badge">` + stdhtml.EscapeString(session.Status) + `</span></td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(session.StartedAt) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(session.FinishedAt) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(session.Duration) + `</td>`)
		b.WriteString(`<td>` + strconv.Itoa(session.TotalItems) + `</td>`)
		b.WriteString(`<td>` + stdhtml.EscapeString(session.CreatedBy) + `</td><td class="rowactions">`)

		if session.Active {
			b.WriteString(`<a class="btn small" href="/opname/` + id + `">Continue</a>`)
			b.WriteString(`<a class="btn small ghost" href="/report/` + id + `">Interim Report</a>`)
		} else {
			b.WriteString(`<a class="btn small" href="/report/` + id + `">Report</a>`)
			b.WriteString(`<a class="btn small ghost" href="/sessions/` + id + `/report.xlsx?lokasi=` + lokasi + `">Excel</a>`)
			b.WriteString(`<a class="btn small ghost" href="/sessions/` + id + `/data.csv?lokasi=` + lokasi + `">CSV</a>`)
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writePager(b *strings.Builder, data PageData) {
	if data.Pages <= 1 {
		return
	}
	b.WriteString(`<nav class="pager">`)
	if data.HasPrev() {
		b.WriteString(`<a class="btn small" href="/sessions?page=` + strconv.Itoa(data.Page-1) + `">Previous</a>`)
	} else {
		b.WriteString(`<span class="btn small disabled">Previous</span>`)
	}
	b.WriteString(`<span class="muted">Page ` + strconv.Itoa(data.Page) + ` of ` + strconv.Itoa(data.Pages) + `</span>`)
	if data.HasNext() {
		b.WriteString(`<a class="btn small" href="/sessions?page=` + strconv.Itoa(data.Page+1) + `">Next</a>`)
	} else {
		b.WriteString(`<span class="btn small disabled">Next</span>`)
	}
	b.WriteString(`</nav>`)
}
