package nav

import "strings"

// Screen identifiers used to highlight the current nav entry.
const (
	ScreenHome     = "home"
	ScreenProducts = "products"
	ScreenSessions = "sessions"
)

var entries = []struct {
	screen string
	href   string
	label  string
}{
	{ScreenHome, "/", "Home"},
	{ScreenProducts, "/products", "Products"},
	{ScreenSessions, "/sessions", "History"},
}

// Bar renders the top navigation with the active screen highlighted.
func Bar(active string) string {
	var b strings.Builder
	b.WriteString(`<nav class="topnav"><span class="brand">Stock Opname</span><div class="links">`)
	for _, e := range entries {
		class := "navlink"
		if e.screen == active {
			class += " active"
		}
		b.WriteString(`<a class="` + class + `" href="` + e.href + `">` + e.label + `</a>`)
	}
	b.WriteString(`</div></nav>`)
	return b.String()
}
