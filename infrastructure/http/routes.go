package http

import (
	"github.com/go-chi/chi/v5"

	"opname/frontend/home"
	"opname/frontend/opname"
	"opname/frontend/products"
	"opname/frontend/report"
	sessionspage "opname/frontend/sessions"
)

// RegisterFrontendRoutes wires every screen onto the router.
func (s *Server) RegisterFrontendRoutes() {
	s.router.Get("/", home.LandingPageQueryHandler())
	s.router.Post("/sessions/new", home.CreateSessionCommandHandler(s.Backend, s.Operator))

	s.router.Route("/opname/{id}", func(r chi.Router) {
		r.Get("/", opname.OpnamePageQueryHandler(s.Backend))
		r.Get("/products/search", opname.SearchProductsQueryHandler(s.Backend))
		r.Post("/details", opname.CreateDetailCommandHandler(s.Backend))
		r.Post("/complete", opname.CompleteSessionCommandHandler(s.Backend))
		r.Get("/export", opname.SessionExportQueryHandler(s.Backend))
	})

	s.router.Get("/sessions", sessionspage.SessionsPageQueryHandler(s.Backend))
	s.router.Get("/sessions/{id}/report.xlsx", sessionspage.ReportExcelQueryHandler(s.Backend))
	s.router.Get("/sessions/{id}/data.csv", sessionspage.SessionDataQueryHandler(s.Backend))

	s.router.Get("/report/{id}", report.ReportPageQueryHandler(s.Backend))

	s.router.Get("/products", products.ProductsPageQueryHandler(s.Backend))
	s.router.Post("/products/new", products.CreateProductCommandHandler(s.Backend))
	s.router.Post("/products/import", products.ImportProductsCommandHandler(s.Backend))
	s.router.Get("/products/export.csv", products.ExportProductsQueryHandler(s.Backend))
	s.router.Get("/products/template.csv", products.ImportTemplateQueryHandler(s.Backend))
	s.router.Get("/products/{code}/label.pdf", products.ProductLabelQueryHandler(s.Backend))
}
