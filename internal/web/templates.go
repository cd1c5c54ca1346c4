package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/finance"
	"github.com/mfonseca/acamp/internal/models"
)

//go:embed views/*.tmpl
var viewsFS embed.FS

// pages are the content templates, each paired with the shared layout.
var pages = []string{
	"home.tmpl", "about.tmpl", "contact.tmpl", "login.tmpl",
	"dashboard.tmpl", "roster.tmpl", "person.tmpl", "sheet.tmpl",
	"editions.tmpl", "catalog.tmpl",
}

// funcMap exposes the formatting helpers templates need.
var funcMap = template.FuncMap{
	"money": finance.FormatAmount,
	"date": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
}

func parseViews() (map[string]*template.Template, error) {
	views := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.tmpl").Funcs(funcMap).
			ParseFS(viewsFS, "views/layout.tmpl", "views/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view %s: %w", page, err)
		}
		views[page] = tmpl
	}
	return views, nil
}

// Caps are the render-time capability flags. They are advisory: the
// service layer re-checks the role on every mutation regardless of what
// was rendered.
type Caps struct {
	// CanEdit allows people/payment/assignment controls.
	CanEdit bool
	// CanAdmin allows edition/tribe/sector management controls.
	CanAdmin bool
}

// capsFor derives the capability flags from the caller's role. The role
// arrives explicitly from the route guard's context, never from a global.
func capsFor(role models.Role) Caps {
	return Caps{
		CanEdit:  auth.Allowed(role, models.RoleAdmin, models.RoleEditor),
		CanAdmin: auth.Allowed(role, models.RoleAdmin),
	}
}

// Page is the data every view receives.
type Page struct {
	Title string
	Role  models.Role
	Caps  Caps

	// Error is a page-level failure message; Errors holds per-field
	// validation messages keyed by form field name.
	Error  string
	Errors map[string]string

	Data any
}

func (s *Server) render(w http.ResponseWriter, page string, data Page) {
	tmpl, ok := s.views[page]
	if !ok {
		slog.Error("Unknown view", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.tmpl", data); err != nil {
		slog.Error("Failed to render view", "page", page, "error", err)
	}
}
