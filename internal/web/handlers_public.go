package web

import (
	"net/http"

	"github.com/mfonseca/acamp/internal/middleware"
)

// publicPage carries the caller's identity into the public layout when a
// session exists, so the nav reflects it.
func publicPage(r *http.Request, title string) Page {
	page := Page{Title: title}
	if middleware.UserID(r.Context()) != "" {
		role := middleware.RoleFrom(r.Context())
		page.Role = role
		page.Caps = capsFor(role)
	}
	return page
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.tmpl", publicPage(r, "Acamp"))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about.tmpl", publicPage(r, "About"))
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, "contact.tmpl", publicPage(r, "Contact"))
}
