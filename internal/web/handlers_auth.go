package web

import (
	"log/slog"
	"net/http"

	"github.com/mfonseca/acamp/internal/auth"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login.tmpl", Page{Title: "Login"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := s.authenticator.Authenticate(r.Context(), email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email)
		s.render(w, "login.tmpl", Page{
			Title: "Login",
			Error: "Invalid email or password.",
		})
		return
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		slog.Error("Failed to issue session", "user_id", user.ID, "error", err)
		s.render(w, "login.tmpl", Page{
			Title: "Login",
			Error: "Something went wrong. Please try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("Login succeeded", "user_id", user.ID)
	redirectTo(w, r, "/dashboard")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectTo(w, r, "/login")
}
