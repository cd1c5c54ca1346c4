// Package web serves the management app's pages and forms.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/cep"
	"github.com/mfonseca/acamp/internal/middleware"
	"github.com/mfonseca/acamp/internal/service"
	"github.com/mfonseca/acamp/internal/storage"
)

// Server holds the handlers' dependencies.
type Server struct {
	authenticator auth.Authenticator
	sessions      *auth.SessionManager
	roles         *auth.RoleResolver

	editions *service.EditionService
	people   *service.PersonService
	catalog  *service.CatalogService
	payments *service.PaymentService
	reports  *service.ReportService

	cep *cep.Client

	views map[string]*template.Template
}

// New creates the web server with its dependencies wired.
func New(
	authenticator auth.Authenticator,
	sessions *auth.SessionManager,
	roles *auth.RoleResolver,
	editions *service.EditionService,
	people *service.PersonService,
	catalog *service.CatalogService,
	payments *service.PaymentService,
	reports *service.ReportService,
	cepClient *cep.Client,
) (*Server, error) {
	views, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Server{
		authenticator: authenticator,
		sessions:      sessions,
		roles:         roles,
		editions:      editions,
		people:        people,
		catalog:       catalog,
		payments:      payments,
		reports:       reports,
		cep:           cepClient,
		views:         views,
	}, nil
}

// Handler builds the full routing table wrapped in the middleware chain.
// The request log sits inside the route guard so it sees the resolved
// identity; guard redirects themselves show up in the metrics only.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public pages.
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /contact", s.handleContact)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Protected pages (any authenticated role).
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /dashboard/roster/{edition}", s.handleRoster)
	mux.HandleFunc("POST /dashboard/roster/{edition}/people", s.handleCreatePerson)
	mux.HandleFunc("GET /dashboard/roster/{edition}/export/csv", s.handleExportCSV)
	mux.HandleFunc("GET /dashboard/roster/{edition}/report/pdf", s.handleReportPDF)
	mux.HandleFunc("GET /dashboard/people/{id}", s.handlePerson)
	mux.HandleFunc("POST /dashboard/people/{id}", s.handleUpdatePerson)
	mux.HandleFunc("GET /dashboard/people/{id}/sheet", s.handlePersonSheet)
	mux.HandleFunc("POST /dashboard/people/{id}/tribe", s.handleAssignTribe)
	mux.HandleFunc("POST /dashboard/people/{id}/sectors", s.handleAssignSectors)
	mux.HandleFunc("POST /dashboard/people/{id}/payments", s.handleAddPayment)
	mux.HandleFunc("POST /dashboard/payments/{id}/delete", s.handleDeletePayment)
	mux.HandleFunc("GET /dashboard/cep/{code}", s.handleCEP)

	// Admin-only pages; the route guard redirects other roles away.
	mux.HandleFunc("GET /dashboard/editions", s.handleEditions)
	mux.HandleFunc("POST /dashboard/editions", s.handleCreateEdition)
	mux.HandleFunc("POST /dashboard/editions/{id}", s.handleUpdateEdition)
	mux.HandleFunc("POST /dashboard/editions/{id}/delete", s.handleDeleteEdition)
	mux.HandleFunc("GET /dashboard/tribes", s.handleTribes)
	mux.HandleFunc("POST /dashboard/tribes", s.handleCreateTribe)
	mux.HandleFunc("POST /dashboard/tribes/{id}/delete", s.handleDeleteTribe)
	mux.HandleFunc("GET /dashboard/sectors", s.handleSectors)
	mux.HandleFunc("POST /dashboard/sectors", s.handleCreateSector)
	mux.HandleFunc("POST /dashboard/sectors/{id}/delete", s.handleDeleteSector)

	mux.Handle("GET /metrics", promhttp.Handler())

	guarded := middleware.Guard(s.sessions, s.roles)(middleware.Logging(mux))
	return middleware.Metrics(guarded)
}

// userMessage maps service errors to the strings pages show. Unknown
// backend errors get a generic message; details stay in the server log.
func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return "Access denied."
	case errors.Is(err, storage.ErrAlreadyExists):
		return "This name already exists."
	case errors.Is(err, storage.ErrNotFound):
		return "Record not found."
	default:
		return "Something went wrong. Please try again."
	}
}

// validationMap flattens a ValidationError into the per-field message map
// views consume.
func validationMap(v *service.ValidationError) map[string]string {
	fields := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		fields[f.Field] = f.Message
	}
	return fields
}

func redirectTo(w http.ResponseWriter, r *http.Request, format string, args ...any) {
	http.Redirect(w, r, fmt.Sprintf(format, args...), http.StatusSeeOther)
}
