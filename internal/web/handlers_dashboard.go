package web

import (
	"net/http"

	"github.com/mfonseca/acamp/internal/middleware"
	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/service"
)

type dashboardView struct {
	Editions      []models.Edition
	Selected      *models.Edition
	RecentSignups []models.Person
	Tribes        []service.TribeCount
}

// handleDashboard renders the dashboard home: an edition selector with the
// latest edition preselected, its recent signups and the participant
// count per tribe.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.UserID(ctx)
	role := middleware.RoleFrom(ctx)

	editions, err := s.editions.List(ctx, callerID)
	if err != nil {
		s.render(w, "dashboard.tmpl", Page{Title: "Dashboard", Role: role, Caps: capsFor(role), Error: userMessage(err)})
		return
	}

	view := dashboardView{Editions: editions}
	if len(editions) > 0 {
		selected := editions[0]
		if id := r.URL.Query().Get("edition"); id != "" {
			for _, e := range editions {
				if e.ID == id {
					selected = e
					break
				}
			}
		}
		view.Selected = &selected

		if view.RecentSignups, err = s.people.RecentSignups(ctx, callerID, selected.ID, 5); err != nil {
			s.render(w, "dashboard.tmpl", Page{Title: "Dashboard", Role: role, Caps: capsFor(role), Error: userMessage(err)})
			return
		}
		if view.Tribes, err = s.people.TribeDistribution(ctx, callerID, selected.ID); err != nil {
			s.render(w, "dashboard.tmpl", Page{Title: "Dashboard", Role: role, Caps: capsFor(role), Error: userMessage(err)})
			return
		}
	}

	s.render(w, "dashboard.tmpl", Page{
		Title: "Dashboard",
		Role:  role,
		Caps:  capsFor(role),
		Data:  view,
	})
}
