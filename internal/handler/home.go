package handler

import (
	"log/slog"
	"net/http"

	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/service"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	accounts *service.AccountService
	profile  *service.ProfileService
	render   *Renderer
	logger   *slog.Logger
}

// NewHomeHandler creates a HomeHandler.
func NewHomeHandler(
	accounts *service.AccountService,
	profile *service.ProfileService,
	render *Renderer,
	logger *slog.Logger,
) *HomeHandler {
	return &HomeHandler{
		accounts: accounts,
		profile:  profile,
		render:   render,
		logger:   logger,
	}
}

// HandleHome serves the home page: personalized (username and diet tags)
// when a session is active, a guest view otherwise. The route uses
// OptionalAuth, so an anonymous request simply has no user in context.
//
// HTTP: GET /
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page := Page{
		Title:    "ReciPlanner",
		Username: "Guest",
		Flash:    popFlash(w, r),
	}

	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		user, err := h.accounts.GetUserByID(r.Context(), userID)
		if err != nil {
			// Stale session for a vanished user — fall back to the guest
			// view rather than failing the page.
			h.logger.Warn("home: session user not found", slog.String("userID", userID))
		} else {
			page.Username = user.Username
			page.LoggedIn = true

			diets, err := h.profile.Diets(r.Context(), userID)
			if err != nil {
				h.logger.Error("home: listing diets failed", slog.String("error", err.Error()))
			} else {
				page.Diets = diets
			}
		}
	}

	h.render.Render(w, "home", page)
}
