package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/service"
)

// ProfileHandler owns the authenticated profile routes: dietary restriction
// updates and the favorites list. Every route here sits behind RequireAuth,
// so the user id is always present in the request context.
type ProfileHandler struct {
	profile *service.ProfileService
	render  *Renderer
	logger  *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profile *service.ProfileService, render *Renderer, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
		render:  render,
		logger:  logger,
	}
}

// HandleUpdateDiets replaces the user's diet set from the submitted form.
// The form sends zero or more "diet" values; zero clears all restrictions.
//
// HTTP: POST /update-dietary-restrictions → redirect to the ingredient
// search, where the new filters apply.
func (h *ProfileHandler) HandleUpdateDiets(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	if err := h.profile.UpdateDiets(r.Context(), userID, r.PostForm["diet"]); err != nil {
		h.logger.Error("diet update failed", slog.String("error", err.Error()))
		setFlash(w, "error", "Could not update dietary restrictions. Please try again.")
		http.Redirect(w, r, "/search-by-ingredients", http.StatusSeeOther)
		return
	}

	setFlash(w, "success", "Dietary restrictions updated successfully!")
	http.Redirect(w, r, "/search-by-ingredients", http.StatusSeeOther)
}

// HandleFavorite saves a recipe from a search results form. The form carries
// the external recipe id plus the title/image snapshot to store. Saving an
// already-saved recipe is a no-op with its own notice.
//
// HTTP: POST /favorite-recipe → redirect to /get-favorites
func (h *ProfileHandler) HandleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	recipeID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "Invalid recipe.")
		http.Redirect(w, r, "/get-favorites", http.StatusSeeOther)
		return
	}

	inserted, err := h.profile.SaveFavorite(r.Context(), userID, recipeID,
		r.PostFormValue("title"), r.PostFormValue("image"))
	if err != nil {
		h.logger.Error("favorite save failed",
			slog.Int64("recipeID", recipeID),
			slog.String("error", err.Error()),
		)
		setFlash(w, "error", "Could not save the recipe. Please try again.")
		http.Redirect(w, r, "/get-favorites", http.StatusSeeOther)
		return
	}

	if inserted {
		setFlash(w, "success", "Recipe saved successfully!")
	} else {
		setFlash(w, "info", "This recipe is already in your favorites")
	}
	http.Redirect(w, r, "/get-favorites", http.StatusSeeOther)
}

// HandleRemoveFavorite removes a saved recipe. Removing a recipe the user
// never saved is reported as a notice, not an error page.
//
// HTTP: POST /remove-favorite → redirect to /get-favorites
func (h *ProfileHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	recipeID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "Invalid recipe.")
		http.Redirect(w, r, "/get-favorites", http.StatusSeeOther)
		return
	}

	err = h.profile.RemoveFavorite(r.Context(), userID, recipeID)
	switch {
	case err == nil:
		setFlash(w, "success", "Recipe removed from your favorites.")
	case errors.Is(err, apperror.ErrNotFound):
		setFlash(w, "info", "Recipe not found in your favorites.")
	default:
		h.logger.Error("favorite removal failed",
			slog.Int64("recipeID", recipeID),
			slog.String("error", err.Error()),
		)
		setFlash(w, "error", "Could not remove the recipe. Please try again.")
	}
	http.Redirect(w, r, "/get-favorites", http.StatusSeeOther)
}

// HandleFavorites renders the favorites list alongside the user's diet tags.
//
// HTTP: GET /get-favorites
func (h *ProfileHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	favorites, err := h.profile.Favorites(r.Context(), userID)
	if err != nil {
		h.logger.Error("favorites listing failed", slog.String("error", err.Error()))
		setFlash(w, "error", "Could not load your favorites. Please try again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	diets, err := h.profile.Diets(r.Context(), userID)
	if err != nil {
		h.logger.Error("diet listing failed", slog.String("error", err.Error()))
		diets = nil
	}

	h.render.Render(w, "favorites", Page{
		Title:    "Your favorites — ReciPlanner",
		LoggedIn: true,
		Flash:    popFlash(w, r),
		Diets:    diets,
		Data:     favorites,
	})
}
