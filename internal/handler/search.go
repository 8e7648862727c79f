package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/recipes"
	"github.com/ahndawn/ReciPlanner/internal/service"
)

// SearchHandler owns every route that goes through the Recipe Proxy:
// ingredient search, free-text search, category search, and recipe detail.
// The proxy call always carries the user's stored diet tags as the filter.
type SearchHandler struct {
	finder  recipes.Finder
	profile *service.ProfileService
	render  *Renderer
	logger  *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(
	finder recipes.Finder,
	profile *service.ProfileService,
	render *Renderer,
	logger *slog.Logger,
) *SearchHandler {
	return &SearchHandler{
		finder:  finder,
		profile: profile,
		render:  render,
		logger:  logger,
	}
}

// HandleSearchPage renders the search entry form.
//
// HTTP: GET /search-recipes
func (h *SearchHandler) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "search_recipes", Page{
		Title:    "Search recipes — ReciPlanner",
		LoggedIn: true,
		Flash:    popFlash(w, r),
	})
}

// HandleIngredientsForm renders the ingredient search form with the user's
// current diet tags (the form doubles as the place to update them).
//
// HTTP: GET /search-by-ingredients
func (h *SearchHandler) HandleIngredientsForm(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	diets := h.userDiets(r, userID)

	h.render.Render(w, "search_by_ingredients", Page{
		Title:    "Search by ingredients — ReciPlanner",
		LoggedIn: true,
		Flash:    popFlash(w, r),
		Diets:    diets,
	})
}

// HandleIngredientsSearch runs the ingredient search through the proxy.
//
// HTTP: POST /search-by-ingredients
func (h *SearchHandler) HandleIngredientsSearch(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	diets := h.userDiets(r, userID)
	results, err := h.finder.FindByIngredients(r.Context(), r.PostFormValue("ingredients"), diets)
	if err != nil {
		h.upstreamFailure(w, r, "findByIngredients", err)
		return
	}

	h.render.Render(w, "search_by_ingredients", Page{
		Title:    "Search by ingredients — ReciPlanner",
		LoggedIn: true,
		Diets:    diets,
		Data:     results,
	})
}

// HandleSearch runs the free-text search through the proxy.
//
// HTTP: POST /search
// The route sits behind RequireAuth like every other personalized read — the
// diet filter needs a user.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	diets := h.userDiets(r, userID)
	results, err := h.finder.Search(r.Context(), r.PostFormValue("search"), diets)
	if err != nil {
		h.upstreamFailure(w, r, "search", err)
		return
	}

	h.render.Render(w, "recipe_results", Page{
		Title:    "Search results — ReciPlanner",
		LoggedIn: true,
		Diets:    diets,
		Data:     results,
	})
}

// HandleCategoryForm renders the category search page.
//
// HTTP: GET /search-by-category
func (h *SearchHandler) HandleCategoryForm(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	h.render.Render(w, "search_by_category", Page{
		Title:    "Search by category — ReciPlanner",
		LoggedIn: true,
		Flash:    popFlash(w, r),
		Diets:    h.userDiets(r, userID),
	})
}

// HandleCategorySearch runs the category search through the proxy.
//
// HTTP: POST /search-by-category
func (h *SearchHandler) HandleCategorySearch(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	diets := h.userDiets(r, userID)
	results, err := h.finder.SearchByCategory(r.Context(), r.PostFormValue("category"), diets)
	if err != nil {
		h.upstreamFailure(w, r, "searchByCategory", err)
		return
	}

	h.render.Render(w, "search_by_category", Page{
		Title:    "Search by category — ReciPlanner",
		LoggedIn: true,
		Diets:    diets,
		Data:     results,
	})
}

// HandleDetail fetches and renders the full information payload for one
// recipe.
//
// HTTP: GET /recipe-detail/{id}
func (h *SearchHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid recipe id", http.StatusBadRequest)
		return
	}

	detail, err := h.finder.GetDetail(r.Context(), recipeID)
	if err != nil {
		h.upstreamFailure(w, r, "getDetail", err)
		return
	}

	h.render.Render(w, "recipe_detail", Page{
		Title:    "Recipe detail — ReciPlanner",
		LoggedIn: true,
		Data:     detail,
	})
}

// userDiets loads the user's diet tags for filtering. A storage failure here
// degrades to an unfiltered search rather than blocking it.
func (h *SearchHandler) userDiets(r *http.Request, userID string) []string {
	diets, err := h.profile.Diets(r.Context(), userID)
	if err != nil {
		h.logger.Error("loading diets for search failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return diets
}

// upstreamFailure handles a Recipe Proxy error: log it, queue the generic
// notice, and send the user home. Raw transport errors never reach the
// client.
func (h *SearchHandler) upstreamFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Warn("recipe search failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	setFlash(w, "error", "There was an error processing your request. Please try again.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
