// Package handler contains the HTTP request handlers. Handlers parse the
// request, call a service or the recipe client, and render a template or
// redirect — business rules live in the service layer, storage in the
// repositories.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// pageNames lists every page template. Each page file defines the "content"
// block that base.html pulls in, so each page is parsed together with the
// base into its own template set — parsing them all into one set would make
// every "content" definition collide.
var pageNames = []string{
	"home",
	"register",
	"login",
	"search_recipes",
	"search_by_ingredients",
	"recipe_results",
	"search_by_category",
	"favorites",
	"recipe_detail",
}

// Renderer holds the parsed templates and renders pages. Templates are
// parsed once at startup, not per request.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// templateFuncs are the helpers available inside every page template.
var templateFuncs = template.FuncMap{
	// hasTag reports whether tag is in tags — used to re-check the diet
	// boxes the user already has.
	"hasTag": func(tags []string, tag string) bool {
		for _, t := range tags {
			if t == tag {
				return true
			}
		}
		return false
	},
}

// NewRenderer parses base.html plus every page template under templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string // "success", "error", or "info" — drives the CSS class
	Message string
}

// Page is the data passed to every template. Handlers fill in what the page
// needs and leave the rest zero.
type Page struct {
	Title    string
	Username string // empty for guests
	LoggedIn bool
	Flash    *Flash
	Diets    []string
	Data     any // page-specific payload: recipes, favorites, detail
}

// Render executes the named page template.
func (rn *Renderer) Render(w http.ResponseWriter, name string, page Page) {
	tmpl, ok := rn.pages[name]
	if !ok {
		rn.logger.Error("unknown template requested", slog.String("name", name))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", page); err != nil {
		rn.logger.Error("failed to render template",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// flashCookie carries the one-shot notice across a redirect. The value is
// "kind|message", URL-escaped to survive cookie encoding rules.
const flashCookie = "flash"

// setFlash queues a notice for the next rendered page.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the queued notice, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Clear it — flashes show exactly once.
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Kind: "info", Message: decoded}
	}
	return &Flash{Kind: kind, Message: message}
}
