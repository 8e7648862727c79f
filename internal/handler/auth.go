package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/ahndawn/ReciPlanner/internal/apperror"
	"github.com/ahndawn/ReciPlanner/internal/auth"
	"github.com/ahndawn/ReciPlanner/internal/service"
)

// AuthHandler owns the account lifecycle routes: register, login, logout,
// and the optional GitHub OAuth flow.
type AuthHandler struct {
	accounts *service.AccountService
	sessions auth.SessionManager
	github   *auth.GitHubProvider // nil when OAuth is not configured
	render   *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. github may be nil; the server only
// registers the OAuth routes when it isn't.
func NewAuthHandler(
	accounts *service.AccountService,
	sessions auth.SessionManager,
	github *auth.GitHubProvider,
	render *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		github:   github,
		render:   render,
		logger:   logger,
	}
}

// HandleRegisterForm renders the registration page.
//
// HTTP: GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "register", Page{
		Title: "Register — ReciPlanner",
		Flash: popFlash(w, r),
	})
}

// HandleRegister creates a new account from the submitted form.
//
// HTTP: POST /register
// Success → flash + redirect to /login. Duplicate username or invalid input
// → re-render the form with the error notice.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, err := h.accounts.Register(r.Context(), username, password)
	if err != nil {
		message := "Could not create the account. Please try again."
		switch {
		case errors.Is(err, apperror.ErrConflict):
			message = "Username already taken. Please choose a different one."
		case errors.Is(err, apperror.ErrValidation):
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
		}
		h.render.Render(w, "register", Page{
			Title: "Register — ReciPlanner",
			Flash: &Flash{Kind: "error", Message: message},
		})
		return
	}

	setFlash(w, "success", "User Created Successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLoginForm renders the login page.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "login", Page{
		Title: "Log in — ReciPlanner",
		Flash: popFlash(w, r),
	})
}

// HandleLogin authenticates the submitted credentials and establishes the
// session.
//
// HTTP: POST /login
// Success → session cookie + redirect home. Failure → re-render the form
// with the invalid-credentials notice; unknown usernames and wrong passwords
// are indistinguishable.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.render.Render(w, "login", Page{
			Title: "Log in — ReciPlanner",
			Flash: &Flash{Kind: "error", Message: "Invalid username or password"},
		})
		return
	}

	h.establishSession(w, r, user.ID)
}

// HandleLogout tears down the session and redirects home. Idempotent: a
// request with no session cookie just redirects.
//
// HTTP: GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		if err := h.sessions.Destroy(cookie.Value); err != nil {
			h.logger.Warn("session destroy failed", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleGitHubLogin starts the OAuth flow by redirecting to GitHub.
//
// HTTP: GET /auth/github/login
// A random state value goes into a short-lived cookie; the callback checks
// it so only flows this server started can complete.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth flow: verify state, exchange the
// code, upsert the account, establish the session.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("oauth callback: state missing or mismatched")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// State is single-use.
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("oauth callback: user denied authorization", slog.String("error", errParam))
		setFlash(w, "info", "GitHub sign-in was cancelled.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth callback: exchange failed", slog.String("error", err.Error()))
		setFlash(w, "error", "GitHub sign-in failed. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.accounts.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		h.logger.Error("oauth callback: account upsert failed", slog.String("error", err.Error()))
		setFlash(w, "error", "GitHub sign-in failed. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.establishSession(w, r, user.ID)
}

// establishSession creates a session for the user, sets the cookie, and
// redirects home.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := h.sessions.Create(userID)
	if err != nil {
		h.logger.Error("session creation failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	// HttpOnly keeps the token away from page scripts; SameSite=Lax keeps
	// it off cross-site POSTs. Secure is left to the deployment's TLS
	// terminator.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * 3600)),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
