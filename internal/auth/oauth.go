package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubUser is the portion of the GitHub /user API response we care about.
// GitHub returns a much larger object — we only unmarshal what we need.
type GitHubUser struct {
	ID    int64  `json:"id"`    // GitHub's numeric user id — stable, never changes
	Login string `json:"login"` // GitHub username, used as the account's username
}

// GitHubProvider wraps golang.org/x/oauth2 for the GitHub Authorization Code
// flow. "Sign in with GitHub" is a supplementary login path next to the
// username/password form; the server only registers its routes when a client
// id and secret are configured.
//
// The code-for-token exchange happens server-to-server using the client
// secret, so the access token never reaches the browser.
type GitHubProvider struct {
	config *oauth2.Config
}

// NewGitHubProvider creates a GitHubProvider with the given credentials.
// callbackURL must exactly match the "Authorization callback URL" configured
// on the GitHub OAuth App, e.g. "http://localhost:8080/auth/github/callback".
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
	}
}

// AuthURL returns the GitHub authorization URL to redirect the user to.
// The state parameter is verified on callback against a cookie set before
// the redirect, which ties the callback to a flow this server started.
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the OAuth flow: trades the authorization code for an
// access token, then fetches the user's GitHub profile with it.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*GitHubUser, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("auth: fetching GitHub user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: GitHub user endpoint returned status %d", resp.StatusCode)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth: decoding GitHub user: %w", err)
	}
	if user.ID == 0 || user.Login == "" {
		return nil, fmt.Errorf("auth: GitHub user response missing id or login")
	}

	return &user, nil
}
