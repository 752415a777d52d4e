package api

import (
	"context"

	"github.com/bine130/pe-subnote/internal/model"
)

type oauthLoginRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
}

type oauthRegisterRequest struct {
	Provider string `json:"provider"`
	IDToken  string `json:"id_token"`
	Name     string `json:"name"`
	Cohort   int    `json:"cohort"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// OAuthLogin exchanges a third-party identity token for a bearer token and
// installs it on the client. A 404 means the user must register first.
func (c *Client) OAuthLogin(ctx context.Context, provider, idToken string) (string, error) {
	var resp tokenResponse
	err := c.post(ctx, "/api/auth/oauth/login", oauthLoginRequest{Provider: provider, IDToken: idToken}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// OAuthRegister creates a first-time account from an identity token. The
// account starts pending until an admin approves it.
func (c *Client) OAuthRegister(ctx context.Context, provider, idToken, name string, cohort int) (string, error) {
	req := oauthRegisterRequest{Provider: provider, IDToken: idToken, Name: name, Cohort: cohort}
	var resp tokenResponse
	if err := c.post(ctx, "/api/auth/oauth/register", req, &resp); err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// Me returns the user behind the current bearer token.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.get(ctx, "/api/auth/me", &user)
	return user, err
}
