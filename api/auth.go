package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a bearer token. The /token endpoint
// takes a form-encoded body, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp tokenResponse
	if err := c.doJSON(req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates an account. A 2xx response carries no further
// contract; validation failures surface through the decoded detail.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	payload := registerRequest{Name: name, Email: email, Password: password}
	return c.postJSON(ctx, "/register", payload, nil)
}

// Me resolves the current bearer token into a user identity. Any
// failure means the credential must be discarded by the caller.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
