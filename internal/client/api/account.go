package api

import (
	"context"
	"net/http"
)

// LoginResult is the backend's answer to a successful login. UserID is a
// pointer because some backend versions omit it; the session store keeps the
// token regardless.
type LoginResult struct {
	Token  string `json:"token"`
	UserID *int64 `json:"user_id"`
}

// ProfileUpdate is a partial account update; nil fields are left untouched.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result LoginResult
	err := c.call(ctx, http.MethodPost, "/account/login", nil, payload, &result, "login failed")
	return result, err
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, email, password, username string) error {
	payload := map[string]string{"email": email, "password": password, "username": username}
	return c.call(ctx, http.MethodPost, "/account/register", nil, payload, nil, "registration failed")
}

// UpdateProfile patches a subset of the account fields.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	return c.call(ctx, http.MethodPut, "/account/update", userQuery(userID), update, nil, "profile update failed")
}
