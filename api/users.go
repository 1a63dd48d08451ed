package api

import (
	"context"
	"net/http"
)

// Profile is the account metadata behind GET /users/me.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUser is the sign-up payload for POST /users.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context, accessToken string) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/users/me", accessToken, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateUser registers a new account and returns the created username.
func (c *Client) CreateUser(ctx context.Context, user NewUser) (string, error) {
	var created struct {
		Username string `json:"username"`
	}
	if err := c.roundTrip(ctx, http.MethodPost, "/users", "", user, &created); err != nil {
		return "", err
	}
	return created.Username, nil
}
