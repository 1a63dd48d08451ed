package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/DrewAMSD/lifting-log/token"
	"github.com/pkg/errors"
)

// Auth is the slice of the client that session management depends on.
type Auth interface {
	// Login exchanges credentials for a token pair. Authoritative
	// rejections come back as ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh mints a new access token. A server that no longer knows
	// the refresh token answers 404, which comes back as
	// ErrRefreshTokenInvalid; any other failure is transient.
	Refresh(ctx context.Context, refreshToken string) (token.Token, error)
	// Revoke invalidates a refresh token server-side. Advisory: the
	// only failure mode is transient.
	Revoke(ctx context.Context, refreshToken string) error
	// DeleteAccount removes the authenticated user's account.
	DeleteAccount(ctx context.Context, accessToken string) error
}

var _ Auth = (*Client)(nil)

// LoginResult is a freshly issued token pair and the identity the
// server minted it for.
type LoginResult struct {
	Username     string
	AccessToken  token.Token
	RefreshToken token.Token
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login posts form-encoded credentials to /users/token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/users/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := c.errorDetail(resp)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, &TransientError{Cause: &StatusError{StatusCode: resp.StatusCode, Detail: detail}}
		}
		return nil, wrapDetail(ErrInvalidCredentials, detail)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &TransientError{Cause: errors.Wrap(err, "[Client.Login] decode token response")}
	}

	accessToken, sub, err := token.Parse(body.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] access token")
	}
	if sub == "" {
		return nil, errors.New("[Client.Login] access token missing sub claim")
	}
	refreshToken, _, err := token.Parse(body.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login] refresh token")
	}

	return &LoginResult{
		Username:     sub,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh posts the refresh token to /users/refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (token.Token, error) {
	resp, err := c.sendRefreshToken(ctx, http.MethodPost, refreshToken)
	if err != nil {
		return token.Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := c.errorDetail(resp)
		if resp.StatusCode == http.StatusNotFound {
			return token.Token{}, wrapDetail(ErrRefreshTokenInvalid, detail)
		}
		// Anything else says nothing about the token itself.
		return token.Token{}, &TransientError{Cause: &StatusError{StatusCode: resp.StatusCode, Detail: detail}}
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return token.Token{}, &TransientError{Cause: errors.Wrap(err, "[Client.Refresh] decode token response")}
	}

	accessToken, _, err := token.Parse(body.AccessToken)
	if err != nil {
		return token.Token{}, errors.Wrap(err, "[Client.Refresh] access token")
	}
	return accessToken, nil
}

// Revoke deletes the refresh token server-side.
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	resp, err := c.sendRefreshToken(ctx, http.MethodDelete, refreshToken)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &TransientError{Cause: &StatusError{StatusCode: resp.StatusCode, Detail: c.errorDetail(resp)}}
	}
	return nil
}

// DeleteAccount deletes the authenticated user's account.
func (c *Client) DeleteAccount(ctx context.Context, accessToken string) error {
	return c.roundTrip(ctx, http.MethodDelete, "/users/me", accessToken, nil, nil)
}

func (c *Client) sendRefreshToken(ctx context.Context, method, refreshToken string) (*http.Response, error) {
	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken, TokenType: "bearer"})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.sendRefreshToken] marshal request body")
	}

	req, err := c.newRequest(ctx, method, "/users/refresh", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// errorDetail drains the {detail} envelope from a non-2xx response.
func (c *Client) errorDetail(resp *http.Response) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return envelope.Detail
}

func wrapDetail(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return errors.Wrap(sentinel, detail)
}
