package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DrewAMSD/lifting-log/api"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(server.URL)
	require.NoError(t, err)
	return client
}

func TestLoginSuccess(t *testing.T) {
	accessExp := time.Now().Add(time.Hour)
	refreshExp := time.Now().Add(7 * 24 * time.Hour)
	access := signedToken(t, "alice", accessExp)
	refresh := signedToken(t, "alice", refreshExp)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "alice", r.PostForm.Get("username"))
		require.Equal(t, "pw", r.PostForm.Get("password"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  access,
			"refresh_token": refresh,
			"token_type":    "bearer",
		})
	}))

	result, err := client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice", result.Username)
	require.Equal(t, access, result.AccessToken.Value)
	require.Equal(t, accessExp.Unix(), result.AccessToken.ExpiresAt)
	require.Equal(t, refresh, result.RefreshToken.Value)
	require.Equal(t, refreshExp.Unix(), result.RefreshToken.ExpiresAt)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	require.Contains(t, err.Error(), "Incorrect username or password")
	require.False(t, api.IsTransient(err))
}

func TestLoginServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Login(context.Background(), "alice", "pw")
	require.True(t, api.IsTransient(err))
	require.NotErrorIs(t, err, api.ErrInvalidCredentials)
}

func TestLoginNetworkErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening any more

	client, err := api.New(server.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "alice", "pw")
	require.True(t, api.IsTransient(err))
}

func TestRefreshSuccess(t *testing.T) {
	accessExp := time.Now().Add(time.Hour)
	access := signedToken(t, "alice", accessExp)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/refresh", r.URL.Path)

		var body struct {
			RefreshToken string `json:"refresh_token"`
			TokenType    string `json:"token_type"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "old-refresh", body.RefreshToken)
		require.Equal(t, "bearer", body.TokenType)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": access,
			"token_type":   "bearer",
		})
	}))

	tok, err := client.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	require.Equal(t, access, tok.Value)
	require.Equal(t, accessExp.Unix(), tok.ExpiresAt)
}

func TestRefreshNotFoundIsAuthoritative(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Refresh token not found"})
	}))

	_, err := client.Refresh(context.Background(), "gone")
	require.ErrorIs(t, err, api.ErrRefreshTokenInvalid)
	require.False(t, api.IsTransient(err))
}

func TestRefreshServerErrorIsTransient(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.Refresh(context.Background(), "refresh")
	require.True(t, api.IsTransient(err))
	require.NotErrorIs(t, err, api.ErrRefreshTokenInvalid)
}

func TestRevoke(t *testing.T) {
	var method, path string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Revoke(context.Background(), "refresh"))
	require.Equal(t, http.MethodDelete, method)
	require.Equal(t, "/users/refresh", path)
}

func TestRevokeFailureIsTransient(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.Revoke(context.Background(), "refresh")
	require.True(t, api.IsTransient(err))
}

func TestDeleteAccount(t *testing.T) {
	var bearer string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/me", r.URL.Path)
		bearer = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteAccount(context.Background(), "access-token"))
	require.Equal(t, "Bearer access-token", bearer)
}

func TestMe(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"username":  "alice",
			"email":     "alice@example.com",
			"full_name": "Alice Example",
		})
	}))

	profile, err := client.Me(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, "alice@example.com", profile.Email)
	require.Equal(t, "Alice Example", profile.FullName)
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"Chest", "Back"})
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, api.WithGETRetries(2))
	require.NoError(t, err)

	muscles, err := client.DefaultMuscles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Chest", "Back"}, muscles)
	require.Equal(t, 2, calls)
}

func TestGetDoesNotRetryAuthoritativeFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	t.Cleanup(server.Close)

	client, err := api.New(server.URL, api.WithGETRetries(3))
	require.NoError(t, err)

	_, err = client.Me(context.Background(), "stale")
	require.Error(t, err)
	require.False(t, api.IsTransient(err))
	require.Equal(t, 1, calls)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, "Could not validate credentials", statusErr.Detail)
}
