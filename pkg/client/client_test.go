package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/pkg/apierr"
	"sellerdesk/pkg/models"
)

func TestDoRefreshesOnceAndRetries(t *testing.T) {
	var productCalls, refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		productCalls++
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "token expired", "code": "TOKEN_EXPIRED"})
			return
		}
		json.NewEncoder(w).Encode(models.PaginationResult[models.Product]{
			Data:  []models.Product{{Title: "Widget"}},
			Total: 1, Page: 1, PerPage: 20, TotalPages: 1,
		})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "fresh-token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var notified string
	c, err := New(srv.URL,
		WithToken("stale-token"),
		WithOnTokenRefresh(func(token string) { notified = token }))
	require.NoError(t, err)

	result, err := c.ListProducts(context.Background(), ListParams{})
	require.NoError(t, err)

	assert.Equal(t, "Widget", result.Data[0].Title)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 2, productCalls)
	assert.Equal(t, "fresh-token", c.Token())
	assert.Equal(t, "fresh-token", notified)
}

func TestDoRefreshMissingToken(t *testing.T) {
	var productCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		productCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL, WithToken("stale-token"))
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeRefreshTokenMissing))
	assert.Equal(t, 1, productCalls, "original request must not be retried")
}

func TestDoRefreshExpiredToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL, WithToken("stale-token"))
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeRefreshTokenExpired))
}

func TestDoNoTokenNoRefresh(t *testing.T) {
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "no token provided", "code": "NO_TOKEN"})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeNoToken))
	assert.Equal(t, 0, refreshCalls, "no refresh without a token")
}

func TestLoginStoresTokenAndCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "rt-1", HttpOnly: true, Path: "/"})
		json.NewEncoder(w).Encode(LoginResponse{
			Token: "access-1",
			User:  models.User{Email: "admin@example.com", Role: models.RoleAdmin},
		})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("refresh_token")
		if err != nil || cookie.Value != "rt-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "access-2"})
	})
	mux.HandleFunc("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.User{Email: "admin@example.com"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.Token)
	assert.Equal(t, "access-1", c.Token())

	// The jar sends the refresh cookie; the stale access token gets renewed.
	user, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "access-2", c.Token())
}

func TestDecodeErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithToken("tok"))
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background(), ListParams{})
	require.Error(t, err)
	assert.True(t, apierr.IsCode(err, apierr.CodeInternal))
}
