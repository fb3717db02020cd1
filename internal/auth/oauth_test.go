package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

func TestClientCredentialsTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("returns pre-supplied fresh token without any endpoint call", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fresh := signedToken(t, time.Now().Add(time.Hour))

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			TokenURL:    server.URL + "/v1/oauth/token",
			Key:         "client-key",
			Secret:      "client-secret",
			AccessToken: fresh,
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("acquires via client_credentials grant and reuses the result", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		granted := signedToken(t, time.Now().Add(time.Hour))

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)

			assert.Equal(t, "/v1/oauth/token", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			var grant map[string]string

			require.NoError(t, json.Unmarshal(body, &grant))
			assert.Equal(t, "client_credentials", grant["grant_type"])
			assert.Equal(t, "client-key", grant["client_id"])
			assert.Equal(t, "client-secret", grant["client_secret"])
			assert.Equal(t, "https://api.example.com", grant["audience"])

			_ = json.NewEncoder(w).Encode(Token{
				AccessToken: granted,
				TokenType:   "bearer",
				ExpiresIn:   3600,
			})
		}))
		defer server.Close()

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			TokenURL: server.URL + "/v1/oauth/token",
			Key:      "client-key",
			Secret:   "client-secret",
			Audience: "https://api.example.com",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, granted, token)

		// Second call must reuse the still-fresh token
		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, granted, token)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("replaces expired token via grant", func(t *testing.T) {
		t.Parallel()

		granted := signedToken(t, time.Now().Add(time.Hour))

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Token{AccessToken: granted, TokenType: "bearer"})
		}))
		defer server.Close()

		expired := signedToken(t, time.Now().Add(-time.Hour))

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			TokenURL:    server.URL + "/v1/oauth/token",
			Key:         "client-key",
			Secret:      "client-secret",
			AccessToken: expired,
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, granted, token)
	})

	t.Run("rejected grant surfaces as AuthError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer server.Close()

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			TokenURL: server.URL + "/v1/oauth/token",
			Key:      "client-key",
			Secret:   "wrong-secret",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)

		var authErr *datahawk.AuthError

		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Contains(t, authErr.Detail, "invalid_client")
	})

	t.Run("malformed held token surfaces as AuthError", func(t *testing.T) {
		t.Parallel()

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			AccessToken: "garbage",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)

		var authErr *datahawk.AuthError

		assert.True(t, errors.As(err, &authErr))
	})

	t.Run("expired token without credentials is returned as-is", func(t *testing.T) {
		t.Parallel()

		expired := signedToken(t, time.Now().Add(-time.Hour))

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			AccessToken: expired,
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, expired, token)
	})

	t.Run("no token and no credentials yields empty token", func(t *testing.T) {
		t.Parallel()

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("token without exp claim never goes stale", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		nonExpiring := signedToken(t, time.Time{})

		manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
			TokenURL:    server.URL + "/v1/oauth/token",
			Key:         "client-key",
			Secret:      "client-secret",
			AccessToken: nonExpiring,
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, nonExpiring, token)
		assert.Equal(t, int32(0), calls.Load())
	})
}

func TestClientCredentialsTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	granted := "refreshed-token"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Token{AccessToken: granted, TokenType: "bearer"})
	}))
	defer server.Close()

	manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{
		TokenURL: server.URL + "/v1/oauth/token",
		Key:      "client-key",
		Secret:   "client-secret",
	})

	err := manager.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, granted, manager.store.Get().AccessToken)
}

func TestClientCredentialsTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	manager := NewClientCredentialsTokenManager(&ClientCredentialsConfig{})
	manager.SetToken(signedToken(t, time.Now().Add(time.Hour)))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
