package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahawk-io/datahawk-go/internal/client"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// testToken builds a signed JWT expiring an hour from now, so freshness
// checks treat it as valid.
func testToken(t *testing.T) string {
	t.Helper()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	return token
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(nil)
		assert.ErrorIs(t, err, datahawk.ErrConfigRequired)
	})

	t.Run("no endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&datahawk.Config{})
		assert.ErrorIs(t, err, datahawk.ErrEndpointRequired)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("client_credentials grant then authenticated list", func(t *testing.T) {
		t.Parallel()

		var tokenCalls atomic.Int32

		granted := testToken(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/oauth/token":
				tokenCalls.Add(1)

				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var grant map[string]string

				require.NoError(t, json.NewDecoder(r.Body).Decode(&grant))
				assert.Equal(t, "client_credentials", grant["grant_type"])
				assert.Equal(t, "client-key", grant["client_id"])
				assert.Equal(t, "client-secret", grant["client_secret"])

				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token": granted,
					"token_type":   "bearer",
					"expires_in":   3600,
				})
			case "/v2/datasets":
				assert.Equal(t, "Bearer "+granted, r.Header.Get("Authorization"))

				_ = json.NewEncoder(w).Encode(datahawk.DatasetList{
					Items: []datahawk.Dataset{{UUID: "d1", Name: "site-alpha"}},
					Meta:  datahawk.ListMeta{TotalCount: 1},
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{
			Origin: server.URL,
			Key:    "client-key",
			Secret: "client-secret",
		})
		require.NoError(t, err)

		ctx := context.Background()

		list, err := apiClient.Datasets().List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "site-alpha", list.Items[0].Name)

		// Token is reused for the second call
		_, err = apiClient.Datasets().List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(1), tokenCalls.Load())
	})

	t.Run("path parameters substitute into nested photo routes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/datasets/d1/photos/p1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(datahawk.Photo{Filename: "IMG_0001.jpg"})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		photo, err := apiClient.Photos().Get(context.Background(), "d1", "p1")
		require.NoError(t, err)
		assert.Equal(t, "IMG_0001.jpg", photo.Filename)
	})

	t.Run("configured API version changes the path prefix", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/datasets/d1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(datahawk.Dataset{UUID: "d1"})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL, APIVersion: 3})
		require.NoError(t, err)

		_, err = apiClient.Datasets().Get(context.Background(), "d1")
		require.NoError(t, err)
	})

	t.Run("support stays on v1 regardless of API version", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/support/tickets", r.URL.Path)
			_ = json.NewEncoder(w).Encode(datahawk.SupportTicketList{})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL, APIVersion: 3})
		require.NoError(t, err)

		_, err = apiClient.Support().ListTickets(context.Background(), nil)
		require.NoError(t, err)
	})

	t.Run("service status carries no Authorization header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/status", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(datahawk.ServiceStatus{Status: "operational", Version: "2.14.0"})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{
			Origin: server.URL,
			Token:  testToken(t),
		})
		require.NoError(t, err)

		status, err := apiClient.GetServiceStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "operational", status.Status)
	})

	t.Run("domain builds an https base URL", func(t *testing.T) {
		t.Parallel()

		apiClient, err := client.New(&datahawk.Config{Domain: "api.example.com"})
		require.NoError(t, err)
		assert.NotNil(t, apiClient)
	})

	t.Run("env header reaches every request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "stage", r.Header.Get("x-dh-env"))
			_ = json.NewEncoder(w).Encode(datahawk.DatasetList{})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL, Env: "stage"})
		require.NoError(t, err)

		_, err = apiClient.Datasets().List(context.Background(), nil)
		require.NoError(t, err)
	})

	t.Run("list query encodes filters in repeat format", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "type=A&tags=x&tags=y", r.URL.RawQuery)
			_ = json.NewEncoder(w).Encode(datahawk.DatasetList{})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		query := datahawk.NewQuery().Set("type", "A").Add("tags", "x", "y")

		_, err = apiClient.Datasets().List(context.Background(), query)
		require.NoError(t, err)
	})

	t.Run("remote rejection surfaces as APIError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"dataset not found"}`))
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		_, err = apiClient.Datasets().Get(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, datahawk.IsNotFound(err))
		assert.Contains(t, err.Error(), "dataset not found")
	})
}

func TestClient_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("no token manager", func(t *testing.T) {
		t.Parallel()

		apiClient, err := client.New(&datahawk.Config{Origin: "https://api.example.com"})
		require.NoError(t, err)

		_, err = apiClient.GetToken(context.Background())
		assert.ErrorIs(t, err, datahawk.ErrNoTokenManager)
	})

	t.Run("pre-supplied token", func(t *testing.T) {
		t.Parallel()

		supplied := testToken(t)

		apiClient, err := client.New(&datahawk.Config{
			Origin: "https://api.example.com",
			Token:  supplied,
		})
		require.NoError(t, err)

		token, err := apiClient.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, supplied, token)
	})
}

func TestClient_TokenURLResolution(t *testing.T) {
	t.Parallel()

	t.Run("separate auth origin", func(t *testing.T) {
		t.Parallel()

		granted := testToken(t)

		authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/oauth/token", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": granted,
				"token_type":   "bearer",
			})
		}))
		defer authServer.Close()

		apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/datasets", r.URL.Path)
			assert.Equal(t, "Bearer "+granted, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(datahawk.DatasetList{})
		}))
		defer apiServer.Close()

		apiClient, err := client.New(&datahawk.Config{
			Origin:     apiServer.URL,
			AuthOrigin: authServer.URL,
			Key:        "client-key",
			Secret:     "client-secret",
		})
		require.NoError(t, err)

		_, err = apiClient.Datasets().List(context.Background(), nil)
		require.NoError(t, err)
	})
}
