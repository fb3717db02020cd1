package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahawk-io/datahawk-go/internal/client"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

func TestProcessingClient(t *testing.T) {
	t.Parallel()

	t.Run("get job", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/processing/jobs/j1", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)

			_ = json.NewEncoder(w).Encode(datahawk.ProcessingJob{State: "RUNNING", Progress: 0.4})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		job, err := apiClient.Processing().GetJob(context.Background(), "j1")
		require.NoError(t, err)
		assert.Equal(t, "RUNNING", job.State)
		assert.InDelta(t, 0.4, job.Progress, 0.001)
	})

	t.Run("cancel job", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/processing/jobs/j1/cancel", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			_ = json.NewEncoder(w).Encode(datahawk.ProcessingJob{State: "CANCELLED"})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		job, err := apiClient.Processing().CancelJob(context.Background(), "j1")
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", job.State)
	})

	t.Run("poll returns immediately for complete job", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(datahawk.ProcessingJob{State: "COMPLETE", Progress: 1})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		job, err := apiClient.Processing().PollUntilComplete(context.Background(), "j1")
		require.NoError(t, err)
		assert.Equal(t, "COMPLETE", job.State)
	})

	t.Run("poll surfaces failed job with error details", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(datahawk.ProcessingJob{
				State: "FAILED",
				Errors: []datahawk.JobError{
					{Code: "GCP_MISSING", Detail: "no ground control points"},
				},
			})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		job, err := apiClient.Processing().PollUntilComplete(context.Background(), "j1")
		require.Error(t, err)
		assert.ErrorIs(t, err, datahawk.ErrJobFailed)
		assert.Contains(t, err.Error(), "no ground control points")
		require.NotNil(t, job)
		assert.Equal(t, "FAILED", job.State)
	})
}
