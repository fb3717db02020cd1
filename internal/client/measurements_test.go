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

func TestMeasurementsClient_Calculations(t *testing.T) {
	t.Parallel()

	t.Run("volume", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/measurements/volume", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var request datahawk.VolumeRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "d1", request.DatasetUUID)
			assert.Len(t, request.Polygon, 3)

			_ = json.NewEncoder(w).Encode(datahawk.VolumeResult{
				CutCubicMeters:  120.5,
				FillCubicMeters: 30.2,
				NetCubicMeters:  90.3,
			})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		result, err := apiClient.Measurements().CalculateVolume(context.Background(), &datahawk.VolumeRequest{
			DatasetUUID: "d1",
			Polygon: []datahawk.GeoPoint{
				{Latitude: 1, Longitude: 1},
				{Latitude: 1, Longitude: 2},
				{Latitude: 2, Longitude: 1},
			},
		})
		require.NoError(t, err)
		assert.InDelta(t, 120.5, result.CutCubicMeters, 0.001)
		assert.InDelta(t, 90.3, result.NetCubicMeters, 0.001)
	})

	t.Run("elevation preserves point order", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/measurements/elevation", r.URL.Path)

			_ = json.NewEncoder(w).Encode(datahawk.ElevationResult{
				Elevations: []float64{101.2, 99.8},
				Unit:       "m",
			})
		}))
		defer server.Close()

		apiClient, err := client.New(&datahawk.Config{Origin: server.URL})
		require.NoError(t, err)

		result, err := apiClient.Measurements().CalculateElevation(context.Background(), &datahawk.ElevationRequest{
			DatasetUUID: "d1",
			Points: []datahawk.GeoPoint{
				{Latitude: 1, Longitude: 1},
				{Latitude: 2, Longitude: 2},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{101.2, 99.8}, result.Elevations)
		assert.Equal(t, "m", result.Unit)
	})
}
