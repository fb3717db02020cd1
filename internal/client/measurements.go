package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// MeasurementsClient implements datahawk.MeasurementsClient.
type MeasurementsClient struct {
	httpClient *http.Client
	base       string
}

// NewMeasurementsClient creates a new measurements client.
func NewMeasurementsClient(httpClient *http.Client, base string) *MeasurementsClient {
	return &MeasurementsClient{httpClient: httpClient, base: base}
}

// Create implements datahawk.MeasurementsClient.Create.
func (c *MeasurementsClient) Create(ctx context.Context, request *datahawk.MeasurementCreateRequest) (*datahawk.Measurement, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/measurements", request)
	if err != nil {
		return nil, fmt.Errorf("creating measurement: %w", err)
	}

	var measurement datahawk.Measurement

	err = json.Unmarshal(resp.Body, &measurement)
	if err != nil {
		return nil, fmt.Errorf("parsing measurement: %w", err)
	}

	return &measurement, nil
}

// Get implements datahawk.MeasurementsClient.Get.
func (c *MeasurementsClient) Get(ctx context.Context, measurementID string) (*datahawk.Measurement, error) {
	path := c.base + "/measurements/" + measurementID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting measurement: %w", err)
	}

	var measurement datahawk.Measurement

	err = json.Unmarshal(resp.Body, &measurement)
	if err != nil {
		return nil, fmt.Errorf("parsing measurement: %w", err)
	}

	return &measurement, nil
}

// List implements datahawk.MeasurementsClient.List.
func (c *MeasurementsClient) List(ctx context.Context, query *datahawk.Query) (*datahawk.MeasurementList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/measurements", query)
	if err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}

	var list datahawk.MeasurementList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing measurement list: %w", err)
	}

	return &list, nil
}

// Delete implements datahawk.MeasurementsClient.Delete.
func (c *MeasurementsClient) Delete(ctx context.Context, measurementID string) error {
	path := c.base + "/measurements/" + measurementID

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}

	return nil
}

// CalculateVolume implements datahawk.MeasurementsClient.CalculateVolume.
func (c *MeasurementsClient) CalculateVolume(ctx context.Context, request *datahawk.VolumeRequest) (*datahawk.VolumeResult, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/measurements/volume", request)
	if err != nil {
		return nil, fmt.Errorf("calculating volume: %w", err)
	}

	var result datahawk.VolumeResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing volume result: %w", err)
	}

	return &result, nil
}

// CalculateElevation implements datahawk.MeasurementsClient.CalculateElevation.
func (c *MeasurementsClient) CalculateElevation(ctx context.Context, request *datahawk.ElevationRequest) (*datahawk.ElevationResult, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/measurements/elevation", request)
	if err != nil {
		return nil, fmt.Errorf("calculating elevation: %w", err)
	}

	var result datahawk.ElevationResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing elevation result: %w", err)
	}

	return &result, nil
}
