package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// DatasetsClient implements datahawk.DatasetsClient.
type DatasetsClient struct {
	httpClient *http.Client
	base       string
}

// NewDatasetsClient creates a new datasets client.
func NewDatasetsClient(httpClient *http.Client, base string) *DatasetsClient {
	return &DatasetsClient{httpClient: httpClient, base: base}
}

// Create implements datahawk.DatasetsClient.Create.
func (c *DatasetsClient) Create(ctx context.Context, request *datahawk.DatasetCreateRequest) (*datahawk.Dataset, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/datasets", request)
	if err != nil {
		return nil, fmt.Errorf("creating dataset: %w", err)
	}

	var dataset datahawk.Dataset

	err = json.Unmarshal(resp.Body, &dataset)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return &dataset, nil
}

// Get implements datahawk.DatasetsClient.Get.
func (c *DatasetsClient) Get(ctx context.Context, uuid string) (*datahawk.Dataset, error) {
	path := c.base + "/datasets/" + uuid

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dataset: %w", err)
	}

	var dataset datahawk.Dataset

	err = json.Unmarshal(resp.Body, &dataset)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return &dataset, nil
}

// List implements datahawk.DatasetsClient.List.
func (c *DatasetsClient) List(ctx context.Context, query *datahawk.Query) (*datahawk.DatasetList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/datasets", query)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}

	var list datahawk.DatasetList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset list: %w", err)
	}

	return &list, nil
}

// Update implements datahawk.DatasetsClient.Update.
func (c *DatasetsClient) Update(ctx context.Context, uuid string, request *datahawk.DatasetUpdateRequest) (*datahawk.Dataset, error) {
	path := c.base + "/datasets/" + uuid

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating dataset: %w", err)
	}

	var dataset datahawk.Dataset

	err = json.Unmarshal(resp.Body, &dataset)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	return &dataset, nil
}

// Delete implements datahawk.DatasetsClient.Delete.
func (c *DatasetsClient) Delete(ctx context.Context, uuid string) error {
	path := c.base + "/datasets/" + uuid

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}

	return nil
}

// Process implements datahawk.DatasetsClient.Process.
func (c *DatasetsClient) Process(ctx context.Context, uuid string, request *datahawk.ProcessRequest) (*datahawk.ProcessingJob, error) {
	path := c.base + "/datasets/" + uuid + "/process"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("starting dataset processing: %w", err)
	}

	var job datahawk.ProcessingJob

	err = json.Unmarshal(resp.Body, &job)
	if err != nil {
		return nil, fmt.Errorf("parsing processing job: %w", err)
	}

	return &job, nil
}

// GetProcessingStatus implements datahawk.DatasetsClient.GetProcessingStatus.
func (c *DatasetsClient) GetProcessingStatus(ctx context.Context, uuid string) (*datahawk.ProcessingStatus, error) {
	path := c.base + "/datasets/" + uuid + "/status"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting processing status: %w", err)
	}

	var status datahawk.ProcessingStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing processing status: %w", err)
	}

	return &status, nil
}
