package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// ExportsClient implements datahawk.ExportsClient.
type ExportsClient struct {
	httpClient *http.Client
	base       string
}

// NewExportsClient creates a new exports client.
func NewExportsClient(httpClient *http.Client, base string) *ExportsClient {
	return &ExportsClient{httpClient: httpClient, base: base}
}

// Create implements datahawk.ExportsClient.Create.
func (c *ExportsClient) Create(ctx context.Context, request *datahawk.ExportCreateRequest) (*datahawk.Export, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/exports", request)
	if err != nil {
		return nil, fmt.Errorf("creating export: %w", err)
	}

	var export datahawk.Export

	err = json.Unmarshal(resp.Body, &export)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	return &export, nil
}

// Get implements datahawk.ExportsClient.Get.
func (c *ExportsClient) Get(ctx context.Context, exportID string) (*datahawk.Export, error) {
	path := c.base + "/exports/" + exportID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting export: %w", err)
	}

	var export datahawk.Export

	err = json.Unmarshal(resp.Body, &export)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	return &export, nil
}

// List implements datahawk.ExportsClient.List.
func (c *ExportsClient) List(ctx context.Context, query *datahawk.Query) (*datahawk.ExportList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/exports", query)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}

	var list datahawk.ExportList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing export list: %w", err)
	}

	return &list, nil
}

// Cancel implements datahawk.ExportsClient.Cancel.
func (c *ExportsClient) Cancel(ctx context.Context, exportID string) (*datahawk.Export, error) {
	path := c.base + "/exports/" + exportID + "/cancel"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("canceling export: %w", err)
	}

	var export datahawk.Export

	err = json.Unmarshal(resp.Body, &export)
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	return &export, nil
}
