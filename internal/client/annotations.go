package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// AnnotationsClient implements datahawk.AnnotationsClient.
type AnnotationsClient struct {
	httpClient *http.Client
	base       string
}

// NewAnnotationsClient creates a new annotations client.
func NewAnnotationsClient(httpClient *http.Client, base string) *AnnotationsClient {
	return &AnnotationsClient{httpClient: httpClient, base: base}
}

// Create implements datahawk.AnnotationsClient.Create.
func (c *AnnotationsClient) Create(ctx context.Context, request *datahawk.AnnotationCreateRequest) (*datahawk.Annotation, error) {
	resp, err := c.httpClient.Post(ctx, c.base+"/annotations", request)
	if err != nil {
		return nil, fmt.Errorf("creating annotation: %w", err)
	}

	var annotation datahawk.Annotation

	err = json.Unmarshal(resp.Body, &annotation)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation: %w", err)
	}

	return &annotation, nil
}

// Get implements datahawk.AnnotationsClient.Get.
func (c *AnnotationsClient) Get(ctx context.Context, annotationID string) (*datahawk.Annotation, error) {
	path := c.base + "/annotations/" + annotationID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting annotation: %w", err)
	}

	var annotation datahawk.Annotation

	err = json.Unmarshal(resp.Body, &annotation)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation: %w", err)
	}

	return &annotation, nil
}

// List implements datahawk.AnnotationsClient.List.
func (c *AnnotationsClient) List(ctx context.Context, query *datahawk.Query) (*datahawk.AnnotationList, error) {
	resp, err := c.httpClient.Get(ctx, c.base+"/annotations", query)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	var list datahawk.AnnotationList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation list: %w", err)
	}

	return &list, nil
}

// Update implements datahawk.AnnotationsClient.Update.
func (c *AnnotationsClient) Update(ctx context.Context, annotationID string, request *datahawk.AnnotationUpdateRequest) (*datahawk.Annotation, error) {
	path := c.base + "/annotations/" + annotationID

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating annotation: %w", err)
	}

	var annotation datahawk.Annotation

	err = json.Unmarshal(resp.Body, &annotation)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation: %w", err)
	}

	return &annotation, nil
}

// Delete implements datahawk.AnnotationsClient.Delete.
func (c *AnnotationsClient) Delete(ctx context.Context, annotationID string) error {
	path := c.base + "/annotations/" + annotationID

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}

	return nil
}
