package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// PhotosClient implements datahawk.PhotosClient.
type PhotosClient struct {
	httpClient *http.Client
	base       string
}

// NewPhotosClient creates a new photos client.
func NewPhotosClient(httpClient *http.Client, base string) *PhotosClient {
	return &PhotosClient{httpClient: httpClient, base: base}
}

func (c *PhotosClient) photosPath(datasetUUID string) string {
	return c.base + "/datasets/" + datasetUUID + "/photos"
}

// List implements datahawk.PhotosClient.List.
func (c *PhotosClient) List(ctx context.Context, datasetUUID string, query *datahawk.Query) (*datahawk.PhotoList, error) {
	resp, err := c.httpClient.Get(ctx, c.photosPath(datasetUUID), query)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}

	var list datahawk.PhotoList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing photo list: %w", err)
	}

	return &list, nil
}

// Get implements datahawk.PhotosClient.Get.
func (c *PhotosClient) Get(ctx context.Context, datasetUUID, photoID string) (*datahawk.Photo, error) {
	path := c.photosPath(datasetUUID) + "/" + photoID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}

	var photo datahawk.Photo

	err = json.Unmarshal(resp.Body, &photo)
	if err != nil {
		return nil, fmt.Errorf("parsing photo: %w", err)
	}

	return &photo, nil
}

// Add implements datahawk.PhotosClient.Add.
func (c *PhotosClient) Add(ctx context.Context, datasetUUID string, request *datahawk.PhotoAddRequest) (*datahawk.Photo, error) {
	resp, err := c.httpClient.Post(ctx, c.photosPath(datasetUUID), request)
	if err != nil {
		return nil, fmt.Errorf("adding photo: %w", err)
	}

	var photo datahawk.Photo

	err = json.Unmarshal(resp.Body, &photo)
	if err != nil {
		return nil, fmt.Errorf("parsing photo: %w", err)
	}

	return &photo, nil
}

// Update implements datahawk.PhotosClient.Update.
func (c *PhotosClient) Update(ctx context.Context, datasetUUID, photoID string, request *datahawk.PhotoUpdateRequest) (*datahawk.Photo, error) {
	path := c.photosPath(datasetUUID) + "/" + photoID

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating photo: %w", err)
	}

	var photo datahawk.Photo

	err = json.Unmarshal(resp.Body, &photo)
	if err != nil {
		return nil, fmt.Errorf("parsing photo: %w", err)
	}

	return &photo, nil
}

// Delete implements datahawk.PhotosClient.Delete.
func (c *PhotosClient) Delete(ctx context.Context, datasetUUID, photoID string) error {
	path := c.photosPath(datasetUUID) + "/" + photoID

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}

	return nil
}

// GetDownloadURL implements datahawk.PhotosClient.GetDownloadURL.
func (c *PhotosClient) GetDownloadURL(ctx context.Context, datasetUUID, photoID string) (*datahawk.DownloadURL, error) {
	path := c.photosPath(datasetUUID) + "/" + photoID + "/download"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting download URL: %w", err)
	}

	var downloadURL datahawk.DownloadURL

	err = json.Unmarshal(resp.Body, &downloadURL)
	if err != nil {
		return nil, fmt.Errorf("parsing download URL: %w", err)
	}

	return &downloadURL, nil
}
