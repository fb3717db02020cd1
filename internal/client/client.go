// Package client contains the concrete implementation of the DataHawk API
// client and its per-resource endpoint wrappers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datahawk-io/datahawk-go/internal/auth"
	"github.com/datahawk-io/datahawk-go/internal/constants"
	"github.com/datahawk-io/datahawk-go/internal/http"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// Client implements the datahawk.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager http.TokenManager
	baseURL      string
	base         string
	logger       datahawk.Logger

	// Resource clients
	datasets     datahawk.DatasetsClient
	photos       datahawk.PhotosClient
	measurements datahawk.MeasurementsClient
	exports      datahawk.ExportsClient
	annotations  datahawk.AnnotationsClient
	processing   datahawk.ProcessingClient
	support      datahawk.SupportClient
}

// New creates a new DataHawk API client.
func New(config *datahawk.Config) (*Client, error) {
	if config == nil {
		return nil, datahawk.ErrConfigRequired
	}

	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	tokenManager := createTokenManager(config, baseURL)

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(baseURL, tokenManager, httpOpts...)

	version := config.APIVersion
	if version == 0 {
		version = constants.DefaultAPIVersion
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		base:         fmt.Sprintf("/v%d", version),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a client with a custom token manager.
func NewWithTokenManager(config *datahawk.Config, tokenManager http.TokenManager) (*Client, error) {
	if config == nil {
		return nil, datahawk.ErrConfigRequired
	}

	baseURL, err := resolveBaseURL(config)
	if err != nil {
		return nil, err
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(baseURL, tokenManager, httpOpts...)

	version := config.APIVersion
	if version == 0 {
		version = constants.DefaultAPIVersion
	}

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		base:         fmt.Sprintf("/v%d", version),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// resolveBaseURL applies the origin/domain duality: Origin wins, otherwise
// the base is built from Domain.
func resolveBaseURL(config *datahawk.Config) (string, error) {
	if config.Origin != "" {
		return strings.TrimSuffix(config.Origin, "/"), nil
	}

	if config.Domain != "" {
		return "https://" + strings.TrimSuffix(config.Domain, "/"), nil
	}

	return "", datahawk.ErrEndpointRequired
}

// resolveTokenURL applies the same duality for the token service: AuthOrigin
// wins, then Tenant, then the API base itself.
func resolveTokenURL(config *datahawk.Config, baseURL string) string {
	switch {
	case config.AuthOrigin != "":
		return strings.TrimSuffix(config.AuthOrigin, "/") + constants.TokenPath
	case config.Tenant != "":
		return "https://" + strings.TrimSuffix(config.Tenant, "/") + constants.TokenPath
	default:
		return baseURL + constants.TokenPath
	}
}

// createTokenManager creates the appropriate token manager based on config.
func createTokenManager(config *datahawk.Config, baseURL string) http.TokenManager {
	if config.Token == "" && (config.Key == "" || config.Secret == "") {
		return nil // No authentication
	}

	return auth.NewClientCredentialsTokenManager(&auth.ClientCredentialsConfig{
		TokenURL:    resolveTokenURL(config, baseURL),
		Key:         config.Key,
		Secret:      config.Secret,
		Audience:    config.Audience,
		AccessToken: config.Token,
		Logger:      config.Logger,
		Debug:       config.Debug,
	})
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *datahawk.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Env != "" {
		httpOpts = append(httpOpts, http.WithEnv(config.Env))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil {
		cache, err := datahawk.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building response cache: %w", err)
		}

		httpOpts = append(httpOpts, http.WithCache(cache, config.Cache.Options))
	}

	return httpOpts, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.datasets = NewDatasetsClient(c.httpClient, c.base)
	c.photos = NewPhotosClient(c.httpClient, c.base)
	c.measurements = NewMeasurementsClient(c.httpClient, c.base)
	c.exports = NewExportsClient(c.httpClient, c.base)
	c.annotations = NewAnnotationsClient(c.httpClient, c.base)
	c.processing = NewProcessingClient(c.httpClient, c.base)
	c.support = NewSupportClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() http.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", datahawk.ErrNoTokenManager
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// GetServiceStatus implements datahawk.Client.GetServiceStatus. The status
// endpoint is public; the request is marked NoAuth so no Authorization header
// is attached even when a token is held.
func (c *Client) GetServiceStatus(ctx context.Context) (*datahawk.ServiceStatus, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   fmt.Sprintf("/v%d/status", constants.SupportAPIVersion),
		NoAuth: true,
	})
	if err != nil {
		return nil, fmt.Errorf("getting service status: %w", err)
	}

	var status datahawk.ServiceStatus

	err = json.Unmarshal(resp.Body, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing service status: %w", err)
	}

	return &status, nil
}

// Resource client accessors

// Datasets implements datahawk.Client.Datasets.
func (c *Client) Datasets() datahawk.DatasetsClient {
	return c.datasets
}

// Photos implements datahawk.Client.Photos.
func (c *Client) Photos() datahawk.PhotosClient {
	return c.photos
}

// Measurements implements datahawk.Client.Measurements.
func (c *Client) Measurements() datahawk.MeasurementsClient {
	return c.measurements
}

// Exports implements datahawk.Client.Exports.
func (c *Client) Exports() datahawk.ExportsClient {
	return c.exports
}

// Annotations implements datahawk.Client.Annotations.
func (c *Client) Annotations() datahawk.AnnotationsClient {
	return c.annotations
}

// Processing implements datahawk.Client.Processing.
func (c *Client) Processing() datahawk.ProcessingClient {
	return c.processing
}

// Support implements datahawk.Client.Support.
func (c *Client) Support() datahawk.SupportClient {
	return c.support
}
