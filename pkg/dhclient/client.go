// Package dhclient provides the main entry point for creating DataHawk API clients.
package dhclient

import (
	"fmt"

	"github.com/datahawk-io/datahawk-go/internal/client"
	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
)

// New creates a new DataHawk API client from configuration.
//
// The base URL follows the origin/domain duality: Origin wins when both are
// set, otherwise "https://" + Domain. Token requests go to AuthOrigin when
// set, else "https://" + Tenant, else the API base. Authentication uses a
// pre-supplied Config.Token while fresh, falling back to the OAuth2
// client_credentials grant when Key and Secret are configured.
func New(config *datahawk.Config) (datahawk.Client, error) {
	if config == nil {
		return nil, datahawk.ErrConfigRequired
	}

	if config.Origin == "" && config.Domain == "" {
		return nil, datahawk.ErrEndpointRequired
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}
