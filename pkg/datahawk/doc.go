// Package datahawk provides types, interfaces, and helpers for working with
// the DataHawk survey-data API.
//
// # Overview
//
// The datahawk package defines the domain types (e.g., Dataset, Photo,
// Measurement, Export) and the interfaces for resource-oriented clients
// (e.g., DatasetsClient, MeasurementsClient). A concrete implementation of
// these clients is provided by the dhclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// dhclient to construct a client and then interact with the resource client
// interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/datahawk-io/datahawk-go/pkg/datahawk"
//	  "github.com/datahawk-io/datahawk-go/pkg/dhclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := dhclient.New(&datahawk.Config{
//	    Domain:   "api.datahawk.io",
//	    Key:      "client-key",
//	    Secret:   "client-secret",
//	    Audience: "https://api.datahawk.io",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  datasets, err := cli.Datasets().List(ctx, datahawk.NewQuery().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = datasets
//	}
//
// # Queries
//
// Use Query to express list options. It preserves insertion order and encodes
// multi-value parameters in repeat format (tags=x&tags=y), which is what the
// API expects:
//
//	q := datahawk.NewQuery().Set("type", "volume").Set("tags", "x", "y")
//
// # Authentication
//
// The SDK obtains bearer tokens via the OAuth2 client_credentials grant using
// Config.Key/Secret/Audience, or uses a pre-supplied Config.Token. Token
// freshness is re-derived from the token's own exp claim before every
// authenticated call; expired tokens are replaced transparently.
//
// # Errors
//
// Failures before the target endpoint is reached (token acquisition, token
// decoding) surface as *AuthError; rejections from the target endpoint
// surface as *APIError carrying the remote error payload verbatim. Helpers
// such as IsNotFound, IsUnauthorized, and IsForbidden branch on common cases.
//
// # Caching
//
// An optional read-through cache for GET responses can be enabled via
// Config.Cache, with in-memory and NATS KV backends. Token state is never
// written to the cache.
package datahawk
