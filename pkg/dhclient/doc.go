// Package dhclient is the entry point for constructing DataHawk API clients.
//
// It wires configuration, transport, authentication, and the resource
// clients defined in the datahawk package:
//
//	cli, err := dhclient.New(&datahawk.Config{
//	  Domain:   "api.datahawk.io",
//	  Key:      "client-key",
//	  Secret:   "client-secret",
//	  Audience: "https://api.datahawk.io",
//	  Env:      "prod",
//	})
//	if err != nil { ... }
//
//	dataset, err := cli.Datasets().Get(ctx, "d1")
//
// See the datahawk package for the full client surface and configuration
// reference.
package dhclient
