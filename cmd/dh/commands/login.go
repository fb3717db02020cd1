package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
	"github.com/datahawk-io/datahawk-go/pkg/dhclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		domain   string
		origin   string
		tenant   string
		key      string
		secret   string
		audience string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the DataHawk platform",
		Long:  "Verify client credentials against the token service and persist them for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if origin == "" {
				origin = viper.GetString("origin")
			}

			if domain == "" {
				domain = viper.GetString("domain")
			}

			if origin == "" && domain == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API domain: ")
				domain, _ = reader.ReadString('\n')
				domain = strings.TrimSpace(domain)
			}

			if origin == "" && domain == "" {
				return ErrEndpointRequired
			}

			if key == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Client key: ")
				key, _ = reader.ReadString('\n')
				key = strings.TrimSpace(key)
			}

			if secret == "" {
				fmt.Print("Client secret: ")

				secretBytes, err := term.ReadPassword(syscall.Stdin)

				fmt.Println()

				if err != nil {
					return fmt.Errorf("reading secret: %w", err)
				}

				secret = strings.TrimSpace(string(secretBytes))
			}

			if key == "" || secret == "" {
				return ErrCredentialsMissing
			}

			config := &datahawk.Config{
				Origin:   origin,
				Domain:   domain,
				Tenant:   tenant,
				Key:      key,
				Secret:   secret,
				Audience: audience,
				Env:      viper.GetString("env"),
			}

			client, err := dhclient.New(config)
			if err != nil {
				return err
			}

			// Exercise the credentials before persisting them
			tokenHolder, supportsTokens := client.(interface {
				GetToken(ctx context.Context) (string, error)
			})
			if !supportsTokens {
				return ErrCredentialsMissing
			}

			if _, err := tokenHolder.GetToken(context.Background()); err != nil {
				return fmt.Errorf("authenticating: %w", err)
			}

			cliConfig, err := loadCLIConfig()
			if err != nil {
				return err
			}

			cliConfig.Origin = origin
			cliConfig.Domain = domain
			cliConfig.Tenant = tenant
			cliConfig.Key = key
			cliConfig.Secret = secret
			cliConfig.Audience = audience

			if err := saveCLIConfig(cliConfig); err != nil {
				return err
			}

			fmt.Println("Login successful")

			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "full API base URL")
	cmd.Flags().StringVar(&domain, "domain", "", "API host")
	cmd.Flags().StringVar(&tenant, "tenant", "", "token service host")
	cmd.Flags().StringVar(&key, "key", "", "client key")
	cmd.Flags().StringVar(&secret, "secret", "", "client secret (prompted when omitted)")
	cmd.Flags().StringVar(&audience, "audience", "", "OAuth2 audience")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		Long:  "Remove persisted client credentials and tokens from the CLI config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliConfig, err := loadCLIConfig()
			if err != nil {
				return err
			}

			cliConfig.Key = ""
			cliConfig.Secret = ""
			cliConfig.Token = ""

			if err := saveCLIConfig(cliConfig); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
