package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewStatusCommand creates the status command. The status endpoint is public,
// so the command works without stored credentials.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show platform status",
		Long:  "Query the public platform status endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			status, err := client.GetServiceStatus(context.Background())
			if err != nil {
				return fmt.Errorf("fetching status: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(status)
			case OutputFormatYAML:
				return outputYAML(status)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Component", "Status")
				_ = table.Append("platform", status.Status)
				for component, state := range status.Components {
					_ = table.Append(component, state)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				fmt.Printf("\nVersion: %s\n", stringOrNA(status.Version))
			}

			return nil
		},
	}
}
