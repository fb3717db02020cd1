package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewExportsCommand creates the exports command group.
func NewExportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exports",
		Aliases: []string{"export"},
		Short:   "Manage artifact exports",
		Long:    "Request, list, inspect, and cancel artifact exports",
	}

	cmd.AddCommand(newExportsListCommand())
	cmd.AddCommand(newExportsGetCommand())
	cmd.AddCommand(newExportsCreateCommand())
	cmd.AddCommand(newExportsCancelCommand())

	return cmd
}

func newExportsListCommand() *cobra.Command {
	var (
		datasetUUID string
		state       string
		perPage     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := datahawk.NewQuery()
			if datasetUUID != "" {
				query.Set("dataset_uuid", datasetUUID)
			}

			if state != "" {
				query.Set("state", state)
			}

			if perPage > 0 {
				query.WithPerPage(perPage)
			}

			list, err := client.Exports().List(context.Background(), query)
			if err != nil {
				return fmt.Errorf("listing exports: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(list)
			case OutputFormatYAML:
				return outputYAML(list)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Dataset", "Format", "State")
				for _, export := range list.Items {
					_ = table.Append(export.ID, export.DatasetUUID, export.Format, export.State)
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetUUID, "dataset", "", "filter by dataset UUID")
	cmd.Flags().StringVar(&state, "state", "", "filter by state")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")

	return cmd
}

func newExportsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			export, err := client.Exports().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("getting export: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(export)
			case OutputFormatYAML:
				return outputYAML(export)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", export.ID)
				_ = table.Append("Dataset", export.DatasetUUID)
				_ = table.Append("Format", export.Format)
				_ = table.Append("State", export.State)
				_ = table.Append("Download URL", stringOrNA(export.DownloadURL))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newExportsCreateCommand() *cobra.Command {
	var (
		datasetUUID string
		format      string
		crs         string
		resolution  int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Request an export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetUUID == "" {
				return ErrDatasetUUIDNeeded
			}

			if format == "" {
				return ErrFormatRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &datahawk.ExportCreateRequest{
				DatasetUUID: datasetUUID,
				Format:      format,
			}
			if crs != "" {
				request.CRS = &crs
			}

			if resolution > 0 {
				request.Resolution = &resolution
			}

			export, err := client.Exports().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("creating export: %w", err)
			}

			fmt.Printf("Requested export %s (%s)\n", export.ID, export.State)

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetUUID, "dataset", "", "dataset UUID (required)")
	cmd.Flags().StringVar(&format, "format", "", "export format, e.g. geotiff, las (required)")
	cmd.Flags().StringVar(&crs, "crs", "", "coordinate reference system")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "output resolution in cm/px")

	return cmd
}

func newExportsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			export, err := client.Exports().Cancel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("canceling export: %w", err)
			}

			fmt.Printf("Export %s is now %s\n", export.ID, export.State)

			return nil
		},
	}
}
