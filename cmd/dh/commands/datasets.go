package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/datahawk-io/datahawk-go/pkg/datahawk"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDatasetsCommand creates the datasets command group.
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset", "ds"},
		Short:   "Manage survey datasets",
		Long:    "Create, list, inspect, process, and delete survey datasets",
	}

	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsGetCommand())
	cmd.AddCommand(newDatasetsCreateCommand())
	cmd.AddCommand(newDatasetsDeleteCommand())
	cmd.AddCommand(newDatasetsProcessCommand())

	return cmd
}

// DatasetsListOptions holds the options for listing datasets.
type DatasetsListOptions struct {
	Status  string
	Tags    []string
	PerPage int
	Page    int
}

func newDatasetsListCommand() *cobra.Command {
	var opts DatasetsListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List datasets",
		Long:  "List survey datasets, optionally filtered by status and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetsListCommand(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by processing status")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "filter by tag (repeatable)")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 0, "results per page")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "page to fetch")

	return cmd
}

func runDatasetsListCommand(opts DatasetsListOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	query := datahawk.NewQuery()
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	for _, tag := range opts.Tags {
		query.Add("tags", tag)
	}

	if opts.Page > 0 {
		query.WithPage(opts.Page)
	}

	if opts.PerPage > 0 {
		query.WithPerPage(opts.PerPage)
	}

	list, err := client.Datasets().List(context.Background(), query)
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(list)
	case OutputFormatYAML:
		return outputYAML(list)
	default:
		return renderDatasetTable(list)
	}
}

func renderDatasetTable(list *datahawk.DatasetList) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("UUID", "Name", "Status", "Photos", "Tags")

	for _, dataset := range list.Items {
		_ = table.Append(
			dataset.UUID,
			dataset.Name,
			dataset.Status,
			strconv.Itoa(dataset.PhotoCount),
			stringOrNA(strings.Join(dataset.Tags, ", ")),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if list.Meta.TotalCount > len(list.Items) {
		fmt.Printf("\nShowing %d of %d datasets\n", len(list.Items), list.Meta.TotalCount)
	}

	return nil
}

func newDatasetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UUID",
		Short: "Show a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			dataset, err := client.Datasets().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("getting dataset: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(dataset)
			case OutputFormatYAML:
				return outputYAML(dataset)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("UUID", dataset.UUID)
				_ = table.Append("Name", dataset.Name)
				_ = table.Append("Description", stringOrNA(dataset.Description))
				_ = table.Append("Status", dataset.Status)
				_ = table.Append("Photos", strconv.Itoa(dataset.PhotoCount))
				_ = table.Append("Tags", stringOrNA(strings.Join(dataset.Tags, ", ")))
				_ = table.Append("Created", dataset.CreatedAt.Format("2006-01-02 15:04:05"))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newDatasetsCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return ErrNameRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &datahawk.DatasetCreateRequest{
				Name: name,
				Tags: tags,
			}
			if description != "" {
				request.Description = &description
			}

			dataset, err := client.Datasets().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("creating dataset: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(dataset)
			case OutputFormatYAML:
				return outputYAML(dataset)
			default:
				fmt.Printf("Created dataset %s (%s)\n", dataset.Name, dataset.UUID)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "dataset name (required)")
	cmd.Flags().StringVar(&description, "description", "", "dataset description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to attach (repeatable)")

	return cmd
}

func newDatasetsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete UUID",
		Short: "Delete a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Datasets().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deleting dataset: %w", err)
			}

			fmt.Printf("Deleted dataset %s\n", args[0])

			return nil
		},
	}
}

func newDatasetsProcessCommand() *cobra.Command {
	var (
		pipeline   string
		resolution int
		wait       bool
	)

	cmd := &cobra.Command{
		Use:   "process UUID",
		Short: "Start photogrammetry processing",
		Long:  "Start a processing job for a dataset, optionally waiting for completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &datahawk.ProcessRequest{Pipeline: pipeline}
			if resolution > 0 {
				request.Resolution = &resolution
			}

			ctx := context.Background()

			job, err := client.Datasets().Process(ctx, args[0], request)
			if err != nil {
				return fmt.Errorf("starting processing: %w", err)
			}

			fmt.Printf("Started job %s (%s)\n", job.ID, job.State)

			if wait {
				job, err = client.Processing().PollUntilComplete(ctx, job.ID)
				if err != nil {
					return fmt.Errorf("waiting for job: %w", err)
				}

				fmt.Printf("Job %s finished: %s\n", job.ID, job.State)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&pipeline, "pipeline", "", "processing pipeline")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "output resolution in cm/px")
	cmd.Flags().BoolVar(&wait, "wait", false, "block until the job completes")

	return cmd
}
