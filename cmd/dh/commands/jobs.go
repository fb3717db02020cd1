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

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Inspect processing jobs",
		Long:    "List, inspect, watch, and cancel asynchronous processing jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsWatchCommand())
	cmd.AddCommand(newJobsCancelCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		datasetUUID string
		state       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processing jobs",
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

			list, err := client.Processing().ListJobs(context.Background(), query)
			if err != nil {
				return fmt.Errorf("listing jobs: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(list)
			case OutputFormatYAML:
				return outputYAML(list)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Dataset", "Operation", "State", "Progress")
				for _, job := range list.Items {
					_ = table.Append(
						job.ID,
						job.DatasetUUID,
						job.Operation,
						job.State,
						fmt.Sprintf("%.0f%%", job.Progress*100),
					)
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

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a processing job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			job, err := client.Processing().GetJob(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("getting job: %w", err)
			}

			return outputJob(job)
		},
	}
}

func newJobsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch ID",
		Short: "Wait for a job to finish",
		Long:  "Poll a processing job until it reaches a terminal state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			job, err := client.Processing().PollUntilComplete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("waiting for job: %w", err)
			}

			return outputJob(job)
		},
	}
}

func newJobsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a processing job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			job, err := client.Processing().CancelJob(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("canceling job: %w", err)
			}

			fmt.Printf("Job %s is now %s\n", job.ID, job.State)

			return nil
		},
	}
}

func outputJob(job *datahawk.ProcessingJob) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(job)
	case OutputFormatYAML:
		return outputYAML(job)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", job.ID)
		_ = table.Append("Dataset", job.DatasetUUID)
		_ = table.Append("Operation", job.Operation)
		_ = table.Append("State", job.State)
		_ = table.Append("Progress", fmt.Sprintf("%.0f%%", job.Progress*100))
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		for _, jobErr := range job.Errors {
			fmt.Printf("Error %s: %s\n", jobErr.Code, jobErr.Detail)
		}
	}

	return nil
}
