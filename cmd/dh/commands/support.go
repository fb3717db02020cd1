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

// NewSupportCommand creates the support command group.
func NewSupportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "support",
		Aliases: []string{"tickets"},
		Short:   "Manage support tickets",
		Long:    "Open, list, inspect, and comment on support tickets",
	}

	cmd.AddCommand(newSupportListCommand())
	cmd.AddCommand(newSupportGetCommand())
	cmd.AddCommand(newSupportCreateCommand())
	cmd.AddCommand(newSupportCommentCommand())

	return cmd
}

func newSupportListCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List support tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := datahawk.NewQuery()
			if state != "" {
				query.Set("state", state)
			}

			list, err := client.Support().ListTickets(context.Background(), query)
			if err != nil {
				return fmt.Errorf("listing tickets: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(list)
			case OutputFormatYAML:
				return outputYAML(list)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Subject", "State", "Severity")
				for _, ticket := range list.Items {
					_ = table.Append(ticket.ID, ticket.Subject, ticket.State, stringOrNA(ticket.Severity))
				}
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by state")

	return cmd
}

func newSupportGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a support ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ticket, err := client.Support().GetTicket(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("getting ticket: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(ticket)
			case OutputFormatYAML:
				return outputYAML(ticket)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", ticket.ID)
				_ = table.Append("Subject", ticket.Subject)
				_ = table.Append("State", ticket.State)
				_ = table.Append("Severity", stringOrNA(ticket.Severity))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				fmt.Printf("\n%s\n", ticket.Body)
			}

			return nil
		},
	}
}

func newSupportCreateCommand() *cobra.Command {
	var (
		subject     string
		body        string
		severity    string
		datasetUUID string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a support ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return ErrSubjectRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &datahawk.TicketCreateRequest{
				Subject: subject,
				Body:    body,
			}
			if severity != "" {
				request.Severity = &severity
			}

			if datasetUUID != "" {
				request.DatasetUUID = &datasetUUID
			}

			ticket, err := client.Support().CreateTicket(context.Background(), request)
			if err != nil {
				return fmt.Errorf("creating ticket: %w", err)
			}

			fmt.Printf("Opened ticket %s\n", ticket.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "ticket subject (required)")
	cmd.Flags().StringVar(&body, "body", "", "ticket body")
	cmd.Flags().StringVar(&severity, "severity", "", "ticket severity (low, normal, high, urgent)")
	cmd.Flags().StringVar(&datasetUUID, "dataset", "", "related dataset UUID")

	return cmd
}

func newSupportCommentCommand() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "comment ID",
		Short: "Comment on a support ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			comment, err := client.Support().AddComment(context.Background(), args[0], &datahawk.CommentCreateRequest{
				Body: body,
			})
			if err != nil {
				return fmt.Errorf("adding comment: %w", err)
			}

			fmt.Printf("Added comment %s\n", comment.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "comment body")

	return cmd
}
