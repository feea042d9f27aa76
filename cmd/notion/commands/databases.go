package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

// NewDatabasesCommand creates the databases command group.
func NewDatabasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "databases",
		Aliases: []string{"database", "db"},
		Short:   "Manage databases",
		Long:    "Get database schemas and query database rows",
	}

	cmd.AddCommand(newDatabasesGetCommand())
	cmd.AddCommand(newDatabasesQueryCommand())

	return cmd
}

func newDatabasesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DATABASE_ID",
		Short: "Get database details",
		Long:  "Display the schema of a specific database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			database, err := client.Databases().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get database: %w", err)
			}

			return outputDatabase(database)
		},
	}
}

func newDatabasesQueryCommand() *cobra.Command {
	var (
		allPages   bool
		pageSize   int
		filterJSON string
	)

	cmd := &cobra.Command{
		Use:   "query DATABASE_ID",
		Short: "Query database rows",
		Long:  "Query the pages of a database, optionally draining every result page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &notion.DatabaseQueryRequest{PageSize: pageSize}
			if filterJSON != "" {
				request.Filter = json.RawMessage(filterJSON)
			}

			ctx := context.Background()

			var pages []notion.Page

			if allPages {
				pages, err = client.Databases().QueryAll(ctx, args[0], request)
			} else {
				var result *notion.ListResponse[notion.Page]

				result, err = client.Databases().Query(ctx, args[0], request)
				if result != nil {
					pages = result.Results
				}
			}

			if err != nil {
				return fmt.Errorf("failed to query database: %w", err)
			}

			return outputQueryResults(pages)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all result pages")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (server maximum 100)")
	cmd.Flags().StringVar(&filterJSON, "filter", "", "raw JSON filter expression")

	return cmd
}

func outputDatabase(database *notion.Database) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(database, output)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Type")

		for name, schema := range database.Properties {
			_ = table.Append(name, schema.Type)
		}

		fmt.Printf("Database: %s (%s)\n", notion.PlainText(database.Title), database.ID)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func outputQueryResults(pages []notion.Page) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(pages, output)
	default:
		if len(pages) == 0 {
			fmt.Println("No rows found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Title", "Archived")

		for _, page := range pages {
			_ = table.Append(page.ID, orNA(truncate(page.Title(), 60)), fmt.Sprintf("%t", page.Archived))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
