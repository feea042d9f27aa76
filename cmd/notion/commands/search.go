package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	var (
		objectType string
		allPages   bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the workspace",
		Long:  "Search pages and databases shared with the integration by title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			request := &notion.SearchRequest{PageSize: pageSize}
			if len(args) > 0 {
				request.Query = args[0]
			}

			if objectType != "" {
				request.Filter = &notion.SearchFilter{Property: "object", Value: objectType}
			}

			ctx := context.Background()

			var hits []notion.SearchResult

			if allPages {
				hits, err = client.Search().SearchAll(ctx, request)
			} else {
				var result *notion.ListResponse[notion.SearchResult]

				result, err = client.Search().Search(ctx, request)
				if result != nil {
					hits = result.Results
				}
			}

			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return outputSearchResults(hits)
		},
	}

	cmd.Flags().StringVar(&objectType, "type", "", "restrict results to 'page' or 'database'")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all result pages")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (server maximum 100)")

	return cmd
}

func outputSearchResults(hits []notion.SearchResult) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(hits, output)
	default:
		if len(hits) == 0 {
			fmt.Println("No results found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Type", "ID", "Title")

		for _, hit := range hits {
			_ = table.Append(hit.Object, hit.ID(), orNA(truncate(hit.Title(), 60)))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
