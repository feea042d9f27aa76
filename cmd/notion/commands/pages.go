package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

// NewPagesCommand creates the pages command group.
func NewPagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"page"},
		Short:   "Manage pages",
		Long:    "Get, create, and archive workspace pages",
	}

	cmd.AddCommand(newPagesGetCommand())
	cmd.AddCommand(newPagesCreateCommand())
	cmd.AddCommand(newPagesArchiveCommand())

	return cmd
}

func newPagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAGE_ID",
		Short: "Get page details",
		Long:  "Display detailed information about a specific page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.Pages().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get page: %w", err)
			}

			return outputPage(page)
		},
	}
}

func newPagesCreateCommand() *cobra.Command {
	var (
		parentPage string
		parentDB   string
		title      string
		body       string
		fromFile   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new page",
		Long:  "Create a page under a parent page or database",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildPageCreateRequest(parentPage, parentDB, title, body, fromFile)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.Pages().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create page: %w", err)
			}

			fmt.Printf("Successfully created page '%s' with ID %s\n", page.Title(), page.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&parentPage, "parent-page", "", "parent page ID")
	cmd.Flags().StringVar(&parentDB, "parent-db", "", "parent database ID")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().StringVar(&body, "body", "", "optional first paragraph")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "read the full create request from a JSON file")

	return cmd
}

// buildPageCreateRequest assembles the request from flags or a payload file.
func buildPageCreateRequest(parentPage, parentDB, title, body, fromFile string) (*notion.PageCreateRequest, error) {
	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}

		var request notion.PageCreateRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return nil, fmt.Errorf("parsing request file: %w", err)
		}

		return &request, nil
	}

	if title == "" {
		return nil, ErrTitleRequired
	}

	request := &notion.PageCreateRequest{
		Properties: map[string]notion.PropertyValue{
			"title": {
				Type:  notion.PropertyTypeTitle,
				Title: []notion.RichText{notion.NewText(title)},
			},
		},
	}

	switch {
	case parentPage != "":
		request.Parent = notion.Parent{Type: notion.ParentTypePage, PageID: parentPage}
	case parentDB != "":
		request.Parent = notion.Parent{Type: notion.ParentTypeDatabase, DatabaseID: parentDB}
	default:
		return nil, ErrParentRequired
	}

	if body != "" {
		request.Children = []notion.Block{{
			Type: notion.BlockTypeParagraph,
			Paragraph: &notion.RichTextBody{
				RichText: []notion.RichText{notion.NewText(body)},
			},
		}}
	}

	return request, nil
}

func newPagesArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive PAGE_ID",
		Short: "Archive a page",
		Long:  "Move a page to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			page, err := client.Pages().Archive(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to archive page: %w", err)
			}

			fmt.Printf("Successfully archived page '%s'\n", page.Title())

			return nil
		},
	}
}

func outputPage(page *notion.Page) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(page, output)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", page.ID)
		_ = table.Append("Title", orNA(page.Title()))
		_ = table.Append("Archived", fmt.Sprintf("%t", page.Archived))
		_ = table.Append("Created", page.CreatedTime.Format(time.RFC3339))
		_ = table.Append("Last Edited", page.LastEditedTime.Format(time.RFC3339))
		_ = table.Append("URL", orNA(page.URL))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
