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

// NewCommentsCommand creates the comments command group.
func NewCommentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Manage comments",
		Long:    "List and add comments on pages and discussion threads",
	}

	cmd.AddCommand(newCommentsListCommand())
	cmd.AddCommand(newCommentsAddCommand())

	return cmd
}

func newCommentsListCommand() *cobra.Command {
	var allPages bool

	cmd := &cobra.Command{
		Use:   "list BLOCK_ID",
		Short: "List comments",
		Long:  "List the unresolved comments on a page or block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var comments []notion.Comment

			if allPages {
				comments, err = client.Comments().ListAll(ctx, args[0])
			} else {
				var result *notion.ListResponse[notion.Comment]

				result, err = client.Comments().List(ctx, args[0], nil)
				if result != nil {
					comments = result.Results
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list comments: %w", err)
			}

			return outputComments(comments)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all result pages")

	return cmd
}

func newCommentsAddCommand() *cobra.Command {
	var (
		pageID       string
		discussionID string
		text         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a comment",
		Long:  "Start a new discussion on a page or reply to an existing thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return ErrTextRequired
			}

			request := &notion.CommentCreateRequest{
				RichText: []notion.RichText{notion.NewText(text)},
			}

			switch {
			case discussionID != "":
				request.DiscussionID = discussionID
			case pageID != "":
				request.Parent = &notion.Parent{Type: notion.ParentTypePage, PageID: pageID}
			default:
				return ErrParentRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			comment, err := client.Comments().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}

			fmt.Printf("Successfully added comment %s to discussion %s\n", comment.ID, comment.DiscussionID)

			return nil
		},
	}

	cmd.Flags().StringVar(&pageID, "page", "", "page ID to start a new discussion on")
	cmd.Flags().StringVar(&discussionID, "discussion", "", "discussion ID to reply to")
	cmd.Flags().StringVar(&text, "text", "", "comment text")

	return cmd
}

func outputComments(comments []notion.Comment) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(comments, output)
	default:
		if len(comments) == 0 {
			fmt.Println("No comments found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Discussion", "Text")

		for _, comment := range comments {
			_ = table.Append(comment.ID, comment.DiscussionID, orNA(truncate(notion.PlainText(comment.RichText), 60)))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
