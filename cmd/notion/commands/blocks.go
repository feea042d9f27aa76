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

// NewBlocksCommand creates the blocks command group.
func NewBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blocks",
		Aliases: []string{"block"},
		Short:   "Manage blocks",
		Long:    "Get, list, append, and delete page content blocks",
	}

	cmd.AddCommand(newBlocksGetCommand())
	cmd.AddCommand(newBlocksListCommand())
	cmd.AddCommand(newBlocksAppendCommand())
	cmd.AddCommand(newBlocksDeleteCommand())

	return cmd
}

func newBlocksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BLOCK_ID",
		Short: "Get block details",
		Long:  "Display detailed information about a specific block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			block, err := client.Blocks().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get block: %w", err)
			}

			return outputBlock(block)
		},
	}
}

func newBlocksListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list BLOCK_ID",
		Short: "List block children",
		Long:  "List the child blocks of a page or block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var blocks []notion.Block

			if allPages {
				blocks, err = client.Blocks().ListChildrenAll(ctx, args[0])
			} else {
				var result *notion.ListResponse[notion.Block]

				result, err = client.Blocks().ListChildren(ctx, args[0], &notion.QueryParams{PageSize: pageSize})
				if result != nil {
					blocks = result.Results
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list block children: %w", err)
			}

			return outputBlocks(blocks)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all result pages")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (server maximum 100)")

	return cmd
}

func newBlocksAppendCommand() *cobra.Command {
	var (
		text     string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "append BLOCK_ID",
		Short: "Append child blocks",
		Long:  "Append new blocks to a page or block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildAppendRequest(text, fromFile)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Blocks().AppendChildren(context.Background(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to append blocks: %w", err)
			}

			fmt.Printf("Successfully appended %d block(s)\n", len(result.Results))

			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "append a single paragraph with this text")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "read the full append request from a JSON file")

	return cmd
}

// buildAppendRequest assembles the request from the text flag or a payload file.
func buildAppendRequest(text, fromFile string) (*notion.AppendBlockChildrenRequest, error) {
	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}

		var request notion.AppendBlockChildrenRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return nil, fmt.Errorf("parsing request file: %w", err)
		}

		return &request, nil
	}

	if text == "" {
		return nil, ErrTextRequired
	}

	return &notion.AppendBlockChildrenRequest{
		Children: []notion.Block{{
			Type: notion.BlockTypeParagraph,
			Paragraph: &notion.RichTextBody{
				RichText: []notion.RichText{notion.NewText(text)},
			},
		}},
	}, nil
}

func newBlocksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BLOCK_ID",
		Short: "Delete a block",
		Long:  "Move a block to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			block, err := client.Blocks().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete block: %w", err)
			}

			fmt.Printf("Successfully deleted block %s\n", block.ID)

			return nil
		},
	}
}

func outputBlock(block *notion.Block) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(block, output)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", block.ID)
		_ = table.Append("Type", block.Type)
		_ = table.Append("Text", orNA(truncate(block.Text(), 80)))
		_ = table.Append("Has Children", fmt.Sprintf("%t", block.HasChildren))
		_ = table.Append("Archived", fmt.Sprintf("%t", block.Archived))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func outputBlocks(blocks []notion.Block) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(blocks, output)
	default:
		if len(blocks) == 0 {
			fmt.Println("No blocks found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Type", "Text")

		for i := range blocks {
			block := &blocks[i]
			_ = table.Append(block.ID, block.Type, orNA(truncate(block.Text(), 60)))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
