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

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List workspace members and inspect the integration's bot user",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersMeCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace users",
		Long:  "List the members and bots of the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var users []notion.User

			if allPages {
				users, err = client.Users().ListAll(ctx)
			} else {
				var result *notion.ListResponse[notion.User]

				result, err = client.Users().List(ctx, &notion.QueryParams{PageSize: pageSize})
				if result != nil {
					users = result.Results
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return outputUsers(users)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all result pages")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (server maximum 100)")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot user",
		Long:  "Display the bot user the integration token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			me, err := client.Users().Me(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get bot user: %w", err)
			}

			return outputUser(me)
		},
	}
}

func outputUser(user *notion.User) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(user, output)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", user.ID)
		_ = table.Append("Name", orNA(user.Name))
		_ = table.Append("Type", orNA(user.Type))
		_ = table.Append("Email", orNA(user.Email))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}

func outputUsers(users []notion.User) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON, OutputFormatYAML:
		return renderStructured(users, output)
	default:
		if len(users) == 0 {
			fmt.Println("No users found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Type", "Email")

		for _, user := range users {
			_ = table.Append(user.ID, orNA(user.Name), orNA(user.Type), orNA(user.Email))
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	return nil
}
