package commands

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Notion",
		Long:  "Store an integration token and verify it against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get token from flag, environment, or prompt
			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("Integration token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			if token == "" {
				return ErrTokenRequired
			}

			viper.Set("token", token)

			// Verify the token by fetching the bot user
			client, err := createClient()
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			ctx := context.Background()

			me, err := client.Users().Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify token: %w", err)
			}

			// Persist the verified configuration
			config := loadConfig()
			config.Token = token
			config.Workspace = me.Name

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			name := me.Name
			if name == "" {
				name = me.ID
			}

			fmt.Printf("Successfully logged in as %s\n", name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "integration token (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Notion",
		Long:  "Clear the stored integration token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""
			config.Workspace = ""

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
