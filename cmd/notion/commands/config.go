package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Notion CLI configuration stored in ~/.notion/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print the raw token
			masked := *config
			if masked.Token != "" {
				masked.Token = maskToken(masked.Token)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(masked, output)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Key", "Value")
				_ = table.Append("token", orNA(masked.Token))
				_ = table.Append("base_url", orNA(masked.BaseURL))
				_ = table.Append("output", orNA(masked.Output))
				_ = table.Append("workspace", orNA(masked.Workspace))
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			switch key {
			case "token":
				config.Token = value
			case "base_url":
				config.BaseURL = value
			case "output":
				config.Output = value
			case "workspace":
				config.Workspace = value
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value and persist the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			switch key {
			case "token":
				config.Token = ""
			case "base_url":
				config.BaseURL = ""
			case "output":
				config.Output = ""
			case "workspace":
				config.Workspace = ""
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file entirely",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := os.Remove(configFilePath())
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Println("Cleared all configuration")

			return nil
		},
	}
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	const visible = 4

	runes := []rune(token)
	if len(runes) <= visible {
		return "****"
	}

	return "****" + string(runes[len(runes)-visible:])
}
