package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "notion",
	Short: "Notion API CLI",
	Long: `A command-line interface for interacting with the Notion API.

This CLI provides access to workspace pages, databases, blocks, users,
and comments, with built-in request validation and retry handling.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.notion/config.yml)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "integration token")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL override")
	rootCmd.PersistentFlags().String("output", commands.OutputFormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("auto-split", false, "repair oversized rich text by splitting instead of failing")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("auto_split", rootCmd.PersistentFlags().Lookup("auto-split"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewPagesCommand())
	rootCmd.AddCommand(commands.NewDatabasesCommand())
	rootCmd.AddCommand(commands.NewBlocksCommand())
	rootCmd.AddCommand(commands.NewUsersCommand())
	rootCmd.AddCommand(commands.NewCommentsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Create config directory if it doesn't exist
		configDir := filepath.Join(home, ".notion")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.notion/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("NOTION")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
