package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/pkg/notion"
	"github.com/pageforge-io/notion-client/pkg/notionclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML
	OutputFormatTable = constants.FormatTable
)

// Common static errors used throughout the commands package.
var (
	ErrTokenRequired       = errors.New("integration token is required; run 'notion login' or set NOTION_TOKEN")
	ErrParentRequired      = errors.New("a parent page or database is required (--parent-page or --parent-db)")
	ErrTitleRequired       = errors.New("a title is required (--title)")
	ErrTextRequired        = errors.New("comment text is required (--text)")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrUnknownPayloadType  = errors.New("unknown payload type; expected page, blocks, or comment")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Config represents the CLI configuration persisted in ~/.notion/config.yml.
type Config struct {
	Token   string `json:"token,omitempty"    yaml:"token,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`

	// Workspace is a display name captured at login time.
	Workspace string `json:"workspace,omitempty" yaml:"workspace,omitempty"`
}

// loadConfig builds the effective configuration from viper's merged sources
// (flags, environment, config file).
func loadConfig() *Config {
	return &Config{
		Token:     viper.GetString("token"),
		BaseURL:   viper.GetString("base_url"),
		Output:    viper.GetString("output"),
		Workspace: viper.GetString("workspace"),
	}
}

// configFilePath returns the config file in use, defaulting to the standard
// location when none has been read yet.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}

	return filepath.Join(home, ".notion", "config.yml")
}

// saveConfig persists the configuration as YAML.
func saveConfig(config *Config) error {
	path := configFilePath()

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Tokens live in this file, keep it private.
	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// createClient builds a notion.Client from the effective configuration.
func createClient() (notion.Client, error) {
	config := loadConfig()

	if config.Token == "" {
		return nil, ErrTokenRequired
	}

	clientConfig := &notion.Config{
		Token:   config.Token,
		BaseURL: config.BaseURL,
		Debug:   viper.GetBool("verbose"),
	}

	if viper.GetBool("auto_split") {
		clientConfig.Validation = &notion.ValidationConfig{AutoSplitLongText: true}
	}

	return notionclient.New(clientConfig)
}

// renderStructured writes data as indented JSON or YAML to stdout.
func renderStructured(data interface{}, format string) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, format)
	}
}

// truncate shortens a string for table cells.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

// orNA substitutes N/A for empty table cells.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}
