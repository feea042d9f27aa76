// Package notionclient provides the main entry point for creating Notion API clients
package notionclient

import (
	"fmt"
	"strings"

	"github.com/pageforge-io/notion-client/internal/client"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// New creates a new Notion API client from an explicit configuration.
func New(config *notion.Config) (notion.Client, error) {
	if config == nil {
		return nil, notion.ErrConfigRequired
	}

	if config.Token == "" {
		return nil, notion.ErrTokenRequired
	}

	if config.BaseURL != "" {
		config.BaseURL = normalizeBaseURL(config.BaseURL)
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// normalizeBaseURL strips a trailing slash and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithToken creates a new client against the public API with just an
// integration token.
func NewWithToken(token string) (notion.Client, error) {
	return New(&notion.Config{
		Token: token,
	})
}

// NewWithAutoSplit creates a new client that repairs oversized rich text by
// lossless splitting instead of failing the send.
func NewWithAutoSplit(token string) (notion.Client, error) {
	return New(&notion.Config{
		Token:      token,
		Validation: &notion.ValidationConfig{AutoSplitLongText: true},
	})
}
