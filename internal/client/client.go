// Package client implements the notion.Client interface over the internal
// HTTP transport.
package client

import (
	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// Client implements the notion.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     notion.Logger
	validation *notion.ValidationConfig

	// Resource clients
	pages     notion.PagesClient
	databases notion.DatabasesClient
	blocks    notion.BlocksClient
	users     notion.UsersClient
	comments  notion.CommentsClient
	search    notion.SearchClient
}

// New creates a new API client from an explicit configuration.
func New(config *notion.Config) (*Client, error) {
	if config == nil {
		return nil, notion.ErrConfigRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.APIBaseURL
	}

	httpClient := http.NewClient(baseURL, config.Token, httpOptions(config)...)

	validation := config.Validation
	if validation == nil {
		validation = notion.DefaultValidationConfig()
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
		validation: validation,
	}

	client.initializeResourceClients()

	return client, nil
}

// httpOptions builds transport options from config.
func httpOptions(config *notion.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.APIVersion != "" {
		opts = append(opts, http.WithAPIVersion(config.APIVersion))
	}

	if config.Retry != nil {
		opts = append(opts, http.WithRetryConfig(config.Retry))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	return opts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.pages = NewPagesClient(c.httpClient, c.validation)
	c.databases = NewDatabasesClient(c.httpClient)
	c.blocks = NewBlocksClient(c.httpClient, c.validation)
	c.users = NewUsersClient(c.httpClient)
	c.comments = NewCommentsClient(c.httpClient, c.validation)
	c.search = NewSearchClient(c.httpClient)
}

// Pages implements notion.Client.Pages.
func (c *Client) Pages() notion.PagesClient {
	return c.pages
}

// Databases implements notion.Client.Databases.
func (c *Client) Databases() notion.DatabasesClient {
	return c.databases
}

// Blocks implements notion.Client.Blocks.
func (c *Client) Blocks() notion.BlocksClient {
	return c.blocks
}

// Users implements notion.Client.Users.
func (c *Client) Users() notion.UsersClient {
	return c.users
}

// Comments implements notion.Client.Comments.
func (c *Client) Comments() notion.CommentsClient {
	return c.comments
}

// Search implements notion.Client.Search.
func (c *Client) Search() notion.SearchClient {
	return c.search
}
