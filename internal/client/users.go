package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// UsersClient implements notion.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Get implements notion.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*notion.User, error) {
	path := fmt.Sprintf("/v1/users/%s", userID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user notion.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// List implements notion.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, params *notion.QueryParams) (*notion.ListResponse[notion.User], error) {
	resp, err := c.httpClient.Get(ctx, "/v1/users", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var result notion.ListResponse[notion.User]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing users list response: %w", err)
	}

	return &result, nil
}

// ListAll implements notion.UsersClient.ListAll. Pages are fetched at the
// server maximum to keep the round-trip count down.
func (c *UsersClient) ListAll(ctx context.Context) ([]notion.User, error) {
	return notion.CollectAll(ctx, func(ctx context.Context, cursor *string) (*notion.ListResponse[notion.User], error) {
		params := &notion.QueryParams{PageSize: constants.DefaultPageSize}
		if cursor != nil {
			params.StartCursor = *cursor
		}

		return c.List(ctx, params)
	})
}

// Me implements notion.UsersClient.Me.
func (c *UsersClient) Me(ctx context.Context) (*notion.User, error) {
	resp, err := c.httpClient.Get(ctx, "/v1/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting bot user: %w", err)
	}

	var user notion.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
