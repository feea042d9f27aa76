package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// BlocksClient implements notion.BlocksClient.
type BlocksClient struct {
	httpClient *http.Client
	validation *notion.ValidationConfig
}

// NewBlocksClient creates a new blocks client.
func NewBlocksClient(httpClient *http.Client, validation *notion.ValidationConfig) *BlocksClient {
	return &BlocksClient{
		httpClient: httpClient,
		validation: validation,
	}
}

// Get implements notion.BlocksClient.Get.
func (c *BlocksClient) Get(ctx context.Context, blockID string) (*notion.Block, error) {
	path := fmt.Sprintf("/v1/blocks/%s", blockID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting block: %w", err)
	}

	var block notion.Block
	if err := json.Unmarshal(resp.Body, &block); err != nil {
		return nil, fmt.Errorf("parsing block response: %w", err)
	}

	return &block, nil
}

// ListChildren implements notion.BlocksClient.ListChildren.
func (c *BlocksClient) ListChildren(ctx context.Context, blockID string, params *notion.QueryParams) (*notion.ListResponse[notion.Block], error) {
	path := fmt.Sprintf("/v1/blocks/%s/children", blockID)

	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing block children: %w", err)
	}

	var result notion.ListResponse[notion.Block]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing block children response: %w", err)
	}

	return &result, nil
}

// ListChildrenAll implements notion.BlocksClient.ListChildrenAll. Pages are
// fetched at the server maximum to keep the round-trip count down.
func (c *BlocksClient) ListChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error) {
	return notion.CollectAll(ctx, func(ctx context.Context, cursor *string) (*notion.ListResponse[notion.Block], error) {
		params := &notion.QueryParams{PageSize: constants.DefaultPageSize}
		if cursor != nil {
			params.StartCursor = *cursor
		}

		return c.ListChildren(ctx, blockID, params)
	})
}

// AppendChildren implements notion.BlocksClient.AppendChildren. The batch is
// validated before any transport call.
func (c *BlocksClient) AppendChildren(ctx context.Context, blockID string, request *notion.AppendBlockChildrenRequest) (*notion.ListResponse[notion.Block], error) {
	request, err := prepareAppendBlockChildren(request, c.validation)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v1/blocks/%s/children", blockID)

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("appending block children: %w", err)
	}

	var result notion.ListResponse[notion.Block]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing block children response: %w", err)
	}

	return &result, nil
}

// Delete implements notion.BlocksClient.Delete.
func (c *BlocksClient) Delete(ctx context.Context, blockID string) (*notion.Block, error) {
	path := fmt.Sprintf("/v1/blocks/%s", blockID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting block: %w", err)
	}

	var block notion.Block
	if err := json.Unmarshal(resp.Body, &block); err != nil {
		return nil, fmt.Errorf("parsing block response: %w", err)
	}

	return &block, nil
}
