package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// SearchClient implements notion.SearchClient.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new search client.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{
		httpClient: httpClient,
	}
}

// Search implements notion.SearchClient.Search.
func (c *SearchClient) Search(ctx context.Context, request *notion.SearchRequest) (*notion.ListResponse[notion.SearchResult], error) {
	if request == nil {
		request = &notion.SearchRequest{}
	}

	resp, err := c.httpClient.Post(ctx, "/v1/search", request)
	if err != nil {
		return nil, fmt.Errorf("searching workspace: %w", err)
	}

	var result notion.ListResponse[notion.SearchResult]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &result, nil
}

// SearchAll implements notion.SearchClient.SearchAll, draining every result
// page of the search in order.
func (c *SearchClient) SearchAll(ctx context.Context, request *notion.SearchRequest) ([]notion.SearchResult, error) {
	return notion.CollectAll(ctx, func(ctx context.Context, cursor *string) (*notion.ListResponse[notion.SearchResult], error) {
		page := notion.SearchRequest{}
		if request != nil {
			page = *request
		}

		page.StartCursor = ""
		if cursor != nil {
			page.StartCursor = *cursor
		}

		return c.Search(ctx, &page)
	})
}
