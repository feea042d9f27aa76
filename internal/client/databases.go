package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// DatabasesClient implements notion.DatabasesClient.
type DatabasesClient struct {
	httpClient *http.Client
}

// NewDatabasesClient creates a new databases client.
func NewDatabasesClient(httpClient *http.Client) *DatabasesClient {
	return &DatabasesClient{
		httpClient: httpClient,
	}
}

// Get implements notion.DatabasesClient.Get.
func (c *DatabasesClient) Get(ctx context.Context, databaseID string) (*notion.Database, error) {
	path := fmt.Sprintf("/v1/databases/%s", databaseID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting database: %w", err)
	}

	var database notion.Database
	if err := json.Unmarshal(resp.Body, &database); err != nil {
		return nil, fmt.Errorf("parsing database response: %w", err)
	}

	return &database, nil
}

// Query implements notion.DatabasesClient.Query.
func (c *DatabasesClient) Query(ctx context.Context, databaseID string, request *notion.DatabaseQueryRequest) (*notion.ListResponse[notion.Page], error) {
	path := fmt.Sprintf("/v1/databases/%s/query", databaseID)

	if request == nil {
		request = &notion.DatabaseQueryRequest{}
	}

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	var result notion.ListResponse[notion.Page]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing database query response: %w", err)
	}

	return &result, nil
}

// queryFetcher adapts a query to the pagination engine. Each fetch reuses
// the caller's filter and sorts and substitutes only the cursor, which is
// always the previous page's continuation token verbatim.
func (c *DatabasesClient) queryFetcher(databaseID string, request *notion.DatabaseQueryRequest) notion.PageFetcher[notion.Page] {
	return func(ctx context.Context, cursor *string) (*notion.ListResponse[notion.Page], error) {
		page := notion.DatabaseQueryRequest{}
		if request != nil {
			page = *request
		}

		page.StartCursor = ""
		if cursor != nil {
			page.StartCursor = *cursor
		}

		return c.Query(ctx, databaseID, &page)
	}
}

// QueryAll implements notion.DatabasesClient.QueryAll.
func (c *DatabasesClient) QueryAll(ctx context.Context, databaseID string, request *notion.DatabaseQueryRequest) ([]notion.Page, error) {
	return notion.CollectAll(ctx, c.queryFetcher(databaseID, request))
}

// QueryIterator implements notion.DatabasesClient.QueryIterator.
func (c *DatabasesClient) QueryIterator(ctx context.Context, databaseID string, request *notion.DatabaseQueryRequest) *notion.PaginationIterator[notion.Page] {
	return notion.NewPaginationIterator(ctx, c.queryFetcher(databaseID, request))
}
