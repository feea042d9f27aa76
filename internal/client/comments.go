package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pageforge-io/notion-client/internal/constants"
	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// CommentsClient implements notion.CommentsClient.
type CommentsClient struct {
	httpClient *http.Client
	validation *notion.ValidationConfig
}

// NewCommentsClient creates a new comments client.
func NewCommentsClient(httpClient *http.Client, validation *notion.ValidationConfig) *CommentsClient {
	return &CommentsClient{
		httpClient: httpClient,
		validation: validation,
	}
}

// Create implements notion.CommentsClient.Create. The comment body is
// validated before any transport call.
func (c *CommentsClient) Create(ctx context.Context, request *notion.CommentCreateRequest) (*notion.Comment, error) {
	if request == nil || (request.Parent == nil && request.DiscussionID == "") {
		return nil, notion.ErrParentRequired
	}

	request, err := prepareCommentCreate(request, c.validation)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/v1/comments", request)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	var comment notion.Comment
	if err := json.Unmarshal(resp.Body, &comment); err != nil {
		return nil, fmt.Errorf("parsing comment response: %w", err)
	}

	return &comment, nil
}

// List implements notion.CommentsClient.List, returning the unresolved
// comments of the given page or block.
func (c *CommentsClient) List(ctx context.Context, blockID string, params *notion.QueryParams) (*notion.ListResponse[notion.Comment], error) {
	query := url.Values{}
	query.Set("block_id", blockID)

	for key, values := range params.ToValues() {
		for _, value := range values {
			query.Set(key, value)
		}
	}

	resp, err := c.httpClient.Get(ctx, "/v1/comments", query)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	var result notion.ListResponse[notion.Comment]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing comments list response: %w", err)
	}

	return &result, nil
}

// ListAll implements notion.CommentsClient.ListAll. Pages are fetched at the
// server maximum to keep the round-trip count down.
func (c *CommentsClient) ListAll(ctx context.Context, blockID string) ([]notion.Comment, error) {
	return notion.CollectAll(ctx, func(ctx context.Context, cursor *string) (*notion.ListResponse[notion.Comment], error) {
		params := &notion.QueryParams{PageSize: constants.DefaultPageSize}
		if cursor != nil {
			params.StartCursor = *cursor
		}

		return c.List(ctx, blockID, params)
	})
}
