package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pageforge-io/notion-client/internal/http"
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// PagesClient implements notion.PagesClient.
type PagesClient struct {
	httpClient *http.Client
	validation *notion.ValidationConfig
}

// NewPagesClient creates a new pages client.
func NewPagesClient(httpClient *http.Client, validation *notion.ValidationConfig) *PagesClient {
	return &PagesClient{
		httpClient: httpClient,
		validation: validation,
	}
}

// Create implements notion.PagesClient.Create. The request is validated
// before any transport call; error-class violations abort unless auto-split
// repairs them.
func (c *PagesClient) Create(ctx context.Context, request *notion.PageCreateRequest) (*notion.Page, error) {
	request, err := preparePageCreate(request, c.validation)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/v1/pages", request)
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}

	var page notion.Page
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}

	return &page, nil
}

// Get implements notion.PagesClient.Get.
func (c *PagesClient) Get(ctx context.Context, pageID string) (*notion.Page, error) {
	path := fmt.Sprintf("/v1/pages/%s", pageID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	var page notion.Page
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}

	return &page, nil
}

// Update implements notion.PagesClient.Update.
func (c *PagesClient) Update(ctx context.Context, pageID string, request *notion.PageUpdateRequest) (*notion.Page, error) {
	request, err := preparePageUpdate(request, c.validation)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v1/pages/%s", pageID)

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating page: %w", err)
	}

	var page notion.Page
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}

	return &page, nil
}

// Archive implements notion.PagesClient.Archive by updating the archived flag.
func (c *PagesClient) Archive(ctx context.Context, pageID string) (*notion.Page, error) {
	archived := true

	return c.Update(ctx, pageID, &notion.PageUpdateRequest{Archived: &archived})
}
