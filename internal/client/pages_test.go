package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

func titleRequest(text string) *notion.PageCreateRequest {
	return &notion.PageCreateRequest{
		Parent: notion.Parent{Type: notion.ParentTypeDatabase, DatabaseID: "db-1"},
		Properties: map[string]notion.PropertyValue{
			"Name": {
				Type:  notion.PropertyTypeTitle,
				Title: []notion.RichText{notion.NewText(text)},
			},
		},
	}
}

func TestPagesClient_Create(t *testing.T) {
	t.Parallel()
	t.Run("creates a page", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/v1/pages", request.URL.Path)

			var body notion.PageCreateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "db-1", body.Parent.DatabaseID)

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"object": "page",
				"id":     "page-1",
			})
		}, nil)

		page, err := c.Pages().Create(context.Background(), titleRequest("Weekly sync"))
		require.NoError(t, err)
		assert.Equal(t, "page-1", page.ID)
	})

	t.Run("strict mode aborts on oversized text before any transport call", func(t *testing.T) {
		t.Parallel()

		calls := 0

		c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			calls++

			writer.WriteHeader(http.StatusOK)
		}, &notion.ValidationConfig{AutoSplitLongText: false})

		_, err := c.Pages().Create(context.Background(), titleRequest(strOf('a', 2500)))
		require.Error(t, err)
		assert.Equal(t, 0, calls)

		valErr := &notion.ValidationError{}
		ok := errors.As(err, &valErr)
		require.True(t, ok)
		require.Len(t, valErr.Result.Errors(), 1)
		assert.Equal(t, notion.ViolationContentTooLong, valErr.Result.Errors()[0].Kind)
	})

	t.Run("auto-split repairs oversized text and sends", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			var body notion.PageCreateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

			segments := body.Properties["Name"].Title
			require.Len(t, segments, 2)
			assert.Len(t, []rune(segments[0].Text.Content), 2000)
			assert.Len(t, []rune(segments[1].Text.Content), 500)

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"object": "page",
				"id":     "page-1",
			})
		}, &notion.ValidationConfig{AutoSplitLongText: true})

		original := titleRequest(strOf('a', 2500))

		page, err := c.Pages().Create(context.Background(), original)
		require.NoError(t, err)
		assert.Equal(t, "page-1", page.ID)

		// Caller's request is untouched by the repair.
		assert.Len(t, original.Properties["Name"].Title, 1)
	})
}

func TestPagesClient_Get(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "/v1/pages/page-1", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"object": "page",
			"id":     "page-1",
			"properties": map[string]interface{}{
				"Name": map[string]interface{}{
					"type": "title",
					"title": []map[string]interface{}{
						{"type": "text", "plain_text": "Roadmap"},
					},
				},
			},
		})
	}, nil)

	page, err := c.Pages().Get(context.Background(), "page-1")
	require.NoError(t, err)
	assert.Equal(t, "page-1", page.ID)
	assert.Equal(t, "Roadmap", page.Title())
}

func TestPagesClient_Archive(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PATCH", request.Method)
		assert.Equal(t, "/v1/pages/page-1", request.URL.Path)

		var body notion.PageUpdateRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.NotNil(t, body.Archived)
		assert.True(t, *body.Archived)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"object":   "page",
			"id":       "page-1",
			"archived": true,
		})
	}, nil)

	page, err := c.Pages().Archive(context.Background(), "page-1")
	require.NoError(t, err)
	assert.True(t, page.Archived)
}
