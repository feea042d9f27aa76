package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge-io/notion-client/pkg/notion"
)

func TestSearchClient_Search(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/v1/search", request.URL.Path)

		var body notion.SearchRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "roadmap", body.Query)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"object": "list",
			"results": []map[string]interface{}{
				{"object": "page", "id": "page-1"},
				{
					"object": "database",
					"id":     "db-1",
					"title": []map[string]interface{}{
						{"type": "text", "plain_text": "Roadmap"},
					},
				},
			},
			"next_cursor": nil,
			"has_more":    false,
		})
	}, nil)

	result, err := c.Search().Search(context.Background(), &notion.SearchRequest{Query: "roadmap"})
	require.NoError(t, err)
	require.Len(t, result.Results, 2)

	// Hits decode into the variant named by the object field.
	assert.NotNil(t, result.Results[0].Page)
	assert.Equal(t, "page-1", result.Results[0].ID())
	assert.NotNil(t, result.Results[1].Database)
	assert.Equal(t, "Roadmap", result.Results[1].Title())
}

func TestSearchClient_SearchAll(t *testing.T) {
	t.Parallel()

	var cursors []string

	call := 0

	c := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		var body notion.SearchRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		cursors = append(cursors, body.StartCursor)

		call++

		if call == 1 {
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"object":      "list",
				"results":     []map[string]interface{}{{"object": "page", "id": "p1"}},
				"next_cursor": "c1",
				"has_more":    true,
			})

			return
		}

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"object":      "list",
			"results":     []map[string]interface{}{{"object": "page", "id": "p2"}},
			"next_cursor": nil,
			"has_more":    false,
		})
	}, nil)

	hits, err := c.Search().SearchAll(context.Background(), &notion.SearchRequest{Query: "notes"})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, []string{"", "c1"}, cursors)
}
