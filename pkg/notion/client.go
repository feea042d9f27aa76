package notion

import (
	"context"
	"time"
)

// PagesClient provides access to page operations.
type PagesClient interface {
	Create(ctx context.Context, request *PageCreateRequest) (*Page, error)
	Get(ctx context.Context, pageID string) (*Page, error)
	Update(ctx context.Context, pageID string, request *PageUpdateRequest) (*Page, error)
	Archive(ctx context.Context, pageID string) (*Page, error)
}

// DatabasesClient provides access to database operations.
type DatabasesClient interface {
	Get(ctx context.Context, databaseID string) (*Database, error)
	Query(ctx context.Context, databaseID string, request *DatabaseQueryRequest) (*ListResponse[Page], error)
	// QueryAll drains every result page of a query in order.
	QueryAll(ctx context.Context, databaseID string, request *DatabaseQueryRequest) ([]Page, error)
	// QueryIterator returns a lazy, single-consumer iterator over the query
	// results, fetching pages only as they are consumed.
	QueryIterator(ctx context.Context, databaseID string, request *DatabaseQueryRequest) *PaginationIterator[Page]
}

// BlocksClient provides access to block operations.
type BlocksClient interface {
	Get(ctx context.Context, blockID string) (*Block, error)
	ListChildren(ctx context.Context, blockID string, params *QueryParams) (*ListResponse[Block], error)
	ListChildrenAll(ctx context.Context, blockID string) ([]Block, error)
	AppendChildren(ctx context.Context, blockID string, request *AppendBlockChildrenRequest) (*ListResponse[Block], error)
	Delete(ctx context.Context, blockID string) (*Block, error)
}

// UsersClient provides access to user operations.
type UsersClient interface {
	Get(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[User], error)
	ListAll(ctx context.Context) ([]User, error)
	Me(ctx context.Context) (*User, error)
}

// CommentsClient provides access to comment operations.
type CommentsClient interface {
	Create(ctx context.Context, request *CommentCreateRequest) (*Comment, error)
	List(ctx context.Context, blockID string, params *QueryParams) (*ListResponse[Comment], error)
	ListAll(ctx context.Context, blockID string) ([]Comment, error)
}

// SearchClient provides access to workspace search.
type SearchClient interface {
	Search(ctx context.Context, request *SearchRequest) (*ListResponse[SearchResult], error)
	SearchAll(ctx context.Context, request *SearchRequest) ([]SearchResult, error)
}

// Client provides access to all resource-specific clients.
type Client interface {
	Pages() PagesClient
	Databases() DatabasesClient
	Blocks() BlocksClient
	Users() UsersClient
	Comments() CommentsClient
	Search() SearchClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a notion.Client. It is
// fully explicit: nothing is read from the process environment here. Resolve
// tokens and endpoints in the caller (the CLI does this via its config file
// and environment bindings) and pass them in.
type Config struct {
	// BaseURL is the API endpoint. Defaults to the public API when empty.
	BaseURL string
	// Token is the integration token sent as a Bearer credential.
	Token string
	// APIVersion overrides the Notion-Version header. Defaults to the version
	// this library was built against.
	APIVersion string
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Retry controls backoff behavior for transient failures. Nil selects
	// DefaultRetryConfig. The config is shared read-only across every call.
	Retry *RetryConfig
	// Validation controls the strict-fail vs. auto-repair behavior of
	// mutating calls. Nil selects DefaultValidationConfig (strict).
	Validation *ValidationConfig

	// HTTPTimeout bounds each individual transport attempt. A cumulative
	// deadline across retries belongs in the caller's context.
	HTTPTimeout time.Duration
	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger is the optional structured logger used by the HTTP layer.
	Logger Logger
}
