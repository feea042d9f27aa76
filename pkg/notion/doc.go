// Package notion provides the public types and interfaces for the Notion
// document-database API client.
//
// The package centers on three concerns shared by every API call:
//
//   - Retry: ExecuteWithRetry wraps a single attempt with strategy-driven
//     backoff, jitter, and Retry-After honoring (see RetryConfig).
//   - Pagination: CollectAll, PaginationIterator, and StreamPages turn
//     cursor-paginated endpoints into eager or lazy sequences.
//   - Validation: Validate* functions check outbound payloads against the
//     server's documented limits before they are sent, and AutoFix repairs
//     oversized rich text by lossless splitting.
//
// Concrete resource clients live in internal/client; use
// pkg/notionclient.New to construct a Client from a Config.
package notion
