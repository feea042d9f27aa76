// Package notionclient provides the primary entry point for constructing a
// Notion API client that implements the notion.Client interface.
//
// It layers configuration, the retrying HTTP transport, and request
// validation on top of the resource interfaces and types defined in the
// notion package. Most applications should import notionclient to build a
// client, then use the returned notion.Client to access resource-specific
// clients, for example Pages(), Databases(), Blocks(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/pageforge-io/notion-client/pkg/notion"
//	  "github.com/pageforge-io/notion-client/pkg/notionclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just an integration token.
//	  cli, err := notionclient.NewWithToken("secret_...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with explicit configuration:
//	  cli, err = notionclient.New(&notion.Config{
//	    Token: "secret_...",
//	    Retry: notion.DefaultRetryConfig(),
//	    Validation: &notion.ValidationConfig{AutoSplitLongText: true},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the notion.Client interface
//	  page, err := cli.Pages().Get(ctx, "page-id")
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Configuration
//
// Construction reads nothing from the environment: every setting comes from
// the notion.Config passed in. Zero-value fields fall back to the documented
// defaults (the public API endpoint, the pinned API version, exponential
// backoff with jitter, and strict validation).
package notionclient
