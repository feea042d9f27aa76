package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry defaults.
const (
	// DefaultMaxRetries is the default number of retries after the initial attempt.
	DefaultMaxRetries = 3

	// DefaultRetryBaseDelay is the default base backoff delay.
	DefaultRetryBaseDelay = 1 * time.Second

	// DefaultRetryMaxDelay caps the backoff delay between attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultJitterFactor is the default jitter applied to computed delays.
	DefaultJitterFactor = 0.5

	// MaxRetryAfter caps server-provided Retry-After hints.
	MaxRetryAfter = time.Hour

	// BackoffGrowthBase is the growth base for exponential backoff.
	BackoffGrowthBase = 2
)

// Protocol limits enforced by the API. The text limit applies per rich-text
// segment (array element), not per field, which is why oversized text is
// split into additional segments instead of truncated.
const (
	// MaxRichTextLength is the maximum length of one rich-text segment,
	// counted in Unicode code points.
	MaxRichTextLength = 2000

	// MaxArrayElements is the maximum number of elements accepted in bounded
	// arrays: rich-text arrays, block batches, and select option lists.
	MaxArrayElements = 100

	// MaxPayloadBytes is the maximum serialized request size.
	MaxPayloadBytes = 500 * 1024

	// NearLimitRatio is the fraction of a limit at which a warning is raised.
	NearLimitRatio = 0.9

	// MaxURLLength is the maximum accepted URL value length.
	MaxURLLength = 2000
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of results per page.
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the API accepts.
	MaxPageSize = 100
)

// API versioning.
const (
	// APIVersion is the value sent in the Notion-Version header.
	APIVersion = "2022-06-28"

	// APIBaseURL is the default API endpoint.
	APIBaseURL = "https://api.notion.com"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
