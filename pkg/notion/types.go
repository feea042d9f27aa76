package notion

import (
	"net/url"
	"strconv"
	"time"

	"github.com/pageforge-io/notion-client/internal/constants"
)

// Resource represents the base structure for all API objects.
type Resource struct {
	Object         string    `json:"object"           yaml:"object"`
	ID             string    `json:"id"               yaml:"id"`
	CreatedTime    time.Time `json:"created_time"     yaml:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time" yaml:"last_edited_time"`
}

// UserRef is a minimal reference to the user that created or edited an object.
type UserRef struct {
	Object string `json:"object" yaml:"object"`
	ID     string `json:"id"     yaml:"id"`
}

// Parent identifies the container an object lives in.
type Parent struct {
	Type       string `json:"type"                  yaml:"type"`
	PageID     string `json:"page_id,omitempty"     yaml:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty" yaml:"database_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"    yaml:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"   yaml:"workspace,omitempty"`
}

// Parent type values.
const (
	ParentTypePage      = "page_id"
	ParentTypeDatabase  = "database_id"
	ParentTypeBlock     = "block_id"
	ParentTypeWorkspace = "workspace"
)

// Annotations represents the styling applied to a rich-text segment.
type Annotations struct {
	Bold          bool   `json:"bold"          yaml:"bold"`
	Italic        bool   `json:"italic"        yaml:"italic"`
	Strikethrough bool   `json:"strikethrough" yaml:"strikethrough"`
	Underline     bool   `json:"underline"     yaml:"underline"`
	Code          bool   `json:"code"          yaml:"code"`
	Color         string `json:"color"         yaml:"color"`
}

// TextLink is an inline link attached to a text segment.
type TextLink struct {
	URL string `json:"url" yaml:"url"`
}

// TextContent is the content of a "text" rich-text segment.
type TextContent struct {
	Content string    `json:"content"        yaml:"content"`
	Link    *TextLink `json:"link,omitempty" yaml:"link,omitempty"`
}

// EquationContent is the content of an "equation" rich-text segment.
type EquationContent struct {
	Expression string `json:"expression" yaml:"expression"`
}

// RichText represents one segment of an ordered rich-text array: a run of
// uniformly styled text. The server enforces length limits per segment, not
// per field.
type RichText struct {
	Type        string           `json:"type"                  yaml:"type"`
	Text        *TextContent     `json:"text,omitempty"        yaml:"text,omitempty"`
	Equation    *EquationContent `json:"equation,omitempty"    yaml:"equation,omitempty"`
	Annotations *Annotations     `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	PlainText   string           `json:"plain_text,omitempty"  yaml:"plain_text,omitempty"`
	Href        *string          `json:"href,omitempty"        yaml:"href,omitempty"`
}

// Rich-text segment types.
const (
	RichTextTypeText     = "text"
	RichTextTypeEquation = "equation"
	RichTextTypeMention  = "mention"
)

// NewText creates a plain "text" rich-text segment.
func NewText(content string) RichText {
	return RichText{
		Type:      RichTextTypeText,
		Text:      &TextContent{Content: content},
		PlainText: content,
	}
}

// SelectOption is one entry of a select or multi-select property.
type SelectOption struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name"         yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// DateValue represents a date or date range property value.
type DateValue struct {
	Start    string  `json:"start"               yaml:"start"`
	End      *string `json:"end,omitempty"       yaml:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
}

// ListResponse represents a cursor-paginated list response. NextCursor is an
// opaque continuation token: it is only meaningful when HasMore is true, and
// must be echoed back verbatim to fetch the next page.
type ListResponse[T any] struct {
	Object     string  `json:"object"      yaml:"object"`
	Results    []T     `json:"results"     yaml:"results"`
	NextCursor *string `json:"next_cursor" yaml:"next_cursor"`
	HasMore    bool    `json:"has_more"    yaml:"has_more"`
}

// continuationCursor returns the cursor for the next fetch, or nil when the
// page is terminal. A cursor on a page reporting HasMore=false is ignored.
func (r *ListResponse[T]) continuationCursor() *string {
	if !r.HasMore {
		return nil
	}

	return r.NextCursor
}

// QueryParams represents the pagination parameters accepted by list endpoints.
type QueryParams struct {
	StartCursor string
	PageSize    int
}

// ToValues converts the params to URL query values for GET list endpoints.
// Page sizes beyond the server's maximum are clamped rather than rejected.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.StartCursor != "" {
		values.Set("start_cursor", p.StartCursor)
	}

	if p.PageSize > 0 {
		pageSize := p.PageSize
		if pageSize > constants.MaxPageSize {
			pageSize = constants.MaxPageSize
		}

		values.Set("page_size", strconv.Itoa(pageSize))
	}

	return values
}
