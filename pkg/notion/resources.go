package notion

import "encoding/json"

// Page represents a page in a workspace or database.
type Page struct {
	Resource

	CreatedBy    *UserRef                 `json:"created_by,omitempty"     yaml:"created_by,omitempty"`
	LastEditedBy *UserRef                 `json:"last_edited_by,omitempty" yaml:"last_edited_by,omitempty"`
	Archived     bool                     `json:"archived"                 yaml:"archived"`
	InTrash      bool                     `json:"in_trash,omitempty"       yaml:"in_trash,omitempty"`
	Parent       Parent                   `json:"parent"                   yaml:"parent"`
	Properties   map[string]PropertyValue `json:"properties"               yaml:"properties"`
	URL          string                   `json:"url,omitempty"            yaml:"url,omitempty"`
	PublicURL    *string                  `json:"public_url,omitempty"     yaml:"public_url,omitempty"`
}

// Title returns the page's title as plain text, or "" when no title property
// is present.
func (p *Page) Title() string {
	for _, prop := range p.Properties {
		if prop.Type == PropertyTypeTitle {
			return PlainText(prop.Title)
		}
	}

	return ""
}

// PropertyValue represents a single property value on a page. Exactly one of
// the typed fields is populated, selected by Type.
type PropertyValue struct {
	ID          string         `json:"id,omitempty"           yaml:"id,omitempty"`
	Type        string         `json:"type"                   yaml:"type"`
	Title       []RichText     `json:"title,omitempty"        yaml:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"    yaml:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"       yaml:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"       yaml:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty" yaml:"multi_select,omitempty"`
	Date        *DateValue     `json:"date,omitempty"         yaml:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"     yaml:"checkbox,omitempty"`
	URL         *string        `json:"url,omitempty"          yaml:"url,omitempty"`
	Email       *string        `json:"email,omitempty"        yaml:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	People      []UserRef      `json:"people,omitempty"       yaml:"people,omitempty"`
	Relation    []ObjectRef    `json:"relation,omitempty"     yaml:"relation,omitempty"`
}

// Property value types.
const (
	PropertyTypeTitle       = "title"
	PropertyTypeRichText    = "rich_text"
	PropertyTypeNumber      = "number"
	PropertyTypeSelect      = "select"
	PropertyTypeMultiSelect = "multi_select"
	PropertyTypeDate        = "date"
	PropertyTypeCheckbox    = "checkbox"
	PropertyTypeURL         = "url"
	PropertyTypeEmail       = "email"
	PropertyTypePhoneNumber = "phone_number"
	PropertyTypePeople      = "people"
	PropertyTypeRelation    = "relation"
)

// ObjectRef references another object by ID.
type ObjectRef struct {
	ID string `json:"id" yaml:"id"`
}

// PageCreateRequest represents a request to create a page.
type PageCreateRequest struct {
	// Parent must reference a page or database the integration can access.
	Parent Parent `json:"parent" yaml:"parent"`
	// Properties must match the parent database's schema; for a page parent,
	// only a title property is accepted.
	Properties map[string]PropertyValue `json:"properties" yaml:"properties"`
	// Children optionally supplies initial content blocks.
	Children []Block `json:"children,omitempty" yaml:"children,omitempty"`
	// Icon and Cover optionally decorate the page.
	Icon  *Icon  `json:"icon,omitempty"  yaml:"icon,omitempty"`
	Cover *Cover `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// PageUpdateRequest represents a request to update page properties.
type PageUpdateRequest struct {
	// Properties updates only the named properties; others are unchanged.
	Properties map[string]PropertyValue `json:"properties,omitempty" yaml:"properties,omitempty"`
	// Archived moves the page to or from the trash; nil leaves it unchanged.
	Archived *bool `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// Icon represents a page or database icon.
type Icon struct {
	Type  string `json:"type"            yaml:"type"`
	Emoji string `json:"emoji,omitempty" yaml:"emoji,omitempty"`
}

// Cover represents a page or database cover image.
type Cover struct {
	Type     string       `json:"type"               yaml:"type"`
	External *ExternalRef `json:"external,omitempty" yaml:"external,omitempty"`
}

// ExternalRef points at an externally hosted file.
type ExternalRef struct {
	URL string `json:"url" yaml:"url"`
}

// Database represents a database: a schema plus a collection of pages.
type Database struct {
	Resource

	CreatedBy    *UserRef                  `json:"created_by,omitempty"     yaml:"created_by,omitempty"`
	LastEditedBy *UserRef                  `json:"last_edited_by,omitempty" yaml:"last_edited_by,omitempty"`
	Title        []RichText                `json:"title"                    yaml:"title"`
	Description  []RichText                `json:"description,omitempty"    yaml:"description,omitempty"`
	Parent       Parent                    `json:"parent"                   yaml:"parent"`
	Properties   map[string]PropertySchema `json:"properties"               yaml:"properties"`
	Archived     bool                      `json:"archived"                 yaml:"archived"`
	URL          string                    `json:"url,omitempty"            yaml:"url,omitempty"`
}

// PropertySchema describes one column of a database schema.
type PropertySchema struct {
	ID          string               `json:"id,omitempty"           yaml:"id,omitempty"`
	Name        string               `json:"name,omitempty"         yaml:"name,omitempty"`
	Type        string               `json:"type"                   yaml:"type"`
	Select      *SelectOptionsSchema `json:"select,omitempty"       yaml:"select,omitempty"`
	MultiSelect *SelectOptionsSchema `json:"multi_select,omitempty" yaml:"multi_select,omitempty"`
}

// SelectOptionsSchema lists the configured options of a select-like column.
type SelectOptionsSchema struct {
	Options []SelectOption `json:"options" yaml:"options"`
}

// DatabaseQueryRequest represents a query against a database.
type DatabaseQueryRequest struct {
	// Filter restricts the returned pages; nil returns all pages.
	Filter json.RawMessage `json:"filter,omitempty" yaml:"filter,omitempty"`
	// Sorts orders the result set.
	Sorts []QuerySort `json:"sorts,omitempty" yaml:"sorts,omitempty"`
	// StartCursor resumes a previous query; empty starts from the beginning.
	StartCursor string `json:"start_cursor,omitempty" yaml:"start_cursor,omitempty"`
	// PageSize caps results per page (server maximum 100).
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// QuerySort orders database query results by a property or timestamp.
type QuerySort struct {
	Property  string `json:"property,omitempty"  yaml:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Direction string `json:"direction"           yaml:"direction"`
}

// Block represents one content block of a page. Exactly one of the typed
// fields is populated, selected by Type.
type Block struct {
	Resource

	ParentID         string        `json:"-"                            yaml:"-"`
	Type             string        `json:"type"                         yaml:"type"`
	HasChildren      bool          `json:"has_children,omitempty"       yaml:"has_children,omitempty"`
	Archived         bool          `json:"archived,omitempty"           yaml:"archived,omitempty"`
	Paragraph        *RichTextBody `json:"paragraph,omitempty"          yaml:"paragraph,omitempty"`
	Heading1         *RichTextBody `json:"heading_1,omitempty"          yaml:"heading_1,omitempty"`
	Heading2         *RichTextBody `json:"heading_2,omitempty"          yaml:"heading_2,omitempty"`
	Heading3         *RichTextBody `json:"heading_3,omitempty"          yaml:"heading_3,omitempty"`
	BulletedListItem *RichTextBody `json:"bulleted_list_item,omitempty" yaml:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBody `json:"numbered_list_item,omitempty" yaml:"numbered_list_item,omitempty"`
	Quote            *RichTextBody `json:"quote,omitempty"              yaml:"quote,omitempty"`
	ToDo             *ToDoBody     `json:"to_do,omitempty"              yaml:"to_do,omitempty"`
	Code             *CodeBody     `json:"code,omitempty"               yaml:"code,omitempty"`
}

// Block types.
const (
	BlockTypeParagraph        = "paragraph"
	BlockTypeHeading1         = "heading_1"
	BlockTypeHeading2         = "heading_2"
	BlockTypeHeading3         = "heading_3"
	BlockTypeBulletedListItem = "bulleted_list_item"
	BlockTypeNumberedListItem = "numbered_list_item"
	BlockTypeQuote            = "quote"
	BlockTypeToDo             = "to_do"
	BlockTypeCode             = "code"
)

// RichTextBody is the shared body of text-bearing blocks.
type RichTextBody struct {
	RichText []RichText `json:"rich_text"       yaml:"rich_text"`
	Color    string     `json:"color,omitempty" yaml:"color,omitempty"`
	Children []Block    `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToDoBody is the body of a to_do block.
type ToDoBody struct {
	RichText []RichText `json:"rich_text"         yaml:"rich_text"`
	Checked  bool       `json:"checked,omitempty" yaml:"checked,omitempty"`
	Color    string     `json:"color,omitempty"   yaml:"color,omitempty"`
}

// CodeBody is the body of a code block.
type CodeBody struct {
	RichText []RichText `json:"rich_text"          yaml:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"  yaml:"caption,omitempty"`
	Language string     `json:"language,omitempty" yaml:"language,omitempty"`
}

// Text returns the block's content as plain text, or "" for blocks without
// a rich-text body.
func (b *Block) Text() string {
	return PlainText(b.richText())
}

// richText returns the block's rich-text array, or nil for untyped blocks.
func (b *Block) richText() []RichText {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			return b.Paragraph.RichText
		}
	case BlockTypeHeading1:
		if b.Heading1 != nil {
			return b.Heading1.RichText
		}
	case BlockTypeHeading2:
		if b.Heading2 != nil {
			return b.Heading2.RichText
		}
	case BlockTypeHeading3:
		if b.Heading3 != nil {
			return b.Heading3.RichText
		}
	case BlockTypeBulletedListItem:
		if b.BulletedListItem != nil {
			return b.BulletedListItem.RichText
		}
	case BlockTypeNumberedListItem:
		if b.NumberedListItem != nil {
			return b.NumberedListItem.RichText
		}
	case BlockTypeQuote:
		if b.Quote != nil {
			return b.Quote.RichText
		}
	case BlockTypeToDo:
		if b.ToDo != nil {
			return b.ToDo.RichText
		}
	case BlockTypeCode:
		if b.Code != nil {
			return b.Code.RichText
		}
	}

	return nil
}

// setRichText replaces the block's rich-text array in place.
func (b *Block) setRichText(segments []RichText) {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			b.Paragraph.RichText = segments
		}
	case BlockTypeHeading1:
		if b.Heading1 != nil {
			b.Heading1.RichText = segments
		}
	case BlockTypeHeading2:
		if b.Heading2 != nil {
			b.Heading2.RichText = segments
		}
	case BlockTypeHeading3:
		if b.Heading3 != nil {
			b.Heading3.RichText = segments
		}
	case BlockTypeBulletedListItem:
		if b.BulletedListItem != nil {
			b.BulletedListItem.RichText = segments
		}
	case BlockTypeNumberedListItem:
		if b.NumberedListItem != nil {
			b.NumberedListItem.RichText = segments
		}
	case BlockTypeQuote:
		if b.Quote != nil {
			b.Quote.RichText = segments
		}
	case BlockTypeToDo:
		if b.ToDo != nil {
			b.ToDo.RichText = segments
		}
	case BlockTypeCode:
		if b.Code != nil {
			b.Code.RichText = segments
		}
	}
}

// body returns the block's shared rich-text body, or nil for block types
// that carry no nested children.
func (b *Block) body() *RichTextBody {
	switch b.Type {
	case BlockTypeParagraph:
		return b.Paragraph
	case BlockTypeHeading1:
		return b.Heading1
	case BlockTypeHeading2:
		return b.Heading2
	case BlockTypeHeading3:
		return b.Heading3
	case BlockTypeBulletedListItem:
		return b.BulletedListItem
	case BlockTypeNumberedListItem:
		return b.NumberedListItem
	case BlockTypeQuote:
		return b.Quote
	}

	return nil
}

// children returns the block's nested child blocks, if any.
func (b *Block) children() []Block {
	if body := b.body(); body != nil {
		return body.Children
	}

	return nil
}

// setChildren replaces the block's nested child blocks in place.
func (b *Block) setChildren(children []Block) {
	if body := b.body(); body != nil {
		body.Children = children
	}
}

// cloneBody replaces the block's typed body pointer with a copy, so rich
// text can be rewritten without mutating the block the copy was made from.
func (b *Block) cloneBody() {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			body := *b.Paragraph
			b.Paragraph = &body
		}
	case BlockTypeHeading1:
		if b.Heading1 != nil {
			body := *b.Heading1
			b.Heading1 = &body
		}
	case BlockTypeHeading2:
		if b.Heading2 != nil {
			body := *b.Heading2
			b.Heading2 = &body
		}
	case BlockTypeHeading3:
		if b.Heading3 != nil {
			body := *b.Heading3
			b.Heading3 = &body
		}
	case BlockTypeBulletedListItem:
		if b.BulletedListItem != nil {
			body := *b.BulletedListItem
			b.BulletedListItem = &body
		}
	case BlockTypeNumberedListItem:
		if b.NumberedListItem != nil {
			body := *b.NumberedListItem
			b.NumberedListItem = &body
		}
	case BlockTypeQuote:
		if b.Quote != nil {
			body := *b.Quote
			b.Quote = &body
		}
	case BlockTypeToDo:
		if b.ToDo != nil {
			body := *b.ToDo
			b.ToDo = &body
		}
	case BlockTypeCode:
		if b.Code != nil {
			body := *b.Code
			b.Code = &body
		}
	}
}

// AppendBlockChildrenRequest represents a request to append child blocks.
type AppendBlockChildrenRequest struct {
	// Children is the batch of blocks to append (server maximum 100).
	Children []Block `json:"children" yaml:"children"`
	// After optionally places the new blocks after an existing child.
	After string `json:"after,omitempty" yaml:"after,omitempty"`
}

// User represents a workspace member or integration bot.
type User struct {
	Object    string  `json:"object"               yaml:"object"`
	ID        string  `json:"id"                   yaml:"id"`
	Type      string  `json:"type,omitempty"       yaml:"type,omitempty"`
	Name      string  `json:"name,omitempty"       yaml:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	Email     string  `json:"email,omitempty"      yaml:"email,omitempty"`
}

// Comment represents a comment in a page discussion thread.
type Comment struct {
	Resource

	Parent       Parent     `json:"parent"               yaml:"parent"`
	DiscussionID string     `json:"discussion_id"        yaml:"discussion_id"`
	CreatedBy    *UserRef   `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	RichText     []RichText `json:"rich_text"            yaml:"rich_text"`
}

// CommentCreateRequest represents a request to create a comment. Exactly one
// of Parent or DiscussionID must be set.
type CommentCreateRequest struct {
	// Parent starts a new discussion on the referenced page.
	Parent *Parent `json:"parent,omitempty" yaml:"parent,omitempty"`
	// DiscussionID replies to an existing thread.
	DiscussionID string `json:"discussion_id,omitempty" yaml:"discussion_id,omitempty"`
	// RichText is the comment body.
	RichText []RichText `json:"rich_text" yaml:"rich_text"`
}

// SearchRequest represents a workspace search.
type SearchRequest struct {
	// Query matches against page and database titles; empty returns everything
	// shared with the integration.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
	// Filter optionally restricts results to pages or databases.
	Filter *SearchFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	// Sort optionally orders by last edited time.
	Sort *SearchSort `json:"sort,omitempty" yaml:"sort,omitempty"`
	// StartCursor resumes a previous search.
	StartCursor string `json:"start_cursor,omitempty" yaml:"start_cursor,omitempty"`
	// PageSize caps results per page (server maximum 100).
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty"`
}

// SearchFilter restricts search results by object type.
type SearchFilter struct {
	Property string `json:"property" yaml:"property"`
	Value    string `json:"value"    yaml:"value"`
}

// SearchSort orders search results.
type SearchSort struct {
	Direction string `json:"direction" yaml:"direction"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// SearchResult is one search hit: a page or a database, discriminated by the
// object field.
type SearchResult struct {
	Object   string    `json:"object" yaml:"object"`
	Page     *Page     `json:"-"      yaml:"-"`
	Database *Database `json:"-"      yaml:"-"`
}

// UnmarshalJSON decodes the hit into the variant named by the object field.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var head struct {
		Object string `json:"object"`
	}

	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	r.Object = head.Object

	switch head.Object {
	case "database":
		var db Database
		if err := json.Unmarshal(data, &db); err != nil {
			return err
		}

		r.Database = &db
	default:
		var page Page
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}

		r.Page = &page
	}

	return nil
}

// Title returns the hit's title as plain text.
func (r *SearchResult) Title() string {
	switch {
	case r.Database != nil:
		return PlainText(r.Database.Title)
	case r.Page != nil:
		return r.Page.Title()
	}

	return ""
}

// ID returns the hit's object ID.
func (r *SearchResult) ID() string {
	switch {
	case r.Database != nil:
		return r.Database.ID
	case r.Page != nil:
		return r.Page.ID
	}

	return ""
}

// PlainText concatenates the plain text of a rich-text array.
func PlainText(segments []RichText) string {
	var out string

	for _, segment := range segments {
		if segment.PlainText != "" {
			out += segment.PlainText

			continue
		}

		if segment.Text != nil {
			out += segment.Text.Content
		}
	}

	return out
}
