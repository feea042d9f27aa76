package notion

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pageforge-io/notion-client/internal/constants"
)

// Severity classifies a violation. Warnings never block sending; any error
// does, on the strict send path.
type Severity string

// Violation severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ViolationKind is the closed set of validation violation kinds.
type ViolationKind string

// Violation kinds.
const (
	ViolationContentTooLong   ViolationKind = "content_too_long"
	ViolationContentNearLimit ViolationKind = "content_near_limit"
	ViolationTooManyItems     ViolationKind = "too_many_items"
	ViolationNearItemLimit    ViolationKind = "near_item_limit"
	ViolationPayloadTooLarge  ViolationKind = "payload_too_large"
	ViolationPayloadNearLimit ViolationKind = "payload_near_limit"
	ViolationInvalidURL       ViolationKind = "invalid_url"
	ViolationInvalidEmail     ViolationKind = "invalid_email"
	ViolationInvalidPhone     ViolationKind = "invalid_phone"
)

// Violation is one validation finding against an outbound request. Violations
// are immutable values.
type Violation struct {
	// Field is the path of the offending value, e.g.
	// "properties.Name.title[0]" or "children[2].paragraph.rich_text[1]".
	Field string `json:"field" yaml:"field"`
	// Kind is the violation kind.
	Kind ViolationKind `json:"kind" yaml:"kind"`
	// Severity is error or warning.
	Severity Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description.
	Message string `json:"message" yaml:"message"`
	// CurrentValue is the measured size or count.
	CurrentValue int `json:"current_value" yaml:"current_value"`
	// Limit is the documented maximum the value was checked against.
	Limit int `json:"limit" yaml:"limit"`
	// AutoFixAvailable reports whether AutoFix can repair this violation.
	AutoFixAvailable bool `json:"auto_fix_available" yaml:"auto_fix_available"`
	// SuggestedAction optionally names the manual remedy.
	SuggestedAction string `json:"suggested_action,omitempty" yaml:"suggested_action,omitempty"`
}

// ValidationResult is the ordered set of violations found in one request.
type ValidationResult struct {
	Violations []Violation `json:"violations" yaml:"violations"`
}

// IsValid reports whether the request carries no error-class violations.
func (r *ValidationResult) IsValid() bool {
	return !r.HasErrors()
}

// HasErrors reports whether any violation is error-class.
func (r *ValidationResult) HasErrors() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return true
		}
	}

	return false
}

// HasWarnings reports whether any violation is warning-class.
func (r *ValidationResult) HasWarnings() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityWarning {
			return true
		}
	}

	return false
}

// Errors returns the error-class violations in order.
func (r *ValidationResult) Errors() []Violation {
	var out []Violation

	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}

	return out
}

// Warnings returns the warning-class violations in order.
func (r *ValidationResult) Warnings() []Violation {
	var out []Violation

	for _, v := range r.Violations {
		if v.Severity == SeverityWarning {
			out = append(out, v)
		}
	}

	return out
}

func (r *ValidationResult) add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// ValidationConfig selects strict-fail vs. auto-repair behavior for oversize
// text. Validate itself always runs identically; the setting only changes
// what the send path does with error-class violations.
type ValidationConfig struct {
	// AutoSplitLongText repairs oversized rich-text segments by lossless
	// splitting instead of failing the send.
	AutoSplitLongText bool
}

// DefaultValidationConfig returns the default validation configuration.
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{AutoSplitLongText: false}
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,}$`)
)

// nearLimit reports whether value is at or past the warning threshold of
// limit without exceeding it.
func nearLimit(value, limit int) bool {
	return value <= limit && float64(value) >= float64(limit)*constants.NearLimitRatio
}

// runeLength counts Unicode code points. The per-segment limit is counted in
// code points, never bytes, so a split can never land inside a character.
func runeLength(s string) int {
	return len([]rune(s))
}

// checkRichText validates one rich-text array: segment count and per-segment
// text length. Only plain "text" segments are auto-fixable by splitting.
func checkRichText(result *ValidationResult, field string, segments []RichText) {
	checkArraySize(result, field, len(segments), "rich-text segments")

	for i, segment := range segments {
		segField := fmt.Sprintf("%s[%d]", field, i)

		content := segment.PlainText
		fixable := false

		if segment.Type == RichTextTypeText && segment.Text != nil {
			content = segment.Text.Content
			fixable = true
		}

		length := runeLength(content)

		switch {
		case length > constants.MaxRichTextLength:
			result.add(Violation{
				Field:            segField,
				Kind:             ViolationContentTooLong,
				Severity:         SeverityError,
				Message:          fmt.Sprintf("text content is %d characters, maximum is %d per segment", length, constants.MaxRichTextLength),
				CurrentValue:     length,
				Limit:            constants.MaxRichTextLength,
				AutoFixAvailable: fixable,
				SuggestedAction:  "split the text into multiple segments",
			})
		case nearLimit(length, constants.MaxRichTextLength):
			result.add(Violation{
				Field:        segField,
				Kind:         ViolationContentNearLimit,
				Severity:     SeverityWarning,
				Message:      fmt.Sprintf("text content is %d characters, approaching the %d character limit", length, constants.MaxRichTextLength),
				CurrentValue: length,
				Limit:        constants.MaxRichTextLength,
			})
		}

		if segment.Text != nil && segment.Text.Link != nil {
			checkURL(result, segField+".link.url", segment.Text.Link.URL)
		}
	}
}

// checkArraySize validates a bounded collection's cardinality.
func checkArraySize(result *ValidationResult, field string, count int, what string) {
	switch {
	case count > constants.MaxArrayElements:
		result.add(Violation{
			Field:           field,
			Kind:            ViolationTooManyItems,
			Severity:        SeverityError,
			Message:         fmt.Sprintf("%d %s, maximum is %d", count, what, constants.MaxArrayElements),
			CurrentValue:    count,
			Limit:           constants.MaxArrayElements,
			SuggestedAction: "send the items in multiple requests",
		})
	case nearLimit(count, constants.MaxArrayElements):
		result.add(Violation{
			Field:        field,
			Kind:         ViolationNearItemLimit,
			Severity:     SeverityWarning,
			Message:      fmt.Sprintf("%d %s, approaching the maximum of %d", count, what, constants.MaxArrayElements),
			CurrentValue: count,
			Limit:        constants.MaxArrayElements,
		})
	}
}

func checkURL(result *ValidationResult, field, value string) {
	if value == "" {
		return
	}

	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		result.add(Violation{
			Field:        field,
			Kind:         ViolationInvalidURL,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("%q is not a valid http(s) URL", value),
			CurrentValue: len(value),
			Limit:        constants.MaxURLLength,
		})

		return
	}

	if len(value) > constants.MaxURLLength {
		result.add(Violation{
			Field:        field,
			Kind:         ViolationContentTooLong,
			Severity:     SeverityError,
			Message:      fmt.Sprintf("URL is %d characters, maximum is %d", len(value), constants.MaxURLLength),
			CurrentValue: len(value),
			Limit:        constants.MaxURLLength,
		})
	}
}

func checkEmail(result *ValidationResult, field, value string) {
	if value == "" || emailPattern.MatchString(value) {
		return
	}

	result.add(Violation{
		Field:    field,
		Kind:     ViolationInvalidEmail,
		Severity: SeverityError,
		Message:  fmt.Sprintf("%q is not a valid email address", value),
	})
}

func checkPhone(result *ValidationResult, field, value string) {
	if value == "" || phonePattern.MatchString(value) {
		return
	}

	result.add(Violation{
		Field:    field,
		Kind:     ViolationInvalidPhone,
		Severity: SeverityError,
		Message:  fmt.Sprintf("%q is not a valid phone number", value),
	})
}

// checkPropertyValue validates one page property value.
func checkPropertyValue(result *ValidationResult, field string, value PropertyValue) {
	switch value.Type {
	case PropertyTypeTitle:
		checkRichText(result, field+".title", value.Title)
	case PropertyTypeRichText:
		checkRichText(result, field+".rich_text", value.RichText)
	case PropertyTypeMultiSelect:
		checkArraySize(result, field+".multi_select", len(value.MultiSelect), "select options")
	case PropertyTypeURL:
		if value.URL != nil {
			checkURL(result, field+".url", *value.URL)
		}
	case PropertyTypeEmail:
		if value.Email != nil {
			checkEmail(result, field+".email", *value.Email)
		}
	case PropertyTypePhoneNumber:
		if value.PhoneNumber != nil {
			checkPhone(result, field+".phone_number", *value.PhoneNumber)
		}
	case PropertyTypeRelation:
		checkArraySize(result, field+".relation", len(value.Relation), "relations")
	}
}

// checkBlocks validates a block batch: batch cardinality, every text-bearing
// block's rich text, and nested children.
func checkBlocks(result *ValidationResult, field string, blocks []Block) {
	checkArraySize(result, field, len(blocks), "blocks")

	for i, block := range blocks {
		blockField := fmt.Sprintf("%s[%d]", field, i)

		if segments := block.richText(); segments != nil {
			checkRichText(result, fmt.Sprintf("%s.%s.rich_text", blockField, block.Type), segments)
		}

		if children := block.children(); len(children) > 0 {
			checkBlocks(result, blockField+".children", children)
		}
	}
}

// checkPayloadSize validates the total serialized request size. Never
// auto-fixable: splitting text does not shrink the payload.
func checkPayloadSize(result *ValidationResult, request any) {
	data, err := json.Marshal(request)
	if err != nil {
		return
	}

	size := len(data)

	switch {
	case size > constants.MaxPayloadBytes:
		result.add(Violation{
			Field:           "$",
			Kind:            ViolationPayloadTooLarge,
			Severity:        SeverityError,
			Message:         fmt.Sprintf("serialized request is %d bytes, maximum is %d", size, constants.MaxPayloadBytes),
			CurrentValue:    size,
			Limit:           constants.MaxPayloadBytes,
			SuggestedAction: "send the content in multiple requests",
		})
	case nearLimit(size, constants.MaxPayloadBytes):
		result.add(Violation{
			Field:        "$",
			Kind:         ViolationPayloadNearLimit,
			Severity:     SeverityWarning,
			Message:      fmt.Sprintf("serialized request is %d bytes, approaching the maximum of %d", size, constants.MaxPayloadBytes),
			CurrentValue: size,
			Limit:        constants.MaxPayloadBytes,
		})
	}
}

// ValidatePageCreate validates a page creation request. Pure, no I/O.
func ValidatePageCreate(request *PageCreateRequest) *ValidationResult {
	result := &ValidationResult{}
	if request == nil {
		return result
	}

	for name, value := range request.Properties {
		checkPropertyValue(result, "properties."+name, value)
	}

	checkBlocks(result, "children", request.Children)
	checkPayloadSize(result, request)

	return result
}

// ValidatePageUpdate validates a page update request.
func ValidatePageUpdate(request *PageUpdateRequest) *ValidationResult {
	result := &ValidationResult{}
	if request == nil {
		return result
	}

	for name, value := range request.Properties {
		checkPropertyValue(result, "properties."+name, value)
	}

	checkPayloadSize(result, request)

	return result
}

// ValidateAppendBlockChildren validates a block append request.
func ValidateAppendBlockChildren(request *AppendBlockChildrenRequest) *ValidationResult {
	result := &ValidationResult{}
	if request == nil {
		return result
	}

	checkBlocks(result, "children", request.Children)
	checkPayloadSize(result, request)

	return result
}

// ValidateCommentCreate validates a comment creation request.
func ValidateCommentCreate(request *CommentCreateRequest) *ValidationResult {
	result := &ValidationResult{}
	if request == nil {
		return result
	}

	checkRichText(result, "rich_text", request.RichText)
	checkPayloadSize(result, request)

	return result
}

// AutoFixResult carries the repaired request, the violations that were fixed,
// the violations that remain, and a human-readable change log.
type AutoFixResult[T any] struct {
	// Request is the repaired request. The input request is not mutated.
	Request T
	// Fixed lists the violations resolved by the repair.
	Fixed []Violation
	// Remaining lists the violations no auto-fix path exists for.
	Remaining []Violation
	// ChangeLog describes each applied change.
	ChangeLog []string
}

// SplitText partitions text into consecutive chunks of at most limit Unicode
// code points, preserving character order. Concatenating the chunks yields
// the input exactly; a split never lands inside a multi-byte character.
func SplitText(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string

	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}

// SplitRichText rewrites a rich-text array so every plain text segment is at
// or under the per-segment limit, partitioning oversized text into
// consecutive segments with the original annotations and link duplicated
// onto each. Non-text segments and compliant segments pass through
// unchanged. The second return value lists one change description per
// segment that was split.
func SplitRichText(segments []RichText, limit int) ([]RichText, []string) {
	var (
		out     []RichText
		changes []string
	)

	for i, segment := range segments {
		if segment.Type != RichTextTypeText || segment.Text == nil || runeLength(segment.Text.Content) <= limit {
			out = append(out, segment)

			continue
		}

		chunks := SplitText(segment.Text.Content, limit)
		for _, chunk := range chunks {
			part := segment

			content := *segment.Text
			content.Content = chunk
			part.Text = &content

			if segment.Annotations != nil {
				annotations := *segment.Annotations
				part.Annotations = &annotations
			}

			if segment.PlainText != "" {
				part.PlainText = chunk
			}

			out = append(out, part)
		}

		changes = append(changes, fmt.Sprintf("split segment %d (%d characters) into %d segments of at most %d characters",
			i, runeLength(segment.Text.Content), len(chunks), limit))
	}

	return out, changes
}

// partitionFixable splits a validation result into the violations the
// splitting repair resolves and those it cannot touch.
func partitionFixable(result *ValidationResult) (fixed, remaining []Violation) {
	for _, v := range result.Violations {
		if v.AutoFixAvailable && v.Kind == ViolationContentTooLong {
			fixed = append(fixed, v)
		} else {
			remaining = append(remaining, v)
		}
	}

	return fixed, remaining
}

// fixProperties applies SplitRichText to every rich-text array reachable
// from the given property map, prefixing change descriptions with the
// property path.
func fixProperties(properties map[string]PropertyValue, log *[]string) map[string]PropertyValue {
	if properties == nil {
		return nil
	}

	out := make(map[string]PropertyValue, len(properties))

	for name, value := range properties {
		switch value.Type {
		case PropertyTypeTitle:
			segments, changes := SplitRichText(value.Title, constants.MaxRichTextLength)
			value.Title = segments

			appendChanges(log, "properties."+name+".title", changes)
		case PropertyTypeRichText:
			segments, changes := SplitRichText(value.RichText, constants.MaxRichTextLength)
			value.RichText = segments

			appendChanges(log, "properties."+name+".rich_text", changes)
		}

		out[name] = value
	}

	return out
}

// fixBlocks applies SplitRichText to every text-bearing block, recursing
// into nested children.
func fixBlocks(blocks []Block, field string, log *[]string) []Block {
	if blocks == nil {
		return nil
	}

	out := make([]Block, len(blocks))

	for i, block := range blocks {
		blockField := fmt.Sprintf("%s[%d]", field, i)

		block.cloneBody()

		if segments := block.richText(); segments != nil {
			replaced, changes := SplitRichText(segments, constants.MaxRichTextLength)
			block.setRichText(replaced)

			appendChanges(log, fmt.Sprintf("%s.%s.rich_text", blockField, block.Type), changes)
		}

		if children := block.children(); len(children) > 0 {
			block.setChildren(fixBlocks(children, blockField+".children", log))
		}

		out[i] = block
	}

	return out
}

func appendChanges(log *[]string, field string, changes []string) {
	for _, change := range changes {
		*log = append(*log, field+": "+change)
	}
}

// AutoFixPageCreate repairs every auto-fixable violation in a page creation
// request by splitting oversized rich-text segments. The repair is applied
// once and does not re-validate; violations without an auto-fix path are
// carried into Remaining unchanged.
func AutoFixPageCreate(request *PageCreateRequest, result *ValidationResult) *AutoFixResult[*PageCreateRequest] {
	fixed, remaining := partitionFixable(result)

	repaired := *request

	var log []string

	repaired.Properties = fixProperties(request.Properties, &log)
	repaired.Children = fixBlocks(request.Children, "children", &log)

	return &AutoFixResult[*PageCreateRequest]{
		Request:   &repaired,
		Fixed:     fixed,
		Remaining: remaining,
		ChangeLog: log,
	}
}

// AutoFixPageUpdate repairs auto-fixable violations in a page update request.
func AutoFixPageUpdate(request *PageUpdateRequest, result *ValidationResult) *AutoFixResult[*PageUpdateRequest] {
	fixed, remaining := partitionFixable(result)

	repaired := *request

	var log []string

	repaired.Properties = fixProperties(request.Properties, &log)

	return &AutoFixResult[*PageUpdateRequest]{
		Request:   &repaired,
		Fixed:     fixed,
		Remaining: remaining,
		ChangeLog: log,
	}
}

// AutoFixAppendBlockChildren repairs auto-fixable violations in a block
// append request.
func AutoFixAppendBlockChildren(request *AppendBlockChildrenRequest, result *ValidationResult) *AutoFixResult[*AppendBlockChildrenRequest] {
	fixed, remaining := partitionFixable(result)

	repaired := *request

	var log []string

	repaired.Children = fixBlocks(request.Children, "children", &log)

	return &AutoFixResult[*AppendBlockChildrenRequest]{
		Request:   &repaired,
		Fixed:     fixed,
		Remaining: remaining,
		ChangeLog: log,
	}
}

// AutoFixCommentCreate repairs auto-fixable violations in a comment creation
// request.
func AutoFixCommentCreate(request *CommentCreateRequest, result *ValidationResult) *AutoFixResult[*CommentCreateRequest] {
	fixed, remaining := partitionFixable(result)

	repaired := *request

	var log []string

	segments, changes := SplitRichText(request.RichText, constants.MaxRichTextLength)
	repaired.RichText = segments

	appendChanges(&log, "rich_text", changes)

	return &AutoFixResult[*CommentCreateRequest]{
		Request:   &repaired,
		Fixed:     fixed,
		Remaining: remaining,
		ChangeLog: log,
	}
}

// HasBlockingViolations reports whether any violation in the list is
// error-class. Used by the send path to decide whether remaining violations
// after an auto-fix still abort the request.
func HasBlockingViolations(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}

	return false
}

// FormatViolation renders one violation for logs and CLI output.
func FormatViolation(v Violation) string {
	var b strings.Builder

	b.WriteString(string(v.Severity))
	b.WriteString(" ")
	b.WriteString(string(v.Kind))
	b.WriteString(" at ")
	b.WriteString(v.Field)
	b.WriteString(": ")
	b.WriteString(v.Message)

	return b.String()
}
