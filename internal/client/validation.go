package client

import (
	"github.com/pageforge-io/notion-client/pkg/notion"
)

// The strict send path shared by every mutating call: validate first, and
// abort before any transport call when error-class violations remain. With
// AutoSplitLongText enabled the one repairable violation kind (oversized
// rich-text segments) is fixed in a copy of the request; everything else
// still aborts, surfacing the full violation set.

func preparePageCreate(request *notion.PageCreateRequest, cfg *notion.ValidationConfig) (*notion.PageCreateRequest, error) {
	result := notion.ValidatePageCreate(request)
	if result.IsValid() {
		return request, nil
	}

	if cfg != nil && cfg.AutoSplitLongText {
		fixed := notion.AutoFixPageCreate(request, result)
		if !notion.HasBlockingViolations(fixed.Remaining) {
			return fixed.Request, nil
		}

		return nil, &notion.ValidationError{Result: &notion.ValidationResult{Violations: fixed.Remaining}}
	}

	return nil, &notion.ValidationError{Result: result}
}

func preparePageUpdate(request *notion.PageUpdateRequest, cfg *notion.ValidationConfig) (*notion.PageUpdateRequest, error) {
	result := notion.ValidatePageUpdate(request)
	if result.IsValid() {
		return request, nil
	}

	if cfg != nil && cfg.AutoSplitLongText {
		fixed := notion.AutoFixPageUpdate(request, result)
		if !notion.HasBlockingViolations(fixed.Remaining) {
			return fixed.Request, nil
		}

		return nil, &notion.ValidationError{Result: &notion.ValidationResult{Violations: fixed.Remaining}}
	}

	return nil, &notion.ValidationError{Result: result}
}

func prepareAppendBlockChildren(request *notion.AppendBlockChildrenRequest, cfg *notion.ValidationConfig) (*notion.AppendBlockChildrenRequest, error) {
	result := notion.ValidateAppendBlockChildren(request)
	if result.IsValid() {
		return request, nil
	}

	if cfg != nil && cfg.AutoSplitLongText {
		fixed := notion.AutoFixAppendBlockChildren(request, result)
		if !notion.HasBlockingViolations(fixed.Remaining) {
			return fixed.Request, nil
		}

		return nil, &notion.ValidationError{Result: &notion.ValidationResult{Violations: fixed.Remaining}}
	}

	return nil, &notion.ValidationError{Result: result}
}

func prepareCommentCreate(request *notion.CommentCreateRequest, cfg *notion.ValidationConfig) (*notion.CommentCreateRequest, error) {
	result := notion.ValidateCommentCreate(request)
	if result.IsValid() {
		return request, nil
	}

	if cfg != nil && cfg.AutoSplitLongText {
		fixed := notion.AutoFixCommentCreate(request, result)
		if !notion.HasBlockingViolations(fixed.Remaining) {
			return fixed.Request, nil
		}

		return nil, &notion.ValidationError{Result: &notion.ValidationResult{Violations: fixed.Remaining}}
	}

	return nil, &notion.ValidationError{Result: result}
}
