package field

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reoring/wirefield"
)

// NewList returns a field representing a homogeneous ordered sequence whose
// elements are decoded and encoded through elem. Owner binding propagates
// to elem, so an object element can resolve self and forward references.
func NewList(elem *Field, opts ...Option) *Field {
	return newField(&listCodec{elem: elem}, opts)
}

type listCodec struct {
	elem *Field
}

func (lc *listCodec) bindOwner(owner *wirefield.Type) {
	lc.elem.BindOwner(owner)
}

// Decode converts each element through the element field, failing fast on
// the first bad element with its index on the issue path.
func (lc *listCodec) Decode(ctx context.Context, v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected array, got %T", v),
		}}
	}
	out := make([]any, len(items))
	for i, it := range items {
		dv, err := lc.elem.Decode(ctx, it)
		if err != nil {
			return nil, wirefield.RebaseIssues("/"+strconv.Itoa(i), err)
		}
		out[i] = dv
	}
	return out, nil
}

// Encode is the inverse of Decode with the same fail-fast behavior.
func (lc *listCodec) Encode(ctx context.Context, v any) (any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected slice, got %T", v),
		}}
	}
	out := make([]any, len(items))
	for i, it := range items {
		wv, err := lc.elem.Encode(ctx, it)
		if err != nil {
			return nil, wirefield.RebaseIssues("/"+strconv.Itoa(i), err)
		}
		out[i] = wv
	}
	return out, nil
}
