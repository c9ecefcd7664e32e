package field

import (
	"context"
	"fmt"

	"github.com/reoring/wirefield"
)

// NewMap returns a field representing a homogeneous mapping. Keys pass
// through exactly as given, in both directions; values are delegated to
// elem the way list elements are.
func NewMap(elem *Field, opts ...Option) *Field {
	return newField(&mapCodec{listCodec: listCodec{elem: elem}}, opts)
}

// mapCodec reuses the list codec's element delegation and owner
// propagation, overriding both directions for key-value pairs.
type mapCodec struct {
	listCodec
}

func (mc *mapCodec) Decode(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected object, got %T", v),
		}}
	}
	out := make(map[string]any, len(m))
	for k, it := range m {
		dv, err := mc.elem.Decode(ctx, it)
		if err != nil {
			return nil, wirefield.RebaseIssues("/"+k, err)
		}
		out[k] = dv
	}
	return out, nil
}

func (mc *mapCodec) Encode(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected map, got %T", v),
		}}
	}
	out := make(map[string]any, len(m))
	for k, it := range m {
		wv, err := mc.elem.Encode(ctx, it)
		if err != nil {
			return nil, wirefield.RebaseIssues("/"+k, err)
		}
		out[k] = wv
	}
	return out, nil
}
