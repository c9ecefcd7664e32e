package field

import (
	"context"
	"fmt"

	"github.com/reoring/wirefield"
)

// NewObject returns a field representing a nested instance of target, one
// level of dictionary nesting deep.
func NewObject(target *wirefield.Type, opts ...Option) *Field {
	return newField(&objectCodec{target: target}, opts)
}

// NewObjectNamed returns a field whose target type is resolved by name
// against the owning type's registry. Resolution happens again on every
// decode, never cached on the field, so the leafmost type registered under
// the name wins — including one registered after this field was declared.
// This is how self references and forward references are declared.
func NewObjectNamed(name string, opts ...Option) *Field {
	return newField(&objectCodec{name: name}, opts)
}

type objectCodec struct {
	target *wirefield.Type
	name   string
	owner  *wirefield.Type
}

func (oc *objectCodec) bindOwner(owner *wirefield.Type) {
	oc.owner = owner
}

// resolveTarget returns the target type, re-resolving by-name targets on
// each call.
func (oc *objectCodec) resolveTarget() (*wirefield.Type, error) {
	if oc.target != nil {
		return oc.target, nil
	}
	if oc.owner == nil || oc.owner.Registry() == nil {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeUnknownType,
			Message: fmt.Sprintf("cannot resolve type %q without a registry", oc.name),
			Hint:    "declare the field on a registered type",
		}}
	}
	return oc.owner.Registry().TypeByName(oc.name)
}

// Decode builds an instance of the resolved target from a nested dictionary.
func (oc *objectCodec) Decode(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected object, got %T", v),
		}}
	}
	t, err := oc.resolveTarget()
	if err != nil {
		return nil, err
	}
	return t.FromDict(ctx, m)
}

// Encode delegates to the instance's own serialization.
func (oc *objectCodec) Encode(ctx context.Context, v any) (any, error) {
	obj, ok := v.(*wirefield.Object)
	if !ok {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeTypeMismatch,
			Message: fmt.Sprintf("expected *wirefield.Object, got %T", v),
		}}
	}
	return obj.ToDict(ctx)
}
