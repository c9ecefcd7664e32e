package wirefield

import (
	"context"
	"fmt"
	"sort"
)

// Type is a named set of declared properties. Types are built with the
// Declare chain and become usable once registered; registration installs
// every property and binds it to its owner.
type Type struct {
	name     string
	parent   *Type
	decls    []decl
	bindings map[string]Binding
	reg      *Registry
}

type decl struct {
	name string
	prop Property
}

// NewType starts a type declaration.
func NewType(name string) *Type {
	return &Type{name: name}
}

// Extends sets the parent type. All of the parent's properties stay in
// effect unless redeclared here; a redeclared attribute name wins with
// this type's property, whatever its kind.
func (t *Type) Extends(parent *Type) *Type {
	t.parent = parent
	return t
}

// Declare adds a property under the given attribute name. Declaring the
// same name twice keeps the later declaration.
func (t *Type) Declare(name string, p Property) *Type {
	t.decls = append(t.decls, decl{name: name, prop: p})
	return t
}

// Name reports the declared type name.
func (t *Type) Name() string { return t.name }

// Parent returns the extended type, or nil.
func (t *Type) Parent() *Type { return t.parent }

// Registry returns the registry the type was registered into, or nil.
func (t *Type) Registry() *Registry { return t.reg }

// effective collects the bindings in effect for t: inherited ones first,
// then each type down the chain overriding by attribute name.
func (t *Type) effective() map[string]Binding {
	out := map[string]Binding{}
	var walk func(*Type)
	walk = func(x *Type) {
		if x == nil {
			return
		}
		walk(x.parent)
		for name, b := range x.bindings {
			out[name] = b
		}
	}
	walk(t)
	return out
}

// Binding returns the effective binding for the attribute name, walking up
// the parent chain.
func (t *Type) Binding(name string) (Binding, bool) {
	for x := t; x != nil; x = x.parent {
		if b, ok := x.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// New constructs an instance with already-typed attribute values. The raw
// backing dictionary starts empty, so only encoded attributes appear when
// the instance is serialized.
func (t *Type) New(values map[string]any) *Object {
	obj := &Object{typ: t, attrs: make(map[string]any, len(values)), raw: map[string]any{}}
	for name, v := range values {
		obj.attrs[name] = v
	}
	return obj
}

// FromDict decodes a wire dictionary into a fresh instance. Every effective
// field is decoded; processing happens in sorted attribute order for
// deterministic errors, but no field may rely on another having been
// decoded first. On failure the partial instance is discarded.
func (t *Type) FromDict(ctx context.Context, data map[string]any) (*Object, error) {
	if t.reg == nil {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeUnsupported,
			Message: fmt.Sprintf("type %q has not been registered", t.name),
		}}
	}
	obj := t.New(nil)
	obj.raw = cloneDict(data)
	eff := t.effective()
	for _, name := range sortedBindingNames(eff) {
		fb, ok := eff[name].(FieldBinding)
		if !ok {
			continue // links resolve on access, nothing to decode
		}
		if err := fb.DecodeInto(ctx, data, obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// cloneDict shallow-copies a wire dictionary. Nested values are shared;
// fields that decode them produce fresh typed values anyway.
func cloneDict(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func sortedBindingNames(m map[string]Binding) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
