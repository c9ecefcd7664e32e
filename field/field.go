// Package field provides the declarative properties installed on wirefield
// types: the primitive field plus its constant, list, map, object and
// timestamp variants, and the computed link property.
package field

import (
	"context"

	"github.com/reoring/wirefield"
)

// Codec converts a single value between its wire and in-memory forms. Every
// field kind in this package is a plain Field wired to a different codec.
type Codec interface {
	Decode(ctx context.Context, v any) (any, error)
	Encode(ctx context.Context, v any) (any, error)
}

// ownerBinder is implemented by codecs that need the declaring type:
// by-name object targets and composite codecs holding element fields.
type ownerBinder interface {
	bindOwner(owner *wirefield.Type)
}

// DefaultFunc computes a field default from the instance being decoded and
// the wire dictionary. Fields are processed in no particular order, so the
// function must not read other attributes of obj nor set anything itself.
type DefaultFunc func(obj *wirefield.Object, data map[string]any) (any, error)

// Option configures a field at declaration time.
type Option func(*Field)

// WireName sets the dictionary key the field reads from and writes to. When
// unset, the attribute name the field was declared under is used.
func WireName(name string) Option {
	return func(f *Field) { f.wire = name }
}

// Default sets a static default, applied only when the decoded value is
// absent or null. Defaults are never applied during encode.
func Default(v any) Option {
	return func(f *Field) { f.def = v }
}

// DefaultBy sets a computed default, applied under the same rule as Default.
func DefaultBy(fn DefaultFunc) Option {
	return func(f *Field) { f.defFn = fn }
}

// Field moves one attribute between wire dictionaries and instances. With
// the identity codec returned by New it suits strings, numbers and
// booleans; the other constructors in this package wire converting codecs
// into the same struct. A Field belongs to a single declaration: Install
// and BindOwner are invoked once by the registry and it is immutable
// afterwards.
type Field struct {
	wire  string
	attr  string
	def   any
	defFn DefaultFunc
	codec Codec
	owner *wirefield.Type
}

var (
	_ wirefield.Property     = (*Field)(nil)
	_ wirefield.FieldBinding = (*Field)(nil)
)

// New returns a primitive field that carries wire values through unchanged.
func New(opts ...Option) *Field {
	return newField(identity{}, opts)
}

func newField(c Codec, opts []Option) *Field {
	f := &Field{codec: c}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Install records the declared attribute name and returns the field itself
// as its binding. The wire name defaults to the attribute name.
func (f *Field) Install(attrName string) (wirefield.Binding, error) {
	f.attr = attrName
	if f.wire == "" {
		f.wire = attrName
	}
	return f, nil
}

// AttrName reports the attribute name the field was installed under.
func (f *Field) AttrName() string { return f.attr }

// WireName reports the dictionary key the field reads and writes.
func (f *Field) WireName() string { return f.wire }

// Owner returns the declaring type, or nil before owner binding.
func (f *Field) Owner() *wirefield.Type { return f.owner }

// BindOwner records the declaring type and threads it into the codec so
// nested object fields can resolve self and forward references.
func (f *Field) BindOwner(owner *wirefield.Type) {
	f.owner = owner
	if ob, ok := f.codec.(ownerBinder); ok {
		ob.bindOwner(owner)
	}
}

// Decode converts a wire value into its in-memory form.
func (f *Field) Decode(ctx context.Context, v any) (any, error) {
	return f.codec.Decode(ctx, v)
}

// Encode converts an in-memory value into its wire form.
func (f *Field) Encode(ctx context.Context, v any) (any, error) {
	return f.codec.Encode(ctx, v)
}

// DecodeInto reads the wire value under the field's key and sets the
// instance attribute. A structurally absent or null value triggers the
// default, when one is declared; a present value that fails to decode is a
// hard error and never falls back to the default. The attribute exists
// after this call even when its value is still nil.
func (f *Field) DecodeInto(ctx context.Context, data map[string]any, obj *wirefield.Object) error {
	v := data[f.wire]
	if v != nil {
		dv, err := f.codec.Decode(ctx, v)
		if err != nil {
			return wirefield.RebaseIssues("/"+f.wire, err)
		}
		v = dv
	}
	if v == nil && (f.def != nil || f.defFn != nil) {
		if f.defFn != nil {
			dv, err := f.defFn(obj, data)
			if err != nil {
				return wirefield.RebaseIssues("/"+f.wire, err)
			}
			v = dv
		} else {
			v = f.def
		}
	}
	obj.Set(f.attr, v)
	return nil
}

// EncodeInto writes the instance's currently-set attribute into data under
// the field's key. The raw stored value is read, bypassing defaulting; an
// absent or nil attribute writes nothing, never a null entry.
func (f *Field) EncodeInto(ctx context.Context, obj *wirefield.Object, data map[string]any) error {
	v, ok := obj.Lookup(f.attr)
	if !ok || v == nil {
		return nil
	}
	wv, err := f.codec.Encode(ctx, v)
	if err != nil {
		return wirefield.RebaseIssues("/"+f.wire, err)
	}
	data[f.wire] = wv
	return nil
}

// identity is the codec of the primitive field.
type identity struct{}

func (identity) Decode(ctx context.Context, v any) (any, error) { return v, nil }
func (identity) Encode(ctx context.Context, v any) (any, error) { return v, nil }
