package field

import (
	"context"
	"fmt"
	"reflect"

	"github.com/reoring/wirefield"
)

// Constant is a field whose value is fixed for every instance of the owning
// type. Use it for a discriminator attribute that says which type a
// polymorphic dictionary decodes into: owner binding records the owning
// type in the registry's discriminator table, where
// Registry.TypeForConstant finds it again.
type Constant struct {
	Field
	value any
}

var (
	_ wirefield.Property     = (*Constant)(nil)
	_ wirefield.FieldBinding = (*Constant)(nil)
)

// NewConstant returns a constant field with the given fixed value. The
// value must be comparable in its wire form (strings and numbers are).
func NewConstant(value any, opts ...Option) *Constant {
	c := &Constant{value: value}
	c.Field = *newField(constantCodec{value: value}, opts)
	return c
}

// Value reports the fixed value.
func (c *Constant) Value() any { return c.value }

// Install records the declared attribute name and returns the constant
// itself as its binding.
func (c *Constant) Install(attrName string) (wirefield.Binding, error) {
	c.attr = attrName
	if c.wire == "" {
		c.wire = attrName
	}
	return c, nil
}

// BindOwner registers the owning type under (attribute name, fixed value)
// in the registry's discriminator table. Re-declaring the same pair on
// another type silently overwrites the entry: last declaration wins.
func (c *Constant) BindOwner(owner *wirefield.Type) {
	c.Field.BindOwner(owner)
	if r := owner.Registry(); r != nil {
		r.RegisterConstant(c.attr, c.value, owner.Name())
	}
}

// DecodeInto always sets the fixed value, ignoring the wire dictionary.
func (c *Constant) DecodeInto(ctx context.Context, data map[string]any, obj *wirefield.Object) error {
	obj.Set(c.attr, c.value)
	return nil
}

// EncodeInto always writes the fixed value, ignoring instance state.
func (c *Constant) EncodeInto(ctx context.Context, obj *wirefield.Object, data map[string]any) error {
	data[c.wire] = c.value
	return nil
}

type constantCodec struct {
	value any
}

// Decode rejects any wire value unequal to the fixed value.
func (cc constantCodec) Decode(ctx context.Context, v any) (any, error) {
	if !reflect.DeepEqual(v, cc.value) {
		return nil, wirefield.Issues{{
			Path:    "/",
			Code:    wirefield.CodeValueMismatch,
			Message: fmt.Sprintf("value %v is not expected value %v", v, cc.value),
			Params:  map[string]any{"got": v, "want": cc.value},
		}}
	}
	return cc.value, nil
}

// Encode returns the fixed value whatever it is given.
func (cc constantCodec) Encode(ctx context.Context, v any) (any, error) {
	return cc.value, nil
}
