package wirefield

import (
	"context"
	"fmt"
)

// Object is a typed instance: an attribute store plus the raw wire
// dictionary it was decoded from. Keys of the raw dictionary with no
// matching declared field survive a decode/encode round-trip untouched.
type Object struct {
	typ      *Type
	attrs    map[string]any
	raw      map[string]any
	location string
}

// Type returns the declaring type.
func (o *Object) Type() *Type { return o.typ }

// Get returns the stored attribute value, or nil when unset. No defaulting
// or link resolution happens here; this is the raw stored value.
func (o *Object) Get(name string) any { return o.attrs[name] }

// Lookup returns the stored attribute value and whether the attribute
// exists at all. After a decode every declared field exists, possibly with
// a nil value.
func (o *Object) Lookup(name string) (any, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// Set stores an attribute value.
func (o *Object) Set(name string, v any) {
	o.attrs[name] = v
}

// Location reports where the instance was fetched from or will be created
// at; empty when unknown.
func (o *Object) Location() string { return o.location }

// SetLocation records the instance's location.
func (o *Object) SetLocation(loc string) { o.location = loc }

// ToDict serializes the instance to a fresh wire dictionary: a copy of the
// raw backing dictionary overlaid with every effective field's encoding.
// Mutating the result does not affect the instance.
func (o *Object) ToDict(ctx context.Context) (map[string]any, error) {
	out := cloneDict(o.raw)
	eff := o.typ.effective()
	for _, name := range sortedBindingNames(eff) {
		fb, ok := eff[name].(FieldBinding)
		if !ok {
			continue
		}
		if err := fb.EncodeInto(ctx, o, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateFromDict merges data into the raw backing dictionary and re-decodes
// only the fields whose wire key appears in data. Attributes of untouched
// fields keep their current values.
func (o *Object) UpdateFromDict(ctx context.Context, data map[string]any) error {
	for k, v := range data {
		o.raw[k] = v
	}
	eff := o.typ.effective()
	for _, name := range sortedBindingNames(eff) {
		fb, ok := eff[name].(FieldBinding)
		if !ok {
			continue
		}
		if _, present := data[fb.WireName()]; !present {
			continue
		}
		if err := fb.DecodeInto(ctx, data, o); err != nil {
			return err
		}
	}
	return nil
}

// FollowLink resolves the link declared under name. The target is derived
// and fetched on every call; nothing is memoized on the instance.
func (o *Object) FollowLink(ctx context.Context, name string) (*Object, error) {
	b, ok := o.typ.Binding(name)
	if !ok {
		return nil, Issues{{
			Path:    "/" + name,
			Code:    CodeUnsupported,
			Message: fmt.Sprintf("type %q declares no property %q", o.typ.Name(), name),
		}}
	}
	lb, ok := b.(LinkBinding)
	if !ok {
		return nil, Issues{{
			Path:    "/" + name,
			Code:    CodeUnsupported,
			Message: fmt.Sprintf("property %q of type %q is not a link", name, o.typ.Name()),
		}}
	}
	return lb.Resolve(ctx, o)
}
