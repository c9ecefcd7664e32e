package wirefield

import "context"

// Property is implemented by every attribute declared on a Type. The two
// property families are fields (stored values moved between wire
// dictionaries and instances) and links (computed relations resolved on
// access).
type Property interface {
	// Install produces the binding recorded for the attribute name the
	// property was declared under. Registry.Register calls it exactly once
	// per declaration.
	Install(attrName string) (Binding, error)
}

// Binding is what a Type holds for a declared attribute after Install.
type Binding interface {
	// AttrName reports the attribute name the binding was installed under.
	AttrName() string
	// BindOwner records the declaring type. Invoked once by
	// Registry.Register immediately after Install; composite fields thread
	// the owner down to their element fields here so nested object fields
	// can resolve self and forward references.
	BindOwner(owner *Type)
}

// FieldBinding moves one attribute between wire dictionaries and instances.
type FieldBinding interface {
	Binding
	// WireName reports the dictionary key the binding reads and writes.
	WireName() string
	// DecodeInto reads the wire value (or computes a default when it is
	// absent) and sets the instance attribute. The attribute always exists
	// afterwards, even when still unset.
	DecodeInto(ctx context.Context, data map[string]any, obj *Object) error
	// EncodeInto writes the instance's currently-set attribute into data.
	// Absent or null attributes produce no entry at all.
	EncodeInto(ctx context.Context, obj *Object, data map[string]any) error
}

// LinkBinding is a Binding with no backing storage; the related instance is
// derived and fetched on every Resolve call.
type LinkBinding interface {
	Binding
	Resolve(ctx context.Context, obj *Object) (*Object, error)
}

// Base is the zero Property. Embed it when building custom properties; its
// Install fails until overridden.
type Base struct{}

// Install fails with an unsupported issue. Concrete properties override it
// to return the binding the owning type should record.
func (Base) Install(attrName string) (Binding, error) {
	return nil, Issues{{
		Path:    "/" + attrName,
		Code:    CodeUnsupported,
		Message: "property does not install an attribute",
		Hint:    "override Install on the embedding property",
	}}
}
