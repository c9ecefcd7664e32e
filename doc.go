package wirefield

// Package wirefield converts between flat, untyped wire dictionaries and
// typed in-memory object graphs using declarative field properties.
//
// - Types are declared once, as named sets of field properties, and
//   registered into an explicit Registry (no ambient globals)
// - Each property owns its bidirectional conversion (DecodeInto/EncodeInto),
//   wire-name aliasing, and default policy
// - Object targets may be given by name for forward and self references;
//   resolution happens on every call, so the leafmost registration wins
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep lifecycle (Type/Object/Registry) in the root package; put the
//   field properties under field/, schema loading under schemafile/, the
//   fetch collaborator under transport/, and the CLI under cmd/wirefield.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	reg := wirefield.NewRegistry()
//	event := reg.MustRegister(wirefield.NewType("Event").
//		Declare("name", field.New()).
//		Declare("when", field.NewTimestamp()))
//
//	obj, err := wirefield.FromJSON(ctx, event, data)
//	out, err := wirefield.ToJSON(ctx, obj)
