package field_test

import (
	"context"
	"testing"

	wirefield "github.com/reoring/wirefield"
	"github.com/reoring/wirefield/field"
)

func TestObject_DecodeDirectTarget(t *testing.T) {
	reg := wirefield.NewRegistry()
	child := reg.MustRegister(wirefield.NewType("Childer").
		Declare("name", field.New()))
	parent := reg.MustRegister(wirefield.NewType("Parentish").
		Declare("name", field.New()).
		Declare("child", field.NewObject(child)))
	ctx := context.Background()

	p, err := parent.FromDict(ctx, map[string]any{
		"name":  "the parent",
		"child": map[string]any{"name": "fredina"},
	})
	if err != nil {
		t.Fatalf("from dict err: %v", err)
	}
	c, ok := p.Get("child").(*wirefield.Object)
	if !ok {
		t.Fatalf("child is %T, not an object", p.Get("child"))
	}
	if c.Type() != child || c.Get("name") != "fredina" {
		t.Fatalf("child decoded wrong: %v", c.Get("name"))
	}
}

func TestObject_ForwardReference(t *testing.T) {
	reg := wirefield.NewRegistry()
	holder := reg.MustRegister(wirefield.NewType("Holder").
		Declare("item", field.NewObjectNamed("Item")))
	ctx := context.Background()

	// Item is not declared yet: decoding must fail with unknown_type.
	_, err := holder.FromDict(ctx, map[string]any{"item": map[string]any{}})
	iss, ok := wirefield.AsIssues(err)
	if !ok || iss[0].Code != wirefield.CodeUnknownType {
		t.Fatalf("expected unknown_type, got %v", err)
	}

	reg.MustRegister(wirefield.NewType("Item").
		Declare("name", field.New()))

	h, err := holder.FromDict(ctx, map[string]any{"item": map[string]any{"name": "late"}})
	if err != nil {
		t.Fatalf("from dict err: %v", err)
	}
	item := h.Get("item").(*wirefield.Object)
	if item.Get("name") != "late" {
		t.Fatalf("forward-referenced item decoded wrong: %v", item.Get("name"))
	}
}

func TestObject_LeafmostRegistrationWins(t *testing.T) {
	reg := wirefield.NewRegistry()
	holder := reg.MustRegister(wirefield.NewType("Holder").
		Declare("item", field.NewObjectNamed("Item")))
	first := reg.MustRegister(wirefield.NewType("Item").
		Declare("name", field.New()))
	ctx := context.Background()

	h, err := holder.FromDict(ctx, map[string]any{"item": map[string]any{}})
	if err != nil {
		t.Fatalf("from dict err: %v", err)
	}
	if h.Get("item").(*wirefield.Object).Type() != first {
		t.Fatalf("expected first Item registration")
	}

	// A replacement registered under the same name takes over without the
	// field being redeclared.
	second := reg.MustRegister(wirefield.NewType("Item").
		Declare("name", field.New()).
		Declare("extra", field.New(field.Default("x"))))

	h, err = holder.FromDict(ctx, map[string]any{"item": map[string]any{}})
	if err != nil {
		t.Fatalf("from dict err: %v", err)
	}
	item := h.Get("item").(*wirefield.Object)
	if item.Type() != second {
		t.Fatalf("resolution cached a stale type")
	}
	if item.Get("extra") != "x" {
		t.Fatalf("replacement type's fields not in effect: %v", item.Get("extra"))
	}
}

func TestObject_SelfReferenceThreeDeep(t *testing.T) {
	reg := wirefield.NewRegistry()
	reflexive := reg.MustRegister(wirefield.NewType("Reflexive").
		Declare("itself", field.NewObjectNamed("Reflexive")).
		Declare("themselves", field.NewList(field.NewObjectNamed("Reflexive"))))
	ctx := context.Background()

	r, err := reflexive.FromDict(ctx, map[string]any{
		"itself": map[string]any{
			"itself": map[string]any{
				"itself": map[string]any{},
			},
		},
		"themselves": []any{
			map[string]any{}, map[string]any{}, map[string]any{},
		},
	})
	if err != nil {
		t.Fatalf("from dict err: %v", err)
	}

	level := r
	for i := 0; i < 3; i++ {
		next, ok := level.Get("itself").(*wirefield.Object)
		if !ok {
			t.Fatalf("level %d: itself is %T", i, level.Get("itself"))
		}
		if next.Type() != reflexive {
			t.Fatalf("level %d: wrong type %s", i, next.Type().Name())
		}
		level = next
	}
	them, ok := r.Get("themselves").([]any)
	if !ok || len(them) != 3 {
		t.Fatalf("themselves decoded wrong: %v", r.Get("themselves"))
	}
	if _, ok := them[0].(*wirefield.Object); !ok {
		t.Fatalf("list element is %T, not an object", them[0])
	}
}

func TestObject_RejectsNonDictionary(t *testing.T) {
	reg := wirefield.NewRegistry()
	child := reg.MustRegister(wirefield.NewType("Childer").
		Declare("name", field.New()))
	f := field.NewObject(child)
	ctx := context.Background()

	_, err := f.Decode(ctx, true)
	iss, ok := wirefield.AsIssues(err)
	if !ok || iss[0].Code != wirefield.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}

	_, err = f.Encode(ctx, "not an object")
	iss, ok = wirefield.AsIssues(err)
	if !ok || iss[0].Code != wirefield.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestObject_EncodeDelegatesToInstance(t *testing.T) {
	reg := wirefield.NewRegistry()
	child := reg.MustRegister(wirefield.NewType("Childer").
		Declare("name", field.New()))
	f := field.NewObject(child)
	ctx := context.Background()

	wire, err := f.Encode(ctx, child.New(map[string]any{"name": "jeff"}))
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	m, ok := wire.(map[string]any)
	if !ok || m["name"] != "jeff" {
		t.Fatalf("encode delegated wrong: %v", wire)
	}
}
