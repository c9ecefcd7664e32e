package field_test

import (
	"context"
	"testing"

	wirefield "github.com/reoring/wirefield"
	"github.com/reoring/wirefield/field"
)

// install declares f under name without going through a registry, for
// exercising a field in isolation.
func install(t *testing.T, p wirefield.Property, name string) wirefield.FieldBinding {
	t.Helper()
	b, err := p.Install(name)
	if err != nil {
		t.Fatalf("install err: %v", err)
	}
	fb, ok := b.(wirefield.FieldBinding)
	if !ok {
		t.Fatalf("binding %T is not a field binding", b)
	}
	return fb
}

func newObj() *wirefield.Object {
	return wirefield.NewType("Holder").New(nil)
}

func TestField_IdentityRoundTrip(t *testing.T) {
	f := field.New()
	ctx := context.Background()

	for _, v := range []any{"foo", 4, true, 3.5} {
		got, err := f.Decode(ctx, v)
		if err != nil {
			t.Fatalf("decode err: %v", err)
		}
		if got != v {
			t.Fatalf("decode changed value: %v != %v", got, v)
		}
		got, err = f.Encode(ctx, v)
		if err != nil {
			t.Fatalf("encode err: %v", err)
		}
		if got != v {
			t.Fatalf("encode changed value: %v != %v", got, v)
		}
	}
}

func TestField_WireNameOnly(t *testing.T) {
	fb := install(t, field.New(field.WireName("foo-bar-baz")), "fooBarBaz")
	ctx := context.Background()

	obj := newObj()
	if err := fb.DecodeInto(ctx, map[string]any{"foo-bar-baz": "wurfledurf", "fooBarBaz": "wrong"}, obj); err != nil {
		t.Fatalf("decode into err: %v", err)
	}
	if got := obj.Get("fooBarBaz"); got != "wurfledurf" {
		t.Fatalf("attribute decoded from wrong key: %v", got)
	}

	out := map[string]any{}
	if err := fb.EncodeInto(ctx, obj, out); err != nil {
		t.Fatalf("encode into err: %v", err)
	}
	if out["foo-bar-baz"] != "wurfledurf" {
		t.Fatalf("wire key missing: %v", out)
	}
	if _, ok := out["fooBarBaz"]; ok {
		t.Fatalf("attribute name leaked into wire dict: %v", out)
	}
}

func TestField_DefaultNeverMasksPresentValue(t *testing.T) {
	fb := install(t, field.New(field.Default(7)), "n")
	ctx := context.Background()

	obj := newObj()
	if err := fb.DecodeInto(ctx, map[string]any{"n": 5}, obj); err != nil {
		t.Fatalf("decode into err: %v", err)
	}
	if got := obj.Get("n"); got != 5 {
		t.Fatalf("present value lost to default: %v", got)
	}
}

func TestField_DefaultOnAbsentAndNull(t *testing.T) {
	ctx := context.Background()

	for name, data := range map[string]map[string]any{
		"absent": {},
		"null":   {"n": nil},
	} {
		fb := install(t, field.New(field.Default(7)), "n")
		obj := newObj()
		if err := fb.DecodeInto(ctx, data, obj); err != nil {
			t.Fatalf("%s: decode into err: %v", name, err)
		}
		if got := obj.Get("n"); got != 7 {
			t.Fatalf("%s: default not applied: %v", name, got)
		}
	}
}

func TestField_DefaultBy(t *testing.T) {
	called := 0
	fn := func(obj *wirefield.Object, data map[string]any) (any, error) {
		if obj == nil || data == nil {
			t.Fatalf("default func got nil arguments")
		}
		called++
		return "CHEEZBURGH", nil
	}
	ctx := context.Background()

	fb := install(t, field.New(field.DefaultBy(fn)), "s")
	obj := newObj()
	if err := fb.DecodeInto(ctx, map[string]any{"s": "omg hi"}, obj); err != nil {
		t.Fatalf("decode into err: %v", err)
	}
	if obj.Get("s") != "omg hi" || called != 0 {
		t.Fatalf("default func ran for a present value")
	}

	obj = newObj()
	if err := fb.DecodeInto(ctx, map[string]any{}, obj); err != nil {
		t.Fatalf("decode into err: %v", err)
	}
	if obj.Get("s") != "CHEEZBURGH" || called != 1 {
		t.Fatalf("default func not applied: %v (called %d)", obj.Get("s"), called)
	}
}

func TestField_EncodeIntoOmitsAbsent(t *testing.T) {
	fb := install(t, field.New(), "name")
	ctx := context.Background()

	out := map[string]any{}
	if err := fb.EncodeInto(ctx, newObj(), out); err != nil {
		t.Fatalf("encode into err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("absent attribute serialized: %v", out)
	}

	obj := newObj()
	obj.Set("name", nil)
	if err := fb.EncodeInto(ctx, obj, out); err != nil {
		t.Fatalf("encode into err: %v", err)
	}
	if _, ok := out["name"]; ok {
		t.Fatalf("nil attribute serialized as null entry: %v", out)
	}
}

func TestField_DecodeIntoAlwaysSetsAttribute(t *testing.T) {
	fb := install(t, field.New(), "name")
	ctx := context.Background()

	obj := newObj()
	if err := fb.DecodeInto(ctx, map[string]any{}, obj); err != nil {
		t.Fatalf("decode into err: %v", err)
	}
	v, ok := obj.Lookup("name")
	if !ok {
		t.Fatalf("attribute does not exist after decode")
	}
	if v != nil {
		t.Fatalf("unset attribute has value %v", v)
	}
}

func TestBase_InstallUnsupported(t *testing.T) {
	_, err := wirefield.Base{}.Install("anything")
	if err == nil {
		t.Fatalf("expected install to fail")
	}
	iss, ok := wirefield.AsIssues(err)
	if !ok || iss[0].Code != wirefield.CodeUnsupported {
		t.Fatalf("expected unsupported issue, got %v", err)
	}
}
