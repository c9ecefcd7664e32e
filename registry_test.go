package wirefield_test

import (
	"testing"

	wirefield "github.com/reoring/wirefield"
	"github.com/reoring/wirefield/field"
)

func TestRegistry_TypeByNameUnknown(t *testing.T) {
	reg := wirefield.NewRegistry()
	_, err := reg.TypeByName("Nope")
	iss, ok := wirefield.AsIssues(err)
	if !ok || iss[0].Code != wirefield.CodeUnknownType {
		t.Fatalf("expected unknown_type, got %v", err)
	}
}

func TestRegistry_SameNameOverwrites(t *testing.T) {
	reg := wirefield.NewRegistry()
	reg.MustRegister(wirefield.NewType("Thing").
		Declare("name", field.New()))
	second := reg.MustRegister(wirefield.NewType("Thing").
		Declare("name", field.New()).
		Declare("extra", field.New()))

	got, err := reg.TypeByName("Thing")
	if err != nil {
		t.Fatalf("lookup err: %v", err)
	}
	if got != second {
		t.Fatalf("expected the later registration to win")
	}
}

func TestRegistry_RejectsDoubleRegistration(t *testing.T) {
	reg := wirefield.NewRegistry()
	thing := reg.MustRegister(wirefield.NewType("Thing").
		Declare("name", field.New()))
	if err := reg.Register(thing); err == nil {
		t.Fatalf("expected re-registering the same type value to fail")
	}
}
