// Package schemafile loads declarative type definitions from YAML documents
// into a wirefield.Registry, so wire schemas can live next to the service
// configuration instead of in Go source.
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/wirefield"
	"github.com/reoring/wirefield/field"
)

// File is the top-level schema document.
type File struct {
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one type. Extends must name a type declared earlier in
// the same document or already registered.
type TypeDef struct {
	Name    string     `yaml:"name"`
	Extends string     `yaml:"extends"`
	Fields  []FieldDef `yaml:"fields"`
}

// FieldDef declares one property. Kind selects the field family; the
// remaining keys apply per kind.
type FieldDef struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`    // simple (default), constant, timestamp, list, map, object, link
	Wire    string    `yaml:"wire"`    // wire key override
	Default any       `yaml:"default"` // simple fields
	Value   any       `yaml:"value"`   // constant fields
	Element *FieldDef `yaml:"element"` // list/map element (defaults to simple)
	Target  string    `yaml:"target"`  // object/link target type name
	Rel     string    `yaml:"rel"`     // link relative name override
}

// Load parses a YAML schema document and registers every declared type into
// reg, in document order.
func Load(reg *wirefield.Registry, b []byte) error {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: "invalid schema document", Cause: err}}
	}
	for _, td := range f.Types {
		if td.Name == "" {
			return wirefield.Issues{{Path: "/types", Code: wirefield.CodeParseError, Message: "type declaration without a name"}}
		}
		t := wirefield.NewType(td.Name)
		if td.Extends != "" {
			parent, err := reg.TypeByName(td.Extends)
			if err != nil {
				return wirefield.RebaseIssues("/types/"+td.Name+"/extends", err)
			}
			t.Extends(parent)
		}
		for _, fd := range td.Fields {
			if fd.Name == "" {
				return wirefield.Issues{{Path: "/types/" + td.Name, Code: wirefield.CodeParseError, Message: "field declaration without a name"}}
			}
			p, err := buildProperty(fd)
			if err != nil {
				return wirefield.RebaseIssues("/types/"+td.Name+"/"+fd.Name, err)
			}
			t.Declare(fd.Name, p)
		}
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads path and loads it with Load.
func LoadFile(reg *wirefield.Registry, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: "reading schema file", Cause: err}}
	}
	return Load(reg, b)
}

func buildProperty(fd FieldDef) (wirefield.Property, error) {
	switch fd.Kind {
	case "link":
		if fd.Target == "" {
			return nil, wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: "link field requires a target"}}
		}
		var opts []field.LinkOption
		if fd.Rel != "" {
			opts = append(opts, field.Rel(fd.Rel))
		}
		return field.NewLinkNamed(fd.Target, opts...), nil
	case "constant":
		if fd.Value == nil {
			return nil, wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: "constant field requires a value"}}
		}
		return field.NewConstant(fd.Value, fieldOptions(fd)...), nil
	default:
		return buildField(fd)
	}
}

// buildField handles the kinds representable as a plain *field.Field, so
// list and map elements can recurse through it.
func buildField(fd FieldDef) (*field.Field, error) {
	opts := fieldOptions(fd)
	switch fd.Kind {
	case "", "simple":
		return field.New(opts...), nil
	case "timestamp":
		return field.NewTimestamp(opts...), nil
	case "list", "map":
		elem := FieldDef{Kind: "simple"}
		if fd.Element != nil {
			elem = *fd.Element
		}
		ef, err := buildField(elem)
		if err != nil {
			return nil, err
		}
		if fd.Kind == "map" {
			return field.NewMap(ef, opts...), nil
		}
		return field.NewList(ef, opts...), nil
	case "object":
		if fd.Target == "" {
			return nil, wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: "object field requires a target"}}
		}
		return field.NewObjectNamed(fd.Target, opts...), nil
	case "constant", "link":
		return nil, wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: fmt.Sprintf("%s fields cannot be used as elements", fd.Kind)}}
	default:
		return nil, wirefield.Issues{{Path: "/", Code: wirefield.CodeParseError, Message: fmt.Sprintf("unknown field kind %q", fd.Kind)}}
	}
}

func fieldOptions(fd FieldDef) []field.Option {
	var opts []field.Option
	if fd.Wire != "" {
		opts = append(opts, field.WireName(fd.Wire))
	}
	if fd.Default != nil {
		opts = append(opts, field.Default(fd.Default))
	}
	return opts
}
