package wirefield

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher retrieves the resource of type t at location. Link bindings
// delegate to it; the registry itself performs no I/O.
type Fetcher interface {
	Fetch(ctx context.Context, t *Type, location string) (*Object, error)
}

// Registry holds the declared types of a process by name, plus the
// discriminator table populated by constant fields. It is an explicit
// object passed by reference, not ambient state: writes happen during
// static type setup and are mutex-guarded so concurrent package
// initialization stays safe; reads after setup take the read lock only.
type Registry struct {
	mu        sync.RWMutex
	types     map[string]*Type
	constants map[string]map[any]string // attr name -> fixed value -> type name
	fetcher   Fetcher
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:     map[string]*Type{},
		constants: map[string]map[any]string{},
	}
}

// Register installs and owner-binds every property declared on t, then
// records t under its name. Registering another type under the same name
// later replaces the entry, which is how forward references pick up the
// leafmost declaration.
func (r *Registry) Register(t *Type) error {
	if t.reg != nil {
		return Issues{{
			Path:    "/",
			Code:    CodeUnsupported,
			Message: fmt.Sprintf("type %q is already registered", t.name),
		}}
	}
	bindings := make(map[string]Binding, len(t.decls))
	for _, d := range t.decls {
		b, err := d.prop.Install(d.name)
		if err != nil {
			return RebaseIssues("/"+t.name, err)
		}
		bindings[d.name] = b
	}
	t.reg = r
	t.bindings = bindings

	r.mu.Lock()
	r.types[t.name] = t
	r.mu.Unlock()

	// Owner-bind after the type is resolvable so constant fields can reach
	// the discriminator table through the owner.
	for _, d := range t.decls {
		bindings[d.name].BindOwner(t)
	}
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// declaration sites evaluated at package initialization.
func (r *Registry) MustRegister(t *Type) *Type {
	if err := r.Register(t); err != nil {
		panic(err)
	}
	return t
}

// TypeByName returns the type currently registered under name. Because
// same-name registrations overwrite, this is always the most-derived
// declaration seen so far.
func (r *Registry) TypeByName(name string) (*Type, error) {
	r.mu.RLock()
	t := r.types[name]
	r.mu.RUnlock()
	if t == nil {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeUnknownType,
			Message: fmt.Sprintf("no type registered under %q", name),
		}}
	}
	return t, nil
}

// RegisterConstant records that typeName declares the fixed value for the
// given attribute name. Re-registering the same (attr, value) pair silently
// overwrites: last declaration wins.
func (r *Registry) RegisterConstant(attr string, value any, typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.constants[attr]
	if m == nil {
		m = map[any]string{}
		r.constants[attr] = m
	}
	m[value] = typeName
}

// TypeForConstant answers polymorphic dispatch: which type declared the
// given fixed value for the attribute name?
func (r *Registry) TypeForConstant(attr string, value any) (*Type, error) {
	r.mu.RLock()
	name, ok := r.constants[attr][value]
	r.mu.RUnlock()
	if !ok {
		return nil, Issues{{
			Path:    "/" + attr,
			Code:    CodeUnknownType,
			Message: fmt.Sprintf("no type declares constant %v for %q", value, attr),
		}}
	}
	return r.TypeByName(name)
}

// SetFetcher installs the fetch collaborator used by link resolution.
func (r *Registry) SetFetcher(f Fetcher) {
	r.mu.Lock()
	r.fetcher = f
	r.mu.Unlock()
}

// Fetcher returns the installed fetch collaborator, or nil.
func (r *Registry) Fetcher() Fetcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fetcher
}
