package field

import (
	"context"
	"fmt"
	"net/url"

	"github.com/reoring/wirefield"
)

// LocationFunc derives the location of a link target from the owning
// instance and the link's relative name. Supplying one via DeriveLocation
// replaces relative-URL joining entirely, for APIs whose link structure is
// not a simple join.
type LocationFunc func(obj *wirefield.Object, rel string) (string, error)

// LinkOption configures a link at declaration time.
type LinkOption func(*Link)

// Rel sets the relative name resolved against the owner's location. When
// unset, the attribute name the link was declared under is used.
func Rel(rel string) LinkOption {
	return func(l *Link) { l.rel = rel }
}

// DeriveLocation replaces the location-derivation algorithm.
func DeriveLocation(fn LocationFunc) LinkOption {
	return func(l *Link) { l.locFn = fn }
}

// Link is a read-only computed relation between instances: related content
// that is not part of the owning object but lives at a location derived
// from it. Nothing is stored on the instance; every Resolve derives the
// location again and fetches through the registry's fetcher.
type Link struct {
	target     *wirefield.Type
	targetName string
	rel        string
	attr       string
	owner      *wirefield.Type
	locFn      LocationFunc
}

var (
	_ wirefield.Property    = (*Link)(nil)
	_ wirefield.LinkBinding = (*Link)(nil)
)

// NewLink returns a link to instances of target.
func NewLink(target *wirefield.Type, opts ...LinkOption) *Link {
	l := &Link{target: target}
	for _, o := range opts {
		o(l)
	}
	return l
}

// NewLinkNamed returns a link whose target type is resolved by name against
// the owning type's registry on every Resolve, under the same leafmost-wins
// rule as NewObjectNamed.
func NewLinkNamed(name string, opts ...LinkOption) *Link {
	l := &Link{targetName: name}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Install records the declared attribute name; the relative name defaults
// to it.
func (l *Link) Install(attrName string) (wirefield.Binding, error) {
	l.attr = attrName
	if l.rel == "" {
		l.rel = attrName
	}
	return l, nil
}

// AttrName reports the attribute name the link was installed under.
func (l *Link) AttrName() string { return l.attr }

// BindOwner records the declaring type.
func (l *Link) BindOwner(owner *wirefield.Type) {
	l.owner = owner
}

// Resolve derives the target's location from the owning instance and
// fetches it through the registry's fetcher. An instance with no known
// location is a usage error, not missing data.
func (l *Link) Resolve(ctx context.Context, obj *wirefield.Object) (*wirefield.Object, error) {
	target, err := l.resolveTarget(obj)
	if err != nil {
		return nil, err
	}
	if obj.Location() == "" {
		return nil, wirefield.Issues{{
			Path:    "/" + l.attr,
			Code:    wirefield.CodeMissingLocation,
			Message: fmt.Sprintf("cannot locate %s relative to location-less %s", target.Name(), obj.Type().Name()),
		}}
	}
	loc, err := l.location(obj)
	if err != nil {
		return nil, err
	}
	f := l.fetcher(obj)
	if f == nil {
		return nil, wirefield.Issues{{
			Path:    "/" + l.attr,
			Code:    wirefield.CodeUnsupported,
			Message: "no fetcher configured on the registry",
			Hint:    "call Registry.SetFetcher before resolving links",
		}}
	}
	return f.Fetch(ctx, target, loc)
}

func (l *Link) resolveTarget(obj *wirefield.Object) (*wirefield.Type, error) {
	if l.target != nil {
		return l.target, nil
	}
	reg := l.registry(obj)
	if reg == nil {
		return nil, wirefield.Issues{{
			Path:    "/" + l.attr,
			Code:    wirefield.CodeUnknownType,
			Message: fmt.Sprintf("cannot resolve type %q without a registry", l.targetName),
		}}
	}
	t, err := reg.TypeByName(l.targetName)
	if err != nil {
		return nil, wirefield.RebaseIssues("/"+l.attr, err)
	}
	return t, nil
}

// location joins the relative name against the owner's location per the
// standard relative-reference rules, unless a LocationFunc replaces the
// derivation.
func (l *Link) location(obj *wirefield.Object) (string, error) {
	if l.locFn != nil {
		return l.locFn(obj, l.rel)
	}
	base, err := url.Parse(obj.Location())
	if err != nil {
		return "", wirefield.Issues{{
			Path:    "/" + l.attr,
			Code:    wirefield.CodeMissingLocation,
			Message: fmt.Sprintf("location %q of %s is not a valid URL", obj.Location(), obj.Type().Name()),
			Cause:   err,
		}}
	}
	ref, err := url.Parse(l.rel)
	if err != nil {
		return "", wirefield.Issues{{
			Path:    "/" + l.attr,
			Code:    wirefield.CodeMissingLocation,
			Message: fmt.Sprintf("relative name %q is not a valid URL reference", l.rel),
			Cause:   err,
		}}
	}
	return base.ResolveReference(ref).String(), nil
}

func (l *Link) registry(obj *wirefield.Object) *wirefield.Registry {
	if l.owner != nil && l.owner.Registry() != nil {
		return l.owner.Registry()
	}
	return obj.Type().Registry()
}

func (l *Link) fetcher(obj *wirefield.Object) wirefield.Fetcher {
	if reg := l.registry(obj); reg != nil {
		return reg.Fetcher()
	}
	return nil
}
