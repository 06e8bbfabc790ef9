package core

// TargetType identifies the kind of injection point a Target describes
type TargetType int

const (
	// TargetConstructorArgument is a positional constructor dependency
	TargetConstructorArgument TargetType = iota
	// TargetVariable is a top-level lookup (a direct Get* call)
	TargetVariable
)

// Target describes a single injection point: the service identifier it
// requests plus the tag metadata narrowing which bindings are eligible.
// Targets are produced by the injectable registry for constructor
// parameters, and synthesized by the container for top-level lookups.
type Target struct {
	Type              TargetType
	Name              string
	ServiceIdentifier ServiceIdentifier
	Metadata          []Metadata
}

// Inject creates a constructor-argument dependency descriptor
//
//	core.RegisterInjectable(NewNinja,
//	    core.Inject("Weapon").Named("strong"),
//	    core.InjectAll("Shuriken"),
//	)
func Inject(id ServiceIdentifier) *Target {
	return &Target{
		Type:              TargetConstructorArgument,
		ServiceIdentifier: id,
	}
}

// InjectAll creates a multi-injection descriptor: the dependency resolves to
// a slice holding every matching binding, in registration order
func InjectAll(id ServiceIdentifier) *Target {
	t := Inject(id)
	t.Metadata = append(t.Metadata, Metadata{Key: MultiInjectTag, Value: true})
	return t
}

// Named restricts the dependency to bindings constrained with WhenTargetNamed
func (t *Target) Named(name interface{}) *Target {
	t.Metadata = append(t.Metadata, Metadata{Key: NamedTag, Value: name})
	return t
}

// Tagged attaches a custom tag to the injection point
func (t *Target) Tagged(key string, value interface{}) *Target {
	t.Metadata = append(t.Metadata, Metadata{Key: key, Value: value})
	return t
}

// Optional marks the dependency as tolerating zero bindings; the argument
// resolves to the parameter's zero value when nothing matches
func (t *Target) Optional() *Target {
	t.Metadata = append(t.Metadata, Metadata{Key: OptionalTag, Value: true})
	return t
}

// WithName records the parameter name for diagnostics
func (t *Target) WithName(name string) *Target {
	t.Name = name
	return t
}

func (t *Target) getMetadata(key string) (interface{}, bool) {
	for _, m := range t.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// IsNamed reports whether the target carries the canonical named tag
func (t *Target) IsNamed() bool {
	_, ok := t.getMetadata(NamedTag)
	return ok
}

// IsTagged reports whether the target carries any non-canonical tag
func (t *Target) IsTagged() bool {
	for _, m := range t.Metadata {
		if !isCanonicalTag(m.Key) {
			return true
		}
	}
	return false
}

// IsOptional reports whether zero matching bindings is tolerated
func (t *Target) IsOptional() bool {
	v, ok := t.getMetadata(OptionalTag)
	return ok && v == true
}

// IsMultiInject reports whether the target resolves every matching binding
func (t *Target) IsMultiInject() bool {
	v, ok := t.getMetadata(MultiInjectTag)
	return ok && v == true
}

// GetNamedTag returns the value of the canonical named tag, if present
func (t *Target) GetNamedTag() (interface{}, bool) {
	return t.getMetadata(NamedTag)
}

// MatchesNamedTag reports whether the target is named with exactly name
func (t *Target) MatchesNamedTag(name interface{}) bool {
	v, ok := t.getMetadata(NamedTag)
	return ok && v == name
}

// MatchesTag reports whether the target carries tag key with exactly value
func (t *Target) MatchesTag(key string, value interface{}) bool {
	v, ok := t.getMetadata(key)
	return ok && v == value
}

// clone returns an independent copy so shared registry targets are never
// mutated during planning
func (t *Target) clone() *Target {
	md := make([]Metadata, len(t.Metadata))
	copy(md, t.Metadata)
	return &Target{
		Type:              t.Type,
		Name:              t.Name,
		ServiceIdentifier: t.ServiceIdentifier,
		Metadata:          md,
	}
}
