package core

// Canonical tag keys used by the planner. NamedTag backs GetNamed and
// WhenTargetNamed, OptionalTag marks a dependency that may be missing, and
// MultiInjectTag marks a dependency resolved as a slice of every matching
// binding.
const (
	NamedTag       = "named"
	OptionalTag    = "optional"
	MultiInjectTag = "multi_inject"
)

// Metadata is a single tag attached to an injection target
type Metadata struct {
	Key   string
	Value interface{}
}

// isCanonicalTag reports whether the key is reserved by the runtime
func isCanonicalTag(key string) bool {
	return key == NamedTag || key == OptionalTag || key == MultiInjectTag
}
