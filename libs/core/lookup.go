package core

// Lookup is the binding registry: an ordered multi-map from service
// identifier to the bindings registered for it. Insertion order is
// preserved per key and across keys; order decides tie-breaks for
// multi-injection results. A key never maps to an empty sequence:
// removing the last binding deletes the key.
type Lookup struct {
	entries map[ServiceIdentifier][]*Binding
	keys    []ServiceIdentifier
}

// NewLookup creates an empty registry
func NewLookup() *Lookup {
	return &Lookup{
		entries: make(map[ServiceIdentifier][]*Binding),
	}
}

// Add appends a binding under a key, preserving registration order
func (l *Lookup) Add(key ServiceIdentifier, binding *Binding) {
	if _, ok := l.entries[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.entries[key] = append(l.entries[key], binding)
}

// Get returns the bindings registered for a key
func (l *Lookup) Get(key ServiceIdentifier) ([]*Binding, error) {
	bindings, ok := l.entries[key]
	if !ok {
		return nil, &NotRegisteredError{ServiceIdentifier: key}
	}
	return bindings, nil
}

// HasKey reports whether any binding is registered for a key
func (l *Lookup) HasKey(key ServiceIdentifier) bool {
	_, ok := l.entries[key]
	return ok
}

// Remove deletes every binding registered for a key
func (l *Lookup) Remove(key ServiceIdentifier) error {
	if _, ok := l.entries[key]; !ok {
		return &NotRegisteredError{ServiceIdentifier: key}
	}
	delete(l.entries, key)
	l.dropKey(key)
	return nil
}

// RemoveByCondition deletes the individual bindings matching the predicate
// across all keys, pruning keys left empty, and returns the removed
// bindings
func (l *Lookup) RemoveByCondition(condition func(binding *Binding) bool) []*Binding {
	var removed []*Binding
	remaining := l.keys[:0]
	for _, key := range l.keys {
		kept := make([]*Binding, 0, len(l.entries[key]))
		for _, b := range l.entries[key] {
			if condition(b) {
				removed = append(removed, b)
			} else {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(l.entries, key)
		} else {
			l.entries[key] = kept
			remaining = append(remaining, key)
		}
	}
	l.keys = remaining
	return removed
}

// Traverse visits every (key, bindings) pair in insertion order
func (l *Lookup) Traverse(visit func(key ServiceIdentifier, bindings []*Binding)) {
	for _, key := range l.keys {
		visit(key, l.entries[key])
	}
}

// Clone deep-copies the registry; every binding is cloned with a fresh
// identity so mutations to the clone never reach the original
func (l *Lookup) Clone() *Lookup {
	clone := NewLookup()
	l.Traverse(func(key ServiceIdentifier, bindings []*Binding) {
		for _, b := range bindings {
			clone.Add(key, b.Clone())
		}
	})
	return clone
}

func (l *Lookup) dropKey(key ServiceIdentifier) {
	for i, k := range l.keys {
		if k == key {
			l.keys = append(l.keys[:i], l.keys[i+1:]...)
			return
		}
	}
}
