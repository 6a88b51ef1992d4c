package crfsuite

import "sort"

// Alphabet holds the "<id>: <name>" entries of a LABELS or ATTRIBUTES
// section, keyed by the ids written in the dump.
type Alphabet struct {
	ids   map[string]int
	names map[int]string
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		ids:   make(map[string]int),
		names: make(map[int]string),
	}
}

// Set records name under id. A later entry for the same id or name replaces
// the earlier one.
func (a *Alphabet) Set(id int, name string) {
	if old, ok := a.names[id]; ok {
		delete(a.ids, old)
	}
	if old, ok := a.ids[name]; ok {
		delete(a.names, old)
	}
	a.ids[name] = id
	a.names[id] = name
}

// ID returns the dump id of name, or -1 if it is unknown.
func (a *Alphabet) ID(name string) int {
	if id, ok := a.ids[name]; ok {
		return id
	}
	return -1
}

// Name returns the entry stored under id.
func (a *Alphabet) Name(id int) (string, bool) {
	name, ok := a.names[id]
	return name, ok
}

// Names returns every name in ascending id order.
func (a *Alphabet) Names() []string {
	ids := make([]int, 0, len(a.names))
	for id := range a.names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = a.names[id]
	}
	return out
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.names)
}
