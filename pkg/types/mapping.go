package types

// CategoryDef is one named bucket in a category mapping: a folder name and
// the set of file extensions routed into it. Extensions are stored
// normalized (lowercase, leading dot).
type CategoryDef struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// Contains reports whether the category lists the given extension.
// The caller is expected to pass a normalized extension.
func (c CategoryDef) Contains(ext string) bool {
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Mapping is an ordered category list. Order is significant: when an
// extension appears in more than one category, the earliest category wins
// at classification time.
type Mapping []CategoryDef

// Clone returns a deep copy of the mapping. Snapshots handed to preset
// storage must never alias the live slices.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for i, c := range m {
		out[i] = CategoryDef{
			Name:       c.Name,
			Extensions: append([]string(nil), c.Extensions...),
		}
	}
	return out
}

// Names returns the category names in mapping order.
func (m Mapping) Names() []string {
	names := make([]string, len(m))
	for i, c := range m {
		names[i] = c.Name
	}
	return names
}
