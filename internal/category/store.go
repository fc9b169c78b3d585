// Package category implements the ordered category → extension mapping
// that drives file classification, including its JSON persistence.
package category

import (
	"strings"

	"clair/internal/errors"
	"clair/internal/log"
	"clair/pkg/types"
)

// OtherName is the synthetic fallback bucket for unmatched extensions.
// It is not a stored category: it cannot be added, removed, or renamed,
// and it always exists at classification time.
const OtherName = "Other"

// PersistFunc is the auto-save sink invoked after every successful
// mutation. Persist failures are reported but never roll back the
// in-memory change.
type PersistFunc func(*Store) error

// Store holds the ordered category list. Order is the classification
// tie-break: the first category listing an extension wins. A Store is not
// safe for concurrent use; callers serialize access.
type Store struct {
	cats    types.Mapping
	known   []string // user-added extensions beyond the built-in palette
	persist PersistFunc
}

// DefaultMapping returns the built-in category mapping.
func DefaultMapping() types.Mapping {
	return types.Mapping{
		{Name: "Documents", Extensions: []string{".pdf", ".docx", ".doc", ".txt", ".xlsx", ".pptx"}},
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"}},
		{Name: "Videos", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".flv"}},
		{Name: "Music", Extensions: []string{".mp3", ".wav", ".aac", ".flac"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".rar", ".7z"}},
	}
}

// NewStore creates a store populated with the built-in default mapping.
func NewStore() *Store {
	return &Store{cats: DefaultMapping()}
}

// SetPersist installs the auto-save sink.
func (s *Store) SetPersist(fn PersistFunc) {
	s.persist = fn
}

// autosave fires the persist sink after a mutation. Failures are logged
// and otherwise ignored; the mutation stands.
func (s *Store) autosave() {
	if s.persist == nil {
		return
	}
	if err := s.persist(s); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("Failed to persist categories")
	}
}

// NormalizeExt lowercases an extension and ensures a leading dot.
func NormalizeExt(raw string) string {
	ext := strings.ToLower(strings.TrimSpace(raw))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (s *Store) indexOf(name string) int {
	for i, c := range s.cats {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Categories returns a deep copy of the current mapping, in order.
func (s *Store) Categories() types.Mapping {
	return s.cats.Clone()
}

// Names returns the category names in classification order.
func (s *Store) Names() []string {
	return s.cats.Names()
}

// Add appends an empty category. Name uniqueness is case-insensitive and
// the synthetic fallback name is reserved.
func (s *Store) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name cannot be empty")
	}
	if strings.EqualFold(name, OtherName) {
		return errors.NewReserved(name)
	}
	if s.indexOf(name) >= 0 {
		return errors.NewDuplicateName(name)
	}
	s.cats = append(s.cats, types.CategoryDef{Name: name, Extensions: []string{}})
	s.autosave()
	return nil
}

// Remove deletes a category and its extension associations. Files already
// moved into its folder are unaffected.
func (s *Store) Remove(name string) error {
	i := s.indexOf(name)
	if i < 0 {
		return errors.NewNotFound(name)
	}
	s.cats = append(s.cats[:i], s.cats[i+1:]...)
	s.autosave()
	return nil
}

// Rename changes a category's name in place, preserving its extensions and
// its position in classification order. The on-disk folder from earlier
// runs is not renamed; folder names are resolved at organize time.
func (s *Store) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("category name cannot be empty")
	}
	if strings.EqualFold(newName, OtherName) {
		return errors.NewReserved(newName)
	}
	i := s.indexOf(oldName)
	if i < 0 {
		return errors.NewNotFound(oldName)
	}
	if j := s.indexOf(newName); j >= 0 && j != i {
		return errors.NewDuplicateName(newName)
	}
	s.cats[i].Name = newName
	s.autosave()
	return nil
}

// SetExtensionEnabled adds or removes an extension on a category. The
// extension is normalized first; add and remove are both idempotent.
func (s *Store) SetExtensionEnabled(name, rawExt string, enabled bool) error {
	i := s.indexOf(name)
	if i < 0 {
		return errors.NewNotFound(name)
	}
	ext := NormalizeExt(rawExt)
	if ext == "" {
		return errors.New("extension cannot be empty")
	}

	cat := &s.cats[i]
	if enabled {
		if cat.Contains(ext) {
			return nil
		}
		if owner := s.Lookup(ext); owner != OtherName {
			log.LogWithFields(log.F("extension", ext), log.F("category", owner)).
				Warn("Extension mapped in multiple categories; first in order wins")
		}
		cat.Extensions = append(cat.Extensions, ext)
	} else {
		found := false
		for j, e := range cat.Extensions {
			if e == ext {
				cat.Extensions = append(cat.Extensions[:j], cat.Extensions[j+1:]...)
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	s.autosave()
	return nil
}

// Lookup classifies a normalized extension: the first category in order
// that lists it wins, otherwise the fallback bucket.
func (s *Store) Lookup(ext string) string {
	for _, c := range s.cats {
		if c.Contains(ext) {
			return c.Name
		}
	}
	return OtherName
}

// Snapshot returns a deep copy of the mapping suitable for preset storage.
func (s *Store) Snapshot() types.Mapping {
	return s.cats.Clone()
}

// Restore replaces the whole mapping with a deep copy of m, e.g. when a
// preset is loaded.
func (s *Store) Restore(m types.Mapping) {
	s.cats = m.Clone()
	s.autosave()
}

// KnownExtensions returns the extension palette: everything listed by the
// built-in defaults plus user-added extensions, deduplicated, in palette
// order. The TUI renders its toggles from this list.
func (s *Store) KnownExtensions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range DefaultMapping() {
		for _, e := range c.Extensions {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	for _, e := range s.known {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// AddKnownExtension adds a user extension to the palette. Extensions
// already known, either built-in or user-added, are rejected.
func (s *Store) AddKnownExtension(rawExt string) error {
	ext := NormalizeExt(rawExt)
	if ext == "" {
		return errors.New("extension cannot be empty")
	}
	for _, e := range s.KnownExtensions() {
		if e == ext {
			return errors.NewDuplicateName(ext)
		}
	}
	s.known = append(s.known, ext)
	s.autosave()
	return nil
}
