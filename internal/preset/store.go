// Package preset implements named snapshots of category mappings and
// their JSON persistence.
package preset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"clair/internal/category"
	"clair/internal/errors"
	"clair/internal/log"
	"clair/pkg/types"
)

// DefaultName is the built-in preset holding the default mapping. It
// always exists, is never written to disk, and cannot be overwritten,
// renamed, or deleted.
const DefaultName = "Default"

// Preset is a named, frozen copy of a category mapping.
type Preset struct {
	Name       string        `json:"name"`
	Categories types.Mapping `json:"categories"`
}

// PersistFunc is the auto-save sink invoked after every successful
// mutation.
type PersistFunc func(*Store) error

// Store holds the ordered preset list. Which preset is "active" is the
// caller's state, not the store's. Not safe for concurrent use.
type Store struct {
	presets []Preset
	persist PersistFunc
}

// NewStore creates a store containing only the built-in Default preset.
func NewStore() *Store {
	return &Store{
		presets: []Preset{{Name: DefaultName, Categories: category.DefaultMapping()}},
	}
}

// SetPersist installs the auto-save sink.
func (s *Store) SetPersist(fn PersistFunc) {
	s.persist = fn
}

func (s *Store) autosave() {
	if s.persist == nil {
		return
	}
	if err := s.persist(s); err != nil {
		log.LogWithFields(log.F("error", err)).Warn("Failed to persist presets")
	}
}

func (s *Store) indexOf(name string) int {
	for i, p := range s.presets {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// Names returns the preset names in order, the built-in Default first.
func (s *Store) Names() []string {
	names := make([]string, len(s.presets))
	for i, p := range s.presets {
		names[i] = p.Name
	}
	return names
}

// Put stores a deep copy of the snapshot under name, overwriting an
// existing preset of that name or appending a new one. Whether the user
// confirmed an overwrite is the caller's concern.
func (s *Store) Put(name string, snapshot types.Mapping) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("preset name cannot be empty")
	}
	if strings.EqualFold(name, DefaultName) {
		return errors.NewReserved(name)
	}
	frozen := snapshot.Clone()
	if i := s.indexOf(name); i >= 0 {
		s.presets[i].Categories = frozen
	} else {
		s.presets = append(s.presets, Preset{Name: name, Categories: frozen})
	}
	s.autosave()
	return nil
}

// Get returns a deep copy of the named preset's mapping.
func (s *Store) Get(name string) (types.Mapping, error) {
	i := s.indexOf(name)
	if i < 0 {
		return nil, errors.NewNotFound(name)
	}
	return s.presets[i].Categories.Clone(), nil
}

// Rename changes a preset's name, keeping its position and snapshot.
func (s *Store) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("preset name cannot be empty")
	}
	if strings.EqualFold(oldName, DefaultName) || strings.EqualFold(newName, DefaultName) {
		return errors.NewReserved(DefaultName)
	}
	i := s.indexOf(oldName)
	if i < 0 {
		return errors.NewNotFound(oldName)
	}
	if j := s.indexOf(newName); j >= 0 && j != i {
		return errors.NewDuplicateName(newName)
	}
	s.presets[i].Name = newName
	s.autosave()
	return nil
}

// Delete removes a preset.
func (s *Store) Delete(name string) error {
	if strings.EqualFold(name, DefaultName) {
		return errors.NewReserved(DefaultName)
	}
	i := s.indexOf(name)
	if i < 0 {
		return errors.NewNotFound(name)
	}
	s.presets = append(s.presets[:i], s.presets[i+1:]...)
	s.autosave()
	return nil
}

// fileSchema is the on-disk shape of the presets file. The built-in
// Default preset is never written.
type fileSchema struct {
	Presets []Preset `json:"presets"`
}

// Load reads the presets file at path. Missing file: store keeps just the
// built-in Default. Malformed file: user presets are discarded and a
// ConfigFormat error is returned.
func (s *Store) Load(path string) error {
	s.presets = []Preset{{Name: DefaultName, Categories: category.DefaultMapping()}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewFileError("cannot read presets file", path, err)
	}

	var schema fileSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return errors.NewConfigFormat("malformed presets file", err)
	}

	seen := map[string]bool{strings.ToLower(DefaultName): true}
	var loaded []Preset
	for _, p := range schema.Presets {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return errors.NewConfigFormat("invalid presets file", errors.New("preset with empty name"))
		}
		if seen[strings.ToLower(name)] {
			return errors.NewConfigFormat("invalid presets file", errors.Newf("duplicate preset name %q", name))
		}
		seen[strings.ToLower(name)] = true
		cats, err := category.NormalizeMapping(p.Categories)
		if err != nil {
			return errors.NewConfigFormat("invalid presets file", errors.Wrapf(err, "preset %q", name))
		}
		loaded = append(loaded, Preset{Name: name, Categories: cats})
	}
	s.presets = append(s.presets, loaded...)
	return nil
}

// Save writes the user presets to path as indented JSON.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError("cannot create config directory", filepath.Dir(path), err)
	}
	schema := fileSchema{Presets: []Preset{}}
	for _, p := range s.presets {
		if strings.EqualFold(p.Name, DefaultName) {
			continue
		}
		schema.Presets = append(schema.Presets, Preset{Name: p.Name, Categories: p.Categories.Clone()})
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode presets")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.NewFileError("cannot write presets file", path, err)
	}
	return nil
}
