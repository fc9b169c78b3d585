package category

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"clair/internal/errors"
	"clair/internal/log"
	"clair/pkg/types"
)

// fileSchema is the on-disk shape of the categories file. The category
// list is an ordered array so that classification order survives the
// round trip; known_extensions carries the user's extension palette.
type fileSchema struct {
	Categories      []types.CategoryDef `json:"categories"`
	KnownExtensions []string            `json:"known_extensions"`
}

// Load reads the categories file at path. A missing file is not an error:
// the store keeps the built-in defaults and writes them out. A malformed
// file resets the store to defaults and returns a ConfigFormat error so
// the caller can tell the user; the store is never left undefined.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cats = DefaultMapping()
			s.known = nil
			if saveErr := s.Save(path); saveErr != nil {
				log.LogWithFields(log.F("path", path), log.F("error", saveErr)).
					Warn("Failed to write default categories file")
			}
			return nil
		}
		return errors.NewFileError("cannot read categories file", path, err)
	}

	var schema fileSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		s.cats = DefaultMapping()
		s.known = nil
		return errors.NewConfigFormat("malformed categories file", err)
	}
	cats, err := NormalizeMapping(schema.Categories)
	if err != nil {
		s.cats = DefaultMapping()
		s.known = nil
		return errors.NewConfigFormat("invalid categories file", err)
	}

	s.cats = cats
	s.known = nil
	for _, e := range schema.KnownExtensions {
		s.known = append(s.known, NormalizeExt(e))
	}
	warnDuplicateExtensions(s.cats)
	return nil
}

// Save writes the store to path as indented JSON, creating parent
// directories as needed. The file stays hand-editable.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewFileError("cannot create config directory", filepath.Dir(path), err)
	}
	schema := fileSchema{
		Categories:      s.cats.Clone(),
		KnownExtensions: append([]string(nil), s.known...),
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode categories")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.NewFileError("cannot write categories file", path, err)
	}
	return nil
}

// NormalizeMapping checks and normalizes a raw category list coming from
// user-edited JSON: names trimmed, non-empty, not the reserved Other
// bucket, unique case-insensitively; extensions lowercased with a leading
// dot and deduplicated within each category. Both the categories file and
// the preset mappings go through this before entering a store.
func NormalizeMapping(raw []types.CategoryDef) (types.Mapping, error) {
	seen := make(map[string]bool)
	out := make(types.Mapping, 0, len(raw))
	for _, c := range raw {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, errors.New("category with empty name")
		}
		if strings.EqualFold(name, OtherName) {
			return nil, errors.Newf("category name %q is reserved", name)
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			return nil, errors.Newf("duplicate category name %q", name)
		}
		seen[lower] = true

		exts := make([]string, 0, len(c.Extensions))
		for _, e := range c.Extensions {
			if strings.TrimSpace(e) == "" {
				return nil, errors.Newf("category %q lists an empty extension", name)
			}
			ext := NormalizeExt(e)
			dup := false
			for _, have := range exts {
				if have == ext {
					dup = true
					break
				}
			}
			if !dup {
				exts = append(exts, ext)
			}
		}
		out = append(out, types.CategoryDef{Name: name, Extensions: exts})
	}
	return out, nil
}

// warnDuplicateExtensions logs extensions claimed by more than one
// category. This is allowed; the first category in order wins.
func warnDuplicateExtensions(m types.Mapping) {
	owner := make(map[string]string)
	for _, c := range m {
		for _, e := range c.Extensions {
			if first, ok := owner[e]; ok {
				log.LogWithFields(
					log.F("extension", e),
					log.F("first", first),
					log.F("also", c.Name),
				).Warn("Extension mapped in multiple categories; first in order wins")
				continue
			}
			owner[e] = c.Name
		}
	}
}
