// Package organize implements the scan-classify-move-cleanup sequence
// that sorts a directory's files into category subfolders.
package organize

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"clair/internal/category"
	"clair/internal/errors"
	"clair/internal/log"
	"clair/pkg/types"
)

// Options controls a single organize run.
type Options struct {
	Recursive    bool        // descend into subfolders instead of direct children only
	DeleteEmpty  bool        // remove emptied subfolders afterwards (needs Recursive)
	DryRun       bool        // classify and plan, touch nothing on disk
	IgnoreHidden bool        // skip dotfiles and dot-directories
	MaxDepth     int         // max directory depth below the root, 0 = unlimited
	Ignore       []glob.Glob // base-name patterns to leave alone
}

// Engine performs organize runs against a category store. The store is
// read-only for the duration of a run; concurrent runs against the same
// directory are not supported and must be serialized by the caller.
type Engine struct {
	store *category.Store
}

// New creates an engine bound to a category store.
func New(store *category.Store) *Engine {
	return &Engine{store: store}
}

// Organize runs the scan-classify-move-cleanup sequence over dir and
// returns a fresh report. Per-file failures are collected in the report
// rather than aborting the run; only an unusable target directory or a
// cancelled context ends the run early.
func (e *Engine) Organize(ctx context.Context, dir string, opts Options) (*types.Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot access directory", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Newf("not a directory: %s", dir)
	}
	dir = filepath.Clean(dir)

	report := types.NewReport()

	// Destination folders are resolved from current category names, so a
	// rename since the last run simply yields a new folder.
	destDirs := make(map[string]bool)
	for _, name := range append(e.store.Names(), category.OtherName) {
		destDirs[filepath.Join(dir, name)] = true
	}

	files, subdirs := e.collect(dir, destDirs, opts, report)

	// Destinations taken earlier in the same run. Keeps collision probing
	// honest in dry runs, where nothing lands on disk between files.
	claimed := make(map[string]bool)

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		e.moveOne(dir, src, opts, claimed, report)
	}

	if opts.Recursive && opts.DeleteEmpty && !opts.DryRun {
		e.removeEmptyDirs(subdirs, destDirs, report)
	}

	log.LogWithFields(
		log.F("directory", dir),
		log.F("moved", report.TotalMoved()),
		log.F("skipped", report.Skipped),
		log.F("errors", len(report.Errors)),
	).Info("Organize run finished")
	return report, nil
}

// collect enumerates the source files for the run and, when recursing,
// the subdirectories eligible for the cleanup pass. Category destination
// folders are never source entries themselves, but with Recursive on
// their contents are scanned like any other subfolder.
func (e *Engine) collect(dir string, destDirs map[string]bool, opts Options, report *types.Report) (files, subdirs []string) {
	if !opts.Recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot read directory", dir, err))
			return nil, nil
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if opts.IgnoreHidden && isHidden(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}
		return files, nil
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot read entry", path, err))
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if d.IsDir() {
			if opts.IgnoreHidden && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depth > opts.MaxDepth {
				return filepath.SkipDir
			}
			if !destDirs[path] {
				subdirs = append(subdirs, path)
			}
			return nil
		}
		if opts.IgnoreHidden && isHidden(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		report.Errors = append(report.Errors, errors.NewFileError("scan aborted", dir, walkErr))
	}
	return files, subdirs
}

// moveOne classifies a single file and moves it into its category folder,
// resolving name collisions with a numeric suffix. Files already in the
// right place are no-ops.
func (e *Engine) moveOne(root, src string, opts Options, claimed map[string]bool, report *types.Report) {
	name := filepath.Base(src)

	for _, g := range opts.Ignore {
		if g.Match(name) {
			report.Skipped++
			return
		}
	}

	cat := e.store.Lookup(extensionOf(name))
	destDir := filepath.Join(root, cat)
	if filepath.Dir(src) == destDir {
		report.Skipped++
		return
	}

	if !opts.DryRun {
		if err := os.MkdirAll(destDir, 0755); err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot create category folder", destDir, err))
			return
		}
	}

	dest, renamed, err := resolveCollision(filepath.Join(destDir, name), claimed)
	if err != nil {
		report.Errors = append(report.Errors, err)
		report.Skipped++
		return
	}

	if !opts.DryRun {
		if err := os.Rename(src, dest); err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot move file", src, err))
			return
		}
	}
	claimed[dest] = true

	report.AddMove(types.MoveRecord{
		Source:      src,
		Destination: dest,
		Category:    cat,
		Renamed:     renamed,
		Planned:     opts.DryRun,
	})
	log.LogWithFields(log.F("from", src), log.F("to", dest), log.F("category", cat)).Debug("Moved file")
}

// removeEmptyDirs walks the scanned subdirectories bottom-up and removes
// the ones the run emptied. Deeper directories go first, so a parent left
// holding only emptied children is removed in the same pass. Category
// destination folders are never touched.
func (e *Engine) removeEmptyDirs(subdirs []string, destDirs map[string]bool, report *types.Report) {
	sort.Slice(subdirs, func(i, j int) bool {
		di := strings.Count(subdirs[i], string(filepath.Separator))
		dj := strings.Count(subdirs[j], string(filepath.Separator))
		if di != dj {
			return di > dj
		}
		return subdirs[i] > subdirs[j]
	})

	for _, d := range subdirs {
		if destDirs[d] {
			continue
		}
		entries, err := os.ReadDir(d)
		if err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot read subfolder", d, err))
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err != nil {
			report.Errors = append(report.Errors, errors.NewFileError("cannot remove empty subfolder", d, err))
			continue
		}
		report.RemovedDirs++
		log.LogWithFields(log.F("directory", d)).Debug("Removed empty subfolder")
	}
}

// extensionOf returns the lowercased extension of a file name, or "" for
// extensionless names and bare dotfiles.
func extensionOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == strings.ToLower(name) {
		return ""
	}
	return ext
}

// resolveCollision finds a free destination path. An occupied path gets a
// numeric suffix before the extension: "a.txt" becomes "a (1).txt", then
// "a (2).txt", and so on. A path counts as occupied when it exists on
// disk or was already handed out earlier in the run.
func resolveCollision(dest string, claimed map[string]bool) (string, bool, error) {
	occupied, err := destOccupied(dest, claimed)
	if err != nil {
		return "", false, err
	}
	if !occupied {
		return dest, false, nil
	}

	dir, name := filepath.Split(dest)
	stem, suffix := name, ""
	if ext := extensionOf(name); ext != "" {
		stem = name[:len(name)-len(ext)]
		suffix = name[len(name)-len(ext):]
	}

	for n := 1; n <= 1000; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, suffix))
		occupied, err := destOccupied(candidate, claimed)
		if err != nil {
			return "", false, err
		}
		if !occupied {
			return candidate, true, nil
		}
	}
	return "", false, errors.NewFileError("no free name after 1000 attempts", dest, nil)
}

func destOccupied(path string, claimed map[string]bool) (bool, error) {
	if claimed[path] {
		return true, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewFileError("cannot check destination", path, err)
	}
	return true, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
