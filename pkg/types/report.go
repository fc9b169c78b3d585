package types

import (
	"fmt"
	"sort"
	"strings"
)

// MoveRecord holds the outcome of an organization attempt for a single file.
type MoveRecord struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Category    string `json:"category"`
	Renamed     bool   `json:"renamed,omitempty"` // destination got a collision suffix
	Planned     bool   `json:"planned,omitempty"` // dry run, nothing touched on disk
}

// Report summarizes one organize run: what moved where, what was left
// alone, which emptied folders were removed, and every per-file error that
// was contained instead of aborting the run. A Report is created fresh per
// run and never persisted.
type Report struct {
	Moves           []MoveRecord   `json:"moves"`
	MovedByCategory map[string]int `json:"moved_by_category"`
	Skipped         int            `json:"skipped"`
	RemovedDirs     int            `json:"removed_dirs"`
	Errors          []error        `json:"-"`
}

// NewReport returns an empty report ready to accumulate results.
func NewReport() *Report {
	return &Report{
		MovedByCategory: make(map[string]int),
	}
}

// AddMove records a completed (or planned) move under its category.
func (r *Report) AddMove(rec MoveRecord) {
	r.Moves = append(r.Moves, rec)
	r.MovedByCategory[rec.Category]++
}

// TotalMoved returns the number of files moved (or planned, in a dry run).
func (r *Report) TotalMoved() int {
	return len(r.Moves)
}

// Summary renders a one-line human readable digest of the run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "moved %d", r.TotalMoved())
	if len(r.MovedByCategory) > 0 {
		cats := make([]string, 0, len(r.MovedByCategory))
		for name := range r.MovedByCategory {
			cats = append(cats, name)
		}
		sort.Strings(cats)
		parts := make([]string, len(cats))
		for i, name := range cats {
			parts[i] = fmt.Sprintf("%s: %d", name, r.MovedByCategory[name])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, ", skipped %d", r.Skipped)
	if r.RemovedDirs > 0 {
		fmt.Fprintf(&b, ", removed %d empty folders", r.RemovedDirs)
	}
	fmt.Fprintf(&b, ", %d errors", len(r.Errors))
	return b.String()
}
