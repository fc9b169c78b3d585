package organize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clair/internal/category"
	"clair/internal/organize"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	}
}

func TestOrganizeDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "report.docx", "photo.png", "archive.zip", "notes")

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "report.docx"))
	assert.FileExists(t, filepath.Join(tmpDir, "Images", "photo.png"))
	assert.FileExists(t, filepath.Join(tmpDir, "Archives", "archive.zip"))
	assert.FileExists(t, filepath.Join(tmpDir, "Other", "notes"))

	assert.Equal(t, 4, report.TotalMoved())
	assert.Equal(t, 1, report.MovedByCategory["Documents"])
	assert.Equal(t, 1, report.MovedByCategory["Other"])
	assert.Empty(t, report.Errors)
	assert.Equal(t, 0, report.Skipped)
}

func TestExtensionHandling(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "LOUD.PDF", "song.tar.gz", ".bashrc")

	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "LOUD.PDF"), "extension match is case-insensitive")
	assert.FileExists(t, filepath.Join(tmpDir, "Archives", "song.tar.gz"), "only the final suffix counts")
	assert.FileExists(t, filepath.Join(tmpDir, "Other", ".bashrc"), "bare dotfiles have no extension")
}

func TestFirstCategoryWins(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "scan.pdf")

	store := category.NewStore()
	require.NoError(t, store.Add("Scans"))
	require.NoError(t, store.SetExtensionEnabled("Scans", ".pdf", true))

	engine := organize.New(store)
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "scan.pdf"), "lowest-index category wins")
	assert.NoFileExists(t, filepath.Join(tmpDir, "Scans", "scan.pdf"))
}

func TestIdempotence(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.pdf", "b.png", "c")

	engine := organize.New(category.NewStore())
	opts := organize.Options{Recursive: true}

	first, err := engine.Organize(context.Background(), tmpDir, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalMoved())

	second, err := engine.Organize(context.Background(), tmpDir, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalMoved(), "second run moves nothing")
	assert.Equal(t, 3, second.Skipped, "already-placed files are no-ops")
	assert.Empty(t, second.Errors)
}

func TestCollisionSuffix(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.txt", "Documents/a.txt", "Documents/a (1).txt")

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a (2).txt"))
	require.Len(t, report.Moves, 1)
	assert.True(t, report.Moves[0].Renamed)

	// Original occupants are untouched
	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a.txt"))
	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a (1).txt"))
}

func TestNonRecursiveLeavesSubfolders(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "top.pdf", "nested/deep.pdf")

	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "top.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "nested", "deep.pdf"), "subfolders untouched without recursion")
}

func TestRecursiveScanAndCleanup(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"top.pdf",
		"nested/song.mp3",
		"nested/inner/clip.mp4",
		"keep/stay.unknownext", // classifies to Other, so "keep" empties too
	)
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty", "hollow"), 0755))

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Recursive:   true,
		DeleteEmpty: true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "top.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "Music", "song.mp3"))
	assert.FileExists(t, filepath.Join(tmpDir, "Videos", "clip.mp4"))
	assert.FileExists(t, filepath.Join(tmpDir, "Other", "stay.unknownext"))

	// Emptied and pre-existing empty trees are gone, cascading upwards
	assert.NoDirExists(t, filepath.Join(tmpDir, "nested"))
	assert.NoDirExists(t, filepath.Join(tmpDir, "keep"))
	assert.NoDirExists(t, filepath.Join(tmpDir, "empty"))
	assert.Equal(t, 5, report.RemovedDirs)

	// Category folders survive the cleanup pass
	assert.DirExists(t, filepath.Join(tmpDir, "Documents"))
	assert.DirExists(t, filepath.Join(tmpDir, "Other"))
}

func TestCleanupKeepsOccupiedFolders(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "nested/a.pdf", "nested/.keepme")

	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Recursive:    true,
		DeleteEmpty:  true,
		IgnoreHidden: true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a.pdf"))
	assert.DirExists(t, filepath.Join(tmpDir, "nested"), "folders with remaining files stay")
}

func TestReclassifyAfterConfigChange(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "book.pdf")

	store := category.NewStore()
	engine := organize.New(store)
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(tmpDir, "Documents", "book.pdf"))

	// Reassign .pdf to a new category and re-run with recursion: the file
	// inside the old Documents folder is picked up again.
	require.NoError(t, store.SetExtensionEnabled("Documents", ".pdf", false))
	require.NoError(t, store.Add("Ebooks"))
	require.NoError(t, store.SetExtensionEnabled("Ebooks", ".pdf", true))

	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{Recursive: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(tmpDir, "Ebooks", "book.pdf"))
	assert.Equal(t, 1, report.TotalMoved())
}

func TestCategoryFolderContentsLeftAloneWithoutRecursion(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "Documents/old.png")

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "old.png"),
		"category folder contents are not sources when recursion is off")
	assert.Equal(t, 0, report.TotalMoved())
}

func TestDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.pdf", "b.png")

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalMoved())
	for _, rec := range report.Moves {
		assert.True(t, rec.Planned)
	}
	assert.FileExists(t, filepath.Join(tmpDir, "a.pdf"), "dry run must not move files")
	assert.NoDirExists(t, filepath.Join(tmpDir, "Documents"), "dry run must not create folders")
}

func TestDryRunCollisionPlanning(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, filepath.Join("a", "report.pdf"), filepath.Join("b", "report.pdf"))

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{Recursive: true, DryRun: true})
	require.NoError(t, err)

	require.Equal(t, 2, report.TotalMoved())
	dests := []string{report.Moves[0].Destination, report.Moves[1].Destination}
	assert.NotEqual(t, dests[0], dests[1], "two plans must not share a destination")
	assert.Contains(t, dests, filepath.Join(tmpDir, "Documents", "report.pdf"))
	assert.Contains(t, dests, filepath.Join(tmpDir, "Documents", "report (1).pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "a", "report.pdf"), "dry run must not move files")
}

func TestIgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "movie.mp4.part", "done.mp4")

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Ignore: []glob.Glob{glob.MustCompile("*.part")},
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "movie.mp4.part"), "ignored files stay put")
	assert.FileExists(t, filepath.Join(tmpDir, "Videos", "done.mp4"))
	assert.Equal(t, 1, report.Skipped)
}

func TestIgnoreHidden(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, ".hidden.pdf", "visible.pdf", ".git/objects/blob.txt")

	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Recursive:    true,
		IgnoreHidden: true,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, ".hidden.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, ".git", "objects", "blob.txt"), "hidden directories are skipped entirely")
	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "visible.pdf"))
}

func TestMaxDepth(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "one/a.pdf", "one/two/b.pdf")

	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Recursive: true,
		MaxDepth:  1,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a.pdf"))
	assert.FileExists(t, filepath.Join(tmpDir, "one", "two", "b.pdf"), "entries below max depth are untouched")
}

func TestErrorsAreContained(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.pdf", "b.png")

	// Occupy the Images destination path with a plain file so moving
	// b.png fails while a.pdf still succeeds. The blocker itself is
	// ignored so it is not treated as a source.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Images"), []byte("in the way"), 0644))

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(context.Background(), tmpDir, organize.Options{
		Ignore: []glob.Glob{glob.MustCompile("Images")},
	})
	require.NoError(t, err, "per-file failures must not abort the run")

	assert.FileExists(t, filepath.Join(tmpDir, "Documents", "a.pdf"))
	assert.NotEmpty(t, report.Errors)
	assert.Equal(t, 1, report.TotalMoved())
	assert.Equal(t, 1, report.Skipped)
}

func TestMissingDirectory(t *testing.T) {
	engine := organize.New(category.NewStore())
	_, err := engine.Organize(context.Background(), filepath.Join(t.TempDir(), "nope"), organize.Options{})
	assert.Error(t, err)
}

func TestCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.pdf", "b.png", "c.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := organize.New(category.NewStore())
	report, err := engine.Organize(ctx, tmpDir, organize.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.TotalMoved(), "cancelled before the first move")
}
