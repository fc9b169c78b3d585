package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clair/internal/category"
	"clair/internal/organize"
	"clair/internal/watch"
	"clair/pkg/types"
)

func TestNewRejectsMissingDirectory(t *testing.T) {
	engine := organize.New(category.NewStore())
	_, err := watch.New(engine, filepath.Join(t.TempDir(), "nope"), organize.Options{}, time.Second)
	assert.Error(t, err)
}

func TestNewRejectsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	engine := organize.New(category.NewStore())
	_, err := watch.New(engine, path, organize.Options{}, time.Second)
	assert.Error(t, err)
}

func TestWatchOrganizesNewFiles(t *testing.T) {
	tmpDir := t.TempDir()
	engine := organize.New(category.NewStore())

	w, err := watch.New(engine, tmpDir, organize.Options{}, 100*time.Millisecond)
	require.NoError(t, err)

	reports := make(chan *types.Report, 8)
	w.SetReportFunc(func(r *types.Report) { reports <- r })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register, then drop a file in.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "photo.png"), []byte("img"), 0644))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(tmpDir, "Images", "photo.png"))
		return err == nil
	}, 5*time.Second, 50*time.Millisecond, "dropped file should be organized")

	select {
	case r := <-reports:
		assert.Equal(t, 1, r.MovedByCategory["Images"])
	case <-time.After(5 * time.Second):
		t.Fatal("no report delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
