// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { runs.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, d.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "a burst must run once")
}

func TestDebouncer_RearmsAfterFiring(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { runs.Add(1) })

	d.Trigger()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { runs.Add(1) })

	d.Trigger()
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestIsHidden(t *testing.T) {
	root := filepath.Join("/", "books", "novel")
	tests := []struct {
		path string
		want bool
	}{
		{path: root, want: false},
		{path: filepath.Join(root, "ch1", "ch1.md"), want: false},
		{path: filepath.Join(root, ".git", "index"), want: true},
		{path: filepath.Join(root, "ch1", ".ch1.md.swp"), want: true},
		{path: filepath.Join(root, ".Book.md.tmp-123"), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isHidden(root, tt.path))
		})
	}
}

func TestIgnoreOutputs(t *testing.T) {
	out := t.TempDir()
	ignore := IgnoreOutputs(out, "Book")

	assert.True(t, ignore(filepath.Join(out, "Book.md")))
	assert.True(t, ignore(filepath.Join(out, "Book.docx")))
	assert.False(t, ignore(filepath.Join(out, "ch1", "ch1.md")))
	assert.False(t, ignore(filepath.Join(t.TempDir(), "Book.md")))
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ch1"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	var runs atomic.Int32
	w, err := New(Options{
		Root:     root,
		Interval: 50 * time.Millisecond,
		Ignore:   IgnoreOutputs(root, "Book"),
	}, func() { runs.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Initial run without any change.
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Own outputs and hidden files do not trigger.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Book.md"), []byte("merged"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	// A chapter edit does.
	require.NoError(t, os.WriteFile(filepath.Join(root, "ch1", "ch1.md"), []byte("A"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	// New chapter directories are picked up.
	require.NoError(t, os.Mkdir(filepath.Join(root, "ch2"), 0o755))
	require.Eventually(t, func() bool { return runs.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ch2", "ch2.md"), []byte("B"), 0o644))
	assert.Eventually(t, func() bool { return runs.Load() == 4 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "nope"), Interval: time.Millisecond}, func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}
