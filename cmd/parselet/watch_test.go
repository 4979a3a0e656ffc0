package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ava12/parselet/internal/printer"
)

func TestIsUpdate(t *testing.T) {
	watched := map[string]bool{filepath.Join("dir", "a.txt"): true}
	samples := []struct {
		name     string
		op       fsnotify.Op
		expected bool
	}{
		{"dir/a.txt", fsnotify.Write, true},
		{"dir/a.txt", fsnotify.Create, true},
		{"dir/./a.txt", fsnotify.Write | fsnotify.Chmod, true},
		{"dir/a.txt", fsnotify.Rename, false},
		{"dir/a.txt", fsnotify.Remove, false},
		{"dir/a.txt", fsnotify.Chmod, false},
		{"dir/b.txt", fsnotify.Create, false},
	}

	for _, s := range samples {
		event := fsnotify.Event{Name: filepath.FromSlash(s.name), Op: s.op}
		assert.Equal(t, s.expected, isUpdate(event, watched), "%s %s", s.op, s.name)
	}
}

func TestWatchReplacedFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(name, []byte("1+2"), 0o644))

	core, logs := observer.New(zap.InfoLevel)
	a := &app{
		grammarFile: "testdata/arith.yaml",
		width:       printer.DefaultWidth,
		logger:      zap.New(core),
		out:         io.Discard,
		errOut:      io.Discard,
	}
	r, err := a.newParseRun(parseFlags{jobs: 1, quiet: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- r.watch(ctx, []string{name})
	}()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("watching files").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)

	tmp := filepath.Join(dir, "sample.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("1+"), 0o644))
	require.NoError(t, os.Rename(tmp, name))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("file parsed").Len() > 0
	}, 5*time.Second, 10*time.Millisecond)
	entry := logs.FilterMessage("file parsed").All()[0]
	assert.Equal(t, int64(1), entry.ContextMap()["failed"])

	cancel()
	require.NoError(t, <-done)
}

func TestWatchStdin(t *testing.T) {
	a := &app{grammarFile: "testdata/arith.yaml", logger: zap.NewNop(), out: io.Discard, errOut: io.Discard}
	r, err := a.newParseRun(parseFlags{jobs: 1})
	require.NoError(t, err)
	assert.EqualError(t, r.watch(context.Background(), []string{stdinName}), "cannot watch standard input")
}
