package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestNewFileWatcher(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.NotNil(t, watcher.watcher)
	assert.NotNil(t, watcher.debouncer)
	assert.Empty(t, watcher.filters)
	assert.Empty(t, watcher.handlers)
}

func TestFileWatcherAddFilter(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	watcher.AddFilter(MarkdownFilter)
	assert.Len(t, watcher.filters, 1)

	watcher.AddFilter(NoHiddenFilter)
	assert.Len(t, watcher.filters, 2)
}

func TestFileWatcherAddHandler(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	handlerCalled := false
	handler := func(events []ChangeEvent) error {
		handlerCalled = true
		return nil
	}

	watcher.AddHandler(handler)
	assert.Len(t, watcher.handlers, 1)

	watcher.mutex.RLock()
	for _, h := range watcher.handlers {
		h([]ChangeEvent{{Type: EventTypeCreated, Path: "01-hello.md"}})
	}
	watcher.mutex.RUnlock()

	assert.True(t, handlerCalled)
}

func TestFileWatcherAddPath(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()

	err = watcher.AddPath(tempDir)
	assert.NoError(t, err)

	err = watcher.AddPath(filepath.Join(tempDir, "missing"))
	assert.Error(t, err)
}

func TestFileWatcherStartStop(t *testing.T) {
	watcher, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()

	err = watcher.AddPath(tempDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var eventReceived bool
	var eventMutex sync.Mutex

	watcher.AddFilter(MarkdownFilter)
	watcher.AddHandler(func(events []ChangeEvent) error {
		eventMutex.Lock()
		eventReceived = true
		eventMutex.Unlock()
		return nil
	})

	err = watcher.Start(ctx)
	require.NoError(t, err)

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)

	noteFile := filepath.Join(tempDir, "01-hello.md")
	err = os.WriteFile(noteFile, []byte("# Hello\n"), 0644)
	require.NoError(t, err)

	// Wait for debouncing and event processing
	time.Sleep(200 * time.Millisecond)

	eventMutex.Lock()
	received := eventReceived
	eventMutex.Unlock()

	assert.True(t, received)

	cancel()
	err = watcher.Stop()
	assert.NoError(t, err)
}

func TestFileWatcherFiltersNonMarkdown(t *testing.T) {
	watcher, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()

	err = watcher.AddPath(tempDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var eventCount int
	var eventMutex sync.Mutex

	watcher.AddFilter(MarkdownFilter)
	watcher.AddHandler(func(events []ChangeEvent) error {
		eventMutex.Lock()
		eventCount += len(events)
		eventMutex.Unlock()
		return nil
	})

	err = watcher.Start(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	err = os.WriteFile(filepath.Join(tempDir, "scratch.txt"), []byte("not a note"), 0644)
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)

	eventMutex.Lock()
	count := eventCount
	eventMutex.Unlock()

	assert.Zero(t, count)
}

func TestMarkdownFilter(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"01-hello.md", true},
		{"notes/02-guessing-game.md", true},
		{"main.go", false},
		{"notes.markdown", false},
		{"style.css", false},
		{"test", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			result := MarkdownFilter(tc.path)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestNoHiddenFilter(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"01-hello.md", true},
		{"notes/01-hello.md", true},
		{"./notes/01-hello.md", true},
		{".git/config", false},
		{"notes/.drafts/01-hello.md", false},
		{"notes/.01-hello.md.swp", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			result := NoHiddenFilter(tc.path)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestExcludeFilter(t *testing.T) {
	filter := ExcludeFilter([]string{"README.md", "*.draft.md"})

	testCases := []struct {
		path     string
		expected bool
	}{
		{"01-hello.md", true},
		{"README.md", false},
		{"notes/README.md", false},
		{"notes/03-variables.draft.md", false},
		{"notes/03-variables.md", true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			result := filter(tc.path)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDebouncer(t *testing.T) {
	debouncer := &Debouncer{
		delay:   50 * time.Millisecond,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go debouncer.start(ctx)

	var receivedEvents [][]ChangeEvent
	var eventMutex sync.Mutex

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case events := <-debouncer.output:
				eventMutex.Lock()
				receivedEvents = append(receivedEvents, events)
				eventMutex.Unlock()
			}
		}
	}()

	// Send multiple events quickly
	debouncer.events <- ChangeEvent{Path: "01-hello.md", Type: EventTypeModified}
	debouncer.events <- ChangeEvent{Path: "01-hello.md", Type: EventTypeModified}
	debouncer.events <- ChangeEvent{Path: "02-guessing-game.md", Type: EventTypeModified}

	// Wait for debouncing
	time.Sleep(150 * time.Millisecond)

	eventMutex.Lock()
	finalEvents := receivedEvents
	eventMutex.Unlock()

	assert.Greater(t, len(finalEvents), 0)
	if len(finalEvents) > 0 {
		// Duplicate 01-hello.md events collapse into one
		assert.LessOrEqual(t, len(finalEvents[0]), 2)
	}
}

func TestChangeEvent(t *testing.T) {
	now := time.Now()
	event := ChangeEvent{
		Type:    EventTypeModified,
		Path:    "/notes/01-hello.md",
		ModTime: now,
		Size:    1024,
	}

	assert.Equal(t, EventTypeModified, event.Type)
	assert.Equal(t, "/notes/01-hello.md", event.Path)
	assert.Equal(t, now, event.ModTime)
	assert.Equal(t, int64(1024), event.Size)
}

func TestFileWatcherValidation(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	err = watcher.AddPath("../../../etc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "path")

	err = watcher.AddPath("")
	assert.Error(t, err)

	err = watcher.AddRecursive("../../../etc")
	assert.Error(t, err)
}

func TestFileWatcherConcurrency(t *testing.T) {
	watcher, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()

	err = watcher.AddPath(tempDir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var eventCount int
	var eventMutex sync.Mutex

	watcher.AddFilter(MarkdownFilter)
	watcher.AddHandler(func(events []ChangeEvent) error {
		eventMutex.Lock()
		eventCount += len(events)
		eventMutex.Unlock()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = watcher.Start(ctx)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			noteFile := filepath.Join(tempDir, fmt.Sprintf("%02d-note.md", i))
			err := os.WriteFile(noteFile, []byte("# Note\n"), 0644)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	// Wait for all events to be processed
	time.Sleep(200 * time.Millisecond)

	eventMutex.Lock()
	finalCount := eventCount
	eventMutex.Unlock()

	// Exact count varies with debounce batching
	assert.Greater(t, finalCount, 0)
	assert.LessOrEqual(t, finalCount, 10)
}

func TestFileWatcherErrorHandling(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)

	err = watcher.Stop()
	assert.NoError(t, err)
	err = watcher.Stop()
	assert.NoError(t, err)
}

func TestAddRecursive(t *testing.T) {
	watcher, err := NewFileWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "extra")
	hiddenDir := filepath.Join(tempDir, ".drafts")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	require.NoError(t, os.MkdirAll(hiddenDir, 0755))

	err = watcher.AddRecursive(tempDir)
	assert.NoError(t, err)

	watched := watcher.watcher.WatchList()
	assert.Contains(t, watched, filepath.Clean(tempDir))
	assert.Contains(t, watched, subDir)
	assert.NotContains(t, watched, hiddenDir)
}

func TestAddRecursiveSeesSubdirectoryChanges(t *testing.T) {
	watcher, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer watcher.Stop()

	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "extra")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	err = watcher.AddRecursive(tempDir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []ChangeEvent
	var eventMutex sync.Mutex

	watcher.AddFilter(MarkdownFilter)
	watcher.AddHandler(func(events []ChangeEvent) error {
		eventMutex.Lock()
		got = append(got, events...)
		eventMutex.Unlock()
		return nil
	})

	err = watcher.Start(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	noteFile := filepath.Join(subDir, "10-deep.md")
	require.NoError(t, os.WriteFile(noteFile, []byte("# Deep\n"), 0644))

	time.Sleep(200 * time.Millisecond)

	eventMutex.Lock()
	defer eventMutex.Unlock()
	require.NotEmpty(t, got)
	assert.Equal(t, noteFile, got[0].Path)
}
