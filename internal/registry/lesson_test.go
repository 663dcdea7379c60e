package registry

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/amar-at-iitm/primer/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewLessonRegistry(t *testing.T) {
	registry := NewLessonRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.lessons)
	assert.NotNil(t, registry.watchers)
	assert.Equal(t, 0, registry.Count())
}

func TestLessonRegistry_Register(t *testing.T) {
	registry := NewLessonRegistry()

	lesson := &types.LessonInfo{
		Slug:     "variables",
		Title:    "Variables and Types",
		Chapter:  3,
		FilePath: "notes/03-variables.md",
		Hash:     "a1b2c3d4",
	}

	registry.Register(lesson)

	retrieved, exists := registry.Get("variables")
	assert.True(t, exists)
	assert.Equal(t, lesson, retrieved)

	assert.Equal(t, 1, registry.Count())

	all := registry.GetAll()
	assert.Len(t, all, 1)
	assert.Equal(t, lesson, all["variables"])
}

func TestLessonRegistry_RegisterNil(t *testing.T) {
	registry := NewLessonRegistry()

	registry.Register(nil)

	assert.Equal(t, 0, registry.Count())
}

func TestLessonRegistry_Update(t *testing.T) {
	registry := NewLessonRegistry()

	lesson := &types.LessonInfo{
		Slug:     "variables",
		Title:    "Variables and Types",
		Chapter:  3,
		FilePath: "notes/03-variables.md",
		Hash:     "a1b2c3d4",
	}
	registry.Register(lesson)

	updated := &types.LessonInfo{
		Slug:     "variables",
		Title:    "Variables, Types, and Constants",
		Chapter:  3,
		FilePath: "notes/03-variables.md",
		Hash:     "e5f6a7b8",
	}
	registry.Register(updated)

	retrieved, exists := registry.Get("variables")
	assert.True(t, exists)
	assert.Equal(t, updated, retrieved)

	// Count should still be 1
	assert.Equal(t, 1, registry.Count())
}

func TestLessonRegistry_RegisterSameHashEmitsNoEvent(t *testing.T) {
	registry := NewLessonRegistry()
	watcher := registry.Watch()
	defer registry.UnWatch(watcher)

	lesson := &types.LessonInfo{
		Slug: "variables",
		Hash: "a1b2c3d4",
	}
	registry.Register(lesson)

	// Drain the Added event
	select {
	case event := <-watcher:
		assert.Equal(t, types.EventTypeAdded, event.Type)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected lesson added event")
	}

	// Re-registering with the same hash must stay quiet
	rescanned := &types.LessonInfo{
		Slug:    "variables",
		Hash:    "a1b2c3d4",
		LastMod: time.Now(),
	}
	registry.Register(rescanned)

	select {
	case event := <-watcher:
		t.Fatalf("Expected no event for unchanged hash, got %v", event.Type)
	case <-time.After(20 * time.Millisecond):
	}

	// The stored entry is still refreshed
	retrieved, _ := registry.Get("variables")
	assert.Equal(t, rescanned, retrieved)
}

func TestLessonRegistry_Remove(t *testing.T) {
	registry := NewLessonRegistry()

	lesson := &types.LessonInfo{
		Slug: "variables",
		Hash: "a1b2c3d4",
	}
	registry.Register(lesson)

	_, exists := registry.Get("variables")
	assert.True(t, exists)
	assert.Equal(t, 1, registry.Count())

	registry.Remove("variables")

	_, exists = registry.Get("variables")
	assert.False(t, exists)
	assert.Equal(t, 0, registry.Count())

	// Removing an unknown slug is a no-op
	registry.Remove("variables")
	assert.Equal(t, 0, registry.Count())
}

func TestLessonRegistry_BySlug(t *testing.T) {
	registry := NewLessonRegistry()

	flow := &types.LessonInfo{Slug: "flow-control", Chapter: 2, Hash: "h1"}
	numbered := &types.LessonInfo{Slug: "09-error-handling", Chapter: 9, Hash: "h2"}
	registry.Register(flow)
	registry.Register(numbered)

	tests := []struct {
		name  string
		ref   string
		want  *types.LessonInfo
		found bool
	}{
		{name: "exact slug", ref: "flow-control", want: flow, found: true},
		{name: "chapter prefix", ref: "02-flow-control", want: flow, found: true},
		{name: "file name", ref: "flow-control.md", want: flow, found: true},
		{name: "prefixed file name", ref: "02-flow-control.md", want: flow, found: true},
		{name: "underscore prefix", ref: "02_flow-control", want: flow, found: true},
		{name: "stored slug carries prefix", ref: "error-handling", want: numbered, found: true},
		{name: "stored slug exact", ref: "09-error-handling", want: numbered, found: true},
		{name: "unknown", ref: "generics", found: false},
		{name: "empty", ref: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := registry.BySlug(tt.ref)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLessonRegistry_Sorted(t *testing.T) {
	registry := NewLessonRegistry()

	registry.Register(&types.LessonInfo{Slug: "error-handling", Chapter: 9, Hash: "h1"})
	registry.Register(&types.LessonInfo{Slug: "hello", Chapter: 1, Hash: "h2"})
	registry.Register(&types.LessonInfo{Slug: "variables", Chapter: 3, Hash: "h3"})
	registry.Register(&types.LessonInfo{Slug: "appendix", Chapter: 9, Hash: "h4"})

	sorted := registry.Sorted()

	var slugs []string
	for _, lesson := range sorted {
		slugs = append(slugs, lesson.Slug)
	}

	want := []string{"hello", "variables", "appendix", "error-handling"}
	if diff := cmp.Diff(want, slugs); diff != "" {
		t.Errorf("Sorted order mismatch (-want +got):\n%s", diff)
	}
}

func TestLessonRegistry_Slugs(t *testing.T) {
	registry := NewLessonRegistry()

	registry.Register(&types.LessonInfo{Slug: "variables", Hash: "h1"})
	registry.Register(&types.LessonInfo{Slug: "flow-control", Hash: "h2"})
	registry.Register(&types.LessonInfo{Slug: "hello", Hash: "h3"})

	assert.Equal(t, []string{"flow-control", "hello", "variables"}, registry.Slugs())
}

func TestLessonRegistry_Watch(t *testing.T) {
	registry := NewLessonRegistry()

	watcher := registry.Watch()
	defer registry.UnWatch(watcher)
	assert.NotNil(t, watcher)

	lesson := &types.LessonInfo{
		Slug: "variables",
		Hash: "a1b2c3d4",
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		registry.Register(lesson)
	}()

	select {
	case event := <-watcher:
		assert.Equal(t, types.EventTypeAdded, event.Type)
		assert.Equal(t, lesson, event.Lesson)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected to receive lesson added event")
	}
}

func TestLessonRegistry_UnWatch(t *testing.T) {
	registry := NewLessonRegistry()

	watcher1 := registry.Watch()
	watcher2 := registry.Watch()

	assert.Len(t, registry.watchers, 2)

	registry.UnWatch(watcher1)

	assert.Len(t, registry.watchers, 1)

	// The removed channel is closed
	select {
	case _, ok := <-watcher1:
		assert.False(t, ok, "Channel should be closed")
	case <-time.After(10 * time.Millisecond):
		t.Fatal("Channel should be closed immediately")
	}

	// The other watcher still receives events
	go func() {
		time.Sleep(10 * time.Millisecond)
		registry.Register(&types.LessonInfo{Slug: "variables", Hash: "h1"})
	}()

	select {
	case event := <-watcher2:
		assert.Equal(t, types.EventTypeAdded, event.Type)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Second watcher should still receive events")
	}

	registry.UnWatch(watcher2)
}

func TestLessonRegistry_EventTypes(t *testing.T) {
	registry := NewLessonRegistry()
	watcher := registry.Watch()
	defer registry.UnWatch(watcher)

	lesson := &types.LessonInfo{
		Slug: "variables",
		Hash: "a1b2c3d4",
	}

	// Added
	go func() {
		time.Sleep(10 * time.Millisecond)
		registry.Register(lesson)
	}()

	select {
	case event := <-watcher:
		assert.Equal(t, types.EventTypeAdded, event.Type)
		assert.Equal(t, lesson, event.Lesson)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected added event")
	}

	// Updated requires a changed hash
	updated := &types.LessonInfo{
		Slug: "variables",
		Hash: "e5f6a7b8",
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		registry.Register(updated)
	}()

	select {
	case event := <-watcher:
		assert.Equal(t, types.EventTypeUpdated, event.Type)
		assert.Equal(t, updated, event.Lesson)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected updated event")
	}

	// Removed
	go func() {
		time.Sleep(10 * time.Millisecond)
		registry.Remove("variables")
	}()

	select {
	case event := <-watcher:
		assert.Equal(t, types.EventTypeRemoved, event.Type)
		assert.Equal(t, "variables", event.Lesson.Slug)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected removed event")
	}
}

func TestLessonRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewLessonRegistry()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(index int) {
			lesson := &types.LessonInfo{
				Slug:     fmt.Sprintf("lesson-%d", index),
				FilePath: fmt.Sprintf("notes/lesson-%d.md", index),
				Hash:     fmt.Sprintf("hash%d", index),
			}
			registry.Register(lesson)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Equal(t, 10, registry.Count())

	for i := 0; i < 10; i++ {
		go func(index int) {
			slug := fmt.Sprintf("lesson-%d", index)
			_, exists := registry.Get(slug)
			assert.True(t, exists)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
