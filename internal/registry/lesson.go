// Package registry maintains the set of discovered lessons and notifies
// watchers when that set changes.
package registry

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amar-at-iitm/primer/internal/types"
)

// LessonRegistry manages all discovered lessons
type LessonRegistry struct {
	lessons  map[string]*types.LessonInfo
	mutex    sync.RWMutex
	watchers []chan types.LessonEvent
}

// NewLessonRegistry creates a new lesson registry
func NewLessonRegistry() *LessonRegistry {
	return &LessonRegistry{
		lessons:  make(map[string]*types.LessonInfo),
		watchers: make([]chan types.LessonEvent, 0),
	}
}

// Register adds or updates a lesson in the registry.
//
// Registering a lesson whose slug and hash both match the stored entry
// refreshes the entry without emitting an event, so rescans of unchanged
// notes stay quiet.
func (r *LessonRegistry) Register(lesson *types.LessonInfo) {
	if lesson == nil {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, exists := r.lessons[lesson.Slug]
	if exists && existing.Hash == lesson.Hash {
		r.lessons[lesson.Slug] = lesson
		return
	}

	eventType := types.EventTypeAdded
	if exists {
		eventType = types.EventTypeUpdated
	}

	r.lessons[lesson.Slug] = lesson

	r.notify(types.LessonEvent{
		Type:      eventType,
		Lesson:    lesson,
		Timestamp: time.Now(),
	})
}

// Get retrieves a lesson by its exact slug
func (r *LessonRegistry) Get(slug string) (*types.LessonInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	lesson, exists := r.lessons[slug]
	return lesson, exists
}

// chapterPrefix matches filename-style chapter numbering like "02-" or "10_"
var chapterPrefix = regexp.MustCompile(`^\d+[-_]`)

// normalizeRef reduces a user-supplied lesson reference to its bare form
func normalizeRef(ref string) string {
	ref = strings.TrimSuffix(ref, ".markdown")
	ref = strings.TrimSuffix(ref, ".md")
	return chapterPrefix.ReplaceAllString(ref, "")
}

// BySlug retrieves a lesson by a tolerant reference: the exact slug, the
// slug with a chapter prefix ("02-flow-control" for "flow-control"), or a
// file name form with the extension still attached.
func (r *LessonRegistry) BySlug(ref string) (*types.LessonInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if lesson, exists := r.lessons[ref]; exists {
		return lesson, true
	}

	normalized := normalizeRef(ref)
	if lesson, exists := r.lessons[normalized]; exists {
		return lesson, true
	}

	for slug, lesson := range r.lessons {
		if normalizeRef(slug) == normalized {
			return lesson, true
		}
	}

	return nil, false
}

// GetAll returns all registered lessons
func (r *LessonRegistry) GetAll() map[string]*types.LessonInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string]*types.LessonInfo)
	for slug, lesson := range r.lessons {
		result[slug] = lesson
	}
	return result
}

// Sorted returns all lessons ordered by chapter, then slug
func (r *LessonRegistry) Sorted() []*types.LessonInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*types.LessonInfo, 0, len(r.lessons))
	for _, lesson := range r.lessons {
		result = append(result, lesson)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Chapter != result[j].Chapter {
			return result[i].Chapter < result[j].Chapter
		}
		return result[i].Slug < result[j].Slug
	})

	return result
}

// Slugs returns all registered slugs in sorted order
func (r *LessonRegistry) Slugs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	slugs := make([]string, 0, len(r.lessons))
	for slug := range r.lessons {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Remove removes a lesson from the registry
func (r *LessonRegistry) Remove(slug string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	lesson, exists := r.lessons[slug]
	if !exists {
		return
	}

	delete(r.lessons, slug)

	r.notify(types.LessonEvent{
		Type:      types.EventTypeRemoved,
		Lesson:    lesson,
		Timestamp: time.Now(),
	})
}

// Watch returns a channel that receives lesson events
func (r *LessonRegistry) Watch() <-chan types.LessonEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan types.LessonEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *LessonRegistry) UnWatch(ch <-chan types.LessonEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered lessons
func (r *LessonRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.lessons)
}

// notify broadcasts an event to all watchers. Caller must hold the lock.
func (r *LessonRegistry) notify(event types.LessonEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
