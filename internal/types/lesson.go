// Package types provides common type definitions used throughout the primer CLI.
// This package contains shared types to avoid circular dependencies between packages.
package types

import "time"

// LessonInfo contains metadata about a discovered lesson note, including its
// position in the course, extracted structure, and change-detection information
// used by the scanner, registry, and renderer.
type LessonInfo struct {
	// Slug is the lesson identifier derived from front matter or the file name
	// (e.g., "variables", "error-handling")
	Slug string
	// Title is the human-readable lesson title (e.g., "Variables and Types")
	Title string
	// Chapter orders the lesson within the course; zero means unordered
	Chapter int
	// Summary is a one-line description shown in listings
	Summary string
	// FilePath is the path to the Markdown file the lesson was read from;
	// embedded lessons use their path inside the bundled content tree
	FilePath string
	// Exercises lists the slugs of runnable exercises linked to this lesson
	Exercises []string
	// Headings lists the section headings found in the lesson body, in order
	Headings []string
	// Snippets contains the fenced code blocks extracted from the lesson body
	Snippets []SnippetInfo
	// Related lists the slugs of other lessons this one links to, filled in
	// by the registry's cross-reference analyzer after scanning
	Related []string
	// LastMod tracks the last modification time for change detection
	LastMod time.Time
	// Hash provides a CRC32 checksum for efficient change detection
	Hash string
}

// SnippetInfo describes a single fenced code block extracted from a lesson.
type SnippetInfo struct {
	// Index is the zero-based position of the snippet within the lesson
	Index int
	// Lang is the info string of the fence (e.g., "go", "text"); empty when
	// the fence carried no language
	Lang string
	// Source is the verbatim content of the block without the fence markers
	Source string
	// Line is the one-based line number of the opening fence in the file
	Line int
}

// EventType represents the type of lesson change event.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeUpdated EventType = "updated"
	EventTypeRemoved EventType = "removed"
)

// LessonEvent represents a change in the lesson registry, used for
// notifications to watchers like the watch command and the interactive UI.
type LessonEvent struct {
	// Type indicates the kind of change (added, updated, removed)
	Type EventType
	// Lesson contains the lesson information (may be nil for removed events)
	Lesson *LessonInfo
	// Timestamp records when the event occurred for ordering and filtering
	Timestamp time.Time
}
