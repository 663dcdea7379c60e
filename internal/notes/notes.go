// Package notes bundles the course lessons into the binary and resolves
// where lesson content is read from.
//
// The bundled chapters live under content/ and are always available. When
// the configuration names a notes directory, files in it are layered over
// the bundled set: a disk file with the same name replaces the bundled
// lesson, and new files add lessons of their own.
package notes

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/amar-at-iitm/primer/internal/types"
)

//go:embed content/*.md
var content embed.FS

// Origin values reported by Source.Origin.
const (
	OriginEmbedded = "embedded"
	OriginDisk     = "disk"
)

// Embedded returns the bundled lesson tree with the lesson files at its root.
func Embedded() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		// The content directory is compiled in; Sub can only fail on a
		// bad path constant.
		panic(err)
	}
	return sub
}

// VerifyEmbedded checks that the bundled lessons are present and readable,
// returning how many there are.
func VerifyEmbedded() (int, error) {
	entries, err := fs.ReadDir(Embedded(), ".")
	if err != nil {
		return 0, fmt.Errorf("bundled lessons unreadable: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(Embedded(), entry.Name())
		if err != nil {
			return count, fmt.Errorf("bundled lesson %s unreadable: %w", entry.Name(), err)
		}
		if len(data) == 0 {
			return count, fmt.Errorf("bundled lesson %s is empty", entry.Name())
		}
		count++
	}

	if count == 0 {
		return 0, errors.New("no bundled lessons found")
	}
	return count, nil
}

// Source is the merged lesson tree: a disk layer over the bundled layer.
// It implements fs.FS, fs.ReadDirFS, and fs.ReadFileFS so the scanner and
// the cross-reference analyzer can walk it like any other file tree.
type Source struct {
	embedded fs.FS
	disk     fs.FS
	dir      string
}

// NewSource builds a lesson source. An empty dir means bundled lessons
// only. A configured dir that does not exist yet is skipped, so a fresh
// setup still sees the bundled course; doctor reports the missing
// directory separately.
func NewSource(dir string) (*Source, error) {
	source := &Source{
		embedded: Embedded(),
		dir:      dir,
	}

	if dir == "" {
		return source, nil
	}

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return source, nil
	}
	if err != nil {
		return nil, fmt.Errorf("notes directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notes path %s is not a directory", dir)
	}

	source.disk = os.DirFS(dir)
	return source, nil
}

// Dir returns the configured notes directory, empty when none is set
func (s *Source) Dir() string {
	return s.dir
}

// HasDisk reports whether a disk layer is active
func (s *Source) HasDisk() bool {
	return s.disk != nil
}

// Open opens a lesson file, preferring the disk layer
func (s *Source) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if s.disk != nil {
		file, err := s.disk.Open(name)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return s.embedded.Open(name)
}

// ReadFile reads a lesson file, preferring the disk layer
func (s *Source) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	if s.disk != nil {
		data, err := fs.ReadFile(s.disk, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fs.ReadFile(s.embedded, name)
}

// ReadDir lists a directory across both layers. Disk entries replace
// bundled entries of the same name.
func (s *Source) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	embeddedEntries, embeddedErr := fs.ReadDir(s.embedded, name)
	if s.disk == nil {
		return embeddedEntries, embeddedErr
	}

	diskEntries, diskErr := fs.ReadDir(s.disk, name)
	if embeddedErr != nil && diskErr != nil {
		return nil, diskErr
	}

	merged := make(map[string]fs.DirEntry)
	for _, entry := range embeddedEntries {
		merged[entry.Name()] = entry
	}
	for _, entry := range diskEntries {
		merged[entry.Name()] = entry
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, merged[name])
	}
	return entries, nil
}

// ReadLesson reads the Markdown body of a discovered lesson
func (s *Source) ReadLesson(lesson *types.LessonInfo) ([]byte, error) {
	if lesson == nil {
		return nil, errors.New("no lesson given")
	}
	return s.ReadFile(lesson.FilePath)
}

// Origin reports which layer currently serves the named file
func (s *Source) Origin(name string) string {
	if !fs.ValidPath(name) {
		return ""
	}
	if s.disk != nil {
		if _, err := fs.Stat(s.disk, name); err == nil {
			return OriginDisk
		}
	}
	if _, err := fs.Stat(s.embedded, name); err == nil {
		return OriginEmbedded
	}
	return ""
}
