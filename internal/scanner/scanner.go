// Package scanner discovers lesson notes in a Markdown tree.
//
// The scanner walks a file system for .md files, parses YAML front matter
// into lesson metadata, extracts section headings and fenced code snippets,
// and registers the result with the lesson registry so change events reach
// anyone watching. Files are hashed with CRC32 for change detection, and
// notes that fail to parse are collected rather than aborting the scan.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"hash/crc32"
	"io/fs"
	"path"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/amar-at-iitm/primer/internal/errors"
	"github.com/amar-at-iitm/primer/internal/registry"
	"github.com/amar-at-iitm/primer/internal/types"
	"github.com/amar-at-iitm/primer/internal/validation"
)

// smallBatchSize is the file count below which scanning stays synchronous;
// goroutine overhead beats the parallelism win on a handful of notes.
const smallBatchSize = 5

// frontMatter is the YAML header a lesson note may open with.
type frontMatter struct {
	Slug      string   `yaml:"slug"`
	Title     string   `yaml:"title"`
	Chapter   int      `yaml:"chapter"`
	Summary   string   `yaml:"summary"`
	Exercises []string `yaml:"exercises"`
}

// LessonScanner discovers and parses Markdown lesson notes.
//
// The scanner provides:
// - Recursive tree traversal with exclude patterns
// - Front matter extraction with filename/heading fallback
// - Section heading and fenced snippet extraction with line numbers
// - Integration with the lesson registry for event broadcasting
// - File change detection using CRC32 hashing
type LessonScanner struct {
	// registry receives discovered lessons and broadcasts change events
	registry *registry.LessonRegistry
	// collector accumulates per-note problems so one bad file never
	// stops the scan
	collector *errors.ErrorCollector
	// excludes holds glob patterns matched against file names and paths
	excludes []string
	// workerLimit bounds the parallel scan
	workerLimit int
}

// NewLessonScanner creates a scanner feeding the given registry. Exclude
// patterns follow path.Match syntax and apply to both the base name and
// the full path within the tree.
func NewLessonScanner(reg *registry.LessonRegistry, excludePatterns []string) *LessonScanner {
	workerLimit := runtime.NumCPU()
	if workerLimit > 8 {
		workerLimit = 8
	}

	return &LessonScanner{
		registry:    reg,
		collector:   errors.NewErrorCollector(),
		excludes:    excludePatterns,
		workerLimit: workerLimit,
	}
}

// Registry returns the lesson registry
func (s *LessonScanner) Registry() *registry.LessonRegistry {
	return s.registry
}

// Errors returns the collector holding per-note scan problems
func (s *LessonScanner) Errors() *errors.ErrorCollector {
	return s.collector
}

// ScanFS walks the tree for Markdown notes and registers every lesson it
// can parse. Parse problems land in the error collector; the returned
// error covers walk failures and cancellation only. Lessons registered by
// an earlier scan whose files have since disappeared are removed.
func (s *LessonScanner) ScanFS(ctx context.Context, fsys fs.FS) error {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".md") {
			return nil
		}
		if s.excluded(p) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking notes tree: %w", err)
	}

	if len(files) <= smallBatchSize {
		err = s.scanSynchronous(ctx, fsys, files)
	} else {
		err = s.scanParallel(ctx, fsys, files)
	}
	if err != nil {
		return err
	}

	s.prune(fsys)
	return nil
}

// ScanFile parses a single note and registers the lesson it holds.
// Parse problems are recorded in the collector and returned.
func (s *LessonScanner) ScanFile(fsys fs.FS, filePath string) error {
	lesson, err := s.parseFile(fsys, filePath)
	if err != nil {
		return err
	}
	s.registry.Register(lesson)
	return nil
}

func (s *LessonScanner) scanSynchronous(ctx context.Context, fsys fs.FS, files []string) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Collected already; keep scanning the rest
		_ = s.ScanFile(fsys, file)
	}
	return nil
}

func (s *LessonScanner) scanParallel(ctx context.Context, fsys fs.FS, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_ = s.ScanFile(fsys, file)
			return nil
		})
	}

	return g.Wait()
}

// prune removes lessons whose files no longer exist in the tree
func (s *LessonScanner) prune(fsys fs.FS) {
	for slug, lesson := range s.registry.GetAll() {
		if _, err := fs.Stat(fsys, lesson.FilePath); err != nil {
			s.registry.Remove(slug)
		}
	}
}

// excluded reports whether a path matches any exclude pattern
func (s *LessonScanner) excluded(p string) bool {
	base := path.Base(p)
	for _, pattern := range s.excludes {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, p); err == nil && ok {
			return true
		}
	}
	return false
}

// parseFile reads and parses one note, recording problems in the collector
func (s *LessonScanner) parseFile(fsys fs.FS, filePath string) (*types.LessonInfo, error) {
	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		readErr := errors.LessonError{
			File:     filePath,
			Message:  fmt.Sprintf("reading note: %v", err),
			Severity: errors.SeverityError,
		}
		s.collector.Add(readErr)
		return nil, &readErr
	}

	var modTime time.Time
	if info, err := fs.Stat(fsys, filePath); err == nil {
		modTime = info.ModTime()
	}

	lesson, parseErr := s.ParseLesson(filePath, content, modTime)
	if parseErr != nil {
		return nil, parseErr
	}
	return lesson, nil
}

// ParseLesson turns raw note content into lesson metadata. The front
// matter is optional: without it the slug comes from the file name, the
// chapter from a leading number in the file name, and the title from the
// first top-level heading.
func (s *LessonScanner) ParseLesson(filePath string, content []byte, modTime time.Time) (*types.LessonInfo, error) {
	if !utf8.Valid(content) {
		utfErr := errors.LessonError{
			File:     filePath,
			Message:  "note is not valid UTF-8",
			Severity: errors.SeverityError,
		}
		s.collector.Add(utfErr)
		return nil, &utfErr
	}

	lesson := &types.LessonInfo{
		FilePath: filePath,
		LastMod:  modTime,
		Hash:     fmt.Sprintf("%x", crc32.ChecksumIEEE(content)),
	}

	body, fm := s.splitFrontMatter(filePath, content)
	if fm != nil {
		lesson.Slug = fm.Slug
		lesson.Title = fm.Title
		lesson.Chapter = fm.Chapter
		lesson.Summary = fm.Summary
		lesson.Exercises = fm.Exercises
	}

	if lesson.Slug != "" {
		if err := validation.ValidateSlug(lesson.Slug); err != nil {
			s.collector.Add(errors.LessonError{
				File:     filePath,
				Slug:     lesson.Slug,
				Message:  fmt.Sprintf("front matter slug rejected: %v", err),
				Severity: errors.SeverityWarning,
			})
			lesson.Slug = ""
		}
	}

	bodyOffset := countLines(content) - countLines(body)
	headings, snippets, firstHeading := parseBody(body, bodyOffset)
	lesson.Headings = headings
	lesson.Snippets = snippets

	s.fillFallbacks(lesson, firstHeading)
	return lesson, nil
}

// splitFrontMatter strips a leading YAML header when one is present and
// well formed. An unterminated header is treated as ordinary content.
func (s *LessonScanner) splitFrontMatter(filePath string, content []byte) ([]byte, *frontMatter) {
	rest, ok := cutFence(content)
	if !ok {
		return content, nil
	}

	headerLen, bodyStart, closed := frontMatterEnd(rest)
	if !closed {
		// No closing fence; the whole file is content
		return content, nil
	}

	header := rest[:headerLen]
	body := rest[bodyStart:]

	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		s.collector.Add(errors.LessonError{
			File:     filePath,
			Message:  fmt.Sprintf("invalid front matter: %v", err),
			Severity: errors.SeverityWarning,
		})
		return body, nil
	}

	return body, &fm
}

// frontMatterEnd locates the closing front matter fence within content
// that already had its opening fence removed. It returns the header
// length, the offset where the body starts, and whether a closing fence
// was found at all.
func frontMatterEnd(rest []byte) (headerLen, bodyStart int, closed bool) {
	offset := 0
	for offset <= len(rest) {
		lineEnd := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		next := len(rest)
		if lineEnd >= 0 {
			line = rest[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			line = rest[offset:]
		}

		if string(bytes.TrimRight(line, "\r")) == "---" {
			return offset, next, true
		}
		if lineEnd < 0 {
			break
		}
		offset = next
	}
	return 0, 0, false
}

// cutFence removes the opening "---" line, reporting whether it was there
func cutFence(content []byte) ([]byte, bool) {
	if after, ok := bytes.CutPrefix(content, []byte("---\n")); ok {
		return after, true
	}
	if after, ok := bytes.CutPrefix(content, []byte("---\r\n")); ok {
		return after, true
	}
	return content, false
}

// parseBody extracts section headings and fenced snippets. Heading lines
// inside fences are ignored. The line offset shifts snippet line numbers
// so they refer to the full file rather than the body alone.
func parseBody(body []byte, lineOffset int) (headings []string, snippets []types.SnippetInfo, firstHeading string) {
	lines := strings.Split(string(body), "\n")

	inFence := false
	var fence struct {
		lang  string
		line  int
		lines []string
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if inFence {
			if trimmed == "```" {
				snippets = append(snippets, types.SnippetInfo{
					Index:  len(snippets),
					Lang:   fence.lang,
					Source: strings.Join(fence.lines, "\n"),
					Line:   fence.line,
				})
				inFence = false
				continue
			}
			fence.lines = append(fence.lines, line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			inFence = true
			fence.lang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			if fields := strings.Fields(fence.lang); len(fields) > 0 {
				fence.lang = fields[0]
			}
			fence.line = lineOffset + i + 1
			fence.lines = nil
			continue
		}

		if strings.HasPrefix(line, "## ") {
			if text := strings.TrimSpace(strings.TrimPrefix(line, "## ")); text != "" {
				headings = append(headings, text)
			}
			continue
		}
		if firstHeading == "" && strings.HasPrefix(line, "# ") {
			firstHeading = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	// Unterminated fence runs to end of file
	if inFence {
		snippets = append(snippets, types.SnippetInfo{
			Index:  len(snippets),
			Lang:   fence.lang,
			Source: strings.Join(fence.lines, "\n"),
			Line:   fence.line,
		})
	}

	return headings, snippets, firstHeading
}

// leadingChapter pulls a chapter number off file names like "03-variables.md"
var leadingChapter = regexp.MustCompile(`^(\d+)[-_]`)

var titleCaser = cases.Title(language.English)

// fillFallbacks derives slug, title, and chapter when front matter left
// them empty
func (s *LessonScanner) fillFallbacks(lesson *types.LessonInfo, firstHeading string) {
	base := path.Base(lesson.FilePath)
	stem := strings.TrimSuffix(base, path.Ext(base))

	if lesson.Slug == "" {
		lesson.Slug = sanitizeSlug(stem)
		if lesson.Slug == "" {
			lesson.Slug = "untitled"
		}
	}

	if lesson.Chapter == 0 {
		if m := leadingChapter.FindStringSubmatch(stem); m != nil {
			if chapter, err := strconv.Atoi(m[1]); err == nil {
				lesson.Chapter = chapter
			}
		}
	}

	if lesson.Title == "" {
		if firstHeading != "" {
			lesson.Title = firstHeading
		} else {
			cleaned := leadingChapter.ReplaceAllString(stem, "")
			lesson.Title = titleCaser.String(strings.ReplaceAll(cleaned, "-", " "))
		}
	}
	if lesson.Title == "" {
		lesson.Title = lesson.Slug
	}
}

// sanitizeSlug reduces a file name stem to the slug character set
func sanitizeSlug(raw string) string {
	var cleaned strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			cleaned.WriteRune(r)
		case r == ' ' || r == '_':
			cleaned.WriteByte('-')
		}
	}
	return strings.Trim(cleaned.String(), "-")
}

func countLines(b []byte) int {
	return bytes.Count(b, []byte("\n"))
}
