// Package internal contains the core implementation packages for primer.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the primer CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - config: Configuration management with validation and a setup wizard
//   - errors: Error collection for lesson scans and not-found suggestions
//   - exercise: Bundled course exercises and their registration
//   - logging: Structured logging with levels and optional log files
//   - notes: The embedded course and the disk overlay for user notes
//   - playground: In-process evaluation of lesson code snippets
//   - registry: Lesson registry, ordering, and cross-reference analysis
//   - renderer: Terminal Markdown rendering and shared styles
//   - scanner: Markdown scanning and front matter extraction
//   - tui: Full-screen menu and game models
//   - types: Shared lesson, snippet, and exercise metadata types
//   - validation: Path and input validation shared across packages
//   - version: Build metadata stamped at link time
//   - watcher: File system monitoring with debouncing
//
// # Inter-Package Communication
//
// Packages communicate through well-defined seams:
//
//   - Scanner processes Markdown files and populates the registry
//   - Registry holds lesson metadata and orders the course
//   - Notes layers a disk directory over the embedded course as one fs.FS
//   - Renderer turns lesson Markdown into styled terminal output
//   - Playground evaluates snippets the scanner extracted
//   - Watcher monitors the notes directory and triggers rescans
//   - Exercises register themselves and are looked up by slug
package internal
