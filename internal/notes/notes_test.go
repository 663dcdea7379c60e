package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-at-iitm/primer/internal/types"
)

var bundledLessons = []string{
	"01-hello.md",
	"02-guessing-game.md",
	"03-variables.md",
	"04-flow-control.md",
	"05-functions.md",
	"06-structs.md",
	"07-packages.md",
	"08-collections.md",
	"09-error-handling.md",
}

func TestEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Embedded(), ".")
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal(t, bundledLessons, names)
}

func TestEmbeddedLessonsHaveFrontMatter(t *testing.T) {
	for _, name := range bundledLessons {
		t.Run(name, func(t *testing.T) {
			data, err := fs.ReadFile(Embedded(), name)
			require.NoError(t, err)
			assert.True(t, len(data) > 0)
			assert.Equal(t, "---\n", string(data[:4]), "lesson should open with a front matter fence")
		})
	}
}

func TestVerifyEmbedded(t *testing.T) {
	count, err := VerifyEmbedded()
	require.NoError(t, err)
	assert.Equal(t, len(bundledLessons), count)
}

func TestNewSource(t *testing.T) {
	t.Run("empty dir is embedded only", func(t *testing.T) {
		source, err := NewSource("")
		require.NoError(t, err)
		assert.False(t, source.HasDisk())
		assert.Equal(t, "", source.Dir())
	})

	t.Run("missing dir is skipped", func(t *testing.T) {
		source, err := NewSource(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.False(t, source.HasDisk())
	})

	t.Run("existing dir is layered", func(t *testing.T) {
		source, err := NewSource(t.TempDir())
		require.NoError(t, err)
		assert.True(t, source.HasDisk())
	})

	t.Run("file instead of dir is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes")
		require.NoError(t, os.WriteFile(path, []byte("not a dir"), 0o644))

		_, err := NewSource(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func newOverlaySource(t *testing.T) *Source {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "01-hello.md"),
		[]byte("---\nslug: hello\ntitle: My Own Hello\nchapter: 1\n---\n\n# Mine now\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "10-extra.md"),
		[]byte("---\nslug: extra\ntitle: Extra Notes\nchapter: 10\n---\n\n# Extra\n"),
		0o644,
	))

	source, err := NewSource(dir)
	require.NoError(t, err)
	return source
}

func TestSource_DiskOverridesEmbedded(t *testing.T) {
	source := newOverlaySource(t)

	data, err := source.ReadFile("01-hello.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mine now")

	// Untouched lessons still come from the bundle
	data, err = source.ReadFile("02-guessing-game.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "slug: guessing-game")
}

func TestSource_ReadDirMergesLayers(t *testing.T) {
	source := newOverlaySource(t)

	entries, err := source.ReadDir(".")
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	want := append(append([]string{}, bundledLessons...), "10-extra.md")
	assert.Equal(t, want, names)
}

func TestSource_Origin(t *testing.T) {
	source := newOverlaySource(t)

	assert.Equal(t, OriginDisk, source.Origin("01-hello.md"))
	assert.Equal(t, OriginDisk, source.Origin("10-extra.md"))
	assert.Equal(t, OriginEmbedded, source.Origin("02-guessing-game.md"))
	assert.Equal(t, "", source.Origin("99-missing.md"))
	assert.Equal(t, "", source.Origin("../escape.md"))
}

func TestSource_ReadLesson(t *testing.T) {
	source, err := NewSource("")
	require.NoError(t, err)

	lesson := &types.LessonInfo{Slug: "hello", FilePath: "01-hello.md"}
	data, err := source.ReadLesson(lesson)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Getting Started")

	_, err = source.ReadLesson(nil)
	assert.Error(t, err)

	_, err = source.ReadLesson(&types.LessonInfo{FilePath: "99-missing.md"})
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSource_InvalidPath(t *testing.T) {
	source, err := NewSource("")
	require.NoError(t, err)

	_, err = source.Open("../outside.md")
	assert.True(t, errors.Is(err, fs.ErrInvalid))

	_, err = source.ReadFile("/abs/path.md")
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestSource_WalksWithMergedTree(t *testing.T) {
	source := newOverlaySource(t)

	var walked []string
	err := fs.WalkDir(source, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			walked = append(walked, path)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, walked, len(bundledLessons)+1)
	assert.Contains(t, walked, "10-extra.md")
}
