package playground

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-at-iitm/primer/internal/types"
)

const helloProgram = `package main

import "fmt"

func main() {
	fmt.Println("Hello, playground!")
}
`

func TestNewRunnerDefaults(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewRunner(0).Timeout())
	assert.Equal(t, DefaultTimeout, NewRunner(-time.Second).Timeout())
	assert.Equal(t, 2*time.Second, NewRunner(2*time.Second).Timeout())
}

func TestEvalSourceProgram(t *testing.T) {
	r := NewRunner(0)

	result, err := r.EvalSource(context.Background(), helloProgram)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Hello, playground!\n", result.Stdout)
	assert.Empty(t, result.Stderr)
	assert.NotZero(t, result.Duration)
}

func TestEvalSourceFragment(t *testing.T) {
	r := NewRunner(0)

	result, err := r.EvalSource(context.Background(), "x := 6 * 7\nif x != 42 {\n\tpanic(\"arithmetic is broken\")\n}")
	require.NoError(t, err)
	assert.Empty(t, result.Stdout)
}

func TestEvalSourceSeparatesStreams(t *testing.T) {
	src := `package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("to stdout")
	fmt.Fprintln(os.Stderr, "to stderr")
}
`
	r := NewRunner(0)
	result, err := r.EvalSource(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "to stdout\n", result.Stdout)
	assert.Equal(t, "to stderr\n", result.Stderr)
}

func TestEvalSourceStdinIsClosed(t *testing.T) {
	src := `package main

import (
	"bufio"
	"fmt"
	"os"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("got line:", scanner.Scan())
}
`
	r := NewRunner(0)
	result, err := r.EvalSource(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "got line: false\n", result.Stdout)
}

func TestEvalSourceBlockedImports(t *testing.T) {
	r := NewRunner(0)

	for _, importPath := range []string{"os/exec", "syscall", "net/http", "net"} {
		src := "package main\n\nimport _ \"" + importPath + "\"\n\nfunc main() {}\n"
		result, err := r.EvalSource(context.Background(), src)
		assert.ErrorIs(t, err, ErrImportBlocked, importPath)
		assert.ErrorContains(t, err, importPath)
		assert.Nil(t, result, importPath)
	}
}

func TestEvalSourceUnavailableImport(t *testing.T) {
	r := NewRunner(0)

	src := "package main\n\nimport _ \"example.com/not/in/stdlib\"\n\nfunc main() {}\n"
	result, err := r.EvalSource(context.Background(), src)
	assert.ErrorIs(t, err, ErrImportUnavailable)
	assert.Nil(t, result)
}

func TestEvalSourceImportOnlyFragment(t *testing.T) {
	// A bare import line parses only once the package clause is added,
	// and still has to pass validation.
	r := NewRunner(0)

	_, err := r.EvalSource(context.Background(), `import "os/exec"`)
	assert.ErrorIs(t, err, ErrImportBlocked)
}

func TestEvalSourceEmpty(t *testing.T) {
	r := NewRunner(0)

	_, err := r.EvalSource(context.Background(), "   \n\t")
	assert.ErrorContains(t, err, "empty")
}

func TestEvalSourceCompileError(t *testing.T) {
	r := NewRunner(0)

	result, err := r.EvalSource(context.Background(), "package main\n\nfunc main() { thisIsNotDefined() }\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
	assert.NotNil(t, result)
}

func TestEvalSourceTimeout(t *testing.T) {
	r := NewRunner(100 * time.Millisecond)

	result, err := r.EvalSource(context.Background(), "package main\n\nfunc main() { for {} }\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.NotNil(t, result)
}

func TestEvalSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(0)
	_, err := r.EvalSource(ctx, helloProgram)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "timed out")
}

func TestEvalSourceRunsAreIsolated(t *testing.T) {
	r := NewRunner(0)

	_, err := r.EvalSource(context.Background(), "leftover := 1\n_ = leftover")
	require.NoError(t, err)

	// A fresh interpreter per run means earlier bindings are gone
	_, err = r.EvalSource(context.Background(), "println(leftover)")
	require.Error(t, err)
}

func TestEvalSourceRunIDs(t *testing.T) {
	r := NewRunner(0)

	r1, err := r.EvalSource(context.Background(), helloProgram)
	require.NoError(t, err)
	r2, err := r.EvalSource(context.Background(), helloProgram)
	require.NoError(t, err)

	assert.NotEqual(t, r1.RunID, r2.RunID)
	_, err = uuid.Parse(r1.RunID)
	assert.NoError(t, err)
}

func TestEvalSnippet(t *testing.T) {
	r := NewRunner(0)

	result, err := r.Eval(context.Background(), types.SnippetInfo{
		Index:  0,
		Lang:   "go",
		Source: helloProgram,
	})
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "Hello, playground!")
}

func TestEvalSnippetRejectsOtherLanguages(t *testing.T) {
	r := NewRunner(0)

	for _, lang := range []string{"", "text", "bash", "yaml"} {
		_, err := r.Eval(context.Background(), types.SnippetInfo{Index: 2, Lang: lang, Source: "echo hi"})
		assert.ErrorIs(t, err, ErrNotGo, lang)
		if lang != "" {
			assert.ErrorContains(t, err, lang)
		}
	}
}

func TestBlockedImport(t *testing.T) {
	testCases := []struct {
		importPath string
		blocked    bool
	}{
		{"os/exec", true},
		{"syscall", true},
		{"unsafe", true},
		{"plugin", true},
		{"net", true},
		{"net/http", true},
		{"net/url", true},
		{"fmt", false},
		{"os", false},
		{"strings", false},
		{"network", false},
	}

	for _, tc := range testCases {
		t.Run(tc.importPath, func(t *testing.T) {
			assert.Equal(t, tc.blocked, blockedImport(tc.importPath))
		})
	}
}

func TestSafeSymbolsExcludeBlockedPackages(t *testing.T) {
	assert.NotContains(t, safeSymbols, "os/exec/exec")
	assert.NotContains(t, safeSymbols, "net/http/http")
	assert.NotContains(t, safeSymbols, "syscall/syscall")
	assert.Contains(t, safeSymbols, "fmt/fmt")
	assert.Contains(t, safeSymbols, "strings/strings")
}

func TestSymbolsHave(t *testing.T) {
	assert.True(t, symbolsHave("fmt"))
	assert.True(t, symbolsHave("math/rand"))
	assert.True(t, symbolsHave("encoding/json"))
	assert.False(t, symbolsHave("example.com/nope"))
	assert.False(t, symbolsHave("os/exec"))
}

func TestEvalSourceLessonSnippetEndToEnd(t *testing.T) {
	// The shape every lesson snippet takes: full program, fmt only
	src := strings.ReplaceAll(helloProgram, "Hello, playground!", "chapter one says hi")

	r := NewRunner(0)
	result, err := r.EvalSource(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "chapter one says hi\n", result.Stdout)
}
