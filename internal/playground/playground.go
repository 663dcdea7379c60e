// Package playground evaluates lesson snippets with the yaegi
// interpreter instead of shelling out to go run. Snippets run in a
// fresh interpreter every time, with stdout and stderr captured, a
// deadline enforced through context, and anything outside the
// interpreter's stdlib symbols rejected up front.
package playground

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/amar-at-iitm/primer/internal/types"
)

// DefaultTimeout bounds a single snippet run.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotGo reports a snippet in a language the interpreter cannot run.
	ErrNotGo = errors.New("only go snippets can run")
	// ErrImportBlocked reports an import the playground refuses on principle.
	ErrImportBlocked = errors.New("import blocked in the playground")
	// ErrImportUnavailable reports an import the interpreter has no symbols for.
	ErrImportUnavailable = errors.New("import not available in the playground")
)

// blockedImport rejects packages a workbook snippet has no business
// touching. Everything else in the stdlib is fair game; the snippets
// run on the reader's own machine.
func blockedImport(importPath string) bool {
	switch importPath {
	case "os/exec", "syscall", "unsafe", "plugin":
		return true
	}
	return importPath == "net" || strings.HasPrefix(importPath, "net/")
}

// safeSymbols is stdlib.Symbols minus the blocked packages, so even a
// snippet that dodges import validation cannot reach them.
var safeSymbols = func() interp.Exports {
	syms := make(interp.Exports, len(stdlib.Symbols))
	for key, vals := range stdlib.Symbols {
		idx := strings.LastIndex(key, "/")
		if idx > 0 && blockedImport(key[:idx]) {
			continue
		}
		syms[key] = vals
	}
	return syms
}()

// Result captures one snippet run.
type Result struct {
	RunID    string
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner evaluates snippets. A Runner is cheap and stateless between
// runs; every Eval gets its own interpreter.
type Runner struct {
	timeout time.Duration
	stdin   io.Reader
}

// NewRunner returns a Runner with the given per-run timeout. Zero or
// negative means DefaultTimeout. Snippet stdin always reads EOF, so a
// program that prompts terminates instead of hanging the workbook.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		timeout: timeout,
		stdin:   strings.NewReader(""),
	}
}

// Timeout returns the per-run deadline.
func (r *Runner) Timeout() time.Duration { return r.timeout }

// Eval runs one lesson snippet.
func (r *Runner) Eval(ctx context.Context, snippet types.SnippetInfo) (*Result, error) {
	if snippet.Lang != "go" {
		return nil, fmt.Errorf("snippet %d is %q: %w", snippet.Index, snippet.Lang, ErrNotGo)
	}
	return r.EvalSource(ctx, snippet.Source)
}

// EvalSource runs raw Go source, either a full program or a fragment.
// Full programs execute their main; fragments evaluate top to bottom.
// The result is non-nil whenever execution started, so callers can
// show partial output alongside the error.
func (r *Runner) EvalSource(ctx context.Context, source string) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("snippet is empty")
	}
	if err := validateImports(source); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	i := interp.New(interp.Options{
		Stdin:  r.stdin,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err := i.Use(safeSymbols); err != nil {
		return nil, fmt.Errorf("load interpreter symbols: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := &Result{RunID: uuid.New().String()}
	start := time.Now()
	_, err := i.EvalWithContext(runCtx, source)
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return result, fmt.Errorf("run %s timed out after %s", result.RunID, r.timeout)
		}
		return result, fmt.Errorf("run %s failed: %w", result.RunID, err)
	}
	return result, nil
}

// validateImports parses the snippet's import set and checks every
// path against the block list and the interpreter's stdlib symbols.
// Fragments without a package clause get one for parsing purposes;
// sources that still do not parse are left for the interpreter to
// reject with its own position-aware error.
func validateImports(source string) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "snippet.go", source, parser.ImportsOnly)
	if err != nil {
		file, err = parser.ParseFile(fset, "snippet.go", "package main\n\n"+source, parser.ImportsOnly)
		if err != nil {
			return nil
		}
	}

	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		if blockedImport(importPath) {
			return fmt.Errorf("%q: %w", importPath, ErrImportBlocked)
		}
		if !symbolsHave(importPath) {
			return fmt.Errorf("%q: %w", importPath, ErrImportUnavailable)
		}
	}
	return nil
}

func symbolsHave(importPath string) bool {
	_, ok := safeSymbols[importPath+"/"+path.Base(importPath)]
	return ok
}
