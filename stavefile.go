//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/mdview"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"ts":  Test.Short,
	"fz":  Test.Fuzz,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"sm":  Smoke,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles bin/mdview with version info. Skips recompilation when no
// source file has changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building mdview...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/mdview")
}

// Check runs format, lint, the short test suite and the smoke test.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Short, Smoke)
}

// Smoke runs the built binary against a small document and fails when any
// command exits non-zero or prints nothing.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdview-smoke")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	doc := filepath.Join(dir, "smoke.md")
	content := "# Smoke\n\n- [x] parses\n\n```go\nfunc main() {}\n```\n\n| a | b |\n|---|--:|\n| 1 | 2 |\n"
	if err := os.WriteFile(doc, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write smoke document: %w", err)
	}

	commands := [][]string{
		{"version", "--short"},
		{"parse", "--check", doc},
		{"parse", "--format", "summary", doc},
		{"toc", doc},
		{"highlight", "--list"},
		{"highlight", "--json", "--lang", "go", doc},
		{"render", "--color", "never", "--width", "60", doc},
		{"themes"},
	}
	for _, args := range commands {
		out, err := sh.Output(binary, args...)
		if err != nil {
			return fmt.Errorf("mdview %s: %w", strings.Join(args, " "), err)
		}
		if strings.TrimSpace(out) == "" {
			return fmt.Errorf("mdview %s printed nothing", strings.Join(args, " "))
		}
		fmt.Printf("  ✓ mdview %s\n", strings.Join(args, " "))
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html", "highlight.prof"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs mdview to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing mdview...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdview")
}

// Uninstall removes mdview from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	binPath, err := findInstalledBinary("mdview")
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("mdview is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Coverage writes coverage.html from a full test run.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs every test with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs every test with race detection and standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose", "-race")
}

// Short runs the tests without the race detector and skips timing tests.
func (Test) Short() error {
	fmt.Println("Running short tests...")
	return gotestsum("pkgname-and-test-fails", "-short")
}

// fuzzTargets lists the fuzz targets run by test:fuzz, by package.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/markdown", "FuzzParse"},
	{"./pkg/markdown", "FuzzParseInline"},
	{"./pkg/markdown", "FuzzParseInline_BalancedMarkers"},
	{"./pkg/highlight", "FuzzHighlight"},
}

// Fuzz runs every parser and tokenizer fuzz target in turn. Set FUZZTIME to
// change the per-target duration (default 15s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "15s")
	for _, fuzz := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", fuzz.pkg, fuzz.name, fuzzTime)
		if err := sh.RunV("go", "test", fuzz.pkg,
			"-run", "^$",
			"-fuzz", "^"+fuzz.name+"$",
			"-fuzztime", fuzzTime,
		); err != nil {
			return fmt.Errorf("fuzz %s: %w", fuzz.name, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// FmtCheck fails when any Go file is not gofmt-formatted.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet, including the stavefile.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", "stave", "stavefile.go")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs every CI check.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Test.Default,
		Smoke,
		Bench.Check,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy fails when 'go mod tidy' would change go.mod or go.sum.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make(map[string][]byte, len(files))
	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = content
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if string(after) != string(before[name]) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds mdview for every release platform with cgo disabled.
func (CI) Cross() error {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		for _, goarch := range []string{"amd64", "arm64"} {
			fmt.Printf("  Building %s/%s...\n", goos, goarch)
			env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
			if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/mdview"); err != nil {
				return fmt.Errorf("build failed for %s/%s: %w", goos, goarch, err)
			}
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs every benchmark.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Highlight benchmarks the tokenizer on large code blocks and writes a CPU
// profile to highlight.prof.
func (Bench) Highlight() error {
	return sh.RunV("go", "test", "./pkg/highlight",
		"-run", "^$",
		"-bench", "^BenchmarkHighlight_LargeBlock$",
		"-benchmem",
		"-cpuprofile", "highlight.prof",
	)
}

// Check cross-checks the block structure of every Markdown file in the
// repository against goldmark using the built binary.
func (Bench) Check() error {
	st.Deps(Build)
	fmt.Println("Cross-checking repository Markdown against goldmark...")
	return sh.RunV(binary, "parse", "--check", "--format", "summary", "--ignore", "_examples/**", ".")
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gotestsum runs the whole module's tests through gotestsum with the given
// output format and extra go test flags.
func gotestsum(format string, flags ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}
	args = append(args, flags...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// findInstalledBinary returns the path where go install would place the binary.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}
