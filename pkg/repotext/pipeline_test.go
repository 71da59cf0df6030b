package repotext_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Davis-3450/repo2text/pkg/repotext"
)

// runFixture reads the ignore file the way the CLI layer does and runs the
// pipeline with default options.
func runFixture(t *testing.T, root string) (*repotext.RenderResult, []string) {
	t.Helper()
	ignoreData, readErr := os.ReadFile(filepath.Join(root, repotext.IgnoreFileName))
	source := repotext.IgnoreSource{Text: string(ignoreData), Found: readErr == nil}

	result, warnings, err := repotext.Run(root, source, repotext.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return result, warnings
}

func TestRunBasicScenario(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.txt", []byte("hello\n"))
	writeFixture(t, root, "b.bin", []byte{0x00, 0x01, 0x02})
	writeFixture(t, root, repotext.IgnoreFileName, []byte("*.bin\n"))
	if err := os.Mkdir(filepath.Join(root, "c"), 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	result, warnings := runFixture(t, root)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	if !strings.Contains(result.Full, "├── c/") && !strings.Contains(result.Full, "└── c/") {
		t.Fatalf("expected the tree to list c/:\n%s", result.Full)
	}
	if !strings.Contains(result.Full, "a.txt") {
		t.Fatal("expected the tree to list a.txt")
	}
	if strings.Contains(result.Full, "b.bin") {
		t.Fatal("expected b.bin to be excluded by the ignore pattern")
	}
	if strings.Contains(result.Full, repotext.IgnoreFileName) {
		t.Fatal("expected the ignore file itself to be excluded")
	}
	if !strings.Contains(result.Full, "### File: a.txt") || !strings.Contains(result.Full, "hello") {
		t.Fatalf("expected the body of a.txt:\n%s", result.Full)
	}
	if result.Elapsed <= 0 {
		t.Fatal("expected a positive elapsed duration")
	}
}

func TestRunPreviewTruncation(t *testing.T) {
	root := t.TempDir()
	var content strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&content, "line %d\n", i)
	}
	writeFixture(t, root, "big.txt", []byte(content.String()))
	writeFixture(t, root, repotext.IgnoreFileName, []byte("# nothing ignored\nkeep/\n"))

	result, _ := runFixture(t, root)
	if !strings.Contains(result.Preview, "line 20") || strings.Contains(result.Preview, "line 21") {
		t.Fatalf("expected the preview to stop at line 20:\n%s", result.Preview)
	}
	if !strings.Contains(result.Preview, "... (5 more lines omitted)") {
		t.Fatal("expected the truncation marker for the omitted remainder")
	}
	if !strings.Contains(result.Full, "line 25") {
		t.Fatal("expected the full variant to carry every line")
	}
}

func TestRunMissingIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "main.go", []byte("package main\n"))

	result, warnings := runFixture(t, root)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "not found") {
		t.Fatalf("expected one missing-ignore-file warning, got %v", warnings)
	}
	if !strings.Contains(result.Full, "main.go") {
		t.Fatal("expected the run to succeed with default patterns only")
	}
}

func TestRunUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	writeFixture(t, root, "locked.txt", []byte("secret\n"))
	writeFixture(t, root, repotext.IgnoreFileName, []byte("*.bin\n"))
	lockedPath := filepath.Join(root, "locked.txt")
	if err := os.Chmod(lockedPath, 0o000); err != nil {
		t.Fatalf("failed to chmod file: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedPath, 0o644) })

	result, warnings := runFixture(t, root)
	if !strings.Contains(result.Full, "locked.txt") {
		t.Fatal("expected the tree to still list the unreadable file")
	}
	if !strings.Contains(result.Full, "(Could not read file:") {
		t.Fatal("expected the omission placeholder for the unreadable file")
	}
	if strings.Contains(result.Full, "secret") {
		t.Fatal("expected no content from the unreadable file")
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestRunFatalRootConditions(t *testing.T) {
	opts := repotext.DefaultOptions()

	if _, _, err := repotext.Run(filepath.Join(t.TempDir(), "missing"), repotext.IgnoreSource{}, opts, nil); err == nil {
		t.Fatal("expected an error for a nonexistent root")
	}

	root := t.TempDir()
	writeFixture(t, root, "plain.txt", []byte("x\n"))
	if _, _, err := repotext.Run(filepath.Join(root, "plain.txt"), repotext.IgnoreSource{}, opts, nil); err == nil {
		t.Fatal("expected an error when the root is not a directory")
	}
}
