package repotext_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Davis-3450/repo2text/pkg/repotext"
)

func textRecord(path string, lines ...string) repotext.FileRecord {
	return repotext.FileRecord{
		Path:         path,
		Kind:         repotext.RecordText,
		Lines:        lines,
		FinalNewline: true,
	}
}

func TestRenderTreeDiagram(t *testing.T) {
	tree := &repotext.PathEntry{
		Name:    "project",
		RelPath: ".",
		IsDir:   true,
		Children: []*repotext.PathEntry{
			{
				Name:    "src",
				RelPath: "src",
				IsDir:   true,
				Children: []*repotext.PathEntry{
					{Name: "main.go", RelPath: "src/main.go"},
				},
			},
			{Name: "README.md", RelPath: "README.md"},
		},
	}

	result := repotext.Render(tree, nil, repotext.DefaultPreviewLines)
	expectedTree := strings.Join([]string{
		"Project Tree:",
		"./",
		"├── src/",
		"│   └── main.go",
		"└── README.md",
		"",
	}, "\n")

	if !strings.HasPrefix(result.Full, expectedTree) {
		t.Fatalf("unexpected tree section:\n%s", result.Full)
	}
	if !strings.HasPrefix(result.Preview, expectedTree) {
		t.Fatal("expected the preview to share the tree section verbatim")
	}
}

func TestRenderPlaceholders(t *testing.T) {
	tree := &repotext.PathEntry{Name: "p", RelPath: ".", IsDir: true}
	records := []repotext.FileRecord{
		{Path: "empty.txt", Kind: repotext.RecordEmpty},
		{Path: "image.bin", Kind: repotext.RecordBinary},
		{Path: "locked.txt", Kind: repotext.RecordUnreadable, ReadError: "permission denied"},
	}

	result := repotext.Render(tree, records, repotext.DefaultPreviewLines)
	for _, variant := range []string{result.Full, result.Preview} {
		if !strings.Contains(variant, "(Empty file)") {
			t.Fatal("expected the empty-file placeholder")
		}
		if !strings.Contains(variant, "(Binary file omitted)") {
			t.Fatal("expected the binary placeholder")
		}
		if !strings.Contains(variant, "(Could not read file: permission denied)") {
			t.Fatal("expected the unreadable placeholder with the retained error")
		}
	}
}

func TestRenderBinaryContentNeverLeaks(t *testing.T) {
	tree := &repotext.PathEntry{Name: "p", RelPath: ".", IsDir: true}
	records := []repotext.FileRecord{{Path: "blob.bin", Kind: repotext.RecordBinary}}

	result := repotext.Render(tree, records, repotext.DefaultPreviewLines)
	for _, variant := range []string{result.Full, result.Preview} {
		section := variant[strings.Index(variant, "### File: blob.bin"):]
		if !strings.Contains(section, "(Binary file omitted)") {
			t.Fatalf("unexpected binary section:\n%s", section)
		}
	}
}

func TestRenderPreviewTruncation(t *testing.T) {
	lines := make([]string, 25)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	tree := &repotext.PathEntry{Name: "p", RelPath: ".", IsDir: true}
	records := []repotext.FileRecord{textRecord("big.txt", lines...)}

	result := repotext.Render(tree, records, repotext.DefaultPreviewLines)

	if !strings.Contains(result.Preview, "line 20") {
		t.Fatal("expected the preview to include line 20")
	}
	if strings.Contains(result.Preview, "line 21") {
		t.Fatal("expected the preview to stop after the line limit")
	}
	if !strings.Contains(result.Preview, "... (5 more lines omitted)") {
		t.Fatal("expected the truncation marker with the omitted count")
	}

	for _, line := range lines {
		if !strings.Contains(result.Full, line) {
			t.Fatalf("expected the full variant to include %q", line)
		}
	}
	if strings.Contains(result.Full, "more lines omitted") {
		t.Fatal("expected no truncation marker in the full variant")
	}
}

func TestRenderShortFileIdenticalAcrossVariants(t *testing.T) {
	tree := &repotext.PathEntry{Name: "p", RelPath: ".", IsDir: true}
	records := []repotext.FileRecord{textRecord("short.txt", "one", "two", "three")}

	result := repotext.Render(tree, records, repotext.DefaultPreviewLines)
	if result.Full != result.Preview {
		t.Fatal("expected identical renders when every file fits the preview limit")
	}
}
