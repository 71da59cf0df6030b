// Package repotext renders a directory tree of source files into a single
// LLM-friendly text artifact: a project tree diagram followed by the contents
// of every non-ignored, non-binary file.
package repotext

import "time"

// PathEntry represents one filesystem node discovered during traversal.
// Directories own their children in listing order; files own none.
type PathEntry struct {
	Name     string       // Base name of the entry.
	RelPath  string       // Slash-separated path relative to the root ("." for the root itself).
	IsDir    bool         // True for directories.
	Children []*PathEntry // Ordered children; nil for files.
}

// RecordKind classifies the collected content of a single file.
type RecordKind int

const (
	// RecordText marks a file whose content was read and decoded as text.
	RecordText RecordKind = iota
	// RecordEmpty marks a zero-length file.
	RecordEmpty
	// RecordBinary marks a file whose content was classified as binary.
	RecordBinary
	// RecordUnreadable marks a file that could not be read or decoded.
	RecordUnreadable
)

// FileRecord pairs a file path with either its textual content or the
// classification that explains why no content is available.
type FileRecord struct {
	Path         string     // Slash-separated path relative to the root.
	Kind         RecordKind // What was found at the path.
	Lines        []string   // Content split on '\n'; populated only for RecordText.
	FinalNewline bool       // True when the original content ended with '\n'.
	ReadError    string     // Underlying error message; populated only for RecordUnreadable.
}

// RenderResult holds the two rendered output variants plus the elapsed
// wall-clock time of the run that produced them.
type RenderResult struct {
	Full    string        // Tree plus complete file contents.
	Preview string        // Tree plus per-file bodies capped at the preview line limit.
	Elapsed time.Duration // Wall-clock duration of the pipeline run.
}

// IgnoreSource carries the raw text of the ignore-rule file, if one was found.
type IgnoreSource struct {
	Text  string // Raw contents of the ignore file.
	Found bool   // False when no ignore file exists at the root.
}

// Options bundles the policy knobs of the pipeline.
type Options struct {
	PreviewLines    int     // Maximum lines per file in the preview variant.
	SniffBytes      int     // Prefix length examined by the binary classifier.
	BinaryThreshold float64 // Non-printable byte ratio above which content is binary.
	MaxFileBytes    int64   // Files larger than this are classified binary defensively.
	UseDefaults     bool    // Apply the built-in default ignore patterns.
}

// Default policy values. The binary-detection constants mirror common
// heuristics; they are knobs rather than contract.
const (
	DefaultPreviewLines    = 20
	DefaultSniffBytes      = 8000
	DefaultBinaryThreshold = 0.3
	DefaultMaxFileBytes    = 10 << 20
)

// DefaultOptions returns the Options every caller starts from.
func DefaultOptions() Options {
	return Options{
		PreviewLines:    DefaultPreviewLines,
		SniffBytes:      DefaultSniffBytes,
		BinaryThreshold: DefaultBinaryThreshold,
		MaxFileBytes:    DefaultMaxFileBytes,
		UseDefaults:     true,
	}
}
