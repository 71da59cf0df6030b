package repotext

import (
	"fmt"
	"strings"
)

// Fixed placeholder bodies for files whose content is not emitted.
const (
	emptyFilePlaceholder   = "(Empty file)"
	binaryFilePlaceholder  = "(Binary file omitted)"
	unreadableFileTemplate = "(Could not read file: %s)"
	truncationTemplate     = "... (%d more lines omitted)"
	treeSectionHeader      = "Project Tree:"
)

// Render produces both output variants from a tree and its collected file
// records. The tree section is shared verbatim; the preview variant caps
// each text body at previewLines lines and marks the omitted remainder.
func Render(tree *PathEntry, records []FileRecord, previewLines int) RenderResult {
	treeText := renderTree(tree)
	return RenderResult{
		Full:    buildDocument(treeText, records, 0),
		Preview: buildDocument(treeText, records, previewLines),
	}
}

// buildDocument assembles one contiguous text document: the tree section, a
// blank separator, then one section per file in collection order. A limit of
// zero means unlimited lines per file.
func buildDocument(treeText string, records []FileRecord, limit int) string {
	var builder strings.Builder
	builder.WriteString(treeSectionHeader + "\n")
	builder.WriteString(treeText)
	builder.WriteString("\n")

	for _, record := range records {
		builder.WriteString("### File: " + record.Path + "\n")
		builder.WriteString("### Code block below:\n\n")
		builder.WriteString(renderBody(record, limit))
		builder.WriteString("\n\n")
	}
	return builder.String()
}

// renderBody renders the body of one file section. The switch is exhaustive
// over RecordKind so a new classification cannot silently render as text.
func renderBody(record FileRecord, limit int) string {
	switch record.Kind {
	case RecordEmpty:
		return emptyFilePlaceholder
	case RecordBinary:
		return binaryFilePlaceholder
	case RecordUnreadable:
		return fmt.Sprintf(unreadableFileTemplate, record.ReadError)
	case RecordText:
		if limit > 0 && len(record.Lines) > limit {
			truncated := strings.Join(record.Lines[:limit], "\n")
			return truncated + "\n" + fmt.Sprintf(truncationTemplate, len(record.Lines)-limit)
		}
		body := strings.Join(record.Lines, "\n")
		if record.FinalNewline {
			body += "\n"
		}
		return body
	default:
		return ""
	}
}

// renderTree renders the PathEntry tree as a box-drawing diagram. The root
// is shown as "./"; directories carry a trailing slash.
func renderTree(root *PathEntry) string {
	var builder strings.Builder
	builder.WriteString("./\n")
	renderTreeLevel(&builder, root.Children, "")
	return builder.String()
}

func renderTreeLevel(builder *strings.Builder, entries []*PathEntry, prefix string) {
	for i, entry := range entries {
		connector, extension := "├── ", "│   "
		if i == len(entries)-1 {
			connector, extension = "└── ", "    "
		}

		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		builder.WriteString(prefix + connector + name + "\n")

		if entry.IsDir {
			renderTreeLevel(builder, entry.Children, prefix+extension)
		}
	}
}
