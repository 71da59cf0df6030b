package repotext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Collector reads the content of every file in a PathEntry tree and tags
// each one as text, empty, binary, or unreadable. Read failures degrade to
// a tagged record plus a warning; they never abort the run.
type Collector struct {
	Classifier   Classifier
	MaxFileBytes int64 // Files larger than this are tagged binary without reading.
	Logger       *zap.Logger
}

// Collect walks the tree in the same depth-first order it was built in and
// returns one FileRecord per file entry, alongside any warnings.
func (collector Collector) Collect(tree *PathEntry, rootPath string) ([]FileRecord, []string) {
	logger := collector.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var records []FileRecord
	var warnings []string
	collector.collectEntry(tree, rootPath, logger, &records, &warnings)
	return records, warnings
}

func (collector Collector) collectEntry(entry *PathEntry, rootPath string, logger *zap.Logger, records *[]FileRecord, warnings *[]string) {
	if entry.IsDir {
		for _, child := range entry.Children {
			collector.collectEntry(child, rootPath, logger, records, warnings)
		}
		return
	}
	*records = append(*records, collector.readFile(entry, rootPath, logger, warnings))
}

// readFile produces the FileRecord for a single file entry.
func (collector Collector) readFile(entry *PathEntry, rootPath string, logger *zap.Logger, warnings *[]string) FileRecord {
	record := FileRecord{Path: entry.RelPath}
	fullPath := filepath.Join(rootPath, filepath.FromSlash(entry.RelPath))

	if collector.MaxFileBytes > 0 {
		info, err := os.Stat(fullPath)
		if err == nil && info.Size() > collector.MaxFileBytes {
			logger.Debug("File exceeds size cutoff, treating as binary",
				zap.String("path", entry.RelPath),
				zap.Int64("sizeBytes", info.Size()))
			record.Kind = RecordBinary
			return record
		}
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		logger.Warn("Failed to read file", zap.String("path", fullPath), zap.Error(err))
		record.Kind = RecordUnreadable
		record.ReadError = err.Error()
		*warnings = append(*warnings, fmt.Sprintf("Could not read file %s: %v", entry.RelPath, err))
		return record
	}

	switch {
	case len(content) == 0:
		record.Kind = RecordEmpty
	case collector.Classifier.IsBinary(content):
		record.Kind = RecordBinary
	case !utf8.Valid(content):
		logger.Warn("File content is not valid UTF-8", zap.String("path", fullPath))
		record.Kind = RecordUnreadable
		record.ReadError = "content is not valid UTF-8"
		*warnings = append(*warnings, fmt.Sprintf("Could not read file %s: content is not valid UTF-8", entry.RelPath))
	default:
		record.Kind = RecordText
		text := string(content)
		record.FinalNewline = strings.HasSuffix(text, "\n")
		if record.FinalNewline {
			text = strings.TrimSuffix(text, "\n")
		}
		record.Lines = strings.Split(text, "\n")
	}
	return record
}
