package repotext

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// BuildTree walks the directory at rootPath depth-first and returns the
// resulting PathEntry tree rooted at it. Ignored entries are skipped without
// descending into them. A subdirectory that cannot be listed becomes an
// empty node and contributes a warning; only a root that cannot be listed
// at all is an error.
func BuildTree(rootPath string, ruleSet *RuleSet, logger *zap.Logger) (*PathEntry, []string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	root := &PathEntry{
		Name:    filepath.Base(rootPath),
		RelPath: ".",
		IsDir:   true,
	}

	var warnings []string
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read root directory %s: %w", rootPath, err)
	}

	root.Children = buildChildren(rootPath, "", entries, ruleSet, &warnings, logger)
	return root, warnings, nil
}

// buildChildren converts one directory listing into ordered child entries,
// descending into non-ignored subdirectories.
func buildChildren(dirPath, relDir string, entries []os.DirEntry, ruleSet *RuleSet, warnings *[]string, logger *zap.Logger) []*PathEntry {
	sortEntries(entries)

	var children []*PathEntry
	for _, entry := range entries {
		relPath := entry.Name()
		if relDir != "" {
			relPath = relDir + "/" + entry.Name()
		}

		if ruleSet.IsIgnored(relPath, entry.IsDir()) {
			logger.Debug("Skipping ignored entry", zap.String("path", relPath))
			continue
		}

		child := &PathEntry{
			Name:    entry.Name(),
			RelPath: relPath,
			IsDir:   entry.IsDir(),
		}

		if entry.IsDir() {
			childPath := filepath.Join(dirPath, entry.Name())
			subEntries, err := os.ReadDir(childPath)
			if err != nil {
				logger.Warn("Failed to read directory", zap.String("path", childPath), zap.Error(err))
				*warnings = append(*warnings, fmt.Sprintf("Could not list directory %s: %v", relPath, err))
			} else {
				child.Children = buildChildren(childPath, relPath, subEntries, ruleSet, warnings, logger)
			}
		}
		children = append(children, child)
	}
	return children
}

// sortEntries orders a directory listing deterministically: directories
// first, then files, each group case-insensitively by name.
func sortEntries(entries []os.DirEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		lowerI, lowerJ := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if lowerI != lowerJ {
			return lowerI < lowerJ
		}
		return entries[i].Name() < entries[j].Name()
	})
}
