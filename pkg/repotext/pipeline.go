package repotext

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Run executes the full materialization pipeline: compile ignore rules,
// build the tree, collect file contents, and render both output variants.
// Warnings from the stages are accumulated and returned alongside the
// result; only a missing, non-directory, or unlistable root is fatal.
func Run(rootPath string, ignore IgnoreSource, opts Options, logger *zap.Logger) (*RenderResult, []string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	startTime := time.Now()
	logger.Debug("Starting repository materialization", zap.String("root", rootPath))

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, nil, fmt.Errorf("root directory %s does not exist: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("root path %s is not a directory", rootPath)
	}

	ruleSet, warnings := BuildRuleSet(ignore, opts.UseDefaults)
	logger.Debug("Compiled ignore rules", zap.Int("ruleCount", ruleSet.Len()))

	tree, treeWarnings, err := BuildTree(rootPath, ruleSet, logger)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, treeWarnings...)

	collector := Collector{
		Classifier:   Classifier{SniffBytes: opts.SniffBytes, Threshold: opts.BinaryThreshold},
		MaxFileBytes: opts.MaxFileBytes,
		Logger:       logger,
	}
	records, collectWarnings := collector.Collect(tree, rootPath)
	warnings = append(warnings, collectWarnings...)

	result := Render(tree, records, opts.PreviewLines)
	result.Elapsed = time.Since(startTime)

	logger.Info("Completed repository materialization",
		zap.String("root", rootPath),
		zap.Int("fileCount", len(records)),
		zap.Int("warningCount", len(warnings)),
		zap.Duration("elapsed", result.Elapsed))
	return &result, warnings, nil
}
