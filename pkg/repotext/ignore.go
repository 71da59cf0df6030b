package repotext

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFileName is the ignore-rule source the pipeline reads at the root.
// The file itself is always excluded from the render, regardless of patterns.
const IgnoreFileName = ".gitignore"

// defaultIgnorePatterns are applied after any user-supplied patterns and
// cover common VCS, cache, and build-artifact locations.
var defaultIgnorePatterns = []string{
	".git/",
	".svn/",
	".hg/",
	".DS_Store",
	"__pycache__/",
	"*.pyc",
	"*.pyo",
	"*.pyd",
	"*$py.class",
	"*.so",
	"build/",
	"dist/",
	"downloads/",
	"eggs/",
	".eggs/",
	"lib/",
	"lib64/",
	"parts/",
	"sdist/",
}

// IgnoreRule is one compiled ignore pattern together with its match semantics.
type IgnoreRule struct {
	Expr    *regexp.Regexp // Compiled expression for the pattern body.
	Negate  bool           // True when the pattern re-includes matches ('!' prefix).
	DirOnly bool           // True when the pattern applies to directories only (trailing '/').
	Line    string         // Original pattern line, kept for diagnostics.
}

// matches reports whether the rule applies to the given slash-separated
// relative path. A rule that matched an ancestor directory of the path
// applies unconditionally; a direct match of a directory-only rule applies
// only when the path itself is a directory.
func (rule *IgnoreRule) matches(relPath string, isDir bool) bool {
	submatch := rule.Expr.FindStringSubmatch(relPath)
	if submatch == nil {
		return false
	}
	if submatch[1] != "" {
		return true
	}
	if rule.DirOnly && !isDir {
		return false
	}
	return true
}

// RuleSet is an ordered sequence of ignore rules. Rules are evaluated in
// order and the last matching rule decides the outcome, mirroring gitignore
// precedence.
type RuleSet struct {
	rules []*IgnoreRule
}

// BuildRuleSet compiles the raw text of an ignore file plus the built-in
// default patterns into a RuleSet. A missing or empty source is not an
// error; it is reported through the returned warnings so the caller decides
// how to surface it.
func BuildRuleSet(source IgnoreSource, useDefaults bool) (*RuleSet, []string) {
	var warnings []string
	ruleSet := &RuleSet{}

	if !source.Found {
		warnings = append(warnings, IgnoreFileName+" file not found. Using default ignore patterns.")
	} else {
		lines := strings.Split(source.Text, "\n")
		compiled := ruleSet.compileLines(lines...)
		if compiled == 0 {
			warnings = append(warnings, IgnoreFileName+" is empty.")
		}
	}

	if useDefaults {
		ruleSet.compileLines(defaultIgnorePatterns...)
	}
	return ruleSet, warnings
}

// compileLines parses pattern lines into rules, skipping comments and blank
// lines, and returns the number of rules added.
func (ruleSet *RuleSet) compileLines(lines ...string) int {
	added := 0
	for _, line := range lines {
		rule := parsePatternLine(line)
		if rule != nil {
			ruleSet.rules = append(ruleSet.rules, rule)
			added++
		}
	}
	return added
}

// Len returns the number of compiled rules.
func (ruleSet *RuleSet) Len() int {
	return len(ruleSet.rules)
}

// IsIgnored reports whether the slash-separated path relative to the root
// is excluded. The ignore file itself is always excluded. All rules are
// evaluated in order; the last matching rule wins, so a later negation
// re-includes a path excluded by an earlier rule.
func (ruleSet *RuleSet) IsIgnored(relPath string, isDir bool) bool {
	normalized := filepath.ToSlash(relPath)
	if normalized == "" || normalized == "." {
		return false
	}
	if path.Base(normalized) == IgnoreFileName {
		return true
	}

	ignored := false
	for _, rule := range ruleSet.rules {
		if rule.matches(normalized, isDir) {
			ignored = !rule.Negate
		}
	}
	return ignored
}

// parsePatternLine processes a single ignore-file line into a rule.
// Returns nil for comments, blank lines, and patterns that fail to compile.
func parsePatternLine(line string) *IgnoreRule {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmedLine, "!") {
		negate = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "!")
	}

	// Escaped '#' and '!' lose their special meaning.
	if strings.HasPrefix(trimmedLine, `\#`) || strings.HasPrefix(trimmedLine, `\!`) {
		trimmedLine = trimmedLine[1:]
	}

	dirOnly := false
	if strings.HasSuffix(trimmedLine, "/") {
		dirOnly = true
		trimmedLine = strings.TrimSuffix(trimmedLine, "/")
	}

	// A pattern containing a slash is anchored to the root; otherwise it
	// matches at any depth.
	anchored := false
	if strings.HasPrefix(trimmedLine, "/") {
		anchored = true
		trimmedLine = strings.TrimPrefix(trimmedLine, "/")
	} else if strings.Contains(trimmedLine, "/") {
		anchored = true
	}

	if trimmedLine == "" {
		return nil
	}

	expr, err := buildRuleExpr(trimmedLine, anchored)
	if err != nil {
		return nil
	}

	return &IgnoreRule{
		Expr:    expr,
		Negate:  negate,
		DirOnly: dirOnly,
		Line:    line,
	}
}
