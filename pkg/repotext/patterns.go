package repotext

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
	doubleStarBarePattern     = regexp.MustCompile(`\*\*`)
	singleStarPattern         = regexp.MustCompile(`\*`)
)

// Placeholder bytes stand in for '**' expansions until the single-star pass
// has run, so the pass cannot mangle stars introduced by the expansion.
const (
	anyDirsToken   = "\x01" // expands to (?:.*/)?
	anySuffixToken = "\x02" // expands to .*
)

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns replaces '**' patterns with placeholder tokens.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllString(pattern, "/"+anyDirsToken)
	pattern = doubleStarTrailingPattern.ReplaceAllString(pattern, "/"+anySuffixToken)
	pattern = doubleStarLeadingPattern.ReplaceAllString(pattern, anyDirsToken)
	pattern = doubleStarBarePattern.ReplaceAllString(pattern, anySuffixToken)
	return pattern
}

// wildcardToRegex converts '*' and '?' wildcards to regex equivalents and
// expands the placeholder tokens. A single '*' never crosses a path separator.
func wildcardToRegex(pattern string) string {
	pattern = singleStarPattern.ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", `[^/]`)
	pattern = strings.ReplaceAll(pattern, anyDirsToken, `(?:.*/)?`)
	pattern = strings.ReplaceAll(pattern, anySuffixToken, `.*`)
	return pattern
}

// buildRuleExpr compiles one normalized pattern body into an anchored regex.
// Unanchored patterns may match at any depth; the trailing '(/.*)?' group
// captures whether the match covered an ancestor directory of the tested path.
func buildRuleExpr(body string, anchored bool) (*regexp.Regexp, error) {
	expr := escapeSpecialChars(body)
	expr = handleDoubleStarPatterns(expr)
	expr = wildcardToRegex(expr)

	prefix := `^(?:.*/)?`
	if anchored {
		prefix = `^`
	}
	return regexp.Compile(prefix + expr + `(/.*)?$`)
}
