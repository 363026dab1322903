package config

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// condition is the mini-grammar for one warnFor.when entry's condition
// text, e.g. `path matches "vendor/**"` (§A.3 supplement). It is
// deliberately tiny: the only predicate is "path matches <glob>", but
// routing it through participle rather than hand-rolled string
// splitting keeps room for the grammar to grow (e.g. "path matches X
// or path matches Y") without touching the call sites.
type condition struct {
	Field   string `parser:"@Ident"`
	Matches string `parser:"\"matches\""`
	Pattern string `parser:"@String"`
}

var conditionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var conditionParser = participle.MustBuild[condition](
	participle.Lexer(conditionLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// parseCondition parses a `warnFor.when` condition string into the glob
// pattern it tests the source path against. Only "path matches <glob>"
// is supported; any other field name is rejected.
func parseCondition(text string) (string, error) {
	cond, err := conditionParser.ParseString("", text)
	if err != nil {
		return "", fmt.Errorf("config: parsing when-condition %q: %w", text, err)
	}
	if cond.Field != "path" {
		return "", fmt.Errorf("config: when-condition %q: unknown field %q, only \"path\" is supported", text, cond.Field)
	}
	return cond.Pattern, nil
}

// matchSegments reports whether path matches the "*"/"**" glob pattern
// pattern, split on "/". "*" matches exactly one path segment; "**"
// matches any number of segments (including zero).
func matchSegments(pattern, path string) (bool, error) {
	return matchParts(strings.Split(pattern, "/"), strings.Split(path, "/")), nil
}

func matchParts(pattern, path []string) bool {
	switch {
	case len(pattern) == 0:
		return len(path) == 0
	case pattern[0] == "**":
		if matchParts(pattern[1:], path) {
			return true
		}
		if len(path) == 0 {
			return false
		}
		return matchParts(pattern, path[1:])
	case len(path) == 0:
		return false
	case pattern[0] == "*" || pattern[0] == path[0]:
		return matchParts(pattern[1:], path[1:])
	default:
		return false
	}
}
