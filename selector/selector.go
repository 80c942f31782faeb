// Package selector compiles selector strings and matches them against the
// top-level nodes of a parsed document body. Selectors never look inside
// constructs; only the flat sequence handed to Select is inspected.
package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/texchew/texchew/parser"
)

// ErrInvalidSelector is returned for a selector string in none of the known forms
var ErrInvalidSelector = errors.New("invalid selector")

// Selector is a compiled selector. Kind is CNAME, ENV or COMMENT; Value is
// the full command name (with backslash), the environment name, or the
// required first word of the comment.
type Selector struct {
	Kind  parser.NodeKind
	Value string
}

// Parse compiles a selector string. The accepted forms are \NAME or m:NAME
// for commands, {NAME} or e:NAME for environments, and %WORD or c:WORD for
// comments whose first whitespace-delimited word equals WORD.
func Parse(s string) (Selector, error) {
	switch {
	case strings.HasPrefix(s, `\`):
		return Selector{Kind: parser.CNAME, Value: s}, nil
	case strings.HasPrefix(s, "m:"):
		return Selector{Kind: parser.CNAME, Value: `\` + s[2:]}, nil
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return Selector{Kind: parser.ENV, Value: s[1 : len(s)-1]}, nil
	case strings.HasPrefix(s, "e:"):
		return Selector{Kind: parser.ENV, Value: s[2:]}, nil
	case strings.HasPrefix(s, "%"):
		return Selector{Kind: parser.COMMENT, Value: s[1:]}, nil
	case strings.HasPrefix(s, "c:"):
		return Selector{Kind: parser.COMMENT, Value: s[2:]}, nil
	default:
		return Selector{}, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
}

// ParseAll compiles a list of selector strings.
func ParseAll(args []string) ([]Selector, error) {
	sels := make([]Selector, 0, len(args))

	for _, arg := range args {
		sel, err := Parse(arg)
		if err != nil {
			return nil, err
		}

		sels = append(sels, sel)
	}

	return sels, nil
}

// Matches reports whether the node matches this selector. Command and
// environment selectors compare the node text exactly; a comment selector
// compares its word against the first whitespace-delimited word of the
// comment after the leading %. A comment with no words matches nothing.
func (s Selector) Matches(n *parser.Node) bool {
	if s.Kind == parser.COMMENT {
		if n.Kind != parser.COMMENT {
			return false
		}

		words := strings.Fields(n.Text[1:])

		return len(words) > 0 && words[0] == s.Value
	}

	return n.Kind == s.Kind && n.Text == s.Value
}

// Select returns the indices, in ascending order, of the nodes matching any
// of the given selectors.
func Select(nodes []*parser.Node, sels []Selector) []int {
	var matched []int

	for i, n := range nodes {
		for _, s := range sels {
			if s.Matches(n) {
				matched = append(matched, i)
				break
			}
		}
	}

	return matched
}
