package selector

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/texchew/texchew/parser"
	"github.com/texchew/texchew/tokenizer"
)

func TestParseForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Selector
	}{
		{
			name:     "command by backslash form",
			input:    `\section`,
			expected: Selector{Kind: parser.CNAME, Value: `\section`},
		},
		{
			name:     "command by m: form",
			input:    "m:section",
			expected: Selector{Kind: parser.CNAME, Value: `\section`},
		},
		{
			name:     "environment by brace form",
			input:    "{itemize}",
			expected: Selector{Kind: parser.ENV, Value: "itemize"},
		},
		{
			name:     "environment by e: form",
			input:    "e:itemize",
			expected: Selector{Kind: parser.ENV, Value: "itemize"},
		},
		{
			name:     "comment by percent form",
			input:    "%CHUNK",
			expected: Selector{Kind: parser.COMMENT, Value: "CHUNK"},
		},
		{
			name:     "comment by c: form",
			input:    "c:CHUNK",
			expected: Selector{Kind: parser.COMMENT, Value: "CHUNK"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sel, err := Parse(test.input)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, sel)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"section", "x:abc", "{abc", "abc}", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.True(t, errors.Is(err, ErrInvalidSelector))
		})
	}
}

func TestParseAll(t *testing.T) {
	sels, err := ParseAll([]string{`\section`, "e:itemize"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(sels))

	_, err = ParseAll([]string{`\section`, "bogus"})
	assert.True(t, errors.Is(err, ErrInvalidSelector))
}

func TestCommentMatchesFirstWordExactly(t *testing.T) {
	sel := Selector{Kind: parser.COMMENT, Value: "foo"}

	tests := []struct {
		name     string
		comment  string
		expected bool
	}{
		{name: "exact first word", comment: "% foo bar\n", expected: true},
		{name: "no space after percent", comment: "%foo\n", expected: true},
		{name: "prefix does not match", comment: "% foobar\n", expected: false},
		{name: "substring does not match", comment: "% bar foo\n", expected: false},
		{name: "empty comment has no first word", comment: "%\n", expected: false},
		{name: "whitespace-only comment", comment: "%   \n", expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := &parser.Node{Kind: parser.COMMENT, Text: test.comment}
			assert.Equal(t, test.expected, sel.Matches(node))
		})
	}
}

func TestSelectTopLevel(t *testing.T) {
	src := "\\begin{document}\n" +
		"\\section{A}\n" +
		"\\begin{itemize}\\item x\\end{itemize}\n" +
		"% CHUNK one\n" +
		"\\section{B}\n" +
		"\\end{document}"

	root, err := parser.Parse(src, tokenizer.Options{})
	assert.NoError(t, err)

	body := root.Children[1].Children

	tests := []struct {
		name     string
		args     []string
		expected []int
	}{
		{
			name:     "command selector finds both sections",
			args:     []string{"m:section"},
			expected: []int{1, 7},
		},
		{
			name:     "environment selector",
			args:     []string{"{itemize}"},
			expected: []int{4},
		},
		{
			name:     "comment selector",
			args:     []string{"%CHUNK"},
			expected: []int{6},
		},
		{
			name:     "selectors combine with OR in body order",
			args:     []string{"%CHUNK", "m:section"},
			expected: []int{1, 6, 7},
		},
		{
			name: "nested command is invisible at top level",
			// \item sits inside the itemize environment, anchors only see
			// the flat top-level sequence.
			args:     []string{`\item`},
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sels, err := ParseAll(test.args)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, Select(body, sels))
		})
	}
}
