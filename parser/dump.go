package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the tree with one node per line, each prefixed with
// "ooooo:llll-cc:" giving the scalar offset and 1-based line and column of
// the node, and indented four spaces per nesting level.
func (n *Node) Dump(w io.Writer) {
	n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%05d:%04d-%02d: %s%s: %s\n",
		n.Start.Offset, n.Start.Line+1, n.Start.Column+1,
		strings.Repeat("    ", depth), n.Kind, headText(n.Text))

	for _, c := range n.Children {
		c.dump(w, depth+1)
	}
}

// headText quotes the node text, eliding the middle past 16 runes.
func headText(s string) string {
	r := []rune(s)
	if len(r) <= 16 {
		return strconv.Quote(s)
	}

	return strconv.Quote(string(r[:8]) + "[...]" + string(r[len(r)-8:]))
}
