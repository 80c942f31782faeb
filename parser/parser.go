package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/texchew/texchew/tokenizer"
)

// DocumentMarker separates the preamble from the parsed body. The preamble
// is located by a literal search and never tokenized.
const DocumentMarker = `\begin{document}`

// Sentinel errors
var (
	ErrDocumentMarkerMissing = errors.New(`\begin{document} not found`)
	ErrMismatchedConstruct   = errors.New("wrong closing construct")
)

// ParseError represents a parse failure with its source context.
type ParseError struct {
	Err   error
	Token tokenizer.Token // the offending token
	Open  *Node           // innermost open construct at the point of failure
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at %d:%d (looking at %s, inside %s %q)",
		e.Err, e.Token.Start.Line, e.Token.Start.Column,
		e.Token, e.Open.Kind, e.Open.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// frame is an open construct on the parse stack. The opening token is kept
// because closing is checked against it, not against the merged node kind
// ($$ and \[ both build DMATH nodes but close differently).
type frame struct {
	node *Node
	open tokenizer.Token
}

// closes reports whether tok closes the construct opened by open. An
// environment closes only on \end with the same name; every other construct
// closes on its fixed counterpart.
func closes(open tokenizer.Token, tok tokenizer.Token) bool {
	switch open.Type {
	case tokenizer.ENV_BEGIN:
		return tok.Type == tokenizer.ENV_END && tok.Value == open.Value
	case tokenizer.DMATH_BEGIN:
		return tok.Type == tokenizer.DMATH_END
	case tokenizer.TMATH_BEGIN:
		return tok.Type == tokenizer.TMATH_END
	case tokenizer.GROUP_BEGIN:
		return tok.Type == tokenizer.GROUP_END
	case tokenizer.DOUBLE_DOLLAR:
		return tok.Type == tokenizer.DOUBLE_DOLLAR
	case tokenizer.DOLLAR:
		return tok.Type == tokenizer.DOLLAR
	default:
		return false
	}
}

// Parse builds the syntax tree of a complete LaTeX source. The returned FILE
// root has exactly three children: a PREAMBLE leaf, the document ENV, and a
// POSTAMBLE leaf. The root's own position is one past the final character of
// the input.
func Parse(src string, opts tokenizer.Options) (*Node, error) {
	d := strings.Index(src, DocumentMarker)
	if d == -1 {
		return nil, ErrDocumentMarkerMissing
	}

	preamble := src[:d]
	root := &Node{Kind: FILE, Children: []*Node{
		{Kind: PREAMBLE, Text: preamble, Start: tokenizer.Position{}},
	}}

	tk := tokenizer.NewLatexTokenizerAt(src, d, opts)

	// The first token is the \begin{document} itself.
	open, err := tk.Next()
	if err != nil {
		return nil, err
	}

	doc, err := buildConstruct(tk, open)
	if err != nil {
		return nil, err
	}

	root.Children = append(root.Children, doc)

	postamble := src[tk.ByteOffset():]
	root.Children = append(root.Children,
		&Node{Kind: POSTAMBLE, Text: postamble, Start: tk.Position()})
	root.Start = tk.Position().Advance(postamble)

	return root, nil
}

// buildConstruct consumes tokens until the construct opened by open (and
// every construct nested in it) is closed, and returns its node. It keeps
// the open constructs on an explicit heap-allocated stack, so nesting depth
// is bounded by memory, not by the call stack.
func buildConstruct(tk *tokenizer.LatexTokenizer, open tokenizer.Token) (*Node, error) {
	stack := []*frame{newFrame(open)}

	tok, err := tk.Next()
	if err != nil {
		return nil, err
	}

	for {
		top := stack[len(stack)-1]

		switch {
		case closes(top.open, tok):
			top.node.Children = append(top.node.Children,
				&Node{Kind: END, Text: tok.Value, Start: tok.Start})
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				// The outermost construct just closed; its closing token is
				// consumed and the scan position is right behind it.
				return top.node, nil
			}

			parent := stack[len(stack)-1]
			parent.node.Children = append(parent.node.Children, top.node)

		case tok.Type.OpensConstruct():
			stack = append(stack, newFrame(tok))

		case tok.Type.IsAtom():
			top.node.Children = append(top.node.Children,
				&Node{Kind: nodeKind(tok.Type), Text: tok.Value, Start: tok.Start})

		default:
			// A closer that does not match the innermost construct, or EOF
			// while constructs are still open.
			return nil, &ParseError{Err: ErrMismatchedConstruct, Token: tok, Open: top.node}
		}

		tok, err = tk.Next()
		if err != nil {
			return nil, err
		}
	}
}

func newFrame(open tokenizer.Token) *frame {
	return &frame{
		node: &Node{Kind: nodeKind(open.Type), Text: open.Value, Start: open.Start, Children: []*Node{}},
		open: open,
	}
}
