// Package chunk computes the contiguous source ranges between selected
// anchors of a document body. The emitted chunks tile the body exactly:
// consecutive chunks share a boundary and their lengths sum to the distance
// from the adjusted body start to the closing \end{document}.
package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/texchew/texchew/parser"
	"github.com/texchew/texchew/tokenizer"
)

// Sentinel errors
var (
	ErrTrailingContent       = errors.New(`trailing content right after \begin{document}`)
	ErrAnchorNotAtColumnZero = errors.New("anchor not in column 0")
)

// Chunk describes one range. StartLine is 1-based. EndLine is the raw
// 0-based line of the next boundary, kept exactly as the original tool
// reported it; the asymmetry is deliberate and must not be "fixed" here.
// Offset and Length count Unicode scalar values.
type Chunk struct {
	StartLine int
	EndLine   int
	Offset    int
	Length    int
}

// Compute emits one chunk per consecutive pair of boundaries, where the
// boundaries are the body start (its leading newline stripped), the selected
// anchors in ascending index order, and the closing END sentinel.
//
// The body's first child must be plain text starting with a newline, and
// every anchor, as well as the END sentinel, must start in column 0.
func Compute(body []*parser.Node, anchors []int) ([]Chunk, error) {
	start := body[0]
	if start.Kind != parser.TEXT || !strings.HasPrefix(start.Text, "\n") {
		return nil, ErrTrailingContent
	}

	end := body[len(body)-1]

	for _, a := range anchors {
		if err := checkColumn(body[a]); err != nil {
			return nil, err
		}
	}

	if err := checkColumn(end); err != nil {
		return nil, err
	}

	bounds := make([]tokenizer.Position, 0, len(anchors)+2)
	bounds = append(bounds, start.Start.Advance("\n"))

	for _, a := range anchors {
		bounds = append(bounds, body[a].Start)
	}

	bounds = append(bounds, end.Start)

	chunks := make([]Chunk, 0, len(bounds)-1)

	for i := 0; i+1 < len(bounds); i++ {
		cur, next := bounds[i], bounds[i+1]
		chunks = append(chunks, Chunk{
			StartLine: cur.Line + 1,
			EndLine:   next.Line,
			Offset:    cur.Offset,
			Length:    next.Offset - cur.Offset,
		})
	}

	return chunks, nil
}

func checkColumn(n *parser.Node) error {
	if n.Start.Column != 0 {
		return fmt.Errorf("%w (%d:%d)", ErrAnchorNotAtColumnZero, n.Start.Line, n.Start.Column)
	}

	return nil
}
