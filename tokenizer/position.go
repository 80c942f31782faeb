package tokenizer

// Position represents a location in the source text. Offset counts Unicode
// scalar values from the start of the input, not bytes. Line and Column are
// 0-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Advance returns the position reached after consuming text, rune by rune.
// The receiver is left untouched.
func (p Position) Advance(text string) Position {
	for _, r := range text {
		p.Offset++
		if r == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
	}
	return p
}
