package tokenizer

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Options are options for the tokenizer. They are supplied at construction;
// the tokenizer never consults process-wide state.
type Options struct {
	// VerbatimEnvironments lists the environment names whose bodies are
	// captured literally instead of being tokenized.
	VerbatimEnvironments []string
	// CaptureVerbatims disables the capture altogether when false; the body
	// of a verbatim environment must then follow the regular grammar.
	CaptureVerbatims bool
}

// LatexTokenizer splits LaTeX source into tokens, one token per call. It
// keeps a single scan position and no lookahead buffer; successive tokens
// cover the input contiguously, nothing is ever skipped.
type LatexTokenizer struct {
	input   string
	opts    Options
	byteOff int      // byte offset of the scan position into input
	pos     Position // rune-based position matching byteOff
	last    Token    // most recently produced token
	done    bool     // end of input reached
}

// NewLatexTokenizer creates a tokenizer scanning input from the start.
func NewLatexTokenizer(input string, opts Options) *LatexTokenizer {
	return NewLatexTokenizerAt(input, 0, opts)
}

// NewLatexTokenizerAt creates a tokenizer whose scan starts at the given
// byte offset into input. Token positions account for everything before the
// offset, so line and column numbers refer to the whole input.
func NewLatexTokenizerAt(input string, byteOffset int, opts Options) *LatexTokenizer {
	return &LatexTokenizer{
		input:   input,
		opts:    opts,
		byteOff: byteOffset,
		pos:     Position{}.Advance(input[:byteOffset]),
	}
}

// Position returns the position of the next token to be scanned.
func (t *LatexTokenizer) Position() Position {
	return t.pos
}

// ByteOffset returns the byte offset of the next token to be scanned.
func (t *LatexTokenizer) ByteOffset() int {
	return t.byteOff
}

// Next produces the next token. At end of input it returns an EOF token and
// keeps returning it on subsequent calls.
func (t *LatexTokenizer) Next() (Token, error) {
	if t.done {
		return Token{Type: EOF, Start: t.pos}, nil
	}

	if t.byteOff >= len(t.input) {
		t.done = true
		t.last = Token{Type: EOF, Start: t.pos}

		return t.last, nil
	}

	// Right after \begin{name} of a configured verbatim environment the
	// body is captured by a literal search, never tokenized.
	if t.opts.CaptureVerbatims && t.last.Type == ENV_BEGIN &&
		slices.Contains(t.opts.VerbatimEnvironments, t.last.Value) {
		return t.captureVerbatim()
	}

	rest := t.input[t.byteOff:]

	tok, raw, ok := match(rest)
	if !ok {
		return Token{}, fmt.Errorf("%w at offset %d (looking at %q)",
			ErrTokenizerStuck, t.pos.Offset, truncate(rest, 16))
	}

	tok.Start = t.pos
	t.byteOff += len(raw)
	t.pos = t.pos.Advance(raw)
	t.last = tok

	return tok, nil
}

// Tokens returns an iterator of tokens ending with an EOF token.
func (t *LatexTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		for {
			token, err := t.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !yield(token, nil) {
				return
			}

			if token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice (for debugging)
func (t *LatexTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// captureVerbatim captures everything strictly before the literal closing
// marker of the environment named by the last token. The marker itself is
// tokenized normally on the following call.
func (t *LatexTokenizer) captureVerbatim() (Token, error) {
	name := t.last.Value
	marker := "\\end{" + name + "}"

	idx := strings.Index(t.input[t.byteOff:], marker)
	if idx == -1 {
		return Token{}, fmt.Errorf("%w: %q at offset %d",
			ErrUnclosedVerbatim, name, t.pos.Offset)
	}

	body := t.input[t.byteOff : t.byteOff+idx]
	tok := Token{Type: VERBATIM, Value: body, Start: t.pos}

	t.byteOff += idx
	t.pos = t.pos.Advance(body)
	t.last = tok

	return tok, nil
}

// Fixed delimiters, tried in order after the \begin/\end forms. \[ must come
// before the single-character command rule, $$ before $.
var delimiters = []struct {
	text string
	typ  TokenType
}{
	{`\[`, DMATH_BEGIN},
	{`\]`, DMATH_END},
	{`\(`, TMATH_BEGIN},
	{`\)`, TMATH_END},
	{"{", GROUP_BEGIN},
	{"}", GROUP_END},
	{"$$", DOUBLE_DOLLAR},
	{"$", DOLLAR},
}

// match applies the token rules to the start of rest, first match wins.
// It returns the token (without position) and the literal text consumed.
func match(rest string) (Token, string, bool) {
	if name, n, ok := matchEnv(rest, `\begin{`); ok {
		return Token{Type: ENV_BEGIN, Value: name}, rest[:n], true
	}

	if name, n, ok := matchEnv(rest, `\end{`); ok {
		return Token{Type: ENV_END, Value: name}, rest[:n], true
	}

	for _, d := range delimiters {
		if strings.HasPrefix(rest, d.text) {
			return Token{Type: d.typ, Value: d.text}, d.text, true
		}
	}

	if raw, ok := matchCommand(rest); ok {
		return Token{Type: COMMAND_NAME, Value: raw}, raw, true
	}

	if raw, ok := matchComment(rest); ok {
		return Token{Type: COMMENT, Value: raw}, raw, true
	}

	if raw, ok := matchText(rest); ok {
		return Token{Type: TEXT, Value: raw}, raw, true
	}

	return Token{}, "", false
}

// matchEnv matches prefix + [A-Za-z]+ + optional star + closing brace and
// returns the environment name and the total matched length.
func matchEnv(rest, prefix string) (string, int, bool) {
	if !strings.HasPrefix(rest, prefix) {
		return "", 0, false
	}

	s := rest[len(prefix):]

	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}

	if i == 0 {
		return "", 0, false
	}

	if i < len(s) && s[i] == '*' {
		i++
	}

	if i >= len(s) || s[i] != '}' {
		return "", 0, false
	}

	return s[:i], len(prefix) + i + 1, true
}

// matchCommand matches a backslash followed by one or more letters, or by
// exactly one arbitrary character other than a newline.
func matchCommand(rest string) (string, bool) {
	if len(rest) == 0 || rest[0] != '\\' {
		return "", false
	}

	s := rest[1:]

	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}

	if i > 0 {
		return rest[:1+i], true
	}

	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == '\n' {
		return "", false
	}

	return rest[:1+size], true
}

// matchComment matches % up to and including the next newline. A trailing
// comment with no newline does not match, as in the original grammar.
func matchComment(rest string) (string, bool) {
	if len(rest) == 0 || rest[0] != '%' {
		return "", false
	}

	idx := strings.IndexByte(rest, '\n')
	if idx == -1 {
		return "", false
	}

	return rest[:idx+1], true
}

// matchText matches one or more characters outside the reserved set \{}$%.
func matchText(rest string) (string, bool) {
	i := 0
	for i < len(rest) && !isReserved(rest[i]) {
		i++
	}

	if i == 0 {
		return "", false
	}

	return rest[:i], true
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isReserved(c byte) bool {
	return c == '\\' || c == '{' || c == '}' || c == '$' || c == '%'
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}

	return string(r[:limit]) + "..."
}
