package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/texchew/texchew"
	"github.com/texchew/texchew/chunk"
	"github.com/texchew/texchew/parser"
	"github.com/texchew/texchew/selector"
	"github.com/texchew/texchew/tokenizer"
)

// LexerCmd represents the lexer command
type LexerCmd struct {
	Input string `arg:"" help:"LaTeX source file, or - for standard input"`
}

// Run executes the lexer command
func (cmd *LexerCmd) Run(ctx *Context) error {
	src, opts, err := loadInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	tk := tokenizer.NewLatexTokenizer(src, opts)
	for tok, err := range tk.Tokens() {
		if err != nil {
			return err
		}

		if tok.Type == tokenizer.EOF {
			break
		}

		fmt.Println(formatTokenLine(tok))
	}

	return nil
}

// TreeCmd represents the tree command
type TreeCmd struct {
	Input string `arg:"" help:"LaTeX source file, or - for standard input"`
}

// Run executes the tree command
func (cmd *TreeCmd) Run(ctx *Context) error {
	src, opts, err := loadInput(ctx, cmd.Input)
	if err != nil {
		return err
	}

	root, err := parser.Parse(src, opts)
	if err != nil {
		return err
	}

	root.Dump(os.Stdout)

	return nil
}

// AnchorsCmd represents the anchors command
type AnchorsCmd struct {
	Input     string   `arg:"" help:"LaTeX source file, or - for standard input"`
	Selectors []string `arg:"" name:"selector" help:"Selectors: \\\\NAME or m:NAME, {NAME} or e:NAME, %WORD or c:WORD"`
}

// Run executes the anchors command
func (cmd *AnchorsCmd) Run(ctx *Context) error {
	body, anchors, err := selectAnchors(ctx, cmd.Input, cmd.Selectors)
	if err != nil {
		return err
	}

	for _, a := range anchors {
		fmt.Println(formatAnchorLine(body[a]))
	}

	return nil
}

// ChunksCmd represents the chunks command
type ChunksCmd struct {
	Input     string   `arg:"" help:"LaTeX source file, or - for standard input"`
	Selectors []string `arg:"" name:"selector" help:"Selectors: \\\\NAME or m:NAME, {NAME} or e:NAME, %WORD or c:WORD"`
}

// Run executes the chunks command
func (cmd *ChunksCmd) Run(ctx *Context) error {
	body, anchors, err := selectAnchors(ctx, cmd.Input, cmd.Selectors)
	if err != nil {
		return err
	}

	chunks, err := chunk.Compute(body, anchors)
	if err != nil {
		return err
	}

	for _, c := range chunks {
		fmt.Println(formatChunkLine(c))
	}

	return nil
}

// selectAnchors parses the input, compiles the selectors and applies them to
// the direct children of the document body.
func selectAnchors(ctx *Context, input string, args []string) ([]*parser.Node, []int, error) {
	sels, err := selector.ParseAll(args)
	if err != nil {
		return nil, nil, err
	}

	src, opts, err := loadInput(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	root, err := parser.Parse(src, opts)
	if err != nil {
		return nil, nil, err
	}

	body := root.Children[1].Children

	return body, selector.Select(body, sels), nil
}

// loadInput reads the source text and resolves the tokenizer options from
// the configuration.
func loadInput(ctx *Context, input string) (string, tokenizer.Options, error) {
	config, err := texchew.LoadConfig(ctx.Config)
	if err != nil {
		return "", tokenizer.Options{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := config.TokenizerOptions()

	if ctx.Verbose && !ctx.Quiet {
		color.Blue("Verbatim environments: %v (capture: %t)",
			opts.VerbatimEnvironments, opts.CaptureVerbatims)
	}

	src, err := readInput(input)
	if err != nil {
		return "", tokenizer.Options{}, err
	}

	return src, opts, nil
}

// readInput reads a file, or standard input for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}

	return string(data), nil
}

func formatTokenLine(tok tokenizer.Token) string {
	return fmt.Sprintf("%d %d %d %s : %s",
		tok.Start.Offset, tok.Start.Line, tok.Start.Column,
		tok.Type, tailQuote(tok.Value, 16))
}

func formatAnchorLine(n *parser.Node) string {
	return fmt.Sprintf("line %d char %d kind %s name %s",
		n.Start.Line+1, n.Start.Offset, n.Kind, truncQuote(n.Text, 32))
}

func formatChunkLine(c chunk.Chunk) string {
	return fmt.Sprintf("lines %d %d chars %d %d",
		c.StartLine, c.EndLine, c.Offset, c.Length)
}

// tailQuote quotes s, replacing everything past limit runes with an
// ellipsis inside the quotes.
func tailQuote(s string, limit int) string {
	r := []rune(s)
	if len(r) < limit {
		return strconv.Quote(s)
	}

	return strconv.Quote(string(r[:limit]) + "...")
}

// truncQuote quotes at most limit runes of s; the elision marker sits
// outside the quotes. This is the anchor-listing representation consumed by
// downstream tooling.
func truncQuote(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return strconv.Quote(s)
	}

	return strconv.Quote(string(r[:limit])) + "[...]"
}
