// Package texchew parses LaTeX sources into a lossless concrete syntax tree
// using purely syntactic rules, and locates the top-level elements and the
// text ranges between them. No macro expansion or semantic interpretation is
// ever attempted; unrecognized constructs survive as plain text or raise a
// parse error, they are never silently rewritten.
//
// The parsing pipeline lives in the subpackages: tokenizer (position-tracked
// lexing with verbatim capture), parser (tree building and the document
// split), selector (anchor selection) and chunk (range computation). This
// package only carries the project configuration.
package texchew
