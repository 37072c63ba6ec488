// Package parser implements a recursive-descent parser for the language.
package parser

import (
	"fmt"

	"github.com/kolkov/stepl/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
//
// Error deliberately omits position information: the language's CLI
// contract reports a single bare "Error: <message>" diagnostic with no
// line/column decoration. Pos is still recorded so callers that want it
// (tests, tooling) can inspect where the failure occurred.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return nil
}

func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
