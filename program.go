package stepl

import (
	"bytes"

	"github.com/kolkov/stepl/internal/ast"
	"github.com/kolkov/stepl/internal/eval"
)

// Program represents a parsed program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent evaluation context, so the same Program can be run many
// times without one run's bindings leaking into another's.
type Program struct {
	parsed *ast.Program
	source string // original source, for debugging
}

// Run executes the program and returns its printed output as a
// string, or an error if evaluation fails.
//
// If config is nil, or config.Output is nil, output is captured in
// memory and returned as a string. If config.Output is set, output is
// written there instead and the returned string is empty.
func (p *Program) Run(config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}

	var buf bytes.Buffer
	out := config.Output
	if out == nil {
		out = &buf
	}

	if err := eval.New(out).Run(p.parsed); err != nil {
		return "", newRuntimeError(err)
	}

	if config.Output == nil {
		return buf.String(), nil
	}
	return "", nil
}

// Dump returns a canonical, re-parseable rendering of the program's
// syntax tree. Useful for debugging and for verifying that parsing
// preserved a program's meaning.
func (p *Program) Dump() (string, error) {
	var buf bytes.Buffer
	if err := ast.NewPrinter(&buf).Print(p.parsed); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Source returns the original program source.
func (p *Program) Source() string {
	return p.source
}
