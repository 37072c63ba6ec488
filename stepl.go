// Package stepl implements a tiny, strictly-typed, indentation-sensitive
// imperative language: an interpreter embeddable as a library or driven
// from the command line.
package stepl

import (
	"io"

	"github.com/kolkov/stepl/internal/parser"
)

// Version is the stepl version string.
const Version = "0.1.0"

// Run parses and executes a program in one step. This is a convenience
// function for one-off execution; for repeated execution of the same
// program, use Compile followed by Program.Run.
//
// Example:
//
//	output, err := stepl.Run("print(1 + 2)\n", nil)
//	// output: "3\n"
func Run(program string, config *Config) (string, error) {
	prog, err := Compile(program)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Compile parses a program for execution. The returned Program can be
// run multiple times, each with an independent set of variable
// bindings.
//
// Example:
//
//	prog, err := stepl.Compile("x = 1\nprint(x)\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, _ := prog.Run(nil)
func Compile(program string) (*Program, error) {
	parsed, err := parser.Parse([]byte(program))
	if err != nil {
		return nil, newParseError(err)
	}
	return &Program{parsed: parsed, source: program}, nil
}

// Exec is a simplified interface for running a program with explicit
// control over the output writer: useful for integration into I/O
// pipelines, or for streaming output directly rather than collecting
// it in memory.
//
// Example:
//
//	err := stepl.Exec("print(1 + 2)\n", os.Stdout)
func Exec(program string, output io.Writer) error {
	prog, err := Compile(program)
	if err != nil {
		return err
	}
	_, err = prog.Run(&Config{Output: output})
	return err
}

// MustCompile is like Compile but panics if the program cannot be
// parsed. It simplifies initialization of global program variables.
//
// Example:
//
//	var greet = stepl.MustCompile("print(1)\n")
func MustCompile(program string) *Program {
	prog, err := Compile(program)
	if err != nil {
		panic(err)
	}
	return prog
}
