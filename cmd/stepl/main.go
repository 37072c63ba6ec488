// stepl - interpreter for a small, strictly-typed, indentation-sensitive
// imperative language.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kolkov/stepl"
)

const shortUsage = "Usage: %s <source_file>\n"

func main() {
	args := os.Args[1:]

	debug := false
	if len(args) > 0 && args[0] == "-d" {
		debug = true
		args = args[1:]
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, shortUsage, os.Args[0])
		os.Exit(1)
	}

	source, err := readSource(args[0])
	if err != nil {
		errorExit(err)
	}

	prog, err := stepl.Compile(source)
	if err != nil {
		errorExit(err)
	}

	if debug {
		dump, err := prog.Dump()
		if err != nil {
			errorExit(err)
		}
		fmt.Fprint(os.Stderr, dump)
		os.Exit(0)
	}

	stdout := bufio.NewWriter(os.Stdout)
	_, runErr := prog.Run(&stepl.Config{Output: stdout})
	stdout.Flush()
	if runErr != nil {
		errorExit(runErr)
	}
}

// readSource reads a program file, normalizing CRLF and lone-CR line
// endings to LF so the lexer only ever has to reason about "\n".
func readSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Cannot open file %s", path)
	}
	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized, nil
}

func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
