package stepl

import "io"

// Config holds configuration options for program execution.
type Config struct {
	// Output is the writer that receives print statement output.
	// If nil, output is captured and returned from Run.
	Output io.Writer
}
