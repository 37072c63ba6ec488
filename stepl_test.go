package stepl_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/stepl"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		program string
		want    string
		wantErr bool
	}{
		{
			name:    "arithmetic",
			program: "print(1 + 2 * 3)\n",
			want:    "7\n",
		},
		{
			name: "list append and print",
			program: "xs = list()\n" +
				"xs.append(1)\n" +
				"xs.append(2)\n" +
				"print(xs)\n",
			want: "[1, 2]\n",
		},
		{
			name: "while loop",
			program: "i = 0\n" +
				"while i < 3:\n" +
				"  print(i)\n" +
				"  i = i + 1\n",
			want: "0\n1\n2\n",
		},
		{
			name:    "undefined variable",
			program: "print(x)\n",
			wantErr: true,
		},
		{
			name:    "syntax error",
			program: "x = \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stepl.Run(tt.program, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunWithOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	got, err := stepl.Run("print(42)\n", &stepl.Config{Output: &buf})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "" {
		t.Errorf("Run() returned %q, want empty string when Config.Output is set", got)
	}
	if buf.String() != "42\n" {
		t.Errorf("buf = %q, want %q", buf.String(), "42\n")
	}
}

func TestCompileAndRunMultipleTimesAreIndependent(t *testing.T) {
	prog, err := stepl.Compile("x = 1\nx = x + 1\nprint(x)\n")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := prog.Run(nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got != "2\n" {
			t.Errorf("run %d: output = %q, want %q (bindings must not leak across runs)", i, got, "2\n")
		}
	}
}

func TestCompileReturnsParseError(t *testing.T) {
	_, err := stepl.Compile("if True\n  print(1)\n")
	if err == nil {
		t.Fatal("Compile() succeeded, want a parse error")
	}
	var perr *stepl.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Compile() error = %T, want *stepl.ParseError", err)
	}
}

func TestMustCompilePanicsOnInvalidProgram(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile() did not panic on invalid program")
		}
	}()
	stepl.MustCompile("x = \n")
}

func TestExecWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := stepl.Exec("print(1)\nprint(2)\n", &buf); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if buf.String() != "1\n2\n" {
		t.Errorf("buf = %q, want %q", buf.String(), "1\n2\n")
	}
}

func TestExecReturnsRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	err := stepl.Exec("print(1 // 0)\n", &buf)
	if err == nil {
		t.Fatal("Exec() succeeded, want a runtime error")
	}
	var rerr *stepl.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("Exec() error = %T, want *stepl.RuntimeError", err)
	}
	if !strings.Contains(rerr.Error(), "Division by zero") {
		t.Errorf("error = %q, want substring %q", rerr.Error(), "Division by zero")
	}
}

func TestProgramDumpRoundTrips(t *testing.T) {
	prog, err := stepl.Compile("x = 1\nif x < 2:\n  print(x)\n")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	dump, err := prog.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(dump, "x = 1") || !strings.Contains(dump, "print(x)") {
		t.Errorf("Dump() = %q, missing expected statements", dump)
	}

	reparsed, err := stepl.Compile(dump)
	if err != nil {
		t.Fatalf("Compile(dump) error = %v", err)
	}
	out, err := reparsed.Run(nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "1\n" {
		t.Errorf("Run() on redumped program = %q, want %q", out, "1\n")
	}
}

func TestProgramSource(t *testing.T) {
	src := "print(1)\n"
	prog, err := stepl.Compile(src)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if prog.Source() != src {
		t.Errorf("Source() = %q, want %q", prog.Source(), src)
	}
}
