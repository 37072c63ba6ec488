package parser_test

import (
	"testing"

	"github.com/kolkov/stepl/internal/parser"
)

// FuzzParser exercises the parser against a broad seed corpus of valid
// and invalid programs, checking only that it never panics: every
// syntax error must surface as a returned error, not a crash.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"x = 1\n",
		"x = 1\nprint(x)\n",
		"xs = list()\n",
		"xs = list()\nxs.append(1)\nxs.append(2)\n",
		"xs = list()\nxs.append(1)\nxs[0] = 5\nprint(xs[0])\n",
		"if True:\n  print(1)\n",
		"if x < 5:\n  print(1)\nelif x < 10:\n  print(2)\nelse:\n  print(3)\n",
		"while x < 10:\n  x = x + 1\n",
		"while True:\n  if x == 5:\n    break\n  x = x + 1\n",
		"while True:\n  if x == 5:\n    continue\n  x = x + 1\n",
		"x = 1 + 2 * 3\n",
		"x = (1 + 2) * 3\n",
		"x = 10 // 3\n",
		"x = not True\n",
		"x = -5\n",
		"x = a and b or c\n",
		"x = a == b\n",
		"x = a != b\n",
		"x = a < b\n",
		"x = a <= b\n",
		"x = a > b\n",
		"x = a >= b\n",
		"\n\nx = 1\n\n\nprint(x)\n",

		// Invalid programs, must fail gracefully.
		"x = \n",
		"if x:\nprint(1)\n",
		"if x\n  print(1)\n",
		"x = list(\n",
		"x.append(\n",
		"break\n",
		"continue\n",
		"x = 1 +\n",
		"1 = x\n",
		"x[= 1\n",
		"while:\n  pass\n",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		const maxLen = 10000
		if len(src) > maxLen {
			return
		}
		_, _ = parser.Parse([]byte(src))
	})
}
