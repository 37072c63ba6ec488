package lexer

import (
	"testing"

	"github.com/kolkov/stepl/internal/token"
)

// FuzzScan checks that the lexer never panics and always terminates,
// regardless of input: either by reaching ENDMARKER or by latching
// onto a single, sticky ILLEGAL token.
func FuzzScan(f *testing.F) {
	seeds := []string{
		"",
		"x = 1\n",
		"if True:\n  print(1)\nelif False:\n  print(2)\nelse:\n  print(3)\n",
		"while x < 10:\n  x = x + 1\n  if x == 5:\n    break\n  continue\n",
		"a = list()\na.append(1)\na[0] = 2\nprint(a[0])\n",
		"x = (1 + 2) * 3 // 4\n",
		"x = not True and False or True\n",
		"x = 1 == 2\ny = 1 != 2\nz = 1 <= 2\n",
		"if True:\n\tprint(1)\n",
		"if True:\n  print(1)\n\n  print(2)\n",
		"007\n",
		"@#$\n",
		"x = \n",
		"!\n/\n",
		"if True:\n   print(1)\n",
		"if True:\n \tprint(1)\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)

		const maxTokens = 10000
		count := 0
		for count < maxTokens {
			tok := l.Scan()

			if tok.Pos.Line < 0 || tok.Pos.Column < 0 || tok.Pos.Offset < 0 {
				t.Errorf("invalid position: %+v", tok.Pos)
			}

			if tok.Type == token.ENDMARKER || tok.Type == token.ILLEGAL {
				break
			}
			count++
		}
		if count >= maxTokens {
			t.Skip("too many tokens, possibly malformed input")
		}
	})
}
