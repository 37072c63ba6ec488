// Package lexer tokenizes source code into the token stream consumed by
// the parser, tracking indentation the way a Python-style tokenizer does.
package lexer

import (
	"github.com/kolkov/stepl/internal/token"
)

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Lexer tokenizes source code, synthesizing INDENT/DEDENT/NEWLINE/ENDMARKER
// tokens from the physical line structure of the input.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Current byte offset
	pos     token.Position // Position of the current character
	nextPos token.Position // Position of the next character

	atLineStart bool  // True when the next byte begins a fresh line
	indentStack []int // Indentation levels, bottom sentinel is always 0

	pending []Token     // Tokens queued by a single indentation decision
	lastTok token.Token // Previous token emitted, for diagnostics

	errored    bool  // An ILLEGAL token has already been produced
	illegalTok Token // The ILLEGAL token to keep returning once errored
}

// New creates a new Lexer for the given source.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
		atLineStart: true,
		indentStack: []int{0},
	}
	l.next()
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	if l.errored {
		return l.illegalTok
	}
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		l.lastTok = tok.Type
		return tok
	}
	tok := l.scan()
	l.lastTok = tok.Type
	if tok.Type == token.ILLEGAL {
		l.errored = true
		l.illegalTok = tok
	}
	return tok
}

func (l *Lexer) scan() Token {
	for {
		if l.atLineStart {
			if tok, emit := l.handleIndentation(); emit {
				return tok
			}
			// Either a blank line (whitespace run followed by newline/EOF)
			// or the indentation matched the current level exactly; either
			// way fall through and scan whatever comes next on this line.
		}

		if l.ch == 0 {
			return l.finish()
		}

		pos := l.pos

		switch {
		case l.ch == '\n':
			l.next()
			return Token{Type: token.NEWLINE, Pos: pos, Value: "\n"}

		case l.ch == ' ':
			for l.ch == ' ' {
				l.next()
			}
			continue

		case l.ch == '=' || l.ch == '!' || l.ch == '<' || l.ch == '>' || l.ch == '/':
			return l.scanTwoCharOp()

		case isDigit(l.ch):
			return l.scanNumber()

		case isAlpha(l.ch):
			return l.scanIdent()
		}

		switch l.ch {
		case '+':
			l.next()
			return Token{Type: token.PLUS, Pos: pos, Value: "+"}
		case '-':
			l.next()
			return Token{Type: token.MINUS, Pos: pos, Value: "-"}
		case '*':
			l.next()
			return Token{Type: token.STAR, Pos: pos, Value: "*"}
		case '(':
			l.next()
			return Token{Type: token.LPAREN, Pos: pos, Value: "("}
		case ')':
			l.next()
			return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
		case '[':
			l.next()
			return Token{Type: token.LBRACKET, Pos: pos, Value: "["}
		case ']':
			l.next()
			return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}
		case ':':
			l.next()
			return Token{Type: token.COLON, Pos: pos, Value: ":"}
		case '.':
			l.next()
			return Token{Type: token.DOT, Pos: pos, Value: "."}
		case ',':
			l.next()
			return Token{Type: token.COMMA, Pos: pos, Value: ","}
		default:
			ch := l.ch
			l.next()
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "Unexpected character '" + string(ch) + "'"}
		}
	}
}

// handleIndentation runs at the start of a physical line. It consumes the
// leading run of tabs/spaces and decides whether that run starts a new
// block (INDENT), closes one or more blocks (DEDENT, possibly several),
// matches the current block exactly (no token), or belongs to a blank
// line (no token, indentation is not measured on blank lines).
func (l *Lexer) handleIndentation() (Token, bool) {
	startPos := l.pos

	var indentChars int
	var firstChar byte
	mixed := false

	for l.ch == '\t' || l.ch == ' ' {
		if firstChar == 0 {
			firstChar = l.ch
		} else if firstChar != l.ch {
			mixed = true
		}
		indentChars++
		l.next()
	}

	if l.ch == '\n' || l.ch == 0 {
		// Blank line: indentation is not measured, no INDENT/DEDENT is
		// produced. atLineStart stays true; the caller will emit NEWLINE
		// (or ENDMARKER) for whatever follows.
		return Token{}, false
	}

	if mixed {
		return Token{Type: token.ILLEGAL, Pos: startPos,
			Value: "IndentationError: inconsistent use of tabs and spaces"}, true
	}

	var level int
	if firstChar == '\t' || indentChars == 0 {
		level = indentChars
	} else {
		if indentChars%2 != 0 {
			return Token{Type: token.ILLEGAL, Pos: startPos,
				Value: "IndentationError: indentation must be a multiple of two spaces"}, true
		}
		level = indentChars / 2
	}

	l.atLineStart = false
	current := l.indentStack[len(l.indentStack)-1]

	switch {
	case level > current:
		l.indentStack = append(l.indentStack, level)
		return Token{Type: token.INDENT, Pos: startPos}, true

	case level < current:
		var dedents []Token
		for len(l.indentStack) > 0 && l.indentStack[len(l.indentStack)-1] > level {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			dedents = append(dedents, Token{Type: token.DEDENT, Pos: startPos})
		}
		if len(l.indentStack) == 0 || l.indentStack[len(l.indentStack)-1] != level {
			return Token{Type: token.ILLEGAL, Pos: startPos,
				Value: "IndentationError: unindent does not match any outer indentation level"}, true
		}
		first := dedents[0]
		l.pending = append(l.pending, dedents[1:]...)
		return first, true

	default:
		return Token{}, false
	}
}

// finish flushes any still-open indentation levels as DEDENT tokens and
// queues the terminal ENDMARKER token.
func (l *Lexer) finish() Token {
	pos := l.pos

	var toks []Token
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		toks = append(toks, Token{Type: token.DEDENT, Pos: pos})
	}
	toks = append(toks, Token{Type: token.ENDMARKER, Pos: pos, Value: "EOF"})

	first := toks[0]
	l.pending = append(l.pending, toks[1:]...)
	return first
}

func (l *Lexer) scanTwoCharOp() Token {
	pos := l.pos
	first := l.ch

	switch first {
	case '=':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.EQUALS, Pos: pos, Value: "=="}
		}
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQ, Pos: pos, Value: "!="}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "Unknown operator '!'"}

	case '<':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.LTE, Pos: pos, Value: "<="}
		}
		return Token{Type: token.LESS, Pos: pos, Value: "<"}

	case '>':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.GTE, Pos: pos, Value: ">="}
		}
		return Token{Type: token.GREATER, Pos: pos, Value: ">"}

	default: // '/'
		l.next()
		if l.ch == '/' {
			l.next()
			return Token{Type: token.SLASHSL, Pos: pos, Value: "//"}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "Unknown operator '/'"}
	}
}

func (l *Lexer) scanNumber() Token {
	pos := l.pos

	if l.ch == '0' {
		l.next()
		if isDigit(l.ch) {
			return Token{Type: token.ILLEGAL, Pos: pos,
				Value: "Numbers cannot start with 0 unless they are just 0"}
		}
		return Token{Type: token.NUMBER, Pos: pos, Value: "0"}
	}

	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent() Token {
	pos := l.pos
	start := pos.Offset
	for isAlphaNum(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the correct end offset for slicing l.src. At EOF,
// l.pos is stale (next() leaves it unmodified), so len(l.src) is used.
func (l *Lexer) endOffset() int {
	if l.ch == 0 {
		return len(l.src)
	}
	return l.pos.Offset
}

// next advances to the next character, updating atLineStart from the
// character being left behind (mirroring the reference tokenizer, which
// flips the flag as it consumes a newline or a non-indentation character,
// not when it first sees one).
func (l *Lexer) next() {
	consumed := l.ch

	if l.offset >= len(l.src) {
		l.ch = 0
	} else {
		l.pos = l.nextPos
		l.ch = l.src[l.offset]
		l.offset++
		l.nextPos.Offset = l.offset
		if l.ch == '\n' {
			l.nextPos.Line++
			l.nextPos.Column = 1
		} else {
			l.nextPos.Column++
		}
	}

	switch {
	case consumed == '\n':
		l.atLineStart = true
	case consumed != 0 && consumed != '\t' && consumed != ' ':
		l.atLineStart = false
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNum(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
