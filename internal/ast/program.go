package ast

import "github.com/kolkov/stepl/internal/token"

// Program represents a complete source file: an ordered sequence of
// top-level statements, executed once from top to bottom.
type Program struct {
	Filename string
	Stmts    []Stmt
	StartPos token.Position
	EndPos   token.Position
}

func (p *Program) Pos() token.Position { return p.StartPos }
func (p *Program) End() token.Position { return p.EndPos }
