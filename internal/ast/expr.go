package ast

import "github.com/kolkov/stepl/internal/token"

// -----------------------------------------------------------------------------
// Literals and references
// -----------------------------------------------------------------------------

// IntLit is an integer literal, e.g. 42.
type IntLit struct {
	BaseExpr
	Value int64
}

var _ Expr = (*IntLit)(nil)

// BoolLit is a boolean literal, True or False.
type BoolLit struct {
	BaseExpr
	Value bool
}

var _ Expr = (*BoolLit)(nil)

// Ident is a bare variable or list name.
type Ident struct {
	BaseExpr
	Name string
}

var _ Expr = (*Ident)(nil)

// ListAccess reads a single element of a list: List[Index].
type ListAccess struct {
	BaseExpr
	List  string
	Index Expr
}

var _ Expr = (*ListAccess)(nil)

// -----------------------------------------------------------------------------
// Operators
// -----------------------------------------------------------------------------

// UnaryOp identifies a unary operator.
type UnaryOp uint8

const (
	Neg UnaryOp = iota // -x
	Not                // not x
)

// UnaryExpr applies a unary operator to a single operand.
type UnaryExpr struct {
	BaseExpr
	Op      UnaryOp
	Operand Expr
}

var _ Expr = (*UnaryExpr)(nil)

// BinaryOp identifies a binary operator.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	FloorDiv

	Less
	LessEq
	Greater
	GreaterEq
	Eq
	NotEq

	LogicalAnd
	LogicalOr
)

// String returns the source spelling of the operator.
func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case FloorDiv:
		return "//"
	case Less:
		return "<"
	case LessEq:
		return "<="
	case Greater:
		return ">"
	case GreaterEq:
		return ">="
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case LogicalAnd:
		return "and"
	case LogicalOr:
		return "or"
	default:
		return "?"
	}
}

// TokenToBinaryOp maps a lexical operator token to its BinaryOp.
func TokenToBinaryOp(t token.Token) (BinaryOp, bool) {
	switch t {
	case token.PLUS:
		return Add, true
	case token.MINUS:
		return Sub, true
	case token.STAR:
		return Mul, true
	case token.SLASHSL:
		return FloorDiv, true
	case token.LESS:
		return Less, true
	case token.LTE:
		return LessEq, true
	case token.GREATER:
		return Greater, true
	case token.GTE:
		return GreaterEq, true
	case token.EQUALS:
		return Eq, true
	case token.NOT_EQ:
		return NotEq, true
	case token.AND:
		return LogicalAnd, true
	case token.OR:
		return LogicalOr, true
	default:
		return 0, false
	}
}

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    BinaryOp
	Right Expr
}

var _ Expr = (*BinaryExpr)(nil)
