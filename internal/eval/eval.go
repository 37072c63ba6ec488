// Package eval implements the tree-walking evaluator: a single
// recursive routine that pattern-matches on AST node variants and
// produces stdout side effects or a fatal runtime error.
package eval

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/kolkov/stepl/internal/ast"
	"github.com/kolkov/stepl/internal/types"
)

// Signal is the explicit, three-valued result of executing a
// statement, replacing exception-based non-local exit for break and
// continue.
type Signal uint8

const (
	SigNone Signal = iota
	SigBreak
	SigContinue
)

// RuntimeError is a fatal, unrecoverable error produced during
// evaluation. Error deliberately carries only the message: the CLI
// contract reports a single bare "Error: <message>" line.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func errorf(format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Interpreter walks a Program tree against a single flat environment.
type Interpreter struct {
	env    map[string]types.Value
	out    io.Writer
	inLoop bool
}

// New creates an Interpreter that writes print output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{env: make(map[string]types.Value), out: out}
}

// Run executes prog's top-level statements in order.
func (it *Interpreter) Run(prog *ast.Program) error {
	_, err := it.execStmts(prog.Stmts)
	return err
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (it *Interpreter) execStmts(stmts []ast.Stmt) (Signal, error) {
	for _, stmt := range stmts {
		sig, err := it.execStmt(stmt)
		if err != nil {
			return SigNone, err
		}
		if sig != SigNone {
			return sig, nil
		}
	}
	return SigNone, nil
}

func (it *Interpreter) execBlock(b *ast.BlockStmt) (Signal, error) {
	return it.execStmts(b.Stmts)
}

func (it *Interpreter) execStmt(stmt ast.Stmt) (Signal, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		value, err := it.evalExpr(s.Value)
		if err != nil {
			return SigNone, err
		}
		it.env[s.Name] = value
		return SigNone, nil

	case *ast.IndexAssignStmt:
		list, err := it.resolveList(s.List)
		if err != nil {
			return SigNone, err
		}
		index, err := it.evalIndex(s.Index, list)
		if err != nil {
			return SigNone, err
		}
		value, err := it.evalExpr(s.Value)
		if err != nil {
			return SigNone, err
		}
		list.Set(index, value.Copy())
		return SigNone, nil

	case *ast.ListCreateStmt:
		it.env[s.Name] = types.NewList()
		return SigNone, nil

	case *ast.ListAppendStmt:
		list, err := it.resolveList(s.List)
		if err != nil {
			return SigNone, err
		}
		value, err := it.evalExpr(s.Value)
		if err != nil {
			return SigNone, err
		}
		list.Add(value.Copy())
		return SigNone, nil

	case *ast.PrintStmt:
		value, err := it.evalExpr(s.Value)
		if err != nil {
			return SigNone, err
		}
		fmt.Fprintln(it.out, value.String())
		return SigNone, nil

	case *ast.BreakStmt:
		if !it.inLoop {
			return SigNone, errorf("'break' outside loop")
		}
		return SigBreak, nil

	case *ast.ContinueStmt:
		if !it.inLoop {
			return SigNone, errorf("'continue' outside loop")
		}
		return SigContinue, nil

	case *ast.IfStmt:
		return it.execIf(s)

	case *ast.WhileStmt:
		return it.execWhile(s)

	default:
		return SigNone, errorf("cannot execute statement of type %T", stmt)
	}
}

func (it *Interpreter) execIf(s *ast.IfStmt) (Signal, error) {
	cond, err := it.evalCondition(s.Cond)
	if err != nil {
		return SigNone, err
	}
	if cond {
		return it.execBlock(s.Then)
	}
	for _, clause := range s.Elifs {
		cond, err := it.evalCondition(clause.Cond)
		if err != nil {
			return SigNone, err
		}
		if cond {
			return it.execBlock(clause.Body)
		}
	}
	if s.Else != nil {
		return it.execBlock(s.Else)
	}
	return SigNone, nil
}

func (it *Interpreter) execWhile(s *ast.WhileStmt) (Signal, error) {
	wasInLoop := it.inLoop
	it.inLoop = true
	defer func() { it.inLoop = wasInLoop }()

	for {
		cond, err := it.evalCondition(s.Cond)
		if err != nil {
			return SigNone, err
		}
		if !cond {
			return SigNone, nil
		}

		sig, err := it.execBlock(s.Body)
		if err != nil {
			return SigNone, err
		}
		if sig == SigBreak {
			return SigNone, nil
		}
		// SigNone and SigContinue both fall through to the next
		// iteration's condition check.
	}
}

// evalCondition evaluates cond and enforces the strict-boolean rule
// for if/elif/while: there is no generalized truthiness conversion.
func (it *Interpreter) evalCondition(cond ast.Expr) (bool, error) {
	v, err := it.evalExpr(cond)
	if err != nil {
		return false, err
	}
	if !v.IsBool() {
		return false, errorf("condition must be BOOLEAN, got %s", v.Kind())
	}
	return v.Bool(), nil
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (it *Interpreter) evalExpr(expr ast.Expr) (types.Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return types.Int(e.Value), nil

	case *ast.BoolLit:
		return types.Bool(e.Value), nil

	case *ast.Ident:
		v, ok := it.env[e.Name]
		if !ok || v.IsUndefined() {
			return types.Value{}, errorf("Undefined variable '%s'", e.Name)
		}
		return v.Copy(), nil

	case *ast.ListAccess:
		list, err := it.resolveList(e.List)
		if err != nil {
			return types.Value{}, err
		}
		index, err := it.evalIndex(e.Index, list)
		if err != nil {
			return types.Value{}, err
		}
		elem, _ := list.Get(index)
		return elem.(types.Value).Copy(), nil

	case *ast.UnaryExpr:
		return it.evalUnary(e)

	case *ast.BinaryExpr:
		return it.evalBinary(e)

	default:
		return types.Value{}, errorf("cannot evaluate expression of type %T", expr)
	}
}

func (it *Interpreter) evalUnary(e *ast.UnaryExpr) (types.Value, error) {
	operand, err := it.evalExpr(e.Operand)
	if err != nil {
		return types.Value{}, err
	}
	switch e.Op {
	case ast.Neg:
		if !operand.IsInt() {
			return types.Value{}, errorf("unary '-' requires an INTEGER operand, got %s", operand.Kind())
		}
		return types.Int(-operand.Int()), nil
	case ast.Not:
		if !operand.IsBool() {
			return types.Value{}, errorf("'not' requires a BOOLEAN operand, got %s", operand.Kind())
		}
		return types.Bool(!operand.Bool()), nil
	default:
		return types.Value{}, errorf("unknown unary operator")
	}
}

func (it *Interpreter) evalBinary(e *ast.BinaryExpr) (types.Value, error) {
	switch e.Op {
	case ast.LogicalAnd:
		return it.evalShortCircuit(e, false)
	case ast.LogicalOr:
		return it.evalShortCircuit(e, true)
	}

	left, err := it.evalExpr(e.Left)
	if err != nil {
		return types.Value{}, err
	}
	right, err := it.evalExpr(e.Right)
	if err != nil {
		return types.Value{}, err
	}

	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.FloorDiv:
		return evalArith(e.Op, left, right)
	case ast.Less, ast.LessEq, ast.Greater, ast.GreaterEq:
		return evalRel(e.Op, left, right)
	case ast.Eq, ast.NotEq:
		eq, err := left.Equal(right)
		if err != nil {
			return types.Value{}, &RuntimeError{Message: err.Error()}
		}
		if e.Op == ast.NotEq {
			eq = !eq
		}
		return types.Bool(eq), nil
	default:
		return types.Value{}, errorf("unknown binary operator")
	}
}

// evalShortCircuit evaluates a logical and/or: shortCircuitOn is the
// value of the left operand that skips evaluating the right operand
// (false for "and", true for "or").
func (it *Interpreter) evalShortCircuit(e *ast.BinaryExpr, shortCircuitOn bool) (types.Value, error) {
	left, err := it.evalExpr(e.Left)
	if err != nil {
		return types.Value{}, err
	}
	if !left.IsBool() {
		return types.Value{}, errorf("'%s' requires BOOLEAN operands, got %s", e.Op, left.Kind())
	}
	if left.Bool() == shortCircuitOn {
		return types.Bool(shortCircuitOn), nil
	}
	right, err := it.evalExpr(e.Right)
	if err != nil {
		return types.Value{}, err
	}
	if !right.IsBool() {
		return types.Value{}, errorf("'%s' requires BOOLEAN operands, got %s", e.Op, right.Kind())
	}
	return types.Bool(right.Bool()), nil
}

func evalArith(op ast.BinaryOp, left, right types.Value) (types.Value, error) {
	if !left.IsInt() || !right.IsInt() {
		return types.Value{}, errorf("'%s' requires INTEGER operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	a, b := left.Int(), right.Int()
	switch op {
	case ast.Add:
		return types.Int(a + b), nil
	case ast.Sub:
		return types.Int(a - b), nil
	case ast.Mul:
		return types.Int(a * b), nil
	case ast.FloorDiv:
		if b == 0 {
			return types.Value{}, errorf("Division by zero")
		}
		return types.Int(a / b), nil
	default:
		return types.Value{}, errorf("unknown arithmetic operator")
	}
}

func evalRel(op ast.BinaryOp, left, right types.Value) (types.Value, error) {
	if !left.IsInt() || !right.IsInt() {
		return types.Value{}, errorf("'%s' requires INTEGER operands, got %s and %s", op, left.Kind(), right.Kind())
	}
	a, b := left.Int(), right.Int()
	switch op {
	case ast.Less:
		return types.Bool(a < b), nil
	case ast.LessEq:
		return types.Bool(a <= b), nil
	case ast.Greater:
		return types.Bool(a > b), nil
	case ast.GreaterEq:
		return types.Bool(a >= b), nil
	default:
		return types.Value{}, errorf("unknown relational operator")
	}
}

// -----------------------------------------------------------------------------
// Shared list/name resolution helpers
// -----------------------------------------------------------------------------

func (it *Interpreter) resolveList(name string) (*arraylist.List, error) {
	v, ok := it.env[name]
	if !ok || v.IsUndefined() {
		return nil, errorf("Undefined variable '%s'", name)
	}
	if !v.IsList() {
		return nil, errorf("'%s' is not a list", name)
	}
	return v.List(), nil
}

// evalIndex evaluates an index expression against list, enforcing that
// it is an in-range, non-negative INTEGER.
func (it *Interpreter) evalIndex(indexExpr ast.Expr, list *arraylist.List) (int, error) {
	idx, err := it.evalExpr(indexExpr)
	if err != nil {
		return 0, err
	}
	if !idx.IsInt() {
		return 0, errorf("list index must be an INTEGER, got %s", idx.Kind())
	}
	n := idx.Int()
	size := int64(list.Size())
	if n < 0 || n >= size {
		return 0, errorf("list index %d out of range for list of length %d", n, size)
	}
	return int(n), nil
}
