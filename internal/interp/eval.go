package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/host"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/symtab"
	"github.com/roverscript/roverscript/internal/token"
	"github.com/roverscript/roverscript/internal/types"
)

// Evaluator executes a type-checked Program against a host.RoverHost,
// writing print output to out.
type Evaluator struct {
	scopes *symtab.Table
	host   host.RoverHost
	out    io.Writer
	lines  []string
}

// New returns an Evaluator over h, writing print output to out. source is
// kept only to render full-line caret context in runtime errors.
func New(h host.RoverHost, out io.Writer, source string) *Evaluator {
	return &Evaluator{scopes: symtab.New(), host: h, out: out, lines: strings.Split(source, "\n")}
}

// Run evaluates prog's outer block to completion, or returns the first
// runtime fault encountered (division by zero, out-of-range index).
func (e *Evaluator) Run(prog *ast.Program) error {
	return e.execBlock(prog.Block)
}

func (e *Evaluator) line(pos token.Position) string {
	if pos.Line-1 >= 0 && pos.Line-1 < len(e.lines) {
		return e.lines[pos.Line-1]
	}
	return ""
}

func (e *Evaluator) execBlock(b *ast.Block) error {
	e.scopes.Push()
	defer e.scopes.Pop()

	for _, d := range b.Decls {
		e.execDecl(d)
	}
	for _, s := range b.Stmts {
		if err := e.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execDecl(d *ast.Decl) {
	base := baseName(d.Type.Base)
	var val any
	if len(d.Type.Dims) == 0 {
		val = zeroValue(base)
	} else {
		val = newArray(d.Type.Dims, base)
	}
	e.scopes.Declare(d.Name, &symtab.Symbol{Base: baseFromKind(d.Type.Base), Shape: d.Type.Dims, Value: val})
}

func baseName(k token.Kind) string {
	switch k {
	case token.INT:
		return "int"
	case token.DOUBLE:
		return "double"
	case token.BOOL:
		return "bool"
	case token.STRING_TYPE:
		return "string"
	}
	return "int"
}

func baseFromKind(k token.Kind) types.Base {
	switch k {
	case token.INT:
		return types.Int
	case token.DOUBLE:
		return types.Double
	case token.BOOL:
		return types.Bool
	case token.STRING_TYPE:
		return types.String
	}
	return types.Int
}

func (e *Evaluator) execStmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.AssignStmt:
		return e.execAssign(st)
	case *ast.IfStmt:
		cond, err := e.evalExpr(st.Cond)
		if err != nil {
			return err
		}
		if bool(cond.(BoolValue)) {
			return e.execStmt(st.Then)
		} else if st.Else != nil {
			return e.execStmt(st.Else)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := e.evalExpr(st.Cond)
			if err != nil {
				return err
			}
			if !bool(cond.(BoolValue)) {
				return nil
			}
			if err := e.execStmt(st.Body); err != nil {
				return err
			}
		}
	case *ast.BlockStmt:
		return e.execBlock(st.Block)
	case *ast.PrintStmt:
		v, err := e.evalExpr(st.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, v.String())
		return nil
	case *ast.EmptyStmt:
		return nil
	case *ast.RoverActionStmt:
		return e.execAction(st.Action)
	}
	return fmt.Errorf("internal error: unhandled statement type %T", s)
}

func (e *Evaluator) execAssign(s *ast.AssignStmt) error {
	sym := e.scopes.Resolve(s.Target.Name)

	val, err := e.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if sym != nil && sym.Base == types.Int {
		if rv, ok := val.(RealValue); ok {
			val = IntValue(int64(rv))
		}
	}

	indices, err := e.evalIndices(s.Target.Indices)
	if err != nil {
		return err
	}
	if err := e.scopes.AssignCell(s.Target.Name, indices, val); err != nil {
		return e.wrapCellError(s.Target.Pos(), s.Target.Name, err)
	}
	return nil
}

func (e *Evaluator) evalIndices(exprs []ast.Expr) ([]int, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]int, len(exprs))
	for i, ex := range exprs {
		v, err := e.evalExpr(ex)
		if err != nil {
			return nil, err
		}
		out[i] = int(v.(IntValue))
	}
	return out, nil
}

func (e *Evaluator) wrapCellError(pos token.Position, name string, err error) error {
	if idx, size, ok := symtab.IndexOutOfRange(err); ok {
		return roverr.NewIndexOutOfRangeError(pos, e.line(pos), idx, size)
	}
	return err
}

func (e *Evaluator) evalExpr(ex ast.Expr) (Value, error) {
	switch expr := ex.(type) {
	case *ast.BinaryExpr:
		return e.evalBinary(expr)
	case *ast.UnaryExpr:
		return e.evalUnary(expr)
	case *ast.ParenExpr:
		return e.evalExpr(expr.Inner)
	case *ast.LocExpr:
		return e.evalLoc(expr.Loc)
	case *ast.NumberLit:
		return IntValue(expr.Value), nil
	case *ast.RealLit:
		return RealValue(expr.Value), nil
	case *ast.StringLit:
		return StrValue(expr.Value), nil
	case *ast.BoolLit:
		return BoolValue(expr.Value), nil
	case *ast.RoverGetterExpr:
		return e.evalGetter(expr.Getter), nil
	}
	return nil, fmt.Errorf("internal error: unhandled expression type %T", ex)
}

func (e *Evaluator) evalLoc(l *ast.Loc) (Value, error) {
	indices, err := e.evalIndices(l.Indices)
	if err != nil {
		return nil, err
	}
	cell, err := e.scopes.ReadCell(l.Name, indices)
	if err != nil {
		return nil, e.wrapCellError(l.Pos(), l.Name, err)
	}
	if v, ok := cell.(Value); ok {
		return v, nil
	}
	return nil, fmt.Errorf("internal error: %q did not resolve to a scalar value", l.Name)
}

func (e *Evaluator) evalUnary(expr *ast.UnaryExpr) (Value, error) {
	v, err := e.evalExpr(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case token.NOT:
		return BoolValue(!bool(v.(BoolValue))), nil
	case token.MINUS:
		switch n := v.(type) {
		case IntValue:
			return IntValue(-n), nil
		case RealValue:
			return RealValue(-n), nil
		}
	}
	return nil, fmt.Errorf("internal error: unhandled unary operator %s", expr.Op)
}

func (e *Evaluator) evalBinary(expr *ast.BinaryExpr) (Value, error) {
	switch expr.Op {
	case token.OR:
		lhs, err := e.evalExpr(expr.Lhs)
		if err != nil {
			return nil, err
		}
		if bool(lhs.(BoolValue)) {
			return BoolValue(true), nil
		}
		rhs, err := e.evalExpr(expr.Rhs)
		if err != nil {
			return nil, err
		}
		return BoolValue(bool(rhs.(BoolValue))), nil

	case token.AND:
		lhs, err := e.evalExpr(expr.Lhs)
		if err != nil {
			return nil, err
		}
		if !bool(lhs.(BoolValue)) {
			return BoolValue(false), nil
		}
		rhs, err := e.evalExpr(expr.Rhs)
		if err != nil {
			return nil, err
		}
		return BoolValue(bool(rhs.(BoolValue))), nil
	}

	lhs, err := e.evalExpr(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := e.evalExpr(expr.Rhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case token.EQ:
		return BoolValue(valuesEqual(lhs, rhs)), nil
	case token.NEQ:
		return BoolValue(!valuesEqual(lhs, rhs)), nil
	case token.LT, token.GT, token.LE, token.GE:
		a, b := promoteToReal(lhs, rhs)
		return BoolValue(compareReals(expr.Op, a, b)), nil
	case token.PLUS:
		if ls, ok := lhs.(StrValue); ok {
			if rs, ok := rhs.(StrValue); ok {
				return StrValue(string(ls) + string(rs)), nil
			}
		}
		return e.arith(expr, lhs, rhs)
	case token.MINUS, token.STAR, token.SLASH:
		return e.arith(expr, lhs, rhs)
	}
	return nil, fmt.Errorf("internal error: unhandled binary operator %s", expr.Op)
}

func valuesEqual(lhs, rhs Value) bool {
	if ls, ok := lhs.(StrValue); ok {
		rs := rhs.(StrValue)
		return ls == rs
	}
	if lb, ok := lhs.(BoolValue); ok {
		rb := rhs.(BoolValue)
		return lb == rb
	}
	a, b := promoteToReal(lhs, rhs)
	return a == b
}

func promoteToReal(lhs, rhs Value) (float64, float64) {
	return asReal(lhs), asReal(rhs)
}

func asReal(v Value) float64 {
	switch n := v.(type) {
	case IntValue:
		return float64(n)
	case RealValue:
		return float64(n)
	}
	return 0
}

func compareReals(op token.Kind, a, b float64) bool {
	switch op {
	case token.LT:
		return a < b
	case token.GT:
		return a > b
	case token.LE:
		return a <= b
	case token.GE:
		return a >= b
	}
	return false
}

// arith applies +, -, * or / with the checker's promotion rule: if either
// operand is real the whole operation is done in real; otherwise it stays
// integer, with truncating (toward-zero) division.
func (e *Evaluator) arith(expr *ast.BinaryExpr, lhs, rhs Value) (Value, error) {
	li, lIsInt := lhs.(IntValue)
	ri, rIsInt := rhs.(IntValue)
	if lIsInt && rIsInt {
		a, b := int64(li), int64(ri)
		switch expr.Op {
		case token.PLUS:
			return IntValue(a + b), nil
		case token.MINUS:
			return IntValue(a - b), nil
		case token.STAR:
			return IntValue(a * b), nil
		case token.SLASH:
			if b == 0 {
				return nil, roverr.NewDivisionByZeroError(expr.OpPos, e.line(expr.OpPos))
			}
			return IntValue(a / b), nil
		}
	}

	a, b := asReal(lhs), asReal(rhs)
	switch expr.Op {
	case token.PLUS:
		return RealValue(a + b), nil
	case token.MINUS:
		return RealValue(a - b), nil
	case token.STAR:
		return RealValue(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, roverr.NewDivisionByZeroError(expr.OpPos, e.line(expr.OpPos))
		}
		return RealValue(a / b), nil
	}
	return nil, fmt.Errorf("internal error: unhandled arithmetic operator %s", expr.Op)
}
