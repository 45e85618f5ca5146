// Package semantic type-checks a parsed RoverScript program in a single
// traversal: it pushes and pops symtab scopes in lockstep with the block
// structure, computes a types.Descriptor for every expression, and
// collects every violation it finds rather than stopping at the first.
package semantic

import (
	"fmt"
	"strings"

	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/symtab"
	"github.com/roverscript/roverscript/internal/token"
	"github.com/roverscript/roverscript/internal/types"
)

// Analyzer walks a Program, tracking declared types through a scope stack.
type Analyzer struct {
	scopes *symtab.Table
	lines  []string
	errors []error
}

// New returns an Analyzer ready to Check a single Program parsed from
// source (kept only to render full-line caret context in errors).
func New(source string) *Analyzer {
	return &Analyzer{scopes: symtab.New(), lines: strings.Split(source, "\n")}
}

// Check type-checks prog, returning every error found (redefinitions,
// undefined references, type mismatches, invalid subscripts) or nil if the
// program is well-formed. A non-nil, non-empty result means evaluation
// must not proceed.
func (a *Analyzer) Check(prog *ast.Program) []error {
	a.errors = nil
	a.checkBlock(prog.Block)
	return a.errors
}

func (a *Analyzer) fail(err error) {
	a.errors = append(a.errors, err)
}

// line returns the full source line pos refers to, for caret diagnostics.
func (a *Analyzer) line(pos token.Position) string {
	if pos.Line-1 >= 0 && pos.Line-1 < len(a.lines) {
		return a.lines[pos.Line-1]
	}
	return ""
}

func (a *Analyzer) checkBlock(b *ast.Block) {
	a.scopes.Push()
	defer a.scopes.Pop()

	for _, decl := range b.Decls {
		a.checkDecl(decl)
	}
	for _, stmt := range b.Stmts {
		a.checkStmt(stmt)
	}
}

func (a *Analyzer) checkDecl(d *ast.Decl) {
	base := baseFromTypeKind(d.Type.Base)
	sym := &symtab.Symbol{Base: base, Shape: d.Type.Dims}
	if !a.scopes.Declare(d.Name, sym) {
		a.fail(roverr.NewRedefinedError(d.NamePos, a.line(d.NamePos), d.Name))
	}
}

func baseFromTypeKind(k token.Kind) types.Base {
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

func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		a.checkAssign(st)
	case *ast.IfStmt:
		a.checkCondition(st.Cond)
		a.checkStmt(st.Then)
		if st.Else != nil {
			a.checkStmt(st.Else)
		}
	case *ast.WhileStmt:
		a.checkCondition(st.Cond)
		a.checkStmt(st.Body)
	case *ast.BlockStmt:
		a.checkBlock(st.Block)
	case *ast.PrintStmt:
		d := a.checkExpr(st.Value)
		if !d.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(st.Value.Pos(), a.line(st.Value.Pos()), "print requires a scalar value, not an array"))
		}
	case *ast.EmptyStmt:
		// nothing to check
	case *ast.RoverActionStmt:
		a.checkAction(st.Action)
	default:
		a.fail(fmt.Errorf("internal error: unhandled statement type %T", s))
	}
}

func (a *Analyzer) checkCondition(cond ast.Expr) {
	d := a.checkExpr(cond)
	if d.Base != types.Bool || !d.IsScalar() {
		a.fail(roverr.NewTypeMismatchError(cond.Pos(), a.line(cond.Pos()), fmt.Sprintf("condition must be bool, got %s", d)))
	}
}

func (a *Analyzer) checkAssign(s *ast.AssignStmt) {
	target, ok := a.resolveLoc(s.Target)
	before := len(a.errors)
	valueDesc := a.checkExpr(s.Value)
	if !ok || len(a.errors) > before {
		return
	}
	if !target.IsScalar() {
		a.fail(roverr.NewTypeMismatchError(s.Eq, a.line(s.Eq), "cannot assign to an array; assign to individual elements"))
		return
	}
	if !valueDesc.IsScalar() {
		a.fail(roverr.NewTypeMismatchError(s.Eq, a.line(s.Eq), fmt.Sprintf("cannot assign %s to %s", valueDesc, target)))
		return
	}
	if !types.AssignCompatible(target.Base, valueDesc.Base) {
		a.fail(roverr.NewTypeMismatchError(s.Eq, a.line(s.Eq), fmt.Sprintf("cannot assign %s to %s", valueDesc, target)))
	}
}

// resolveLoc type-checks an l-value reference (declaration lookup plus
// subscript arity/type checking) and returns the descriptor of the cell it
// denotes.
func (a *Analyzer) resolveLoc(l *ast.Loc) (types.Descriptor, bool) {
	sym := a.scopes.Resolve(l.Name)
	if sym == nil {
		a.fail(roverr.NewUndefinedError(l.NamePos, a.line(l.NamePos), l.Name))
		return types.Descriptor{}, false
	}
	if len(l.Indices) > len(sym.Shape) {
		a.fail(roverr.NewInvalidSubscriptError(l.NamePos, a.line(l.NamePos), l.Name))
		return types.Descriptor{}, false
	}
	for _, idxExpr := range l.Indices {
		idxDesc := a.checkExpr(idxExpr)
		if idxDesc.Base != types.Int || !idxDesc.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(idxExpr.Pos(), a.line(idxExpr.Pos()), "array subscript must be int"))
		}
	}
	return types.Descriptor{Base: sym.Base, Dims: len(sym.Shape) - len(l.Indices)}, true
}

func (a *Analyzer) checkExpr(e ast.Expr) types.Descriptor {
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		return a.checkBinary(ex)
	case *ast.UnaryExpr:
		return a.checkUnary(ex)
	case *ast.ParenExpr:
		return a.checkExpr(ex.Inner)
	case *ast.LocExpr:
		d, ok := a.resolveLoc(ex.Loc)
		if !ok {
			return types.Descriptor{Base: types.Int}
		}
		return d
	case *ast.NumberLit:
		return types.Descriptor{Base: types.Int}
	case *ast.RealLit:
		return types.Descriptor{Base: types.Double}
	case *ast.StringLit:
		return types.Descriptor{Base: types.String}
	case *ast.BoolLit:
		return types.Descriptor{Base: types.Bool}
	case *ast.RoverGetterExpr:
		return a.checkGetter(ex)
	default:
		a.fail(fmt.Errorf("internal error: unhandled expression type %T", e))
		return types.Descriptor{Base: types.Int}
	}
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpr) types.Descriptor {
	lhs := a.checkExpr(e.Lhs)
	rhs := a.checkExpr(e.Rhs)

	switch e.Op {
	case token.OR, token.AND:
		if lhs.Base != types.Bool || rhs.Base != types.Bool || !lhs.IsScalar() || !rhs.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), "logical operator requires bool operands"))
		}
		return types.Descriptor{Base: types.Bool}

	case token.EQ, token.NEQ:
		if !lhs.IsScalar() || !rhs.IsScalar() || !types.EqualityCompatible(lhs.Base, rhs.Base) {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), fmt.Sprintf("cannot compare %s and %s", lhs, rhs)))
		}
		return types.Descriptor{Base: types.Bool}

	case token.LT, token.GT, token.LE, token.GE:
		if !lhs.IsScalar() || !rhs.IsScalar() || !lhs.Base.IsNumeric() || !rhs.Base.IsNumeric() {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), "relational operator requires numeric operands"))
		}
		return types.Descriptor{Base: types.Bool}

	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		if e.Op == token.PLUS && lhs.Base == types.String && rhs.Base == types.String && lhs.IsScalar() && rhs.IsScalar() {
			return types.Descriptor{Base: types.String}
		}
		if !lhs.IsScalar() || !rhs.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), "arithmetic operator requires scalar operands"))
			return types.Descriptor{Base: types.Int}
		}
		base, ok := types.Promote(lhs.Base, rhs.Base)
		if !ok {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), fmt.Sprintf("arithmetic operator requires numeric operands, got %s and %s", lhs, rhs)))
			return types.Descriptor{Base: types.Int}
		}
		return types.Descriptor{Base: base}

	default:
		a.fail(fmt.Errorf("internal error: unhandled binary operator %s", e.Op))
		return types.Descriptor{Base: types.Int}
	}
}

func (a *Analyzer) checkUnary(e *ast.UnaryExpr) types.Descriptor {
	d := a.checkExpr(e.Operand)
	switch e.Op {
	case token.NOT:
		if d.Base != types.Bool || !d.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), "! requires a bool operand"))
		}
		return types.Descriptor{Base: types.Bool}
	case token.MINUS:
		if !d.Base.IsNumeric() || !d.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(e.OpPos, a.line(e.OpPos), "unary - requires a numeric operand"))
		}
		return d
	default:
		a.fail(fmt.Errorf("internal error: unhandled unary operator %s", e.Op))
		return d
	}
}

// checkAction validates a rover action statement's argument, if it has one.
func (a *Analyzer) checkAction(act ast.Action) {
	switch act.Kind {
	case token.ACT_MOVE:
		d := a.checkExpr(act.Steps)
		if d.Base != types.Int || !d.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(act.Pos, a.line(act.Pos), "move requires an int step count"))
		}
	case token.ACT_CHANGE_MAP:
		d := a.checkExpr(act.MapPath)
		if d.Base != types.String || !d.IsScalar() {
			a.fail(roverr.NewTypeMismatchError(act.Pos, a.line(act.Pos), "change_map requires a string path"))
		}
	}
}

// checkGetter validates a rover getter's argument, if it takes one, and
// returns the descriptor of its result.
func (a *Analyzer) checkGetter(e *ast.RoverGetterExpr) types.Descriptor {
	switch e.Getter.Kind {
	case token.GET_CAN_MOVE:
		return types.Descriptor{Base: types.Bool}
	case token.GET_MAX_MOVE:
		return types.Descriptor{Base: types.Int}
	case token.GET_ORIENTATION, token.GET_X_POS, token.GET_Y_POS, token.GET_GOLD, token.GET_SILVER,
		token.GET_COPPER, token.GET_IRON, token.GET_POWER, token.GET_SONAR:
		return types.Descriptor{Base: types.Int}
	default:
		a.fail(fmt.Errorf("internal error: unhandled rover getter %s", e.Getter.Kind))
		return types.Descriptor{Base: types.Int}
	}
}
