// Package ast defines the RoverScript abstract syntax tree. One concrete
// type exists per grammar production; left-recursive continuation
// productions in the source grammar are collapsed here into
// left-associative BinaryExpr chains built directly by the parser, rather
// than mirrored as their own node types.
package ast

import "github.com/roverscript/roverscript/internal/token"

// Node is satisfied by every AST type; it exists so callers can hold a
// single "some AST node" reference (used by diagnostics and tests).
type Node interface {
	Pos() token.Position
}

// Program is the root of a parsed RoverScript source file.
type Program struct {
	Block *Block
}

func (p *Program) Pos() token.Position { return p.Block.Pos() }

// Block is a brace-delimited scope: zero or more declarations followed by
// zero or more statements.
type Block struct {
	LBrace token.Position
	Decls  []*Decl
	Stmts  []Stmt
}

func (b *Block) Pos() token.Position { return b.LBrace }

// TypeExpr is a declared type: a base type plus zero or more array
// dimension sizes (outermost dimension first).
type TypeExpr struct {
	Base token.Kind // token.INT, token.DOUBLE, token.BOOL, or token.STRING_TYPE
	Dims []int
}

// Decl declares one name of the given type in the enclosing scope.
type Decl struct {
	Type TypeExpr
	Name string
	NamePos token.Position
}

func (d *Decl) Pos() token.Position { return d.NamePos }

// Loc is an l-value: an identifier plus zero or more subscript
// expressions. An empty Indices list is a scalar reference.
type Loc struct {
	Name    string
	NamePos token.Position
	Indices []Expr
}

func (l *Loc) Pos() token.Position { return l.NamePos }

// Stmt is satisfied by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// AssignStmt is `loc = bool ;`.
type AssignStmt struct {
	Target *Loc
	Value  Expr
	Eq     token.Position
}

func (s *AssignStmt) Pos() token.Position { return s.Target.Pos() }
func (*AssignStmt) stmtNode()             {}

// IfStmt is `if ( bool ) stmt (else stmt)?`. Else is nil when absent.
type IfStmt struct {
	If   token.Position
	Cond Expr
	Then Stmt
	Else Stmt
}

func (s *IfStmt) Pos() token.Position { return s.If }
func (*IfStmt) stmtNode()             {}

// WhileStmt is `while ( bool ) stmt`.
type WhileStmt struct {
	While token.Position
	Cond  Expr
	Body  Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.While }
func (*WhileStmt) stmtNode()             {}

// BlockStmt wraps a nested Block used as a statement.
type BlockStmt struct {
	Block *Block
}

func (s *BlockStmt) Pos() token.Position { return s.Block.Pos() }
func (*BlockStmt) stmtNode()             {}

// PrintStmt is `print bool ;`.
type PrintStmt struct {
	Print token.Position
	Value Expr
}

func (s *PrintStmt) Pos() token.Position { return s.Print }
func (*PrintStmt) stmtNode()             {}

// EmptyStmt is a lone `;`.
type EmptyStmt struct {
	Semi token.Position
}

func (s *EmptyStmt) Pos() token.Position { return s.Semi }
func (*EmptyStmt) stmtNode()             {}

// RoverActionStmt is `rover . action ;`.
type RoverActionStmt struct {
	Rover token.Position
	Action Action
}

func (s *RoverActionStmt) Pos() token.Position { return s.Rover }
func (*RoverActionStmt) stmtNode()             {}

// Expr is satisfied by every expression node.
type Expr interface {
	Node
	exprNode()
}

// BinaryExpr represents one operator application in a left-associative
// chain: Or, And, Equality, Relational, Additive, and Multiplicative all
// use this single node shape, distinguished by Op.
type BinaryExpr struct {
	Op       token.Kind
	OpPos    token.Position
	Lhs, Rhs Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.Lhs.Pos() }
func (*BinaryExpr) exprNode()             {}

// UnaryExpr is `! unary` or `- unary`.
type UnaryExpr struct {
	Op      token.Kind
	OpPos   token.Position
	Operand Expr
}

func (e *UnaryExpr) Pos() token.Position { return e.OpPos }
func (*UnaryExpr) exprNode()             {}

// ParenExpr is `( bool )`, kept as its own node so source round-tripping
// can reproduce explicit grouping.
type ParenExpr struct {
	LParen token.Position
	Inner  Expr
}

func (e *ParenExpr) Pos() token.Position { return e.LParen }
func (*ParenExpr) exprNode()             {}

// LocExpr wraps a Loc used as an expression (an r-value read).
type LocExpr struct {
	Loc *Loc
}

func (e *LocExpr) Pos() token.Position { return e.Loc.Pos() }
func (*LocExpr) exprNode()             {}

// NumberLit is an integer literal.
type NumberLit struct {
	ValuePos token.Position
	Value    int64
}

func (e *NumberLit) Pos() token.Position { return e.ValuePos }
func (*NumberLit) exprNode()             {}

// RealLit is a floating-point literal.
type RealLit struct {
	ValuePos token.Position
	Value    float64
}

func (e *RealLit) Pos() token.Position { return e.ValuePos }
func (*RealLit) exprNode()             {}

// StringLit is a double-quoted string literal (quotes stripped).
type StringLit struct {
	ValuePos token.Position
	Value    string
}

func (e *StringLit) Pos() token.Position { return e.ValuePos }
func (*StringLit) exprNode()             {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	ValuePos token.Position
	Value    bool
}

func (e *BoolLit) Pos() token.Position { return e.ValuePos }
func (*BoolLit) exprNode()             {}

// RoverGetterExpr is `rover . getter` used as a factor.
type RoverGetterExpr struct {
	Rover  token.Position
	Getter Getter
}

func (e *RoverGetterExpr) Pos() token.Position { return e.Rover }
func (*RoverGetterExpr) exprNode()             {}
