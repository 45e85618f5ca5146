// Package parser implements RoverScript's recursive-descent parser: one
// method per grammar non-terminal, each consuming exactly the tokens its
// production covers and returning the corresponding ast node. Left-recursive
// continuation productions (the `*cl` suffixes of the source grammar) are
// flattened into iterative loops that build left-associative ast.BinaryExpr
// chains directly, rather than being mirrored as their own recursive calls.
package parser

import (
	"strconv"

	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/token"
)

// Parser consumes a fixed token slice (already lexed in full) left to right.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over a complete token stream (EOF-terminated).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses the whole token stream as a Program, returning the first
// syntax error encountered.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New(toks).ParseProgram()
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// consume advances past the current token if it matches k, otherwise
// returns a ParseError naming k as the expected kind.
func (p *Parser) consume(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, roverr.NewParseError(p.cur(), k)
	}
	return p.advance(), nil
}

// ParseProgram parses `program -> block`.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	b, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, roverr.NewParseError(p.cur(), token.EOF)
	}
	return &ast.Program{Block: b}, nil
}

// declStart is the FIRST set of the `decl` production: the four basic type
// keywords that introduce a declaration.
func declStart(k token.Kind) bool {
	switch k {
	case token.INT, token.DOUBLE, token.BOOL, token.STRING_TYPE:
		return true
	}
	return false
}

// stmtStart is the FIRST set of the `stmt` production.
func stmtStart(k token.Kind) bool {
	switch k {
	case token.LBRACE, token.IF, token.WHILE, token.PRINT, token.SEMI, token.ROVER, token.IDENT:
		return true
	}
	return false
}

// parseBlock parses `block -> { decls stmts }`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.consume(token.LBRACE)
	if err != nil {
		return nil, err
	}
	b := &ast.Block{LBrace: lbrace.Pos}

	for declStart(p.cur().Kind) {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		b.Decls = append(b.Decls, d)
	}
	for stmtStart(p.cur().Kind) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}

	if _, err := p.consume(token.RBRACE); err != nil {
		return nil, err
	}
	return b, nil
}

// parseDecl parses `decl -> type id typecl ;`.
func (p *Parser) parseDecl() (*ast.Decl, error) {
	te, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.IDENT)
	if err != nil {
		return nil, err
	}
	dims, err := p.parseTypeCl()
	if err != nil {
		return nil, err
	}
	te.Dims = append(te.Dims, dims...)
	if _, err := p.consume(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Decl{Type: te, Name: name.Lexeme, NamePos: name.Pos}, nil
}

// parseType parses the base type keyword.
func (p *Parser) parseType() (ast.TypeExpr, error) {
	switch p.cur().Kind {
	case token.INT, token.DOUBLE, token.BOOL, token.STRING_TYPE:
		t := p.advance()
		return ast.TypeExpr{Base: t.Kind}, nil
	}
	return ast.TypeExpr{}, roverr.NewParseError(p.cur(), token.INT, token.DOUBLE, token.BOOL, token.STRING_TYPE)
}

// parseTypeCl parses `typecl -> [ num ] typecl | epsilon`, the trailing
// array-dimension list on a declaration.
func (p *Parser) parseTypeCl() ([]int, error) {
	var dims []int
	for p.at(token.LBRACKET) {
		p.advance()
		sizeTok, err := p.consume(token.NUM)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RBRACKET); err != nil {
			return nil, err
		}
		size, _ := strconv.Atoi(sizeTok.Lexeme)
		dims = append(dims, size)
	}
	return dims, nil
}

// parseStmt parses `stmt`.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.LBRACE:
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Block: b}, nil

	case token.IF:
		return p.parseIf()

	case token.WHILE:
		return p.parseWhile()

	case token.PRINT:
		printTok := p.advance()
		e, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Print: printTok.Pos, Value: e}, nil

	case token.SEMI:
		t := p.advance()
		return &ast.EmptyStmt{Semi: t.Pos}, nil

	case token.ROVER:
		return p.parseRoverStmt()

	case token.IDENT:
		return p.parseAssignStmt()
	}
	return nil, roverr.NewParseError(p.cur(), token.LBRACE, token.IF, token.WHILE, token.PRINT, token.SEMI, token.ROVER, token.IDENT)
}

// parseIf parses `if ( bool ) stmt` with an optional `else stmt`, binding a
// dangling else to the nearest unmatched if (resolved naturally here since
// the recursive call to parseStmt for Then greedily consumes its own else).
func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.advance()
	if _, err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{If: ifTok.Pos, Cond: cond, Then: then}
	if p.at(token.ELSE) {
		p.advance()
		elseStmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseStmt
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	whileTok := p.advance()
	if _, err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{While: whileTok.Pos, Cond: cond, Body: body}, nil
}

// parseAssignStmt parses `loc = bool ;`.
func (p *Parser) parseAssignStmt() (ast.Stmt, error) {
	loc, err := p.parseLoc()
	if err != nil {
		return nil, err
	}
	eq, err := p.consume(token.ASSIGN)
	if err != nil {
		return nil, err
	}
	val, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Target: loc, Value: val, Eq: eq.Pos}, nil
}

// parseLoc parses `loc -> id loccl`.
func (p *Parser) parseLoc() (*ast.Loc, error) {
	name, err := p.consume(token.IDENT)
	if err != nil {
		return nil, err
	}
	loc := &ast.Loc{Name: name.Lexeme, NamePos: name.Pos}
	for p.at(token.LBRACKET) {
		p.advance()
		idx, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RBRACKET); err != nil {
			return nil, err
		}
		loc.Indices = append(loc.Indices, idx)
	}
	return loc, nil
}
