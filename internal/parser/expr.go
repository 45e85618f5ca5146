package parser

import (
	"strconv"

	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/token"
)

// parseBool parses `bool -> join ("||" join)*`.
func (p *Parser) parseBool() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseJoin, token.OR)
}

// parseJoin parses `join -> equality ("&&" equality)*`.
func (p *Parser) parseJoin() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseEquality, token.AND)
}

// parseEquality parses `equality -> rel (("=="|"!=") rel)*`.
func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseRel, token.EQ, token.NEQ)
}

// parseLeftAssoc folds a run of same-precedence binary operators (any of
// ops) into a left-associative ast.BinaryExpr chain, using next to parse
// each operand.
func (p *Parser) parseLeftAssoc(next func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for isOneOf(p.cur().Kind, ops) {
		opTok := p.advance()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: opTok.Kind, OpPos: opTok.Pos, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func isOneOf(k token.Kind, ops []token.Kind) bool {
	for _, o := range ops {
		if k == o {
			return true
		}
	}
	return false
}

// parseRel parses `rel -> expr (("<="|">="|"<"|">") expr)?`, permitting at
// most one relational operator.
func (p *Parser) parseRel() (ast.Expr, error) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case token.LE, token.GE, token.LT, token.GT:
		opTok := p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: opTok.Kind, OpPos: opTok.Pos, Lhs: lhs, Rhs: rhs}, nil
	}
	return lhs, nil
}

// parseExpr parses `expr -> term (("+"|"-") term)*`.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseTerm, token.PLUS, token.MINUS)
}

// parseTerm parses `term -> unary (("*"|"/") unary)*`.
func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseUnary, token.STAR, token.SLASH)
}

// parseUnary parses `unary -> ("!"|"-") unary | factor`.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(token.NOT) || p.at(token.MINUS) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: opTok.Kind, OpPos: opTok.Pos, Operand: operand}, nil
	}
	return p.parseFactor()
}

// parseFactor parses `factor -> "(" bool ")" | loc | "rover" "." get
// | NUM | REAL | STRING | "true" | "false"`.
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.LPAREN:
		lparen := p.advance()
		inner, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{LParen: lparen.Pos, Inner: inner}, nil

	case token.ROVER:
		roverTok := p.advance()
		if _, err := p.consume(token.DOT); err != nil {
			return nil, err
		}
		g, err := p.parseGetter(roverTok.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.RoverGetterExpr{Rover: roverTok.Pos, Getter: g}, nil

	case token.NUM:
		t := p.advance()
		n, _ := strconv.ParseInt(t.Lexeme, 10, 64)
		return &ast.NumberLit{ValuePos: t.Pos, Value: n}, nil

	case token.REAL:
		t := p.advance()
		f, _ := strconv.ParseFloat(t.Lexeme, 64)
		return &ast.RealLit{ValuePos: t.Pos, Value: f}, nil

	case token.STRING:
		t := p.advance()
		return &ast.StringLit{ValuePos: t.Pos, Value: unquote(t.Lexeme)}, nil

	case token.TRUE:
		t := p.advance()
		return &ast.BoolLit{ValuePos: t.Pos, Value: true}, nil

	case token.FALSE:
		t := p.advance()
		return &ast.BoolLit{ValuePos: t.Pos, Value: false}, nil

	case token.IDENT:
		loc, err := p.parseLoc()
		if err != nil {
			return nil, err
		}
		return &ast.LocExpr{Loc: loc}, nil
	}

	return nil, roverr.NewParseError(p.cur(), token.LPAREN, token.ROVER, token.NUM, token.REAL, token.STRING, token.TRUE, token.FALSE, token.IDENT)
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
