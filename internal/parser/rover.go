package parser

import (
	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/token"
)

// parseRoverStmt parses `rover . action ;`, dispatching on the action
// lexeme to pull in whatever argument (if any) that action takes. Action
// arguments are whitespace-separated tokens, not a parenthesized list:
// `rover . move up 3 ;`, `rover . turn left ;`.
func (p *Parser) parseRoverStmt() (ast.Stmt, error) {
	roverTok := p.advance()
	if _, err := p.consume(token.DOT); err != nil {
		return nil, err
	}

	act, err := p.parseAction(roverTok.Pos)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.RoverActionStmt{Rover: roverTok.Pos, Action: act}, nil
}

func (p *Parser) parseDirection() (ast.Direction, error) {
	dirTok := p.cur()
	dir, ok := ast.DirectionFromKind(dirTok.Kind)
	if !ok {
		return 0, roverr.NewParseError(dirTok, token.UP, token.DOWN, token.LEFT, token.RIGHT)
	}
	p.advance()
	return dir, nil
}

func (p *Parser) parseRotation() (ast.Rotation, error) {
	rotTok := p.cur()
	rot, ok := ast.RotationFromKind(rotTok.Kind)
	if !ok {
		return 0, roverr.NewParseError(rotTok, token.LEFT, token.RIGHT)
	}
	p.advance()
	return rot, nil
}

// parseAction parses the action name following `rover .` and whatever
// argument it takes.
func (p *Parser) parseAction(roverPos token.Position) (ast.Action, error) {
	nameTok := p.cur()
	kind, ok := token.ActionKinds[nameTok.Lexeme]
	if !ok {
		return ast.Action{}, roverr.NewParseError(nameTok, token.ACT_SCAN)
	}
	p.advance()

	act := ast.Action{Kind: kind, Pos: roverPos}

	switch kind {
	case token.ACT_MOVE:
		dir, err := p.parseDirection()
		if err != nil {
			return ast.Action{}, err
		}
		act.Direction = dir
		steps, err := p.parseExpr()
		if err != nil {
			return ast.Action{}, err
		}
		act.Steps = steps

	case token.ACT_TURN:
		rot, err := p.parseRotation()
		if err != nil {
			return ast.Action{}, err
		}
		act.Rotation = rot

	case token.ACT_CHANGE_MAP:
		path, err := p.parseExpr()
		if err != nil {
			return ast.Action{}, err
		}
		act.MapPath = path
	}

	return act, nil
}

// parseGetter parses the getter name following `rover .` as used within an
// expression (a factor), including max_move/can_move's direction argument
// (`rover . max_move up`, no parentheses).
func (p *Parser) parseGetter(roverPos token.Position) (ast.Getter, error) {
	nameTok := p.cur()
	kind, ok := token.GetterKinds[nameTok.Lexeme]
	if !ok {
		return ast.Getter{}, roverr.NewParseError(nameTok, token.GET_ORIENTATION)
	}
	p.advance()

	g := ast.Getter{Kind: kind, Pos: roverPos}

	if kind == token.GET_MAX_MOVE || kind == token.GET_CAN_MOVE {
		dir, err := p.parseDirection()
		if err != nil {
			return ast.Getter{}, err
		}
		g.Direction = dir
		g.HasDir = true
	}

	return g, nil
}
