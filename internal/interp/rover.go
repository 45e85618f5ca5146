package interp

import (
	"fmt"

	"github.com/roverscript/roverscript/internal/ast"
	"github.com/roverscript/roverscript/internal/host"
	"github.com/roverscript/roverscript/internal/token"
)

func toHostDirection(d ast.Direction) host.Direction {
	switch d {
	case ast.DirUp:
		return host.Up
	case ast.DirDown:
		return host.Down
	case ast.DirLeft:
		return host.Left
	case ast.DirRight:
		return host.Right
	}
	return host.Up
}

func toHostRotation(r ast.Rotation) host.Rotation {
	if r == ast.RotRight {
		return host.TurnRight
	}
	return host.TurnLeft
}

// execAction forwards a rover action statement to the host, evaluating
// whatever argument it carries first.
func (e *Evaluator) execAction(act ast.Action) error {
	switch act.Kind {
	case token.ACT_SCAN:
		e.host.Scan()
	case token.ACT_DRILL:
		e.host.Drill()
	case token.ACT_SHOCKWAVE:
		e.host.Shockwave()
	case token.ACT_BUILD:
		e.host.Build()
	case token.ACT_SONAR:
		e.host.SonarPing()
	case token.ACT_PUSH:
		e.host.Push()
	case token.ACT_RECHARGE:
		e.host.Recharge()
	case token.ACT_BACKFLIP:
		e.host.Backflip()
	case token.ACT_PRINT_INVENTORY:
		e.host.PrintInventory()
	case token.ACT_PRINT_MAP:
		e.host.PrintMap()
	case token.ACT_PRINT_POS:
		e.host.PrintPos()
	case token.ACT_PRINT_ORIENTATION:
		e.host.PrintOrientation()

	case token.ACT_CHANGE_MAP:
		v, err := e.evalExpr(act.MapPath)
		if err != nil {
			return err
		}
		e.host.ChangeMap(string(v.(StrValue)))

	case token.ACT_MOVE:
		v, err := e.evalExpr(act.Steps)
		if err != nil {
			return err
		}
		e.host.Move(toHostDirection(act.Direction), int64(v.(IntValue)))

	case token.ACT_TURN:
		e.host.Turn(toHostRotation(act.Rotation))

	default:
		return fmt.Errorf("internal error: unhandled rover action %s", act.Kind)
	}
	return nil
}

// evalGetter forwards a rover getter expression to the host and wraps its
// result in the evaluator's runtime value type.
func (e *Evaluator) evalGetter(g ast.Getter) Value {
	switch g.Kind {
	case token.GET_ORIENTATION:
		return IntValue(e.host.Orientation())
	case token.GET_X_POS:
		return IntValue(e.host.XPos())
	case token.GET_Y_POS:
		return IntValue(e.host.YPos())
	case token.GET_GOLD:
		return IntValue(e.host.Gold())
	case token.GET_SILVER:
		return IntValue(e.host.Silver())
	case token.GET_COPPER:
		return IntValue(e.host.Copper())
	case token.GET_IRON:
		return IntValue(e.host.Iron())
	case token.GET_POWER:
		return IntValue(e.host.Power())
	case token.GET_SONAR:
		return IntValue(e.host.Sonar())
	case token.GET_MAX_MOVE:
		return IntValue(e.host.MaxMove(toHostDirection(g.Direction)))
	case token.GET_CAN_MOVE:
		return BoolValue(e.host.CanMove(toHostDirection(g.Direction)))
	}
	return IntValue(0)
}
