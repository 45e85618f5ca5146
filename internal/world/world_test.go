package world

import (
	"io"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscript/roverscript/internal/host"
	"github.com/roverscript/roverscript/internal/worldio"
)

func discardLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("rover", "test")
}

// newTestWorld builds a World with a fixed tile grid and position directly,
// bypassing New()'s random spawn so behavior is deterministic to assert on.
func newTestWorld(rows []string, x, y, orientation int64) *World {
	tiles := make([][]worldio.Tile, len(rows))
	for i, row := range rows {
		tiles[i] = make([]worldio.Tile, len(row))
		for j := 0; j < len(row); j++ {
			tiles[i][j] = worldio.Tile(row[j])
		}
	}
	return &World{
		name: "test", tiles: tiles,
		xPos: x, yPos: y, orientation: orientation,
		gold: 1, silver: 1, copper: 1, iron: 1, power: 100,
		rng: rand.New(rand.NewPCG(1, 2)),
		log: discardLog(),
	}
}

var _ host.RoverHost = (*World)(nil)

func TestMaxMoveStopsBeforeImpassable(t *testing.T) {
	w := newTestWorld([]string{
		"XXXXXXX",
		"X     X",
		"XXXXXXX",
	}, 1, 1, 0)
	assert.EqualValues(t, 4, w.MaxMove(host.Right))
	assert.EqualValues(t, 0, w.MaxMove(host.Left))
}

func TestCanMoveFalseAgainstImpassable(t *testing.T) {
	w := newTestWorld([]string{
		"XXX",
		"X X",
		"XXX",
	}, 1, 1, 0)
	assert.False(t, w.CanMove(host.Up))
	assert.False(t, w.CanMove(host.Down))
	assert.False(t, w.CanMove(host.Left))
	assert.False(t, w.CanMove(host.Right))
}

func TestMoveClampsToMaxMove(t *testing.T) {
	w := newTestWorld([]string{
		"XXXXXXX",
		"X     X",
		"XXXXXXX",
	}, 1, 1, 0)
	w.Move(host.Right, 100)
	assert.EqualValues(t, 5, w.XPos())
	assert.EqualValues(t, 1, w.YPos())
}

func TestMoveStaysWithinBoundsWhenStepsFit(t *testing.T) {
	w := newTestWorld([]string{
		"XXXXXXX",
		"X     X",
		"XXXXXXX",
	}, 1, 1, 0)
	w.Move(host.Right, 2)
	assert.EqualValues(t, 3, w.XPos())
}

func TestTurnRightAdvancesAndLeftRetreats(t *testing.T) {
	w := newTestWorld([]string{"X"}, 0, 0, 1)
	w.Turn(host.TurnRight)
	assert.EqualValues(t, 2, w.Orientation())
	w.Turn(host.TurnLeft)
	assert.EqualValues(t, 1, w.Orientation())
}

func TestTurnLeftFromZeroWrapsToThree(t *testing.T) {
	w := newTestWorld([]string{"X"}, 0, 0, 0)
	w.Turn(host.TurnLeft)
	assert.EqualValues(t, 3, w.Orientation())

	// turning right from the wrapped state replays the original's quirk:
	// 3+1 wraps to 4, which the clamp maps back to 3, not forward to 0.
	w.Turn(host.TurnRight)
	assert.EqualValues(t, 3, w.Orientation())
}

func TestBackflipReversesOrientation(t *testing.T) {
	w := newTestWorld([]string{"X"}, 0, 0, 0)
	w.Backflip()
	assert.EqualValues(t, 2, w.Orientation())
	w.Backflip()
	assert.EqualValues(t, 0, w.Orientation())
}

func TestDrillRequiresOreTileAndPower(t *testing.T) {
	w := newTestWorld([]string{"G"}, 0, 0, 0)
	w.Drill()
	assert.EqualValues(t, 2, w.Gold())
	assert.EqualValues(t, 90, w.Power())
	assert.Equal(t, worldio.Tile(' '), w.currentTile())
}

func TestDrillDoesNothingOffOreTile(t *testing.T) {
	w := newTestWorld([]string{" "}, 0, 0, 0)
	w.Drill()
	assert.EqualValues(t, 1, w.Gold())
	assert.EqualValues(t, 100, w.Power())
}

func TestDrillRefusesWithoutPower(t *testing.T) {
	w := newTestWorld([]string{"G"}, 0, 0, 0)
	w.power = 5
	w.Drill()
	assert.EqualValues(t, 1, w.Gold())
}

func TestBuildConsumesAllFourOresAndPower(t *testing.T) {
	w := newTestWorld([]string{" "}, 0, 0, 0)
	w.Build()
	assert.Equal(t, worldio.Tile('B'), w.currentTile())
	assert.EqualValues(t, 0, w.Gold())
	assert.EqualValues(t, 0, w.Silver())
	assert.EqualValues(t, 0, w.Copper())
	assert.EqualValues(t, 0, w.Iron())
	assert.EqualValues(t, 90, w.Power())
}

func TestBuildRefusesWithoutEnoughOre(t *testing.T) {
	w := newTestWorld([]string{" "}, 0, 0, 0)
	w.gold = 0
	w.Build()
	assert.Equal(t, worldio.Tile(' '), w.currentTile())
}

func TestRechargeConsumesDigitTile(t *testing.T) {
	w := newTestWorld([]string{"5"}, 0, 0, 0)
	w.power = 10
	w.Recharge()
	assert.EqualValues(t, 60, w.Power())
	assert.Equal(t, worldio.Tile(' '), w.currentTile())
}

func TestRechargeDoesNothingOffDigitTile(t *testing.T) {
	w := newTestWorld([]string{" "}, 0, 0, 0)
	w.Recharge()
	assert.EqualValues(t, 100, w.Power())
}

func TestSonarCountsDepositTiles(t *testing.T) {
	w := newTestWorld([]string{
		"DXD",
		"X X",
		"DXX",
	}, 1, 1, 0)
	assert.EqualValues(t, 3, w.Sonar())
}

func TestChangeMapReloadsTiles(t *testing.T) {
	tmp := t.TempDir()
	mapPath := tmp + "/m2.txt"
	require.NoError(t, os.WriteFile(mapPath, []byte("XXX\nX X\nXXX\n"), 0o644))

	w := newTestWorld([]string{"XXX", "X X", "XXX"}, 1, 1, 0)
	w.ChangeMap(mapPath)
	assert.Equal(t, 3, len(w.tiles))
	assert.EqualValues(t, 1, w.XPos())
	assert.EqualValues(t, 1, w.YPos())
}

func TestChangeMapLogsAndKeepsOldTilesOnLoadFailure(t *testing.T) {
	w := newTestWorld([]string{"XXX", "X X", "XXX"}, 1, 1, 0)
	w.ChangeMap("/nonexistent/path/to/a/map.txt")
	assert.Equal(t, 3, len(w.tiles))
	assert.EqualValues(t, 1, w.XPos())
}
