// Package world implements host.RoverHost against an in-memory tile grid,
// grounded on the original project's Rover class: ore deposits (G/S/C/I),
// scannable dirt (D), impassable rock (X), pushable rocks (R), built
// structures (B), and digit recharge pads, with four-directional
// orientation and power accounting.
package world

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/roverscript/roverscript/internal/host"
	"github.com/roverscript/roverscript/internal/worldio"
)

const (
	tileImpassable = 'X'
	tileDeposit    = 'D'
	tileEmpty      = ' '
	tileRock       = 'R'
	tileBuilt      = 'B'
)

var oreTiles = []byte{'G', 'S', 'C', 'I'}

// orientationDelta mirrors the original's tiles_around table: index 0 is
// North (up, y-1), 1 East (right, x+1), 2 South (down, y+1), 3 West
// (left, x-1).
var orientationDelta = [4][2]int{
	{0, -1},
	{1, 0},
	{0, 1},
	{-1, 0},
}

// directionDelta maps a host.Direction (Up, Down, Left, Right) to its step.
var directionDelta = map[host.Direction][2]int{
	host.Up:    {0, -1},
	host.Down:  {0, 1},
	host.Left:  {-1, 0},
	host.Right: {1, 0},
}

// World is the concrete RoverHost backing a single rover process.
type World struct {
	name  string
	tiles [][]worldio.Tile

	xPos, yPos  int64
	orientation int64
	gold        int64
	silver      int64
	copper      int64
	iron        int64
	power       int64

	rng *rand.Rand
	log *logrus.Entry
}

var _ host.RoverHost = (*World)(nil)

// New loads mapPath and spawns a rover at a random open tile with a random
// orientation, seeded from a fresh UUID (rather than a wall-clock seed, so
// concurrently started rovers in the same process don't share a seed).
func New(name, mapPath string, log *logrus.Entry) (*World, error) {
	tiles, err := worldio.LoadMap(mapPath)
	if err != nil {
		return nil, err
	}
	w := &World{
		name: name, tiles: tiles,
		gold: 1, silver: 1, copper: 1, iron: 1, power: 100,
		rng: rand.New(rand.NewPCG(seedHalves(uuid.New()))),
		log: log,
	}
	w.spawn()
	return w, nil
}

func seedHalves(id uuid.UUID) (uint64, uint64) {
	var a, b uint64
	for i := 0; i < 8; i++ {
		a = a<<8 | uint64(id[i])
		b = b<<8 | uint64(id[i+8])
	}
	return a, b
}

func (w *World) spawn() {
	var open [][2]int
	for y, row := range w.tiles {
		for x, t := range row {
			if t == tileEmpty {
				open = append(open, [2]int{x, y})
			}
		}
	}
	if len(open) == 0 {
		open = [][2]int{{0, 0}}
	}
	pick := open[w.rng.IntN(len(open))]
	w.xPos, w.yPos = int64(pick[0]), int64(pick[1])
	w.orientation = int64(w.rng.IntN(4))
}

// ChangeMap reloads the rover's map from path and re-spawns it, matching
// the original's change_map behavior.
func (w *World) ChangeMap(path string) {
	tiles, err := worldio.LoadMap(path)
	if err != nil {
		w.log.WithError(err).Error("change_map failed")
		return
	}
	w.tiles = tiles
	w.spawn()
}

func (w *World) tileAt(x, y int64) worldio.Tile {
	if y < 0 || int(y) >= len(w.tiles) || x < 0 || int(x) >= len(w.tiles[y]) {
		return tileImpassable
	}
	return w.tiles[y][x]
}

func (w *World) setTileAt(x, y int64, t worldio.Tile) {
	if y < 0 || int(y) >= len(w.tiles) || x < 0 || int(x) >= len(w.tiles[y]) {
		return
	}
	w.tiles[y][x] = t
}

func (w *World) currentTile() worldio.Tile { return w.tileAt(w.xPos, w.yPos) }

// Getters.

func (w *World) Orientation() int64 { return w.orientation }
func (w *World) XPos() int64        { return w.xPos }
func (w *World) YPos() int64        { return w.yPos }
func (w *World) Gold() int64        { return w.gold }
func (w *World) Silver() int64      { return w.silver }
func (w *World) Copper() int64      { return w.copper }
func (w *World) Iron() int64        { return w.iron }
func (w *World) Power() int64       { return w.power }

func (w *World) Sonar() int64 {
	var count int64
	for _, row := range w.tiles {
		for _, t := range row {
			if t == tileDeposit {
				count++
			}
		}
	}
	w.log.Infof("found %d scannable tiles", count)
	return count
}

func (w *World) MaxMove(dir host.Direction) int64 {
	d := directionDelta[dir]
	var steps int64
	for w.tileAt(w.xPos+int64(d[0])*(steps+1), w.yPos+int64(d[1])*(steps+1)) != tileImpassable {
		steps++
	}
	return steps
}

func (w *World) CanMove(dir host.Direction) bool {
	d := directionDelta[dir]
	return w.tileAt(w.xPos+int64(d[0]), w.yPos+int64(d[1])) != tileImpassable
}

// Actions.

func (w *World) SonarPing() { w.Sonar() }

func (w *World) Move(dir host.Direction, steps int64) {
	d := directionDelta[dir]
	max := w.MaxMove(dir)
	if max < steps {
		steps = max
	}
	w.xPos += int64(d[0]) * steps
	w.yPos += int64(d[1]) * steps
}

func (w *World) Turn(rot host.Rotation) {
	if rot == host.TurnLeft {
		w.orientation--
	} else {
		w.orientation++
	}
	if w.orientation == -1 || w.orientation == 4 {
		w.orientation = 3
	}
}

func (w *World) Scan() {
	if w.currentTile() != tileDeposit {
		w.log.Infof("%s must be on a D tile", w.name)
		return
	}
	found := oreTiles[w.rng.IntN(len(oreTiles))]
	w.setTileAt(w.xPos, w.yPos, worldio.Tile(found))
	w.log.Infof("%s found %c!", w.name, found)
}

func (w *World) Drill() {
	if w.power < 10 {
		w.log.Infof("%s needs more power to drill", w.name)
		return
	}
	t := w.currentTile()
	switch t {
	case 'G':
		w.gold++
	case 'S':
		w.silver++
	case 'C':
		w.copper++
	case 'I':
		w.iron++
	default:
		w.log.Infof("%s must be on an ore tile", w.name)
		return
	}
	w.setTileAt(w.xPos, w.yPos, tileEmpty)
	w.power -= 10
}

func (w *World) Shockwave() {
	for _, d := range orientationDelta {
		x, y := w.xPos+int64(d[0]), w.yPos+int64(d[1])
		if w.rng.Float64() < 0.5 {
			w.setTileAt(x, y, tileDeposit)
		} else {
			w.setTileAt(x, y, tileEmpty)
		}
	}
}

func (w *World) Build() {
	if w.power < 10 {
		w.log.Infof("%s needs more power to build", w.name)
		return
	}
	if w.copper < 1 || w.gold < 1 || w.iron < 1 || w.silver < 1 {
		w.log.Infof("%s needs more ores to build", w.name)
		return
	}
	if w.currentTile() != tileEmpty {
		w.log.Infof("%s must be on an empty tile", w.name)
		return
	}
	w.setTileAt(w.xPos, w.yPos, tileBuilt)
	w.copper--
	w.silver--
	w.gold--
	w.iron--
	w.power -= 10
}

func (w *World) Push() {
	d := orientationDelta[w.orientation]
	frontX, frontY := w.xPos+int64(d[0]), w.yPos+int64(d[1])
	if w.tileAt(frontX, frontY) != tileRock {
		w.log.Infof("%s must face an R tile to push", w.name)
		return
	}
	nextX, nextY := frontX+int64(d[0]), frontY+int64(d[1])
	if w.tileAt(nextX, nextY) == tileImpassable {
		w.log.Infof("%s unable to push R onto an X tile", w.name)
		return
	}
	w.setTileAt(nextX, nextY, tileRock)
	replacement := tileImpassable
	if w.rng.Float64() < 0.5 {
		replacement = tileEmpty
	}
	w.setTileAt(frontX, frontY, worldio.Tile(replacement))
}

func (w *World) Recharge() {
	t := w.currentTile()
	if t < '0' || t > '9' {
		w.log.Infof("%s must be on a digit tile", w.name)
		return
	}
	w.power += int64(t-'0') * 10
	w.setTileAt(w.xPos, w.yPos, tileEmpty)
}

func (w *World) Backflip() {
	w.orientation = (w.orientation + 2) % 4
}

func (w *World) PrintInventory() {
	w.log.Infof("INVENTORY: gold=%d silver=%d copper=%d iron=%d", w.gold, w.silver, w.copper, w.iron)
}

func (w *World) PrintMap() {
	mark := byte('^')
	switch w.orientation {
	case 1:
		mark = '>'
	case 2:
		mark = 'v'
	case 3:
		mark = '<'
	}
	w.log.Info("\n" + worldio.Render(w.tiles, int(w.yPos), int(w.xPos), mark))
}

func (w *World) PrintPos() {
	w.log.Infof("%s is located at (%d, %d)", w.name, w.xPos, w.yPos)
}

func (w *World) PrintOrientation() {
	names := []string{"North", "East", "South", "West"}
	w.log.Infof("%s is facing %s", w.name, names[w.orientation])
}

// Snapshot returns a JSON-friendly view of current state for debug dumps.
func (w *World) Snapshot() worldio.Snapshot {
	return worldio.Snapshot{
		Rover: w.name, X: w.xPos, Y: w.yPos, Orientation: w.orientation,
		Power: w.power, Gold: w.gold, Silver: w.silver, Copper: w.copper, Iron: w.iron,
	}
}

// DebugDump renders the rover's current state as pretty-printed JSON.
func (w *World) DebugDump() string {
	return worldio.DebugDump(w.Snapshot())
}
