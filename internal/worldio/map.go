// Package worldio loads rover map files from disk and renders world state
// for debug/diagnostic output.
package worldio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/pretty"
)

// Tile is one cell of a rover's map. The original format is a plain-text
// grid: space is open ground, 'X' is impassable, 'D' a scannable deposit,
// 'G'/'S'/'C'/'I' surfaced ore, 'R' a pushable rock, 'B' a built structure,
// and a decimal digit a one-shot recharge pad.
type Tile byte

// LoadMap reads a rover map file into a rectangular row-major tile grid.
// Rows are padded with the impassable tile so every row has equal width,
// matching the original implementation's tolerance for a ragged last line.
func LoadMap(path string) ([][]Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("worldio: open map %q: %w", path, err)
	}
	defer f.Close()

	var rows [][]Tile
	width := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		row := make([]Tile, len(line))
		for i := 0; i < len(line); i++ {
			row[i] = Tile(line[i])
		}
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("worldio: read map %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worldio: map %q is empty", path)
	}

	for i, row := range rows {
		if len(row) < width {
			padded := make([]Tile, width)
			copy(padded, row)
			for j := len(row); j < width; j++ {
				padded[j] = 'X'
			}
			rows[i] = padded
		}
	}
	return rows, nil
}

// Render formats a tile grid the way the original prints it: each cell in
// a fixed 4-character field, rows newline-joined.
func Render(tiles [][]Tile, markRow, markCol int, mark byte) string {
	var sb strings.Builder
	for r, row := range tiles {
		for c, t := range row {
			cell := byte(t)
			if r == markRow && c == markCol {
				cell = mark
			}
			fmt.Fprintf(&sb, "%-4c", rune(cell))
		}
		if r < len(tiles)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Snapshot is a JSON-friendly view of world state, used only to build a
// pretty-printed debug dump.
type Snapshot struct {
	Rover       string `json:"rover"`
	X           int64  `json:"x"`
	Y           int64  `json:"y"`
	Orientation int64  `json:"orientation"`
	Power       int64  `json:"power"`
	Gold        int64  `json:"gold"`
	Silver      int64  `json:"silver"`
	Copper      int64  `json:"copper"`
	Iron        int64  `json:"iron"`
}

// DebugDump renders s as indented, syntax-colored JSON for terminal debug
// logging.
func DebugDump(s Snapshot) string {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("worldio: snapshot marshal failed: %v", err)
	}
	formatted := pretty.Pretty(raw)
	return string(pretty.Color(formatted, nil))
}
