package worldio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMapParsesRows(t *testing.T) {
	path := writeMap(t, "XXX\nX X\nXXX\n")
	tiles, err := LoadMap(path)
	require.NoError(t, err)
	require.Len(t, tiles, 3)
	assert.Equal(t, []Tile{'X', ' ', 'X'}, tiles[1])
}

func TestLoadMapPadsRaggedRowsWithImpassable(t *testing.T) {
	path := writeMap(t, "XXXXX\nX X\nXXXXX\n")
	tiles, err := LoadMap(path)
	require.NoError(t, err)
	require.Len(t, tiles[1], 5)
	assert.Equal(t, []Tile{'X', ' ', 'X', 'X', 'X'}, tiles[1])
}

func TestLoadMapRejectsMissingFile(t *testing.T) {
	_, err := LoadMap(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadMapRejectsEmptyFile(t *testing.T) {
	path := writeMap(t, "")
	_, err := LoadMap(path)
	assert.Error(t, err)
}

func TestRenderMarksRoverCellAndJoinsRows(t *testing.T) {
	tiles := [][]Tile{
		{'X', 'X'},
		{'X', ' '},
	}
	out := Render(tiles, 1, 1, '^')
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "\n")
}

func TestDebugDumpProducesJSONFields(t *testing.T) {
	out := DebugDump(Snapshot{Rover: "r1", X: 1, Y: 2, Orientation: 0, Power: 100, Gold: 1})
	assert.Contains(t, out, "r1")
	assert.Contains(t, out, "rover")
}
