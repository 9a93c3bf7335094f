package biweekly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lattice builds the edges of a full ruled grid with the given vertical and
// horizontal rule positions.
func lattice(xs, ys []float64) []edge {
	var edges []edge
	for _, x := range xs {
		edges = append(edges, edge{x0: x, x1: x, top: ys[0], bottom: ys[len(ys)-1], vertical: true})
	}
	for _, y := range ys {
		edges = append(edges, edge{x0: xs[0], x1: xs[len(xs)-1], top: y, bottom: y, vertical: false})
	}
	return edges
}

func TestSnapEdges(t *testing.T) {
	edges := []edge{
		{x0: 10.0, x1: 10.0, top: 0, bottom: 100, vertical: true},
		{x0: 11.5, x1: 11.5, top: 0, bottom: 100, vertical: true},
		{x0: 50.0, x1: 50.0, top: 0, bottom: 100, vertical: true},
	}
	snapped := snapEdges(edges, 3.0)

	assert.Equal(t, snapped[0].x0, snapped[1].x0, "near-coincident rules snap together")
	assert.InDelta(t, 10.75, snapped[0].x0, 0.001)
	assert.Equal(t, 50.0, snapped[2].x0, "distant rule untouched")
}

func TestJoinEdges(t *testing.T) {
	// One horizontal rule drawn as two strokes with a 2pt gap.
	edges := []edge{
		{x0: 10, x1: 40, top: 20, bottom: 20, vertical: false},
		{x0: 42, x1: 90, top: 20, bottom: 20, vertical: false},
	}
	joined := joinEdges(edges, 3.0)

	require.Len(t, joined, 1)
	assert.Equal(t, 10.0, joined[0].x0)
	assert.Equal(t, 90.0, joined[0].x1)
}

func TestJoinEdges_KeepsDistantStrokes(t *testing.T) {
	edges := []edge{
		{x0: 10, x1: 40, top: 20, bottom: 20, vertical: false},
		{x0: 60, x1: 90, top: 20, bottom: 20, vertical: false},
	}
	assert.Len(t, joinEdges(edges, 3.0), 2)
}

func TestFilterShortEdges(t *testing.T) {
	edges := []edge{
		{x0: 10, x1: 11, top: 20, bottom: 20, vertical: false}, // 1pt stub
		{x0: 10, x1: 90, top: 40, bottom: 40, vertical: false},
	}
	kept := filterShortEdges(edges, 3.0)
	require.Len(t, kept, 1)
	assert.Equal(t, 40.0, kept[0].top)
}

func TestLatticeToGrid(t *testing.T) {
	edges := lattice([]float64{10, 50, 90}, []float64{10, 30, 50, 70})

	crossings := intersections(edges, 3.0)
	cells := crossingsToCells(crossings)
	require.Len(t, cells, 6, "2 columns x 3 rows")

	tables := groupCellsIntoTables(cells)
	require.Len(t, tables, 1)

	grid := cellGrid(tables[0])
	require.Len(t, grid, 3)
	for _, row := range grid {
		assert.Len(t, row, 2)
		for _, cell := range row {
			assert.NotNil(t, cell)
		}
	}
}

func TestGroupCellsIntoTables_SeparatesDisjointLattices(t *testing.T) {
	upper := lattice([]float64{10, 50, 90}, []float64{10, 30})
	lower := lattice([]float64{10, 50, 90}, []float64{200, 220})

	crossings := intersections(append(upper, lower...), 3.0)
	cells := crossingsToCells(crossings)
	require.Len(t, cells, 4)

	tables := groupCellsIntoTables(cells)
	assert.Len(t, tables, 2)
}

func TestCellText(t *testing.T) {
	cell := cellBox{x0: 0, top: 0, x1: 100, bottom: 40}
	chars := []pageChar{
		{text: 'H', x0: 2, y0: 2, x1: 8, y1: 12},
		{text: 'i', x0: 9, y0: 2, x1: 12, y1: 12},
		// Second text line inside the same cell.
		{text: 'y', x0: 2, y0: 20, x1: 8, y1: 30},
		{text: 'o', x0: 9, y0: 20, x1: 14, y1: 30},
		// Outside the cell.
		{text: 'X', x0: 200, y0: 2, x1: 208, y1: 12},
	}

	assert.Equal(t, "Hi\nyo", cellText(cell, chars))
	assert.Equal(t, "", cellText(cellBox{x0: 300, top: 0, x1: 400, bottom: 40}, chars))
}

func TestIsPageBorder(t *testing.T) {
	const w, h = 612.0, 792.0

	assert.True(t, isPageBorder(edge{x0: 5, x1: 5, top: 100, bottom: 300, vertical: true}, w, h),
		"rule at the page edge")
	assert.True(t, isPageBorder(edge{x0: 30, x1: 600, top: 100, bottom: 100, vertical: false}, w, h),
		"rule spanning nearly the full width")
	assert.False(t, isPageBorder(edge{x0: 100, x1: 400, top: 100, bottom: 100, vertical: false}, w, h))
}
