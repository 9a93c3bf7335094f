package biweekly

import (
	"math"
	"sort"
)

// edge is one horizontal or vertical rule-line segment on a page.
type edge struct {
	x0, x1      float64
	top, bottom float64
	vertical    bool
}

func (e edge) length() float64 {
	if e.vertical {
		return e.bottom - e.top
	}
	return e.x1 - e.x0
}

// point is an intersection of a vertical and a horizontal edge.
type point struct {
	x, y float64
}

// cellBox is one table cell bounded by rule lines on all four sides.
type cellBox struct {
	x0, top, x1, bottom float64
}

// ExtractSettings are the geometry tolerances for ruled-table detection.
// They mirror the extraction configuration the reports are known to parse
// with: strict line-based boundaries, small fixed tolerances. Tables not
// bounded by visible rule lines are not recovered.
type ExtractSettings struct {
	SnapTolerance         float64 // snap nearby parallel edges to one position
	JoinTolerance         float64 // join collinear edges separated by small gaps
	EdgeMinLength         float64 // discard shorter edges
	IntersectionTolerance float64 // slack when testing edge crossings
}

// DefaultExtractSettings returns the fixed tolerances used for the reports.
func DefaultExtractSettings() ExtractSettings {
	return ExtractSettings{
		SnapTolerance:         3.0,
		JoinTolerance:         3.0,
		EdgeMinLength:         3.0,
		IntersectionTolerance: 3.0,
	}
}

// snapEdges clusters parallel edges whose positions are within tolerance and
// moves each cluster to its average position, separately per orientation.
func snapEdges(edges []edge, tolerance float64) []edge {
	type cluster struct {
		pos     float64
		indices []int
	}

	snapped := make([]edge, len(edges))
	copy(snapped, edges)

	for _, vertical := range []bool{true, false} {
		var clusters []cluster
		for i, e := range snapped {
			if e.vertical != vertical {
				continue
			}
			pos := e.top
			if vertical {
				pos = e.x0
			}
			found := false
			for j := range clusters {
				if math.Abs(clusters[j].pos-pos) <= tolerance {
					clusters[j].indices = append(clusters[j].indices, i)
					n := float64(len(clusters[j].indices))
					clusters[j].pos = (clusters[j].pos*(n-1) + pos) / n
					found = true
					break
				}
			}
			if !found {
				clusters = append(clusters, cluster{pos: pos, indices: []int{i}})
			}
		}
		for _, c := range clusters {
			for _, i := range c.indices {
				if vertical {
					diff := c.pos - snapped[i].x0
					snapped[i].x0 = c.pos
					snapped[i].x1 += diff
				} else {
					diff := c.pos - snapped[i].top
					snapped[i].top = c.pos
					snapped[i].bottom += diff
				}
			}
		}
	}

	return snapped
}

// joinEdges merges collinear edges that overlap or sit within the join
// tolerance of each other, so a rule line drawn in several strokes becomes
// one edge.
func joinEdges(edges []edge, tolerance float64) []edge {
	type lineKey struct {
		vertical bool
		pos      float64
	}

	grouped := make(map[lineKey][]edge)
	for _, e := range edges {
		key := lineKey{vertical: e.vertical, pos: e.top}
		if e.vertical {
			key.pos = e.x0
		}
		grouped[key] = append(grouped[key], e)
	}

	var result []edge
	for key, group := range grouped {
		lo := func(e edge) float64 {
			if key.vertical {
				return e.top
			}
			return e.x0
		}
		hi := func(e edge) float64 {
			if key.vertical {
				return e.bottom
			}
			return e.x1
		}

		sort.Slice(group, func(i, j int) bool { return lo(group[i]) < lo(group[j]) })

		joined := []edge{group[0]}
		for _, e := range group[1:] {
			last := &joined[len(joined)-1]
			if lo(e) <= hi(*last)+tolerance {
				if hi(e) > hi(*last) {
					if key.vertical {
						last.bottom = e.bottom
					} else {
						last.x1 = e.x1
					}
				}
			} else {
				joined = append(joined, e)
			}
		}
		result = append(result, joined...)
	}

	return result
}

// filterShortEdges drops edges shorter than the minimum length.
func filterShortEdges(edges []edge, minLength float64) []edge {
	kept := make([]edge, 0, len(edges))
	for _, e := range edges {
		if e.length() >= minLength {
			kept = append(kept, e)
		}
	}
	return kept
}

// intersections finds every point where a vertical edge crosses a horizontal
// edge, remembering which edges meet there.
func intersections(edges []edge, tolerance float64) map[point][2][]edge {
	var vEdges, hEdges []edge
	for _, e := range edges {
		if e.vertical {
			vEdges = append(vEdges, e)
		} else {
			hEdges = append(hEdges, e)
		}
	}

	crossings := make(map[point][2][]edge)
	for _, v := range vEdges {
		for _, h := range hEdges {
			if v.top <= h.top+tolerance && v.bottom >= h.top-tolerance &&
				v.x0 >= h.x0-tolerance && v.x0 <= h.x1+tolerance {
				p := point{x: v.x0, y: h.top}
				entry := crossings[p]
				entry[0] = append(entry[0], v)
				entry[1] = append(entry[1], h)
				crossings[p] = entry
			}
		}
	}

	return crossings
}

// sameEdge compares the geometry of two edges.
func sameEdge(a, b edge) bool {
	return a.x0 == b.x0 && a.x1 == b.x1 && a.top == b.top && a.bottom == b.bottom
}

// connected reports whether two intersection points lie on one shared edge.
func connected(crossings map[point][2][]edge, p1, p2 point) bool {
	if p1.x == p2.x {
		for _, e1 := range crossings[p1][0] {
			for _, e2 := range crossings[p2][0] {
				if sameEdge(e1, e2) {
					return true
				}
			}
		}
	}
	if p1.y == p2.y {
		for _, e1 := range crossings[p1][1] {
			for _, e2 := range crossings[p2][1] {
				if sameEdge(e1, e2) {
					return true
				}
			}
		}
	}
	return false
}

// crossingsToCells forms the minimal rectangles whose four corners are all
// intersection points and whose four sides are all backed by rule lines.
func crossingsToCells(crossings map[point][2][]edge) []cellBox {
	if len(crossings) == 0 {
		return nil
	}

	points := make([]point, 0, len(crossings))
	for p := range crossings {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].y == points[j].y {
			return points[i].x < points[j].x
		}
		return points[i].y < points[j].y
	})

	var cells []cellBox
	for i, pt := range points {
		var right, below *point
		for j := i + 1; j < len(points); j++ {
			p := points[j]
			if p.x == pt.x && p.y > pt.y && (below == nil || p.y < below.y) {
				below = &points[j]
			}
			if p.y == pt.y && p.x > pt.x && (right == nil || p.x < right.x) {
				right = &points[j]
			}
		}
		if right == nil || below == nil {
			continue
		}
		if !connected(crossings, pt, *below) || !connected(crossings, pt, *right) {
			continue
		}
		corner := point{x: right.x, y: below.y}
		if _, ok := crossings[corner]; !ok {
			continue
		}
		if connected(crossings, corner, *right) && connected(crossings, corner, *below) {
			cells = append(cells, cellBox{x0: pt.x, top: pt.y, x1: corner.x, bottom: corner.y})
		}
	}

	return cells
}

// groupCellsIntoTables partitions cells into contiguous tables by shared
// corners. Single stray cells are not tables.
func groupCellsIntoTables(cells []cellBox) [][]cellBox {
	if len(cells) == 0 {
		return nil
	}

	remaining := make([]cellBox, len(cells))
	copy(remaining, cells)

	var tables [][]cellBox
	var current []cellBox
	corners := make(map[point]bool)

	addCell := func(c cellBox) {
		current = append(current, c)
		corners[point{c.x0, c.top}] = true
		corners[point{c.x0, c.bottom}] = true
		corners[point{c.x1, c.top}] = true
		corners[point{c.x1, c.bottom}] = true
	}

	for len(remaining) > 0 {
		before := len(current)
		for i := 0; i < len(remaining); i++ {
			c := remaining[i]
			if len(current) == 0 ||
				corners[point{c.x0, c.top}] || corners[point{c.x0, c.bottom}] ||
				corners[point{c.x1, c.top}] || corners[point{c.x1, c.bottom}] {
				addCell(c)
				remaining = append(remaining[:i], remaining[i+1:]...)
				i--
			}
		}
		if len(current) == before {
			if len(current) > 1 {
				tables = append(tables, current)
			}
			current = nil
			corners = make(map[point]bool)
		}
	}
	if len(current) > 1 {
		tables = append(tables, current)
	}

	return tables
}

// cellGrid arranges one table's cells into a dense row/column grid. Rows are
// unique cell tops, columns unique cell lefts; positions with no bounded
// cell stay nil so the caller can tell "no cell" from "empty cell".
func cellGrid(cells []cellBox) [][]*cellBox {
	if len(cells) == 0 {
		return nil
	}

	const positionTolerance = 1.0

	axis := func(values []float64) []float64 {
		sort.Float64s(values)
		var unique []float64
		for _, v := range values {
			if len(unique) == 0 || v-unique[len(unique)-1] > positionTolerance {
				unique = append(unique, v)
			}
		}
		return unique
	}
	index := func(positions []float64, v float64) int {
		for i, p := range positions {
			if math.Abs(p-v) <= positionTolerance {
				return i
			}
		}
		return -1
	}

	tops := make([]float64, 0, len(cells))
	lefts := make([]float64, 0, len(cells))
	for _, c := range cells {
		tops = append(tops, c.top)
		lefts = append(lefts, c.x0)
	}
	rowPos := axis(tops)
	colPos := axis(lefts)

	grid := make([][]*cellBox, len(rowPos))
	for i := range grid {
		grid[i] = make([]*cellBox, len(colPos))
	}
	for i := range cells {
		r := index(rowPos, cells[i].top)
		c := index(colPos, cells[i].x0)
		if r >= 0 && c >= 0 {
			grid[r][c] = &cells[i]
		}
	}

	return grid
}
