package main

import "sort"

const (
	DefaultCellSize = 16.0
	minGridCells    = 1
)

// SpatialGrid is a uniform grid for broad-phase collision queries.
// Each indexed object remembers the cells it was bucketed into so that
// Remove and Update touch only those cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]GameObject
	entries  map[ObjectID][]int
}

// NewSpatialGrid creates a grid covering a width x height world
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	if cols < minGridCells {
		cols = minGridCells
	}
	if rows < minGridCells {
		rows = minGridCells
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]GameObject, cols*rows),
		entries:  make(map[ObjectID][]int),
	}
}

// cellRange converts a box to clamped cell coordinates
func (g *SpatialGrid) cellRange(min, max Vec2) (minCX, minCY, maxCX, maxCY int) {
	minCX = g.clampCol(int(min.X / g.cellSize))
	maxCX = g.clampCol(int(max.X / g.cellSize))
	minCY = g.clampRow(int(min.Y / g.cellSize))
	maxCY = g.clampRow(int(max.Y / g.cellSize))
	return
}

func (g *SpatialGrid) clampCol(cx int) int {
	if cx < 0 {
		return 0
	} else if cx >= g.cols {
		return g.cols - 1
	}
	return cx
}

func (g *SpatialGrid) clampRow(cy int) int {
	if cy < 0 {
		return 0
	} else if cy >= g.rows {
		return g.rows - 1
	}
	return cy
}

// cellsFor lists every cell index overlapped by the collider's bounds
func (g *SpatialGrid) cellsFor(c Collider) []int {
	min, max := c.Bounds()
	minCX, minCY, maxCX, maxCY := g.cellRange(min, max)
	idxs := make([]int, 0, (maxCX-minCX+1)*(maxCY-minCY+1))
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idxs = append(idxs, cy*g.cols+cx)
		}
	}
	return idxs
}

// Insert adds an object to all cells overlapping its collider.
// Inserting an already indexed object re-buckets it.
func (g *SpatialGrid) Insert(obj GameObject) {
	if _, ok := g.entries[obj.ID()]; ok {
		g.Update(obj)
		return
	}
	idxs := g.cellsFor(obj.Collider())
	for _, idx := range idxs {
		g.cells[idx] = append(g.cells[idx], obj)
	}
	g.entries[obj.ID()] = idxs
}

// Remove drops an object from the grid; unknown objects are ignored
func (g *SpatialGrid) Remove(obj GameObject) {
	idxs, ok := g.entries[obj.ID()]
	if !ok {
		return
	}
	for _, idx := range idxs {
		g.cells[idx] = removeFromCell(g.cells[idx], obj.ID())
	}
	delete(g.entries, obj.ID())
}

// Update re-buckets an object after its position or collider changed
func (g *SpatialGrid) Update(obj GameObject) {
	if _, ok := g.entries[obj.ID()]; !ok {
		return
	}
	g.Remove(obj)
	g.Insert(obj)
}

// Contains reports whether the object is currently indexed
func (g *SpatialGrid) Contains(obj GameObject) bool {
	_, ok := g.entries[obj.ID()]
	return ok
}

// Query returns every object sharing a cell with the collider's bounds,
// once each, in ascending id order. Exact overlap is not checked.
func (g *SpatialGrid) Query(c Collider) []GameObject {
	return g.collect(g.cellsFor(c), 0)
}

// QueryObject returns the other objects sharing a cell with an indexed
// object. Objects that are not indexed have no neighbours.
func (g *SpatialGrid) QueryObject(obj GameObject) []GameObject {
	idxs, ok := g.entries[obj.ID()]
	if !ok {
		return nil
	}
	return g.collect(idxs, obj.ID())
}

func (g *SpatialGrid) collect(idxs []int, skip ObjectID) []GameObject {
	seen := make(map[ObjectID]struct{})
	var result []GameObject
	for _, idx := range idxs {
		for _, obj := range g.cells[idx] {
			id := obj.ID()
			if id == skip {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, obj)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})
	return result
}

// removeFromCell swap-removes id from a cell bucket
func removeFromCell(bucket []GameObject, id ObjectID) []GameObject {
	for i, obj := range bucket {
		if obj.ID() != id {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = nil
		return bucket[:last]
	}
	return bucket
}
