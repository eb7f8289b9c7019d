package main

import "math"

// IndestructibleWalls marks a building whose ceiling can never collapse
const IndestructibleWalls = math.MaxInt

// ZoomRegion is an interior area; ZoomIn triggers the indoor camera
type ZoomRegion struct {
	ZoomIn  *Collider
	ZoomOut *Collider
}

// Building is a structure with a ceiling that hides its interior
type Building struct {
	objectBase
	Name           string
	ZoomRegions    []ZoomRegion
	CeilingDead    bool
	WallsToDestroy int
	bounds         Collider
}

// NewBuilding creates a building whose bounds and regions are already in world space
func NewBuilding(name string, pos Vec2, layer int, bounds Collider, regions []ZoomRegion, wallsToDestroy int) *Building {
	return &Building{
		objectBase:     objectBase{kind: KindBuilding, pos: pos, layer: layer},
		Name:           name,
		ZoomRegions:    regions,
		WallsToDestroy: wallsToDestroy,
		bounds:         bounds,
	}
}

func (b *Building) Collider() Collider { return b.bounds }

// CeilingDestructible reports whether the ceiling is intact and can be destroyed
func (b *Building) CeilingDestructible() bool {
	return !b.CeilingDead && b.WallsToDestroy < IndestructibleWalls
}

// CrushCeiling destroys the ceiling if c overlaps a zoom-in region
func (b *Building) CrushCeiling(c Collider) bool {
	if !b.CeilingDestructible() {
		return false
	}
	if b.firstZoomIn(c, TestColliders) < 0 {
		return false
	}
	b.CeilingDead = true
	b.SetPartDirty()
	return true
}

// firstZoomIn returns the index of the first zoom-in region hit by c, or -1.
// Regions after the first match are not examined.
func (b *Building) firstZoomIn(c Collider, hit func(zoomIn, c Collider) bool) int {
	for i, region := range b.ZoomRegions {
		if region.ZoomIn == nil {
			continue
		}
		if hit(*region.ZoomIn, c) {
			return i
		}
	}
	return -1
}

type buildingFull struct {
	Name        string `msgpack:"n"`
	CeilingDead bool   `msgpack:"cd"`
}

type buildingPart struct {
	CeilingDead bool `msgpack:"cd"`
}

func (b *Building) FullState() any {
	return buildingFull{Name: b.Name, CeilingDead: b.CeilingDead}
}

func (b *Building) PartState() any {
	return buildingPart{CeilingDead: b.CeilingDead}
}
