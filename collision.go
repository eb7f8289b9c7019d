package main

import "math"

// ColliderType tags the shape held by a Collider
type ColliderType uint8

const (
	ColliderCircle ColliderType = iota
	ColliderAabb
)

// Collider is a world- or definition-space collision shape.
// Circles use Pos/Rad, boxes use Min/Max.
type Collider struct {
	Type ColliderType `msgpack:"t"`
	Pos  Vec2         `msgpack:"p"`
	Rad  float64      `msgpack:"r"`
	Min  Vec2         `msgpack:"mn"`
	Max  Vec2         `msgpack:"mx"`
}

// NewCircle creates a circle collider
func NewCircle(pos Vec2, rad float64) Collider {
	return Collider{Type: ColliderCircle, Pos: pos, Rad: rad}
}

// NewAabb creates a box collider from two corners in any order
func NewAabb(a, b Vec2) Collider {
	return Collider{Type: ColliderAabb, Min: MinElems(a, b), Max: MaxElems(a, b)}
}

// NewAabbExtents creates a box collider centred on pos with half-size ext
func NewAabbExtents(pos, ext Vec2) Collider {
	return NewAabb(pos.Sub(ext), pos.Add(ext))
}

// Bounds returns the enclosing box of the collider
func (c Collider) Bounds() (min, max Vec2) {
	if c.Type == ColliderCircle {
		r := V2(c.Rad, c.Rad)
		return c.Pos.Sub(r), c.Pos.Add(r)
	}
	return c.Min, c.Max
}

// Center returns the centre point of the collider
func (c Collider) Center() Vec2 {
	if c.Type == ColliderCircle {
		return c.Pos
	}
	return c.Min.Add(c.Max).Mul(0.5)
}

// TransformCollider places a definition-space collider into the world using
// a pose. Rotated boxes are widened to the box enclosing their corners.
func TransformCollider(c Collider, pos Vec2, rot, scale float64) Collider {
	if c.Type == ColliderCircle {
		center := c.Pos.Mul(scale).Rotate(rot).Add(pos)
		return NewCircle(center, c.Rad*scale)
	}

	corners := [4]Vec2{
		c.Min,
		V2(c.Min.X, c.Max.Y),
		c.Max,
		V2(c.Max.X, c.Min.Y),
	}
	lo := V2(math.Inf(1), math.Inf(1))
	hi := V2(math.Inf(-1), math.Inf(-1))
	for _, p := range corners {
		w := p.Mul(scale).Rotate(rot).Add(pos)
		lo = MinElems(lo, w)
		hi = MaxElems(hi, w)
	}
	return Collider{Type: ColliderAabb, Min: lo, Max: hi}
}

// TestColliders reports whether two colliders overlap. Touching counts.
func TestColliders(a, b Collider) bool {
	switch {
	case a.Type == ColliderCircle && b.Type == ColliderCircle:
		return CheckCollision(a.Pos.X, a.Pos.Y, a.Rad, b.Pos.X, b.Pos.Y, b.Rad)
	case a.Type == ColliderCircle && b.Type == ColliderAabb:
		return circleAabb(a.Pos, a.Rad, b.Min, b.Max)
	case a.Type == ColliderAabb && b.Type == ColliderCircle:
		return circleAabb(b.Pos, b.Rad, a.Min, a.Max)
	default:
		return aabbAabb(a.Min, a.Max, b.Min, b.Max)
	}
}

// CheckCollision checks if two circles overlap
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// circleAabb tests the box point closest to the circle centre
func circleAabb(pos Vec2, rad float64, min, max Vec2) bool {
	closest := V2(Clamp(pos.X, min.X, max.X), Clamp(pos.Y, min.Y, max.Y))
	return pos.Sub(closest).LengthSqr() <= rad*rad
}

func aabbAabb(min0, max0, min1, max1 Vec2) bool {
	return min0.X <= max1.X && min1.X <= max0.X &&
		min0.Y <= max1.Y && min1.Y <= max0.Y
}
