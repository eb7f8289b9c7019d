package main

import "math"

// Vec2 is a 2D world-space vector
type Vec2 struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
}

// V2 builds a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) Mul(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func (a Vec2) LengthSqr() float64 {
	return a.X*a.X + a.Y*a.Y
}

func (a Vec2) Length() float64 {
	return math.Sqrt(a.LengthSqr())
}

// Rotate rotates the vector by rot radians around the origin
func (a Vec2) Rotate(rot float64) Vec2 {
	cosR := math.Cos(rot)
	sinR := math.Sin(rot)
	return Vec2{
		X: a.X*cosR - a.Y*sinR,
		Y: a.X*sinR + a.Y*cosR,
	}
}

// MinElems returns the component-wise minimum
func MinElems(a, b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// MaxElems returns the component-wise maximum
func MaxElems(a, b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Lerp interpolates from a to b by t
func Lerp(t, a, b float64) float64 {
	return a*(1-t) + b*t
}

// Remap maps v from [a, b] onto [x, y], clamping to the target range
func Remap(v, a, b, x, y float64) float64 {
	t := Clamp((v-a)/(b-a), 0, 1)
	return Lerp(t, x, y)
}

// OriToRad converts a quarter-turn orientation (0-3) to radians
func OriToRad(ori int) float64 {
	return float64(ori%4) * math.Pi / 2
}

// SameLayer reports whether objects on layers a and b can interact.
// Bit 0 selects ground/bunker, bit 1 marks stairs that touch both.
func SameLayer(a, b int) bool {
	return (a&1) == (b&1) || (a&2 != 0 && b&2 != 0)
}
