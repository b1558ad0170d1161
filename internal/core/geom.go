// Package core provides fundamental types and utilities for the biome platformer.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or displacement in world coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Dist returns the Euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Box is an axis-aligned bounding box in world coordinates, stored as
// min/max corners. World space has +Y pointing up.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox creates a box from its center and half extents.
func NewBox(center Vec2, halfW, halfH float64) Box {
	return Box{
		MinX: center.X - halfW,
		MinY: center.Y - halfH,
		MaxX: center.X + halfW,
		MaxY: center.Y + halfH,
	}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Intersects returns true if this box overlaps another.
// Touching edges do not count as overlap.
func (b Box) Intersects(o Box) bool {
	if b.MinX >= o.MaxX || o.MinX >= b.MaxX {
		return false
	}
	if b.MinY >= o.MaxY || o.MinY >= b.MaxY {
		return false
	}
	return true
}

// Contains returns true if the point is inside the box (edges inclusive).
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// SpanOverlaps reports whether the closed intervals [aMin, aMax] and
// [bMin, bMax] share at least one point.
func SpanOverlaps(aMin, aMax, bMin, bMax float64) bool {
	return aMax >= bMin && aMin <= bMax
}

// CirclesOverlap reports whether two circles strictly overlap.
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	return a.Dist(b) < ra+rb
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1 for negative values and +1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
