// Package vector provides 2D integer vectors and direction helpers.
package vector

import (
	"golang.org/x/exp/constraints"
)

// Vector2D is a vector of two points represented by integers.
type Vector2D[T constraints.Signed] struct {
	X T
	Y T
}

// New returns a vector for the given coordinates.
func New[T constraints.Signed](x, y T) Vector2D[T] {
	return Vector2D[T]{X: x, Y: y}
}

// Add returns the component wise sum of both vectors.
func (v Vector2D[T]) Add(o Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component wise difference of both vectors.
func (v Vector2D[T]) Sub(o Vector2D[T]) Vector2D[T] {
	return Vector2D[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns the vector scaled by the given factor.
func (v Vector2D[T]) Mul(factor T) Vector2D[T] {
	return Vector2D[T]{X: v.X * factor, Y: v.Y * factor}
}

// AddAssign adds the other vector in place.
func (v *Vector2D[T]) AddAssign(o Vector2D[T]) {
	v.X += o.X
	v.Y += o.Y
}

// SubAssign subtracts the other vector in place.
func (v *Vector2D[T]) SubAssign(o Vector2D[T]) {
	v.X -= o.X
	v.Y -= o.Y
}

// MoveTowards moves the vector towards the target, each axis independently
// by at most step units. The target is never overshot.
func (v *Vector2D[T]) MoveTowards(target Vector2D[T], step T) {
	v.X = approach(v.X, target.X, step)
	v.Y = approach(v.Y, target.Y, step)
}

func approach[T constraints.Signed](current, target, step T) T {
	// target-step and current-step wrap around when the value is within step
	// of the type minimum, in which case the distance is below step.
	switch {
	case current < target:
		if limit := target - step; limit < target && current < limit {
			return current + step
		}
		return target
	case current > target:
		if limit := current - step; limit < current && target < limit {
			return current - step
		}
		return target
	default:
		return target
	}
}
