// Package layout places sized shapes on the canvas and separates overlaps.
//
// It operates purely on bounding boxes: callers size shapes first (see the
// shape package) and hand the placed boxes here. Generated diagrams arrive
// either with no positions at all (Arrange) or with positions that collide
// (ResolveOverlaps).
package layout

import (
	"math"

	"flowkit/shape"
)

// Placed is an axis-aligned bounding box in pixel space.
type Placed struct {
	X, Y          int
	Width, Height int
}

// DefaultSpacing is the minimum gap enforced between separated shapes.
const DefaultSpacing = 20

// maxPasses bounds the separation loop; pathological inputs settle for
// whatever the final pass produced rather than spinning.
const maxPasses = 16

// ResolveOverlaps separates intersecting boxes by pushing later entries away
// from earlier ones along the axis of least penetration. Earlier entries keep
// their positions, so a batch keeps its reading order. Deterministic; the
// input slice is not modified.
func ResolveOverlaps(nodes []Placed, spacing int) []Placed {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	out := make([]Placed, len(nodes))
	copy(out, nodes)

	for pass := 0; pass < maxPasses; pass++ {
		moved := false
		for i := 1; i < len(out); i++ {
			for j := 0; j < i; j++ {
				if separate(&out[i], out[j], spacing) {
					moved = true
				}
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// separate pushes b away from a if the two (spacing-inflated) boxes
// intersect. Returns true when b moved.
func separate(b *Placed, a Placed, spacing int) bool {
	// Penetration depth on each axis, counting the required gap.
	overlapX := minInt(a.X+a.Width+spacing, b.X+b.Width+spacing) - maxInt(a.X, b.X)
	overlapY := minInt(a.Y+a.Height+spacing, b.Y+b.Height+spacing) - maxInt(a.Y, b.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return false
	}

	// Push along the cheaper axis, away from a's center.
	if overlapX <= overlapY {
		if b.X+b.Width/2 >= a.X+a.Width/2 {
			b.X += overlapX
		} else {
			b.X -= overlapX
		}
	} else {
		if b.Y+b.Height/2 >= a.Y+a.Height/2 {
			b.Y += overlapY
		} else {
			b.Y -= overlapY
		}
	}
	return true
}

// Overlaps reports whether any two boxes intersect when inflated by spacing.
func Overlaps(nodes []Placed, spacing int) bool {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if a.X < b.X+b.Width+spacing && b.X < a.X+a.Width+spacing &&
				a.Y < b.Y+b.Height+spacing && b.Y < a.Y+a.Height+spacing {
				return true
			}
		}
	}
	return false
}

// Arrange lays out a batch of sizes in row-major order. Row height follows
// the tallest shape in the row. A non-positive perRow picks a near-square
// grid.
func Arrange(sizes []shape.Size, perRow, hGap, vGap int) []Placed {
	if len(sizes) == 0 {
		return nil
	}
	if perRow <= 0 {
		perRow = int(math.Ceil(math.Sqrt(float64(len(sizes)))))
	}
	if hGap <= 0 {
		hGap = DefaultSpacing
	}
	if vGap <= 0 {
		vGap = DefaultSpacing
	}

	placed := make([]Placed, len(sizes))
	x, y, rowHeight := 0, 0, 0
	for i, s := range sizes {
		if i > 0 && i%perRow == 0 {
			x = 0
			y += rowHeight + vGap
			rowHeight = 0
		}
		placed[i] = Placed{X: x, Y: y, Width: s.Width, Height: s.Height}
		x += s.Width + hGap
		if s.Height > rowHeight {
			rowHeight = s.Height
		}
	}
	return placed
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
