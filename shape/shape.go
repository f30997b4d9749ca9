// Package shape computes pixel geometry for labeled diagram shapes.
//
// Every function in this package is total: empty labels, zero options and
// out-of-range shape types all degrade to documented defaults instead of
// returning errors.
package shape

import (
	"math"
	"strings"

	"flowkit/measure"
)

// Type identifies the geometry of a shape.
type Type int

const (
	Rectangle Type = iota
	Circle
	Diamond
	Ellipse
	Triangle
)

// String returns the lower-case name used in serialized object records.
func (t Type) String() string {
	switch t {
	case Circle:
		return "circle"
	case Diamond:
		return "diamond"
	case Ellipse:
		return "ellipse"
	case Triangle:
		return "triangle"
	default:
		return "rectangle"
	}
}

// ParseType maps a record type name back to a Type. Unknown names size like
// rectangles.
func ParseType(s string) Type {
	switch s {
	case "circle":
		return Circle
	case "diamond":
		return Diamond
	case "ellipse":
		return Ellipse
	case "triangle":
		return Triangle
	default:
		return Rectangle
	}
}

// Size is the computed geometry for one label/shape pair.
type Size struct {
	Width   int
	Height  int
	Padding int
}

// SizeOptions parameterizes Calculate. Zero values select the defaults.
type SizeOptions struct {
	FontSize  float64 // defaults to 14
	Family    string
	Weight    measure.Weight
	MinWidth  int // defaults to 80
	MinHeight int // defaults to 40
	Estimate  bool
}

const (
	DefaultMinWidth  = 80
	DefaultMinHeight = 40
)

// Padding returns the base padding for a shape type.
func Padding(t Type) int {
	switch t {
	case Circle, Ellipse, Triangle:
		return 20
	case Diamond:
		return 24
	default:
		return 16
	}
}

// wrapWidth constrains the label's wrap width before measuring, reflecting
// how much of each shape's bounding box is usable for a centered label.
func wrapWidth(t Type, minWidth, padding int) int {
	switch t {
	case Circle:
		// Label must fit the inscribed square.
		return maxInt(120, int(0.7*float64(minWidth)))
	case Diamond:
		// Only the central lobe is usable.
		return maxInt(100, int(0.6*float64(minWidth)))
	case Triangle:
		// The lower two-thirds.
		return maxInt(80, int(0.8*float64(minWidth)))
	default:
		return maxInt(150, minWidth-padding)
	}
}

// Calculate returns the smallest geometry that comfortably contains the
// rendered label for the given shape type.
func Calculate(text string, typ Type, opts SizeOptions) Size {
	if opts.FontSize <= 0 {
		opts.FontSize = measure.DefaultSize
	}
	if opts.MinWidth <= 0 {
		opts.MinWidth = DefaultMinWidth
	}
	if opts.MinHeight <= 0 {
		opts.MinHeight = DefaultMinHeight
	}

	if strings.TrimSpace(text) == "" {
		return Size{Width: opts.MinWidth, Height: opts.MinHeight, Padding: 16}
	}

	padding := Padding(typ)
	m := measure.Text(text, measure.Options{
		Size:     opts.FontSize,
		Family:   opts.Family,
		Weight:   opts.Weight,
		MaxWidth: wrapWidth(typ, opts.MinWidth, padding),
		Estimate: opts.Estimate,
	})

	pad := float64(padding)
	textW := float64(m.Width)
	textH := float64(m.Height)

	var w, h float64
	switch typ {
	case Circle:
		// Both axes take the larger text dimension so the result stays a
		// perfect circle diameter.
		d := math.Max(textW, textH) + 2*pad
		w, h = d, d
	case Diamond:
		// Extra horizontal slack for the angled sides.
		w = textW + 2.5*pad
		h = textH + 2*pad
	case Triangle:
		w = textW + 1.5*pad
		h = textH + 2*pad
	default:
		w = textW + pad
		h = textH + pad
	}

	return Size{
		Width:   maxInt(opts.MinWidth, int(math.Ceil(w))),
		Height:  maxInt(opts.MinHeight, int(math.Ceil(h))),
		Padding: padding,
	}
}

// Request is one entry in a Normalize batch.
type Request struct {
	Text    string
	Type    Type
	Options SizeOptions
}

// Normalize sizes each request independently, then raises every entry toward
// the batch maxima (70% of the widest, 80% of the tallest) so a generated set
// of nodes stays visually consistent without forcing uniform size. Pure
// function; the result preserves order and length.
func Normalize(reqs []Request) []Size {
	sizes := make([]Size, len(reqs))
	maxW, maxH := 0, 0
	for i, r := range reqs {
		sizes[i] = Calculate(r.Text, r.Type, r.Options)
		if sizes[i].Width > maxW {
			maxW = sizes[i].Width
		}
		if sizes[i].Height > maxH {
			maxH = sizes[i].Height
		}
	}

	floorW := int(math.Ceil(0.7 * float64(maxW)))
	floorH := int(math.Ceil(0.8 * float64(maxH)))
	for i := range sizes {
		if sizes[i].Width < floorW {
			sizes[i].Width = floorW
		}
		if sizes[i].Height < floorH {
			sizes[i].Height = floorH
		}
	}
	return sizes
}

// TextPosition returns the label anchor point for a shape's bounding box.
// All shapes center their label except the triangle, whose visual centroid
// sits below the box center.
func TextPosition(x, y, w, h float64, typ Type) (float64, float64) {
	cx := x + w/2
	if typ == Triangle {
		return cx, y + 0.65*h
	}
	return cx, y + h/2
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
