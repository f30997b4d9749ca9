// Package export renders scene snapshots to PNG, PDF and JSON.
//
// Exporters consume snapshots rather than live surfaces: what you can undo
// to is exactly what you can export. Objects are drawn in record order
// (z-order); records with an unknown type are skipped with a warning, the
// same partial-tolerance the history replay applies.
package export

import (
	"fmt"
	"math"
	"strconv"

	"flowkit/measure"
	"flowkit/scene"
	"flowkit/shape"
)

// bounds returns the bounding box of a snapshot's objects, inflated by
// margin. An empty snapshot gets a small blank page.
func bounds(snap scene.Snapshot, margin float64) (minX, minY, w, h float64) {
	if len(snap.Objects) == 0 {
		return 0, 0, 2 * math.Max(margin, 1), 2 * math.Max(margin, 1)
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range snap.Objects {
		minX = math.Min(minX, math.Min(r.X, r.X+r.Width))
		minY = math.Min(minY, math.Min(r.Y, r.Y+r.Height))
		maxX = math.Max(maxX, math.Max(r.X, r.X+r.Width))
		maxY = math.Max(maxY, math.Max(r.Y, r.Y+r.Height))
	}
	minX -= margin
	minY -= margin
	return minX, minY, maxX - minX + margin, maxY - minY + margin
}

// parseHex converts "#rrggbb" (or "#rgb") to 8-bit channels. Anything
// unparsable comes back black.
func parseHex(s string) (r, g, b int) {
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string(s[1]) + string(s[1]) + string(s[2]) + string(s[2]) + string(s[3]) + string(s[3])
	}
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	rv, err1 := strconv.ParseUint(s[1:3], 16, 8)
	gv, err2 := strconv.ParseUint(s[3:5], 16, 8)
	bv, err3 := strconv.ParseUint(s[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(rv), int(gv), int(bv)
}

// diamondPoints returns the four corner points of a diamond inscribed in the
// record's bounding box.
func diamondPoints(r scene.Record) [][2]float64 {
	return [][2]float64{
		{r.X + r.Width/2, r.Y},
		{r.X + r.Width, r.Y + r.Height/2},
		{r.X + r.Width/2, r.Y + r.Height},
		{r.X, r.Y + r.Height/2},
	}
}

// trianglePoints returns the three corner points of an upward triangle
// inscribed in the record's bounding box.
func trianglePoints(r scene.Record) [][2]float64 {
	return [][2]float64{
		{r.X + r.Width/2, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

func fontSize(r scene.Record) float64 {
	if r.FontSize > 0 {
		return r.FontSize
	}
	return 14
}

// labelAnchor is the label center for a record, using the same anchor rule
// the sizer applies (triangles sit low).
func labelAnchor(r scene.Record) (float64, float64) {
	return shape.TextPosition(r.X, r.Y, r.Width, r.Height, shape.ParseType(r.Type))
}

// labelLines wraps a record's label to the width its shape offers.
func labelLines(r scene.Record, size float64) []string {
	maxWidth := int(r.Width) - shape.Padding(shape.ParseType(r.Type))
	if r.Type == "text" || maxWidth <= 0 {
		maxWidth = 0
	}
	m := measure.Text(r.Text, measure.Options{Size: size, MaxWidth: maxWidth})
	return m.Lines
}

func unknownType(format, typ string) error {
	return fmt.Errorf("%s export: unknown object type %q", format, typ)
}
