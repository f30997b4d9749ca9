package scene

// AddGrid covers a width x height area with decorative grid lines. Every
// fifth line uses the major color. Grid objects carry a reserved stroke
// color and are excluded from export, so they never enter snapshots.
func (s *Scene) AddGrid(width, height, step float64) {
	if step <= 0 {
		step = 20
	}
	line := 0
	for x := 0.0; x <= width; x += step {
		s.Add(gridLine(x, 0, x, height, line%5 == 0))
		line++
	}
	line = 0
	for y := 0.0; y <= height; y += step {
		s.Add(gridLine(0, y, width, y, line%5 == 0))
		line++
	}
}

func gridLine(x1, y1, x2, y2 float64, major bool) *Object {
	stroke := GridColorMinor
	if major {
		stroke = GridColorMajor
	}
	o := NewObject("line")
	o.X = x1
	o.Y = y1
	o.Width = x2 - x1
	o.Height = y2 - y1
	o.Stroke = stroke
	o.StrokeWidth = 1
	o.ExcludeFromExport = true
	return o
}
