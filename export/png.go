package export

import (
	"log/slog"

	"github.com/fogleman/gg"

	"flowkit/measure"
	"flowkit/scene"
)

// PNGOptions controls raster export.
type PNGOptions struct {
	Margin float64 // page margin in pixels; defaults to 20
	Logger *slog.Logger
}

// PNG renders a snapshot to a PNG file.
func PNG(snap scene.Snapshot, path string, opts PNGOptions) error {
	if opts.Margin <= 0 {
		opts.Margin = 20
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	minX, minY, w, h := bounds(snap, opts.Margin)
	dc := gg.NewContext(int(w)+1, int(h)+1)

	background := snap.BackgroundColor
	if background == "" {
		background = "#ffffff"
	}
	dc.SetHexColor(background)
	dc.Clear()
	dc.Translate(-minX, -minY)

	for _, rec := range snap.Objects {
		if err := drawPNG(dc, rec); err != nil {
			log.Warn("png export: skipping object", "type", rec.Type, "error", err)
			continue
		}
		drawLabelPNG(dc, rec)
	}

	return dc.SavePNG(path)
}

func drawPNG(dc *gg.Context, r scene.Record) error {
	switch r.Type {
	case "rectangle":
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	case "circle", "ellipse":
		dc.DrawEllipse(r.X+r.Width/2, r.Y+r.Height/2, r.Width/2, r.Height/2)
	case "diamond":
		tracePolygon(dc, diamondPoints(r))
	case "triangle":
		tracePolygon(dc, trianglePoints(r))
	case "line":
		dc.SetHexColor(strokeColor(r))
		dc.SetLineWidth(lineWidth(r))
		dc.DrawLine(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		dc.Stroke()
		return nil
	case "text":
		return nil // label only, drawn below
	default:
		return unknownType("png", r.Type)
	}

	if r.Fill != "" {
		dc.SetHexColor(r.Fill)
		dc.FillPreserve()
	}
	dc.SetHexColor(strokeColor(r))
	dc.SetLineWidth(lineWidth(r))
	dc.Stroke()
	return nil
}

func tracePolygon(dc *gg.Context, pts [][2]float64) {
	dc.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		dc.LineTo(p[0], p[1])
	}
	dc.ClosePath()
}

func drawLabelPNG(dc *gg.Context, r scene.Record) {
	if r.Text == "" {
		return
	}
	size := fontSize(r)
	if face := measure.Face(size, measure.Regular); face != nil {
		dc.SetFontFace(face)
	}
	dc.SetHexColor(textColor(r))

	cx, cy := labelAnchor(r)
	lines := labelLines(r, size)
	lineHeight := size * 1.2
	top := cy - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, top+float64(i)*lineHeight, 0.5, 0.35)
	}
}

func strokeColor(r scene.Record) string {
	if r.Stroke != "" {
		return r.Stroke
	}
	return "#1e1e1e"
}

func textColor(r scene.Record) string {
	if r.Type == "text" && r.Fill != "" {
		return r.Fill
	}
	return "#1e1e1e"
}

func lineWidth(r scene.Record) float64 {
	if r.StrokeWidth > 0 {
		return r.StrokeWidth
	}
	return 2
}
