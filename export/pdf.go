package export

import (
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"flowkit/scene"
)

// PDF renders a snapshot to a single-page PDF, scaled to fit the page.
func PDF(snap scene.Snapshot, path string) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	const pageMargin = 36.0
	minX, minY, w, h := bounds(snap, 20)
	scale := 1.0
	if w > pageW-2*pageMargin || h > pageH-2*pageMargin {
		scale = minFloat((pageW-2*pageMargin)/w, (pageH-2*pageMargin)/h)
	}
	tx := func(x float64) float64 { return pageMargin + (x-minX)*scale }
	ty := func(y float64) float64 { return pageMargin + (y-minY)*scale }

	if snap.BackgroundColor != "" {
		r, g, b := parseHex(snap.BackgroundColor)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(0, 0, pageW, pageH, "F")
	}

	for _, rec := range snap.Objects {
		if err := drawPDF(pdf, rec, tx, ty, scale); err != nil {
			slog.Warn("pdf export: skipping object", "type", rec.Type, "error", err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func drawPDF(pdf *gofpdf.Fpdf, r scene.Record, tx, ty func(float64) float64, scale float64) error {
	sr, sg, sb := parseHex(strokeColor(r))
	pdf.SetDrawColor(sr, sg, sb)
	pdf.SetLineWidth(lineWidth(r) * scale)

	style := "D"
	if r.Fill != "" {
		fr, fg, fb := parseHex(r.Fill)
		pdf.SetFillColor(fr, fg, fb)
		style = "FD"
	}

	switch r.Type {
	case "rectangle":
		pdf.Rect(tx(r.X), ty(r.Y), r.Width*scale, r.Height*scale, style)
	case "circle", "ellipse":
		pdf.Ellipse(tx(r.X+r.Width/2), ty(r.Y+r.Height/2), r.Width/2*scale, r.Height/2*scale, 0, style)
	case "diamond":
		pdf.Polygon(pdfPoints(diamondPoints(r), tx, ty), style)
	case "triangle":
		pdf.Polygon(pdfPoints(trianglePoints(r), tx, ty), style)
	case "line":
		pdf.Line(tx(r.X), ty(r.Y), tx(r.X+r.Width), ty(r.Y+r.Height))
	case "text":
		// label only
	default:
		return unknownType("pdf", r.Type)
	}

	drawLabelPDF(pdf, r, tx, ty, scale)
	return nil
}

func drawLabelPDF(pdf *gofpdf.Fpdf, r scene.Record, tx, ty func(float64) float64, scale float64) {
	if r.Text == "" {
		return
	}
	size := fontSize(r) * scale
	pdf.SetFont("Helvetica", "", size)
	cr, cg, cb := parseHex(textColor(r))
	pdf.SetTextColor(cr, cg, cb)

	cx, cy := labelAnchor(r)
	lines := labelLines(r, fontSize(r))
	lineHeight := size * 1.2
	top := ty(cy) - lineHeight*float64(len(lines)-1)/2
	for i, line := range lines {
		width := pdf.GetStringWidth(line)
		pdf.Text(tx(cx)-width/2, top+float64(i)*lineHeight+size*0.35, line)
	}
}

func pdfPoints(pts [][2]float64, tx, ty func(float64) float64) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: tx(p[0]), Y: ty(p[1])}
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
