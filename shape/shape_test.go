package shape

import (
	"testing"

	"flowkit/measure"
)

func TestEmptyTextReturnsMinimums(t *testing.T) {
	for _, typ := range []Type{Rectangle, Circle, Diamond, Ellipse, Triangle} {
		for _, text := range []string{"", "   ", "\t\n"} {
			s := Calculate(text, typ, SizeOptions{})
			if s.Width != DefaultMinWidth || s.Height != DefaultMinHeight {
				t.Errorf("%v %q: got %dx%d, want %dx%d", typ, text, s.Width, s.Height, DefaultMinWidth, DefaultMinHeight)
			}
			if s.Padding != 16 {
				t.Errorf("%v %q: padding = %d, want 16", typ, text, s.Padding)
			}
		}
	}
}

func TestPaddingPerType(t *testing.T) {
	want := map[Type]int{
		Rectangle: 16,
		Circle:    20,
		Diamond:   24,
		Ellipse:   20,
		Triangle:  20,
	}
	for typ, p := range want {
		if got := Padding(typ); got != p {
			t.Errorf("Padding(%v) = %d, want %d", typ, got, p)
		}
		if s := Calculate("label", typ, SizeOptions{}); s.Padding != p {
			t.Errorf("Calculate(%v).Padding = %d, want %d", typ, s.Padding, p)
		}
	}
}

func TestRectangleMatchesMeasuredText(t *testing.T) {
	// A one-line label: width is the measured line plus the padding, unless
	// the minimum dominates.
	opts := SizeOptions{Estimate: true}
	m := measure.Text("Process Order", measure.Options{Size: 14, MaxWidth: 150, Estimate: true})
	s := Calculate("Process Order", Rectangle, opts)

	wantW := m.Width + 16
	if wantW < DefaultMinWidth {
		wantW = DefaultMinWidth
	}
	wantH := m.Height + 16
	if wantH < DefaultMinHeight {
		wantH = DefaultMinHeight
	}
	if s.Width != wantW || s.Height != wantH {
		t.Errorf("rectangle = %dx%d, want %dx%d", s.Width, s.Height, wantW, wantH)
	}
}

func TestCircleLargerThanRectangle(t *testing.T) {
	rect := Calculate("Process Order", Rectangle, SizeOptions{})
	circ := Calculate("Process Order", Circle, SizeOptions{})
	if circ.Width <= rect.Width {
		t.Errorf("circle width %d should exceed rectangle width %d", circ.Width, rect.Width)
	}
	if circ.Width != circ.Height {
		t.Errorf("circle is not round: %dx%d", circ.Width, circ.Height)
	}
}

func TestMonotonicWidth(t *testing.T) {
	for _, typ := range []Type{Rectangle, Circle, Diamond, Ellipse, Triangle} {
		short := Calculate("step one", typ, SizeOptions{})
		long := Calculate("step one step one step one", typ, SizeOptions{})
		if long.Width < short.Width {
			t.Errorf("%v: longer label narrower: %d < %d", typ, long.Width, short.Width)
		}
	}
}

func TestUnknownTypeSizesLikeRectangle(t *testing.T) {
	rect := Calculate("fallback", Rectangle, SizeOptions{})
	odd := Calculate("fallback", Type(99), SizeOptions{})
	if rect != odd {
		t.Errorf("unknown type sized %+v, want rectangle sizing %+v", odd, rect)
	}
	if ParseType("hexagon") != Rectangle {
		t.Error("unknown type name should parse as rectangle")
	}
}

func TestNormalizeLowerBounds(t *testing.T) {
	reqs := []Request{
		{Text: "A", Type: Rectangle},
		{Text: "a much longer node label that wraps across lines", Type: Rectangle},
		{Text: "Decision", Type: Diamond},
		{Text: "", Type: Circle},
	}
	sizes := Normalize(reqs)
	if len(sizes) != len(reqs) {
		t.Fatalf("length changed: %d != %d", len(sizes), len(reqs))
	}

	maxW, maxH := 0, 0
	for _, s := range sizes {
		if s.Width > maxW {
			maxW = s.Width
		}
		if s.Height > maxH {
			maxH = s.Height
		}
	}
	for i, s := range sizes {
		if float64(s.Width) < 0.7*float64(maxW) {
			t.Errorf("entry %d width %d below 0.7*%d", i, s.Width, maxW)
		}
		if float64(s.Height) < 0.8*float64(maxH) {
			t.Errorf("entry %d height %d below 0.8*%d", i, s.Height, maxH)
		}
	}
}

func TestNormalizeEmptyBatch(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestTextPosition(t *testing.T) {
	x, y := TextPosition(10, 20, 100, 40, Rectangle)
	if x != 60 || y != 40 {
		t.Errorf("rectangle anchor = (%v, %v), want (60, 40)", x, y)
	}
	x, y = TextPosition(10, 20, 100, 40, Triangle)
	if x != 60 || y != 46 {
		t.Errorf("triangle anchor = (%v, %v), want (60, 46)", x, y)
	}
}

func TestTypeRoundTrip(t *testing.T) {
	for _, typ := range []Type{Rectangle, Circle, Diamond, Ellipse, Triangle} {
		if ParseType(typ.String()) != typ {
			t.Errorf("round trip failed for %v", typ)
		}
	}
}
