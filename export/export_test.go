package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"flowkit/scene"
)

func sampleSnapshot() scene.Snapshot {
	return scene.Snapshot{
		Objects: []scene.Record{
			{Type: "rectangle", X: 0, Y: 0, Width: 120, Height: 48, Text: "Start", Fill: "#ffffff", Stroke: "#1e1e1e"},
			{Type: "diamond", X: 200, Y: 0, Width: 140, Height: 80, Text: "OK?"},
			{Type: "circle", X: 0, Y: 160, Width: 90, Height: 90, Text: "End"},
			{Type: "triangle", X: 200, Y: 160, Width: 100, Height: 80},
			{Type: "line", X: 120, Y: 24, Width: 80, Height: 16, Stroke: "#888888"},
			{Type: "text", X: 130, Y: 10, Text: "yes", FontSize: 12},
		},
		BackgroundColor: "#fafafa",
	}
}

func TestPNGWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := PNG(sampleSnapshot(), path, PNGOptions{}); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG written")
	}
}

func TestPNGSkipsUnknownTypes(t *testing.T) {
	snap := sampleSnapshot()
	snap.Objects = append(snap.Objects, scene.Record{Type: "hexagon", X: 400, Y: 0, Width: 50, Height: 50})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := PNG(snap, path, PNGOptions{}); err != nil {
		t.Fatalf("unknown type should be skipped, not fail the export: %v", err)
	}
}

func TestPNGEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := PNG(scene.Snapshot{}, path, PNGOptions{}); err != nil {
		t.Fatalf("empty snapshot: %v", err)
	}
}

func TestPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := PDF(sampleSnapshot(), path); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty PDF written")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	snap := sampleSnapshot()
	if err := JSON(snap, &buf); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	back, err := scene.ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(back.Objects) != len(snap.Objects) {
		t.Errorf("objects = %d, want %d", len(back.Objects), len(snap.Objects))
	}
	if back.BackgroundColor != snap.BackgroundColor {
		t.Errorf("background = %q", back.BackgroundColor)
	}
}

func TestBounds(t *testing.T) {
	minX, minY, w, h := bounds(sampleSnapshot(), 10)
	if minX != -10 || minY != -10 {
		t.Errorf("origin = (%v, %v), want (-10, -10)", minX, minY)
	}
	if w <= 0 || h <= 0 {
		t.Errorf("degenerate bounds %vx%v", w, h)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#ffffff", 255, 255, 255},
		{"#1e1e1e", 30, 30, 30},
		{"#f00", 255, 0, 0},
		{"garbage", 0, 0, 0},
		{"", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := parseHex(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHex(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
