package terminal

import (
	"testing"

	"flowkit/scene"
)

func TestCaptureFiltersDecorations(t *testing.T) {
	sc := scene.New()
	sc.AddGrid(100, 100, 20)
	sc.SetBackground("#fafafa")

	o := scene.NewObject("rectangle")
	o.Width, o.Height = 100, 40
	o.Text = "Start"
	sc.Add(o)

	snap := Capture(sc)
	if len(snap.Objects) != 1 {
		t.Fatalf("captured %d objects, want 1", len(snap.Objects))
	}
	if snap.Objects[0].Text != "Start" {
		t.Errorf("wrong object captured: %+v", snap.Objects[0])
	}
	if snap.BackgroundColor != "#fafafa" {
		t.Errorf("background = %q", snap.BackgroundColor)
	}
}

func TestCaptureKeepsZOrder(t *testing.T) {
	sc := scene.New()
	for _, typ := range []string{"rectangle", "circle", "diamond"} {
		o := scene.NewObject(typ)
		sc.Add(o)
	}
	snap := Capture(sc)
	want := []string{"rectangle", "circle", "diamond"}
	for i, rec := range snap.Objects {
		if rec.Type != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, rec.Type, want[i])
		}
	}
}
