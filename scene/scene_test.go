package scene

import (
	"bytes"
	"strings"
	"testing"
)

func TestIsUserContent(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
		want bool
	}{
		{"nil", nil, false},
		{"plain rectangle", &Object{Type: "rectangle", Stroke: "#333333"}, true},
		{"excluded", &Object{Type: "rectangle", ExcludeFromExport: true}, false},
		{"major grid stroke", &Object{Type: "line", Stroke: GridColorMajor}, false},
		{"minor grid stroke", &Object{Type: "line", Stroke: GridColorMinor}, false},
		{"no stroke", &Object{Type: "text"}, true},
	}
	for _, tt := range tests {
		if got := IsUserContent(tt.obj); got != tt.want {
			t.Errorf("%s: IsUserContent = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddRemoveNotify(t *testing.T) {
	s := New()
	changes := 0
	s.OnChange(func() { changes++ })

	a := NewObject("rectangle")
	b := NewObject("circle")
	s.Add(a)
	s.Add(b)
	if changes != 2 {
		t.Errorf("changes after adds = %d, want 2", changes)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}

	s.Remove(a)
	if changes != 3 {
		t.Errorf("changes after remove = %d, want 3", changes)
	}
	objs := s.Objects()
	if len(objs) != 1 || objs[0] != b {
		t.Errorf("unexpected objects after remove: %v", objs)
	}

	// Removing an absent object neither fires nor fails.
	s.Remove(a)
	if changes != 3 {
		t.Errorf("removal of absent object notified: changes = %d", changes)
	}
}

func TestRemoveByID(t *testing.T) {
	s := New()
	o := NewObject("diamond")
	s.Add(o)
	s.Remove(&Object{ID: o.ID})
	if s.Len() != 0 {
		t.Error("remove by ID failed")
	}
}

func TestZOrderPreserved(t *testing.T) {
	s := New()
	ids := []string{}
	for _, typ := range []string{"rectangle", "circle", "triangle"} {
		o := NewObject(typ)
		ids = append(ids, o.ID)
		s.Add(o)
	}
	for i, o := range s.Objects() {
		if o.ID != ids[i] {
			t.Fatalf("z-order broken at %d", i)
		}
	}
}

func TestBackgroundNotifies(t *testing.T) {
	s := New()
	changes := 0
	s.OnChange(func() { changes++ })
	s.SetBackground("#ffffff")
	s.SetBackground("#ffffff") // unchanged, no event
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
	if s.Background() != "#ffffff" {
		t.Errorf("background = %q", s.Background())
	}
}

func TestRedrawIsNotAMutation(t *testing.T) {
	s := New()
	changes, redraws := 0, 0
	s.OnChange(func() { changes++ })
	s.OnRedraw(func() { redraws++ })
	s.Redraw()
	if changes != 0 || redraws != 1 {
		t.Errorf("changes = %d, redraws = %d", changes, redraws)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	o := NewObject("ellipse")
	o.X, o.Y, o.Width, o.Height = 10, 20, 120, 60
	o.Text = "Review"
	o.Fill = "#ffffff"
	o.Stroke = "#1e1e1e"
	o.StrokeWidth = 2
	o.FontSize = 14

	rec, err := Encode(o)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(rec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *back != *o {
		t.Errorf("round trip changed object:\n got %+v\nwant %+v", back, o)
	}
}

func TestCodecRejectsUntyped(t *testing.T) {
	if _, err := Encode(&Object{}); err == nil {
		t.Error("encoding an untyped object should fail")
	}
	if _, err := Decode(Record{X: 1}); err == nil {
		t.Error("decoding an untyped record should fail")
	}
	if _, err := Encode(nil); err == nil {
		t.Error("encoding nil should fail")
	}
}

func TestDecodeAssignsID(t *testing.T) {
	o, err := Decode(Record{Type: "rectangle"})
	if err != nil {
		t.Fatal(err)
	}
	if o.ID == "" {
		t.Error("decoded object has no ID")
	}
}

func TestGridIsDecoration(t *testing.T) {
	s := New()
	s.AddGrid(100, 100, 20)
	if s.Len() == 0 {
		t.Fatal("grid added no objects")
	}
	for _, o := range s.Objects() {
		if IsUserContent(o) {
			t.Fatalf("grid object counted as user content: %+v", o)
		}
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	snap := Snapshot{
		Objects: []Record{
			{Type: "rectangle", X: 1, Y: 2, Width: 100, Height: 40, Text: "Start"},
			{Type: "circle", X: 200, Y: 2, Width: 90, Height: 90},
		},
		BackgroundColor: "#fafafa",
	}
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		t.Fatal(err)
	}
	back, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Objects) != 2 || back.BackgroundColor != "#fafafa" {
		t.Errorf("round trip lost data: %+v", back)
	}
	if back.Objects[0].Text != "Start" {
		t.Errorf("first record: %+v", back.Objects[0])
	}
}

func TestReadSnapshotBadJSON(t *testing.T) {
	if _, err := ReadSnapshot(strings.NewReader("{not json")); err == nil {
		t.Error("malformed snapshot should fail to parse")
	}
}
