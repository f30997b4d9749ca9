package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Record is the plain serialized form of an Object. Records are what
// snapshots, files and exporters traffic in; live objects never leave the
// surface.
type Record struct {
	ID          string  `json:"id,omitempty"`
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Text        string  `json:"text,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
}

// Snapshot is a point-in-time capture of the surface's user content.
// Immutable once created; object order is z-order.
type Snapshot struct {
	Objects         []Record `json:"objects"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
}

var errNoType = errors.New("record has no type")

// Encode converts a live object to its serialized record.
func Encode(o *Object) (Record, error) {
	if o == nil {
		return Record{}, errors.New("nil object")
	}
	if o.Type == "" {
		return Record{}, errNoType
	}
	return Record{
		ID:          o.ID,
		Type:        o.Type,
		X:           o.X,
		Y:           o.Y,
		Width:       o.Width,
		Height:      o.Height,
		Text:        o.Text,
		Fill:        o.Fill,
		Stroke:      o.Stroke,
		StrokeWidth: o.StrokeWidth,
		FontSize:    o.FontSize,
	}, nil
}

// Decode reconstructs a live object from its record. Records with no type
// cannot be reconstructed.
func Decode(r Record) (*Object, error) {
	if r.Type == "" {
		return nil, errNoType
	}
	o := &Object{
		ID:          r.ID,
		Type:        r.Type,
		X:           r.X,
		Y:           r.Y,
		Width:       r.Width,
		Height:      r.Height,
		Text:        r.Text,
		Fill:        r.Fill,
		Stroke:      r.Stroke,
		StrokeWidth: r.StrokeWidth,
		FontSize:    r.FontSize,
	}
	if o.ID == "" {
		o.ID = NewObject(r.Type).ID
	}
	return o, nil
}

// ReadSnapshot parses a snapshot from JSON.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

// WriteSnapshot writes a snapshot as indented JSON.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
