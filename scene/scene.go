// Package scene models the retained drawing surface a diagram editor
// mutates: an ordered collection of drawable objects plus a background
// color. Slice order is z-order.
//
// The Scene here is the in-memory reference surface. The history package
// depends only on the narrow capability set Scene exposes, so a different
// retained-mode scene graph can stand in for it.
package scene

import (
	"sync"

	"github.com/google/uuid"
)

// Reserved stroke colors for the decorative background grid. Objects drawn
// with these strokes are system decorations, never user content.
const (
	GridColorMajor = "#e0e0e0"
	GridColorMinor = "#f5f5f5"
)

// Object is one drawable element on the surface.
type Object struct {
	ID          string
	Type        string // "rectangle", "circle", "diamond", "ellipse", "triangle", "line", "text"
	X, Y        float64
	Width       float64
	Height      float64
	Text        string
	Fill        string
	Stroke      string
	StrokeWidth float64
	FontSize    float64

	// ExcludeFromExport marks system decorations that are invisible to
	// snapshots and exporters.
	ExcludeFromExport bool
}

// NewObject returns an object of the given type with a fresh ID.
func NewObject(typ string) *Object {
	return &Object{ID: uuid.NewString(), Type: typ}
}

// IsUserContent reports whether an object is subject to undo/redo and
// export. Decorations are excluded either explicitly or by carrying a
// reserved grid stroke color.
func IsUserContent(o *Object) bool {
	if o == nil || o.ExcludeFromExport {
		return false
	}
	return o.Stroke != GridColorMajor && o.Stroke != GridColorMinor
}

// Scene is an ordered, observable collection of objects.
type Scene struct {
	mu         sync.Mutex
	objects    []*Object
	background string
	listeners  []func()
	redrawFns  []func()
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends an object (topmost in z-order) and notifies listeners.
func (s *Scene) Add(o *Object) {
	if o == nil {
		return
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.objects = append(s.objects, o)
	s.mu.Unlock()
	s.notify()
}

// Remove deletes an object by identity (falling back to ID match) and
// notifies listeners. Removing an absent object is a no-op.
func (s *Scene) Remove(o *Object) {
	if o == nil {
		return
	}
	s.mu.Lock()
	removed := false
	for i, cur := range s.objects {
		if cur == o || (o.ID != "" && cur.ID == o.ID) {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// Objects returns the objects in z-order. The slice is a copy; the objects
// are shared.
func (s *Scene) Objects() []*Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of objects on the surface.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// NotifyModified signals an in-place edit of an object already on the
// surface (moved, resized, relabeled).
func (s *Scene) NotifyModified(o *Object) {
	s.notify()
}

// SetBackground sets the surface background color and notifies listeners.
func (s *Scene) SetBackground(c string) {
	s.mu.Lock()
	changed := s.background != c
	s.background = c
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Background returns the surface background color.
func (s *Scene) Background() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// OnChange registers a callback fired after every add, remove, modify or
// background change. Callbacks run outside the scene lock.
func (s *Scene) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// OnRedraw registers a callback fired by Redraw.
func (s *Scene) OnRedraw(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redrawFns = append(s.redrawFns, fn)
}

// Redraw asks the presentation layer to repaint. Not a mutation: change
// listeners do not fire.
func (s *Scene) Redraw() {
	s.mu.Lock()
	fns := make([]func(), len(s.redrawFns))
	copy(fns, s.redrawFns)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Scene) notify() {
	s.mu.Lock()
	fns := make([]func(), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
