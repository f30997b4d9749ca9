// Package history provides linear undo/redo over snapshots of a drawing
// surface.
//
// A Manager watches a surface's mutation notifications, captures debounced
// snapshots of its user content, and can replay any snapshot back onto the
// surface. While the manager itself is mutating the surface (undo, redo,
// document load) its guard flags suppress capture, so a replay never records
// itself as a new edit. Mutation signals arriving inside a guard window are
// dropped, not queued.
//
// No failure here is fatal: capture and restore errors degrade the single
// affected operation and are surfaced only through the logger.
package history

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"flowkit/scene"
)

// Surface is the capability set the manager needs from a drawing surface.
// scene.Scene satisfies it; any retained-mode scene graph can, through a
// thin adapter.
type Surface interface {
	Objects() []*scene.Object
	Add(o *scene.Object)
	Remove(o *scene.Object)
	Background() string
	SetBackground(c string)
	OnChange(fn func())
	Redraw()
}

// Codec converts between live objects and their serialized records. The
// manager never touches object internals directly, so a rendering library's
// native objects only need an Encode/Decode pair to become undoable.
type Codec interface {
	Encode(o *scene.Object) (scene.Record, error)
	Decode(r scene.Record) (*scene.Object, error)
}

type recordCodec struct{}

func (recordCodec) Encode(o *scene.Object) (scene.Record, error) { return scene.Encode(o) }
func (recordCodec) Decode(r scene.Record) (*scene.Object, error) { return scene.Decode(r) }

const (
	// DefaultCapacity bounds the snapshot sequence; the oldest snapshot is
	// evicted beyond it.
	DefaultCapacity = 50

	// DefaultDebounce coalesces the burst of mutation signals a drag or
	// resize gesture fires into a single capture.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultSettle delays the baseline capture until the surface has
	// finished initializing.
	DefaultSettle = 150 * time.Millisecond
)

// Manager owns the undo/redo state for one drawing surface.
type Manager struct {
	surface Surface
	codec   Codec
	log     *slog.Logger

	capacity int
	debounce time.Duration
	settle   time.Duration

	mu      sync.Mutex
	history []scene.Snapshot
	current int // index into history; -1 while empty

	// Guard flags: capture requests are dropped while any is set.
	undoing bool
	redoing bool
	loading bool

	debounceTimer *time.Timer
	settleTimer   *time.Timer
	closed        bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithCapacity caps the number of retained snapshots.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithDebounce sets the capture coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithSettleDelay sets the delay before the baseline snapshot.
func WithSettleDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.settle = d
		}
	}
}

// WithLogger sets the logger for degraded operations.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithCodec replaces the record codec.
func WithCodec(c Codec) Option {
	return func(m *Manager) {
		if c != nil {
			m.codec = c
		}
	}
}

// New creates a manager for the given surface. Call Attach to start
// observing it.
func New(surface Surface, opts ...Option) *Manager {
	m := &Manager{
		surface:  surface,
		codec:    recordCodec{},
		log:      slog.Default(),
		capacity: DefaultCapacity,
		debounce: DefaultDebounce,
		settle:   DefaultSettle,
		current:  -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes to the surface's mutation notifications and schedules
// the baseline snapshot after the settle delay.
func (m *Manager) Attach() {
	m.surface.OnChange(m.RecordChange)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.settleTimer = time.AfterFunc(m.settle, m.SaveState)
}

// Close cancels pending timers and stops all future captures. The surface
// itself is left untouched.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	if m.settleTimer != nil {
		m.settleTimer.Stop()
	}
}

// RecordChange notes that the surface mutated. Captures are debounced: each
// signal restarts the window and only the last survivor snapshots. Signals
// during undo/redo/load are dropped.
func (m *Manager) RecordChange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.guarded() {
		return
	}
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.debounceTimer = time.AfterFunc(m.debounce, m.SaveState)
}

// SaveState captures a snapshot immediately, bypassing the debounce window
// (but still honoring the guard flags). A serialization failure abandons the
// capture and leaves history unchanged.
func (m *Manager) SaveState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveLocked()
}

func (m *Manager) saveLocked() {
	if m.closed || m.guarded() {
		return
	}
	snap, err := m.capture()
	if err != nil {
		m.log.Warn("history: snapshot capture failed", "error", err)
		return
	}

	// Abandon the redo branch when saving from the middle of history.
	if m.current < len(m.history)-1 {
		m.history = m.history[:m.current+1]
	}
	m.history = append(m.history, snap)
	m.current = len(m.history) - 1

	if len(m.history) > m.capacity {
		m.history = m.history[1:]
		m.current--
	}
}

// capture serializes the surface's current user content. Decorations (grid
// lines, anything excluded from export) never enter a snapshot.
func (m *Manager) capture() (scene.Snapshot, error) {
	var snap scene.Snapshot
	for _, o := range m.surface.Objects() {
		if !scene.IsUserContent(o) {
			continue
		}
		rec, err := m.codec.Encode(o)
		if err != nil {
			return scene.Snapshot{}, fmt.Errorf("encode %s object: %w", o.Type, err)
		}
		snap.Objects = append(snap.Objects, rec)
	}
	snap.BackgroundColor = m.surface.Background()
	return snap, nil
}

// CanUndo reports whether a previous snapshot exists.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current > 0
}

// CanRedo reports whether a later snapshot exists.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current < len(m.history)-1
}

// Stats returns the current position (1-based) and total snapshot count,
// for status displays.
func (m *Manager) Stats() (current, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return 0, 0
	}
	return m.current + 1, len(m.history)
}

// Undo replays the previous snapshot onto the surface. Returns false when
// there is nothing to undo or a replay is already in flight.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	if m.closed || m.guarded() || m.current <= 0 {
		m.mu.Unlock()
		return false
	}
	m.undoing = true
	m.current--
	snap := m.history[m.current]
	m.mu.Unlock()

	m.replay(snap)
	return true
}

// Redo replays the next snapshot onto the surface. Returns false when there
// is nothing to redo or a replay is already in flight.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	if m.closed || m.guarded() || m.current >= len(m.history)-1 {
		m.mu.Unlock()
		return false
	}
	m.redoing = true
	m.current++
	snap := m.history[m.current]
	m.mu.Unlock()

	m.replay(snap)
	return true
}

// Clear discards all history and captures a fresh baseline of the current
// surface. Used when switching to a different document.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
	}
	m.history = nil
	m.current = -1
	m.saveLocked()
}

// replay restores a snapshot onto the surface: current user content is
// removed (decorations stay), then every record is reconstructed and
// re-added in snapshot order so z-order survives. Records reconstruct
// independently; the replay joins on all of them before re-enabling capture.
// A record that fails to decode is skipped and the rest still restore.
func (m *Manager) replay(snap scene.Snapshot) {
	defer func() {
		m.surface.Redraw()
		m.mu.Lock()
		m.undoing = false
		m.redoing = false
		m.loading = false
		m.mu.Unlock()
	}()

	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	for _, o := range m.surface.Objects() {
		if scene.IsUserContent(o) {
			m.surface.Remove(o)
		}
	}

	objs := make([]*scene.Object, len(snap.Objects))
	errs := make([]error, len(snap.Objects))
	var wg sync.WaitGroup
	for i, rec := range snap.Objects {
		wg.Add(1)
		go func(i int, rec scene.Record) {
			defer wg.Done()
			objs[i], errs[i] = m.codec.Decode(rec)
		}(i, rec)
	}
	wg.Wait()

	for i, o := range objs {
		if errs[i] != nil {
			m.log.Warn("history: skipping object during restore",
				"index", i, "type", snap.Objects[i].Type, "error", errs[i])
			continue
		}
		m.surface.Add(o)
	}

	if snap.BackgroundColor != "" {
		m.surface.SetBackground(snap.BackgroundColor)
	}
}

func (m *Manager) guarded() bool {
	return m.undoing || m.redoing || m.loading
}
