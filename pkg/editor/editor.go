// Package editor is the command layer over a station layout. An Editor owns
// the live layout, the selection, the view state and the undo history; every
// change to the layout goes through one of its methods.
//
// Each command clones the live layout, changes the clone and installs it,
// so snapshots held by the history never alias the live document.
// Structural commands commit to history immediately; drags (moves and
// resizes) commit once the debounce delay passes without another drag.
//
// An Editor is safe for concurrent use.
package editor

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/history"
	"github.com/railyard/stationlayout/pkg/station"
	"github.com/railyard/stationlayout/pkg/wire"
)

type commitMode int

const (
	commitImmediate commitMode = iota
	commitDebounced
)

// Options configures a new Editor. Zero values select defaults.
type Options struct {
	Settings Settings
	Logger   *slog.Logger
	Clock    history.Clock
	NewID    station.IDFunc
	Now      func() time.Time
}

// View is the canvas view state.
type View struct {
	Zoom     float64   `json:"zoom"`
	Pan      geo.Point `json:"panOffset"`
	ShowGrid bool      `json:"showGrid"`
}

// Selection holds the currently selected element of each kind. Selecting
// one clears the others.
type Selection struct {
	PlatformID       string `json:"selectedPlatformId,omitempty"`
	TrackID          string `json:"selectedTrackId,omitempty"`
	RestrictedZoneID string `json:"selectedRestrictedZoneId,omitempty"`
	ShopID           string `json:"selectedShopId,omitempty"`
	InfrastructureID string `json:"selectedInfrastructureId,omitempty"`
	GroupID          string `json:"selectedGroupId,omitempty"`
}

// Editor is one editing session over one station layout.
type Editor struct {
	mu sync.Mutex

	layout    *station.StationLayout
	history   *history.Manager[*station.StationLayout]
	selection Selection
	view      View

	settings Settings
	newID    station.IDFunc
	now      func() time.Time
	log      *slog.Logger
}

// New creates an editor holding an empty, unnamed layout.
func New(opts Options) *Editor {
	e := &Editor{
		settings: opts.Settings.withDefaults(),
		newID:    opts.NewID,
		now:      opts.Now,
		log:      opts.Logger,
		view:     View{Zoom: 1, ShowGrid: true},
	}
	if e.newID == nil {
		e.newID = station.NewID
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e.layout = station.New("", "", "", "", e.now())
	e.history = history.New(e.layout, (*station.StationLayout).Clone, history.Options{
		MaxSize: e.settings.MaxHistory,
		Delay:   e.settings.Debounce,
		Clock:   opts.Clock,
		Guard:   &e.mu,
		OnCommit: func(index, size int, debounced bool) {
			e.log.Debug("history commit", "index", index, "size", size, "debounced", debounced)
		},
	})
	return e
}

// Settings returns the session settings.
func (e *Editor) Settings() Settings {
	return e.settings
}

// Initialize replaces the session with an empty layout for a station and
// resets history.
func (e *Editor) Initialize(stationID, stationName, stationCode, createdBy string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.install(station.New(stationID, stationName, stationCode, createdBy, e.now()))
	e.log.Info("layout initialized", "station_id", stationID)
}

// Load replaces the session with a decoded layout document in either wire
// shape and resets history. Missing fields are defaulted; only malformed
// JSON is an error.
func (e *Editor) Load(data []byte) error {
	l, shape, err := wire.Load(data, wire.Options{
		Defaults: e.settings.Geometry,
		Legacy:   e.settings.Legacy,
		NewID:    e.newID,
		Now:      e.now(),
		Spacing:  e.settings.PlatformSpacing,
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.install(l)
	e.log.Info("layout loaded",
		"station_id", l.StationID,
		"shape", shape.String(),
		"platforms", len(l.Platforms),
	)
	return nil
}

// Open replaces the session with a copy of l and resets history.
func (e *Editor) Open(l *station.StationLayout) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.install(l.Clone())
}

// Export serializes the live layout in the current wire shape. A pending
// drag commit is flushed first.
func (e *Editor) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Flush()
	return wire.Export(e.layout)
}

// Layout returns a copy of the live layout.
func (e *Editor) Layout() *station.StationLayout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Clone()
}

// Clear removes every element while keeping the station identity. It is
// undoable.
func (e *Editor) Clear() {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		fresh := station.New(l.StationID, l.StationName, l.StationCode, l.Metadata.CreatedBy, l.Metadata.CreatedAt)
		fresh.CanvasSettings = l.CanvasSettings
		fresh.Metadata.Version = l.Metadata.Version
		*l = *fresh
		return nil
	})
}

// install swaps in a new document with fresh history. Callers hold mu.
func (e *Editor) install(l *station.StationLayout) {
	e.layout = l
	e.history.Reset(l)
	e.selection = Selection{}
}

// apply runs fn on a copy of the live layout and installs the result.
// fn returning errSkip leaves everything untouched and yields nil.
// An immediate command first records a pending drag as its own step.
func (e *Editor) apply(mode commitMode, fn func(l *station.StationLayout) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode == commitImmediate {
		e.history.Flush()
	}
	next := e.layout.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errSkip) {
			return nil
		}
		return err
	}
	next.Metadata.UpdatedAt = e.now()
	e.layout = next
	e.pruneSelection()

	switch mode {
	case commitDebounced:
		e.history.CommitDebounced(e.current)
	default:
		e.history.Commit(next)
	}
	return nil
}

// current feeds the debounced commit. It runs with mu held.
func (e *Editor) current() *station.StationLayout {
	return e.layout
}
