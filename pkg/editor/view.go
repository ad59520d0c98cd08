package editor

import (
	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// Select makes id the selected element of the given kind and clears every
// other selection. An empty kind clears the selection. Unknown ids are
// ignored.
func (e *Editor) Select(kind station.ElementKind, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if kind == "" {
		e.selection = Selection{}
		return
	}
	var found bool
	switch kind {
	case station.KindPlatform:
		_, found = e.layout.Platform(id)
	case station.KindTrack:
		_, found = e.layout.Track(id)
	case station.KindRestrictedZone:
		_, found = e.layout.RestrictedZone(id)
	case station.KindShop:
		_, _, found = e.layout.ShopOwner(id)
	case station.KindInfrastructure:
		_, found = e.layout.Block(id)
	}
	if !found {
		return
	}

	e.selection = Selection{}
	switch kind {
	case station.KindPlatform:
		e.selection.PlatformID = id
	case station.KindTrack:
		e.selection.TrackID = id
	case station.KindRestrictedZone:
		e.selection.RestrictedZoneID = id
	case station.KindShop:
		e.selection.ShopID = id
	case station.KindInfrastructure:
		e.selection.InfrastructureID = id
	}
}

// SelectGroup selects a group.
func (e *Editor) SelectGroup(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.layout.Group(id); ok {
		e.selection = Selection{GroupID: id}
	}
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// pruneSelection clears selected ids that no longer resolve. Callers hold
// mu.
func (e *Editor) pruneSelection() {
	s := &e.selection
	l := e.layout
	if _, ok := l.Platform(s.PlatformID); !ok {
		s.PlatformID = ""
	}
	if _, ok := l.Track(s.TrackID); !ok {
		s.TrackID = ""
	}
	if _, ok := l.RestrictedZone(s.RestrictedZoneID); !ok {
		s.RestrictedZoneID = ""
	}
	if _, _, ok := l.ShopOwner(s.ShopID); !ok {
		s.ShopID = ""
	}
	if _, ok := l.Block(s.InfrastructureID); !ok {
		s.InfrastructureID = ""
	}
	if _, ok := l.Group(s.GroupID); !ok {
		s.GroupID = ""
	}
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (e *Editor) SetZoom(z float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case z < MinZoom:
		z = MinZoom
	case z > MaxZoom:
		z = MaxZoom
	}
	e.view.Zoom = z
}

// Pan shifts the view offset.
func (e *Editor) Pan(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.Pan = e.view.Pan.Add(geo.Pt(dx, dy))
}

// ToggleGrid flips grid display and returns the new state.
func (e *Editor) ToggleGrid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.ShowGrid = !e.view.ShowGrid
	return e.view.ShowGrid
}

// View returns the view state.
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}
