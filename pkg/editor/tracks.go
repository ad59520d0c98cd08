package editor

import (
	"github.com/railyard/stationlayout/pkg/snap"
	"github.com/railyard/stationlayout/pkg/station"
)

// AddTrack appends a standalone track with the next track number. A
// non-positive length selects the default platform length.
func (e *Editor) AddTrack(x, y, length float64) station.Track {
	var added station.Track
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if length <= 0 {
			length = e.settings.Geometry.PlatformLength
		}
		added = station.Track{
			ID:          e.newID(station.PrefixTrack),
			TrackNumber: l.MaxTrackNumber() + 1,
			X:           x,
			Y:           y,
			Length:      length,
			Height:      e.settings.Geometry.TrackHeight,
		}
		l.Tracks = append(l.Tracks, added)
		return nil
	})
	return added
}

// RemoveTrack deletes a standalone track and drops it from groups.
func (e *Editor) RemoveTrack(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if _, ok := l.Track(id); !ok {
			return errSkip
		}
		out := l.Tracks[:0]
		for _, t := range l.Tracks {
			if t.ID != id {
				out = append(out, t)
			}
		}
		l.Tracks = out
		dropFromGroups(l, id)
		return nil
	})
}

// MoveTrack drags a standalone track to the edge-snapped position.
func (e *Editor) MoveTrack(id string, x, y float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		t, ok := l.Track(id)
		if !ok {
			return errSkip
		}
		pos := snap.ToEdges(x, y, id, l, station.KindTrack, t.Length, t.Height, e.settings.SnapThreshold)
		t.X, t.Y = pos.X, pos.Y
		return nil
	})
}

// ResizeTrack sets a standalone track's length and height. Non-positive
// values keep the current dimension.
func (e *Editor) ResizeTrack(id string, length, height float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		t, ok := l.Track(id)
		if !ok {
			return errSkip
		}
		if length > 0 {
			t.Length = length
		}
		if height > 0 {
			t.Height = height
		}
		return nil
	})
}

// AddRestrictedZone appends a free-floating no-shop zone. Non-positive
// dimensions select the buffer defaults.
func (e *Editor) AddRestrictedZone(x, y, width, height float64) station.RestrictedZone {
	var added station.RestrictedZone
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if width <= 0 {
			width = e.settings.Geometry.PlatformLength / 10
		}
		if height <= 0 {
			height = e.settings.Geometry.BufferHeight
		}
		added = station.RestrictedZone{
			ID:     e.newID(station.PrefixRestrictedZone),
			X:      x,
			Y:      y,
			Width:  width,
			Height: height,
		}
		l.RestrictedZones = append(l.RestrictedZones, added)
		return nil
	})
	return added
}

// RemoveRestrictedZone deletes a free-floating zone and drops it from
// groups.
func (e *Editor) RemoveRestrictedZone(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if _, ok := l.RestrictedZone(id); !ok {
			return errSkip
		}
		out := l.RestrictedZones[:0]
		for _, z := range l.RestrictedZones {
			if z.ID != id {
				out = append(out, z)
			}
		}
		l.RestrictedZones = out
		dropFromGroups(l, id)
		return nil
	})
}

// MoveRestrictedZone drags a free-floating zone to the edge-snapped
// position.
func (e *Editor) MoveRestrictedZone(id string, x, y float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		z, ok := l.RestrictedZone(id)
		if !ok {
			return errSkip
		}
		pos := snap.ToEdges(x, y, id, l, station.KindRestrictedZone, z.Width, z.Height, e.settings.SnapThreshold)
		z.X, z.Y = pos.X, pos.Y
		return nil
	})
}

// ResizeRestrictedZone sets a free-floating zone's size. Non-positive
// values keep the current dimension.
func (e *Editor) ResizeRestrictedZone(id string, width, height float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		z, ok := l.RestrictedZone(id)
		if !ok {
			return errSkip
		}
		if width > 0 {
			z.Width = width
		}
		if height > 0 {
			z.Height = height
		}
		return nil
	})
}
