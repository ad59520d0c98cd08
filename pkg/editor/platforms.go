package editor

import (
	"fmt"

	"github.com/railyard/stationlayout/pkg/snap"
	"github.com/railyard/stationlayout/pkg/station"
)

// AddCompletePlatform appends a single-track platform with the lowest free
// platform number and the next track number, stacked below every existing
// platform.
func (e *Editor) AddCompletePlatform() station.Platform {
	var added station.Platform
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		g := e.settings.Geometry
		p := station.Platform{
			ID:              e.newID(station.PrefixPlatform),
			PlatformNumber:  l.NextPlatformNumber(1),
			X:               e.settings.OriginX,
			Length:          g.PlatformLength,
			Width:           g.PlatformWidth,
			Shops:           []station.ShopZone{},
			RestrictedZones: []station.RestrictedZone{},
			Track: &station.Track{
				ID:          e.newID(station.PrefixTrack),
				TrackNumber: l.MaxTrackNumber() + 1,
				Height:      g.TrackHeight,
			},
			RestrictedZone: &station.RestrictedZone{
				ID:     e.newID(station.PrefixRestrictedZone),
				Height: g.BufferHeight,
			},
		}
		e.placeBelowStack(l, &p)
		l.Platforms = append(l.Platforms, p)
		added = p.Clone()
		return nil
	})
	e.log.Debug("platform added", "id", added.ID, "number", added.PlatformNumber)
	return added
}

// AddDualTrackPlatform appends a platform served by two tracks. It reserves
// two consecutive platform numbers and two consecutive track numbers; the
// body is twice the single-platform thickness.
func (e *Editor) AddDualTrackPlatform() station.Platform {
	var added station.Platform
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		g := e.settings.Geometry
		track := l.MaxTrackNumber() + 1
		p := station.Platform{
			ID:              e.newID(station.PrefixPlatform),
			PlatformNumber:  l.NextPlatformNumber(2),
			X:               e.settings.OriginX,
			Length:          g.PlatformLength,
			Width:           2 * g.PlatformWidth,
			Shops:           []station.ShopZone{},
			RestrictedZones: []station.RestrictedZone{},
			IsDualTrack:     true,
			TopTrack: &station.Track{
				ID:          e.newID(station.PrefixTrack),
				TrackNumber: track,
				Height:      g.TrackHeight,
			},
			TopRestrictedZone: &station.RestrictedZone{
				ID:     e.newID(station.PrefixRestrictedZone),
				Height: g.BufferHeight,
			},
			BottomTrack: &station.Track{
				ID:          e.newID(station.PrefixTrack),
				TrackNumber: track + 1,
				Height:      g.TrackHeight,
			},
			BottomRestrictedZone: &station.RestrictedZone{
				ID:     e.newID(station.PrefixRestrictedZone),
				Height: g.BufferHeight,
			},
		}
		e.placeBelowStack(l, &p)
		l.Platforms = append(l.Platforms, p)
		added = p.Clone()
		return nil
	})
	e.log.Debug("dual-track platform added", "id", added.ID, "number", added.PlatformNumber)
	return added
}

// placeBelowStack sets p.Y so its outer top edge sits one spacing below the
// summed stack heights of the existing platforms.
func (e *Editor) placeBelowStack(l *station.StationLayout, p *station.Platform) {
	offset := e.settings.OriginY
	for i := range l.Platforms {
		offset += l.Platforms[i].StackHeight() + e.settings.PlatformSpacing
	}
	p.Y = offset + p.TopSideHeight()
	p.Restack()
}

// RemovePlatform deletes a platform and drops it from groups.
func (e *Editor) RemovePlatform(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if _, ok := l.Platform(id); !ok {
			return errSkip
		}
		out := l.Platforms[:0]
		for _, p := range l.Platforms {
			if p.ID != id {
				out = append(out, p)
			}
		}
		l.Platforms = out
		dropFromGroups(l, id)
		return nil
	})
}

// MovePlatform drags a platform body to (x, y). Track-to-track magnetic
// alignment decides y when it applies; edge snapping handles the rest.
func (e *Editor) MovePlatform(id string, x, y float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		p, ok := l.Platform(id)
		if !ok {
			return errSkip
		}
		pos := snap.ToEdges(x, y, id, l, station.KindPlatform, p.Length, p.Width, e.settings.SnapThreshold)
		if my, snapped := snap.PlatformY(p, pos.X, y, l, e.settings.SnapDistance); snapped {
			pos.Y = my
		}
		p.Translate(pos.X-p.X, pos.Y-p.Y)
		return nil
	})
}

// ResizePlatform sets the body length and thickness. Non-positive values
// keep the current dimension.
func (e *Editor) ResizePlatform(id string, length, width float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		p, ok := l.Platform(id)
		if !ok {
			return errSkip
		}
		if length > 0 {
			p.Length = length
		}
		if width > 0 {
			p.Width = width
		}
		p.Restack()
		return nil
	})
}

// TogglePlatformInvert moves a single-track platform's track between below
// and above the body. Dual-track platforms are left alone.
func (e *Editor) TogglePlatformInvert(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		p, ok := l.Platform(id)
		if !ok {
			return errSkip
		}
		if p.IsDualTrack {
			e.log.Debug("invert ignored on dual-track platform", "id", id)
			return errSkip
		}
		p.IsInverted = !p.IsInverted
		p.Restack()
		return nil
	})
}

// UpdatePlatformNumber renumbers a platform. Duplicates are allowed here and
// reported by validation.
func (e *Editor) UpdatePlatformNumber(id string, number int) error {
	if number < 1 {
		return fmt.Errorf("renumbering platform %s to %d: %w", id, number, ErrInvalidNumber)
	}
	return e.apply(commitImmediate, func(l *station.StationLayout) error {
		p, ok := l.Platform(id)
		if !ok {
			return errSkip
		}
		if p.PlatformNumber == number {
			return errSkip
		}
		p.PlatformNumber = number
		return nil
	})
}

func dropFromGroups(l *station.StationLayout, id string) {
	for i := range l.Groups {
		g := &l.Groups[i]
		out := g.ElementIDs[:0]
		for _, m := range g.ElementIDs {
			if m != id {
				out = append(out, m)
			}
		}
		g.ElementIDs = out
	}
}
