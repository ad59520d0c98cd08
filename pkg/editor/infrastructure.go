package editor

import (
	"fmt"
	"math"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// AddInfrastructure places an amenity of the given type at (x, y) with the
// catalog dimensions.
func (e *Editor) AddInfrastructure(typ station.InfrastructureType, x, y float64) (station.InfrastructureBlock, error) {
	spec, ok := station.LookupInfrastructure(typ)
	if !ok {
		return station.InfrastructureBlock{}, fmt.Errorf("adding %q: %w", typ, ErrUnknownInfrastructure)
	}

	var added station.InfrastructureBlock
	err := e.apply(commitImmediate, func(l *station.StationLayout) error {
		h := spec.Height
		if h <= 0 {
			h = spec.Width
		}
		added = station.InfrastructureBlock{
			ID:          e.newID(station.PrefixInfrastructure),
			Type:        typ,
			Position:    geo.Pt(x, y),
			Dimensions:  station.Size{Width: spec.Width, Height: h},
			IsConnector: spec.Connector,
		}
		l.InfrastructureBlocks = append(l.InfrastructureBlocks, added)
		return nil
	})
	return added, err
}

// AddConnectorInfrastructure places a connector spanning the given
// platforms vertically, from the topmost to the bottommost stack centre.
// Bridges and underpasses stand left of the leftmost platform; stairs,
// lifts and escalators are centred on the platforms' mean midpoint.
func (e *Editor) AddConnectorInfrastructure(typ station.InfrastructureType, platformIDs []string) (station.InfrastructureBlock, error) {
	spec, ok := station.LookupInfrastructure(typ)
	if !ok || !spec.Connector {
		return station.InfrastructureBlock{}, fmt.Errorf("adding connector %q: %w", typ, ErrUnknownInfrastructure)
	}

	var added station.InfrastructureBlock
	err := e.apply(commitImmediate, func(l *station.StationLayout) error {
		var platforms []*station.Platform
		seen := make(map[string]bool)
		for _, id := range platformIDs {
			if seen[id] {
				continue
			}
			if p, ok := l.Platform(id); ok {
				seen[id] = true
				platforms = append(platforms, p)
			}
		}
		if len(platforms) < 2 {
			e.log.Warn("connector rejected", "type", string(typ), "platforms", len(platforms))
			return fmt.Errorf("adding %s with %d platform(s): %w", spec.Label, len(platforms), ErrTooFewPlatforms)
		}

		minC, maxC := math.Inf(1), math.Inf(-1)
		minX := math.Inf(1)
		midSum := 0.0
		ids := make([]string, 0, len(platforms))
		for _, p := range platforms {
			c := (p.StackTop() + p.StackBottom()) / 2
			minC = math.Min(minC, c)
			maxC = math.Max(maxC, c)
			minX = math.Min(minX, p.X)
			midSum += p.X + p.Length/2
			ids = append(ids, p.ID)
		}

		w := spec.Width
		h := maxC - minC
		if h < w {
			h = w
		}
		x := midSum/float64(len(platforms)) - w/2
		if spec.Spanning {
			x = minX - w - connectorMargin
		}

		added = station.InfrastructureBlock{
			ID:                 e.newID(station.PrefixInfrastructure),
			Type:               typ,
			Position:           geo.Pt(x, minC),
			Dimensions:         station.Size{Width: w, Height: h},
			IsConnector:        true,
			ConnectedPlatforms: ids,
		}
		l.InfrastructureBlocks = append(l.InfrastructureBlocks, added)
		return nil
	})
	if err != nil {
		return station.InfrastructureBlock{}, err
	}
	added.ConnectedPlatforms = append([]string(nil), added.ConnectedPlatforms...)
	return added, nil
}

// MoveInfrastructure drags a block to (x, y). Locked blocks stay put.
func (e *Editor) MoveInfrastructure(id string, x, y float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		b, ok := l.Block(id)
		if !ok {
			return errSkip
		}
		if b.IsLocked {
			e.log.Debug("move ignored on locked block", "id", id)
			return errSkip
		}
		b.Position = geo.Pt(x, y)
		return nil
	})
}

// RotateInfrastructure turns a block by deg degrees.
func (e *Editor) RotateInfrastructure(id string, deg float64) error {
	return e.apply(commitImmediate, func(l *station.StationLayout) error {
		b, ok := l.Block(id)
		if !ok {
			return errSkip
		}
		if b.IsLocked {
			return fmt.Errorf("rotating %s: %w", id, ErrLocked)
		}
		b.Rotation = geo.NormalizeDegrees(b.Rotation + deg)
		return nil
	})
}

// ResizeInfrastructure sets a block's dimensions. Non-positive values keep
// the current dimension.
func (e *Editor) ResizeInfrastructure(id string, width, height float64) error {
	return e.apply(commitDebounced, func(l *station.StationLayout) error {
		b, ok := l.Block(id)
		if !ok {
			return errSkip
		}
		if b.IsLocked {
			return fmt.Errorf("resizing %s: %w", id, ErrLocked)
		}
		if width > 0 {
			b.Dimensions.Width = width
		}
		if height > 0 {
			b.Dimensions.Height = height
		}
		return nil
	})
}

// ToggleInfrastructureLock flips a block's lock.
func (e *Editor) ToggleInfrastructureLock(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		b, ok := l.Block(id)
		if !ok {
			return errSkip
		}
		b.IsLocked = !b.IsLocked
		return nil
	})
}

// RemoveInfrastructure deletes an unlocked block.
func (e *Editor) RemoveInfrastructure(id string) error {
	return e.apply(commitImmediate, func(l *station.StationLayout) error {
		b, ok := l.Block(id)
		if !ok {
			return errSkip
		}
		if b.IsLocked {
			return fmt.Errorf("removing %s: %w", id, ErrLocked)
		}
		out := l.InfrastructureBlocks[:0]
		for _, blk := range l.InfrastructureBlocks {
			if blk.ID != id {
				out = append(out, blk)
			}
		}
		l.InfrastructureBlocks = out
		return nil
	})
}
