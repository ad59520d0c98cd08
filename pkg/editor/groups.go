package editor

import (
	"fmt"
	"strings"

	"github.com/railyard/stationlayout/pkg/station"
)

// CreateGroup records a named set of element ids. Ids are not checked
// against the layout but repeats are dropped; a blank name becomes
// "Group N".
func (e *Editor) CreateGroup(name string, elementIDs []string) station.ElementGroup {
	var added station.ElementGroup
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Group %d", len(l.Groups)+1)
		}
		added = station.ElementGroup{
			ID:         e.newID(station.PrefixGroup),
			Name:       name,
			ElementIDs: station.UniqueIDs(elementIDs),
			CreatedAt:  e.now(),
		}
		l.Groups = append(l.Groups, added)
		return nil
	})
	added.ElementIDs = append([]string{}, added.ElementIDs...)
	return added
}

// MoveGroup translates every track, platform and free-floating zone in the
// group by (dx, dy) exactly once. Shops ride along with their platform;
// infrastructure blocks are not moved.
func (e *Editor) MoveGroup(id string, dx, dy float64) {
	_ = e.apply(commitDebounced, func(l *station.StationLayout) error {
		g, ok := l.Group(id)
		if !ok || (dx == 0 && dy == 0) {
			return errSkip
		}
		for _, m := range station.UniqueIDs(g.ElementIDs) {
			if t, ok := l.Track(m); ok {
				t.X += dx
				t.Y += dy
			}
			if p, ok := l.Platform(m); ok {
				p.Translate(dx, dy)
			}
			if z, ok := l.RestrictedZone(m); ok {
				z.X += dx
				z.Y += dy
			}
		}
		return nil
	})
}

// RenameGroup sets a group's name.
func (e *Editor) RenameGroup(id, name string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		g, ok := l.Group(id)
		name = strings.TrimSpace(name)
		if !ok || name == "" || g.Name == name {
			return errSkip
		}
		g.Name = name
		return nil
	})
}

// DeleteGroup removes a group. Its members are kept.
func (e *Editor) DeleteGroup(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		if _, ok := l.Group(id); !ok {
			return errSkip
		}
		out := l.Groups[:0]
		for _, g := range l.Groups {
			if g.ID != id {
				out = append(out, g)
			}
		}
		l.Groups = out
		return nil
	})
}

// GroupsFor returns the groups containing elementID.
func (e *Editor) GroupsFor(elementID string) []station.ElementGroup {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []station.ElementGroup
	for _, g := range e.layout.Groups {
		if g.Has(elementID) {
			g.ElementIDs = append([]string{}, g.ElementIDs...)
			out = append(out, g)
		}
	}
	return out
}
