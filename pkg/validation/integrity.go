package validation

import (
	"fmt"
	"sort"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// ValidateIntegrity performs structural checks on a layout document: id
// uniqueness, group references, shop packing and dimensions.
func ValidateIntegrity(l *station.StationLayout) *Report {
	r := NewReport()

	if l == nil {
		r.AddError(Result{
			Level:   LevelIntegrity,
			Message: "layout is missing",
		})
		return r
	}

	validateIDs(l, r)
	validateGroupReferences(l, r)
	noteEmptyGroups(l, r)
	validateShops(l, r)
	validateDimensions(l, r)
	validateConnectors(l, r)

	return r
}

func validateIDs(l *station.StationLayout, r *Report) {
	seen := make(map[string]string)

	check := func(id, path string) {
		if id == "" {
			r.AddError(Result{
				Level:    LevelIntegrity,
				Message:  fmt.Sprintf("element at %s has empty ID", path),
				Path:     path,
				Expected: "non-empty string",
			})
			return
		}
		if prev, exists := seen[id]; exists {
			r.AddError(Result{
				Level:        LevelIntegrity,
				Message:      fmt.Sprintf("duplicate ID %q at %s", id, path),
				Path:         path,
				ActualValue:  id,
				ConflictWith: prev,
			})
			return
		}
		seen[id] = path
	}

	for i, t := range l.Tracks {
		check(t.ID, fmt.Sprintf("tracks[%d]", i))
	}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		base := fmt.Sprintf("platforms[%d]", i)
		check(p.ID, base)
		for j, s := range p.Shops {
			check(s.ID, fmt.Sprintf("%s.shops[%d]", base, j))
		}
		for j, z := range p.RestrictedZones {
			check(z.ID, fmt.Sprintf("%s.restrictedZones[%d]", base, j))
		}
		for _, sub := range []struct {
			name string
			id   string
			ok   bool
		}{
			{"track", trackID(p.Track), p.Track != nil},
			{"restrictedZone", zoneID(p.RestrictedZone), p.RestrictedZone != nil},
			{"topTrack", trackID(p.TopTrack), p.TopTrack != nil},
			{"topRestrictedZone", zoneID(p.TopRestrictedZone), p.TopRestrictedZone != nil},
			{"bottomTrack", trackID(p.BottomTrack), p.BottomTrack != nil},
			{"bottomRestrictedZone", zoneID(p.BottomRestrictedZone), p.BottomRestrictedZone != nil},
		} {
			if sub.ok {
				check(sub.id, base+"."+sub.name)
			}
		}
	}
	for i, z := range l.RestrictedZones {
		check(z.ID, fmt.Sprintf("restrictedZones[%d]", i))
	}
	for i, b := range l.InfrastructureBlocks {
		check(b.ID, fmt.Sprintf("infrastructureBlocks[%d]", i))
	}
	for i, g := range l.Groups {
		check(g.ID, fmt.Sprintf("groups[%d]", i))
	}
}

// validateGroupReferences reports members that no longer resolve. Groups
// are referential, so a dangling member is a warning rather than an error.
func validateGroupReferences(l *station.StationLayout, r *Report) {
	for i, g := range l.Groups {
		for _, id := range g.ElementIDs {
			if _, ok := l.KindOf(id); ok {
				continue
			}
			r.AddWarning(Result{
				Level:       LevelIntegrity,
				Message:     fmt.Sprintf("group %q references non-existent element %q", g.Name, id),
				Path:        fmt.Sprintf("groups[%d].elementIds", i),
				ActualValue: id,
				Expected:    "existing track, platform or restricted zone ID",
			})
		}
	}
}

func noteEmptyGroups(l *station.StationLayout, r *Report) {
	for i, g := range l.Groups {
		if len(g.ElementIDs) > 0 {
			continue
		}
		r.AddInfo(Result{
			Level:   LevelIntegrity,
			Message: fmt.Sprintf("group %q has no elements", g.Name),
			Path:    fmt.Sprintf("groups[%d]", i),
		})
	}
}

func validateShops(l *station.StationLayout, r *Report) {
	for i := range l.Platforms {
		p := &l.Platforms[i]
		base := fmt.Sprintf("platforms[%d]", i)

		for j, s := range p.Shops {
			path := fmt.Sprintf("%s.shops[%d]", base, j)
			if !s.WidthInRange() {
				r.AddError(Result{
					Level:       LevelIntegrity,
					Message:     fmt.Sprintf("shop %q width %.0f outside [%.0f, %.0f]", s.ID, s.Width, s.MinWidth, s.MaxWidth),
					Path:        path + ".width",
					ActualValue: s.Width,
					Expected:    fmt.Sprintf("%.0f to %.0f", s.MinWidth, s.MaxWidth),
				})
			}
			if !s.Span().Within(geo.Span(0, p.Length)) {
				r.AddWarning(Result{
					Level:       LevelIntegrity,
					Message:     fmt.Sprintf("shop %q extends beyond platform %d", s.ID, p.PlatformNumber),
					Path:        path + ".x",
					ActualValue: fmt.Sprintf("%.0f-%.0f", s.X, s.X+s.Width),
					Expected:    fmt.Sprintf("within 0-%.0f", p.Length),
				})
			}
		}

		shops := make([]station.ShopZone, len(p.Shops))
		copy(shops, p.Shops)
		sort.Slice(shops, func(a, b int) bool { return shops[a].X < shops[b].X })
		for j := 1; j < len(shops); j++ {
			if shops[j-1].Span().Overlaps(shops[j].Span()) {
				r.AddError(Result{
					Level:        LevelIntegrity,
					Message:      fmt.Sprintf("shops %q and %q overlap on platform %d", shops[j-1].ID, shops[j].ID, p.PlatformNumber),
					Path:         base + ".shops",
					ActualValue:  shops[j].ID,
					ConflictWith: shops[j-1].ID,
				})
			}
		}
	}
}

func validateDimensions(l *station.StationLayout, r *Report) {
	warn := func(path, id string, w, h float64) {
		if w > 0 && h > 0 {
			return
		}
		r.AddWarning(Result{
			Level:       LevelIntegrity,
			Message:     fmt.Sprintf("element %q has zero or negative size (%.2f x %.2f)", id, w, h),
			Path:        path,
			ActualValue: fmt.Sprintf("%.2f x %.2f", w, h),
			Expected:    "all dimensions > 0",
		})
	}

	for i, t := range l.Tracks {
		warn(fmt.Sprintf("tracks[%d]", i), t.ID, t.Length, t.Height)
	}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		warn(fmt.Sprintf("platforms[%d]", i), p.ID, p.Length, p.Width)
	}
	for i, z := range l.RestrictedZones {
		warn(fmt.Sprintf("restrictedZones[%d]", i), z.ID, z.Width, z.Height)
	}
	for i, b := range l.InfrastructureBlocks {
		warn(fmt.Sprintf("infrastructureBlocks[%d]", i), b.ID, b.Dimensions.Width, b.Dimensions.Height)
	}
}

func validateConnectors(l *station.StationLayout, r *Report) {
	for i, b := range l.InfrastructureBlocks {
		if !b.IsConnector {
			continue
		}
		path := fmt.Sprintf("infrastructureBlocks[%d].connectedPlatforms", i)
		if len(b.ConnectedPlatforms) < 2 {
			r.AddWarning(Result{
				Level:       LevelIntegrity,
				Message:     fmt.Sprintf("connector %q links %d platform(s)", b.ID, len(b.ConnectedPlatforms)),
				Path:        path,
				ActualValue: len(b.ConnectedPlatforms),
				Expected:    "at least 2",
			})
		}
		for _, pid := range b.ConnectedPlatforms {
			if _, ok := l.Platform(pid); !ok {
				r.AddWarning(Result{
					Level:       LevelIntegrity,
					Message:     fmt.Sprintf("connector %q references non-existent platform %q", b.ID, pid),
					Path:        path,
					ActualValue: pid,
				})
			}
		}
	}
}

func trackID(t *station.Track) string {
	if t == nil {
		return ""
	}
	return t.ID
}

func zoneID(z *station.RestrictedZone) string {
	if z == nil {
		return ""
	}
	return z.ID
}
