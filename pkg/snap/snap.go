// Package snap computes advisory positions for dragged elements: generic
// edge-to-edge snapping and track-to-track magnetic alignment of platforms.
// Nothing here rejects a move; the worst case returns the input unchanged.
package snap

import (
	"math"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// Default tolerances, in canvas units.
const (
	DefaultThreshold = 10.0
	DefaultDistance  = 20.0
)

type candidate struct {
	kind station.ElementKind
	id   string
	rect geo.Rect
}

// candidates lists every snappable rectangle in the fixed order tracks,
// platforms, zones. Platform rectangles are the body only: the bottom edge is
// Y + Width.
func candidates(l *station.StationLayout) []candidate {
	out := make([]candidate, 0, len(l.Tracks)+len(l.Platforms)+len(l.RestrictedZones))
	for _, t := range l.Tracks {
		out = append(out, candidate{station.KindTrack, t.ID, t.Rect()})
	}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		out = append(out, candidate{station.KindPlatform, p.ID, p.BodyRect()})
	}
	for _, z := range l.RestrictedZones {
		out = append(out, candidate{station.KindRestrictedZone, z.ID, z.Rect()})
	}
	return out
}

// ToEdges snaps a moving element of the given size proposed at (x, y) to the
// edges of every other track, platform and zone. Each edge of the moving
// element is compared with both parallel edges of each other element; any
// pair closer than threshold overwrites the coordinate so the edges
// coincide. Later matches win over earlier ones regardless of distance.
func ToEdges(x, y float64, movingID string, l *station.StationLayout, kind station.ElementKind, width, height, threshold float64) geo.Point {
	out := geo.Pt(x, y)
	if l == nil {
		return out
	}

	for _, c := range candidates(l) {
		if c.id == movingID && c.kind == kind {
			continue
		}
		o := c.rect

		if near(x, o.Right(), threshold) {
			out.X = o.Right()
		}
		if near(x+width, o.Left(), threshold) {
			out.X = o.Left() - width
		}
		if near(x, o.Left(), threshold) {
			out.X = o.Left()
		}
		if near(x+width, o.Right(), threshold) {
			out.X = o.Right() - width
		}

		if near(y, o.Bottom(), threshold) {
			out.Y = o.Bottom()
		}
		if near(y+height, o.Top(), threshold) {
			out.Y = o.Top() - height
		}
		if near(y, o.Top(), threshold) {
			out.Y = o.Top()
		}
		if near(y+height, o.Bottom(), threshold) {
			out.Y = o.Bottom() - height
		}
	}
	return out
}

// PlatformY aligns a dragged platform's outer track edge with the facing
// outer edge of a horizontally overlapping platform. moving supplies the
// side configuration; (x, y) is the proposed body position. The nearest
// candidate within distance wins. It returns the corrected y and whether a
// snap happened.
func PlatformY(moving *station.Platform, x, y float64, l *station.StationLayout, distance float64) (float64, bool) {
	if moving == nil || l == nil {
		return y, false
	}

	top := y - moving.TopSideHeight()
	bottom := y + moving.Width + moving.BottomSideHeight()
	span := geo.Span(x, moving.Length)

	best := math.Inf(1)
	snapped := false
	for i := range l.Platforms {
		q := &l.Platforms[i]
		if q.ID == moving.ID || !span.Overlaps(q.XSpan()) {
			continue
		}
		for _, gap := range []float64{q.StackTop() - bottom, q.StackBottom() - top} {
			if math.Abs(gap) < distance && math.Abs(gap) < math.Abs(best) {
				best = gap
				snapped = true
			}
		}
	}
	if !snapped {
		return y, false
	}
	return y + best, true
}

func near(a, b, threshold float64) bool {
	return math.Abs(a-b) < threshold
}
