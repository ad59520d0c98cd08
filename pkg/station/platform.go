package station

import "github.com/railyard/stationlayout/pkg/geo"

// TopSideHeight returns the height of the track and buffer stacked above the
// body: both top sub-objects for a dual-track platform, the single pair when
// inverted, zero otherwise.
func (p *Platform) TopSideHeight() float64 {
	switch {
	case p.IsDualTrack:
		return trackHeight(p.TopTrack) + zoneHeight(p.TopRestrictedZone)
	case p.IsInverted:
		return trackHeight(p.Track) + zoneHeight(p.RestrictedZone)
	default:
		return 0
	}
}

// BottomSideHeight returns the height of the track and buffer stacked below
// the body.
func (p *Platform) BottomSideHeight() float64 {
	switch {
	case p.IsDualTrack:
		return trackHeight(p.BottomTrack) + zoneHeight(p.BottomRestrictedZone)
	case p.IsInverted:
		return 0
	default:
		return trackHeight(p.Track) + zoneHeight(p.RestrictedZone)
	}
}

// StackTop is the y of the outermost top edge (track edge when a track sits
// above the body).
func (p *Platform) StackTop() float64 {
	return p.Y - p.TopSideHeight()
}

// StackBottom is the y of the outermost bottom edge.
func (p *Platform) StackBottom() float64 {
	return p.Y + p.Width + p.BottomSideHeight()
}

// StackHeight is the full vertical extent: body plus every side.
func (p *Platform) StackHeight() float64 {
	return p.StackBottom() - p.StackTop()
}

// BodyRect returns the platform body footprint.
func (p *Platform) BodyRect() geo.Rect {
	return geo.R(p.X, p.Y, p.Length, p.Width)
}

// StackRect returns the footprint including tracks and buffers.
func (p *Platform) StackRect() geo.Rect {
	return geo.R(p.X, p.StackTop(), p.Length, p.StackHeight())
}

// XSpan returns the platform's horizontal extent.
func (p *Platform) XSpan() geo.Interval {
	return geo.Span(p.X, p.Length)
}

// Numbers returns the platform numbers this platform represents.
func (p *Platform) Numbers() []int {
	if p.IsDualTrack {
		return []int{p.PlatformNumber, p.PlatformNumber + 1}
	}
	return []int{p.PlatformNumber}
}

// EmbeddedTracks returns every track attached to the platform.
func (p *Platform) EmbeddedTracks() []*Track {
	var out []*Track
	for _, t := range []*Track{p.Track, p.TopTrack, p.BottomTrack} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Restack recomputes the absolute position of the embedded tracks and
// buffers from the body geometry. It must run after any change to X, Y,
// Length, Width, IsInverted or IsDualTrack.
func (p *Platform) Restack() {
	for _, t := range p.EmbeddedTracks() {
		t.X = p.X
		t.Length = p.Length
	}
	for _, z := range []*RestrictedZone{p.RestrictedZone, p.TopRestrictedZone, p.BottomRestrictedZone} {
		if z != nil {
			z.X = p.X
			z.Width = p.Length
		}
	}

	if p.IsDualTrack {
		stackAbove(p.Y, p.TopRestrictedZone, p.TopTrack)
		stackBelow(p.Y+p.Width, p.BottomRestrictedZone, p.BottomTrack)
		return
	}
	if p.IsInverted {
		stackAbove(p.Y, p.RestrictedZone, p.Track)
		return
	}
	stackBelow(p.Y+p.Width, p.RestrictedZone, p.Track)
}

// Translate moves the platform, its free-floating zones and its embedded
// tracks by (dx, dy). Shops follow implicitly since their X is relative.
func (p *Platform) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
	for i := range p.RestrictedZones {
		p.RestrictedZones[i].X += dx
		p.RestrictedZones[i].Y += dy
	}
	p.Restack()
}

// Shop returns the shop with the given id.
func (p *Platform) Shop(id string) (*ShopZone, bool) {
	for i := range p.Shops {
		if p.Shops[i].ID == id {
			return &p.Shops[i], true
		}
	}
	return nil, false
}

// ShopRect returns the shop's absolute footprint, sitting on the body's top
// edge.
func (p *Platform) ShopRect(s ShopZone) geo.Rect {
	h := s.EffectiveHeight()
	if h > p.Width {
		h = p.Width
	}
	return geo.R(p.X+s.X, p.Y, s.Width, h)
}

// stackAbove places zone directly above edge and track above the zone.
func stackAbove(edge float64, zone *RestrictedZone, track *Track) {
	y := edge
	if zone != nil {
		y -= zone.Height
		zone.Y = y
	}
	if track != nil {
		track.Y = y - track.Height
	}
}

// stackBelow places zone directly below edge and track below the zone.
func stackBelow(edge float64, zone *RestrictedZone, track *Track) {
	y := edge
	if zone != nil {
		zone.Y = y
		y += zone.Height
	}
	if track != nil {
		track.Y = y
	}
}

func trackHeight(t *Track) float64 {
	if t == nil {
		return 0
	}
	return t.Height
}

func zoneHeight(z *RestrictedZone) float64 {
	if z == nil {
		return 0
	}
	return z.Height
}
