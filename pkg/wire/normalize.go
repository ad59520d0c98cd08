package wire

import (
	"time"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// Options controls default substitution during Normalize.
type Options struct {
	// Defaults fill missing geometry on current-shape platforms.
	Defaults station.Defaults
	// Legacy fill missing geometry on platforms nested under tracks.
	Legacy station.Defaults
	// NewID generates ids for records that lack one.
	NewID station.IDFunc
	// Now stands in for missing or malformed timestamps.
	Now time.Time
	// Spacing separates legacy platforms that share a parent track.
	Spacing float64
}

// DefaultSpacing is the gap between stacked legacy sibling platforms.
const DefaultSpacing = 40.0

// DefaultOptions returns the documented defaults with uuid ids.
func DefaultOptions() Options {
	return Options{
		Defaults: station.DefaultGeometry(),
		Legacy:   station.LegacyGeometry(),
		NewID:    station.NewID,
		Now:      time.Now().UTC(),
		Spacing:  DefaultSpacing,
	}
}

type normalizer struct {
	opts Options
}

// Normalize builds a station layout from a decoded document. Every missing
// or malformed field is replaced by its default; Normalize never fails.
func Normalize(doc Document, opts Options) *station.StationLayout {
	if opts.NewID == nil {
		opts.NewID = station.NewID
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	n := &normalizer{opts: opts}

	l := station.New(doc.StationID, doc.StationName, doc.StationCode, "", opts.Now)
	n.metadata(l, doc.Metadata)
	if doc.CanvasSettings != nil {
		l.CanvasSettings = n.canvas(*doc.CanvasSettings)
	}

	for _, t := range doc.StandaloneTracks {
		l.Tracks = append(l.Tracks, n.track(t, opts.Defaults))
	}

	switch doc.Shape {
	case ShapeCurrent:
		for _, wp := range doc.Platforms {
			l.Platforms = append(l.Platforms, n.platform(wp, opts.Defaults))
		}
		for _, t := range doc.Tracks {
			l.Tracks = append(l.Tracks, n.track(t, opts.Defaults))
		}
	case ShapeLegacy:
		for _, t := range doc.Tracks {
			if len(t.Platforms) == 0 {
				l.Tracks = append(l.Tracks, n.track(t, opts.Defaults))
				continue
			}
			var prev *station.Platform
			for j, wp := range t.Platforms {
				p := n.legacyPlatform(t, j, wp, prev)
				prev = &p
				l.Platforms = append(l.Platforms, p)
			}
		}
	default:
		for _, t := range doc.Tracks {
			l.Tracks = append(l.Tracks, n.track(t, opts.Defaults))
		}
	}

	for _, z := range doc.RestrictedZones {
		l.RestrictedZones = append(l.RestrictedZones, n.zone(z, opts.Defaults.BufferHeight))
	}
	for _, g := range doc.Groups {
		l.Groups = append(l.Groups, n.group(g))
	}
	for _, b := range doc.InfrastructureBlocks {
		l.InfrastructureBlocks = append(l.InfrastructureBlocks, n.block(b))
	}

	assignMissingNumbers(l)
	return l
}

func (n *normalizer) id(id, prefix string) string {
	if id != "" {
		return id
	}
	return n.opts.NewID(prefix)
}

func (n *normalizer) time(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return n.opts.Now
}

func (n *normalizer) metadata(l *station.StationLayout, m *Metadata) {
	if m == nil {
		return
	}
	l.Metadata = station.Metadata{
		CreatedBy: m.CreatedBy,
		CreatedAt: n.time(m.CreatedAt),
		UpdatedAt: n.time(m.UpdatedAt),
		Version:   m.Version.Or(1),
	}
}

func (n *normalizer) canvas(c Canvas) station.CanvasSettings {
	d := station.DefaultCanvas()
	out := station.CanvasSettings{
		Width:           c.Width.Positive(d.Width),
		Height:          c.Height.Positive(d.Height),
		GridSize:        c.GridSize.Positive(d.GridSize),
		Scale:           c.Scale.Positive(d.Scale),
		BackgroundColor: c.BackgroundColor,
	}
	if out.BackgroundColor == "" {
		out.BackgroundColor = d.BackgroundColor
	}
	return out
}

func (n *normalizer) track(t Track, d station.Defaults) station.Track {
	return station.Track{
		ID:          n.id(t.ID, station.PrefixTrack),
		TrackNumber: t.TrackNumber.Or(0),
		X:           t.X.Or(0),
		Y:           t.Y.Or(0),
		Length:      t.Length.Positive(d.PlatformLength),
		Height:      t.Height.Positive(d.TrackHeight),
	}
}

func (n *normalizer) zone(z Zone, height float64) station.RestrictedZone {
	return station.RestrictedZone{
		ID:     n.id(z.ID, station.PrefixRestrictedZone),
		X:      z.X.Or(0),
		Y:      z.Y.Or(0),
		Width:  z.Width.Positive(n.opts.Defaults.PlatformLength),
		Height: z.Height.Positive(height),
	}
}

// embeddedTrack returns the platform's track, synthesizing one when the
// record omitted it. Position is recomputed by Restack.
func (n *normalizer) embeddedTrack(t *Track, d station.Defaults) *station.Track {
	if t == nil {
		t = &Track{}
	}
	out := n.track(*t, d)
	return &out
}

func (n *normalizer) embeddedZone(z *Zone, d station.Defaults) *station.RestrictedZone {
	if z == nil {
		z = &Zone{}
	}
	out := n.zone(*z, d.BufferHeight)
	return &out
}

func (n *normalizer) shop(s Shop, d station.Defaults) station.ShopZone {
	out := station.ShopZone{
		ID:          n.id(s.ID, station.PrefixShop),
		X:           s.X.Or(0),
		MinWidth:    s.MinWidth.Positive(d.ShopMinWidth),
		MaxWidth:    s.MaxWidth.Positive(d.ShopMaxWidth),
		Height:      s.Height.Positive(0),
		Category:    s.Category,
		IsAllocated: bool(s.IsAllocated),
		VendorID:    s.VendorID,
		Notes:       s.Notes,
	}
	out.Width = s.Width.Positive(out.MinWidth)
	if out.Category == "" {
		out.Category = "general"
	}
	if s.Rent.Set {
		r := s.Rent.Value
		out.Rent = &r
	}
	return out
}

func (n *normalizer) platform(w Platform, d station.Defaults) station.Platform {
	p := station.Platform{
		ID:              n.id(w.ID, station.PrefixPlatform),
		PlatformNumber:  w.PlatformNumber.Or(0),
		X:               w.X.Or(0),
		Y:               w.Y.Or(0),
		Length:          w.Length.Positive(d.PlatformLength),
		Shops:           []station.ShopZone{},
		RestrictedZones: []station.RestrictedZone{},
		IsDualTrack:     bool(w.IsDualTrack),
		IsInverted:      bool(w.IsInverted),
	}
	for _, s := range w.Shops {
		p.Shops = append(p.Shops, n.shop(s, d))
	}
	for _, z := range w.RestrictedZones {
		p.RestrictedZones = append(p.RestrictedZones, n.zone(z, d.BufferHeight))
	}

	if p.IsDualTrack {
		p.IsInverted = false
		p.Width = w.Width.Positive(2 * d.PlatformWidth)
		p.TopTrack = n.embeddedTrack(w.TopTrack, d)
		p.TopRestrictedZone = n.embeddedZone(w.TopRestrictedZone, d)
		p.BottomTrack = n.embeddedTrack(w.BottomTrack, d)
		p.BottomRestrictedZone = n.embeddedZone(w.BottomRestrictedZone, d)
	} else {
		p.Width = w.Width.Positive(d.PlatformWidth)
		p.Track = n.embeddedTrack(w.Track, d)
		p.RestrictedZone = n.embeddedZone(w.RestrictedZone, d)
	}
	p.Restack()
	return p
}

// legacyPlatform upgrades the j-th platform nested under track t. The
// parent track becomes the first platform's embedded track, keeping its id
// and number; later siblings get a fresh track numbered after every other
// track. A missing position puts the first body directly above its buffer
// and track and each later one above the previous sibling's stack.
func (n *normalizer) legacyPlatform(t Track, j int, w Platform, prev *station.Platform) station.Platform {
	d := n.opts.Legacy
	w.IsDualTrack = false
	w.IsInverted = false
	w.Track = nil
	w.RestrictedZone = nil
	p := n.platform(w, d)

	trackID := t.ID
	if j > 0 || trackID == "" {
		trackID = n.opts.NewID(station.PrefixTrack)
	}
	p.Track.ID = trackID
	p.Track.Height = t.Height.Positive(d.TrackHeight)
	if j == 0 {
		p.Track.TrackNumber = t.TrackNumber.Or(0)
		if p.PlatformNumber == 0 && t.TrackNumber.Set {
			p.PlatformNumber = t.TrackNumber.Value
		}
	} else {
		// numbered by assignMissingNumbers
		p.Track.TrackNumber = 0
	}

	if !w.X.Set {
		p.X = t.X.Or(0)
	}
	switch {
	case w.Y.Set:
	case j > 0 && prev != nil:
		p.Y = 0
		p.Restack()
		p.Y = prev.StackTop() - n.opts.Spacing - p.StackBottom()
	case t.Y.Set:
		p.Y = t.Y.Value - p.RestrictedZone.Height - p.Width
	}
	p.Restack()
	return p
}

func (n *normalizer) group(g Group) station.ElementGroup {
	return station.ElementGroup{
		ID:         n.id(g.ID, station.PrefixGroup),
		Name:       g.Name,
		ElementIDs: station.UniqueIDs(g.ElementIDs),
		CreatedAt:  n.time(g.CreatedAt),
	}
}

func (n *normalizer) block(b Block) station.InfrastructureBlock {
	typ := station.InfrastructureType(b.Type)
	spec, _ := station.LookupInfrastructure(typ)

	out := station.InfrastructureBlock{
		ID:   n.id(b.ID, station.PrefixInfrastructure),
		Type: typ,
		Position: geo.Pt(
			b.Position.X.Or(0),
			b.Position.Y.Or(0),
		),
		Dimensions: station.Size{
			Width:  b.Dimensions.Width.Positive(spec.Width),
			Height: b.Dimensions.Height.Positive(spec.Height),
		},
		Rotation:    geo.NormalizeDegrees(b.Rotation.Or(0)),
		IsLocked:    bool(b.IsLocked),
		IsConnector: bool(b.IsConnector) || spec.Connector,
	}
	if len(b.ConnectedPlatforms) > 0 {
		out.ConnectedPlatforms = append([]string(nil), b.ConnectedPlatforms...)
	}
	if len(b.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(b.Metadata))
		for k, v := range b.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// assignMissingNumbers gives unnumbered platforms the lowest free numbers
// and unnumbered tracks numbers above the highest in use.
func assignMissingNumbers(l *station.StationLayout) {
	var unnumbered []int
	for i := range l.Platforms {
		if l.Platforms[i].PlatformNumber <= 0 {
			// Park below zero so pending platforms do not reserve numbers.
			l.Platforms[i].PlatformNumber = -2 * (len(unnumbered) + 1)
			unnumbered = append(unnumbered, i)
		}
	}
	for _, i := range unnumbered {
		p := &l.Platforms[i]
		p.PlatformNumber = l.NextPlatformNumber(len(p.Numbers()))
	}

	next := l.MaxTrackNumber() + 1
	for i := range l.Tracks {
		if l.Tracks[i].TrackNumber <= 0 {
			l.Tracks[i].TrackNumber = next
			next++
		}
	}
	for i := range l.Platforms {
		for _, t := range l.Platforms[i].EmbeddedTracks() {
			if t.TrackNumber <= 0 {
				t.TrackNumber = next
				next++
			}
		}
	}
}
