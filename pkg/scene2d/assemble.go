package scene2d

import (
	"time"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// Flatten converts a station layout into a 2D scene suitable for rendering.
// Embedded tracks and buffers become top-level rectangles tagged with their
// platform; shop positions are resolved from platform-relative to absolute.
// A nil layout flattens to an empty scene.
func Flatten(l *station.StationLayout) *Scene2D {
	if l == nil {
		l = &station.StationLayout{}
	}
	sc := &Scene2D{
		Metadata:       assembleMetadata(l),
		Platforms:      assemblePlatforms(l),
		Tracks:         assembleTracks(l),
		Zones:          assembleZones(l),
		Shops:          assembleShops(l),
		Infrastructure: assembleInfrastructure(l),
	}
	sc.Bounds = sceneBounds(sc)
	return sc
}

func assembleMetadata(l *station.StationLayout) Metadata {
	shops := 0
	for i := range l.Platforms {
		shops += len(l.Platforms[i].Shops)
	}
	return Metadata{
		StationID:     l.StationID,
		StationName:   l.StationName,
		StationCode:   l.StationCode,
		PlatformCount: l.PlatformCount(),
		ShopCount:     shops,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

func assemblePlatforms(l *station.StationLayout) []Platform2D {
	result := make([]Platform2D, 0, len(l.Platforms))
	for i := range l.Platforms {
		p := &l.Platforms[i]
		result = append(result, Platform2D{
			ID:       p.ID,
			Numbers:  p.Numbers(),
			Rect:     p.BodyRect(),
			Stack:    p.StackRect(),
			Dual:     p.IsDualTrack,
			Inverted: p.IsInverted,
		})
	}
	return result
}

func assembleTracks(l *station.StationLayout) []Track2D {
	result := make([]Track2D, 0, len(l.Tracks)+len(l.Platforms))
	for _, t := range l.Tracks {
		result = append(result, Track2D{
			ID:     t.ID,
			Number: t.TrackNumber,
			Rect:   t.Rect(),
		})
	}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		for _, t := range p.EmbeddedTracks() {
			result = append(result, Track2D{
				ID:         t.ID,
				Number:     t.TrackNumber,
				PlatformID: p.ID,
				Rect:       t.Rect(),
			})
		}
	}
	return result
}

func assembleZones(l *station.StationLayout) []Zone2D {
	var result []Zone2D
	for _, z := range l.RestrictedZones {
		result = append(result, Zone2D{ID: z.ID, Kind: ZoneRestricted, Rect: z.Rect()})
	}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		for _, z := range []*station.RestrictedZone{p.RestrictedZone, p.TopRestrictedZone, p.BottomRestrictedZone} {
			if z != nil {
				result = append(result, Zone2D{ID: z.ID, Kind: ZoneBuffer, PlatformID: p.ID, Rect: z.Rect()})
			}
		}
		for _, z := range p.RestrictedZones {
			result = append(result, Zone2D{ID: z.ID, Kind: ZoneRestricted, PlatformID: p.ID, Rect: z.Rect()})
		}
	}
	if result == nil {
		result = []Zone2D{}
	}
	return result
}

func assembleShops(l *station.StationLayout) []Shop2D {
	result := []Shop2D{}
	for i := range l.Platforms {
		p := &l.Platforms[i]
		for _, s := range p.Shops {
			result = append(result, Shop2D{
				ID:         s.ID,
				PlatformID: p.ID,
				Category:   s.Category,
				Allocated:  s.IsAllocated,
				Rect:       p.ShopRect(s),
			})
		}
	}
	return result
}

func assembleInfrastructure(l *station.StationLayout) []Block2D {
	result := make([]Block2D, 0, len(l.InfrastructureBlocks))
	for _, b := range l.InfrastructureBlocks {
		result = append(result, Block2D{
			ID:        b.ID,
			Type:      string(b.Type),
			Connector: b.IsConnector,
			Locked:    b.IsLocked,
			Rotation:  b.Rotation,
			Rect:      b.Bounds(),
		})
	}
	return result
}

func sceneBounds(sc *Scene2D) geo.Rect {
	var rects []geo.Rect
	for _, p := range sc.Platforms {
		rects = append(rects, p.Stack)
	}
	for _, t := range sc.Tracks {
		rects = append(rects, t.Rect)
	}
	for _, z := range sc.Zones {
		rects = append(rects, z.Rect)
	}
	for _, b := range sc.Infrastructure {
		rects = append(rects, b.Rect)
	}
	return geo.BoundingBox(rects)
}
