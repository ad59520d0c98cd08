package station

import "sort"

// ElementKind names the groupable and snappable element collections.
type ElementKind string

const (
	KindTrack          ElementKind = "track"
	KindPlatform       ElementKind = "platform"
	KindRestrictedZone ElementKind = "restrictedZone"
	KindShop           ElementKind = "shop"
	KindInfrastructure ElementKind = "infrastructure"
)

// Platform returns the platform with the given id.
func (l *StationLayout) Platform(id string) (*Platform, bool) {
	for i := range l.Platforms {
		if l.Platforms[i].ID == id {
			return &l.Platforms[i], true
		}
	}
	return nil, false
}

// Track returns the standalone track with the given id.
func (l *StationLayout) Track(id string) (*Track, bool) {
	for i := range l.Tracks {
		if l.Tracks[i].ID == id {
			return &l.Tracks[i], true
		}
	}
	return nil, false
}

// RestrictedZone returns the standalone zone with the given id.
func (l *StationLayout) RestrictedZone(id string) (*RestrictedZone, bool) {
	for i := range l.RestrictedZones {
		if l.RestrictedZones[i].ID == id {
			return &l.RestrictedZones[i], true
		}
	}
	return nil, false
}

// Block returns the infrastructure block with the given id.
func (l *StationLayout) Block(id string) (*InfrastructureBlock, bool) {
	for i := range l.InfrastructureBlocks {
		if l.InfrastructureBlocks[i].ID == id {
			return &l.InfrastructureBlocks[i], true
		}
	}
	return nil, false
}

// Group returns the group with the given id.
func (l *StationLayout) Group(id string) (*ElementGroup, bool) {
	for i := range l.Groups {
		if l.Groups[i].ID == id {
			return &l.Groups[i], true
		}
	}
	return nil, false
}

// ShopOwner returns the platform holding the shop and the shop itself.
func (l *StationLayout) ShopOwner(shopID string) (*Platform, *ShopZone, bool) {
	for i := range l.Platforms {
		if s, ok := l.Platforms[i].Shop(shopID); ok {
			return &l.Platforms[i], s, true
		}
	}
	return nil, nil, false
}

// KindOf reports which groupable collection holds id.
func (l *StationLayout) KindOf(id string) (ElementKind, bool) {
	if _, ok := l.Track(id); ok {
		return KindTrack, true
	}
	if _, ok := l.Platform(id); ok {
		return KindPlatform, true
	}
	if _, ok := l.RestrictedZone(id); ok {
		return KindRestrictedZone, true
	}
	return "", false
}

// UsedPlatformNumbers returns the sorted set of platform numbers the layout
// represents, counting both numbers of a dual-track platform.
func (l *StationLayout) UsedPlatformNumbers() []int {
	seen := make(map[int]bool)
	var nums []int
	for i := range l.Platforms {
		for _, n := range l.Platforms[i].Numbers() {
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)
	return nums
}

// PlatformCount returns how many platform numbers the layout represents,
// counting a dual-track platform twice.
func (l *StationLayout) PlatformCount() int {
	n := 0
	for i := range l.Platforms {
		n += len(l.Platforms[i].Numbers())
	}
	return n
}

// NextPlatformNumber returns the smallest positive number n such that the
// next span numbers starting at n are all unused.
func (l *StationLayout) NextPlatformNumber(span int) int {
	used := make(map[int]bool)
	for _, n := range l.UsedPlatformNumbers() {
		used[n] = true
	}
	for n := 1; ; n++ {
		free := true
		for k := 0; k < span; k++ {
			if used[n+k] {
				free = false
				break
			}
		}
		if free {
			return n
		}
	}
}

// MaxTrackNumber returns the highest track number used by standalone and
// embedded tracks, or zero.
func (l *StationLayout) MaxTrackNumber() int {
	maxNum := 0
	for _, t := range l.Tracks {
		if t.TrackNumber > maxNum {
			maxNum = t.TrackNumber
		}
	}
	for i := range l.Platforms {
		for _, t := range l.Platforms[i].EmbeddedTracks() {
			if t.TrackNumber > maxNum {
				maxNum = t.TrackNumber
			}
		}
	}
	return maxNum
}

// HasAnyTrack reports whether a standalone or embedded track exists.
func (l *StationLayout) HasAnyTrack() bool {
	if len(l.Tracks) > 0 {
		return true
	}
	for i := range l.Platforms {
		if len(l.Platforms[i].EmbeddedTracks()) > 0 {
			return true
		}
	}
	return false
}

// StackBottom returns the lowest outer edge of all platforms, or zero.
func (l *StationLayout) StackBottom() float64 {
	bottom := 0.0
	for i := range l.Platforms {
		if b := l.Platforms[i].StackBottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

// Clone returns a deep copy sharing no slices, maps or pointers with l.
func (l *StationLayout) Clone() *StationLayout {
	if l == nil {
		return nil
	}
	c := *l
	c.Tracks = cloneSlice(l.Tracks)
	c.RestrictedZones = cloneSlice(l.RestrictedZones)

	c.Platforms = make([]Platform, len(l.Platforms))
	for i := range l.Platforms {
		c.Platforms[i] = l.Platforms[i].Clone()
	}

	c.Groups = make([]ElementGroup, len(l.Groups))
	for i, g := range l.Groups {
		g.ElementIDs = cloneSlice(g.ElementIDs)
		c.Groups[i] = g
	}

	c.InfrastructureBlocks = make([]InfrastructureBlock, len(l.InfrastructureBlocks))
	for i, b := range l.InfrastructureBlocks {
		b.ConnectedPlatforms = cloneSlice(b.ConnectedPlatforms)
		if b.Metadata != nil {
			m := make(map[string]string, len(b.Metadata))
			for k, v := range b.Metadata {
				m[k] = v
			}
			b.Metadata = m
		}
		c.InfrastructureBlocks[i] = b
	}
	return &c
}

// Clone returns a deep copy of the platform.
func (p Platform) Clone() Platform {
	c := p
	c.Shops = make([]ShopZone, len(p.Shops))
	for i, s := range p.Shops {
		if s.Rent != nil {
			r := *s.Rent
			s.Rent = &r
		}
		c.Shops[i] = s
	}
	c.RestrictedZones = cloneSlice(p.RestrictedZones)
	c.Track = clonePtr(p.Track)
	c.RestrictedZone = clonePtr(p.RestrictedZone)
	c.TopTrack = clonePtr(p.TopTrack)
	c.TopRestrictedZone = clonePtr(p.TopRestrictedZone)
	c.BottomTrack = clonePtr(p.BottomTrack)
	c.BottomRestrictedZone = clonePtr(p.BottomRestrictedZone)
	return c
}

// cloneSlice copies s. A nil input yields an empty slice so JSON output
// stays an array.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
