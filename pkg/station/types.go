package station

import (
	"time"

	"github.com/railyard/stationlayout/pkg/geo"
)

// Track is a rail line segment, standalone or embedded in a platform.
type Track struct {
	ID          string  `json:"id"`
	TrackNumber int     `json:"trackNumber"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Length      float64 `json:"length"`
	Height      float64 `json:"height"`
}

// Rect returns the track's footprint.
func (t Track) Rect() geo.Rect {
	return geo.R(t.X, t.Y, t.Length, t.Height)
}

// RestrictedZone is a no-shop rectangle: either a free-floating exclusion
// area or the buffer strip between a platform body and its track.
type RestrictedZone struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the zone's footprint.
func (z RestrictedZone) Rect() geo.Rect {
	return geo.R(z.X, z.Y, z.Width, z.Height)
}

// ShopZone is a vendor-allocatable slot on a platform. X is relative to the
// platform's X.
type ShopZone struct {
	ID          string   `json:"id"`
	X           float64  `json:"x"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height,omitempty"`
	Category    string   `json:"category"`
	MinWidth    float64  `json:"minWidth"`
	MaxWidth    float64  `json:"maxWidth"`
	IsAllocated bool     `json:"isAllocated"`
	VendorID    string   `json:"vendorId,omitempty"`
	Rent        *float64 `json:"rent,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// EffectiveHeight returns Height, or Width when unset (square shop).
func (s ShopZone) EffectiveHeight() float64 {
	if s.Height > 0 {
		return s.Height
	}
	return s.Width
}

// Span returns the shop's platform-relative horizontal extent.
func (s ShopZone) Span() geo.Interval {
	return geo.Span(s.X, s.Width)
}

// WidthInRange reports whether MinWidth <= Width <= MaxWidth.
func (s ShopZone) WidthInRange() bool {
	return s.Width >= s.MinWidth && s.Width <= s.MaxWidth
}

// Platform is the walkable surface. A single-track platform owns Track and
// RestrictedZone, placed below the body or above it when IsInverted. A
// dual-track platform owns TopTrack/TopRestrictedZone and
// BottomTrack/BottomRestrictedZone and represents two platform numbers.
type Platform struct {
	ID              string           `json:"id"`
	PlatformNumber  int              `json:"platformNumber"`
	X               float64          `json:"x"`
	Y               float64          `json:"y"`
	Length          float64          `json:"length"`
	Width           float64          `json:"width"` // body thickness
	Shops           []ShopZone       `json:"shops"`
	RestrictedZones []RestrictedZone `json:"restrictedZones"`
	IsDualTrack     bool             `json:"isDualTrack"`
	IsInverted      bool             `json:"isInverted"`

	Track          *Track          `json:"track,omitempty"`
	RestrictedZone *RestrictedZone `json:"restrictedZone,omitempty"`

	TopTrack             *Track          `json:"topTrack,omitempty"`
	TopRestrictedZone    *RestrictedZone `json:"topRestrictedZone,omitempty"`
	BottomTrack          *Track          `json:"bottomTrack,omitempty"`
	BottomRestrictedZone *RestrictedZone `json:"bottomRestrictedZone,omitempty"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InfrastructureBlock is an amenity or a connector spanning platforms.
type InfrastructureBlock struct {
	ID                 string             `json:"id"`
	Type               InfrastructureType `json:"type"`
	Position           geo.Point          `json:"position"`
	Dimensions         Size               `json:"dimensions"`
	Rotation           float64            `json:"rotation"`
	IsLocked           bool               `json:"isLocked"`
	IsConnector        bool               `json:"isConnector"`
	ConnectedPlatforms []string           `json:"connectedPlatforms,omitempty"`
	Metadata           map[string]string  `json:"metadata,omitempty"`
}

// Rect returns the unrotated footprint.
func (b InfrastructureBlock) Rect() geo.Rect {
	return geo.R(b.Position.X, b.Position.Y, b.Dimensions.Width, b.Dimensions.Height)
}

// Bounds returns the axis-aligned footprint after rotation.
func (b InfrastructureBlock) Bounds() geo.Rect {
	return b.Rect().RotatedBounds(b.Rotation)
}

// ElementGroup is a named set of track, platform and zone ids moved as one
// rigid body. Membership is by reference; an id may be in several groups.
type ElementGroup struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ElementIDs []string  `json:"elementIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Has reports whether id is a member of the group.
func (g ElementGroup) Has(id string) bool {
	for _, e := range g.ElementIDs {
		if e == id {
			return true
		}
	}
	return false
}

// UniqueIDs returns ids in first-seen order with repeats and blanks
// removed. The result never aliases ids.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CanvasSettings describes the drawing surface.
type CanvasSettings struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	GridSize        float64 `json:"gridSize"`
	Scale           float64 `json:"scale"`
	BackgroundColor string  `json:"backgroundColor"`
}

// Metadata records authorship and modification times.
type Metadata struct {
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int       `json:"version"`
}

// StationLayout is the aggregate root: one per station.
type StationLayout struct {
	StationID            string                `json:"stationId"`
	StationName          string                `json:"stationName"`
	StationCode          string                `json:"stationCode"`
	Tracks               []Track               `json:"tracks"`
	Platforms            []Platform            `json:"platforms"`
	RestrictedZones      []RestrictedZone      `json:"restrictedZones"`
	Groups               []ElementGroup        `json:"groups"`
	InfrastructureBlocks []InfrastructureBlock `json:"infrastructureBlocks"`
	CanvasSettings       CanvasSettings        `json:"canvasSettings"`
	Metadata             Metadata              `json:"metadata"`
}

// New returns an empty layout for a station.
func New(stationID, stationName, stationCode, createdBy string, now time.Time) *StationLayout {
	return &StationLayout{
		StationID:            stationID,
		StationName:          stationName,
		StationCode:          stationCode,
		Tracks:               []Track{},
		Platforms:            []Platform{},
		RestrictedZones:      []RestrictedZone{},
		Groups:               []ElementGroup{},
		InfrastructureBlocks: []InfrastructureBlock{},
		CanvasSettings:       DefaultCanvas(),
		Metadata: Metadata{
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
	}
}
