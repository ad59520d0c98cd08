// Package wire converts between the persisted layout document and the
// in-memory station.StationLayout.
//
// Two historical shapes are accepted. The current shape has a top-level
// platforms array whose entries embed their tracks. The legacy shape has a
// top-level tracks array whose entries nest their platforms. Decode works
// out which one it has been given once, and Normalize builds the aggregate
// from that tag.
package wire

import (
	"encoding/json"
	"fmt"
)

// Shape tags which document layout Decode found.
type Shape int

const (
	// ShapeEmpty has neither platforms nor nested legacy platforms.
	ShapeEmpty Shape = iota
	// ShapeCurrent has a non-empty top-level platforms array.
	ShapeCurrent
	// ShapeLegacy nests platforms under tracks.
	ShapeLegacy
)

func (s Shape) String() string {
	switch s {
	case ShapeCurrent:
		return "current"
	case ShapeLegacy:
		return "legacy"
	default:
		return "empty"
	}
}

// Document is a decoded but not yet normalized layout.
type Document struct {
	Shape Shape `json:"-"`

	StationID            string     `json:"stationId"`
	StationName          string     `json:"stationName"`
	StationCode          string     `json:"stationCode"`
	Tracks               []Track    `json:"tracks"`
	StandaloneTracks     []Track    `json:"standaloneTracks"`
	Platforms            []Platform `json:"platforms"`
	RestrictedZones      []Zone     `json:"restrictedZones"`
	Groups               []Group    `json:"groups"`
	InfrastructureBlocks []Block    `json:"infrastructureBlocks"`
	CanvasSettings       *Canvas    `json:"canvasSettings"`
	Metadata             *Metadata  `json:"metadata"`
}

// Track is a track record. Legacy documents nest platforms in it.
type Track struct {
	ID          string     `json:"id"`
	TrackNumber Int        `json:"trackNumber"`
	X           Float      `json:"x"`
	Y           Float      `json:"y"`
	Length      Float      `json:"length"`
	Height      Float      `json:"height"`
	Platforms   []Platform `json:"platforms"`
}

// Zone is a restricted zone record.
type Zone struct {
	ID     string `json:"id"`
	X      Float  `json:"x"`
	Y      Float  `json:"y"`
	Width  Float  `json:"width"`
	Height Float  `json:"height"`
}

// Shop is a shop zone record.
type Shop struct {
	ID          string `json:"id"`
	X           Float  `json:"x"`
	Width       Float  `json:"width"`
	Height      Float  `json:"height"`
	Category    string `json:"category"`
	MinWidth    Float  `json:"minWidth"`
	MaxWidth    Float  `json:"maxWidth"`
	IsAllocated Bool   `json:"isAllocated"`
	VendorID    string `json:"vendorId"`
	Rent        Float  `json:"rent"`
	Notes       string `json:"notes"`
}

// Platform is a platform record in either shape.
type Platform struct {
	ID              string `json:"id"`
	PlatformNumber  Int    `json:"platformNumber"`
	X               Float  `json:"x"`
	Y               Float  `json:"y"`
	Length          Float  `json:"length"`
	Width           Float  `json:"width"`
	Shops           []Shop `json:"shops"`
	RestrictedZones []Zone `json:"restrictedZones"`
	IsDualTrack     Bool   `json:"isDualTrack"`
	IsInverted      Bool   `json:"isInverted"`

	Track          *Track `json:"track"`
	RestrictedZone *Zone  `json:"restrictedZone"`

	TopTrack             *Track `json:"topTrack"`
	TopRestrictedZone    *Zone  `json:"topRestrictedZone"`
	BottomTrack          *Track `json:"bottomTrack"`
	BottomRestrictedZone *Zone  `json:"bottomRestrictedZone"`
}

// Group is an element group record.
type Group struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ElementIDs []string `json:"elementIds"`
	CreatedAt  string   `json:"createdAt"`
}

// Point is a lenient coordinate pair.
type Point struct {
	X Float `json:"x"`
	Y Float `json:"y"`
}

// Dimensions is a lenient size.
type Dimensions struct {
	Width  Float `json:"width"`
	Height Float `json:"height"`
}

// Block is an infrastructure block record.
type Block struct {
	ID                 string            `json:"id"`
	Type               string            `json:"type"`
	Position           Point             `json:"position"`
	Dimensions         Dimensions        `json:"dimensions"`
	Rotation           Float             `json:"rotation"`
	IsLocked           Bool              `json:"isLocked"`
	IsConnector        Bool              `json:"isConnector"`
	ConnectedPlatforms []string          `json:"connectedPlatforms"`
	Metadata           map[string]string `json:"metadata"`
}

// Canvas is a canvas settings record.
type Canvas struct {
	Width           Float  `json:"width"`
	Height          Float  `json:"height"`
	GridSize        Float  `json:"gridSize"`
	Scale           Float  `json:"scale"`
	BackgroundColor string `json:"backgroundColor"`
}

// Metadata is a metadata record. Timestamps stay strings so a malformed
// date falls back to a default instead of failing the load.
type Metadata struct {
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Version   Int    `json:"version"`
}

// Decode parses a layout document and tags its shape. Only syntactically
// invalid JSON or a non-object top level is an error.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding layout document: %w", err)
	}
	doc.Shape = detectShape(&doc)
	return doc, nil
}

func detectShape(doc *Document) Shape {
	if len(doc.Platforms) > 0 {
		return ShapeCurrent
	}
	for _, t := range doc.Tracks {
		if len(t.Platforms) > 0 {
			return ShapeLegacy
		}
	}
	return ShapeEmpty
}
