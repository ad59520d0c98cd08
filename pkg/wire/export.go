package wire

import (
	"encoding/json"
	"fmt"

	"github.com/railyard/stationlayout/pkg/station"
)

// Exported is the current wire shape. Tracks is always an empty array for
// readers of the legacy shape; standalone tracks travel in
// StandaloneTracks and platform tracks inside each platform.
type Exported struct {
	StationID            string                        `json:"stationId"`
	StationName          string                        `json:"stationName"`
	StationCode          string                        `json:"stationCode"`
	Tracks               []station.Track               `json:"tracks"`
	StandaloneTracks     []station.Track               `json:"standaloneTracks,omitempty"`
	Platforms            []station.Platform            `json:"platforms"`
	RestrictedZones      []station.RestrictedZone      `json:"restrictedZones"`
	Groups               []station.ElementGroup        `json:"groups"`
	InfrastructureBlocks []station.InfrastructureBlock `json:"infrastructureBlocks"`
	CanvasSettings       station.CanvasSettings        `json:"canvasSettings"`
	Metadata             station.Metadata              `json:"metadata"`
}

// ToWire converts a layout into its export form. Embedded sub-objects are
// emitted only when populated, following the platform's configuration.
func ToWire(l *station.StationLayout) Exported {
	c := l.Clone()
	for i := range c.Platforms {
		p := &c.Platforms[i]
		if p.IsDualTrack {
			p.Track, p.RestrictedZone = nil, nil
		} else {
			p.TopTrack, p.TopRestrictedZone = nil, nil
			p.BottomTrack, p.BottomRestrictedZone = nil, nil
		}
	}
	return Exported{
		StationID:            c.StationID,
		StationName:          c.StationName,
		StationCode:          c.StationCode,
		Tracks:               []station.Track{},
		StandaloneTracks:     c.Tracks,
		Platforms:            c.Platforms,
		RestrictedZones:      c.RestrictedZones,
		Groups:               c.Groups,
		InfrastructureBlocks: c.InfrastructureBlocks,
		CanvasSettings:       c.CanvasSettings,
		Metadata:             c.Metadata,
	}
}

// Export serializes a layout in the current wire shape.
func Export(l *station.StationLayout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("exporting layout: nil layout")
	}
	data, err := json.MarshalIndent(ToWire(l), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporting layout: %w", err)
	}
	return data, nil
}

// Load decodes and normalizes a document in one step.
func Load(data []byte, opts Options) (*station.StationLayout, Shape, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, ShapeEmpty, err
	}
	return Normalize(doc, opts), doc.Shape, nil
}
