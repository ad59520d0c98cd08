package editor

import (
	"time"

	"github.com/railyard/stationlayout/pkg/history"
	"github.com/railyard/stationlayout/pkg/snap"
	"github.com/railyard/stationlayout/pkg/station"
)

// Zoom limits for the view state.
const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// connectorMargin separates a spanning connector from the leftmost
// platform.
const connectorMargin = 10.0

// Settings are the tunables of an editing session.
type Settings struct {
	SnapThreshold   float64
	SnapDistance    float64
	MaxHistory      int
	Debounce        time.Duration
	PlatformSpacing float64
	OriginX         float64
	OriginY         float64
	Geometry        station.Defaults
	Legacy          station.Defaults
}

// DefaultSettings returns the stock editor settings.
func DefaultSettings() Settings {
	return Settings{
		SnapThreshold:   snap.DefaultThreshold,
		SnapDistance:    snap.DefaultDistance,
		MaxHistory:      history.DefaultMaxSize,
		Debounce:        history.DefaultDelay,
		PlatformSpacing: 40,
		OriginX:         100,
		OriginY:         100,
		Geometry:        station.DefaultGeometry(),
		Legacy:          station.LegacyGeometry(),
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s == (Settings{}) {
		return d
	}
	if s.SnapThreshold <= 0 {
		s.SnapThreshold = d.SnapThreshold
	}
	if s.SnapDistance <= 0 {
		s.SnapDistance = d.SnapDistance
	}
	if s.MaxHistory <= 0 {
		s.MaxHistory = d.MaxHistory
	}
	if s.Debounce <= 0 {
		s.Debounce = d.Debounce
	}
	if s.PlatformSpacing < 0 {
		s.PlatformSpacing = d.PlatformSpacing
	}
	if s.Geometry == (station.Defaults{}) {
		s.Geometry = d.Geometry
	}
	if s.Legacy == (station.Defaults{}) {
		s.Legacy = d.Legacy
	}
	return s
}
