package scene2d

import "github.com/railyard/stationlayout/pkg/geo"

// Scene2D is the complete 2D scene output for a top-down renderer. Every
// rectangle is in absolute canvas coordinates.
type Scene2D struct {
	Metadata       Metadata     `json:"metadata"`
	Platforms      []Platform2D `json:"platforms"`
	Tracks         []Track2D    `json:"tracks"`
	Zones          []Zone2D     `json:"zones"`
	Shops          []Shop2D     `json:"shops"`
	Infrastructure []Block2D    `json:"infrastructure"`
	Bounds         geo.Rect     `json:"bounds"`
}

// Metadata holds station-level summary data.
type Metadata struct {
	StationID     string `json:"station_id"`
	StationName   string `json:"station_name"`
	StationCode   string `json:"station_code"`
	PlatformCount int    `json:"platform_count"`
	ShopCount     int    `json:"shop_count"`
	GeneratedAt   string `json:"generated_at"`
}

// Platform2D is a platform body.
type Platform2D struct {
	ID       string   `json:"id"`
	Numbers  []int    `json:"numbers"`
	Rect     geo.Rect `json:"rect"`
	Stack    geo.Rect `json:"stack"`
	Dual     bool     `json:"dual"`
	Inverted bool     `json:"inverted"`
}

// Track2D is a track, standalone or owned by a platform.
type Track2D struct {
	ID         string   `json:"id"`
	Number     int      `json:"number"`
	PlatformID string   `json:"platform_id,omitempty"`
	Rect       geo.Rect `json:"rect"`
}

// Zone kinds.
const (
	ZoneBuffer     = "buffer"
	ZoneRestricted = "restricted"
)

// Zone2D is a no-shop rectangle.
type Zone2D struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	PlatformID string   `json:"platform_id,omitempty"`
	Rect       geo.Rect `json:"rect"`
}

// Shop2D is a shop placed on its platform body.
type Shop2D struct {
	ID         string   `json:"id"`
	PlatformID string   `json:"platform_id"`
	Category   string   `json:"category"`
	Allocated  bool     `json:"allocated"`
	Rect       geo.Rect `json:"rect"`
}

// Block2D is an infrastructure block with rotation applied to its bounds.
type Block2D struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Connector bool     `json:"connector"`
	Locked    bool     `json:"locked"`
	Rotation  float64  `json:"rotation"`
	Rect      geo.Rect `json:"rect"`
}
