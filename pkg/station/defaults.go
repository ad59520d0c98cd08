package station

// Defaults are the geometry values used when creating elements and when
// filling fields missing from a loaded document.
type Defaults struct {
	PlatformLength float64 `yaml:"platform_length" json:"platformLength"`
	PlatformWidth  float64 `yaml:"platform_width" json:"platformWidth"`
	TrackHeight    float64 `yaml:"track_height" json:"trackHeight"`
	BufferHeight   float64 `yaml:"buffer_height" json:"bufferHeight"`
	ShopMinWidth   float64 `yaml:"shop_min_width" json:"shopMinWidth"`
	ShopMaxWidth   float64 `yaml:"shop_max_width" json:"shopMaxWidth"`
}

// DefaultGeometry returns the geometry used for newly added platforms.
func DefaultGeometry() Defaults {
	return Defaults{
		PlatformLength: 1500,
		PlatformWidth:  100,
		TrackHeight:    60,
		BufferHeight:   50,
		ShopMinWidth:   50,
		ShopMaxWidth:   500,
	}
}

// LegacyGeometry returns the defaults for platforms nested under tracks in
// the old document shape, which were drawn shorter and thinner.
func LegacyGeometry() Defaults {
	d := DefaultGeometry()
	d.PlatformLength = 800
	d.PlatformWidth = 60
	return d
}

// DefaultCanvas returns the canvas settings for a new layout.
func DefaultCanvas() CanvasSettings {
	return CanvasSettings{
		Width:           2000,
		Height:          1200,
		GridSize:        20,
		Scale:           1,
		BackgroundColor: "#f8fafc",
	}
}
