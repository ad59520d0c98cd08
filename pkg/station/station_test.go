package station

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func singlePlatform(id string, num int, y float64, inverted bool) Platform {
	p := Platform{
		ID:             id,
		PlatformNumber: num,
		X:              100,
		Y:              y,
		Length:         1500,
		Width:          100,
		Shops:          []ShopZone{},
		IsInverted:     inverted,
		Track:          &Track{ID: id + "-t", TrackNumber: num, Height: 60},
		RestrictedZone: &RestrictedZone{ID: id + "-z", Height: 50},
	}
	p.Restack()
	return p
}

func dualPlatform(id string, num int, y float64) Platform {
	p := Platform{
		ID:                   id,
		PlatformNumber:       num,
		X:                    100,
		Y:                    y,
		Length:               1500,
		Width:                200,
		IsDualTrack:          true,
		TopTrack:             &Track{ID: id + "-tt", TrackNumber: 1, Height: 60},
		TopRestrictedZone:    &RestrictedZone{ID: id + "-tz", Height: 50},
		BottomTrack:          &Track{ID: id + "-bt", TrackNumber: 2, Height: 60},
		BottomRestrictedZone: &RestrictedZone{ID: id + "-bz", Height: 50},
	}
	p.Restack()
	return p
}

func TestRestackSingleTrack(t *testing.T) {
	p := singlePlatform("p1", 1, 100, false)

	if p.RestrictedZone.Y != 200 {
		t.Errorf("buffer y = %v, want 200", p.RestrictedZone.Y)
	}
	if p.Track.Y != 250 {
		t.Errorf("track y = %v, want 250", p.Track.Y)
	}
	if p.Track.Length != 1500 || p.RestrictedZone.Width != 1500 {
		t.Errorf("embedded lengths = %v/%v, want 1500", p.Track.Length, p.RestrictedZone.Width)
	}
	if p.StackTop() != 100 || p.StackBottom() != 310 {
		t.Errorf("stack = [%v, %v], want [100, 310]", p.StackTop(), p.StackBottom())
	}
}

func TestRestackInverted(t *testing.T) {
	p := singlePlatform("p1", 1, 200, true)

	if p.RestrictedZone.Y != 150 {
		t.Errorf("buffer y = %v, want 150", p.RestrictedZone.Y)
	}
	if p.Track.Y != 90 {
		t.Errorf("track y = %v, want 90", p.Track.Y)
	}
	if p.StackTop() != 90 || p.StackBottom() != 300 {
		t.Errorf("stack = [%v, %v], want [90, 300]", p.StackTop(), p.StackBottom())
	}
}

func TestRestackDualTrackOrder(t *testing.T) {
	p := dualPlatform("d1", 1, 210)

	// top track, top buffer, body, bottom buffer, bottom track
	order := []float64{
		p.TopTrack.Y,
		p.TopRestrictedZone.Y,
		p.Y,
		p.BottomRestrictedZone.Y,
		p.BottomTrack.Y,
	}
	want := []float64{100, 160, 210, 410, 460}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("stack order mismatch (-want +got):\n%s", diff)
	}
	if p.StackHeight() != 420 {
		t.Errorf("stack height = %v, want 420", p.StackHeight())
	}
}

func TestTranslateMovesEmbeddedParts(t *testing.T) {
	p := singlePlatform("p1", 1, 100, false)
	p.RestrictedZones = []RestrictedZone{{ID: "free", X: 300, Y: 120, Width: 20, Height: 20}}
	p.Translate(10, -20)

	if p.X != 110 || p.Y != 80 {
		t.Errorf("position = (%v, %v), want (110, 80)", p.X, p.Y)
	}
	if p.Track.X != 110 || p.Track.Y != 230 {
		t.Errorf("track = (%v, %v), want (110, 230)", p.Track.X, p.Track.Y)
	}
	if p.RestrictedZones[0].X != 310 || p.RestrictedZones[0].Y != 100 {
		t.Errorf("free zone = (%v, %v), want (310, 100)", p.RestrictedZones[0].X, p.RestrictedZones[0].Y)
	}
}

func TestNextPlatformNumber(t *testing.T) {
	tests := []struct {
		name      string
		platforms []Platform
		span      int
		want      int
	}{
		{"empty single", nil, 1, 1},
		{"empty dual", nil, 2, 1},
		{"fills gap", []Platform{
			singlePlatform("a", 1, 0, false),
			singlePlatform("b", 2, 0, false),
			singlePlatform("c", 4, 0, false),
		}, 1, 3},
		{"dual skips single gap", []Platform{
			singlePlatform("a", 1, 0, false),
			singlePlatform("c", 3, 0, false),
		}, 2, 4},
		{"dual reserves two", []Platform{dualPlatform("d", 1, 0)}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("st", "Test", "TST", "u1", time.Time{})
			l.Platforms = tt.platforms
			if got := l.NextPlatformNumber(tt.span); got != tt.want {
				t.Errorf("NextPlatformNumber(%d) = %d, want %d", tt.span, got, tt.want)
			}
		})
	}
}

func TestMaxTrackNumberScansEmbeddedTracks(t *testing.T) {
	l := New("st", "Test", "TST", "u1", time.Time{})
	l.Tracks = []Track{{ID: "t", TrackNumber: 2}}
	d := dualPlatform("d", 1, 0)
	d.BottomTrack.TrackNumber = 7
	l.Platforms = []Platform{singlePlatform("a", 3, 0, false), d}

	if got := l.MaxTrackNumber(); got != 7 {
		t.Errorf("MaxTrackNumber = %d, want 7", got)
	}
}

func TestPlatformCountCountsDualTwice(t *testing.T) {
	l := New("st", "Test", "TST", "u1", time.Time{})
	l.Platforms = []Platform{singlePlatform("a", 1, 0, false), dualPlatform("d", 2, 0)}
	if got := l.PlatformCount(); got != 3 {
		t.Errorf("PlatformCount = %d, want 3", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, l.UsedPlatformNumbers()); diff != "" {
		t.Errorf("UsedPlatformNumbers mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rent := 1200.0
	l := New("st", "Test", "TST", "u1", time.Unix(0, 0).UTC())
	p := singlePlatform("a", 1, 100, false)
	p.Shops = []ShopZone{{ID: "s1", X: 0, Width: 100, Rent: &rent}}
	l.Platforms = []Platform{p}
	l.Groups = []ElementGroup{{ID: "g", ElementIDs: []string{"a"}}}
	l.InfrastructureBlocks = []InfrastructureBlock{{ID: "b", Metadata: map[string]string{"k": "v"}}}

	c := l.Clone()
	if diff := cmp.Diff(l, c, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Platforms[0].Track.Y = 999
	*c.Platforms[0].Shops[0].Rent = 1
	c.Platforms[0].Shops[0].Width = 1
	c.Groups[0].ElementIDs[0] = "x"
	c.InfrastructureBlocks[0].Metadata["k"] = "changed"

	if l.Platforms[0].Track.Y == 999 {
		t.Error("clone shares embedded track pointer")
	}
	if *l.Platforms[0].Shops[0].Rent != 1200 {
		t.Error("clone shares shop rent pointer")
	}
	if l.Platforms[0].Shops[0].Width != 100 {
		t.Error("clone shares shop slice")
	}
	if l.Groups[0].ElementIDs[0] != "a" {
		t.Error("clone shares group members")
	}
	if l.InfrastructureBlocks[0].Metadata["k"] != "v" {
		t.Error("clone shares block metadata")
	}
}

func TestBlockBoundsRotation(t *testing.T) {
	b := InfrastructureBlock{Dimensions: Size{Width: 100, Height: 20}, Rotation: 270}
	got := b.Bounds()
	if got.W != 20 || got.H != 100 {
		t.Errorf("rotated bounds = %vx%v, want 20x100", got.W, got.H)
	}
}

func TestShopEffectiveHeight(t *testing.T) {
	if h := (ShopZone{Width: 80}).EffectiveHeight(); h != 80 {
		t.Errorf("unset height = %v, want width 80", h)
	}
	if h := (ShopZone{Width: 80, Height: 40}).EffectiveHeight(); h != 40 {
		t.Errorf("explicit height = %v, want 40", h)
	}
}

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"no repeats", []string{"a", "b"}, []string{"a", "b"}},
		{"repeats keep first position", []string{"b", "a", "b", "a"}, []string{"b", "a"}},
		{"blanks dropped", []string{"", "a", ""}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueIDs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UniqueIDs(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
