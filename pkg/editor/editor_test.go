package editor

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/railyard/stationlayout/pkg/history"
	"github.com/railyard/stationlayout/pkg/station"
	"github.com/railyard/stationlayout/pkg/validation"
)

var baseTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	ed    *Editor
	clock *history.ManualClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := history.NewManualClock()
	ids := 0
	ticks := 0
	ed := New(Options{
		Clock: clock,
		NewID: func(prefix string) string {
			ids++
			return fmt.Sprintf("%s-%d", prefix, ids)
		},
		Now: func() time.Time {
			ticks++
			return baseTime.Add(time.Duration(ticks) * time.Second)
		},
	})
	ed.Initialize("st1", "Test", "TST", "u1")
	return &fixture{ed: ed, clock: clock}
}

func numbers(l *station.StationLayout) []int {
	var out []int
	for _, p := range l.Platforms {
		out = append(out, p.PlatformNumber)
	}
	return out
}

func TestTwoPlatformsValidate(t *testing.T) {
	f := newFixture(t)
	f.ed.AddCompletePlatform()
	f.ed.AddCompletePlatform()

	out := validation.ValidateWithStationData(f.ed.Layout(), 2).Outcome()
	if !out.IsValid || len(out.Errors) != 0 {
		t.Errorf("Outcome = %+v, want valid with no errors", out)
	}
}

func TestAddCompletePlatformFillsNumberGap(t *testing.T) {
	f := newFixture(t)
	var third station.Platform
	for i := 0; i < 4; i++ {
		p := f.ed.AddCompletePlatform()
		if i == 2 {
			third = p
		}
	}
	f.ed.RemovePlatform(third.ID)

	p := f.ed.AddCompletePlatform()
	if p.PlatformNumber != 3 {
		t.Errorf("PlatformNumber = %d, want 3", p.PlatformNumber)
	}
}

func TestDualTrackReservesTwoNumbers(t *testing.T) {
	f := newFixture(t)
	d := f.ed.AddDualTrackPlatform()
	s := f.ed.AddCompletePlatform()

	if d.PlatformNumber != 1 {
		t.Errorf("dual PlatformNumber = %d, want 1", d.PlatformNumber)
	}
	if s.PlatformNumber != 3 {
		t.Errorf("single PlatformNumber = %d, want 3", s.PlatformNumber)
	}
	if d.TopTrack.TrackNumber != 1 || d.BottomTrack.TrackNumber != 2 {
		t.Errorf("dual track numbers = %d/%d, want 1/2", d.TopTrack.TrackNumber, d.BottomTrack.TrackNumber)
	}
	if s.Track.TrackNumber != 3 {
		t.Errorf("single track number = %d, want 3", s.Track.TrackNumber)
	}
	if d.Width != 200 {
		t.Errorf("dual Width = %v, want 200", d.Width)
	}
}

func TestPlatformsStackVertically(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()
	b := f.ed.AddCompletePlatform()
	d := f.ed.AddDualTrackPlatform()

	if a.Y != 100 {
		t.Errorf("first y = %v, want 100", a.Y)
	}
	// 100 + (100+50+60) + 40
	if b.Y != 350 {
		t.Errorf("second y = %v, want 350", b.Y)
	}
	// 350 + 210 + 40 + top side 110
	if d.Y != 710 {
		t.Errorf("dual y = %v, want 710", d.Y)
	}
	if d.TopTrack.Y != 600 || d.BottomTrack.Y != 960 {
		t.Errorf("dual tracks = %v/%v, want 600/960", d.TopTrack.Y, d.BottomTrack.Y)
	}
}

func TestTogglePlatformInvert(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	f.ed.TogglePlatformInvert(p.ID)

	got, _ := f.ed.Layout().Platform(p.ID)
	if !got.IsInverted {
		t.Fatal("platform should be inverted")
	}
	if got.Track.Y != -10 || got.RestrictedZone.Y != 50 {
		t.Errorf("inverted track/buffer y = %v/%v, want -10/50", got.Track.Y, got.RestrictedZone.Y)
	}
	if got.StackTop() != -10 || got.StackBottom() != 200 {
		t.Errorf("stack = [%v, %v], want [-10, 200]", got.StackTop(), got.StackBottom())
	}
}

func TestToggleInvertIgnoresDualTrack(t *testing.T) {
	f := newFixture(t)
	d := f.ed.AddDualTrackPlatform()
	before := f.ed.Layout()
	n := f.ed.HistoryLen()

	f.ed.TogglePlatformInvert(d.ID)

	if diff := cmp.Diff(before, f.ed.Layout()); diff != "" {
		t.Errorf("layout changed (-before +after):\n%s", diff)
	}
	if f.ed.HistoryLen() != n {
		t.Errorf("HistoryLen = %d, want %d", f.ed.HistoryLen(), n)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	f := newFixture(t)
	f.ed.AddCompletePlatform()
	before := f.ed.Layout()
	n := f.ed.HistoryLen()

	f.ed.MovePlatform("ghost", 10, 10)
	f.ed.MoveTrack("ghost", 10, 10)
	f.ed.MoveRestrictedZone("ghost", 10, 10)
	f.ed.RemovePlatform("ghost")
	f.ed.ResizeShopZone("ghost", 100)
	f.ed.MoveGroup("ghost", 5, 5)
	f.ed.MoveInfrastructure("ghost", 1, 1)
	f.clock.Advance(time.Second)

	if diff := cmp.Diff(before, f.ed.Layout()); diff != "" {
		t.Errorf("layout changed (-before +after):\n%s", diff)
	}
	if f.ed.HistoryLen() != n {
		t.Errorf("HistoryLen = %d, want %d", f.ed.HistoryLen(), n)
	}
}

func TestMovePlatformMagneticSnap(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()
	b := f.ed.AddCompletePlatform()

	// a's bottom track edge lands 12 above b's top edge
	f.ed.MovePlatform(a.ID, a.X, b.Y-a.StackHeight()-12)

	l := f.ed.Layout()
	pa, _ := l.Platform(a.ID)
	pb, _ := l.Platform(b.ID)
	if pa.StackBottom() != pb.StackTop() {
		t.Errorf("gap = %v, want 0 (a bottom %v, b top %v)", pb.StackTop()-pa.StackBottom(), pa.StackBottom(), pb.StackTop())
	}
	if pa.Track.Y+pa.Track.Height != pa.StackBottom() {
		t.Error("embedded track did not follow the platform")
	}
}

func TestMovePlatformWithoutNeighbourKeepsPosition(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()

	f.ed.MovePlatform(a.ID, 400, 700)

	p, _ := f.ed.Layout().Platform(a.ID)
	if p.X != 400 || p.Y != 700 {
		t.Errorf("position = (%v, %v), want (400, 700)", p.X, p.Y)
	}
}

func TestMovesCoalesceIntoOneHistoryEntry(t *testing.T) {
	f := newFixture(t)
	tr := f.ed.AddTrack(0, 1000, 500)
	n := f.ed.HistoryLen()

	for i := 1; i <= 10; i++ {
		f.ed.MoveTrack(tr.ID, float64(i*30), 1000+float64(i*20))
		f.clock.Advance(20 * time.Millisecond)
	}
	if f.ed.HistoryLen() != n {
		t.Fatalf("HistoryLen during burst = %d, want %d", f.ed.HistoryLen(), n)
	}

	f.clock.Advance(500 * time.Millisecond)
	if f.ed.HistoryLen() != n+1 {
		t.Fatalf("HistoryLen after quiet period = %d, want %d", f.ed.HistoryLen(), n+1)
	}

	if !f.ed.Undo() {
		t.Fatal("Undo failed")
	}
	got, _ := f.ed.Layout().Track(tr.ID)
	if got.X != 0 || got.Y != 1000 {
		t.Errorf("after undo track at (%v, %v), want (0, 1000)", got.X, got.Y)
	}
}

func TestUndoFlushesPendingDrag(t *testing.T) {
	f := newFixture(t)
	tr := f.ed.AddTrack(0, 0, 500)
	f.ed.MoveTrack(tr.ID, 200, 300)

	if !f.ed.CanUndo() {
		t.Fatal("CanUndo should be true with a pending drag")
	}
	f.ed.Undo()
	got, _ := f.ed.Layout().Track(tr.ID)
	if got.X != 0 || got.Y != 0 {
		t.Errorf("after undo track at (%v, %v), want (0, 0)", got.X, got.Y)
	}

	f.ed.Redo()
	got, _ = f.ed.Layout().Track(tr.ID)
	if got.X != 200 || got.Y != 300 {
		t.Errorf("after redo track at (%v, %v), want (200, 300)", got.X, got.Y)
	}
}

func TestDragThenEditAreSeparateUndoSteps(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()
	f.ed.MovePlatform(a.ID, 400, 700)
	f.ed.AddCompletePlatform()

	if !f.ed.Undo() {
		t.Fatal("first Undo failed")
	}
	l := f.ed.Layout()
	if len(l.Platforms) != 1 {
		t.Fatalf("platforms after first undo = %d, want 1", len(l.Platforms))
	}
	if p, _ := l.Platform(a.ID); p.X != 400 || p.Y != 700 {
		t.Errorf("after first undo platform at (%v, %v), want (400, 700)", p.X, p.Y)
	}

	if !f.ed.Undo() {
		t.Fatal("second Undo failed")
	}
	if p, _ := f.ed.Layout().Platform(a.ID); p.X != a.X || p.Y != a.Y {
		t.Errorf("after second undo platform at (%v, %v), want (%v, %v)", p.X, p.Y, a.X, a.Y)
	}
}

func TestMoveTrackSnapsToEdge(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddTrack(0, 0, 500)
	b := f.ed.AddTrack(0, 200, 300)

	f.ed.MoveTrack(b.ID, 506, 4)

	got, _ := f.ed.Layout().Track(b.ID)
	if got.X != 500 || got.Y != 0 {
		t.Errorf("snapped to (%v, %v), want (500, 0) against %s", got.X, got.Y, a.ID)
	}
}

func TestMutationRefreshesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	before := f.ed.Layout().Metadata.UpdatedAt

	f.ed.AddRestrictedZone(0, 0, 100, 20)

	after := f.ed.Layout().Metadata.UpdatedAt
	if !after.After(before) {
		t.Errorf("UpdatedAt = %v, want after %v", after, before)
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	tr := f.ed.AddTrack(0, 900, 100)

	f.ed.Select(station.KindPlatform, p.ID)
	if f.ed.Selection().PlatformID != p.ID {
		t.Fatal("platform not selected")
	}
	f.ed.RemovePlatform(p.ID)
	if got := f.ed.Selection(); got != (Selection{}) {
		t.Errorf("Selection = %+v, want empty", got)
	}

	f.ed.Select(station.KindTrack, tr.ID)
	f.ed.RemoveTrack(tr.ID)
	if got := f.ed.Selection().TrackID; got != "" {
		t.Errorf("TrackID = %q, want empty", got)
	}
}

func TestSelectUnknownIDIgnored(t *testing.T) {
	f := newFixture(t)
	f.ed.Select(station.KindPlatform, "ghost")
	if got := f.ed.Selection(); got != (Selection{}) {
		t.Errorf("Selection = %+v, want empty", got)
	}
}

func TestUndoPrunesSelection(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	f.ed.Select(station.KindPlatform, p.ID)

	f.ed.Undo()
	if got := f.ed.Selection().PlatformID; got != "" {
		t.Errorf("PlatformID = %q after undoing its creation", got)
	}
}

func TestAddShopTooWideFails(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()

	_, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: 0, Width: 2000})
	if !errors.Is(err, ErrShopWidth) {
		t.Errorf("err = %v, want ErrShopWidth", err)
	}
	got, _ := f.ed.Layout().Platform(p.ID)
	if len(got.Shops) != 0 {
		t.Errorf("shops = %v, want none", got.Shops)
	}
}

func TestAddShopNoSpace(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	for i := 0; i < 3; i++ {
		if _, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: float64(i * 500), Width: 500}); err != nil {
			t.Fatalf("shop %d: %v", i, err)
		}
	}
	n := f.ed.HistoryLen()

	_, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: 0, Width: 50})
	if !errors.Is(err, ErrNoSpace) {
		t.Errorf("err = %v, want ErrNoSpace", err)
	}
	if f.ed.HistoryLen() != n {
		t.Error("failed add should not commit history")
	}
}

func TestAddShopWiderThanPlatform(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	n := f.ed.HistoryLen()

	_, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: 0, Width: 2000, MaxWidth: 3000})
	if !errors.Is(err, ErrNoSpace) {
		t.Errorf("err = %v, want ErrNoSpace", err)
	}
	got, _ := f.ed.Layout().Platform(p.ID)
	if len(got.Shops) != 0 {
		t.Errorf("shops = %v, want none", got.Shops)
	}
	if f.ed.HistoryLen() != n {
		t.Errorf("HistoryLen = %d, want %d", f.ed.HistoryLen(), n)
	}
}

func TestAddShopUnknownPlatform(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ed.AddShopZone("ghost", station.ShopZone{Width: 100}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddShopRelocatesAroundInfrastructure(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	// platform-relative [200, 280) across the body
	if _, err := f.ed.AddInfrastructure(station.InfraEntrance, p.X+200, p.Y+20); err != nil {
		t.Fatal(err)
	}

	s, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: 180, Width: 100})
	if err != nil {
		t.Fatalf("AddShopZone: %v", err)
	}
	if s.X != 0 {
		t.Errorf("relocated x = %v, want 0", s.X)
	}
	if s.MinWidth != 50 || s.MaxWidth != 500 || s.Category != "general" {
		t.Errorf("defaults not applied: %+v", s)
	}
}

func TestAddShopIgnoresInfrastructureOffTheBody(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	if _, err := f.ed.AddInfrastructure(station.InfraEntrance, p.X+200, p.StackBottom()+100); err != nil {
		t.Fatal(err)
	}

	s, err := f.ed.AddShopZone(p.ID, station.ShopZone{X: 180, Width: 100})
	if err != nil {
		t.Fatalf("AddShopZone: %v", err)
	}
	if s.X != 180 {
		t.Errorf("x = %v, want 180 unchanged", s.X)
	}
}

func TestResizeShopShiftsFollowingShops(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	a, _ := f.ed.AddShopZone(p.ID, station.ShopZone{X: 0, Width: 100})
	b, _ := f.ed.AddShopZone(p.ID, station.ShopZone{X: 100, Width: 100})
	c, _ := f.ed.AddShopZone(p.ID, station.ShopZone{X: 300, Width: 100})

	f.ed.ResizeShopZone(a.ID, 150)

	got, _ := f.ed.Layout().Platform(p.ID)
	xs := map[string]float64{}
	for _, s := range got.Shops {
		xs[s.ID] = s.X
	}
	want := map[string]float64{a.ID: 0, b.ID: 150, c.ID: 350}
	if diff := cmp.Diff(want, xs); diff != "" {
		t.Errorf("shop x mismatch (-want +got):\n%s", diff)
	}
}

func TestResizeShopClampsWidth(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	s, _ := f.ed.AddShopZone(p.ID, station.ShopZone{Width: 100})

	f.ed.ResizeShopZone(s.ID, 900)
	_, got, _ := f.ed.Layout().ShopOwner(s.ID)
	if got.Width != 500 {
		t.Errorf("Width = %v, want clamped 500", got.Width)
	}

	f.ed.ResizeShopZone(s.ID, 10)
	_, got, _ = f.ed.Layout().ShopOwner(s.ID)
	if got.Width != 50 {
		t.Errorf("Width = %v, want clamped 50", got.Width)
	}
}

func TestShopsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	rng := rand.New(rand.NewSource(7))

	var ids []string
	for step := 0; step < 200; step++ {
		if len(ids) == 0 || rng.Intn(3) > 0 {
			s, err := f.ed.AddShopZone(p.ID, station.ShopZone{
				X:     float64(rng.Intn(1500)),
				Width: float64(50 + rng.Intn(250)),
			})
			if err == nil {
				ids = append(ids, s.ID)
			} else if !errors.Is(err, ErrNoSpace) {
				t.Fatalf("step %d: %v", step, err)
			}
		} else {
			f.ed.ResizeShopZone(ids[rng.Intn(len(ids))], float64(50+rng.Intn(450)))
		}

		got, _ := f.ed.Layout().Platform(p.ID)
		shops := got.Shops
		sort.Slice(shops, func(i, j int) bool { return shops[i].X < shops[j].X })
		for i := 1; i < len(shops); i++ {
			if shops[i-1].Span().Overlaps(shops[i].Span()) {
				t.Fatalf("step %d: %s [%v,%v) overlaps %s [%v,%v)", step,
					shops[i-1].ID, shops[i-1].X, shops[i-1].X+shops[i-1].Width,
					shops[i].ID, shops[i].X, shops[i].X+shops[i].Width)
			}
		}
	}
}

func TestUpdateShopZone(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	s, _ := f.ed.AddShopZone(p.ID, station.ShopZone{Width: 100})

	alloc, vendor, rent := true, "v-9", 2500.0
	f.ed.UpdateShopZone(s.ID, ShopUpdate{IsAllocated: &alloc, VendorID: &vendor, Rent: &rent})
	rent = 1

	_, got, _ := f.ed.Layout().ShopOwner(s.ID)
	if !got.IsAllocated || got.VendorID != "v-9" || got.Rent == nil || *got.Rent != 2500 {
		t.Errorf("shop = %+v", got)
	}

	f.ed.UpdateShopZone(s.ID, ShopUpdate{ClearRent: true})
	_, got, _ = f.ed.Layout().ShopOwner(s.ID)
	if got.Rent != nil {
		t.Errorf("Rent = %v, want cleared", *got.Rent)
	}
}

func TestConnectorGeometry(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform() // stack 100..310, centre 205
	b := f.ed.AddCompletePlatform() // stack 350..560, centre 455

	tests := []struct {
		typ   station.InfrastructureType
		wantX float64
		wantW float64
	}{
		{station.InfraStaircase, 100 + 750 - 15, 30},
		{station.InfraElevator, 100 + 750 - 20, 40},
		{station.InfraFootOverBridge, 100 - 40 - connectorMargin, 40},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			blk, err := f.ed.AddConnectorInfrastructure(tt.typ, []string{a.ID, b.ID})
			if err != nil {
				t.Fatalf("AddConnectorInfrastructure: %v", err)
			}
			if blk.Position.X != tt.wantX || blk.Position.Y != 205 {
				t.Errorf("position = %+v, want (%v, 205)", blk.Position, tt.wantX)
			}
			if blk.Dimensions.Width != tt.wantW || blk.Dimensions.Height != 250 {
				t.Errorf("dimensions = %+v, want %vx250", blk.Dimensions, tt.wantW)
			}
			if !blk.IsConnector {
				t.Error("IsConnector = false")
			}
			if diff := cmp.Diff([]string{a.ID, b.ID}, blk.ConnectedPlatforms); diff != "" {
				t.Errorf("ConnectedPlatforms mismatch:\n%s", diff)
			}
		})
	}
}

func TestConnectorNeedsTwoPlatforms(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()

	_, err := f.ed.AddConnectorInfrastructure(station.InfraStaircase, []string{a.ID, a.ID, "ghost"})
	if !errors.Is(err, ErrTooFewPlatforms) {
		t.Errorf("err = %v, want ErrTooFewPlatforms", err)
	}
	if n := len(f.ed.Layout().InfrastructureBlocks); n != 0 {
		t.Errorf("blocks = %d, want 0", n)
	}

	_, err = f.ed.AddConnectorInfrastructure(station.InfraWashroom, []string{a.ID})
	if !errors.Is(err, ErrUnknownInfrastructure) {
		t.Errorf("err = %v, want ErrUnknownInfrastructure", err)
	}
}

func TestInfrastructureLock(t *testing.T) {
	f := newFixture(t)
	blk, err := f.ed.AddInfrastructure(station.InfraWashroom, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	f.ed.ToggleInfrastructureLock(blk.ID)

	f.ed.MoveInfrastructure(blk.ID, 500, 500)
	f.clock.Advance(time.Second)
	got, _ := f.ed.Layout().Block(blk.ID)
	if got.Position.X != 10 || got.Position.Y != 10 {
		t.Errorf("locked block moved to %+v", got.Position)
	}
	if err := f.ed.RotateInfrastructure(blk.ID, 90); !errors.Is(err, ErrLocked) {
		t.Errorf("rotate err = %v, want ErrLocked", err)
	}
	if err := f.ed.RemoveInfrastructure(blk.ID); !errors.Is(err, ErrLocked) {
		t.Errorf("remove err = %v, want ErrLocked", err)
	}

	f.ed.ToggleInfrastructureLock(blk.ID)
	if err := f.ed.RotateInfrastructure(blk.ID, -90); err != nil {
		t.Fatal(err)
	}
	got, _ = f.ed.Layout().Block(blk.ID)
	if got.Rotation != 270 {
		t.Errorf("Rotation = %v, want 270", got.Rotation)
	}
}

func TestAddInfrastructureUnknownType(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ed.AddInfrastructure("monorail", 0, 0); !errors.Is(err, ErrUnknownInfrastructure) {
		t.Errorf("err = %v, want ErrUnknownInfrastructure", err)
	}
}

func TestMoveGroup(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	tr := f.ed.AddTrack(0, 900, 300)
	z := f.ed.AddRestrictedZone(0, 1000, 100, 20)
	shop, _ := f.ed.AddShopZone(p.ID, station.ShopZone{X: 40, Width: 100})
	blk, _ := f.ed.AddInfrastructure(station.InfraEntrance, p.X+600, p.Y+10)
	g := f.ed.CreateGroup("west", []string{p.ID, tr.ID, z.ID, blk.ID})

	f.ed.MoveGroup(g.ID, 25, -10)
	f.ed.Flush()

	l := f.ed.Layout()
	gp, _ := l.Platform(p.ID)
	gt, _ := l.Track(tr.ID)
	gz, _ := l.RestrictedZone(z.ID)
	gb, _ := l.Block(blk.ID)
	_, gs, _ := l.ShopOwner(shop.ID)

	if gp.X != p.X+25 || gp.Y != p.Y-10 || gp.Track.Y != p.Track.Y-10 {
		t.Errorf("platform at (%v, %v) track y %v", gp.X, gp.Y, gp.Track.Y)
	}
	if gt.X != 25 || gt.Y != 890 {
		t.Errorf("track at (%v, %v), want (25, 890)", gt.X, gt.Y)
	}
	if gz.X != 25 || gz.Y != 990 {
		t.Errorf("zone at (%v, %v), want (25, 990)", gz.X, gz.Y)
	}
	if gs.X != 40 {
		t.Errorf("shop relative x = %v, want 40", gs.X)
	}
	if gb.Position.X != p.X+600 || gb.Position.Y != p.Y+10 {
		t.Errorf("infrastructure moved to %+v", gb.Position)
	}
}

func TestMoveGroupRepeatedMemberMovesOnce(t *testing.T) {
	f := newFixture(t)
	tr := f.ed.AddTrack(0, 900, 300)
	g := f.ed.CreateGroup("dup", []string{tr.ID, tr.ID, ""})

	if diff := cmp.Diff([]string{tr.ID}, g.ElementIDs); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}

	f.ed.MoveGroup(g.ID, 10, 0)
	f.ed.Flush()

	got, _ := f.ed.Layout().Track(tr.ID)
	if got.X != 10 || got.Y != 900 {
		t.Errorf("track at (%v, %v), want (10, 900)", got.X, got.Y)
	}
}

func TestGroupLifecycle(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	g := f.ed.CreateGroup("  ", []string{p.ID, "not-yet"})
	if g.Name != "Group 1" {
		t.Errorf("Name = %q, want Group 1", g.Name)
	}

	f.ed.RenameGroup(g.ID, "north")
	groups := f.ed.GroupsFor(p.ID)
	if len(groups) != 1 || groups[0].Name != "north" {
		t.Fatalf("GroupsFor = %+v", groups)
	}

	f.ed.DeleteGroup(g.ID)
	if len(f.ed.GroupsFor(p.ID)) != 0 {
		t.Error("group still present after delete")
	}
	if _, ok := f.ed.Layout().Platform(p.ID); !ok {
		t.Error("deleting a group must keep its members")
	}
}

func TestRemovePlatformDropsGroupMembership(t *testing.T) {
	f := newFixture(t)
	p := f.ed.AddCompletePlatform()
	q := f.ed.AddCompletePlatform()
	g := f.ed.CreateGroup("pair", []string{p.ID, q.ID})

	f.ed.RemovePlatform(p.ID)

	got, _ := f.ed.Layout().Group(g.ID)
	if diff := cmp.Diff([]string{q.ID}, got.ElementIDs); diff != "" {
		t.Errorf("members mismatch:\n%s", diff)
	}
}

func TestViewState(t *testing.T) {
	f := newFixture(t)

	f.ed.SetZoom(12)
	if z := f.ed.View().Zoom; z != MaxZoom {
		t.Errorf("Zoom = %v, want %v", z, MaxZoom)
	}
	f.ed.SetZoom(0)
	if z := f.ed.View().Zoom; z != MinZoom {
		t.Errorf("Zoom = %v, want %v", z, MinZoom)
	}
	f.ed.Pan(10, -5)
	f.ed.Pan(5, 5)
	if p := f.ed.View().Pan; p.X != 15 || p.Y != 0 {
		t.Errorf("Pan = %+v, want (15, 0)", p)
	}
	if f.ed.ToggleGrid() {
		t.Error("grid should start shown and toggle off")
	}
}

func TestClearIsUndoable(t *testing.T) {
	f := newFixture(t)
	f.ed.AddCompletePlatform()
	f.ed.AddTrack(0, 0, 100)

	f.ed.Clear()
	l := f.ed.Layout()
	if len(l.Platforms) != 0 || len(l.Tracks) != 0 || l.StationID != "st1" {
		t.Errorf("after Clear: %d platforms, %d tracks, station %q", len(l.Platforms), len(l.Tracks), l.StationID)
	}

	f.ed.Undo()
	if got := f.ed.Layout(); len(got.Platforms) != 1 || len(got.Tracks) != 1 {
		t.Errorf("after undo: %d platforms, %d tracks", len(got.Platforms), len(got.Tracks))
	}
}

func TestExportLoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	a := f.ed.AddCompletePlatform()
	d := f.ed.AddDualTrackPlatform()
	f.ed.TogglePlatformInvert(a.ID)
	if _, err := f.ed.AddShopZone(a.ID, station.ShopZone{X: 100, Width: 120, Category: "food"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ed.AddShopZone(d.ID, station.ShopZone{X: 0, Width: 60, Category: "kiosk"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ed.AddConnectorInfrastructure(station.InfraUnderpass, []string{a.ID, d.ID}); err != nil {
		t.Fatal(err)
	}
	f.ed.AddTrack(0, 2000, 700)
	f.ed.CreateGroup("all", []string{a.ID, d.ID})

	data, err := f.ed.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	g := newFixture(t)
	if err := g.ed.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(f.ed.Layout(), g.ed.Layout(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-exported +loaded):\n%s", diff)
	}
	if g.ed.CanUndo() {
		t.Error("Load should reset history")
	}
}

func TestLoadLegacyDocument(t *testing.T) {
	f := newFixture(t)
	doc := `{"stationId":"old","tracks":[{"id":"t1","trackNumber":1,"platforms":[{"id":"p1","platformNumber":1}]}]}`

	if err := f.ed.Load([]byte(doc)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	l := f.ed.Layout()
	if len(l.Platforms) != 1 || l.Platforms[0].Track == nil || l.Platforms[0].Track.ID != "t1" {
		t.Fatalf("platforms = %+v", l.Platforms)
	}
	if len(l.Tracks) != 0 {
		t.Errorf("tracks = %+v, want none after upgrade", l.Tracks)
	}
	if got := numbers(l); !cmp.Equal(got, []int{1}) {
		t.Errorf("numbers = %v", got)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	f := newFixture(t)
	f.ed.AddCompletePlatform()
	if err := f.ed.Load([]byte("{")); err == nil {
		t.Fatal("expected error")
	}
	if len(f.ed.Layout().Platforms) != 1 {
		t.Error("failed load must keep the current layout")
	}
}

func TestLayoutReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.ed.AddCompletePlatform()

	l := f.ed.Layout()
	l.Platforms[0].X = 9999
	l.Platforms[0].Track.Y = 9999

	got := f.ed.Layout()
	if got.Platforms[0].X == 9999 || got.Platforms[0].Track.Y == 9999 {
		t.Error("Layout must not expose the live document")
	}
}
