package editor

import (
	"fmt"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// ShopUpdate carries the editable non-geometric shop fields. Nil fields are
// left unchanged.
type ShopUpdate struct {
	Category    *string
	IsAllocated *bool
	VendorID    *string
	Rent        *float64
	ClearRent   bool
	Notes       *string
}

// AddShopZone places a shop on a platform. A shop whose requested slot is
// off the platform or collides with another shop or with infrastructure
// crossing the platform body is moved to the first gap wide enough for it.
// The returned shop carries its final position.
func (e *Editor) AddShopZone(platformID string, shop station.ShopZone) (station.ShopZone, error) {
	err := e.apply(commitImmediate, func(l *station.StationLayout) error {
		p, ok := l.Platform(platformID)
		if !ok {
			return fmt.Errorf("adding shop to platform %s: %w", platformID, ErrNotFound)
		}

		e.fillShopDefaults(&shop)
		if !shop.WidthInRange() {
			return fmt.Errorf("adding %.0f-wide shop (allowed %.0f to %.0f): %w",
				shop.Width, shop.MinWidth, shop.MaxWidth, ErrShopWidth)
		}

		bounds := geo.Span(0, p.Length)
		blocked := blockedSpans(l, p)
		if !shop.Span().Within(bounds) || geo.AnyOverlap(shop.Span(), blocked) {
			x, ok := geo.FirstFit(bounds, blocked, shop.Width)
			if !ok {
				e.log.Warn("no space for shop",
					"platform_id", platformID,
					"width", shop.Width,
				)
				return fmt.Errorf("adding %.0f-wide shop to platform %d: %w", shop.Width, p.PlatformNumber, ErrNoSpace)
			}
			e.log.Debug("shop relocated", "platform_id", platformID, "from", shop.X, "to", x)
			shop.X = x
		}

		p.Shops = append(p.Shops, shop)
		return nil
	})
	if err != nil {
		return station.ShopZone{}, err
	}
	if shop.Rent != nil {
		r := *shop.Rent
		shop.Rent = &r
	}
	return shop, nil
}

func (e *Editor) fillShopDefaults(s *station.ShopZone) {
	g := e.settings.Geometry
	if s.ID == "" {
		s.ID = e.newID(station.PrefixShop)
	}
	if s.MinWidth <= 0 {
		s.MinWidth = g.ShopMinWidth
	}
	if s.MaxWidth <= 0 {
		s.MaxWidth = g.ShopMaxWidth
	}
	if s.Width <= 0 {
		s.Width = s.MinWidth
	}
	if s.Category == "" {
		s.Category = "general"
	}
	if s.Rent != nil {
		r := *s.Rent
		s.Rent = &r
	}
}

// blockedSpans returns the platform-relative x-ranges a new shop on p may
// not use: existing shops plus infrastructure whose footprint crosses the
// body's y-range.
func blockedSpans(l *station.StationLayout, p *station.Platform) []geo.Interval {
	body := p.BodyRect().YSpan()
	var blocked []geo.Interval
	for _, b := range l.InfrastructureBlocks {
		r := b.Bounds()
		if r.YSpan().Overlaps(body) {
			blocked = append(blocked, r.XSpan().Shift(-p.X))
		}
	}
	for _, s := range p.Shops {
		blocked = append(blocked, s.Span())
	}
	return blocked
}

// ResizeShopZone sets a shop's width, clamped to its allowed range, and
// shifts every shop to its right on the same platform by the change so the
// row stays packed.
func (e *Editor) ResizeShopZone(id string, width float64) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		p, s, ok := l.ShopOwner(id)
		if !ok {
			return errSkip
		}
		if width < s.MinWidth {
			width = s.MinWidth
		}
		if width > s.MaxWidth {
			width = s.MaxWidth
		}
		delta := width - s.Width
		if delta == 0 {
			return errSkip
		}

		start := s.X
		s.Width = width
		for i := range p.Shops {
			if p.Shops[i].ID != id && p.Shops[i].X > start {
				p.Shops[i].X += delta
			}
		}
		return nil
	})
}

// RemoveShopZone deletes a shop.
func (e *Editor) RemoveShopZone(id string) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		p, _, ok := l.ShopOwner(id)
		if !ok {
			return errSkip
		}
		out := p.Shops[:0]
		for _, s := range p.Shops {
			if s.ID != id {
				out = append(out, s)
			}
		}
		p.Shops = out
		return nil
	})
}

// UpdateShopZone edits a shop's allocation and descriptive fields.
func (e *Editor) UpdateShopZone(id string, u ShopUpdate) {
	_ = e.apply(commitImmediate, func(l *station.StationLayout) error {
		_, s, ok := l.ShopOwner(id)
		if !ok {
			return errSkip
		}
		if u.Category != nil {
			s.Category = *u.Category
		}
		if u.IsAllocated != nil {
			s.IsAllocated = *u.IsAllocated
		}
		if u.VendorID != nil {
			s.VendorID = *u.VendorID
		}
		if u.ClearRent {
			s.Rent = nil
		} else if u.Rent != nil {
			r := *u.Rent
			s.Rent = &r
		}
		if u.Notes != nil {
			s.Notes = *u.Notes
		}
		return nil
	})
}
