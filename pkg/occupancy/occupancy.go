// Package occupancy summarizes shop allocation and rent across a station
// layout's platforms.
package occupancy

import (
	"sort"

	"github.com/railyard/stationlayout/pkg/geo"
	"github.com/railyard/stationlayout/pkg/station"
)

// MonthsPerYear converts the monthly rent roll to an annual figure.
const MonthsPerYear = 12.0

// PlatformSummary is the occupancy of one platform.
type PlatformSummary struct {
	PlatformID     string  `json:"platform_id"`
	Numbers        []int   `json:"numbers"`
	Shops          int     `json:"shops"`
	Allocated      int     `json:"allocated"`
	Length         float64 `json:"length"`
	UsableFrontage float64 `json:"usable_frontage"`
	FrontageUsed   float64 `json:"frontage_used"`
	FrontageRatio  float64 `json:"frontage_ratio"`
	MonthlyRent    float64 `json:"monthly_rent"`
}

// CategorySummary aggregates shops of one category.
type CategorySummary struct {
	Shops       int     `json:"shops"`
	Allocated   int     `json:"allocated"`
	MonthlyRent float64 `json:"monthly_rent"`
}

// Report is the complete occupancy output.
type Report struct {
	Platforms  []PlatformSummary          `json:"platforms"`
	Categories map[string]CategorySummary `json:"categories"`

	Summary struct {
		TotalShops     int     `json:"total_shops"`
		Allocated      int     `json:"allocated"`
		Vacant         int     `json:"vacant"`
		OccupancyRate  float64 `json:"occupancy_rate"`
		UsableFrontage float64 `json:"usable_frontage"`
		FrontageUsed   float64 `json:"frontage_used"`
		MonthlyRent    float64 `json:"monthly_rent"`
		AnnualRent     float64 `json:"annual_rent"`
		AvgRentPerShop float64 `json:"avg_rent_per_allocated_shop"`
	} `json:"summary"`
}

// Summarize computes per-platform and station-wide occupancy. Rent counts
// only allocated shops with a rent set. Usable frontage is the platform
// length not crossed by infrastructure. A nil layout yields an empty report.
func Summarize(l *station.StationLayout) *Report {
	if l == nil {
		return &Report{
			Platforms:  []PlatformSummary{},
			Categories: make(map[string]CategorySummary),
		}
	}
	r := &Report{
		Platforms:  make([]PlatformSummary, 0, len(l.Platforms)),
		Categories: make(map[string]CategorySummary),
	}

	for i := range l.Platforms {
		p := &l.Platforms[i]
		ps := PlatformSummary{
			PlatformID:     p.ID,
			Numbers:        p.Numbers(),
			Shops:          len(p.Shops),
			Length:         p.Length,
			UsableFrontage: usableFrontage(l, p),
		}
		for _, s := range p.Shops {
			ps.FrontageUsed += s.Width
			cat := r.Categories[s.Category]
			cat.Shops++
			if s.IsAllocated {
				ps.Allocated++
				cat.Allocated++
				if s.Rent != nil {
					ps.MonthlyRent += *s.Rent
					cat.MonthlyRent += *s.Rent
				}
			}
			r.Categories[s.Category] = cat
		}
		if ps.UsableFrontage > 0 {
			ps.FrontageRatio = ps.FrontageUsed / ps.UsableFrontage
		}

		r.Summary.TotalShops += ps.Shops
		r.Summary.Allocated += ps.Allocated
		r.Summary.UsableFrontage += ps.UsableFrontage
		r.Summary.FrontageUsed += ps.FrontageUsed
		r.Summary.MonthlyRent += ps.MonthlyRent
		r.Platforms = append(r.Platforms, ps)
	}

	sort.Slice(r.Platforms, func(i, j int) bool {
		return r.Platforms[i].Numbers[0] < r.Platforms[j].Numbers[0]
	})

	r.Summary.Vacant = r.Summary.TotalShops - r.Summary.Allocated
	if r.Summary.TotalShops > 0 {
		r.Summary.OccupancyRate = float64(r.Summary.Allocated) / float64(r.Summary.TotalShops)
	}
	if r.Summary.Allocated > 0 {
		r.Summary.AvgRentPerShop = r.Summary.MonthlyRent / float64(r.Summary.Allocated)
	}
	r.Summary.AnnualRent = r.Summary.MonthlyRent * MonthsPerYear
	return r
}

func usableFrontage(l *station.StationLayout, p *station.Platform) float64 {
	body := p.BodyRect().YSpan()
	var blocked []geo.Interval
	for _, b := range l.InfrastructureBlocks {
		r := b.Bounds()
		if r.YSpan().Overlaps(body) {
			blocked = append(blocked, r.XSpan().Shift(-p.X))
		}
	}
	total := 0.0
	for _, g := range geo.Gaps(geo.Span(0, p.Length), blocked) {
		total += g.Length()
	}
	return total
}
