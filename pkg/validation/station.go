package validation

import (
	"fmt"
	"sort"

	"github.com/railyard/stationlayout/pkg/station"
)

// ValidateWithStationData checks a layout against the platform count held in
// the station record. Every check runs; failures accumulate.
func ValidateWithStationData(l *station.StationLayout, expectedPlatformCount int) *Report {
	r := NewReport()

	if l == nil {
		r.AddError(Result{
			Level:   LevelStructure,
			Message: "layout is missing",
		})
		return r
	}

	validateTracksPresent(l, r)
	validatePlatformsPresent(l, r)
	validatePlatformCount(l, expectedPlatformCount, r)
	validateNumbering(l, expectedPlatformCount, r)

	return r
}

func validateTracksPresent(l *station.StationLayout, r *Report) {
	if l.HasAnyTrack() {
		return
	}
	r.AddError(Result{
		Level:       LevelStructure,
		Message:     "Layout must contain at least one track",
		Path:        "tracks",
		Expected:    "at least 1 standalone or platform track",
		Suggestions: []string{"Add a platform, which brings its own track"},
	})
}

func validatePlatformsPresent(l *station.StationLayout, r *Report) {
	if len(l.Platforms) > 0 {
		return
	}
	r.AddError(Result{
		Level:    LevelStructure,
		Message:  "Layout must contain at least one platform",
		Path:     "platforms",
		Expected: "at least 1 platform",
	})
}

func validatePlatformCount(l *station.StationLayout, expected int, r *Report) {
	actual := l.PlatformCount()
	if actual == expected {
		return
	}

	var msg, hint string
	if actual < expected {
		diff := expected - actual
		msg = fmt.Sprintf("Platform count mismatch: layout has %d platform(s) but the station has %d; %d short", actual, expected, diff)
		hint = fmt.Sprintf("Add %d more platform(s)", diff)
	} else {
		diff := actual - expected
		msg = fmt.Sprintf("Platform count mismatch: layout has %d platform(s) but the station has %d; %d too many", actual, expected, diff)
		hint = fmt.Sprintf("Remove %d platform(s)", diff)
	}
	r.AddError(Result{
		Level:       LevelStructure,
		Message:     msg,
		Path:        "platforms",
		ActualValue: actual,
		Expected:    fmt.Sprintf("%d", expected),
		Suggestions: []string{hint, "A dual-track platform counts as two platforms"},
	})
}

func validateNumbering(l *station.StationLayout, expected int, r *Report) {
	var nums []int
	for i := range l.Platforms {
		nums = append(nums, l.Platforms[i].Numbers()...)
	}
	sort.Ints(nums)

	if len(nums) > 0 && nums[0] != 1 {
		r.AddError(Result{
			Level:       LevelNumbering,
			Message:     fmt.Sprintf("Platform numbering must start at 1 (lowest is %d)", nums[0]),
			Path:        "platforms.platformNumber",
			ActualValue: nums[0],
			Expected:    "1",
		})
	}

	present := make(map[int]int, len(nums))
	for _, n := range nums {
		present[n]++
	}
	for n := 1; n <= expected; n++ {
		if present[n] == 0 {
			r.AddError(Result{
				Level:    LevelNumbering,
				Message:  fmt.Sprintf("Missing Platform %d", n),
				Path:     "platforms.platformNumber",
				Expected: fmt.Sprintf("platforms numbered 1 to %d", expected),
			})
		}
	}

	for i := 1; i < len(nums); i++ {
		switch {
		case nums[i] == nums[i-1]:
			r.AddError(Result{
				Level:       LevelNumbering,
				Message:     fmt.Sprintf("Platform %d is numbered more than once", nums[i]),
				Path:        "platforms.platformNumber",
				ActualValue: nums[i],
				Suggestions: []string{"A dual-track platform numbered n also uses n+1"},
			})
		case nums[i] != nums[i-1]+1:
			r.AddError(Result{
				Level:       LevelNumbering,
				Message:     fmt.Sprintf("Platform numbers are not consecutive: %d is followed by %d", nums[i-1], nums[i]),
				Path:        "platforms.platformNumber",
				ActualValue: fmt.Sprintf("%d..%d", nums[i-1], nums[i]),
			})
		}
	}
}
