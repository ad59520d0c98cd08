package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/railyard/stationlayout/pkg/occupancy"
	"github.com/railyard/stationlayout/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, e validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
	if e.Path != "" {
		if e.ActualValue != nil {
			fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
		} else {
			fmt.Fprintf(w, "    -> %s\n", e.Path)
		}
	}
	if e.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", e.Expected)
	}
	if e.ConflictWith != "" {
		fmt.Fprintf(w, "    conflicts with: %s\n", e.ConflictWith)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printOccupancyReport(w io.Writer, r *occupancy.Report) {
	fmt.Fprintln(w, "Shop Occupancy")
	fmt.Fprintln(w, "==============")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-10s %6s %9s %10s %10s %8s %12s\n",
		"Platform", "Shops", "Allocated", "Frontage", "Used", "Ratio", "Rent/month")
	fmt.Fprintf(w, "%-10s %6s %9s %10s %10s %8s %12s\n",
		"----------", "------", "---------", "----------", "----------", "--------", "------------")
	for _, p := range r.Platforms {
		fmt.Fprintf(w, "%-10s %6d %9d %10.0f %10.0f %7.1f%% %12s\n",
			platformLabel(p.Numbers), p.Shops, p.Allocated,
			p.UsableFrontage, p.FrontageUsed, p.FrontageRatio*100, formatMoney(p.MonthlyRent))
	}

	if len(r.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-16s %6s %9s %12s\n", "Category", "Shops", "Allocated", "Rent/month")
		names := make([]string, 0, len(r.Categories))
		for name := range r.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := r.Categories[name]
			fmt.Fprintf(w, "%-16s %6d %9d %12s\n", name, c.Shops, c.Allocated, formatMoney(c.MonthlyRent))
		}
	}

	s := r.Summary
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  Shops:               %d (%d allocated, %d vacant)\n", s.TotalShops, s.Allocated, s.Vacant)
	fmt.Fprintf(w, "  Occupancy rate:      %.1f%%\n", s.OccupancyRate*100)
	fmt.Fprintf(w, "  Frontage used:       %.0f of %.0f\n", s.FrontageUsed, s.UsableFrontage)
	fmt.Fprintf(w, "  Rent per month:      %s\n", formatMoney(s.MonthlyRent))
	fmt.Fprintf(w, "  Rent per year:       %s\n", formatMoney(s.AnnualRent))
	fmt.Fprintf(w, "  Avg rent per shop:   %s\n", formatMoney(s.AvgRentPerShop))
}

// platformLabel renders platform numbers as "1" or "3/4".
func platformLabel(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "/")
}

func formatMoney(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
