package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoPlatforms = `{
  "stationId": "CEN",
  "stationName": "Central",
  "platforms": [
    {"id": "p1", "platformNumber": 1, "x": 100, "y": 100,
     "shops": [{"id": "s1", "x": 0, "width": 100, "isAllocated": true, "rent": 2500, "category": "food"}]},
    {"id": "p2", "platformNumber": 2, "x": 100, "y": 400}
  ]
}`

const legacy = `{
  "stationId": "OLD",
  "tracks": [
    {"id": "t1", "trackNumber": 1, "x": 50, "y": 300, "platforms": [{"id": "lp"}]}
  ]
}`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing layout: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	path := writeLayout(t, twoPlatforms)

	out, err := execute(t, "validate", path, "--expected", "2")
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Result: VALID") {
		t.Errorf("output missing VALID:\n%s", out)
	}

	out, err = execute(t, "validate", path, "--expected", "3")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("validate error = %v, want errInvalid", err)
	}
	for _, want := range []string{"Missing Platform 3", "Add 1 more platform(s)", "Result: INVALID"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateRequiresExpected(t *testing.T) {
	path := writeLayout(t, twoPlatforms)
	if _, err := execute(t, "validate", path); err == nil {
		t.Error("validate without --expected succeeded")
	}
}

func TestValidateMissingFile(t *testing.T) {
	if _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.json"), "-n", "1"); err == nil {
		t.Error("validate of missing file succeeded")
	}
}

func TestUpgradeCommand(t *testing.T) {
	out, err := execute(t, "upgrade", writeLayout(t, legacy))
	if err != nil {
		t.Fatalf("upgrade error = %v", err)
	}

	var doc struct {
		StationID string           `json:"stationId"`
		Tracks    []any            `json:"tracks"`
		Platforms []map[string]any `json:"platforms"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("upgrade output is not JSON: %v\n%s", err, out)
	}
	if doc.StationID != "OLD" {
		t.Errorf("stationId = %q, want OLD", doc.StationID)
	}
	if doc.Tracks == nil || len(doc.Tracks) != 0 {
		t.Errorf("tracks = %v, want []", doc.Tracks)
	}
	if len(doc.Platforms) != 1 {
		t.Fatalf("platforms = %d, want 1", len(doc.Platforms))
	}
	if n := doc.Platforms[0]["platformNumber"]; n != float64(1) {
		t.Errorf("platformNumber = %v, want 1", n)
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", writeLayout(t, twoPlatforms))
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var scene struct {
		Platforms []any `json:"platforms"`
		Shops     []any `json:"shops"`
	}
	if err := json.Unmarshal([]byte(out), &scene); err != nil {
		t.Fatalf("inspect output is not JSON: %v", err)
	}
	if len(scene.Platforms) != 2 || len(scene.Shops) != 1 {
		t.Errorf("scene = %d platforms, %d shops; want 2, 1", len(scene.Platforms), len(scene.Shops))
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := execute(t, "stats", writeLayout(t, twoPlatforms))
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	for _, want := range []string{"Shop Occupancy", "food", "1 allocated", "2.5K"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("server:\n  port: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", cfgPath, "stats", writeLayout(t, twoPlatforms)); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{2500, "2.5K"},
		{1_250_000, "1.25M"},
		{3_000_000_000, "3.00B"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlatformLabel(t *testing.T) {
	if got := platformLabel([]int{3, 4}); got != "3/4" {
		t.Errorf("platformLabel = %q, want 3/4", got)
	}
	if got := platformLabel([]int{1}); got != "1" {
		t.Errorf("platformLabel = %q, want 1", got)
	}
}
