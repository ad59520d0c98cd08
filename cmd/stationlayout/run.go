package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/railyard/stationlayout/internal/config"
	"github.com/railyard/stationlayout/internal/logging"
	"github.com/railyard/stationlayout/internal/server"
	"github.com/railyard/stationlayout/pkg/occupancy"
	"github.com/railyard/stationlayout/pkg/scene2d"
	"github.com/railyard/stationlayout/pkg/station"
	"github.com/railyard/stationlayout/pkg/validation"
	"github.com/railyard/stationlayout/pkg/wire"
)

// loadLayout reads a layout document in either shape using the configured
// geometry defaults.
func loadLayout(configPath, path string) (*station.StationLayout, wire.Shape, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, wire.ShapeEmpty, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wire.ShapeEmpty, fmt.Errorf("reading layout: %w", err)
	}
	l, shape, err := wire.Load(data, wire.Options{
		Defaults: cfg.Defaults,
		Legacy:   cfg.Legacy,
		NewID:    station.NewID,
		Now:      time.Now().UTC(),
		Spacing:  cfg.Editor.PlatformSpacing,
	})
	if err != nil {
		return nil, wire.ShapeEmpty, fmt.Errorf("loading %s: %w", path, err)
	}
	return l, shape, nil
}

func runValidate(w io.Writer, configPath, path string, expected int) error {
	l, _, err := loadLayout(configPath, path)
	if err != nil {
		return err
	}

	report := validation.ValidateWithStationData(l, expected)
	integrity := validation.ValidateIntegrity(l)

	printValidationReport(w, report)
	if len(integrity.Errors)+len(integrity.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Integrity")
		fmt.Fprintln(w, "---------")
		printValidationReport(w, integrity)
	}

	if !report.Valid || !integrity.Valid {
		return errInvalid
	}
	return nil
}

func runUpgrade(w io.Writer, configPath, path string) error {
	l, shape, err := loadLayout(configPath, path)
	if err != nil {
		return err
	}
	data, err := wire.Export(l)
	if err != nil {
		return err
	}
	if shape == wire.ShapeLegacy {
		logging.Default().Info("upgraded legacy layout", "file", path, "platforms", len(l.Platforms))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runInspect(w io.Writer, configPath, path string) error {
	l, _, err := loadLayout(configPath, path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scene2d.Flatten(l))
}

func runStats(w io.Writer, configPath, path string) error {
	l, _, err := loadLayout(configPath, path)
	if err != nil {
		return err
	}
	printOccupancyReport(w, occupancy.Summarize(l))
	return nil
}

func runServe(ctx context.Context, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	log := logging.New(cfg.Logging, version)
	srv, err := server.New(server.Deps{Config: cfg, Logger: log, Version: version})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
