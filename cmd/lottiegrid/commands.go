/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lottiegrid/internal/catalog"
	"lottiegrid/internal/config"
	"lottiegrid/internal/domain"
	"lottiegrid/internal/export"
	"lottiegrid/internal/lottie"
)

// loadCatalog reads the configured catalog file, or returns the built-in one.
func loadCatalog(cfg config.AppConfig) (domain.Catalog, error) {
	if p := strings.TrimSpace(cfg.Catalog.Path); p != "" {
		return catalog.Load(p)
	}
	return catalog.Default(), nil
}

func findCard(cat domain.Catalog, id string) (domain.AnimationSpec, bool) {
	for _, sec := range cat.Sections {
		for _, a := range sec.Animations {
			if a.ID == id {
				return a, true
			}
		}
	}
	return domain.AnimationSpec{}, false
}

// runCheck prints one line per probed asset and returns the number of failures.
func runCheck(w io.Writer, cfg config.AppConfig) (int, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return 0, err
	}
	rep, err := catalog.Check(context.Background(), cat, cfg.Catalog.AssetRoot, catalog.CheckOptions{})
	if err != nil {
		return 0, err
	}
	for _, r := range rep.Results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "FAIL  %-28s %-5s %v\n", r.Card, r.Theme, r.Err)
		case r.Warning != "":
			fmt.Fprintf(w, "WARN  %-28s %-5s %s\n", r.Card, r.Theme, r.Warning)
		default:
			fmt.Fprintf(w, "ok    %-28s %-5s %.0f frames @ %g fps\n", r.Card, r.Theme, r.Info.TotalFrames(), r.Info.FrameRate)
		}
	}
	fmt.Fprintf(w, "%d assets checked, %d failed\n", len(rep.Results), rep.Failed())
	return rep.Failed(), nil
}

func runProbe(w io.Writer, path string) error {
	info, err := lottie.ProbeFile(path)
	if err != nil {
		return err
	}
	if info.Name != "" {
		fmt.Fprintf(w, "Name:   %s\n", info.Name)
	}
	fmt.Fprintf(w, "Rate:   %g fps\n", info.FrameRate)
	fmt.Fprintf(w, "Range:  %g - %g\n", info.InPoint, info.OutPoint)
	fmt.Fprintf(w, "Frames: %.0f\n", info.TotalFrames())
	if info.Width > 0 && info.Height > 0 {
		fmt.Fprintf(w, "Size:   %dx%d\n", info.Width, info.Height)
	}
	return nil
}

// runDump writes the active catalog in file form, to out or w when out is empty.
func runDump(w io.Writer, cfg config.AppConfig, out string) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	data, err := catalog.Marshal(cat)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	fmt.Fprintf(w, "Wrote %d sections to %s\n", len(cat.Sections), out)
	return nil
}

type sheetArgs struct {
	out     string
	catalog string
	preset  export.PresetName
}

func parseSheetArgs(args []string) (sheetArgs, error) {
	fs := flag.NewFlagSet("sheet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	preset := fs.String("preset", string(export.PresetScreen), "screen or print")
	if err := fs.Parse(args); err != nil {
		return sheetArgs{}, fmt.Errorf("sheet: %w", err)
	}
	if fs.NArg() < 1 {
		return sheetArgs{}, errors.New("sheet requires <out>")
	}
	a := sheetArgs{out: fs.Arg(0), preset: export.PresetName(*preset)}
	if fs.NArg() > 1 {
		a.catalog = fs.Arg(1)
	}
	return a, nil
}

// runSheet probes frame counts from the dark (or pinned) variant of each card
// and writes the sheet. Cards whose asset cannot be read are drawn unprobed.
func runSheet(w io.Writer, cfg config.AppConfig, a sheetArgs) error {
	opt, err := export.PresetOptions(a.preset)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	rep, err := catalog.Check(context.Background(), cat, cfg.Catalog.AssetRoot, catalog.CheckOptions{})
	if err != nil {
		return err
	}
	totals := make(map[string]int, cat.Count())
	for _, r := range rep.Results {
		if r.Err == nil && r.Theme == domain.Dark {
			totals[r.Card] = int(r.Info.TotalFrames())
		}
	}
	s := export.BuildSheet("LottieGrid catalog", cat, totals, opt)
	if err := export.WriteFile(a.out, s); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %d cards to %s", len(s.Rows), a.out)
	if missing := cat.Count() - len(totals); missing > 0 {
		fmt.Fprintf(w, " (%d not probed)", missing)
	}
	fmt.Fprintln(w)
	return nil
}

type simulateArgs struct {
	card    string
	catalog string
	hover   time.Duration
	timeout time.Duration
	light   bool
}

func parseSimulateArgs(args []string) (simulateArgs, error) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	hover := fs.Duration("hover", 2*time.Second, "how long the pointer stays on the card")
	timeout := fs.Duration("timeout", 30*time.Second, "upper bound for the whole run")
	light := fs.Bool("light", false, "use the light variant")
	if err := fs.Parse(args); err != nil {
		return simulateArgs{}, fmt.Errorf("simulate: %w", err)
	}
	if fs.NArg() < 1 {
		return simulateArgs{}, errors.New("simulate requires <card>")
	}
	if *hover < 0 || *timeout <= 0 {
		return simulateArgs{}, errors.New("simulate: durations must be positive")
	}
	a := simulateArgs{card: fs.Arg(0), hover: *hover, timeout: *timeout, light: *light}
	if fs.NArg() > 1 {
		a.catalog = fs.Arg(1)
	}
	return a, nil
}

func runSimulate(w io.Writer, cfg config.AppConfig, a simulateArgs) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	spec, ok := findCard(cat, a.card)
	if !ok {
		return fmt.Errorf("unknown card %q", a.card)
	}
	theme := domain.ThemeFromLight(a.light || cfg.General.LightTheme())
	fmt.Fprintf(w, "%s (%s, %s) hover %s\n", spec.Title(), spec.Type, theme, a.hover)

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	st, err := simulate(ctx, w, spec, simulation{
		AssetRoot:   cfg.Catalog.AssetRoot,
		Theme:       theme,
		FallbackFPS: cfg.Playback.FallbackFPS,
		Hover:       a.hover,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "finished %s at frame %d of %d\n", st.Phase, st.CurrentFrame, st.TotalFrames)
	return nil
}
