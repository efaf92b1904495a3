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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottiegrid/internal/config"
	"lottiegrid/internal/domain"
	"lottiegrid/internal/export"
	"lottiegrid/internal/playback"
)

const fixtureCatalog = `
sections:
  - title: Fixtures
    animations:
      - id: spin
        fileName: spin.json
        loopFrames: [2, 6]
      - id: pop
        fileName: pop.json
        animationType: playOnce
`

// writeFixtures lays out a catalog and asset root. The light variant of pop
// is missing on purpose.
func writeFixtures(t *testing.T) config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	doc := []byte(`{"v":"5.7.0","nm":"fixture","fr":100,"ip":0,"op":10,"w":64,"h":64,"layers":[]}`)
	files := []string{
		filepath.Join("assets", "Black", "spin.json"),
		filepath.Join("assets", "White", "spin.json"),
		filepath.Join("assets", "Black", "pop.json"),
	}
	for _, f := range files {
		p := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, doc, 0o644))
	}
	catPath := filepath.Join(dir, "grid.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(fixtureCatalog), 0o644))

	cfg := config.Defaults()
	cfg.Catalog.Path = catPath
	cfg.Catalog.AssetRoot = filepath.Join(dir, "assets")
	return cfg
}

func TestLoadCatalogFallsBackToDefault(t *testing.T) {
	cat, err := loadCatalog(config.Defaults())
	require.NoError(t, err)
	assert.Equal(t, 3, len(cat.Sections))

	_, ok := findCard(cat, "symbol-in-out-long")
	assert.True(t, ok)
	_, ok = findCard(cat, "nope")
	assert.False(t, ok)
}

func TestRunCheckReportsMissingVariant(t *testing.T) {
	cfg := writeFixtures(t)
	var out bytes.Buffer
	failed, err := runCheck(&out, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "FAIL  pop")
	assert.Contains(t, out.String(), "10 frames @ 100 fps")
	assert.Contains(t, out.String(), "4 assets checked, 1 failed")
}

func TestRunProbe(t *testing.T) {
	cfg := writeFixtures(t)
	var out bytes.Buffer
	require.NoError(t, runProbe(&out, filepath.Join(cfg.Catalog.AssetRoot, "Black", "spin.json")))
	assert.Contains(t, out.String(), "Name:   fixture")
	assert.Contains(t, out.String(), "Frames: 10")
	assert.Contains(t, out.String(), "Size:   64x64")

	assert.Error(t, runProbe(&out, filepath.Join(cfg.Catalog.AssetRoot, "missing.json")))
}

func TestRunDumpRoundTripsThroughLoad(t *testing.T) {
	cfg := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "dump.yaml")
	var msg bytes.Buffer
	require.NoError(t, runDump(&msg, cfg, out))
	assert.Contains(t, msg.String(), "Wrote 1 sections")

	cfg.Catalog.Path = out
	cat, err := loadCatalog(cfg)
	require.NoError(t, err)
	spin, ok := findCard(cat, "spin")
	require.True(t, ok)
	assert.Equal(t, &domain.LoopFrames{Start: 2, End: 6}, spin.Loop)
}

func TestParseSheetArgs(t *testing.T) {
	a, err := parseSheetArgs([]string{"--preset", "print", "out.pdf", "grid.yaml"})
	require.NoError(t, err)
	assert.Equal(t, sheetArgs{out: "out.pdf", catalog: "grid.yaml", preset: export.PresetPrint}, a)

	a, err = parseSheetArgs([]string{"out.png"})
	require.NoError(t, err)
	assert.Equal(t, export.PresetScreen, a.preset)

	_, err = parseSheetArgs(nil)
	assert.Error(t, err)
	_, err = parseSheetArgs([]string{"--bogus", "out.png"})
	assert.Error(t, err)
}

func TestRunSheetWritesSVG(t *testing.T) {
	cfg := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "sheet.svg")
	var msg bytes.Buffer
	require.NoError(t, runSheet(&msg, cfg, sheetArgs{out: out, preset: export.PresetScreen}))
	assert.Contains(t, msg.String(), "Wrote 2 cards")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	err = runSheet(&msg, cfg, sheetArgs{out: out, preset: "poster"})
	assert.Error(t, err)
}

func TestParseSimulateArgs(t *testing.T) {
	a, err := parseSimulateArgs([]string{"--hover", "500ms", "--light", "spin"})
	require.NoError(t, err)
	assert.Equal(t, "spin", a.card)
	assert.Equal(t, 500*time.Millisecond, a.hover)
	assert.True(t, a.light)
	assert.Equal(t, 30*time.Second, a.timeout)

	_, err = parseSimulateArgs([]string{"--hover", "500ms"})
	assert.Error(t, err)
	_, err = parseSimulateArgs([]string{"--timeout", "0s", "spin"})
	assert.Error(t, err)
}

func TestSimulatePlayOnceParksAfterLeave(t *testing.T) {
	cfg := writeFixtures(t)
	cat, err := loadCatalog(cfg)
	require.NoError(t, err)
	spec, ok := findCard(cat, "pop")
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var out bytes.Buffer
	st, err := simulate(ctx, &out, spec, simulation{
		AssetRoot:   cfg.Catalog.AssetRoot,
		Theme:       domain.Dark,
		FallbackFPS: 30,
		Hover:       30 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, playback.Parked, st.Phase)
	assert.Equal(t, 0, st.CurrentFrame)
	assert.Equal(t, 10, st.TotalFrames)
	assert.Contains(t, out.String(), "-- pointer enter")
	assert.Contains(t, out.String(), "-- pointer leave")
	assert.Contains(t, out.String(), "range 0-10")
	assert.Contains(t, out.String(), "highlight on")
}

func TestSimulateReportsLoadFailure(t *testing.T) {
	cfg := writeFixtures(t)
	cat, err := loadCatalog(cfg)
	require.NoError(t, err)
	spec, ok := findCard(cat, "pop")
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var out bytes.Buffer
	st, err := simulate(ctx, &out, spec, simulation{
		AssetRoot: cfg.Catalog.AssetRoot,
		Theme:     domain.Light,
		Hover:     time.Second,
	})
	var loadErr *playback.AssetLoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)
	assert.Equal(t, "pop", loadErr.Card)
	assert.Equal(t, playback.Idle, st.Phase)
}

func TestRunSimulateUnknownCard(t *testing.T) {
	cfg := writeFixtures(t)
	var out bytes.Buffer
	err := runSimulate(&out, cfg, simulateArgs{card: "ghost", hover: time.Millisecond, timeout: time.Second})
	assert.ErrorContains(t, err, `unknown card "ghost"`)
}
