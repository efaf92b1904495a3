/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"testing"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/timeline"
)

func TestFrameLabel(t *testing.T) {
	if got := FrameLabel(42); got != "FR: 42" {
		t.Fatalf("FrameLabel: got %q", got)
	}
}

func TestPlaceCells_WideWraps(t *testing.T) {
	cells := PlaceCells([]bool{false, false, true, false, true}, 3)
	want := []Cell{
		{Row: 0, Col: 0, Span: 1},
		{Row: 0, Col: 1, Span: 1},
		{Row: 1, Col: 0, Span: 2},
		{Row: 1, Col: 2, Span: 1},
		{Row: 2, Col: 0, Span: 2},
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d: got %+v want %+v", i, cells[i], want[i])
		}
	}
	if n := RowCount(cells); n != 3 {
		t.Fatalf("rows: got %d want 3", n)
	}
}

func TestPlaceCells_SingleColumn(t *testing.T) {
	cells := PlaceCells([]bool{true, false}, 0)
	if cells[0] != (Cell{Row: 0, Col: 0, Span: 1}) || cells[1] != (Cell{Row: 1, Col: 0, Span: 1}) {
		t.Fatalf("single column placement: %+v", cells)
	}
}

func TestBarLayout_Segmented(t *testing.T) {
	strip := timeline.Strip{Segmented: true, Proportions: timeline.Segmented(60, 120, 30, 90)}
	g := BarLayout(strip, 200)
	if g.Intro.W != 50 || g.Loop.X != 50 || g.Loop.W != 100 || g.Outro.X != 150 || g.Outro.W != 50 {
		t.Fatalf("segments: %+v", g)
	}
	if g.Playhead != 100 {
		t.Fatalf("playhead: got %v want 100", g.Playhead)
	}
}

func TestBarLayout_ProgressAndEmpty(t *testing.T) {
	g := BarLayout(timeline.Strip{ProgressPct: 25}, 80)
	if g.Segmented || g.Progress.W != 20 || g.Playhead != 20 {
		t.Fatalf("progress: %+v", g)
	}
	g = BarLayout(timeline.Strip{Segmented: true}, 80)
	if g.Intro.W != 0 || g.Loop.W != 0 || g.Outro.W != 80 || g.Playhead != 0 {
		t.Fatalf("neutral strip: %+v", g)
	}
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#EFEAFE")
	if !ok || c != (color.RGBA{R: 0xEF, G: 0xEA, B: 0xFE, A: 255}) {
		t.Fatalf("parse: %v %v", c, ok)
	}
	if _, ok := ParseHexColor("purple"); ok {
		t.Fatalf("expected failure for a color name")
	}
}

func TestSurfaceAndInk(t *testing.T) {
	themed := domain.AnimationSpec{FileName: "a.lottie"}
	if SurfaceColor(themed, false) != darkSurface || SurfaceColor(themed, true) != lightSurface {
		t.Fatalf("themed surface colors wrong")
	}
	pinned := domain.AnimationSpec{FileName: "b.lottie", Folder: "Unique", Background: "#EFEAFE"}
	if got := SurfaceColor(pinned, false); got.R != 0xEF {
		t.Fatalf("background color ignored: %v", got)
	}
	if InkColor(lightSurface) != darkInk || InkColor(darkSurface) != lightInk {
		t.Fatalf("ink must contrast with the surface")
	}
}
