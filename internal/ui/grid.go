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
	"strconv"
	"strings"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/timeline"
)

// FrameLabel formats the frame counter shown on every card.
func FrameLabel(frame int) string { return "FR: " + strconv.Itoa(frame) }

// Cell is a card's position in the section grid.
type Cell struct {
	Row  int
	Col  int
	Span int
}

// PlaceCells assigns grid cells row-major. Wide cards span two columns and
// wrap to the next row when they do not fit.
func PlaceCells(wide []bool, cols int) []Cell {
	if cols < 1 {
		cols = 1
	}
	out := make([]Cell, len(wide))
	row, col := 0, 0
	for i, w := range wide {
		span := 1
		if w && cols > 1 {
			span = 2
		}
		if col+span > cols {
			row++
			col = 0
		}
		out[i] = Cell{Row: row, Col: col, Span: span}
		col += span
		if col >= cols {
			row++
			col = 0
		}
	}
	return out
}

// RowCount returns the number of grid rows the cells occupy.
func RowCount(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c.Row+1 > n {
			n = c.Row + 1
		}
	}
	return n
}

// Span is a horizontal extent inside the timeline bar.
type Span struct {
	X float32
	W float32
}

// BarGeometry positions the timeline pieces for a bar of a given width.
type BarGeometry struct {
	Segmented bool
	Intro     Span
	Loop      Span
	Outro     Span
	Progress  Span
	Playhead  float32
}

// BarLayout converts a strip's percentages into bar coordinates.
func BarLayout(strip timeline.Strip, width float32) BarGeometry {
	if width < 0 {
		width = 0
	}
	at := func(pct float64) float32 { return width * float32(timeline.Clamp(pct)) / 100 }
	g := BarGeometry{Segmented: strip.Segmented}
	if strip.Segmented {
		p := strip.Proportions
		intro := at(p.IntroPct)
		loop := at(p.LoopPct)
		g.Intro = Span{X: 0, W: intro}
		g.Loop = Span{X: intro, W: loop}
		outroX := intro + loop
		if outroX > width {
			outroX = width
		}
		g.Outro = Span{X: outroX, W: width - outroX}
		g.Playhead = at(p.PlayheadPct)
		return g
	}
	g.Progress = Span{X: 0, W: at(strip.ProgressPct)}
	g.Playhead = g.Progress.W
	return g
}

// ParseHexColor reads "#RRGGBB" (the leading # is optional).
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

var (
	darkSurface  = color.RGBA{R: 17, G: 17, B: 17, A: 255}
	lightSurface = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	darkInk      = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	lightInk     = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	highlight    = color.RGBA{R: 120, G: 92, B: 255, A: 255}
)

// SurfaceColor is the animation backdrop. A configured background wins, then
// the theme decides.
func SurfaceColor(spec domain.AnimationSpec, light bool) color.RGBA {
	if c, ok := ParseHexColor(spec.Background); ok {
		return c
	}
	if light {
		return lightSurface
	}
	return darkSurface
}

// InkColor is the text color drawn on top of a surface.
func InkColor(surface color.RGBA) color.RGBA {
	lum := 299*int(surface.R) + 587*int(surface.G) + 114*int(surface.B)
	if lum > 128*1000 {
		return darkInk
	}
	return lightInk
}
