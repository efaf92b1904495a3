/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"image/color"
	"strconv"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/timeline"
)

// Options controls sheet rendering. The theme picks the palette; Guides adds a
// tick every tenth of the timeline.
type Options struct {
	Theme  domain.Theme
	Guides bool
}

// Palette holds the sheet colors for one theme.
type Palette struct {
	Background color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Track      color.RGBA
	Intro      color.RGBA
	Loop       color.RGBA
	Outro      color.RGBA
	Linear     color.RGBA
}

// PaletteFor returns the palette of a theme.
func PaletteFor(t domain.Theme) Palette {
	if t == domain.Light {
		return Palette{
			Background: color.RGBA{255, 255, 255, 255},
			Text:       color.RGBA{17, 17, 17, 255},
			Muted:      color.RGBA{110, 110, 110, 255},
			Track:      color.RGBA{230, 230, 230, 255},
			Intro:      color.RGBA{120, 144, 255, 255},
			Loop:       color.RGBA{64, 190, 120, 255},
			Outro:      color.RGBA{255, 140, 90, 255},
			Linear:     color.RGBA{120, 120, 120, 255},
		}
	}
	return Palette{
		Background: color.RGBA{17, 17, 17, 255},
		Text:       color.RGBA{240, 240, 240, 255},
		Muted:      color.RGBA{150, 150, 150, 255},
		Track:      color.RGBA{48, 48, 48, 255},
		Intro:      color.RGBA{90, 110, 230, 255},
		Loop:       color.RGBA{40, 160, 96, 255},
		Outro:      color.RGBA{230, 110, 60, 255},
		Linear:     color.RGBA{180, 180, 180, 255},
	}
}

// Row is one card on the sheet. Total is 0 when the asset could not be probed.
type Row struct {
	Section  string
	Card     string
	Title    string
	Type     domain.AnimationType
	Feedback string
	Total    int
	Loop     domain.LoopFrames
	Strip    timeline.Strip
}

// Sheet is a printable overview of a catalog's timelines.
type Sheet struct {
	Title   string
	Options Options
	Rows    []Row
}

// BuildSheet lays out one row per card. totals maps card ids to frame counts.
func BuildSheet(title string, cat domain.Catalog, totals map[string]int, opt Options) Sheet {
	s := Sheet{Title: title, Options: opt}
	for _, sec := range cat.Sections {
		for _, a := range sec.Animations {
			total := totals[a.ID]
			s.Rows = append(s.Rows, Row{
				Section:  sec.Title,
				Card:     a.ID,
				Title:    a.Title(),
				Type:     a.Type,
				Feedback: a.Feedback,
				Total:    total,
				Loop:     a.LoopBounds().Clamp(total),
				Strip:    timeline.ForSpec(a, 0, total),
			})
		}
	}
	return s
}

// Sheet geometry in output units (pixels for PNG, points for PDF and SVG).
const (
	sheetWidth = 960.0
	margin     = 24.0
	titleH     = 40.0
	sectionH   = 30.0
	rowH       = 34.0
	labelW     = 300.0
	barH       = 12.0
)

type blockKind int

const (
	blockSection blockKind = iota
	blockRow
)

type block struct {
	kind blockKind
	y    float64
	text string
	row  Row
}

type segRect struct {
	x, w float64
	col  color.RGBA
}

// layout positions section headers and rows top to bottom and returns the
// total sheet height.
func (s Sheet) layout() ([]block, float64) {
	var out []block
	y := margin + titleH
	section := ""
	for i, r := range s.Rows {
		if i == 0 || r.Section != section {
			section = r.Section
			out = append(out, block{kind: blockSection, y: y, text: section})
			y += sectionH
		}
		out = append(out, block{kind: blockRow, y: y, row: r})
		y += rowH
	}
	return out, y + margin
}

// barX and barW give the horizontal extent of every timeline bar.
func barX() float64 { return margin + labelW }
func barW() float64 { return sheetWidth - barX() - margin - 60 }

// segments splits a row's bar into colored pieces. Unprobed rows get an empty track.
func segments(r Row, p Palette) []segRect {
	x, w := barX(), barW()
	if r.Total <= 0 {
		return []segRect{{x: x, w: w, col: p.Track}}
	}
	if !r.Strip.Segmented {
		return []segRect{{x: x, w: w, col: p.Linear}}
	}
	pr := r.Strip.Proportions
	intro := w * pr.IntroPct / 100
	loop := w * pr.LoopPct / 100
	outro := w - intro - loop
	out := make([]segRect, 0, 3)
	for _, sr := range []segRect{
		{x: x, w: intro, col: p.Intro},
		{x: x + intro, w: loop, col: p.Loop},
		{x: x + intro + loop, w: outro, col: p.Outro},
	} {
		if sr.w > 0 {
			out = append(out, sr)
		}
	}
	return out
}

// rowCaption is the text under the title: type, frames and loop window.
func rowCaption(r Row) string {
	s := r.Type.String()
	if r.Total > 0 {
		s += " | " + strconv.Itoa(r.Total) + " frames"
	} else {
		s += " | not probed"
	}
	if r.Type == domain.Loop && !r.Loop.Degenerate() {
		s += " | loop " + strconv.Itoa(r.Loop.Start) + "-" + strconv.Itoa(r.Loop.End)
	}
	return s
}
