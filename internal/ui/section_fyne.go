//go:build fyne

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
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"lottiegrid/internal/config"
	"lottiegrid/internal/domain"
	"lottiegrid/internal/driver"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/playback"
)

const gridColumns = 3

// cardGrid lays cards out in a fixed number of columns; wide cards take two.
type cardGrid struct {
	cols int
	gap  float32
}

func (g *cardGrid) cells(objs []fyne.CanvasObject) []Cell {
	wide := make([]bool, len(objs))
	for i, o := range objs {
		if c, ok := o.(*AnimationCard); ok {
			wide[i] = c.Wide()
		}
	}
	return PlaceCells(wide, g.cols)
}

func (g *cardGrid) rowHeight(objs []fyne.CanvasObject) float32 {
	var h float32
	for _, o := range objs {
		if m := o.MinSize().Height; m > h {
			h = m
		}
	}
	return h
}

func (g *cardGrid) Layout(objs []fyne.CanvasObject, size fyne.Size) {
	cells := g.cells(objs)
	cols := float32(max(g.cols, 1))
	cellW := (size.Width - g.gap*(cols-1)) / cols
	rowH := g.rowHeight(objs)
	for i, o := range objs {
		c := cells[i]
		span := float32(c.Span)
		o.Move(fyne.NewPos(float32(c.Col)*(cellW+g.gap), float32(c.Row)*(rowH+g.gap)))
		o.Resize(fyne.NewSize(cellW*span+g.gap*(span-1), rowH))
	}
}

func (g *cardGrid) MinSize(objs []fyne.CanvasObject) fyne.Size {
	cols := float32(max(g.cols, 1))
	var cellW float32
	for _, o := range objs {
		if w := o.MinSize().Width; w > cellW {
			cellW = w
		}
	}
	rows := float32(RowCount(g.cells(objs)))
	rowH := g.rowHeight(objs)
	h := rows*rowH + g.gap*max(rows-1, 0)
	return fyne.NewSize(cellW*cols+g.gap*(cols-1), h)
}

var (
	descDark  = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	descLight = color.RGBA{R: 120, G: 92, B: 255, A: 255}
)

// sectionView is a titled group of cards. Theme notices from its cards
// restyle the description.
type sectionView struct {
	section domain.Section
	title   *widget.Label
	desc    *canvas.Text
	grid    *fyne.Container
	cancel  func()
}

func newSectionView(sec domain.Section, cards []*AnimationCard, themes *playback.ThemeBus, cols int) *sectionView {
	v := &sectionView{section: sec}
	v.title = widget.NewLabelWithStyle(sec.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.desc = canvas.NewText(sec.Description, descDark)
	v.desc.TextSize = 12
	if sec.Description == "" {
		v.desc.Hide()
	}
	objs := make([]fyne.CanvasObject, 0, len(cards))
	owned := make(map[string]bool, len(cards))
	for _, c := range cards {
		objs = append(objs, c)
		owned[c.ID()] = true
	}
	v.grid = container.New(&cardGrid{cols: cols, gap: 12}, objs...)
	if themes != nil {
		v.cancel = themes.Subscribe(func(n playback.ThemeNotice) {
			if owned[n.Card] {
				v.applyNotice(n)
			}
		})
	}
	return v
}

func (v *sectionView) applyNotice(n playback.ThemeNotice) {
	if n.Light {
		v.desc.Color = descLight
	} else {
		v.desc.Color = descDark
	}
	v.desc.Refresh()
}

func (v *sectionView) object() fyne.CanvasObject {
	return container.NewVBox(v.title, v.desc, v.grid, widget.NewSeparator())
}

func (v *sectionView) close() {
	if v.cancel != nil {
		v.cancel()
	}
}

// grid owns the cards, their controllers and the section views.
type grid struct {
	content  fyne.CanvasObject
	cards    []*AnimationCard
	ctrls    []*playback.Controller
	sections []*sectionView
	log      *slog.Logger
}

func newGrid(cfg config.AppConfig, cat domain.Catalog, host driver.Host, onError func(error)) *grid {
	g := &grid{log: applog.WithComponent("ui")}
	theme := domain.ThemeFromLight(cfg.General.LightTheme())
	themes := playback.NewThemeBus()
	box := container.NewVBox()
	for _, sec := range cat.Sections {
		cards := make([]*AnimationCard, 0, len(sec.Animations))
		for _, spec := range sec.Animations {
			card := NewAnimationCard(spec, theme)
			drv := driver.NewClockDriver(host, driver.Options{FallbackFPS: cfg.Playback.FallbackFPS})
			ctrl := playback.NewController(spec, drv, card, playback.Options{
				AssetRoot: cfg.Catalog.AssetRoot,
				Theme:     theme,
				Themes:    themes,
				OnError:   onError,
				Logger:    applog.WithComponent("playback"),
			})
			card.Bind(ctrl)
			cards = append(cards, card)
			g.cards = append(g.cards, card)
			g.ctrls = append(g.ctrls, ctrl)
		}
		sv := newSectionView(sec, cards, themes, gridColumns)
		g.sections = append(g.sections, sv)
		box.Add(sv.object())
	}
	g.content = box
	return g
}

func (g *grid) close() {
	for _, s := range g.sections {
		s.close()
	}
	for _, c := range g.ctrls {
		if err := c.Close(); err != nil {
			g.log.Warn("close controller", slog.Any("err", err))
		}
	}
}
