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
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/playback"
	"lottiegrid/internal/timeline"
)

var _ playback.View = (*AnimationCard)(nil)

// AnimationCard shows one animation: title, feedback note, the animation
// surface with its frame counter, the timeline bar and the theme toggle.
type AnimationCard struct {
	widget.BaseWidget
	spec  domain.AnimationSpec
	ctrl  *playback.Controller
	light bool

	outline   *canvas.Rectangle
	surface   *canvas.Rectangle
	counter   *canvas.Text
	title     *widget.Label
	feedback  *widget.Label
	bar       *TimelineBar
	startLbl  *widget.Label
	endLbl    *widget.Label
	loopLbl   *widget.Label
	toggle    *widget.Check
	hover     *hoverArea
	content   fyne.CanvasObject
	onPointer func(in bool)
}

// NewAnimationCard builds the card widgets. Bind attaches the controller that
// drives them.
func NewAnimationCard(spec domain.AnimationSpec, theme domain.Theme) *AnimationCard {
	c := &AnimationCard{spec: spec, light: theme == domain.Light}

	c.outline = canvas.NewRectangle(color.Transparent)
	c.outline.StrokeWidth = 2
	c.outline.CornerRadius = 6

	c.surface = canvas.NewRectangle(SurfaceColor(spec, c.light))
	c.surface.CornerRadius = 4
	c.surface.SetMinSize(fyne.NewSize(220, 160))
	c.counter = canvas.NewText(FrameLabel(0), InkColor(SurfaceColor(spec, c.light)))
	c.counter.TextSize = 11
	c.counter.TextStyle = fyne.TextStyle{Monospace: true}

	c.title = widget.NewLabelWithStyle(spec.Title(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	c.feedback = widget.NewLabelWithStyle(spec.Feedback, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	c.feedback.Importance = widget.LowImportance
	if spec.Feedback == "" {
		c.feedback.Hide()
	}

	c.bar = NewTimelineBar()
	c.startLbl = widget.NewLabel("0")
	c.endLbl = widget.NewLabel("0")
	c.loopLbl = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	c.loopLbl.Importance = widget.LowImportance
	c.loopLbl.Hide()

	c.toggle = widget.NewCheck("Light", nil)
	c.toggle.Checked = c.light
	c.toggle.OnChanged = func(on bool) {
		if c.ctrl != nil {
			c.ctrl.SetLight(on)
		}
	}
	if spec.ThemeIndependent() {
		c.toggle.Hide()
	}

	stage := container.NewStack(c.surface, container.NewPadded(container.NewVBox(c.counter)))
	labels := container.NewBorder(nil, nil, c.startLbl, c.endLbl, c.loopLbl)
	c.hover = newHoverArea(container.NewVBox(stage, c.bar, labels), func() { c.pointer(true) }, func() { c.pointer(false) })

	body := container.NewVBox(c.title, c.feedback, c.hover, c.toggle)
	c.content = container.NewStack(c.outline, container.NewPadded(body))
	c.ExtendBaseWidget(c)
	return c
}

// Bind attaches the controller receiving pointer and toggle events.
func (c *AnimationCard) Bind(ctrl *playback.Controller) { c.ctrl = ctrl }

func (c *AnimationCard) Spec() domain.AnimationSpec { return c.spec }

// ID is the card identifier used by theme notices.
func (c *AnimationCard) ID() string {
	if c.ctrl != nil {
		return c.ctrl.Card()
	}
	return c.spec.ID
}

// Wide reports whether the card spans two grid columns.
func (c *AnimationCard) Wide() bool { return c.spec.Wide }

func (c *AnimationCard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.content)
}

func (c *AnimationCard) pointer(in bool) {
	if c.onPointer != nil {
		c.onPointer(in)
	}
	if c.ctrl == nil {
		return
	}
	if in {
		c.ctrl.PointerEnter()
	} else {
		c.ctrl.PointerLeave()
	}
}

func (c *AnimationCard) SetFrameCounter(frame int) {
	if c.counter == nil {
		return
	}
	c.counter.Text = FrameLabel(frame)
	c.counter.Refresh()
}

func (c *AnimationCard) SetFrameRange(start, end int) {
	if c.startLbl != nil {
		c.startLbl.SetText(strconv.Itoa(start))
	}
	if c.endLbl != nil {
		c.endLbl.SetText(strconv.Itoa(end))
	}
}

func (c *AnimationCard) SetSegmentLabels(loopStart, loopEnd int) {
	if c.loopLbl == nil {
		return
	}
	if loopEnd <= loopStart {
		c.loopLbl.Hide()
		return
	}
	c.loopLbl.SetText(fmt.Sprintf("loop %d-%d", loopStart, loopEnd))
	c.loopLbl.Show()
}

func (c *AnimationCard) SetTimeline(strip timeline.Strip, showPlayhead bool) {
	if c.bar == nil {
		return
	}
	c.bar.SetStrip(strip, showPlayhead)
}

func (c *AnimationCard) SetActive(on bool) {
	if c.outline == nil {
		return
	}
	if on {
		c.outline.StrokeColor = highlight
	} else {
		c.outline.StrokeColor = color.Transparent
	}
	c.outline.Refresh()
}

func (c *AnimationCard) SetLightMode(light bool) {
	c.light = light
	fill := SurfaceColor(c.spec, light)
	if c.surface != nil {
		c.surface.FillColor = fill
		c.surface.Refresh()
	}
	if c.counter != nil {
		c.counter.Color = InkColor(fill)
		c.counter.Refresh()
	}
	// Keep the toggle in sync without re-triggering OnChanged.
	if c.toggle != nil && c.toggle.Checked != light {
		c.toggle.Checked = light
		c.toggle.Refresh()
	}
}

// hoverArea reports pointer enter and leave for its content.
type hoverArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onIn    func()
	onOut   func()
}

func newHoverArea(content fyne.CanvasObject, onIn, onOut func()) *hoverArea {
	h := &hoverArea{content: content, onIn: onIn, onOut: onOut}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.content)
}

func (h *hoverArea) MouseIn(*desktop.MouseEvent) {
	if h.onIn != nil {
		h.onIn()
	}
}

func (h *hoverArea) MouseMoved(*desktop.MouseEvent) {}

func (h *hoverArea) MouseOut() {
	if h.onOut != nil {
		h.onOut()
	}
}

// TimelineBar draws the intro/loop/outro segments, or a plain progress fill,
// plus the playhead marker.
type TimelineBar struct {
	widget.BaseWidget
	strip    timeline.Strip
	playhead bool
}

func NewTimelineBar() *TimelineBar {
	b := &TimelineBar{}
	b.ExtendBaseWidget(b)
	return b
}

// SetStrip updates the bar and redraws it.
func (b *TimelineBar) SetStrip(s timeline.Strip, showPlayhead bool) {
	b.strip = s
	b.playhead = showPlayhead
	b.Refresh()
}

func (b *TimelineBar) CreateRenderer() fyne.WidgetRenderer {
	r := &timelineBarRenderer{
		bar:      b,
		track:    canvas.NewRectangle(color.RGBA{R: 60, G: 60, B: 60, A: 255}),
		intro:    canvas.NewRectangle(color.RGBA{R: 90, G: 110, B: 230, A: 255}),
		loop:     canvas.NewRectangle(color.RGBA{R: 40, G: 160, B: 96, A: 255}),
		outro:    canvas.NewRectangle(color.RGBA{R: 230, G: 110, B: 60, A: 255}),
		progress: canvas.NewRectangle(color.RGBA{R: 180, G: 180, B: 180, A: 255}),
		marker:   canvas.NewRectangle(color.White),
	}
	r.objects = []fyne.CanvasObject{r.track, r.intro, r.loop, r.outro, r.progress, r.marker}
	return r
}

type timelineBarRenderer struct {
	bar      *TimelineBar
	track    *canvas.Rectangle
	intro    *canvas.Rectangle
	loop     *canvas.Rectangle
	outro    *canvas.Rectangle
	progress *canvas.Rectangle
	marker   *canvas.Rectangle
	objects  []fyne.CanvasObject
}

const (
	barHeight    = 8
	markerWidth  = 2
	markerExtend = 3
)

func (r *timelineBarRenderer) Destroy()                     {}
func (r *timelineBarRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *timelineBarRenderer) MinSize() fyne.Size           { return fyne.NewSize(120, barHeight+2*markerExtend) }
func (r *timelineBarRenderer) Refresh()                     { r.Layout(r.bar.Size()); canvas.Refresh(r.bar) }

func (r *timelineBarRenderer) Layout(size fyne.Size) {
	top := (size.Height - barHeight) / 2
	place := func(rect *canvas.Rectangle, s Span) {
		if s.W <= 0 {
			rect.Hide()
			return
		}
		rect.Move(fyne.NewPos(s.X, top))
		rect.Resize(fyne.NewSize(s.W, barHeight))
		rect.Show()
	}
	r.track.Move(fyne.NewPos(0, top))
	r.track.Resize(fyne.NewSize(size.Width, barHeight))

	g := BarLayout(r.bar.strip, size.Width)
	if g.Segmented {
		place(r.intro, g.Intro)
		place(r.loop, g.Loop)
		place(r.outro, g.Outro)
		r.progress.Hide()
	} else {
		r.intro.Hide()
		r.loop.Hide()
		r.outro.Hide()
		place(r.progress, g.Progress)
	}

	if !r.bar.playhead {
		r.marker.Hide()
		return
	}
	x := g.Playhead - markerWidth/2
	if x < 0 {
		x = 0
	}
	r.marker.Move(fyne.NewPos(x, top-markerExtend))
	r.marker.Resize(fyne.NewSize(markerWidth, barHeight+2*markerExtend))
	r.marker.Show()
}
