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

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"

	"lottiegrid/internal/config"
	"lottiegrid/internal/domain"
	"lottiegrid/internal/driver"
	"lottiegrid/internal/playback"
	"lottiegrid/internal/timeline"
)

func TestAnimationCard_ViewUpdates(t *testing.T) {
	test.NewTempApp(t)
	spec := domain.AnimationSpec{ID: "sym", FileName: "Symbol Idle.lottie", Type: domain.Loop, Loop: &domain.LoopFrames{Start: 30, End: 90}, Feedback: "Floating"}
	c := NewAnimationCard(spec, domain.Dark)

	c.SetFrameCounter(12)
	if c.counter.Text != "FR: 12" {
		t.Fatalf("counter: got %q", c.counter.Text)
	}
	c.SetFrameRange(0, 120)
	if c.startLbl.Text != "0" || c.endLbl.Text != "120" {
		t.Fatalf("range labels: %q %q", c.startLbl.Text, c.endLbl.Text)
	}
	c.SetSegmentLabels(30, 90)
	if !c.loopLbl.Visible() || c.loopLbl.Text != "loop 30-90" {
		t.Fatalf("loop label: %q visible=%v", c.loopLbl.Text, c.loopLbl.Visible())
	}
	c.SetActive(true)
	if c.outline.StrokeColor != highlight {
		t.Fatalf("expected highlight stroke")
	}
	c.SetTimeline(timeline.Strip{Segmented: true, Proportions: timeline.Segmented(45, 120, 30, 90)}, true)
	if !c.bar.playhead || c.bar.strip.Proportions.Active != timeline.LoopSegment {
		t.Fatalf("timeline not applied: %+v", c.bar.strip)
	}
	c.SetLightMode(true)
	if !c.toggle.Checked || c.surface.FillColor != lightSurface {
		t.Fatalf("light mode not applied")
	}
}

func TestAnimationCard_ThemeIndependentHidesToggle(t *testing.T) {
	test.NewTempApp(t)
	c := NewAnimationCard(domain.AnimationSpec{FileName: "Slide_Stroke.lottie", Folder: "Unique"}, domain.Dark)
	if c.toggle.Visible() {
		t.Fatalf("theme-independent card must not show the toggle")
	}
	if c.feedback.Visible() {
		t.Fatalf("empty feedback note should be hidden")
	}
}

func TestTimelineBar_LayoutHidesUnusedPieces(t *testing.T) {
	test.NewTempApp(t)
	b := NewTimelineBar()
	r := test.WidgetRenderer(b).(*timelineBarRenderer)
	b.SetStrip(timeline.Strip{ProgressPct: 50}, false)
	r.Layout(fyne.NewSize(200, 14))
	if r.intro.Visible() || !r.progress.Visible() || r.marker.Visible() {
		t.Fatalf("progress strip should only show the fill")
	}
	if r.progress.Size().Width != 100 {
		t.Fatalf("progress width: got %v want 100", r.progress.Size().Width)
	}
}

func TestCardGrid_WideCardSpansTwoColumns(t *testing.T) {
	test.NewTempApp(t)
	cards := []fyne.CanvasObject{
		NewAnimationCard(domain.AnimationSpec{FileName: "a.lottie"}, domain.Dark),
		NewAnimationCard(domain.AnimationSpec{FileName: "b.lottie"}, domain.Dark),
		NewAnimationCard(domain.AnimationSpec{FileName: "c.lottie", Wide: true}, domain.Dark),
	}
	g := &cardGrid{cols: 2, gap: 10}
	c := container.New(g, cards...)
	g.Layout(c.Objects, fyne.NewSize(510, 1000))

	if w := cards[0].Size().Width; w != 250 {
		t.Fatalf("narrow card width: got %v want 250", w)
	}
	if w := cards[2].Size().Width; w != 510 {
		t.Fatalf("wide card width: got %v want 510", w)
	}
	if cards[2].Position().Y <= cards[0].Position().Y {
		t.Fatalf("wide card should wrap to the second row")
	}
}

func writeAsset(t *testing.T, root, folder, name string) {
	t.Helper()
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := `{"nm":"x","fr":30,"ip":0,"op":60,"w":100,"h":100,"layers":[]}`
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
}

func TestGrid_HoverAndThemeNotice(t *testing.T) {
	test.NewTempApp(t)
	root := t.TempDir()
	writeAsset(t, root, "Black", "sym.json")
	writeAsset(t, root, "White", "sym.json")

	cfg := config.Defaults()
	cfg.Catalog.AssetRoot = root
	cat := domain.Catalog{Sections: []domain.Section{{
		ID: "s", Title: "Symbol", Description: "hover me",
		Animations: []domain.AnimationSpec{{ID: "sym", FileName: "sym.json", Type: domain.Loop, Loop: &domain.LoopFrames{Start: 10, End: 40}}},
	}}}
	q := driver.NewQueue()
	var loadErr error
	g := newGrid(cfg, cat, q, func(err error) { loadErr = err })
	defer g.close()

	settle := func() {
		deadline := time.Now().Add(time.Second)
		for g.ctrls[0].State().Phase == playback.Idle && time.Now().Before(deadline) {
			q.Drain()
			time.Sleep(time.Millisecond)
		}
	}
	settle()
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if got := g.ctrls[0].State().TotalFrames; got != 60 {
		t.Fatalf("total frames: got %d want 60", got)
	}

	card := g.cards[0]
	card.hover.MouseIn(nil)
	if ph := g.ctrls[0].State().Phase; ph != playback.PlayingIntro {
		t.Fatalf("phase after hover: %v", ph)
	}
	card.hover.MouseOut()
	if g.ctrls[0].State().Hovering {
		t.Fatalf("pointer leave not delivered")
	}

	card.toggle.SetChecked(true)
	if g.sections[0].desc.Color != descLight {
		t.Fatalf("section description not restyled on theme notice")
	}
	if g.ctrls[0].State().Theme != domain.Light {
		t.Fatalf("theme not switched")
	}
}
