/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package playback

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/driver"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/timeline"
)

// Options configures a Controller.
type Options struct {
	// AssetRoot is the directory holding the Black, White and shared asset folders.
	AssetRoot string
	Theme     domain.Theme
	// Themes receives a notice whenever the card switches theme. Optional.
	Themes *ThemeBus
	// OnError receives load failures as *AssetLoadError. Optional.
	OnError func(error)
	Logger  *slog.Logger
}

// Controller drives one card. All methods and driver callbacks must run on the
// driver's host loop; the controller itself holds no lock.
type Controller struct {
	spec    domain.AnimationSpec
	card    string
	root    string
	drv     driver.Driver
	view    View
	themes  *ThemeBus
	onError func(error)
	log     *slog.Logger
	ctx     context.Context

	state   State
	cancels []func()
	closed  bool
}

// NewController wires the driver listeners and starts loading the asset for the
// initial theme.
func NewController(spec domain.AnimationSpec, drv driver.Driver, view View, opts Options) *Controller {
	if view == nil {
		view = NopView{}
	}
	card := spec.ID
	if card == "" {
		card = domain.Slug(spec.Title())
	}
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("playback")
	}
	c := &Controller{
		spec:    spec,
		card:    card,
		root:    opts.AssetRoot,
		drv:     drv,
		view:    view,
		themes:  opts.Themes,
		onError: opts.OnError,
		log:     l.With(slog.String("asset", spec.FileName)),
		ctx:     applog.WithCard(context.Background(), card),
	}
	c.cancels = append(c.cancels,
		drv.OnFrame(func(f float64) { c.dispatch(FrameAdvanced{Frame: f}) }),
		drv.OnComplete(func() { c.dispatch(PlaybackComplete{}) }),
	)
	c.view.SetLightMode(opts.Theme == domain.Light)
	st, cmds := Start(opts.Theme)
	c.state = st
	c.apply(cmds)
	return c
}

// Card returns the card identifier used in logs and theme notices.
func (c *Controller) Card() string { return c.card }

func (c *Controller) Spec() domain.AnimationSpec { return c.spec }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

func (c *Controller) PointerEnter() {
	c.dispatch(PointerEnter{Playing: c.drv.IsPlaying()})
}

func (c *Controller) PointerLeave() {
	c.dispatch(PointerLeave{Playing: c.drv.IsPlaying()})
}

// SetTheme switches the card to the given theme variant, reloading the asset
// unless the card is theme independent.
func (c *Controller) SetTheme(t domain.Theme) {
	c.dispatch(ThemeChanged{Theme: t})
}

// SetLight is SetTheme for a light/dark toggle.
func (c *Controller) SetLight(light bool) { c.SetTheme(domain.ThemeFromLight(light)) }

// Close detaches from the driver and releases it. Later events are ignored.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, cancel := range c.cancels {
		if cancel != nil {
			cancel()
		}
	}
	c.cancels = nil
	if err := c.drv.Close(); err != nil {
		return fmt.Errorf("close driver for %s: %w", c.card, err)
	}
	return nil
}

func (c *Controller) dispatch(ev Event) {
	if c.closed {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.ErrorContext(c.ctx, "event handler panic",
				slog.String("event", fmt.Sprintf("%T", ev)),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	prev := c.state.Phase
	next, cmds := Step(c.spec, c.state, ev)
	c.state = next
	if next.Phase != prev {
		c.log.DebugContext(c.ctx, "phase", slog.String("from", prev.String()), slog.String("to", next.Phase.String()))
	}
	c.apply(cmds)
}

func (c *Controller) apply(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case LoadAsset:
			c.load(cmd)
		case Seek:
			c.drv.Seek(float64(cmd.Frame))
		case Play:
			c.drv.Play()
		case Pause:
			c.drv.Pause()
		case Render:
			c.view.SetFrameCounter(cmd.Frame)
			c.view.SetTimeline(timeline.ForSpec(c.spec, cmd.Frame, c.state.TotalFrames), cmd.ShowPlayhead)
		case ShowRange:
			c.view.SetFrameRange(0, cmd.Total)
			if c.spec.Type == domain.Loop {
				c.view.SetSegmentLabels(cmd.Loop.Start, cmd.Loop.End)
			}
		case Highlight:
			c.view.SetActive(cmd.On)
		case AnnounceTheme:
			light := cmd.Theme == domain.Light
			c.view.SetLightMode(light)
			c.themes.Publish(ThemeNotice{Card: c.card, Light: light})
		case ReportLoadFailure:
			err := &AssetLoadError{Card: c.card, Path: cmd.Path, Err: cmd.Err}
			c.log.ErrorContext(c.ctx, "asset load failed", slog.String("path", cmd.Path), slog.Any("err", cmd.Err))
			if c.onError != nil {
				c.onError(err)
			}
		}
	}
}

func (c *Controller) load(cmd LoadAsset) {
	path := c.spec.AssetPath(c.root, cmd.Theme)
	gen := cmd.Generation
	c.log.DebugContext(c.ctx, "load", slog.String("path", path), slog.Uint64("gen", gen))
	c.drv.Load(path, func(a driver.Asset, err error) {
		if gen != c.state.Generation {
			c.log.DebugContext(c.ctx, "stale load ignored", slog.String("path", path), slog.Uint64("gen", gen))
			return
		}
		if err != nil {
			c.dispatch(LoadFailed{Generation: gen, Path: path, Err: err})
			return
		}
		total := a.TotalFrames
		if total <= 0 {
			total = c.drv.TotalFrames()
		}
		c.dispatch(AssetReady{Generation: gen, TotalFrames: total})
	})
}
