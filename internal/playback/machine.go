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
	"fmt"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/timeline"
)

// Phase is the controller state derived from its flags and the animation type.
//
//	Idle ──ready──► Parked ──enter──► PlayingIntro ──► PlayingLoop ◄─┐
//	                  ▲                    │ leave        │  restart  │
//	                  │                    ▼              └───────────┘
//	                  └──complete── OutroLocked ◄── leave + frame ≥ loopStart
//
// PlayOnce and PlayAndHold cards go Parked ──enter──► PlayingLinear; a
// PlayAndHold card then stops in HeldAtEnd until the pointer leaves.
type Phase int

const (
	Idle Phase = iota
	Parked
	PlayingIntro
	PlayingLoop
	OutroLocked
	PlayingLinear
	HeldAtEnd
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Parked:
		return "parked"
	case PlayingIntro:
		return "playing-intro"
	case PlayingLoop:
		return "playing-loop"
	case OutroLocked:
		return "outro-locked"
	case PlayingLinear:
		return "playing-linear"
	case HeldAtEnd:
		return "held-at-end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is owned by exactly one controller.
type State struct {
	Phase        Phase
	TotalFrames  int
	CurrentFrame int
	Hovering     bool
	OutroLocked  bool
	Theme        domain.Theme
	Loaded       bool
	// Generation identifies the most recent load; results of older loads are ignored.
	Generation uint64
}

// Bounds returns the loop window clamped to the loaded asset.
func (s State) Bounds(spec domain.AnimationSpec) domain.LoopFrames {
	return spec.LoopBounds().Clamp(s.TotalFrames)
}

// Event is an input to Step.
type Event interface{ event() }

// AssetReady reports that the load with the given generation finished.
type AssetReady struct {
	Generation  uint64
	TotalFrames float64
}

// LoadFailed reports that the load with the given generation failed.
type LoadFailed struct {
	Generation uint64
	Path       string
	Err        error
}

// PointerEnter and PointerLeave carry whether the driver was playing when the pointer moved.
type PointerEnter struct{ Playing bool }

type PointerLeave struct{ Playing bool }

// FrameAdvanced carries the driver frame, possibly fractional.
type FrameAdvanced struct{ Frame float64 }

type PlaybackComplete struct{}

type ThemeChanged struct{ Theme domain.Theme }

func (AssetReady) event()       {}
func (LoadFailed) event()       {}
func (PointerEnter) event()     {}
func (PointerLeave) event()     {}
func (FrameAdvanced) event()    {}
func (PlaybackComplete) event() {}
func (ThemeChanged) event()     {}

// Command is an output of Step, executed in order by the controller.
type Command interface{ command() }

// LoadAsset asks for the asset variant of Theme, tagged with Generation.
type LoadAsset struct {
	Generation uint64
	Theme      domain.Theme
}

type Seek struct{ Frame int }

type Play struct{}

type Pause struct{}

// Render redraws the frame counter and the timeline strip at Frame.
type Render struct {
	Frame        int
	ShowPlayhead bool
}

// ShowRange publishes the loaded frame count and the clamped loop window.
type ShowRange struct {
	Total int
	Loop  domain.LoopFrames
}

// Highlight toggles the card's active highlight.
type Highlight struct{ On bool }

// AnnounceTheme restyles the card and notifies theme subscribers.
type AnnounceTheme struct{ Theme domain.Theme }

type ReportLoadFailure struct {
	Path string
	Err  error
}

func (LoadAsset) command()         {}
func (Seek) command()              {}
func (Play) command()              {}
func (Pause) command()             {}
func (Render) command()            {}
func (ShowRange) command()         {}
func (Highlight) command()         {}
func (AnnounceTheme) command()     {}
func (ReportLoadFailure) command() {}

// Start returns the state of a freshly mounted card and the initial load.
func Start(theme domain.Theme) (State, []Command) {
	s := State{Phase: Idle, Theme: theme, Generation: 1}
	return s, []Command{LoadAsset{Generation: s.Generation, Theme: theme}}
}

// Step applies one event. It is pure: the same inputs always give the same outputs.
func Step(spec domain.AnimationSpec, s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case AssetReady:
		return onReady(spec, s, e)
	case LoadFailed:
		return onLoadFailed(s, e)
	case PointerEnter:
		return onEnter(spec, s, e)
	case PointerLeave:
		return onLeave(spec, s, e)
	case FrameAdvanced:
		return onFrame(spec, s, e)
	case PlaybackComplete:
		return onComplete(spec, s)
	case ThemeChanged:
		return onTheme(spec, s, e)
	}
	return s, nil
}

func onReady(spec domain.AnimationSpec, s State, e AssetReady) (State, []Command) {
	if e.Generation != s.Generation {
		return s, nil
	}
	s.Loaded = true
	s.TotalFrames = timeline.Floor(e.TotalFrames)
	s.CurrentFrame = 0
	s.OutroLocked = false
	s.Phase = Parked
	cmds := []Command{
		ShowRange{Total: s.TotalFrames, Loop: s.Bounds(spec)},
		Seek{Frame: 0},
		Render{Frame: 0},
	}
	if s.Hovering {
		var more []Command
		s, more = begin(spec, s)
		cmds = append(cmds, more...)
	}
	return s, cmds
}

func onLoadFailed(s State, e LoadFailed) (State, []Command) {
	if e.Generation != s.Generation {
		return s, nil
	}
	s.Loaded = false
	s.Phase = Idle
	s.TotalFrames = 0
	s.CurrentFrame = 0
	s.OutroLocked = false
	return s, []Command{ReportLoadFailure{Path: e.Path, Err: e.Err}, Render{Frame: 0}}
}

func onEnter(spec domain.AnimationSpec, s State, e PointerEnter) (State, []Command) {
	s.Hovering = true
	cmds := []Command{Highlight{On: true}}
	if !s.Loaded {
		return s, cmds
	}
	// Re-entry while the playhead is still inside the loop window takes the loop back.
	if s.OutroLocked && s.CurrentFrame <= s.Bounds(spec).End {
		s.OutroLocked = false
		if e.Playing {
			s.Phase = playingPhase(spec, s, s.CurrentFrame)
		}
	}
	if e.Playing {
		return s, append(cmds, Play{})
	}
	s, more := begin(spec, s)
	return s, append(cmds, more...)
}

func onLeave(spec domain.AnimationSpec, s State, e PointerLeave) (State, []Command) {
	s.Hovering = false
	cmds := []Command{Highlight{On: false}}
	if !s.Loaded {
		return s, cmds
	}
	switch spec.Type {
	case domain.PlayAndHold:
		s.OutroLocked = false
		s.CurrentFrame = 0
		s.Phase = Parked
		cmds = append(cmds, Pause{}, Seek{Frame: 0}, Render{Frame: 0})
	case domain.PlayOnce:
		if !e.Playing && s.Phase == PlayingLinear {
			cmds = append(cmds, Play{})
		}
	case domain.Loop:
		// The outro lock is decided on the next frame, so a quick out-and-in does not flicker.
	}
	return s, cmds
}

func onFrame(spec domain.AnimationSpec, s State, e FrameAdvanced) (State, []Command) {
	if !s.Loaded {
		return s, nil
	}
	f := timeline.Floor(e.Frame)
	s.CurrentFrame = f
	if spec.Type != domain.Loop {
		s.Phase = PlayingLinear
		return s, []Command{Render{Frame: f, ShowPlayhead: true}}
	}

	b := s.Bounds(spec)
	switch {
	case s.OutroLocked:
		s.Phase = OutroLocked
	case s.Hovering && !b.Degenerate() && f >= b.End:
		s.CurrentFrame = b.Start
		s.Phase = PlayingLoop
		return s, []Command{Seek{Frame: b.Start}, Render{Frame: b.Start, ShowPlayhead: true}}
	case !s.Hovering && f >= b.Start:
		s.OutroLocked = true
		s.Phase = OutroLocked
	default:
		s.Phase = playingPhase(spec, s, f)
	}
	return s, []Command{Render{Frame: f, ShowPlayhead: true}}
}

func onComplete(spec domain.AnimationSpec, s State) (State, []Command) {
	if !s.Loaded {
		return s, nil
	}
	if spec.Type == domain.PlayAndHold {
		s.CurrentFrame = s.TotalFrames
		s.Phase = HeldAtEnd
		return s, []Command{Highlight{On: false}, Render{Frame: s.TotalFrames, ShowPlayhead: s.Hovering}}
	}
	s.OutroLocked = false
	if s.Hovering {
		return begin(spec, s)
	}
	s.CurrentFrame = 0
	s.Phase = Parked
	return s, []Command{Seek{Frame: 0}, Render{Frame: 0}}
}

func onTheme(spec domain.AnimationSpec, s State, e ThemeChanged) (State, []Command) {
	if e.Theme == s.Theme {
		return s, nil
	}
	s.Theme = e.Theme
	cmds := []Command{AnnounceTheme{Theme: e.Theme}}
	if spec.ThemeIndependent() {
		return s, cmds
	}
	s.Generation++
	s.Loaded = false
	s.Phase = Idle
	return s, append(cmds, Pause{}, LoadAsset{Generation: s.Generation, Theme: e.Theme})
}

// begin plays the card from frame 0.
func begin(spec domain.AnimationSpec, s State) (State, []Command) {
	s.OutroLocked = false
	s.CurrentFrame = 0
	s.Phase = playingPhase(spec, s, 0)
	return s, []Command{Seek{Frame: 0}, Play{}, Render{Frame: 0, ShowPlayhead: true}}
}

// playingPhase names the phase of a playing card at frame f.
func playingPhase(spec domain.AnimationSpec, s State, f int) Phase {
	if spec.Type != domain.Loop {
		return PlayingLinear
	}
	if s.OutroLocked {
		return OutroLocked
	}
	b := s.Bounds(spec)
	switch {
	case f < b.Start:
		return PlayingIntro
	case b.Degenerate():
		return PlayingLinear
	default:
		return PlayingLoop
	}
}
