/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package timeline maps playback position onto the proportions drawn by a
// card's timeline strip. All functions are pure and never divide by zero.
package timeline

import (
	"math"

	"lottiegrid/internal/domain"
)

// Segment names the part of a segmented timeline the playhead is in.
type Segment int

const (
	None Segment = iota
	Intro
	LoopSegment
	Outro
)

func (s Segment) String() string {
	switch s {
	case Intro:
		return "intro"
	case LoopSegment:
		return "loop"
	case Outro:
		return "outro"
	default:
		return "none"
	}
}

// Proportions are percentages in [0, 100]. For a loaded asset with valid bounds
// IntroPct+LoopPct+OutroPct is 100.
type Proportions struct {
	IntroPct    float64
	LoopPct     float64
	OutroPct    float64
	PlayheadPct float64
	Active      Segment
}

// Strip is what a view draws: either the three segments or a single progress fill.
type Strip struct {
	Segmented   bool
	Proportions Proportions
	ProgressPct float64
}

// Segmented computes segment widths, playhead position and the active segment.
// Bounds are clamped into [0, total]. With an empty window (start == end) the
// card is intro-only before the boundary and outro-only from it on.
func Segmented(current, total, loopStart, loopEnd int) Proportions {
	if total <= 0 {
		return Proportions{}
	}
	b := domain.LoopFrames{Start: loopStart, End: loopEnd}.Clamp(total)
	p := Proportions{
		IntroPct:    pct(b.Start, total),
		LoopPct:     pct(b.End-b.Start, total),
		OutroPct:    pct(total-b.End, total),
		PlayheadPct: pct(current, total),
	}
	switch {
	case current < b.Start:
		p.Active = Intro
	case b.Degenerate():
		p.Active = Outro
	case current <= b.End:
		p.Active = LoopSegment
	default:
		p.Active = Outro
	}
	return p
}

// Progress is current/total as a clamped percentage; 0 when total is 0.
func Progress(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	return pct(current, total)
}

// ForSpec picks the strip layout for a card: loop cards are segmented, the rest
// show plain progress.
func ForSpec(spec domain.AnimationSpec, current, total int) Strip {
	if spec.Type != domain.Loop {
		return Strip{ProgressPct: Progress(current, total)}
	}
	b := spec.LoopBounds()
	p := Segmented(current, total, b.Start, b.End)
	return Strip{Segmented: true, Proportions: p, ProgressPct: p.PlayheadPct}
}

// Floor truncates a driver frame (which may be fractional during interpolated
// playback) to a non-negative integer frame.
func Floor(frame float64) int {
	if math.IsNaN(frame) || frame <= 0 {
		return 0
	}
	if frame >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(frame))
}

func pct(n, total int) float64 {
	return Clamp(float64(n) / float64(total) * 100)
}

// Clamp limits v to [0, 100], mapping NaN to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
