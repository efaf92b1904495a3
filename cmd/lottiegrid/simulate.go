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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lottiegrid/internal/domain"
	"lottiegrid/internal/driver"
	applog "lottiegrid/internal/log"
	"lottiegrid/internal/playback"
	"lottiegrid/internal/timeline"
)

// pollInterval is how often simulate looks for the end of playback after the leave.
const pollInterval = 50 * time.Millisecond

type simulation struct {
	AssetRoot   string
	Theme       domain.Theme
	FallbackFPS float64
	Hover       time.Duration
	// Ticks drives the driver clock; nil means real time.
	Ticks driver.TickSource
}

// simulate runs one card on a private host loop: the pointer enters right
// away, leaves after sim.Hover, and the run ends once the loaded card stops
// playing after the leave. It returns the final controller state.
func simulate(ctx context.Context, w io.Writer, spec domain.AnimationSpec, sim simulation) (playback.State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := driver.NewQueue()
	drv := driver.NewClockDriver(q, driver.Options{Ticks: sim.Ticks, FallbackFPS: sim.FallbackFPS})
	view := &textView{w: w}
	var (
		ctrl    *playback.Controller
		loadErr error
		left    bool
	)
	q.Post(func() {
		ctrl = playback.NewController(spec, drv, view, playback.Options{
			AssetRoot: sim.AssetRoot,
			Theme:     sim.Theme,
			OnError: func(err error) {
				loadErr = err
				cancel()
			},
			Logger: applog.WithComponent("simulate"),
		})
		view.note("pointer enter")
		ctrl.PointerEnter()
	})
	leave := time.AfterFunc(sim.Hover, func() {
		q.Post(func() {
			view.note("pointer leave")
			ctrl.PointerLeave()
			left = true
		})
	})
	defer leave.Stop()
	stop := driver.RealTicks{}.Every(pollInterval, func() {
		q.Post(func() {
			if left && ctrl.State().Loaded && !drv.IsPlaying() {
				cancel()
			}
		})
	})
	defer stop()

	runErr := q.Run(ctx)
	var st playback.State
	if ctrl != nil {
		st = ctrl.State()
		if err := ctrl.Close(); err != nil {
			return st, err
		}
	}
	switch {
	case loadErr != nil:
		return st, loadErr
	case errors.Is(runErr, context.DeadlineExceeded):
		return st, fmt.Errorf("simulation timed out in phase %s", st.Phase)
	}
	return st, nil
}

// textView prints view updates as lines. Timeline lines are written when the
// active segment changes and every tenth frame otherwise.
type textView struct {
	w       io.Writer
	frame   int
	segment timeline.Segment
	printed bool
}

func (v *textView) note(msg string) { fmt.Fprintf(v.w, "-- %s\n", msg) }

func (v *textView) SetFrameCounter(frame int) { v.frame = frame }

func (v *textView) SetFrameRange(start, end int) {
	fmt.Fprintf(v.w, "range %d-%d\n", start, end)
}

func (v *textView) SetSegmentLabels(loopStart, loopEnd int) {
	fmt.Fprintf(v.w, "loop  %d-%d\n", loopStart, loopEnd)
}

func (v *textView) SetTimeline(strip timeline.Strip, showPlayhead bool) {
	seg := strip.Proportions.Active
	if v.printed && seg == v.segment && v.frame%10 != 0 {
		return
	}
	v.printed = true
	v.segment = seg
	pct := strip.ProgressPct
	label := "progress"
	if strip.Segmented {
		pct = strip.Proportions.PlayheadPct
		label = seg.String()
	}
	head := ""
	if showPlayhead {
		head = " |"
	}
	fmt.Fprintf(v.w, "FR: %-4d %-8s %5.1f%%%s\n", v.frame, label, pct, head)
}

func (v *textView) SetActive(on bool) {
	if on {
		fmt.Fprintln(v.w, "highlight on")
		return
	}
	fmt.Fprintln(v.w, "highlight off")
}

func (v *textView) SetLightMode(light bool) {
	fmt.Fprintf(v.w, "theme %s\n", domain.ThemeFromLight(light))
}
