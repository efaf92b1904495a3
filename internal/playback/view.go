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
	"sync"

	"lottiegrid/internal/timeline"
)

// View is the per-card display sink. Implementations must tolerate any element
// being absent; a write to a missing element is a no-op.
type View interface {
	SetFrameCounter(frame int)
	SetFrameRange(start, end int)
	SetSegmentLabels(loopStart, loopEnd int)
	SetTimeline(strip timeline.Strip, showPlayhead bool)
	SetActive(on bool)
	SetLightMode(light bool)
}

// NopView discards every update.
type NopView struct{}

func (NopView) SetFrameCounter(int)              {}
func (NopView) SetFrameRange(int, int)           {}
func (NopView) SetSegmentLabels(int, int)        {}
func (NopView) SetTimeline(timeline.Strip, bool) {}
func (NopView) SetActive(bool)                   {}
func (NopView) SetLightMode(bool)                {}

// ThemeNotice is published when a card switches theme.
type ThemeNotice struct {
	Card  string
	Light bool
}

// ThemeBus fans theme notices out to subscribers. A nil bus drops notices.
type ThemeBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(ThemeNotice)
}

func NewThemeBus() *ThemeBus {
	return &ThemeBus{subs: make(map[int]func(ThemeNotice))}
}

// Subscribe registers fn and returns a func that removes it.
func (b *ThemeBus) Subscribe(fn func(ThemeNotice)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(ThemeNotice))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish calls every subscriber in subscription order.
func (b *ThemeBus) Publish(n ThemeNotice) {
	if b == nil {
		return
	}
	b.mu.Lock()
	fns := make([]func(ThemeNotice), 0, len(b.subs))
	for id := 0; id < b.next; id++ {
		if fn, ok := b.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(n)
	}
}
