/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package driver

import (
	"sync"
	"time"
)

// TickSource produces the frame clock. Every starts calling fn at the given
// interval from a background goroutine until stop is called.
type TickSource interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// RealTicks uses time.Ticker.
type RealTicks struct{}

func (RealTicks) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Second / 30
	}
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			t.Stop()
			close(done)
		})
	}
}

// ManualTicks fires only when Tick is called. Used for deterministic playback.
type ManualTicks struct {
	mu     sync.Mutex
	nextID int
	active map[int]func()
}

// NewManualTicks returns a tick source with no subscribers.
func NewManualTicks() *ManualTicks {
	return &ManualTicks{active: make(map[int]func())}
}

func (m *ManualTicks) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.active[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.active, id)
		m.mu.Unlock()
	}
}

// Active returns the number of running subscriptions.
func (m *ManualTicks) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Tick fires every active subscription once.
func (m *ManualTicks) Tick() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.active))
	for _, fn := range m.active {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
