/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package driver defines the playback driver capability a card controller talks
// to, the single host loop its callbacks run on, and a clock-driven driver that
// steps frames of a lottie asset without rendering it.
//
// Every Driver method and every callback runs on the host loop. Background work
// (file reads, tickers) only ever reaches driver state through Host.Post.
package driver

import (
	"context"
	"sync"
)

// Host serializes callbacks onto one loop.
type Host interface {
	Post(fn func())
}

// HostFunc adapts a function such as fyne.Do to Host.
type HostFunc func(fn func())

func (f HostFunc) Post(fn func()) { f(fn) }

// Queue is a Host whose callbacks run when the owner drains it, either
// explicitly (tests, CLI) or from Run.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. Safe for concurrent use.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of callbacks waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs queued callbacks, including ones posted while draining, until the
// queue is empty. It returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Run drains the queue whenever work arrives until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}
