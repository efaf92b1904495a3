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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottiegrid/internal/lottie"
)

func fixedProbe(total float64) ProbeFunc {
	return func(string) (lottie.Info, error) {
		return lottie.Info{FrameRate: 60, InPoint: 0, OutPoint: total}, nil
	}
}

// settle waits for background loads to post, then drains the queue.
func settle(t *testing.T, q *Queue, want int) {
	t.Helper()
	require.Eventually(t, func() bool { return q.Len() >= want }, time.Second, time.Millisecond)
	q.Drain()
}

func loadSync(t *testing.T, q *Queue, d *ClockDriver, path string) (Asset, error) {
	t.Helper()
	var got Asset
	var gotErr error
	called := false
	d.Load(path, func(a Asset, err error) { got, gotErr, called = a, err, true })
	settle(t, q, 1)
	require.True(t, called, "load callback not delivered")
	return got, gotErr
}

func TestClockDriverStepsFrames(t *testing.T) {
	q := NewQueue()
	ticks := NewManualTicks()
	d := NewClockDriver(q, Options{Ticks: ticks, Probe: fixedProbe(10)})

	a, err := loadSync(t, q, d, "a.lottie")
	require.NoError(t, err)
	assert.Equal(t, 10.0, a.TotalFrames)
	assert.Equal(t, 10.0, d.TotalFrames())

	var frames []float64
	d.OnFrame(func(f float64) { frames = append(frames, f) })
	d.Play()
	require.True(t, d.IsPlaying())
	for i := 0; i < 3; i++ {
		ticks.Tick()
		q.Drain()
	}
	assert.Equal(t, []float64{1, 2, 3}, frames)
	assert.Equal(t, 3.0, d.CurrentFrame())

	d.Pause()
	assert.False(t, d.IsPlaying())
	assert.Equal(t, 0, ticks.Active())
}

func TestClockDriverCompletesOnce(t *testing.T) {
	q := NewQueue()
	ticks := NewManualTicks()
	d := NewClockDriver(q, Options{Ticks: ticks, Probe: fixedProbe(4)})
	_, err := loadSync(t, q, d, "a.lottie")
	require.NoError(t, err)

	completes := 0
	d.OnComplete(func() { completes++ })
	d.Play()
	for i := 0; i < 8; i++ {
		ticks.Tick()
		q.Drain()
	}
	assert.Equal(t, 1, completes)
	assert.False(t, d.IsPlaying())
	assert.Equal(t, 4.0, d.CurrentFrame())

	d.Play()
	assert.Equal(t, 0.0, d.CurrentFrame(), "playing from the end restarts")
}

func TestClockDriverSeekInsideFrameListenerSkipsComplete(t *testing.T) {
	q := NewQueue()
	ticks := NewManualTicks()
	d := NewClockDriver(q, Options{Ticks: ticks, Probe: fixedProbe(3)})
	_, err := loadSync(t, q, d, "a.lottie")
	require.NoError(t, err)

	completes := 0
	d.OnComplete(func() { completes++ })
	cancel := d.OnFrame(func(f float64) {
		if f >= 3 {
			d.Seek(1)
		}
	})
	d.Play()
	for i := 0; i < 6; i++ {
		ticks.Tick()
		q.Drain()
	}
	assert.Zero(t, completes)
	assert.True(t, d.IsPlaying())

	cancel()
	for i := 0; i < 6; i++ {
		ticks.Tick()
		q.Drain()
	}
	assert.Equal(t, 1, completes)
}

func TestClockDriverLastLoadWins(t *testing.T) {
	q := NewQueue()
	release := map[string]chan struct{}{"old": make(chan struct{}), "new": make(chan struct{})}
	totals := map[string]float64{"old": 50, "new": 80}
	d := NewClockDriver(q, Options{Ticks: NewManualTicks(), Probe: func(p string) (lottie.Info, error) {
		<-release[p]
		return lottie.Info{FrameRate: 30, OutPoint: totals[p]}, nil
	}})

	var seen []string
	d.Load("old", func(a Asset, err error) { seen = append(seen, a.Path) })
	d.Load("new", func(a Asset, err error) { seen = append(seen, a.Path) })

	close(release["new"])
	settle(t, q, 1)
	close(release["old"])
	settle(t, q, 1)

	assert.Equal(t, []string{"new", "old"}, seen, "every load reports back")
	assert.Equal(t, 80.0, d.TotalFrames(), "the stale load must not replace the asset")
}

func TestClockDriverLoadFailure(t *testing.T) {
	q := NewQueue()
	boom := errors.New("corrupt")
	d := NewClockDriver(q, Options{Ticks: NewManualTicks(), Probe: func(string) (lottie.Info, error) {
		return lottie.Info{}, boom
	}})
	_, err := loadSync(t, q, d, "bad.lottie")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, d.TotalFrames())
	d.Play()
	assert.False(t, d.IsPlaying())
}

func TestClockDriverFallbackFPSAndClose(t *testing.T) {
	q := NewQueue()
	d := NewClockDriver(q, Options{Ticks: NewManualTicks(), FallbackFPS: 25, Probe: func(string) (lottie.Info, error) {
		return lottie.Info{OutPoint: 10}, nil
	}})
	a, err := loadSync(t, q, d, "a.json")
	require.NoError(t, err)
	assert.Equal(t, 25.0, a.FrameRate)

	require.NoError(t, d.Close())
	_, err = loadSync(t, q, d, "b.json")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueueRunStopsOnCancel(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{})
	go func() { _ = q.Run(ctx) }()
	q.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("queued callback did not run")
	}
	cancel()
}
