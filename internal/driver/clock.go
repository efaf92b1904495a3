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
	"errors"
	"time"

	"lottiegrid/internal/lottie"
)

// Asset is what a finished load reports: the resolved path and the metadata the
// controller needs before it can draw a timeline.
type Asset struct {
	Path        string
	TotalFrames float64
	FrameRate   float64
}

// Driver is the playback capability of one card. Implementations deliver the
// Load callback and all listeners on the host loop. A Load callback may arrive
// after a newer Load was issued; callers decide whether it is still current.
type Driver interface {
	Load(path string, done func(Asset, error))
	Play()
	Pause()
	Seek(frame float64)
	IsPlaying() bool
	CurrentFrame() float64
	TotalFrames() float64
	OnFrame(fn func(frame float64)) (cancel func())
	OnComplete(fn func()) (cancel func())
	Close() error
}

// ErrClosed is returned to Load callbacks issued after Close.
var ErrClosed = errors.New("driver closed")

// ProbeFunc reads asset metadata from a path.
type ProbeFunc func(path string) (lottie.Info, error)

// Options configures a ClockDriver. Zero values pick real time and file probing.
type Options struct {
	Ticks       TickSource
	Probe       ProbeFunc
	FallbackFPS float64
}

// ClockDriver plays an asset by stepping one frame per tick at the asset's frame
// rate. Playback is single pass: reaching the last frame stops and emits complete.
type ClockDriver struct {
	host        Host
	ticks       TickSource
	probe       ProbeFunc
	fallbackFPS float64

	asset   Asset
	loaded  bool
	frame   float64
	playing bool
	run     uint64
	stop    func()
	loadSeq uint64
	closed  bool

	nextID   int
	frameL   []frameListener
	complete []completeListener
}

type frameListener struct {
	id int
	fn func(float64)
}

type completeListener struct {
	id int
	fn func()
}

// NewClockDriver returns a driver bound to host.
func NewClockDriver(host Host, opts Options) *ClockDriver {
	if opts.Ticks == nil {
		opts.Ticks = RealTicks{}
	}
	if opts.Probe == nil {
		opts.Probe = lottie.ProbeFile
	}
	if opts.FallbackFPS <= 0 {
		opts.FallbackFPS = 30
	}
	return &ClockDriver{host: host, ticks: opts.Ticks, probe: opts.Probe, fallbackFPS: opts.FallbackFPS}
}

// Load stops playback and reads the asset in the background. Only the most
// recent load replaces the driver's asset; done is called for every load.
func (d *ClockDriver) Load(path string, done func(Asset, error)) {
	if d.closed {
		if done != nil {
			d.host.Post(func() { done(Asset{}, ErrClosed) })
		}
		return
	}
	d.halt()
	d.loadSeq++
	seq := d.loadSeq
	go func() {
		info, err := d.probe(path)
		d.host.Post(func() {
			if err != nil {
				if seq == d.loadSeq && !d.closed {
					d.loaded = false
				}
				if done != nil {
					done(Asset{Path: path}, err)
				}
				return
			}
			fps := info.FrameRate
			if fps <= 0 {
				fps = d.fallbackFPS
			}
			a := Asset{Path: path, TotalFrames: info.TotalFrames(), FrameRate: fps}
			if seq == d.loadSeq && !d.closed {
				d.asset = a
				d.loaded = true
				d.frame = 0
			}
			if done != nil {
				done(a, nil)
			}
		})
	}()
}

// Play starts stepping frames. Playing from the last frame restarts at 0.
func (d *ClockDriver) Play() {
	if d.closed || !d.loaded || d.playing || d.asset.TotalFrames <= 0 {
		return
	}
	if d.frame >= d.asset.TotalFrames {
		d.frame = 0
	}
	d.playing = true
	d.run++
	run := d.run
	interval := time.Duration(float64(time.Second) / d.asset.FrameRate)
	d.stop = d.ticks.Every(interval, func() {
		d.host.Post(func() { d.step(run) })
	})
}

func (d *ClockDriver) step(run uint64) {
	if !d.playing || run != d.run {
		return
	}
	d.frame++
	if d.frame > d.asset.TotalFrames {
		d.frame = d.asset.TotalFrames
	}
	d.emitFrame(d.frame)
	// A frame listener may have paused or seeked.
	if d.playing && run == d.run && d.frame >= d.asset.TotalFrames {
		d.halt()
		d.emitComplete()
	}
}

// Pause stops stepping at the current frame.
func (d *ClockDriver) Pause() { d.halt() }

// Seek moves the playhead, clamped into [0, TotalFrames]. It does not emit a frame event.
func (d *ClockDriver) Seek(frame float64) {
	if !d.loaded {
		return
	}
	switch {
	case frame < 0:
		frame = 0
	case frame > d.asset.TotalFrames:
		frame = d.asset.TotalFrames
	}
	d.frame = frame
}

func (d *ClockDriver) IsPlaying() bool        { return d.playing }
func (d *ClockDriver) CurrentFrame() float64 { return d.frame }

func (d *ClockDriver) TotalFrames() float64 {
	if !d.loaded {
		return 0
	}
	return d.asset.TotalFrames
}

func (d *ClockDriver) OnFrame(fn func(float64)) func() {
	id := d.nextID
	d.nextID++
	d.frameL = append(d.frameL, frameListener{id: id, fn: fn})
	return func() {
		for i, l := range d.frameL {
			if l.id == id {
				d.frameL = append(d.frameL[:i:i], d.frameL[i+1:]...)
				return
			}
		}
	}
}

func (d *ClockDriver) OnComplete(fn func()) func() {
	id := d.nextID
	d.nextID++
	d.complete = append(d.complete, completeListener{id: id, fn: fn})
	return func() {
		for i, l := range d.complete {
			if l.id == id {
				d.complete = append(d.complete[:i:i], d.complete[i+1:]...)
				return
			}
		}
	}
}

// Close stops playback and drops listeners. Pending loads still call back.
func (d *ClockDriver) Close() error {
	d.halt()
	d.closed = true
	d.frameL = nil
	d.complete = nil
	return nil
}

func (d *ClockDriver) halt() {
	d.playing = false
	d.run++
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

func (d *ClockDriver) emitFrame(frame float64) {
	for _, l := range append([]frameListener(nil), d.frameL...) {
		l.fn(frame)
	}
}

func (d *ClockDriver) emitComplete() {
	for _, l := range append([]completeListener(nil), d.complete...) {
		l.fn()
	}
}
