// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package debounce filters contact bounce out of a polled digital input.
package debounce

import (
	"fmt"
	"strings"
	"time"

	"github.com/TimeWtr/pinobs/errorx"
	"github.com/TimeWtr/pinobs/hal"
)

type Edge int

const (
	Fall Edge = iota
	Rise
	Changed
)

func (e Edge) String() string {
	switch e {
	case Fall:
		return "fall"
	case Rise:
		return "rise"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Mode selects how the debounce duration is measured.
type Mode int

const (
	// Stable accepts a new level once it has been held for the full duration.
	Stable Mode = iota
	// Lockout accepts a change at once and ignores the input for the
	// duration afterwards.
	Lockout
)

func (m Mode) String() string {
	switch m {
	case Stable:
		return "stable"
	case Lockout:
		return "lockout"
	default:
		return "unknown"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable", "":
		return Stable, nil
	case "lockout":
		return Lockout, nil
	default:
		return Stable, fmt.Errorf("%w: %q", errorx.ErrDebounceMode, s)
	}
}

type Callback func(level bool)

type Options func(*Debouncer)

func WithMode(mode Mode) Options {
	return func(d *Debouncer) {
		d.mode = mode
	}
}

// WithActiveLow inverts the raw pin level, so a grounded input reads true.
func WithActiveLow() Options {
	return func(d *Debouncer) {
		d.activeLow = true
	}
}

func WithClock(clock hal.Clock) Options {
	return func(d *Debouncer) {
		d.clock = clock
	}
}

type subscriber struct {
	edge Edge
	fn   Callback
}

type Debouncer struct {
	reader    hal.DigitalReader
	clock     hal.Clock
	pin       int
	duration  time.Duration
	mode      Mode
	activeLow bool

	stable     bool      // debounced level
	raw        bool      // last sampled level
	rawSince   time.Time // when raw last changed
	lastAccept time.Time // when stable last changed, zero before the first edge

	subscribers []subscriber
}

// New samples pin once to seed the debounced level. No edge is reported for
// the initial level.
func New(reader hal.DigitalReader, pin int, duration time.Duration, opts ...Options) *Debouncer {
	d := &Debouncer{
		reader:   reader,
		clock:    hal.SystemClock{},
		pin:      pin,
		duration: duration,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.raw = d.sample()
	d.stable = d.raw
	d.rawSince = d.clock.Now()
	return d
}

// Subscribe registers fn for edge. Callbacks run in subscription order;
// Changed callbacks run on both edges.
func (d *Debouncer) Subscribe(edge Edge, fn Callback) {
	d.subscribers = append(d.subscribers, subscriber{edge: edge, fn: fn})
}

// Update samples the pin and reports an edge when a new level is accepted.
func (d *Debouncer) Update() {
	now := d.clock.Now()
	level := d.sample()
	if level != d.raw {
		d.raw = level
		d.rawSince = now
	}

	if d.raw == d.stable {
		return
	}

	switch d.mode {
	case Lockout:
		if !d.lastAccept.IsZero() && now.Sub(d.lastAccept) < d.duration {
			return
		}
	default:
		if now.Sub(d.rawSince) < d.duration {
			return
		}
	}

	d.accept(d.raw, now)
}

// Read returns the debounced level.
func (d *Debouncer) Read() bool {
	return d.stable
}

func (d *Debouncer) Pin() int {
	return d.pin
}

func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

func (d *Debouncer) Mode() Mode {
	return d.mode
}

func (d *Debouncer) accept(level bool, now time.Time) {
	d.stable = level
	d.lastAccept = now

	edge := Fall
	if level {
		edge = Rise
	}

	for _, sub := range d.subscribers {
		if sub.edge == edge || sub.edge == Changed {
			sub.fn(level)
		}
	}
}

func (d *Debouncer) sample() bool {
	level := d.reader.DigitalRead(d.pin)
	if d.activeLow {
		return !level
	}
	return level
}
