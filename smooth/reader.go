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

// Package smooth implements a responsive low-pass filter for noisy analog
// inputs. Small movements are eased, large movements snap through, and the
// output can sleep while the input only jitters.
package smooth

import (
	"math"

	"github.com/TimeWtr/pinobs/hal"
)

const (
	DefaultResolution        = 1024
	DefaultSnapMultiplier    = 0.01
	DefaultActivityThreshold = 4.0

	errorWeight = 0.4
)

type Reader struct {
	board hal.AnalogReader
	pin   int

	resolution        int
	snapMultiplier    float64
	activityThreshold float64
	sleepEnable       bool
	edgeSnapEnable    bool

	smoothValue float64
	errorEMA    float64
	sleeping    bool

	raw       int
	value     int
	prevValue int
	changed   bool
}

func New(board hal.AnalogReader, pin int, sleepEnable bool) *Reader {
	return &Reader{
		board:             board,
		pin:               pin,
		resolution:        DefaultResolution,
		snapMultiplier:    DefaultSnapMultiplier,
		activityThreshold: DefaultActivityThreshold,
		sleepEnable:       sleepEnable,
		edgeSnapEnable:    true,
	}
}

// Update reads the pin and recomputes the smoothed value.
func (r *Reader) Update() {
	r.raw = r.board.AnalogRead(r.pin)
	r.value = r.responsiveValue(r.raw)
	r.changed = r.value != r.prevValue
	r.prevValue = r.value
}

func (r *Reader) responsiveValue(newValue int) int {
	next := float64(newValue)

	// stretch the input near both rails so the output can settle on them
	if r.sleepEnable && r.edgeSnapEnable {
		switch {
		case next < r.activityThreshold:
			next = next*2 - r.activityThreshold
		case next > float64(r.resolution)-r.activityThreshold:
			next = next*2 - float64(r.resolution) + r.activityThreshold
		}
	}

	diff := math.Abs(next - r.smoothValue)
	r.errorEMA += (next - r.smoothValue - r.errorEMA) * errorWeight

	if r.sleepEnable {
		r.sleeping = math.Abs(r.errorEMA) < r.activityThreshold
		if r.sleeping {
			return int(r.smoothValue)
		}
	}

	snap := snapCurve(diff * r.snapMultiplier)
	if r.sleepEnable {
		snap = snap*0.5 + 0.5
	}

	r.smoothValue += (next - r.smoothValue) * snap
	r.smoothValue = math.Max(0, math.Min(r.smoothValue, float64(r.resolution-1)))
	return int(r.smoothValue)
}

// snapCurve maps a non-negative error onto (0, 1]; larger errors snap harder.
func snapCurve(x float64) float64 {
	y := 1 / (x + 1)
	y = (1 - y) * 2
	if y > 1 {
		return 1
	}
	return y
}

func (r *Reader) RawValue() int {
	return r.raw
}

// Value returns the smoothed value, in [0, resolution-1].
func (r *Reader) Value() int {
	return r.value
}

// HasChanged reports whether the last Update moved the smoothed value.
func (r *Reader) HasChanged() bool {
	return r.changed
}

func (r *Reader) IsSleeping() bool {
	return r.sleeping
}

func (r *Reader) Resolution() int {
	return r.resolution
}

// SetAnalogResolution sets the number of distinct raw values, e.g. 1024 for
// a 10 bit converter.
func (r *Reader) SetAnalogResolution(resolution int) {
	r.resolution = resolution
}

// SetSnapMultiplier controls how fast the output follows the input. The
// value is clamped to [0, 1].
func (r *Reader) SetSnapMultiplier(multiplier float64) {
	r.snapMultiplier = math.Max(0, math.Min(multiplier, 1))
}

func (r *Reader) SetActivityThreshold(threshold float64) {
	r.activityThreshold = threshold
}

func (r *Reader) EnableSleep(enable bool) {
	r.sleepEnable = enable
	if !enable {
		r.sleeping = false
	}
}

func (r *Reader) EnableEdgeSnap(enable bool) {
	r.edgeSnapEnable = enable
}
