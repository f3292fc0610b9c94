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

// Package sim provides an in-memory board for tests and demos.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/TimeWtr/pinobs/errorx"
	"github.com/TimeWtr/pinobs/hal"
)

// Epoch is the starting time of the manual clock.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

var _ hal.Board = (*Board)(nil)

type Options func(*Board)

// WithClock replaces the manual clock, e.g. with hal.SystemClock for demos.
// Advance has no effect on an external clock.
func WithClock(clock hal.Clock) Options {
	return func(b *Board) {
		b.clock = clock
	}
}

// Board keeps pin levels, analog values and modes in memory. Pins that are
// configured as InputPullup read high until they are driven.
type Board struct {
	mu      sync.RWMutex
	modes   map[int]hal.Mode
	digital map[int]bool
	analog  map[int]int
	now     time.Time
	clock   hal.Clock
}

func NewBoard(opts ...Options) *Board {
	b := &Board{
		modes:   make(map[int]hal.Mode),
		digital: make(map[int]bool),
		analog:  make(map[int]int),
		now:     Epoch,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Board) SetMode(pin int, mode hal.Mode) error {
	if pin < 0 {
		return fmt.Errorf("%w: %d", errorx.ErrInvalidPin, pin)
	}
	if !mode.Validate() {
		return fmt.Errorf("%w: %d", errorx.ErrPinMode, mode)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.modes[pin] = mode
	if _, driven := b.digital[pin]; !driven && mode == hal.InputPullup {
		b.digital[pin] = true
	}
	return nil
}

// Mode returns the configured mode of pin and whether it was configured.
func (b *Board) Mode(pin int) (hal.Mode, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	m, ok := b.modes[pin]
	return m, ok
}

func (b *Board) DigitalRead(pin int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.digital[pin]
}

func (b *Board) AnalogRead(pin int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.analog[pin]
}

// SetDigital drives pin to level.
func (b *Board) SetDigital(pin int, level bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.digital[pin] = level
}

// SetAnalog sets the next raw reading of pin.
func (b *Board) SetAnalog(pin, value int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.analog[pin] = value
}

func (b *Board) Now() time.Time {
	if b.clock != nil {
		return b.clock.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.now
}

// Advance moves the manual clock forward by d.
func (b *Board) Advance(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.now = b.now.Add(d)
}
