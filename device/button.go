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

package device

import (
	"fmt"
	"time"

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/debounce"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/observer"
)

const DefaultDebounce = 50 * time.Millisecond

type buttonConfig struct {
	pinMode      hal.Mode
	debounce     time.Duration
	debounceMode debounce.Mode
	activeLow    bool
}

type ButtonOptions func(*buttonConfig)

func WithPinMode(mode hal.Mode) ButtonOptions {
	return func(o *buttonConfig) {
		o.pinMode = mode
	}
}

func WithDebounce(d time.Duration) ButtonOptions {
	return func(o *buttonConfig) {
		o.debounce = d
	}
}

func WithDebounceMode(mode debounce.Mode) ButtonOptions {
	return func(o *buttonConfig) {
		o.debounceMode = mode
	}
}

// WithActiveLow makes a pressed button on a pull-up input read true.
func WithActiveLow() ButtonOptions {
	return func(o *buttonConfig) {
		o.activeLow = true
	}
}

// Button is a debounced digital input. Every accepted edge is published as
// FieldRise or FieldFall, followed by FieldValue.
type Button struct {
	observer.Observable[*Button]

	pin       int
	debouncer *debounce.Debouncer
}

func NewButton(board hal.Board, pin int, opts ...ButtonOptions) (*Button, error) {
	o := buttonConfig{
		pinMode:      hal.InputPullup,
		debounce:     DefaultDebounce,
		debounceMode: debounce.Stable,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := board.SetMode(pin, o.pinMode); err != nil {
		return nil, fmt.Errorf("configure button pin %d: %w", pin, err)
	}

	dopts := []debounce.Options{
		debounce.WithClock(board),
		debounce.WithMode(o.debounceMode),
	}
	if o.activeLow {
		dopts = append(dopts, debounce.WithActiveLow())
	}

	b := &Button{
		pin:       pin,
		debouncer: debounce.New(board, pin, o.debounce, dopts...),
	}
	b.debouncer.Subscribe(debounce.Fall, func(bool) { b.Notify(b, pinobs.FieldFall) })
	b.debouncer.Subscribe(debounce.Rise, func(bool) { b.Notify(b, pinobs.FieldRise) })
	b.debouncer.Subscribe(debounce.Changed, func(bool) { b.Notify(b, pinobs.FieldValue) })

	return b, nil
}

// Update polls the debouncer. Call it on every loop tick.
func (b *Button) Update() {
	b.debouncer.Update()
}

// Get returns the debounced level.
func (b *Button) Get() bool {
	return b.debouncer.Read()
}

func (b *Button) Pin() int {
	return b.pin
}

func (b *Button) Debouncer() *debounce.Debouncer {
	return b.debouncer
}

func NewButtonObserver(fn func(source *Button, field string)) *observer.Func[*Button] {
	return observer.NewFunc(fn)
}
