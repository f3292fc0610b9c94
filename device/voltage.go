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

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/errorx"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/observer"
	"github.com/TimeWtr/pinobs/smooth"
)

type voltageConfig struct {
	bits              int
	sleep             bool
	snapMultiplier    float64
	activityThreshold float64
}

type VoltageOptions func(*voltageConfig)

func WithResolution(bits int) VoltageOptions {
	return func(o *voltageConfig) {
		o.bits = bits
	}
}

// WithSleep toggles the smoother's sleep mode, which is on by default.
func WithSleep(enable bool) VoltageOptions {
	return func(o *voltageConfig) {
		o.sleep = enable
	}
}

func WithSnapMultiplier(multiplier float64) VoltageOptions {
	return func(o *voltageConfig) {
		o.snapMultiplier = multiplier
	}
}

func WithActivityThreshold(threshold float64) VoltageOptions {
	return func(o *voltageConfig) {
		o.activityThreshold = threshold
	}
}

// Voltage is a smoothed analog input, useful for potentiometers and light
// sensors. It publishes FieldValue whenever the smoothed value moves.
type Voltage struct {
	observer.Observable[*Voltage]

	pin      int
	reader   *smooth.Reader
	bits     int
	maxValue int
}

func NewVoltage(board hal.Board, pin int, opts ...VoltageOptions) (*Voltage, error) {
	o := voltageConfig{
		bits:              pinobs.DefaultResolutionBits,
		sleep:             true,
		snapMultiplier:    smooth.DefaultSnapMultiplier,
		activityThreshold: smooth.DefaultActivityThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := board.SetMode(pin, hal.Input); err != nil {
		return nil, fmt.Errorf("configure voltage pin %d: %w", pin, err)
	}

	v := &Voltage{
		pin:    pin,
		reader: smooth.New(board, pin, o.sleep),
	}
	v.reader.SetSnapMultiplier(o.snapMultiplier)
	v.reader.SetActivityThreshold(o.activityThreshold)
	if err := v.SetAnalogResolution(o.bits); err != nil {
		return nil, err
	}

	return v, nil
}

// SetAnalogResolution sets the converter width in bits.
func (v *Voltage) SetAnalogResolution(bits int) error {
	if bits < pinobs.MinResolutionBits || bits > pinobs.MaxResolutionBits {
		return fmt.Errorf("%w: %d", errorx.ErrResolutionBits, bits)
	}

	v.bits = bits
	v.maxValue = 1 << bits
	v.reader.SetAnalogResolution(v.maxValue)
	return nil
}

func (v *Voltage) AnalogResolution() int {
	return v.bits
}

// Update polls the smoother and notifies observers if the value moved.
func (v *Voltage) Update() {
	v.reader.Update()
	if v.reader.HasChanged() {
		v.Notify(v, pinobs.FieldValue)
	}
}

func (v *Voltage) RawValue() int {
	return v.reader.RawValue()
}

func (v *Voltage) SmoothedValue() int {
	return v.reader.Value()
}

// NormalizedValue maps the smoothed value onto [0, 1], full scale being
// 2^bits - 1.
func (v *Voltage) NormalizedValue() float64 {
	n := float64(v.reader.Value()) / float64(v.maxValue-1)
	return max(0, min(n, 1))
}

func (v *Voltage) Pin() int {
	return v.pin
}

func (v *Voltage) Reader() *smooth.Reader {
	return v.reader
}

func NewVoltageObserver(fn func(source *Voltage, field string)) *observer.Func[*Voltage] {
	return observer.NewFunc(fn)
}
