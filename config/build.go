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

package config

import (
	"fmt"

	"github.com/TimeWtr/pinobs/debounce"
	"github.com/TimeWtr/pinobs/device"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/loop"
	"github.com/TimeWtr/pinobs/smooth"
)

type NamedButton struct {
	Name string
	*device.Button
}

type NamedVoltage struct {
	Name string
	*device.Voltage
}

// Devices holds the devices of a sketch in declaration order.
type Devices struct {
	Buttons  []NamedButton
	Voltages []NamedVoltage
}

// Updaters returns every device, buttons first, for registration in a loop.
func (d *Devices) Updaters() []loop.Updater {
	us := make([]loop.Updater, 0, len(d.Buttons)+len(d.Voltages))
	for _, b := range d.Buttons {
		us = append(us, b.Button)
	}
	for _, v := range d.Voltages {
		us = append(us, v.Voltage)
	}
	return us
}

// Build constructs the sketch's devices on board.
func (s *Sketch) Build(board hal.Board) (*Devices, error) {
	d := &Devices{}

	for _, b := range s.Buttons {
		mode, err := hal.ParseMode(b.Mode)
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", b.Name, err)
		}
		dmode, err := debounce.ParseMode(b.DebounceMode)
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", b.Name, err)
		}

		opts := []device.ButtonOptions{
			device.WithPinMode(mode),
			device.WithDebounce(deref(b.Debounce, device.DefaultDebounce)),
			device.WithDebounceMode(dmode),
		}
		if b.ActiveLow {
			opts = append(opts, device.WithActiveLow())
		}

		btn, err := device.NewButton(board, b.Pin, opts...)
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", b.Name, err)
		}
		d.Buttons = append(d.Buttons, NamedButton{Name: b.Name, Button: btn})
	}

	for _, v := range s.Voltages {
		opts := []device.VoltageOptions{
			device.WithResolution(v.Bits),
			device.WithSleep(deref(v.Sleep, true)),
			device.WithSnapMultiplier(deref(v.SnapMultiplier, smooth.DefaultSnapMultiplier)),
			device.WithActivityThreshold(deref(v.ActivityThreshold, smooth.DefaultActivityThreshold)),
		}

		volt, err := device.NewVoltage(board, v.Pin, opts...)
		if err != nil {
			return nil, fmt.Errorf("voltage %q: %w", v.Name, err)
		}
		d.Voltages = append(d.Voltages, NamedVoltage{Name: v.Name, Voltage: volt})
	}

	return d, nil
}
