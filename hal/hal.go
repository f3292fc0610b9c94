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

// Package hal describes the pin level hardware access the devices need.
// Real boards implement Board; sim provides an in-memory one.
package hal

//go:generate mockgen -destination=mock_hal.go -package=hal github.com/TimeWtr/pinobs/hal Board

import (
	"fmt"
	"strings"
	"time"

	"github.com/TimeWtr/pinobs/errorx"
)

type Mode int

const (
	Input Mode = iota
	InputPullup
	InputPulldown
	Output
)

func (m Mode) String() string {
	switch m {
	case Input:
		return "input"
	case InputPullup:
		return "input_pullup"
	case InputPulldown:
		return "input_pulldown"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

func (m Mode) Validate() bool {
	switch m {
	case Input, InputPullup, InputPulldown, Output:
		return true
	default:
		return false
	}
}

// ParseMode accepts the names returned by Mode.String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input":
		return Input, nil
	case "input_pullup", "pullup":
		return InputPullup, nil
	case "input_pulldown", "pulldown":
		return InputPulldown, nil
	case "output":
		return Output, nil
	default:
		return Input, fmt.Errorf("%w: %q", errorx.ErrPinMode, s)
	}
}

type ModeSetter interface {
	SetMode(pin int, mode Mode) error
}

type DigitalReader interface {
	DigitalRead(pin int) bool
}

type AnalogReader interface {
	AnalogRead(pin int) int
}

type Clock interface {
	Now() time.Time
}

// Board is the full capability handed to devices at construction.
type Board interface {
	ModeSetter
	DigitalReader
	AnalogReader
	Clock
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
