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

package sim

import (
	"math"
	"math/rand"
	"time"
)

// Stimulus drives board inputs as a function of elapsed board time. It is
// polled like a device, so it belongs first in the loop.
type Stimulus struct {
	board *Board
	start time.Time
	waves []func(elapsed time.Duration)
}

func NewStimulus(board *Board) *Stimulus {
	return &Stimulus{
		board: board,
		start: board.Now(),
	}
}

// Square toggles pin every half period, starting high.
func (s *Stimulus) Square(pin int, period time.Duration) {
	if period <= 0 {
		return
	}

	s.waves = append(s.waves, func(elapsed time.Duration) {
		s.board.SetDigital(pin, elapsed%period < period/2)
	})
}

// Sine drives pin between 0 and maxValue with up to noise counts of
// uniform jitter on top.
func (s *Stimulus) Sine(pin int, period time.Duration, maxValue, noise int) {
	if period <= 0 {
		return
	}

	s.waves = append(s.waves, func(elapsed time.Duration) {
		phase := 2 * math.Pi * float64(elapsed%period) / float64(period)
		v := int(math.Round((math.Sin(phase) + 1) / 2 * float64(maxValue)))
		if noise > 0 {
			v += rand.Intn(2*noise+1) - noise
		}
		s.board.SetAnalog(pin, min(max(v, 0), maxValue))
	})
}

func (s *Stimulus) Update() {
	elapsed := s.board.Now().Sub(s.start)
	for _, wave := range s.waves {
		wave(elapsed)
	}
}
