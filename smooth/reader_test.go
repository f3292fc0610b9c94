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

package smooth

import (
	"testing"

	"github.com/TimeWtr/pinobs/hal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const analogPin = 3

// newMocked returns a reader whose pin reads whatever *level holds.
func newMocked(t *testing.T, sleep bool) (*Reader, *int) {
	t.Helper()

	ctrl := gomock.NewController(t)
	board := hal.NewMockBoard(ctrl)
	level := new(int)
	board.EXPECT().AnalogRead(analogPin).DoAndReturn(func(int) int {
		return *level
	}).AnyTimes()

	return New(board, analogPin, sleep), level
}

func TestReader_Step(t *testing.T) {
	r, level := newMocked(t, true)

	*level = 1000
	r.Update()
	assert.Equal(t, 1000, r.RawValue())
	assert.Equal(t, 1000, r.Value())
	assert.True(t, r.HasChanged())
	assert.False(t, r.IsSleeping())

	r.Update()
	assert.Equal(t, 1000, r.Value())
	assert.False(t, r.HasChanged())
}

func TestReader_Sleep(t *testing.T) {
	r, level := newMocked(t, true)

	*level = 1000
	for i := 0; i < 16; i++ {
		r.Update()
	}
	assert.True(t, r.IsSleeping())

	*level = 1003
	r.Update()
	assert.True(t, r.IsSleeping())
	assert.Equal(t, 1003, r.RawValue())
	assert.Equal(t, 1000, r.Value())
	assert.False(t, r.HasChanged())

	*level = 200
	r.Update()
	assert.False(t, r.IsSleeping())
	assert.Equal(t, 200, r.Value())
	assert.True(t, r.HasChanged())
}

func TestReader_EdgeSnap(t *testing.T) {
	r, level := newMocked(t, true)

	*level = 1023
	r.Update()
	assert.Equal(t, 1023, r.Value())

	*level = 0
	r.Update()
	assert.Equal(t, 0, r.Value())
}

func TestReader_Easing(t *testing.T) {
	r, level := newMocked(t, false)

	*level = 1000
	r.Update()
	assert.Equal(t, 1000, r.Value())

	*level = 1010
	r.Update()
	assert.Greater(t, r.Value(), 1000)
	assert.Less(t, r.Value(), 1010)
	assert.True(t, r.HasChanged())
	assert.False(t, r.IsSleeping())
}

func TestReader_SnapMultiplier(t *testing.T) {
	r, level := newMocked(t, false)

	r.SetSnapMultiplier(-1)
	*level = 500
	r.Update()
	assert.Equal(t, 0, r.Value(), "a zero multiplier never moves")

	r.SetSnapMultiplier(2)
	r.Update()
	assert.Equal(t, 500, r.Value())
}

func TestReader_Resolution(t *testing.T) {
	r, level := newMocked(t, false)
	assert.Equal(t, DefaultResolution, r.Resolution())

	*level = 4000
	r.Update()
	assert.Equal(t, DefaultResolution-1, r.Value())

	r.SetAnalogResolution(4096)
	r.Update()
	assert.Equal(t, 4000, r.Value())
}

func TestReader_DisableSleep(t *testing.T) {
	r, level := newMocked(t, true)

	*level = 600
	for i := 0; i < 16; i++ {
		r.Update()
	}
	assert.True(t, r.IsSleeping())

	r.EnableSleep(false)
	assert.False(t, r.IsSleeping())

	*level = 700
	r.Update()
	assert.Greater(t, r.Value(), 600)
}

func TestSnapCurve(t *testing.T) {
	assert.Equal(t, 0.0, snapCurve(0))
	assert.InDelta(t, 2.0/11.0, snapCurve(0.1), 1e-9)
	assert.Equal(t, 1.0, snapCurve(1))
	assert.Equal(t, 1.0, snapCurve(100))
}
