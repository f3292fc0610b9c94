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
	"testing"

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/errorx"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/hal/sim"
	"github.com/TimeWtr/pinobs/smooth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const voltagePin = 0

type MockVoltageObserver struct {
	mock.Mock
}

func (m *MockVoltageObserver) FieldChanged(source *Voltage, field string) {
	m.Called(source, field)
}

func TestNewVoltage_Defaults(t *testing.T) {
	board := sim.NewBoard()
	v, err := NewVoltage(board, voltagePin)
	require.NoError(t, err)

	mode, ok := board.Mode(voltagePin)
	assert.True(t, ok)
	assert.Equal(t, hal.Input, mode)
	assert.Equal(t, pinobs.DefaultResolutionBits, v.AnalogResolution())
	assert.Equal(t, 1024, v.Reader().Resolution())
	assert.Equal(t, voltagePin, v.Pin())
	assert.Zero(t, v.NormalizedValue())
}

func TestVoltage_Normalized(t *testing.T) {
	tests := []struct {
		name string
		bits int
		raw  int
		want float64
	}{
		{name: "full scale 10 bit", bits: 10, raw: 1023, want: 1},
		{name: "mid scale 10 bit", bits: 10, raw: 512, want: 512.0 / 1023.0},
		{name: "zero", bits: 10, raw: 0, want: 0},
		{name: "full scale 12 bit", bits: 12, raw: 4095, want: 1},
		{name: "over range clamps", bits: 8, raw: 1023, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := sim.NewBoard()
			v, err := NewVoltage(board, voltagePin, WithResolution(tt.bits))
			require.NoError(t, err)

			board.SetAnalog(voltagePin, tt.raw)
			v.Update()

			assert.Equal(t, tt.raw, v.RawValue())
			assert.InDelta(t, tt.want, v.NormalizedValue(), 1e-9)
			assert.GreaterOrEqual(t, v.NormalizedValue(), 0.0)
			assert.LessOrEqual(t, v.NormalizedValue(), 1.0)
		})
	}
}

func TestVoltage_NotifiesOnChange(t *testing.T) {
	board := sim.NewBoard()
	v, err := NewVoltage(board, voltagePin)
	require.NoError(t, err)

	ob := new(MockVoltageObserver)
	ob.On("FieldChanged", v, pinobs.FieldValue).Return().Once()
	v.Subscribe(ob)

	board.SetAnalog(voltagePin, 700)
	v.Update()
	assert.Equal(t, 700, v.SmoothedValue())

	v.Update()
	ob.AssertExpectations(t)
	ob.AssertNumberOfCalls(t, "FieldChanged", 1)
}

func TestVoltage_Resolution(t *testing.T) {
	board := sim.NewBoard()
	v, err := NewVoltage(board, voltagePin)
	require.NoError(t, err)

	require.NoError(t, v.SetAnalogResolution(12))
	assert.Equal(t, 12, v.AnalogResolution())
	assert.Equal(t, 4096, v.Reader().Resolution())

	for _, bits := range []int{0, -1, 17} {
		assert.ErrorIs(t, v.SetAnalogResolution(bits), errorx.ErrResolutionBits)
	}
	assert.Equal(t, 12, v.AnalogResolution())

	_, err = NewVoltage(board, 1, WithResolution(20))
	assert.ErrorIs(t, err, errorx.ErrResolutionBits)
}

func TestVoltage_Options(t *testing.T) {
	board := sim.NewBoard()
	v, err := NewVoltage(board, voltagePin,
		WithSleep(false),
		WithSnapMultiplier(0),
		WithActivityThreshold(smooth.DefaultActivityThreshold))
	require.NoError(t, err)

	board.SetAnalog(voltagePin, 800)
	v.Update()
	assert.Equal(t, 0, v.SmoothedValue(), "zero snap multiplier holds the output")
	assert.False(t, v.Reader().IsSleeping())
}

func TestVoltageObserver_Field(t *testing.T) {
	board := sim.NewBoard()
	v, err := NewVoltage(board, voltagePin)
	require.NoError(t, err)

	var got []float64
	v.Subscribe(NewVoltageObserver(func(src *Voltage, field string) {
		if field == pinobs.FieldValue {
			got = append(got, src.NormalizedValue())
		}
	}))

	board.SetAnalog(voltagePin, 1023)
	v.Update()
	board.SetAnalog(voltagePin, 0)
	v.Update()

	assert.Equal(t, []float64{1, 0}, got)
}
