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

package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/device"
	"github.com/TimeWtr/pinobs/hal/sim"
	"github.com/TimeWtr/pinobs/utils/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"golang.org/x/net/context"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func getLog() log.Logger {
	l, _ := zap.NewDevelopment()
	return log.NewZapAdapter(l)
}

type orderedDevice struct {
	id    int
	calls *[]int
}

func (d *orderedDevice) Update() {
	*d.calls = append(*d.calls, d.id)
}

type countingDevice struct {
	n atomic.Int64
}

func (d *countingDevice) Update() {
	d.n.Add(1)
}

func TestLoop_TickOrder(t *testing.T) {
	lp := New(log.NewNop())

	var calls []int
	lp.Add(&orderedDevice{id: 1, calls: &calls}, &orderedDevice{id: 2, calls: &calls})
	lp.Add(&orderedDevice{id: 3, calls: &calls})

	lp.Tick()
	lp.Tick()

	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, calls)
	assert.Equal(t, uint64(2), lp.Ticks())
}

func TestLoop_Options(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(log.NewNop()).Interval())
	assert.Equal(t, time.Second, New(log.NewNop(), WithInterval(time.Second)).Interval())
	assert.Equal(t, DefaultInterval, New(log.NewNop(), WithInterval(-1)).Interval())
}

func TestLoop_Lifecycle(t *testing.T) {
	lp := New(getLog(), WithInterval(time.Millisecond))
	dev := &countingDevice{}
	lp.Add(dev)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lp.Start(ctx)
	lp.Start(ctx)
	assert.True(t, lp.Running())

	assert.Eventually(t, func() bool {
		return dev.n.Load() >= 5
	}, time.Second, time.Millisecond)

	lp.Stop()
	lp.Stop()
	assert.False(t, lp.Running())

	stopped := dev.n.Load()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, stopped, dev.n.Load())
	assert.Equal(t, uint64(stopped), lp.Ticks())
}

func TestLoop_ContextCancel(t *testing.T) {
	lp := New(log.NewNop(), WithInterval(time.Millisecond))
	lp.Add(&countingDevice{})

	ctx, cancel := context.WithCancel(context.Background())
	lp.Start(ctx)
	cancel()
	lp.Stop()
}

func TestLoop_RestartAfterContextCancel(t *testing.T) {
	lp := New(log.NewNop(), WithInterval(time.Millisecond))
	dev := &countingDevice{}
	lp.Add(dev)

	ctx, cancel := context.WithCancel(context.Background())
	lp.Start(ctx)
	assert.Eventually(t, func() bool {
		return dev.n.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool {
		return !lp.Running()
	}, time.Second, time.Millisecond)

	before := dev.n.Load()
	lp.Start(context.Background())
	assert.True(t, lp.Running())
	assert.Eventually(t, func() bool {
		return dev.n.Load() > before+2
	}, time.Second, time.Millisecond)

	lp.Stop()
	assert.False(t, lp.Running())
}

func TestLoop_DrivesButton(t *testing.T) {
	board := sim.NewBoard()
	btn, err := device.NewButton(board, 2, device.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	var fields []string
	btn.Subscribe(device.NewButtonObserver(func(_ *device.Button, field string) {
		fields = append(fields, field)
	}))

	lp := New(log.NewNop())
	lp.Add(btn)

	board.SetDigital(2, false)
	for i := 0; i < 3; i++ {
		lp.Tick()
		board.Advance(10 * time.Millisecond)
	}

	assert.Equal(t, []string{pinobs.FieldFall, pinobs.FieldValue}, fields)
}
