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

// Package loop drives polled devices from a single control loop.
package loop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/TimeWtr/pinobs/utils/atomicx"
	"github.com/TimeWtr/pinobs/utils/log"
	"golang.org/x/net/context"
)

const DefaultInterval = 10 * time.Millisecond

// Updater is anything that must be polled once per tick.
type Updater interface {
	Update()
}

type Options func(*Loop)

func WithInterval(interval time.Duration) Options {
	return func(l *Loop) {
		if interval > 0 {
			l.interval = interval
		}
	}
}

// Loop calls Update on every registered device, in registration order,
// once per tick. All updates run on one goroutine, so observers are never
// notified concurrently.
type Loop struct {
	interval   time.Duration
	devices    []Updater
	mu         sync.Mutex
	ticks      atomic.Uint64
	l          log.Logger
	lifecycle  sync.Mutex
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	state      *atomicx.Bool
}

func New(l log.Logger, opts ...Options) *Loop {
	lp := &Loop{
		interval: DefaultInterval,
		l:        l,
		state:    atomicx.NewBool(),
	}

	for _, opt := range opts {
		opt(lp)
	}

	return lp
}

func (lp *Loop) Add(devices ...Updater) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.devices = append(lp.devices, devices...)
}

// Tick updates every device once. While the loop is running, only the loop
// goroutine should tick.
func (lp *Loop) Tick() {
	lp.mu.Lock()
	devices := make([]Updater, len(lp.devices))
	copy(devices, lp.devices)
	lp.mu.Unlock()

	for _, device := range devices {
		device.Update()
	}
	lp.ticks.Add(1)
}

func (lp *Loop) Ticks() uint64 {
	return lp.ticks.Load()
}

func (lp *Loop) Interval() time.Duration {
	return lp.interval
}

func (lp *Loop) Running() bool {
	return lp.state.Load()
}

// Start runs the loop in the background until ctx is done or Stop is
// called. Starting a running loop does nothing. A loop whose context was
// cancelled can be started again.
func (lp *Loop) Start(ctx context.Context) {
	lp.lifecycle.Lock()
	defer lp.lifecycle.Unlock()

	if !lp.state.CompareAndSwap(false, true) {
		return
	}

	// the previous goroutine may still be returning after its context ended
	lp.wg.Wait()
	if lp.cancelFunc != nil {
		lp.cancelFunc()
	}

	runCtx, cancel := context.WithCancel(ctx)
	lp.cancelFunc = cancel
	lp.wg.Add(1)
	go lp.run(runCtx)
}

func (lp *Loop) run(ctx context.Context) {
	defer lp.wg.Done()
	ticker := time.NewTicker(lp.interval)
	defer ticker.Stop()

	lp.l.Info("control loop started", log.DurationField("interval", lp.interval))
	for {
		select {
		case <-ticker.C:
			lp.Tick()
		case <-ctx.Done():
			lp.state.CompareAndSwap(true, false)
			lp.l.Info("control loop stopped", log.Uint64Field("ticks", lp.Ticks()))
			return
		}
	}
}

// Stop cancels the loop and waits for the current tick to finish. It also
// reaps a loop that already ended because its context was cancelled.
func (lp *Loop) Stop() {
	lp.lifecycle.Lock()
	defer lp.lifecycle.Unlock()

	if lp.cancelFunc == nil {
		return
	}

	lp.cancelFunc()
	lp.cancelFunc = nil
	lp.wg.Wait()
	lp.state.Store(false)
}
