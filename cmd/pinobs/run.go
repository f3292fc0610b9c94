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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TimeWtr/pinobs/config"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/hal/sim"
	"github.com/TimeWtr/pinobs/loop"
	"github.com/TimeWtr/pinobs/metrics"
	"github.com/TimeWtr/pinobs/utils/log"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 5 * time.Second
	analogNoise     = 3
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sketch against the simulated board",
	Long: `Builds the devices of the sketch on a simulated board that toggles every
button and sweeps every analog input, logs their notifications and serves
Prometheus metrics until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		buttonPeriod, _ := cmd.Flags().GetDuration("button-period")
		sweepPeriod, _ := cmd.Flags().GetDuration("sweep-period")

		loader := config.NewLoader(path)
		sketch, err := loader.Load()
		if err != nil {
			return err
		}

		level, err := log.ParseLevel(sketch.LogLevel)
		if err != nil {
			return err
		}
		l, err := log.New(sketch.Logger, level, os.Stderr)
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		board := sim.NewBoard(sim.WithClock(hal.SystemClock{}))
		devices, err := sketch.Build(board)
		if err != nil {
			return err
		}

		stimulus := sim.NewStimulus(board)
		console := metrics.NewConsoleObserver(l)
		prom := metrics.NewPrometheus(metrics.DefaultNamespace)
		for _, b := range devices.Buttons {
			stimulus.Square(b.Pin(), buttonPeriod)
			b.Subscribe(console.Button(b.Name))
			b.Subscribe(prom.ButtonObserver(b.Name))
		}
		for _, v := range devices.Voltages {
			stimulus.Sine(v.Pin(), sweepPeriod, 1<<v.AnalogResolution()-1, analogNoise)
			v.Subscribe(console.Voltage(v.Name))
			v.Subscribe(prom.VoltageObserver(v.Name))
		}

		lp := loop.New(l, loop.WithInterval(sketch.Interval))
		lp.Add(stimulus)
		lp.Add(devices.Updaters()...)

		current := *sketch
		loader.Watch(func(next *config.Sketch, err error) {
			if err != nil {
				l.Warn("failed to reload sketch", log.ErrorField(err))
				return
			}
			for _, key := range current.Changed(next) {
				if key != config.KeyLogLevel {
					l.Warn("sketch change needs a restart", log.StringField("key", key))
					continue
				}
				lv, _ := log.ParseLevel(next.LogLevel)
				if err := l.SetLevel(lv); err != nil {
					l.Warn("failed to apply log level", log.ErrorField(err))
					continue
				}
				current.LogLevel = next.LogLevel
				l.Info("log level applied", log.StringField("log_level", lv.String()))
			}
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var srv *http.Server
		if sketch.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", prom.Handler())
			srv = &http.Server{
				Addr:              sketch.MetricsAddr,
				Handler:           mux,
				ReadHeaderTimeout: shutdownTimeout,
			}
			go func() {
				l.Info("serving metrics", log.StringField("addr", sketch.MetricsAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("metrics server failed", log.ErrorField(err))
					stop()
				}
			}()
		}

		l.Info("sketch running",
			log.StringField("path", loader.Path()),
			log.IntField("buttons", len(devices.Buttons)),
			log.IntField("voltages", len(devices.Voltages)))
		lp.Start(ctx)
		<-ctx.Done()
		lp.Stop()

		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Duration("button-period", 2*time.Second, "Period of the simulated button square wave")
	runCmd.Flags().Duration("sweep-period", 10*time.Second, "Period of the simulated analog sweep")
	rootCmd.AddCommand(runCmd)
}
