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

// Package config loads sketch files that declare the devices of a board.
package config

import (
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/debounce"
	"github.com/TimeWtr/pinobs/device"
	"github.com/TimeWtr/pinobs/errorx"
	"github.com/TimeWtr/pinobs/hal"
	"github.com/TimeWtr/pinobs/loop"
	"github.com/TimeWtr/pinobs/smooth"
	"github.com/TimeWtr/pinobs/utils/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configType = "yaml"

	configKeyInterval    = "interval"
	configKeyLogger      = "logger"
	configKeyLogLevel    = "log_level"
	configKeyMetricsAddr = "metrics_addr"
	configKeyButtons     = "buttons"
	configKeyVoltages    = "voltages"

	// KeyLogLevel is the only key a running sketch can apply without a restart.
	KeyLogLevel = configKeyLogLevel

	defaultLogger      = pinobs.ZapLogger
	defaultLogLevel    = "info"
	defaultMetricsAddr = ":9464"
)

// Button declares one debounced input. Nil pointer fields take their
// defaults, so an explicit zero stays zero.
type Button struct {
	Name         string         `mapstructure:"name"`
	Pin          int            `mapstructure:"pin"`
	Mode         string         `mapstructure:"mode"`
	Debounce     *time.Duration `mapstructure:"debounce"`
	DebounceMode string         `mapstructure:"debounce_mode"`
	ActiveLow    bool           `mapstructure:"active_low"`
}

type Voltage struct {
	Name              string   `mapstructure:"name"`
	Pin               int      `mapstructure:"pin"`
	Bits              int      `mapstructure:"bits"`
	Sleep             *bool    `mapstructure:"sleep"`
	SnapMultiplier    *float64 `mapstructure:"snap_multiplier"`
	ActivityThreshold *float64 `mapstructure:"activity_threshold"`
}

// Sketch is the whole configuration of one board.
type Sketch struct {
	Interval    time.Duration     `mapstructure:"interval"`
	Logger      pinobs.LoggerType `mapstructure:"logger"`
	LogLevel    string            `mapstructure:"log_level"`
	MetricsAddr string            `mapstructure:"metrics_addr"`
	Buttons     []Button          `mapstructure:"buttons"`
	Voltages    []Voltage         `mapstructure:"voltages"`
}

// Loader reads one sketch file and can watch it for changes.
type Loader struct {
	v *viper.Viper
}

func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configType)

	v.SetDefault(configKeyInterval, loop.DefaultInterval)
	v.SetDefault(configKeyLogger, string(defaultLogger))
	v.SetDefault(configKeyLogLevel, defaultLogLevel)
	v.SetDefault(configKeyMetricsAddr, defaultMetricsAddr)
	v.SetDefault(configKeyButtons, []map[string]any{})
	v.SetDefault(configKeyVoltages, []map[string]any{})

	return &Loader{v: v}
}

func Load(path string) (*Sketch, error) {
	return NewLoader(path).Load()
}

func (l *Loader) Path() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) Load() (*Sketch, error) {
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read sketch %s: %w", l.Path(), err)
	}

	return l.decode()
}

// Watch reloads the sketch whenever the file is written and hands the
// result to fn. It returns immediately; fn runs on viper's watcher goroutine.
func (l *Loader) Watch(fn func(*Sketch, error)) {
	l.v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Sketch, error) {
	var s Sketch
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode sketch %s: %w", l.Path(), err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Changed lists the top-level keys whose values differ between s and next.
func (s *Sketch) Changed(next *Sketch) []string {
	var keys []string
	if s.Interval != next.Interval {
		keys = append(keys, configKeyInterval)
	}
	if s.Logger != next.Logger {
		keys = append(keys, configKeyLogger)
	}
	if s.LogLevel != next.LogLevel {
		keys = append(keys, configKeyLogLevel)
	}
	if s.MetricsAddr != next.MetricsAddr {
		keys = append(keys, configKeyMetricsAddr)
	}
	if !reflect.DeepEqual(s.Buttons, next.Buttons) {
		keys = append(keys, configKeyButtons)
	}
	if !reflect.DeepEqual(s.Voltages, next.Voltages) {
		keys = append(keys, configKeyVoltages)
	}
	return keys
}

func (s *Sketch) applyDefaults() {
	for i := range s.Buttons {
		b := &s.Buttons[i]
		if b.Mode == "" {
			b.Mode = hal.InputPullup.String()
		}
		if b.Debounce == nil {
			b.Debounce = ptr(device.DefaultDebounce)
		}
		if b.DebounceMode == "" {
			b.DebounceMode = debounce.Stable.String()
		}
	}

	for i := range s.Voltages {
		v := &s.Voltages[i]
		if v.Bits == 0 {
			v.Bits = pinobs.DefaultResolutionBits
		}
		if v.Sleep == nil {
			v.Sleep = ptr(true)
		}
		if v.SnapMultiplier == nil {
			v.SnapMultiplier = ptr(smooth.DefaultSnapMultiplier)
		}
		if v.ActivityThreshold == nil {
			v.ActivityThreshold = ptr(smooth.DefaultActivityThreshold)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func (s *Sketch) Validate() error {
	if s.Interval <= 0 {
		return errorx.ErrInterval
	}
	if !s.Logger.Validate() {
		return fmt.Errorf("%w: %q", errorx.ErrLoggerType, s.Logger)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return err
	}

	names := make(map[string]struct{}, len(s.Buttons)+len(s.Voltages))
	checkName := func(name string) error {
		if name == "" {
			return errorx.ErrEmptyName
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("%w: %q", errorx.ErrDuplicateName, name)
		}
		names[name] = struct{}{}
		return nil
	}

	for _, b := range s.Buttons {
		if err := checkName(b.Name); err != nil {
			return err
		}
		if b.Pin < 0 {
			return fmt.Errorf("button %q: %w", b.Name, errorx.ErrInvalidPin)
		}
		if _, err := hal.ParseMode(b.Mode); err != nil {
			return fmt.Errorf("button %q: %w", b.Name, err)
		}
		if _, err := debounce.ParseMode(b.DebounceMode); err != nil {
			return fmt.Errorf("button %q: %w", b.Name, err)
		}
		if b.Debounce != nil && *b.Debounce < 0 {
			return fmt.Errorf("button %q: %w", b.Name, errorx.ErrDebounce)
		}
	}

	for _, v := range s.Voltages {
		if err := checkName(v.Name); err != nil {
			return err
		}
		if v.Pin < 0 {
			return fmt.Errorf("voltage %q: %w", v.Name, errorx.ErrInvalidPin)
		}
		if v.Bits < pinobs.MinResolutionBits || v.Bits > pinobs.MaxResolutionBits {
			return fmt.Errorf("voltage %q: %w", v.Name, errorx.ErrResolutionBits)
		}
	}

	return nil
}

type encodedButton struct {
	Name         string `yaml:"name"`
	Pin          int    `yaml:"pin"`
	Mode         string `yaml:"mode"`
	Debounce     string `yaml:"debounce"`
	DebounceMode string `yaml:"debounce_mode"`
	ActiveLow    bool   `yaml:"active_low"`
}

type encodedVoltage struct {
	Name              string  `yaml:"name"`
	Pin               int     `yaml:"pin"`
	Bits              int     `yaml:"bits"`
	Sleep             bool    `yaml:"sleep"`
	SnapMultiplier    float64 `yaml:"snap_multiplier"`
	ActivityThreshold float64 `yaml:"activity_threshold"`
}

type encodedSketch struct {
	Interval    string           `yaml:"interval"`
	Logger      string           `yaml:"logger"`
	LogLevel    string           `yaml:"log_level"`
	MetricsAddr string           `yaml:"metrics_addr"`
	Buttons     []encodedButton  `yaml:"buttons"`
	Voltages    []encodedVoltage `yaml:"voltages"`
}

// Encode writes the effective sketch as YAML. Durations are written in
// time.Duration notation so the output loads back unchanged.
func (s *Sketch) Encode(w io.Writer) error {
	es := encodedSketch{
		Interval:    s.Interval.String(),
		Logger:      s.Logger.String(),
		LogLevel:    s.LogLevel,
		MetricsAddr: s.MetricsAddr,
		Buttons:     make([]encodedButton, 0, len(s.Buttons)),
		Voltages:    make([]encodedVoltage, 0, len(s.Voltages)),
	}
	for _, b := range s.Buttons {
		es.Buttons = append(es.Buttons, encodedButton{
			Name:         b.Name,
			Pin:          b.Pin,
			Mode:         b.Mode,
			Debounce:     deref(b.Debounce, device.DefaultDebounce).String(),
			DebounceMode: b.DebounceMode,
			ActiveLow:    b.ActiveLow,
		})
	}
	for _, v := range s.Voltages {
		es.Voltages = append(es.Voltages, encodedVoltage{
			Name:              v.Name,
			Pin:               v.Pin,
			Bits:              v.Bits,
			Sleep:             deref(v.Sleep, true),
			SnapMultiplier:    deref(v.SnapMultiplier, smooth.DefaultSnapMultiplier),
			ActivityThreshold: deref(v.ActivityThreshold, smooth.DefaultActivityThreshold),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(es); err != nil {
		return fmt.Errorf("encode sketch: %w", err)
	}
	return enc.Close()
}
