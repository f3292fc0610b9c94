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

package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/TimeWtr/pinobs/errorx"
)

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelPanic
	LevelInvalid
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	case LevelPanic:
		return "panic"
	default:
		return "unknown"
	}
}

func (l Level) UpperString() string {
	return strings.ToUpper(l.String())
}

func (l Level) valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelPanic:
		return true
	default:
		return false
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "panic":
		return LevelPanic, nil
	default:
		return LevelInvalid, fmt.Errorf("%w: %q", errorx.ErrLogLevel, s)
	}
}

type Logger interface {
	Core
	Sync() error
	With(fields ...Field) Logger
	SetLevel(level Level) error
}

type Core interface {
	Debug(msg string, args ...Field)
	Info(msg string, args ...Field)
	Warn(msg string, args ...Field)
	Error(msg string, args ...Field)
	Fatal(msg string, args ...Field)
	Panic(msg string, args ...Field)
}

type Field struct {
	Key string
	Val any
}

func StringField(key, val string) Field {
	return Field{Key: key, Val: val}
}

func IntField(key string, val int) Field {
	return Field{Key: key, Val: val}
}

func Uint64Field(key string, val uint64) Field {
	return Field{Key: key, Val: val}
}

func Float64Field(key string, val float64) Field {
	return Field{Key: key, Val: val}
}

func BoolField(key string, val bool) Field {
	return Field{Key: key, Val: val}
}

func ErrorField(err error) Field {
	return Field{Key: "error", Val: err}
}

func DurationField(key string, val time.Duration) Field {
	return Field{Key: key, Val: val}
}

func TimeField(key string, val time.Time) Field {
	return Field{Key: key, Val: val}
}
