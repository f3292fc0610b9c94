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
	"sync/atomic"

	"github.com/TimeWtr/pinobs/errorx"
	"github.com/sirupsen/logrus"
)

type LogrusAdapter struct {
	entry *logrus.Entry
	level *atomic.Int32
}

func NewLogrusAdapter(logger *logrus.Logger) Logger {
	logger.SetLevel(logrus.TraceLevel)
	lv := new(atomic.Int32)
	lv.Store(int32(LevelInfo))
	return &LogrusAdapter{
		entry: logrus.NewEntry(logger),
		level: lv,
	}
}

func (l *LogrusAdapter) Debug(msg string, args ...Field) {
	l.log(LevelDebug, msg, args...)
}

func (l *LogrusAdapter) Info(msg string, args ...Field) {
	l.log(LevelInfo, msg, args...)
}

func (l *LogrusAdapter) Warn(msg string, args ...Field) {
	l.log(LevelWarn, msg, args...)
}

func (l *LogrusAdapter) Error(msg string, args ...Field) {
	l.log(LevelError, msg, args...)
}

func (l *LogrusAdapter) Fatal(msg string, args ...Field) {
	l.log(LevelFatal, msg, args...)
}

func (l *LogrusAdapter) Panic(msg string, args ...Field) {
	l.log(LevelPanic, msg, args...)
}

func (l *LogrusAdapter) Sync() error {
	return nil
}

// With returns a child logger. The child shares the parent's level.
func (l *LogrusAdapter) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}

	return &LogrusAdapter{
		entry: l.entry.WithFields(toLogrusFields(fields)),
		level: l.level,
	}
}

func (l *LogrusAdapter) SetLevel(level Level) error {
	if !level.valid() {
		return fmt.Errorf("%w: %d", errorx.ErrLogLevel, level)
	}
	l.level.Store(int32(level))
	return nil
}

func (l *LogrusAdapter) log(level Level, msg string, fields ...Field) {
	if level < Level(l.level.Load()) {
		return
	}

	entry := l.entry
	if len(fields) > 0 {
		entry = entry.WithFields(toLogrusFields(fields))
	}

	switch level {
	case LevelDebug:
		entry.Debug(msg)
	case LevelInfo:
		entry.Info(msg)
	case LevelWarn:
		entry.Warn(msg)
	case LevelError:
		entry.Error(msg)
	case LevelFatal:
		entry.Fatal(msg)
	case LevelPanic:
		entry.Panic(msg)
	default:
	}
}

func toLogrusFields(fields []Field) logrus.Fields {
	lf := make(logrus.Fields, len(fields))
	for _, field := range fields {
		lf[field.Key] = field.Val
	}
	return lf
}
