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
	"go.uber.org/zap"
)

type ZapAdapter struct {
	logger *zap.Logger
	level  *atomic.Int32
}

func NewZapAdapter(logger *zap.Logger) Logger {
	lv := new(atomic.Int32)
	lv.Store(int32(LevelInfo))
	return &ZapAdapter{
		logger: logger,
		level:  lv,
	}
}

func (z *ZapAdapter) Debug(msg string, args ...Field) {
	z.log(LevelDebug, msg, args...)
}

func (z *ZapAdapter) Info(msg string, args ...Field) {
	z.log(LevelInfo, msg, args...)
}

func (z *ZapAdapter) Warn(msg string, args ...Field) {
	z.log(LevelWarn, msg, args...)
}

func (z *ZapAdapter) Error(msg string, args ...Field) {
	z.log(LevelError, msg, args...)
}

func (z *ZapAdapter) Fatal(msg string, args ...Field) {
	z.log(LevelFatal, msg, args...)
}

func (z *ZapAdapter) Panic(msg string, args ...Field) {
	z.log(LevelPanic, msg, args...)
}

func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

// With returns a child logger. The child shares the parent's level.
func (z *ZapAdapter) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return z
	}

	return &ZapAdapter{
		logger: z.logger.With(toZapFields(fields)...),
		level:  z.level,
	}
}

func (z *ZapAdapter) SetLevel(level Level) error {
	if !level.valid() {
		return fmt.Errorf("%w: %d", errorx.ErrLogLevel, level)
	}
	z.level.Store(int32(level))
	return nil
}

func (z *ZapAdapter) log(level Level, msg string, fields ...Field) {
	if level < Level(z.level.Load()) {
		return
	}

	zapFields := toZapFields(fields)
	switch level {
	case LevelDebug:
		z.logger.Debug(msg, zapFields...)
	case LevelInfo:
		z.logger.Info(msg, zapFields...)
	case LevelWarn:
		z.logger.Warn(msg, zapFields...)
	case LevelError:
		z.logger.Error(msg, zapFields...)
	case LevelFatal:
		z.logger.Fatal(msg, zapFields...)
	case LevelPanic:
		z.logger.Panic(msg, zapFields...)
	default:
	}
}

func toZapFields(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		zapFields = append(zapFields, zap.Any(field.Key, field.Val))
	}
	return zapFields
}
