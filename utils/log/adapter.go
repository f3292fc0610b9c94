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
	"io"

	"github.com/TimeWtr/pinobs"
	"github.com/TimeWtr/pinobs/errorx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger of the given type that writes to w at level.
func New(tp pinobs.LoggerType, level Level, w io.Writer) (Logger, error) {
	if !level.valid() {
		return nil, fmt.Errorf("%w: %d", errorx.ErrLogLevel, level)
	}

	switch tp {
	case pinobs.ZapLogger:
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapcore.DebugLevel)
		l := NewZapAdapter(zap.New(core))
		return l, l.SetLevel(level)
	case pinobs.LogrusLogger:
		logger := logrus.New()
		logger.SetOutput(w)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l := NewLogrusAdapter(logger)
		return l, l.SetLevel(level)
	default:
		return nil, fmt.Errorf("%w: %q", errorx.ErrLoggerType, tp)
	}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return NewZapAdapter(zap.NewNop())
}
