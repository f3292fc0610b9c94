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

package pinobs

// Field names carried by device notifications.
const (
	FieldRise   = "rise"
	FieldFall   = "fall"
	FieldValue  = "value"
	FieldChange = "change"
)

type LoggerType string

const (
	ZapLogger    LoggerType = "zap"
	LogrusLogger LoggerType = "logrus"
)

func (l LoggerType) String() string {
	return string(l)
}

func (l LoggerType) Validate() bool {
	switch l {
	case ZapLogger, LogrusLogger:
		return true
	default:
		return false
	}
}

const (
	// DefaultResolutionBits is the analog resolution of a classic AVR board.
	DefaultResolutionBits = 10
	MinResolutionBits     = 1
	MaxResolutionBits     = 16
)
