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

package errorx

import (
	"errors"
)

var (
	ErrResolutionBits = errors.New("analog resolution bits must be between 1 and 16")
	ErrInvalidPin     = errors.New("pin number cannot be negative")
	ErrPinMode        = errors.New("unknown pin mode")
	ErrDebounceMode   = errors.New("unknown debounce mode")
	ErrDebounce       = errors.New("debounce duration cannot be negative")
)

var (
	ErrDuplicateName = errors.New("device name is already used")
	ErrEmptyName     = errors.New("device name cannot be empty")
	ErrInterval      = errors.New("loop interval must be positive")
	ErrLoggerType    = errors.New("unknown logger type")
	ErrLogLevel      = errors.New("unknown log level")
)
