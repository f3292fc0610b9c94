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

package metrics

import (
	"github.com/TimeWtr/pinobs/device"
	"github.com/TimeWtr/pinobs/observer"
	"github.com/TimeWtr/pinobs/utils/log"
)

// ConsoleObserver writes every notification to the logger.
type ConsoleObserver struct {
	l log.Logger
}

func NewConsoleObserver(l log.Logger) *ConsoleObserver {
	return &ConsoleObserver{l: l}
}

func (c *ConsoleObserver) Button(name string) *observer.Func[*device.Button] {
	l := c.l.With(log.StringField("device", name))
	return device.NewButtonObserver(func(b *device.Button, field string) {
		l.Info("button changed",
			log.StringField("field", field),
			log.IntField("pin", b.Pin()),
			log.BoolField("state", b.Get()))
	})
}

func (c *ConsoleObserver) Voltage(name string) *observer.Func[*device.Voltage] {
	l := c.l.With(log.StringField("device", name))
	return device.NewVoltageObserver(func(v *device.Voltage, field string) {
		l.Info("voltage changed",
			log.StringField("field", field),
			log.IntField("pin", v.Pin()),
			log.IntField("raw", v.RawValue()),
			log.IntField("smoothed", v.SmoothedValue()),
			log.Float64Field("normalized", v.NormalizedValue()))
	})
}
