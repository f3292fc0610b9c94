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
	"net/http"

	"github.com/TimeWtr/pinobs/device"
	"github.com/TimeWtr/pinobs/observer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "pinobs"

// Prometheus exports device notifications. Each device gets its own
// observer, labelled with the device name.
type Prometheus struct {
	registry          *prometheus.Registry
	notifications     *prometheus.CounterVec // notifications by device and field
	buttonLevel       *prometheus.GaugeVec   // debounced level, 0 or 1
	voltageRaw        *prometheus.GaugeVec   // last raw reading
	voltageNormalized *prometheus.GaugeVec   // smoothed value in [0, 1]
}

func NewPrometheus(namespace string) *Prometheus {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	p := &Prometheus{registry: prometheus.NewRegistry()}
	p.notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Number of notifications published by a device.",
	}, []string{"device", "field"})

	p.buttonLevel = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "button_level",
		Help:      "Debounced button level.",
	}, []string{"device"})

	p.voltageRaw = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "voltage_raw",
		Help:      "Last raw analog reading.",
	}, []string{"device"})

	p.voltageNormalized = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "voltage_normalized",
		Help:      "Smoothed analog reading scaled to [0, 1].",
	}, []string{"device"})

	p.registry.MustRegister(
		p.notifications,
		p.buttonLevel,
		p.voltageRaw,
		p.voltageNormalized,
	)

	return p
}

func (p *Prometheus) ButtonObserver(name string) *observer.Func[*device.Button] {
	return device.NewButtonObserver(func(b *device.Button, field string) {
		p.notifications.WithLabelValues(name, field).Inc()
		p.buttonLevel.WithLabelValues(name).Set(boolToFloat(b.Get()))
	})
}

func (p *Prometheus) VoltageObserver(name string) *observer.Func[*device.Voltage] {
	return device.NewVoltageObserver(func(v *device.Voltage, field string) {
		p.notifications.WithLabelValues(name, field).Inc()
		p.voltageRaw.WithLabelValues(name).Set(float64(v.RawValue()))
		p.voltageNormalized.WithLabelValues(name).Set(v.NormalizedValue())
	})
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry for scraping.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(
		p.registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
