// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the Prometheus counters of codec conversions and
// waypoint updates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gpstools"

// Conversion directions.
const (
	Import = "import"
	Export = "export"
)

var (
	conversionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "codec",
		Name:      "conversions_total",
		Help:      "Number of format conversions by format, direction and result.",
	}, []string{"format", "direction", "result"})

	mergeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "merge",
		Name:      "updates_total",
		Help:      "Number of waypoint updates by mode and result.",
	}, []string{"mode", "result"})

	trackLengthHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "import",
		Name:      "track_length_meters",
		Help:      "Length of imported tracks.",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(conversionCounter, mergeCounter, trackLengthHistogram)
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

// RecordConversion counts a conversion of format in direction.
func RecordConversion(format, direction string, err error) {
	conversionCounter.WithLabelValues(format, direction, result(err)).Inc()
}

// RecordMerge counts a waypoint update.
func RecordMerge(merge bool, err error) {
	mode := "replace"
	if merge {
		mode = "merge"
	}

	mergeCounter.WithLabelValues(mode, result(err)).Inc()
}

// ObserveTrackLength records the length of an imported track in meters.
func ObserveTrackLength(meters float64) {
	trackLengthHistogram.Observe(meters)
}
