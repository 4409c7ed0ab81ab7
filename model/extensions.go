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

package model

import "golang.org/x/exp/constraints"

// ExtensionValues carries optional sensor readings attached to a waypoint.
type ExtensionValues struct {
	HeartRate   *int32   `json:"heartRate,omitempty"`
	Cadence     *int32   `json:"cadence,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Power       *int32   `json:"power,omitempty"`
}

// Union overlays other onto v field by field. A field present in other
// wins, otherwise the value of v is kept.
func (v ExtensionValues) Union(other ExtensionValues) ExtensionValues {
	return ExtensionValues{
		HeartRate:   overlay(v.HeartRate, other.HeartRate),
		Cadence:     overlay(v.Cadence, other.Cadence),
		Temperature: overlay(v.Temperature, other.Temperature),
		Power:       overlay(v.Power, other.Power),
	}
}

// IsEmpty reports whether no field is present.
func (v ExtensionValues) IsEmpty() bool {
	return v.HeartRate == nil && v.Cadence == nil && v.Temperature == nil && v.Power == nil
}

type numeric interface {
	constraints.Integer | constraints.Float
}

func overlay[T numeric](base, over *T) *T {
	if over != nil {
		return Ptr(*over)
	}

	if base != nil {
		return Ptr(*base)
	}

	return nil
}

// Ptr returns a pointer to a copy of val.
func Ptr[T any](val T) *T {
	return &val
}
