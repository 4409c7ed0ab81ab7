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

package model_test

import (
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"

	"m4o.io/gpstools/model"
)

func TestDegreesAngle(t *testing.T) {
	assert.InDelta(t, 0.78539816, model.Degrees(45.0).Angle().Radians(), 1e-8)
	assert.Equal(t, s1.Angle(0), model.Degrees(0).Angle())
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees(" 53.123450 ")
	if err != nil {
		t.Error(err)
	}

	assert.InDelta(t, 53.12345, float64(d), 1e-9)

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "53° 7' 24.42\"", model.Degrees(53.123450).String())
	assert.Equal(t, "-0° 30' 0\"", model.Degrees(-0.5).String())
}

func TestDegreesMarshalJSON(t *testing.T) {
	b, err := model.Degrees(11.5).MarshalJSON()

	assert.NoError(t, err)
	assert.Equal(t, "11.5", string(b))
}
