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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/gpstools/model"
)

func TestPoiTypeMappingIsBijective(t *testing.T) {
	types := model.PoiTypes()
	require.Len(t, types, 16)

	codes := make(map[string]struct{})
	tcxCodes := make(map[string]struct{})

	for _, pt := range types {
		t.Run(pt.String(), func(t *testing.T) {
			parsed, err := model.ParsePoiType(pt.String())
			require.NoError(t, err)
			assert.Equal(t, pt, parsed)

			fromTCX, err := model.PoiTypeFromTCX(pt.TCXType())
			require.NoError(t, err)
			assert.Equal(t, pt, fromTCX)
		})

		codes[pt.String()] = struct{}{}
		tcxCodes[pt.TCXType()] = struct{}{}
	}

	assert.Len(t, codes, len(types))
	assert.Len(t, tcxCodes, len(types))
}

func TestParsePoiTypeTolerance(t *testing.T) {
	testCases := []struct {
		code     string
		expected model.PoiType
	}{
		{"summit", model.SUMMIT},
		{"First Aid", model.FIRST_AID},
		{"hors-category", model.HORS_CATEGORY},
		{" SPRINT ", model.SPRINT},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			pt, err := model.ParsePoiType(tc.code)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, pt)
		})
	}
}

func TestParsePoiTypeUnknown(t *testing.T) {
	_, err := model.ParsePoiType("CAMPSITE")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)

	_, err = model.PoiTypeFromTCX("Campsite")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}

func TestPoiTypeText(t *testing.T) {
	b, err := model.THIRD_CATEGORY.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "THIRD_CATEGORY", string(b))

	var pt model.PoiType
	require.NoError(t, pt.UnmarshalText([]byte("water")))
	assert.Equal(t, model.WATER, pt)

	_, err = model.PoiType(42).MarshalText()
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
	assert.Equal(t, "PoiType(42)", model.PoiType(42).String())
}
