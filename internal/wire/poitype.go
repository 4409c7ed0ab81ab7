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

package wire

import (
	"fmt"

	"m4o.io/gpstools/model"
)

// PoiType is the persisted enumeration of point of interest categories.
// Its values are part of the storage format and must never be renumbered.
type PoiType int32

const (
	PoiTypeGeneric        PoiType = 0
	PoiTypeSummit         PoiType = 1
	PoiTypeValley         PoiType = 2
	PoiTypeWater          PoiType = 3
	PoiTypeFood           PoiType = 4
	PoiTypeDanger         PoiType = 5
	PoiTypeLeft           PoiType = 6
	PoiTypeRight          PoiType = 7
	PoiTypeStraight       PoiType = 8
	PoiTypeFirstAid       PoiType = 9
	PoiTypeFourthCategory PoiType = 10
	PoiTypeThirdCategory  PoiType = 11
	PoiTypeSecondCategory PoiType = 12
	PoiTypeHorsCategory   PoiType = 13
	PoiTypeResidence      PoiType = 14
	PoiTypeSprint         PoiType = 15
)

var toWire = map[model.PoiType]PoiType{
	model.GENERIC:         PoiTypeGeneric,
	model.SUMMIT:          PoiTypeSummit,
	model.VALLEY:          PoiTypeValley,
	model.WATER:           PoiTypeWater,
	model.FOOD:            PoiTypeFood,
	model.DANGER:          PoiTypeDanger,
	model.LEFT:            PoiTypeLeft,
	model.RIGHT:           PoiTypeRight,
	model.STRAIGHT:        PoiTypeStraight,
	model.FIRST_AID:       PoiTypeFirstAid,
	model.FOURTH_CATEGORY: PoiTypeFourthCategory,
	model.THIRD_CATEGORY:  PoiTypeThirdCategory,
	model.SECOND_CATEGORY: PoiTypeSecondCategory,
	model.HORS_CATEGORY:   PoiTypeHorsCategory,
	model.RESIDENCE:       PoiTypeResidence,
	model.SPRINT:          PoiTypeSprint,
}

var fromWire = func() map[PoiType]model.PoiType {
	m := make(map[PoiType]model.PoiType, len(toWire))
	for k, v := range toWire {
		m[v] = k
	}

	return m
}()

// PoiTypeOf maps a domain PoiType to its persisted value.
func PoiTypeOf(t model.PoiType) (PoiType, error) {
	if p, ok := toWire[t]; ok {
		return p, nil
	}

	return PoiTypeGeneric, fmt.Errorf("poi type %d: %w", int32(t), model.ErrInvalidFormat)
}

// Model maps a persisted value back to the domain PoiType.
func (p PoiType) Model() (model.PoiType, error) {
	if t, ok := fromWire[p]; ok {
		return t, nil
	}

	return model.GENERIC, fmt.Errorf("persisted poi type %d: %w", int32(p), model.ErrInvalidFormat)
}
