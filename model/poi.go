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

import (
	"fmt"
	"strings"
)

// PoiType is the closed set of categories a point of interest can have.
type PoiType int32

const (
	GENERIC PoiType = iota
	SUMMIT
	VALLEY
	WATER
	FOOD
	DANGER
	LEFT
	RIGHT
	STRAIGHT
	FIRST_AID
	FOURTH_CATEGORY
	THIRD_CATEGORY
	SECOND_CATEGORY
	HORS_CATEGORY
	RESIDENCE
	SPRINT
)

type poiTypeInfo struct {
	code string
	tcx  string
}

// poiTypes is indexed by PoiType. The TCX codes are the CoursePointType
// values of the Garmin TrainingCenterDatabase v2 schema, RESIDENCE aside.
var poiTypes = [...]poiTypeInfo{
	GENERIC:         {"GENERIC", "Generic"},
	SUMMIT:          {"SUMMIT", "Summit"},
	VALLEY:          {"VALLEY", "Valley"},
	WATER:           {"WATER", "Water"},
	FOOD:            {"FOOD", "Food"},
	DANGER:          {"DANGER", "Danger"},
	LEFT:            {"LEFT", "Left"},
	RIGHT:           {"RIGHT", "Right"},
	STRAIGHT:        {"STRAIGHT", "Straight"},
	FIRST_AID:       {"FIRST_AID", "First Aid"},
	FOURTH_CATEGORY: {"FOURTH_CATEGORY", "4th Category"},
	THIRD_CATEGORY:  {"THIRD_CATEGORY", "3rd Category"},
	SECOND_CATEGORY: {"SECOND_CATEGORY", "2nd Category"},
	HORS_CATEGORY:   {"HORS_CATEGORY", "Hors Category"},
	RESIDENCE:       {"RESIDENCE", "Residence"},
	SPRINT:          {"SPRINT", "Sprint"},
}

// PoiTypes returns every PoiType in declaration order.
func PoiTypes() []PoiType {
	types := make([]PoiType, len(poiTypes))
	for i := range poiTypes {
		types[i] = PoiType(i)
	}

	return types
}

// Valid reports whether t is one of the declared variants.
func (t PoiType) Valid() bool {
	return t >= 0 && int(t) < len(poiTypes)
}

func (t PoiType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PoiType(%d)", int32(t))
	}

	return poiTypes[t].code
}

// TCXType returns the TCX course point type code.
func (t PoiType) TCXType() string {
	if !t.Valid() {
		return poiTypes[GENERIC].tcx
	}

	return poiTypes[t].tcx
}

// ParsePoiType converts a canonical code such as "FIRST_AID" into a
// PoiType. Matching ignores case and accepts '-' or ' ' in place of '_'.
func ParsePoiType(code string) (PoiType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	for i, info := range poiTypes {
		if info.code == normalized {
			return PoiType(i), nil
		}
	}

	return GENERIC, fmt.Errorf("unknown poi type %q: %w", code, ErrInvalidFormat)
}

// PoiTypeFromTCX is the inverse of PoiType.TCXType.
func PoiTypeFromTCX(code string) (PoiType, error) {
	for i, info := range poiTypes {
		if info.tcx == code {
			return PoiType(i), nil
		}
	}

	return GENERIC, fmt.Errorf("unknown tcx course point type %q: %w", code, ErrInvalidFormat)
}

func (t PoiType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("poi type %d: %w", int32(t), ErrInvalidFormat)
	}

	return []byte(t.String()), nil
}

func (t *PoiType) UnmarshalText(text []byte) error {
	parsed, err := ParsePoiType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
