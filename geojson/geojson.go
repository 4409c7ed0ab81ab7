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

// Package geojson converts waypoint updates between GeoJSON point features
// and the GPS container model.
package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"m4o.io/gpstools/model"
)

const (
	TypeFeature           = "Feature"
	TypeFeatureCollection = "FeatureCollection"
	TypePoint             = "Point"

	PropertyName        = "name"
	PropertyType        = "type"
	PropertyUUID        = "uuid"
	PropertyHeartRate   = "heartRate"
	PropertyCadence     = "cadence"
	PropertyTemperature = "temperature"
	PropertyPower       = "power"
)

// Geometry is a GeoJSON geometry. Coordinates are [lon, lat] or
// [lon, lat, ele].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Candidate is one incoming waypoint of an update, in domain order.
type Candidate struct {
	Latitude   model.Degrees
	Longitude  model.Degrees
	Elevation  *float64
	Name       *string
	Type       model.PoiType
	ID         *uuid.UUID
	Extensions model.ExtensionValues
}

// Update is the non-empty sequence of candidates of a waypoint update,
// whether it arrived as a single Feature or as a FeatureCollection.
type Update struct {
	Candidates []Candidate
}

type envelope struct {
	Type       string         `json:"type"`
	Features   []Feature      `json:"features"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// DecodeUpdate parses a Feature or a FeatureCollection.
func DecodeUpdate(data []byte) (Update, error) {
	var env envelope

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&env); err != nil {
		return Update{}, fmt.Errorf("could not parse geojson: %w: %w", err, model.ErrInvalidArgument)
	}

	var features []Feature

	switch env.Type {
	case TypeFeature:
		if env.Geometry == nil {
			return Update{}, fmt.Errorf("feature without geometry: %w", model.ErrInvalidArgument)
		}

		features = []Feature{{Type: env.Type, Geometry: *env.Geometry, Properties: env.Properties}}
	case TypeFeatureCollection:
		features = env.Features
	default:
		return Update{}, fmt.Errorf("unsupported geojson type %q: %w", env.Type, model.ErrInvalidArgument)
	}

	return NewUpdate(features...)
}

// NewUpdate normalizes features into an Update.
func NewUpdate(features ...Feature) (Update, error) {
	if len(features) == 0 {
		return Update{}, fmt.Errorf("no features: %w", model.ErrInvalidArgument)
	}

	u := Update{Candidates: make([]Candidate, 0, len(features))}

	for i := range features {
		c, err := candidate(&features[i])
		if err != nil {
			return Update{}, fmt.Errorf("feature %d: %w", i, err)
		}

		u.Candidates = append(u.Candidates, c)
	}

	return u, nil
}

func candidate(f *Feature) (Candidate, error) {
	var c Candidate

	if f.Type != "" && f.Type != TypeFeature {
		return c, fmt.Errorf("unsupported feature type %q: %w", f.Type, model.ErrInvalidArgument)
	}

	if !strings.EqualFold(f.Geometry.Type, TypePoint) {
		return c, fmt.Errorf("unsupported geometry %q: %w", f.Geometry.Type, model.ErrInvalidArgument)
	}

	coords := f.Geometry.Coordinates
	if len(coords) != 2 && len(coords) != 3 {
		return c, fmt.Errorf("point needs 2 or 3 coordinates, got %d: %w", len(coords), model.ErrInvalidArgument)
	}

	c.Longitude, c.Latitude = model.Degrees(coords[0]), model.Degrees(coords[1])

	if err := model.ValidateCoordinates(c.Latitude, c.Longitude); err != nil {
		return c, err
	}

	if len(coords) == 3 {
		c.Elevation = model.Ptr(coords[2])
	}

	props := f.Properties

	var err error

	if c.Name, err = stringProperty(props, PropertyName); err != nil {
		return c, err
	}

	typ, err := stringProperty(props, PropertyType)
	if err != nil {
		return c, err
	}

	if typ != nil && strings.TrimSpace(*typ) != "" {
		if c.Type, err = model.ParsePoiType(*typ); err != nil {
			return c, err
		}
	}

	id, err := stringProperty(props, PropertyUUID)
	if err != nil {
		return c, err
	}

	if id != nil {
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return c, fmt.Errorf("uuid %q: %w", *id, model.ErrInvalidArgument)
		}

		c.ID = &parsed
	}

	if c.Extensions.HeartRate, err = int32Property(props, PropertyHeartRate); err != nil {
		return c, err
	}

	if c.Extensions.Cadence, err = int32Property(props, PropertyCadence); err != nil {
		return c, err
	}

	if c.Extensions.Temperature, err = floatProperty(props, PropertyTemperature); err != nil {
		return c, err
	}

	if c.Extensions.Power, err = int32Property(props, PropertyPower); err != nil {
		return c, err
	}

	return c, nil
}

func stringProperty(props map[string]any, key string) (*string, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return nil, nil
	}

	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("property %s must be a string: %w", key, model.ErrInvalidArgument)
	}

	return &s, nil
}

func floatProperty(props map[string]any, key string) (*float64, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return nil, nil
	}

	var (
		f   float64
		err error
	)

	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	default:
		err = fmt.Errorf("unexpected %T", v)
	}

	if err != nil {
		return nil, fmt.Errorf("property %s must be a number: %w", key, model.ErrInvalidArgument)
	}

	return &f, nil
}

func int32Property(props map[string]any, key string) (*int32, error) {
	f, err := floatProperty(props, key)
	if err != nil || f == nil {
		return nil, err
	}

	if *f != math.Trunc(*f) || *f < math.MinInt32 || *f > math.MaxInt32 {
		return nil, fmt.Errorf("property %s must be a 32 bit integer: %w", key, model.ErrInvalidArgument)
	}

	return model.Ptr(int32(*f)), nil
}

// WayPoint returns the candidate as a waypoint with the given id.
func (c *Candidate) WayPoint(id uuid.UUID) model.WayPoint {
	return model.WayPoint{
		ID:         id,
		Name:       c.Name,
		Latitude:   c.Latitude,
		Longitude:  c.Longitude,
		Elevation:  c.Elevation,
		Type:       c.Type,
		Extensions: c.Extensions,
	}
}

// FromWayPoint renders a waypoint as a point feature.
func FromWayPoint(w *model.WayPoint) Feature {
	coords := []float64{float64(w.Longitude), float64(w.Latitude)}
	if w.Elevation != nil {
		coords = append(coords, *w.Elevation)
	}

	props := map[string]any{
		PropertyType: w.Type.String(),
		PropertyUUID: w.ID.String(),
	}

	if w.Name != nil {
		props[PropertyName] = *w.Name
	}

	e := w.Extensions
	if e.HeartRate != nil {
		props[PropertyHeartRate] = *e.HeartRate
	}

	if e.Cadence != nil {
		props[PropertyCadence] = *e.Cadence
	}

	if e.Temperature != nil {
		props[PropertyTemperature] = *e.Temperature
	}

	if e.Power != nil {
		props[PropertyPower] = *e.Power
	}

	return Feature{
		Type:       TypeFeature,
		Geometry:   Geometry{Type: TypePoint, Coordinates: coords},
		Properties: props,
	}
}

// FromWayPoints renders waypoints as a feature collection, in order.
func FromWayPoints(ws []model.WayPoint) FeatureCollection {
	fc := FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: make([]Feature, 0, len(ws)),
	}

	for i := range ws {
		fc.Features = append(fc.Features, FromWayPoint(&ws[i]))
	}

	return fc
}
