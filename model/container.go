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
	"math"
	"time"

	"github.com/golang/geo/s2"
	"github.com/google/uuid"

	"m4o.io/gpstools/geodesy"
)

// GpsContainer is the root aggregate: an optional named track plus the
// points of interest along it.
type GpsContainer struct {
	Name      *string
	Track     *Track
	WayPoints []WayPoint
}

// Track is a time-ordered sequence of sample points.
type Track struct {
	Points []TrackPoint
}

// TrackPoint is a single sample of a recorded or planned track.
type TrackPoint struct {
	Latitude  Degrees
	Longitude Degrees
	Elevation *float64
	Time      *time.Time
}

// WayPoint is a point of interest, distinct from the track samples.
type WayPoint struct {
	ID         uuid.UUID
	Name       *string
	Latitude   Degrees
	Longitude  Degrees
	Elevation  *float64
	Time       *time.Time
	Type       PoiType
	Extensions ExtensionValues
}

// ValidateCoordinates checks that lat and lon lie on the WGS84 globe.
func ValidateCoordinates(lat, lon Degrees) error {
	if math.IsNaN(float64(lat)) || lat < MinLat || lat > MaxLat {
		return fmt.Errorf("latitude %v out of range: %w", float64(lat), ErrInvalidArgument)
	}

	if math.IsNaN(float64(lon)) || lon < MinLon || lon > MaxLon {
		return fmt.Errorf("longitude %v out of range: %w", float64(lon), ErrInvalidArgument)
	}

	return nil
}

// NewTrackPoint returns a track point at lat, lon.
func NewTrackPoint(lat, lon Degrees) (TrackPoint, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return TrackPoint{}, err
	}

	return TrackPoint{Latitude: lat, Longitude: lon}, nil
}

// NewWayPoint returns a GENERIC waypoint at lat, lon.
func NewWayPoint(id uuid.UUID, lat, lon Degrees) (WayPoint, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return WayPoint{}, fmt.Errorf("waypoint %s: %w", id, err)
	}

	return WayPoint{ID: id, Latitude: lat, Longitude: lon, Type: GENERIC}, nil
}

// LatLng returns the point as an s2.LatLng.
func (p TrackPoint) LatLng() s2.LatLng {
	return s2.LatLng{Lat: p.Latitude.Angle(), Lng: p.Longitude.Angle()}
}

// Validate checks the coordinates of the point.
func (p TrackPoint) Validate() error {
	return ValidateCoordinates(p.Latitude, p.Longitude)
}

// LatLng returns the point as an s2.LatLng.
func (w WayPoint) LatLng() s2.LatLng {
	return s2.LatLng{Lat: w.Latitude.Angle(), Lng: w.Longitude.Angle()}
}

// Validate checks the coordinates and type of the waypoint.
func (w WayPoint) Validate() error {
	if err := ValidateCoordinates(w.Latitude, w.Longitude); err != nil {
		return fmt.Errorf("waypoint %s: %w", w.ID, err)
	}

	if !w.Type.Valid() {
		return fmt.Errorf("waypoint %s: poi type %d: %w", w.ID, int32(w.Type), ErrInvalidFormat)
	}

	return nil
}

// LatLngs returns the track points as s2.LatLng values, in order.
func (t *Track) LatLngs() []s2.LatLng {
	if t == nil {
		return nil
	}

	points := make([]s2.LatLng, len(t.Points))
	for i, p := range t.Points {
		points[i] = p.LatLng()
	}

	return points
}

// Length returns the length of the track in meters on the WGS84 ellipsoid.
func (t *Track) Length() float64 {
	return geodesy.TrackLength(t.LatLngs())
}

// CumulativeDistances returns the distance in meters from the first point
// to every point of the track.
func (t *Track) CumulativeDistances() []float64 {
	return geodesy.CumulativeDistances(t.LatLngs())
}

// TrackPointCount returns the number of track points, zero without a track.
func (c *GpsContainer) TrackPointCount() int {
	if c.Track == nil {
		return 0
	}

	return len(c.Track.Points)
}

// BoundingBox returns the extent of all track points and waypoints.
func (c *GpsContainer) BoundingBox() *BoundingBox {
	bbox := InitialBoundingBox()

	if c.Track != nil {
		for _, p := range c.Track.Points {
			bbox.ExpandWithLatLng(p.Latitude, p.Longitude)
		}
	}

	for _, w := range c.WayPoints {
		bbox.ExpandWithLatLng(w.Latitude, w.Longitude)
	}

	return bbox
}

// Validate checks every point of the container.
func (c *GpsContainer) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(c.WayPoints))

	for _, w := range c.WayPoints {
		if err := w.Validate(); err != nil {
			return err
		}

		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("duplicate waypoint id %s: %w", w.ID, ErrInvalidArgument)
		}

		seen[w.ID] = struct{}{}
	}

	if c.Track != nil {
		for i, p := range c.Track.Points {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("track point %d: %w", i, err)
			}
		}
	}

	return nil
}

// WayPointIndex returns the position of the waypoint with id, or -1.
func (c *GpsContainer) WayPointIndex(id uuid.UUID) int {
	for i, w := range c.WayPoints {
		if w.ID == id {
			return i
		}
	}

	return -1
}
