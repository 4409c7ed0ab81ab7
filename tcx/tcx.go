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

// Package tcx exports GPS containers as Garmin Training Center courses.
package tcx

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"m4o.io/gpstools/model"
)

const (
	Namespace = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"

	// Intensity is the fixed intensity of the single lap of a course.
	Intensity = "Active"

	unnamed   = "unnamed"
	xmlIndent = "  "
)

// TrainingCenterDatabase is the root of a TCX document.
type TrainingCenterDatabase struct {
	XMLName xml.Name `xml:"TrainingCenterDatabase"`
	Xmlns   string   `xml:"xmlns,attr"`
	Courses []Course `xml:"Courses>Course"`
}

type Course struct {
	Name         string        `xml:"Name"`
	Lap          Lap           `xml:"Lap"`
	Track        []Trackpoint  `xml:"Track>Trackpoint"`
	CoursePoints []CoursePoint `xml:"CoursePoint"`
}

type Lap struct {
	TotalTimeSeconds float64  `xml:"TotalTimeSeconds"`
	DistanceMeters   float64  `xml:"DistanceMeters"`
	BeginPosition    Position `xml:"BeginPosition"`
	EndPosition      Position `xml:"EndPosition"`
	Intensity        string   `xml:"Intensity"`
}

type Position struct {
	LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
	LongitudeDegrees float64 `xml:"LongitudeDegrees"`
}

type Trackpoint struct {
	Time           Timestamp `xml:"Time"`
	Position       Position  `xml:"Position"`
	AltitudeMeters float64   `xml:"AltitudeMeters"`
	DistanceMeters float64   `xml:"DistanceMeters"`
}

type CoursePoint struct {
	Name      string    `xml:"Name"`
	Time      Timestamp `xml:"Time"`
	Position  Position  `xml:"Position"`
	PointType string    `xml:"PointType"`
}

// Timestamp serializes as an RFC 3339 UTC date.
type Timestamp time.Time

func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(time.Time(t).UTC().Format(time.RFC3339Nano)), nil
}

func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(text))
	if err != nil {
		return err
	}

	*t = Timestamp(parsed.UTC())

	return nil
}

func position(lat, lon model.Degrees) Position {
	return Position{LatitudeDegrees: float64(lat), LongitudeDegrees: float64(lon)}
}

// Build creates a document holding one course for the container. Elevation
// and time are required on every track point, time and name on every
// waypoint.
func Build(c *model.GpsContainer) (*TrainingCenterDatabase, error) {
	if c == nil || c.Track == nil || len(c.Track.Points) == 0 {
		return nil, fmt.Errorf("course needs at least one track point: %w", model.ErrInvalidArgument)
	}

	points := c.Track.Points
	first, last := points[0], points[len(points)-1]

	if first.Time == nil || last.Time == nil {
		return nil, fmt.Errorf("first and last track point need a time: %w", model.ErrInvalidArgument)
	}

	course := Course{
		Name: unnamed,
		Lap: Lap{
			TotalTimeSeconds: float64(last.Time.Unix() - first.Time.Unix()),
			DistanceMeters:   c.Track.Length(),
			BeginPosition:    position(first.Latitude, first.Longitude),
			EndPosition:      position(last.Latitude, last.Longitude),
			Intensity:        Intensity,
		},
		Track: make([]Trackpoint, 0, len(points)),
	}

	if c.Name != nil {
		course.Name = *c.Name
	}

	distances := c.Track.CumulativeDistances()

	for i, p := range points {
		if p.Elevation == nil {
			return nil, fmt.Errorf("track point %d has no elevation: %w", i, model.ErrInvalidArgument)
		}

		if p.Time == nil {
			return nil, fmt.Errorf("track point %d has no time: %w", i, model.ErrInvalidArgument)
		}

		course.Track = append(course.Track, Trackpoint{
			Time:           Timestamp(*p.Time),
			Position:       position(p.Latitude, p.Longitude),
			AltitudeMeters: *p.Elevation,
			DistanceMeters: distances[i],
		})
	}

	for _, w := range c.WayPoints {
		if w.Name == nil {
			return nil, fmt.Errorf("waypoint %s has no name: %w", w.ID, model.ErrInvalidArgument)
		}

		if w.Time == nil {
			return nil, fmt.Errorf("waypoint %s has no time: %w", w.ID, model.ErrInvalidArgument)
		}

		if !w.Type.Valid() {
			return nil, fmt.Errorf("waypoint %s: poi type %d: %w", w.ID, int32(w.Type), model.ErrInvalidFormat)
		}

		course.CoursePoints = append(course.CoursePoints, CoursePoint{
			Name:      *w.Name,
			Time:      Timestamp(*w.Time),
			Position:  position(w.Latitude, w.Longitude),
			PointType: w.Type.TCXType(),
		})
	}

	return &TrainingCenterDatabase{
		Xmlns:   Namespace,
		Courses: []Course{course},
	}, nil
}

// Encode writes the document with an XML declaration and indentation.
func Encode(w io.Writer, db *TrainingCenterDatabase) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("could not write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", xmlIndent)

	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("could not encode tcx: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode tcx: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("could not encode tcx: %w", err)
	}

	return nil
}

// Export builds and encodes the course of the container.
func Export(w io.Writer, c *model.GpsContainer) error {
	db, err := Build(c)
	if err != nil {
		return err
	}

	return Encode(w, db)
}
