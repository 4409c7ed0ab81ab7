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

// Package gpx converts GPX 1.1 documents to and from the GPS container model.
package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"m4o.io/gpstools/model"
)

type document struct {
	XMLName   xml.Name   `xml:"gpx"`
	Metadata  *metadata  `xml:"metadata"`
	WayPoints []wayPoint `xml:"wpt"`
	Tracks    []track    `xml:"trk"`
}

type metadata struct {
	Name *string `xml:"name"`
}

type wayPoint struct {
	Lat        *string     `xml:"lat,attr"`
	Lon        *string     `xml:"lon,attr"`
	Elevation  *float64    `xml:"ele"`
	Time       *time.Time  `xml:"time"`
	Name       *string     `xml:"name"`
	Type       string      `xml:"type"`
	Extensions *extensions `xml:"extensions"`
}

type track struct {
	Name     *string   `xml:"name"`
	Segments []segment `xml:"trkseg"`
}

type segment struct {
	Points []wayPoint `xml:"trkpt"`
}

// extensions matches elements by local name, so namespace prefixes chosen
// by other tools do not matter.
type extensions struct {
	TrackPoint *struct {
		HeartRate   *int32   `xml:"hr"`
		Cadence     *int32   `xml:"cad"`
		Temperature *float64 `xml:"atemp"`
		Power       *int32   `xml:"power"`
	} `xml:"TrackPointExtension"`
	Power *int32  `xml:"power"`
	ID    *string `xml:"id"`
}

// Decode reads a GPX document. Waypoints keep the id stored in their
// gpstools:id extension and get a fresh one otherwise.
func Decode(r io.Reader) (*model.GpsContainer, error) {
	var doc document

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse gpx: %w: %w", err, model.ErrInvalidFormat)
	}

	c := &model.GpsContainer{
		Name: trackName(&doc),
	}

	for i := range doc.WayPoints {
		w, err := doc.WayPoints[i].toModel()
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}

		c.WayPoints = append(c.WayPoints, w)
	}

	if len(doc.Tracks) > 0 {
		c.Track = &model.Track{}

		for _, trk := range doc.Tracks {
			for _, seg := range trk.Segments {
				for i := range seg.Points {
					p, err := seg.Points[i].toTrackPoint()
					if err != nil {
						return nil, fmt.Errorf("track point %d: %w", len(c.Track.Points), err)
					}

					c.Track.Points = append(c.Track.Points, p)
				}
			}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// trackName prefers the name of the first track over the metadata name.
func trackName(doc *document) *string {
	if len(doc.Tracks) > 0 {
		if name := nonBlank(doc.Tracks[0].Name); name != nil {
			return name
		}
	}

	if doc.Metadata != nil {
		return nonBlank(doc.Metadata.Name)
	}

	return nil
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}

	if strings.TrimSpace(*s) == "" {
		return nil
	}

	return s
}

func (p *wayPoint) coordinates() (model.Degrees, model.Degrees, error) {
	if p.Lat == nil || p.Lon == nil {
		return 0, 0, fmt.Errorf("missing lat or lon: %w", model.ErrInvalidArgument)
	}

	lat, err := model.ParseDegrees(*p.Lat)
	if err != nil {
		return 0, 0, fmt.Errorf("lat %q: %w", *p.Lat, model.ErrInvalidArgument)
	}

	lon, err := model.ParseDegrees(*p.Lon)
	if err != nil {
		return 0, 0, fmt.Errorf("lon %q: %w", *p.Lon, model.ErrInvalidArgument)
	}

	return lat, lon, nil
}

func (p *wayPoint) toTrackPoint() (model.TrackPoint, error) {
	lat, lon, err := p.coordinates()
	if err != nil {
		return model.TrackPoint{}, err
	}

	tp, err := model.NewTrackPoint(lat, lon)
	if err != nil {
		return tp, err
	}

	tp.Elevation = p.Elevation
	tp.Time = utc(p.Time)

	return tp, nil
}

func (p *wayPoint) toModel() (model.WayPoint, error) {
	lat, lon, err := p.coordinates()
	if err != nil {
		return model.WayPoint{}, err
	}

	id := uuid.New()

	if p.Extensions != nil && p.Extensions.ID != nil {
		if id, err = uuid.Parse(strings.TrimSpace(*p.Extensions.ID)); err != nil {
			return model.WayPoint{}, fmt.Errorf("id %q: %w", *p.Extensions.ID, model.ErrInvalidFormat)
		}
	}

	w, err := model.NewWayPoint(id, lat, lon)
	if err != nil {
		return w, err
	}

	w.Name = p.Name
	w.Elevation = p.Elevation
	w.Time = utc(p.Time)

	if strings.TrimSpace(p.Type) != "" {
		if w.Type, err = model.ParsePoiType(p.Type); err != nil {
			return w, err
		}
	}

	w.Extensions = p.Extensions.values()

	return w, nil
}

func (e *extensions) values() model.ExtensionValues {
	var v model.ExtensionValues

	if e == nil {
		return v
	}

	if tpe := e.TrackPoint; tpe != nil {
		v.HeartRate = tpe.HeartRate
		v.Cadence = tpe.Cadence
		v.Temperature = tpe.Temperature
		v.Power = tpe.Power
	}

	if e.Power != nil {
		v.Power = e.Power
	}

	return v
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	u := t.UTC()

	return &u
}
