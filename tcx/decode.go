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

package tcx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"m4o.io/gpstools/model"
)

const rootElement = "TrainingCenterDatabase"

// IsTCX reports whether the document element of data is a
// TrainingCenterDatabase.
func IsTCX(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}

		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local == rootElement
		}
	}
}

// Decode reads the first course of a TCX document. Course points become
// waypoints with fresh ids.
func Decode(r io.Reader) (*model.GpsContainer, error) {
	var db TrainingCenterDatabase

	if err := xml.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("could not parse tcx: %w: %w", err, model.ErrInvalidFormat)
	}

	if len(db.Courses) == 0 {
		return nil, fmt.Errorf("tcx document without course: %w", model.ErrInvalidFormat)
	}

	course := &db.Courses[0]
	c := &model.GpsContainer{Name: model.Ptr(course.Name)}

	if len(course.Track) > 0 {
		c.Track = &model.Track{Points: make([]model.TrackPoint, 0, len(course.Track))}

		for i, tp := range course.Track {
			p, err := model.NewTrackPoint(model.Degrees(tp.Position.LatitudeDegrees), model.Degrees(tp.Position.LongitudeDegrees))
			if err != nil {
				return nil, fmt.Errorf("track point %d: %w", i, err)
			}

			p.Elevation = model.Ptr(tp.AltitudeMeters)
			p.Time = tp.Time.ptr()

			c.Track.Points = append(c.Track.Points, p)
		}
	}

	for i, cp := range course.CoursePoints {
		w, err := model.NewWayPoint(uuid.New(), model.Degrees(cp.Position.LatitudeDegrees), model.Degrees(cp.Position.LongitudeDegrees))
		if err != nil {
			return nil, fmt.Errorf("course point %d: %w", i, err)
		}

		if strings.TrimSpace(cp.PointType) != "" {
			if w.Type, err = model.PoiTypeFromTCX(strings.TrimSpace(cp.PointType)); err != nil {
				return nil, fmt.Errorf("course point %d: %w", i, err)
			}
		}

		w.Name = model.Ptr(cp.Name)
		w.Time = cp.Time.ptr()

		c.WayPoints = append(c.WayPoints, w)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (t Timestamp) ptr() *time.Time {
	if time.Time(t).IsZero() {
		return nil
	}

	return model.Ptr(time.Time(t).UTC())
}
