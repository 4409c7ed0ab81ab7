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

package decoder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

// DecodeContainer unmarshals a container message.
func DecodeContainer(b []byte) (*model.GpsContainer, error) {
	c := &model.GpsContainer{}

	err := wire.EachField(b, func(f wire.Field) error {
		switch f.Num {
		case wire.ContainerName:
			name, err := f.Text()
			if err != nil {
				return err
			}

			c.Name = &name
		case wire.ContainerTrack:
			msg, err := f.Message()
			if err != nil {
				return err
			}

			if c.Track, err = decodeTrack(msg); err != nil {
				return err
			}
		case wire.ContainerWayPoints:
			msg, err := f.Message()
			if err != nil {
				return err
			}

			w, err := decodeWayPoint(msg)
			if err != nil {
				return err
			}

			c.WayPoints = append(c.WayPoints, w)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error decoding container: %w", err)
	}

	return c, nil
}

func decodeTrack(b []byte) (*model.Track, error) {
	t := &model.Track{}

	err := wire.EachField(b, func(f wire.Field) error {
		if f.Num != wire.TrackPoints {
			return nil
		}

		msg, err := f.Message()
		if err != nil {
			return err
		}

		p, err := decodeTrackPoint(msg)
		if err != nil {
			return err
		}

		t.Points = append(t.Points, p)

		return nil
	})

	return t, err
}

func decodeTrackPoint(b []byte) (model.TrackPoint, error) {
	var p model.TrackPoint

	var hasLat, hasLon bool

	err := wire.EachField(b, func(f wire.Field) (err error) {
		switch f.Num {
		case wire.TrackPointLatitude:
			var v float64
			v, err = f.Double()
			p.Latitude, hasLat = model.Degrees(v), true
		case wire.TrackPointLongitude:
			var v float64
			v, err = f.Double()
			p.Longitude, hasLon = model.Degrees(v), true
		case wire.TrackPointElevation:
			var v float64
			if v, err = f.Double(); err == nil {
				p.Elevation = &v
			}
		case wire.TrackPointTime:
			p.Time, err = decodeTimestampField(f)
		}

		return err
	})
	if err != nil {
		return p, err
	}

	if !hasLat || !hasLon {
		return p, fmt.Errorf("track point without coordinates: %w", model.ErrInvalidFormat)
	}

	return p, nil
}

func decodeWayPoint(b []byte) (model.WayPoint, error) {
	var w model.WayPoint

	var hasID, hasLat, hasLon bool

	err := wire.EachField(b, func(f wire.Field) (err error) {
		switch f.Num {
		case wire.WayPointUUID:
			var s string
			if s, err = f.Text(); err != nil {
				return err
			}

			if w.ID, err = uuid.Parse(s); err != nil {
				return fmt.Errorf("waypoint id %q: %w: %w", s, err, model.ErrInvalidFormat)
			}

			hasID = true
		case wire.WayPointName:
			var s string
			if s, err = f.Text(); err == nil {
				w.Name = &s
			}
		case wire.WayPointLatitude:
			var v float64
			v, err = f.Double()
			w.Latitude, hasLat = model.Degrees(v), true
		case wire.WayPointLongitude:
			var v float64
			v, err = f.Double()
			w.Longitude, hasLon = model.Degrees(v), true
		case wire.WayPointElevation:
			var v float64
			if v, err = f.Double(); err == nil {
				w.Elevation = &v
			}
		case wire.WayPointTime:
			w.Time, err = decodeTimestampField(f)
		case wire.WayPointType:
			var v int32
			if v, err = f.Int32(); err != nil {
				return err
			}

			w.Type, err = wire.PoiType(v).Model()
		case wire.WayPointExtensions:
			var msg []byte
			if msg, err = f.Message(); err != nil {
				return err
			}

			w.Extensions, err = decodeExtensions(msg)
		}

		return err
	})
	if err != nil {
		return w, err
	}

	if !hasID || !hasLat || !hasLon {
		return w, fmt.Errorf("waypoint without id or coordinates: %w", model.ErrInvalidFormat)
	}

	return w, nil
}

func decodeTimestampField(f wire.Field) (*time.Time, error) {
	msg, err := f.Message()
	if err != nil {
		return nil, err
	}

	var secs, nanos int64

	err = wire.EachField(msg, func(f wire.Field) (err error) {
		switch f.Num {
		case wire.TimestampSeconds:
			secs, err = f.Int64()
		case wire.TimestampNanos:
			var v int32
			v, err = f.Int32()
			nanos = int64(v)
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	if nanos < 0 || nanos >= int64(time.Second) {
		return nil, fmt.Errorf("timestamp nanos %d out of range: %w", nanos, model.ErrInvalidFormat)
	}

	t := time.Unix(secs, nanos).UTC()

	return &t, nil
}

func decodeExtensions(b []byte) (model.ExtensionValues, error) {
	var e model.ExtensionValues

	int32Field := func(f wire.Field) (*int32, error) {
		v, err := f.Int32()
		if err != nil {
			return nil, err
		}

		return &v, nil
	}

	err := wire.EachField(b, func(f wire.Field) (err error) {
		switch f.Num {
		case wire.ExtensionHeartRate:
			e.HeartRate, err = int32Field(f)
		case wire.ExtensionCadence:
			e.Cadence, err = int32Field(f)
		case wire.ExtensionTemperature:
			var v float64
			if v, err = f.Double(); err == nil {
				e.Temperature = &v
			}
		case wire.ExtensionPower:
			e.Power, err = int32Field(f)
		}

		return err
	})

	return e, err
}
