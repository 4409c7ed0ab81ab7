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

package encoder

import (
	"fmt"
	"time"

	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

// EncodeContainer marshals the container into its protobuf message. Optional
// fields are only written when present so that absence survives decoding.
func EncodeContainer(c *model.GpsContainer) ([]byte, error) {
	var b []byte

	if c.Name != nil {
		b = wire.AppendString(b, wire.ContainerName, *c.Name)
	}

	if c.Track != nil {
		b = wire.AppendMessage(b, wire.ContainerTrack, encodeTrack(c.Track))
	}

	for i := range c.WayPoints {
		wb, err := encodeWayPoint(&c.WayPoints[i])
		if err != nil {
			return nil, err
		}

		b = wire.AppendMessage(b, wire.ContainerWayPoints, wb)
	}

	return b, nil
}

func encodeTrack(t *model.Track) []byte {
	b := make([]byte, 0, len(t.Points)*32)

	for _, p := range t.Points {
		var pb []byte

		pb = wire.AppendDouble(pb, wire.TrackPointLatitude, float64(p.Latitude))
		pb = wire.AppendDouble(pb, wire.TrackPointLongitude, float64(p.Longitude))

		if p.Elevation != nil {
			pb = wire.AppendDouble(pb, wire.TrackPointElevation, *p.Elevation)
		}

		if p.Time != nil {
			pb = wire.AppendMessage(pb, wire.TrackPointTime, encodeTimestamp(*p.Time))
		}

		b = wire.AppendMessage(b, wire.TrackPoints, pb)
	}

	return b
}

func encodeWayPoint(w *model.WayPoint) ([]byte, error) {
	typ, err := wire.PoiTypeOf(w.Type)
	if err != nil {
		return nil, fmt.Errorf("waypoint %s: %w", w.ID, err)
	}

	var b []byte

	b = wire.AppendString(b, wire.WayPointUUID, w.ID.String())

	if w.Name != nil {
		b = wire.AppendString(b, wire.WayPointName, *w.Name)
	}

	b = wire.AppendDouble(b, wire.WayPointLatitude, float64(w.Latitude))
	b = wire.AppendDouble(b, wire.WayPointLongitude, float64(w.Longitude))

	if w.Elevation != nil {
		b = wire.AppendDouble(b, wire.WayPointElevation, *w.Elevation)
	}

	if w.Time != nil {
		b = wire.AppendMessage(b, wire.WayPointTime, encodeTimestamp(*w.Time))
	}

	b = wire.AppendInt32(b, wire.WayPointType, int32(typ))

	if !w.Extensions.IsEmpty() {
		b = wire.AppendMessage(b, wire.WayPointExtensions, encodeExtensions(w.Extensions))
	}

	return b, nil
}

func encodeTimestamp(t time.Time) []byte {
	b := wire.AppendInt64(nil, wire.TimestampSeconds, t.Unix())

	if nanos := t.Nanosecond(); nanos != 0 {
		b = wire.AppendInt32(b, wire.TimestampNanos, int32(nanos))
	}

	return b
}

func encodeExtensions(e model.ExtensionValues) []byte {
	var b []byte

	if e.HeartRate != nil {
		b = wire.AppendInt32(b, wire.ExtensionHeartRate, *e.HeartRate)
	}

	if e.Cadence != nil {
		b = wire.AppendInt32(b, wire.ExtensionCadence, *e.Cadence)
	}

	if e.Temperature != nil {
		b = wire.AppendDouble(b, wire.ExtensionTemperature, *e.Temperature)
	}

	if e.Power != nil {
		b = wire.AppendInt32(b, wire.ExtensionPower, *e.Power)
	}

	return b
}
