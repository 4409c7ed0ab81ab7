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

package gpx_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/gpstools/gpx"
	"m4o.io/gpstools/model"
)

const garminDocument = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="Garmin Connect"
     xmlns="http://www.topografix.com/GPX/1/1"
     xmlns:ns3="http://www.garmin.com/xmlschemas/TrackPointExtension/v1">
  <metadata>
    <name>metadata name</name>
  </metadata>
  <wpt lat="47.0581" lon="8.3008">
    <ele>436.5</ele>
    <time>2024-05-04T08:15:30Z</time>
    <name>Feed zone</name>
    <type>food</type>
    <extensions>
      <power>210</power>
      <ns3:TrackPointExtension>
        <ns3:atemp>18.5</ns3:atemp>
        <ns3:hr>142</ns3:hr>
        <ns3:cad>88</ns3:cad>
      </ns3:TrackPointExtension>
    </extensions>
  </wpt>
  <wpt lat="47.1" lon="8.4"/>
  <trk>
    <name>Lucerne loop</name>
    <trkseg>
      <trkpt lat="47.0500" lon="8.3000"><ele>435</ele><time>2024-05-04T08:00:00Z</time></trkpt>
      <trkpt lat="47.0510" lon="8.3010"><ele>437</ele><time>2024-05-04T08:00:10Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="47.0520" lon="8.3020"/>
    </trkseg>
  </trk>
</gpx>`

func TestDecode(t *testing.T) {
	c, err := gpx.Decode(strings.NewReader(garminDocument))
	require.NoError(t, err)

	require.NotNil(t, c.Name)
	assert.Equal(t, "Lucerne loop", *c.Name)

	require.Len(t, c.WayPoints, 2)

	w := c.WayPoints[0]
	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Equal(t, model.Degrees(47.0581), w.Latitude)
	assert.Equal(t, model.Degrees(8.3008), w.Longitude)
	assert.Equal(t, model.Ptr(436.5), w.Elevation)
	assert.Equal(t, model.Ptr(time.Date(2024, 5, 4, 8, 15, 30, 0, time.UTC)), w.Time)
	assert.Equal(t, model.Ptr("Feed zone"), w.Name)
	assert.Equal(t, model.FOOD, w.Type)
	assert.Equal(t, model.ExtensionValues{
		HeartRate:   model.Ptr[int32](142),
		Cadence:     model.Ptr[int32](88),
		Temperature: model.Ptr(18.5),
		Power:       model.Ptr[int32](210),
	}, w.Extensions)

	bare := c.WayPoints[1]
	assert.Equal(t, model.GENERIC, bare.Type)
	assert.Nil(t, bare.Name)
	assert.Nil(t, bare.Elevation)
	assert.True(t, bare.Extensions.IsEmpty())
	assert.NotEqual(t, w.ID, bare.ID)

	require.NotNil(t, c.Track)
	require.Len(t, c.Track.Points, 3)
	assert.Equal(t, model.Degrees(47.052), c.Track.Points[2].Latitude)
	assert.Nil(t, c.Track.Points[2].Time)
	assert.Equal(t, model.Ptr(437.0), c.Track.Points[1].Elevation)
}

func TestTrackNamePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		document string
		expected *string
	}{
		{
			name: "track name wins over metadata",
			document: `<gpx><metadata><name>yet another name</name></metadata>
				<trk><name>first</name><trkseg><trkpt lat="1" lon="2"/></trkseg></trk>
				<trk><name>second</name></trk></gpx>`,
			expected: model.Ptr("first"),
		},
		{
			name:     "metadata name without track",
			document: `<gpx><metadata><name>only metadata</name></metadata></gpx>`,
			expected: model.Ptr("only metadata"),
		},
		{
			name:     "metadata name when track is unnamed",
			document: `<gpx><metadata><name>only metadata</name></metadata><trk><trkseg/></trk></gpx>`,
			expected: model.Ptr("only metadata"),
		},
		{
			name:     "blank track name falls back to metadata",
			document: `<gpx><metadata><name>only metadata</name></metadata><trk><name>  </name></trk></gpx>`,
			expected: model.Ptr("only metadata"),
		},
		{
			name:     "surrounding whitespace is kept",
			document: `<gpx><trk><name> Morning Ride </name></trk></gpx>`,
			expected: model.Ptr(" Morning Ride "),
		},
		{
			name:     "neither",
			document: `<gpx></gpx>`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := gpx.Decode(strings.NewReader(tt.document))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, c.Name)
		})
	}
}

func TestDecodeWithoutTrack(t *testing.T) {
	c, err := gpx.Decode(strings.NewReader(`<gpx><wpt lat="1" lon="2"/></gpx>`))
	require.NoError(t, err)

	assert.Nil(t, c.Track)
	assert.Len(t, c.WayPoints, 1)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		document string
		expected error
	}{
		{"not xml", `this is not a gpx file`, model.ErrInvalidFormat},
		{"wrong root", `<tcx></tcx>`, model.ErrInvalidFormat},
		{"unknown type", `<gpx><wpt lat="1" lon="2"><type>volcano</type></wpt></gpx>`, model.ErrInvalidFormat},
		{"bad id", `<gpx><wpt lat="1" lon="2"><extensions><id>nope</id></extensions></wpt></gpx>`, model.ErrInvalidFormat},
		{"missing lat", `<gpx><wpt lon="2"/></gpx>`, model.ErrInvalidArgument},
		{"bad lon", `<gpx><trk><trkseg><trkpt lat="1" lon="east"/></trkseg></trk></gpx>`, model.ErrInvalidArgument},
		{"out of range", `<gpx><wpt lat="91" lon="2"/></gpx>`, model.ErrInvalidArgument},
		{
			"duplicate ids",
			`<gpx>
				<wpt lat="1" lon="2"><extensions><id>8b0c3f1e-4a7d-4c3e-9b2a-1f6d5e4c3b2a</id></extensions></wpt>
				<wpt lat="3" lon="4"><extensions><id>8b0c3f1e-4a7d-4c3e-9b2a-1f6d5e4c3b2a</id></extensions></wpt>
			</gpx>`,
			model.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gpx.Decode(strings.NewReader(tt.document))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	start := time.Date(2024, 5, 4, 8, 0, 0, 0, time.UTC)
	expected := &model.GpsContainer{
		Name: model.Ptr("Tour de Lucerne"),
		Track: &model.Track{Points: []model.TrackPoint{
			{Latitude: 47.05, Longitude: 8.3, Elevation: model.Ptr(435.0), Time: model.Ptr(start)},
			{Latitude: 47.051, Longitude: 8.301, Elevation: model.Ptr(437.25), Time: model.Ptr(start.Add(10 * time.Second))},
		}},
		WayPoints: []model.WayPoint{
			{
				ID:         uuid.New(),
				Name:       model.Ptr("KOM"),
				Latitude:   47.0581,
				Longitude:  8.3008,
				Elevation:  model.Ptr(511.0),
				Type:       model.HORS_CATEGORY,
				Extensions: model.ExtensionValues{HeartRate: model.Ptr[int32](180), Power: model.Ptr[int32](420)},
			},
			{ID: uuid.New(), Latitude: 47.1, Longitude: 8.4, Type: model.FIRST_AID},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, gpx.Encode(&buf, expected))

	assert.True(t, strings.HasPrefix(buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, buf.String(), "\n  <wpt")

	actual, err := gpx.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, expected, actual)
}

func TestEncodeNil(t *testing.T) {
	assert.ErrorIs(t, gpx.Encode(&bytes.Buffer{}, nil), model.ErrInvalidArgument)
}
