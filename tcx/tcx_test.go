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

package tcx_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/gpstools/model"
	"m4o.io/gpstools/tcx"
)

var start = time.Date(2024, 7, 14, 9, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

func container() *model.GpsContainer {
	return &model.GpsContainer{
		Name: model.Ptr("Bastille Day"),
		Track: &model.Track{Points: []model.TrackPoint{
			{Latitude: 1, Longitude: 1, Elevation: model.Ptr(100.0), Time: model.Ptr(start)},
			{Latitude: 2, Longitude: 2, Elevation: model.Ptr(110.0), Time: model.Ptr(start.Add(30 * time.Minute))},
			{Latitude: 3, Longitude: 3, Elevation: model.Ptr(90.0), Time: model.Ptr(start.Add(time.Hour + 500*time.Millisecond))},
		}},
		WayPoints: []model.WayPoint{
			{
				ID:        uuid.New(),
				Name:      model.Ptr("top"),
				Latitude:  2,
				Longitude: 2,
				Time:      model.Ptr(start.Add(30 * time.Minute)),
				Type:      model.SUMMIT,
			},
			{
				ID:        uuid.New(),
				Name:      model.Ptr("home"),
				Latitude:  3,
				Longitude: 3,
				Time:      model.Ptr(start.Add(time.Hour)),
				Type:      model.RESIDENCE,
			},
		},
	}
}

func TestBuild(t *testing.T) {
	c := container()

	db, err := tcx.Build(c)
	require.NoError(t, err)
	require.Len(t, db.Courses, 1)

	course := db.Courses[0]
	assert.Equal(t, "Bastille Day", course.Name)

	lap := course.Lap
	assert.InDelta(t, 3600.0, lap.TotalTimeSeconds, 0)
	assert.InDelta(t, 313705.4785, lap.DistanceMeters, 0.0001)
	assert.Equal(t, tcx.Position{LatitudeDegrees: 1, LongitudeDegrees: 1}, lap.BeginPosition)
	assert.Equal(t, tcx.Position{LatitudeDegrees: 3, LongitudeDegrees: 3}, lap.EndPosition)
	assert.Equal(t, "Active", lap.Intensity)

	require.Len(t, course.Track, 3)
	assert.Zero(t, course.Track[0].DistanceMeters)
	assert.Less(t, course.Track[0].DistanceMeters, course.Track[1].DistanceMeters)
	assert.Equal(t, lap.DistanceMeters, course.Track[2].DistanceMeters)
	assert.Equal(t, 110.0, course.Track[1].AltitudeMeters)

	require.Len(t, course.CoursePoints, 2)
	assert.Equal(t, "top", course.CoursePoints[0].Name)
	assert.Equal(t, "Summit", course.CoursePoints[0].PointType)
	assert.Equal(t, "Residence", course.CoursePoints[1].PointType)
}

func TestBuildUnnamed(t *testing.T) {
	c := container()
	c.Name = nil

	db, err := tcx.Build(c)
	require.NoError(t, err)
	assert.Equal(t, "unnamed", db.Courses[0].Name)
}

func TestBuildSinglePoint(t *testing.T) {
	c := container()
	c.Track.Points = c.Track.Points[:1]
	c.WayPoints = nil

	db, err := tcx.Build(c)
	require.NoError(t, err)

	lap := db.Courses[0].Lap
	assert.Zero(t, lap.TotalTimeSeconds)
	assert.Zero(t, lap.DistanceMeters)
	assert.Equal(t, lap.BeginPosition, lap.EndPosition)
}

func TestBuildMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *model.GpsContainer)
	}{
		{"no track", func(c *model.GpsContainer) { c.Track = nil }},
		{"empty track", func(c *model.GpsContainer) { c.Track.Points = nil }},
		{"no start time", func(c *model.GpsContainer) { c.Track.Points[0].Time = nil }},
		{"no end time", func(c *model.GpsContainer) { c.Track.Points[2].Time = nil }},
		{"no point time", func(c *model.GpsContainer) { c.Track.Points[1].Time = nil }},
		{"no elevation", func(c *model.GpsContainer) { c.Track.Points[1].Elevation = nil }},
		{"no waypoint time", func(c *model.GpsContainer) { c.WayPoints[0].Time = nil }},
		{"no waypoint name", func(c *model.GpsContainer) { c.WayPoints[1].Name = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container()
			tt.modify(c)

			_, err := tcx.Build(c)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}

	_, err := tcx.Build(nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, tcx.Export(&buf, container()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<TrainingCenterDatabase"))
	assert.Contains(t, out, `xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"`)
	assert.Contains(t, out, "\n  <Courses>\n    <Course>\n      <Name>Bastille Day</Name>")
	assert.Contains(t, out, "<Time>2024-07-14T07:00:00Z</Time>")
	assert.Contains(t, out, "<Time>2024-07-14T08:00:00.5Z</Time>")
	assert.Contains(t, out, "<Intensity>Active</Intensity>")
	assert.Contains(t, out, "<PointType>Summit</PointType>")

	var db tcx.TrainingCenterDatabase
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &db))
	require.Len(t, db.Courses, 1)
	assert.Len(t, db.Courses[0].Track, 3)
	assert.True(t, time.Time(db.Courses[0].Track[0].Time).Equal(start))
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, tcx.Export(&buf, container()))
	assert.True(t, tcx.IsTCX(buf.Bytes()))

	c, err := tcx.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, model.Ptr("Bastille Day"), c.Name)
	require.Equal(t, 3, c.TrackPointCount())

	last := c.Track.Points[2]
	assert.Equal(t, model.Degrees(3), last.Latitude)
	assert.Equal(t, model.Ptr(90.0), last.Elevation)
	assert.Equal(t, start.Add(time.Hour+500*time.Millisecond).UTC(), *last.Time)

	require.Len(t, c.WayPoints, 2)
	assert.Equal(t, model.Ptr("top"), c.WayPoints[0].Name)
	assert.Equal(t, model.SUMMIT, c.WayPoints[0].Type)
	assert.Equal(t, model.RESIDENCE, c.WayPoints[1].Type)
	assert.NotEqual(t, c.WayPoints[0].ID, c.WayPoints[1].ID)
}

func TestDecodeErrors(t *testing.T) {
	course := func(point string) string {
		return `<TrainingCenterDatabase><Courses><Course><Name>x</Name>` + point + `</Course></Courses></TrainingCenterDatabase>`
	}

	tests := []struct {
		name     string
		document string
		expected error
	}{
		{"not xml", "hello", model.ErrInvalidFormat},
		{"no course", `<TrainingCenterDatabase/>`, model.ErrInvalidFormat},
		{"unknown point type", course(`<CoursePoint><Name>a</Name><Position><LatitudeDegrees>1</LatitudeDegrees><LongitudeDegrees>1</LongitudeDegrees></Position><PointType>Campsite</PointType></CoursePoint>`), model.ErrInvalidFormat},
		{"latitude range", course(`<Track><Trackpoint><Position><LatitudeDegrees>91</LatitudeDegrees><LongitudeDegrees>1</LongitudeDegrees></Position></Trackpoint></Track>`), model.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tcx.Decode(strings.NewReader(tt.document))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestIsTCX(t *testing.T) {
	assert.True(t, tcx.IsTCX([]byte(`<?xml version="1.0"?><!-- course --><TrainingCenterDatabase/>`)))
	assert.False(t, tcx.IsTCX([]byte(`<gpx/>`)))
	assert.False(t, tcx.IsTCX([]byte("hello")))
}
