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

package gpstools_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/gpstools"
	"m4o.io/gpstools/internal/encoder"
	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

func sampleContainer() *model.GpsContainer {
	start := time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC)

	return &model.GpsContainer{
		Name: model.Ptr("Col du Galibier"),
		Track: &model.Track{
			Points: []model.TrackPoint{
				{Latitude: 45.0643, Longitude: 6.4078, Elevation: model.Ptr(2642.0), Time: model.Ptr(start)},
				{Latitude: 45.0651, Longitude: 6.4081, Time: model.Ptr(start.Add(1500 * time.Millisecond))},
				{Latitude: 45.0660, Longitude: 6.4090, Elevation: model.Ptr(-3.5)},
			},
		},
		WayPoints: []model.WayPoint{
			{
				ID:        uuid.MustParse("8b0c3f1e-4a7d-4c3e-9b2a-1f6d5e4c3b2a"),
				Name:      model.Ptr("summit"),
				Latitude:  45.0643,
				Longitude: 6.4078,
				Elevation: model.Ptr(2642.0),
				Time:      model.Ptr(start),
				Type:      model.SUMMIT,
				Extensions: model.ExtensionValues{
					HeartRate:   model.Ptr[int32](171),
					Temperature: model.Ptr(-1.5),
				},
			},
			{
				ID:        uuid.MustParse("2f9a8b7c-6d5e-4f3a-8b1c-0d9e8f7a6b5c"),
				Latitude:  45.01,
				Longitude: 6.3,
				Type:      model.SPRINT,
			},
		},
	}
}

func TestRoundTripAllCompressions(t *testing.T) {
	tests := []struct {
		name        string
		compression gpstools.Compression
	}{
		{"raw", gpstools.Raw},
		{"zlib", gpstools.Zlib},
		{"lzma", gpstools.Lzma},
		{"lz4", gpstools.Lz4},
		{"zstd", gpstools.Zstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := gpstools.NewCodec(gpstools.WithCompression(tt.compression))
			require.NoError(t, err)

			expected := sampleContainer()

			data, err := codec.Marshal(expected)
			require.NoError(t, err)

			actual, err := codec.Unmarshal(data)
			require.NoError(t, err)

			assert.Equal(t, expected, actual)

			again, err := codec.Marshal(actual)
			require.NoError(t, err)
			assert.Equal(t, data, again)
		})
	}
}

func TestDecodeAcceptsAnyCompression(t *testing.T) {
	zstd, err := gpstools.NewCodec(gpstools.WithCompression(gpstools.Zstd))
	require.NoError(t, err)

	raw, err := gpstools.NewCodec(gpstools.WithCompression(gpstools.Raw))
	require.NoError(t, err)

	data, err := zstd.Marshal(sampleContainer())
	require.NoError(t, err)

	actual, err := raw.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, sampleContainer(), actual)
}

func TestRoundTripEmptyContainers(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	tests := []struct {
		name      string
		container *model.GpsContainer
	}{
		{"nothing", &model.GpsContainer{}},
		{"empty name", &model.GpsContainer{Name: model.Ptr("")}},
		{"empty track", &model.GpsContainer{Name: model.Ptr("x"), Track: &model.Track{}}},
		{"waypoint only", &model.GpsContainer{WayPoints: []model.WayPoint{{ID: uuid.New(), Latitude: -90, Longitude: 180}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Marshal(tt.container)
			require.NoError(t, err)

			actual, err := codec.Unmarshal(data)
			require.NoError(t, err)

			assert.Equal(t, tt.container, actual)
		})
	}
}

func TestNameAbsenceSurvives(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	data, err := codec.Marshal(&model.GpsContainer{})
	require.NoError(t, err)

	actual, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, actual.Name)
	assert.Nil(t, actual.Track)

	data, err = codec.Marshal(&model.GpsContainer{Name: model.Ptr("")})
	require.NoError(t, err)

	actual, err = codec.Unmarshal(data)
	require.NoError(t, err)
	require.NotNil(t, actual.Name)
	assert.Empty(t, *actual.Name)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	for _, data := range [][]byte{
		nil,
		{0, 0},
		{0, 0, 0, 4, 1, 2, 3, 4},
		[]byte("<gpx></gpx>"),
	} {
		_, err := codec.Unmarshal(data)
		assert.ErrorIs(t, err, model.ErrInvalidFormat)
	}
}

func TestUnmarshalRejectsTruncated(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	data, err := codec.Marshal(sampleContainer())
	require.NoError(t, err)

	_, err = codec.Decode(bytes.NewReader(data[:len(data)-5]))
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}

func TestMarshalRejectsUnknownPoiType(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	c := &model.GpsContainer{WayPoints: []model.WayPoint{{ID: uuid.New(), Type: model.PoiType(42)}}}

	_, err = codec.Marshal(c)
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}

func TestMarshalRejectsInvalidContainers(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	dup := sampleContainer()
	dup.WayPoints[1].ID = dup.WayPoints[0].ID

	_, err = codec.Marshal(dup)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	outside := sampleContainer()
	outside.Track.Points[1].Longitude = 181

	_, err = codec.Marshal(outside)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestUnmarshalRejectsInvalidContainers(t *testing.T) {
	codec, err := gpstools.NewCodec()
	require.NoError(t, err)

	dup := sampleContainer()
	dup.WayPoints[1].ID = dup.WayPoints[0].ID

	outside := sampleContainer()
	outside.WayPoints[0].Latitude = -90.5

	for name, c := range map[string]*model.GpsContainer{"duplicate ids": dup, "latitude range": outside} {
		t.Run(name, func(t *testing.T) {
			payload, err := encoder.EncodeContainer(c)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, encoder.WriteBlob(&buf, wire.ContainerBlobType, payload, wire.ZLIB))

			_, err = codec.Unmarshal(buf.Bytes())
			assert.ErrorIs(t, err, model.ErrInvalidFormat)
			assert.NotErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestNewCodecRejectsUnknownCompression(t *testing.T) {
	_, err := gpstools.NewCodec(gpstools.WithCompression(gpstools.Compression(17)))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestParseCompression(t *testing.T) {
	c, err := gpstools.ParseCompression(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, gpstools.Zstd, c)
	assert.Equal(t, "zstd", c.String())

	_, err = gpstools.ParseCompression("brotli")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
