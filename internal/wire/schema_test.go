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

package wire

import (
	"os"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	messageRe = regexp.MustCompile(`(?s)message (\w+) \{(.*?)\n\}`)
	fieldRe   = regexp.MustCompile(`(\w+) = (\d+);`)
)

func protoFields(t *testing.T) map[string]protowire.Number {
	t.Helper()

	src, err := os.ReadFile("gpstools.proto")
	require.NoError(t, err)

	fields := make(map[string]protowire.Number)

	for _, m := range messageRe.FindAllStringSubmatch(string(src), -1) {
		for _, f := range fieldRe.FindAllStringSubmatch(m[2], -1) {
			n, err := strconv.Atoi(f[2])
			require.NoError(t, err)

			fields[m[1]+"."+f[1]] = protowire.Number(n)
		}
	}

	return fields
}

func TestSchemaMatchesProto(t *testing.T) {
	expected := map[string]protowire.Number{
		"BlobHeader.type":      blobHeaderType,
		"BlobHeader.indexdata": blobHeaderIndexData,
		"BlobHeader.datasize":  blobHeaderDataSize,

		"Blob.raw":       blobRaw,
		"Blob.raw_size":  blobRawSize,
		"Blob.zlib_data": blobZlibData,
		"Blob.lzma_data": blobLzmaData,
		"Blob.lz4_data":  blobLz4Data,
		"Blob.zstd_data": blobZstdData,

		"Timestamp.seconds": TimestampSeconds,
		"Timestamp.nanos":   TimestampNanos,

		"ExtensionValues.heart_rate":  ExtensionHeartRate,
		"ExtensionValues.cadence":     ExtensionCadence,
		"ExtensionValues.temperature": ExtensionTemperature,
		"ExtensionValues.power":       ExtensionPower,

		"TrackPoint.latitude":  TrackPointLatitude,
		"TrackPoint.longitude": TrackPointLongitude,
		"TrackPoint.elevation": TrackPointElevation,
		"TrackPoint.time":      TrackPointTime,

		"Track.points": TrackPoints,

		"WayPoint.uuid":       WayPointUUID,
		"WayPoint.name":       WayPointName,
		"WayPoint.latitude":   WayPointLatitude,
		"WayPoint.longitude":  WayPointLongitude,
		"WayPoint.elevation":  WayPointElevation,
		"WayPoint.time":       WayPointTime,
		"WayPoint.type":       WayPointType,
		"WayPoint.extensions": WayPointExtensions,

		"Container.name":       ContainerName,
		"Container.track":      ContainerTrack,
		"Container.way_points": ContainerWayPoints,
	}

	assert.Equal(t, expected, protoFields(t))
}
