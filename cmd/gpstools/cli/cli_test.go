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

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/gpstools"
	"m4o.io/gpstools/model"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>loop</name><trkseg><trkpt lat="1" lon="2"/></trkseg></trk>
</gpx>`

func TestLoadGPX(t *testing.T) {
	c, format, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, InputGPX, format)
	assert.Equal(t, model.Ptr("loop"), c.Name)
}

func TestLoadTCX(t *testing.T) {
	course := `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2">
  <Courses><Course><Name>loop</Name>
    <CoursePoint><Name>top</Name><Position><LatitudeDegrees>1</LatitudeDegrees><LongitudeDegrees>2</LongitudeDegrees></Position><PointType>Summit</PointType></CoursePoint>
  </Course></Courses>
</TrainingCenterDatabase>`

	c, format, err := Load(strings.NewReader(course))
	require.NoError(t, err)

	assert.Equal(t, InputTCX, format)
	assert.Equal(t, model.Ptr("loop"), c.Name)
	require.Len(t, c.WayPoints, 1)
	assert.Equal(t, model.SUMMIT, c.WayPoints[0].Type)
}

func TestLoadBinary(t *testing.T) {
	codec, err := gpstools.NewCodec(gpstools.WithCompression(gpstools.Lzma))
	require.NoError(t, err)

	data, err := codec.Marshal(&model.GpsContainer{Name: model.Ptr("bin")})
	require.NoError(t, err)

	c, format, err := Load(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, InputBinary, format)
	assert.Equal(t, model.Ptr("bin"), c.Name)
}

func TestLoadGarbage(t *testing.T) {
	_, _, err := Load(strings.NewReader("hello"))
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}

func TestReaderValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gpx")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var f *os.File

	v := NewReaderValue(os.Stdin, &f, "file")
	assert.Equal(t, os.Stdin, f)
	assert.Equal(t, "file", v.Type())

	require.NoError(t, v.Set(path))
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, path, v.String())
	assert.Error(t, v.Set(filepath.Join(t.TempDir(), "missing")))
}

func TestWrapInputFileQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gpx")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)

	rc, err := WrapInputFile(f, true)
	require.NoError(t, err)
	assert.Same(t, f, rc)
	require.NoError(t, rc.Close())

	rc, err = WrapInputFile(os.Stdin, false)
	require.NoError(t, err)
	assert.Same(t, os.Stdin, rc)
}
