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
	"fmt"
	"io"

	"m4o.io/gpstools"
	"m4o.io/gpstools/gpx"
	"m4o.io/gpstools/model"
	"m4o.io/gpstools/service"
	"m4o.io/gpstools/tcx"
)

// Input formats recognized by Load.
const (
	InputGPX    = "gpx"
	InputTCX    = "tcx"
	InputBinary = "bin"
)

// Load reads a GPX document, a TCX course or a persisted container from r,
// telling them apart by content.
func Load(r io.Reader) (*model.GpsContainer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("could not read input: %w", err)
	}

	if service.IsXML(data) {
		if tcx.IsTCX(data) {
			c, err := tcx.Decode(bytes.NewReader(data))

			return c, InputTCX, err
		}

		c, err := gpx.Decode(bytes.NewReader(data))

		return c, InputGPX, err
	}

	codec, err := gpstools.NewCodec()
	if err != nil {
		return nil, "", err
	}

	c, err := codec.Unmarshal(data)

	return c, InputBinary, err
}
