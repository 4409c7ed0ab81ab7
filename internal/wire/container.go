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

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers of the container schema, see gpstools.proto.
const (
	ContainerName      protowire.Number = 1
	ContainerTrack     protowire.Number = 2
	ContainerWayPoints protowire.Number = 3

	TrackPoints protowire.Number = 1

	TrackPointLatitude  protowire.Number = 1
	TrackPointLongitude protowire.Number = 2
	TrackPointElevation protowire.Number = 3
	TrackPointTime      protowire.Number = 4

	WayPointUUID       protowire.Number = 1
	WayPointName       protowire.Number = 2
	WayPointLatitude   protowire.Number = 3
	WayPointLongitude  protowire.Number = 4
	WayPointElevation  protowire.Number = 5
	WayPointTime       protowire.Number = 6
	WayPointType       protowire.Number = 7
	WayPointExtensions protowire.Number = 8

	TimestampSeconds protowire.Number = 1
	TimestampNanos   protowire.Number = 2

	ExtensionHeartRate   protowire.Number = 1
	ExtensionCadence     protowire.Number = 2
	ExtensionTemperature protowire.Number = 3
	ExtensionPower       protowire.Number = 4
)
