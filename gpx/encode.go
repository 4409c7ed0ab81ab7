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

package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"m4o.io/gpstools/model"
)

const (
	NamespaceGPX      = "http://www.topografix.com/GPX/1/1"
	NamespaceGarmin   = "http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
	NamespaceGpsTools = "https://m4o.io/gpstools/gpx/v1"
	schemaLocation    = "http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd"
	namespaceInstance = "http://www.w3.org/2001/XMLSchema-instance"
	creator           = "gpstools"
	gpxVersion        = "1.1"
	xmlIndent         = "  "
)

type outDocument struct {
	XMLName        xml.Name      `xml:"gpx"`
	Xmlns          string        `xml:"xmlns,attr"`
	XmlnsXsi       string        `xml:"xmlns:xsi,attr"`
	XmlnsGpxtpx    string        `xml:"xmlns:gpxtpx,attr"`
	XmlnsGpsTools  string        `xml:"xmlns:gpstools,attr"`
	SchemaLocation string        `xml:"xsi:schemaLocation,attr"`
	Version        string        `xml:"version,attr"`
	Creator        string        `xml:"creator,attr"`
	Metadata       *outMetadata  `xml:"metadata,omitempty"`
	WayPoints      []outWayPoint `xml:"wpt"`
	Track          *outTrack     `xml:"trk,omitempty"`
}

type outMetadata struct {
	Name string `xml:"name"`
}

type outWayPoint struct {
	Lat        float64        `xml:"lat,attr"`
	Lon        float64        `xml:"lon,attr"`
	Elevation  *float64       `xml:"ele,omitempty"`
	Time       *time.Time     `xml:"time,omitempty"`
	Name       *string        `xml:"name,omitempty"`
	Type       string         `xml:"type,omitempty"`
	Extensions *outExtensions `xml:"extensions,omitempty"`
}

type outTrack struct {
	Name    *string    `xml:"name,omitempty"`
	Segment outSegment `xml:"trkseg"`
}

type outSegment struct {
	Points []outWayPoint `xml:"trkpt"`
}

type outExtensions struct {
	Power      *int32                  `xml:"power,omitempty"`
	TrackPoint *outTrackPointExtension `xml:"gpxtpx:TrackPointExtension,omitempty"`
	ID         string                  `xml:"gpstools:id,omitempty"`
}

type outTrackPointExtension struct {
	Temperature *float64 `xml:"gpxtpx:atemp,omitempty"`
	HeartRate   *int32   `xml:"gpxtpx:hr,omitempty"`
	Cadence     *int32   `xml:"gpxtpx:cad,omitempty"`
}

// Encode writes the container as an indented GPX 1.1 document. Waypoint ids
// are kept in a gpstools:id extension so that Decode restores them.
func Encode(w io.Writer, c *model.GpsContainer) error {
	if c == nil {
		return fmt.Errorf("nil container: %w", model.ErrInvalidArgument)
	}

	doc := outDocument{
		Xmlns:          NamespaceGPX,
		XmlnsXsi:       namespaceInstance,
		XmlnsGpxtpx:    NamespaceGarmin,
		XmlnsGpsTools:  NamespaceGpsTools,
		SchemaLocation: schemaLocation,
		Version:        gpxVersion,
		Creator:        creator,
	}

	if c.Name != nil {
		doc.Metadata = &outMetadata{Name: *c.Name}
	}

	for _, wp := range c.WayPoints {
		if !wp.Type.Valid() {
			return fmt.Errorf("waypoint %s: poi type %d: %w", wp.ID, int32(wp.Type), model.ErrInvalidFormat)
		}

		out := outWayPoint{
			Lat:        float64(wp.Latitude),
			Lon:        float64(wp.Longitude),
			Elevation:  wp.Elevation,
			Time:       utc(wp.Time),
			Name:       wp.Name,
			Type:       wp.Type.String(),
			Extensions: &outExtensions{Power: wp.Extensions.Power, ID: wp.ID.String()},
		}

		e := wp.Extensions
		if e.HeartRate != nil || e.Cadence != nil || e.Temperature != nil {
			out.Extensions.TrackPoint = &outTrackPointExtension{
				Temperature: e.Temperature,
				HeartRate:   e.HeartRate,
				Cadence:     e.Cadence,
			}
		}

		doc.WayPoints = append(doc.WayPoints, out)
	}

	if c.Track != nil {
		doc.Track = &outTrack{Name: c.Name}

		for _, p := range c.Track.Points {
			doc.Track.Segment.Points = append(doc.Track.Segment.Points, outWayPoint{
				Lat:       float64(p.Latitude),
				Lon:       float64(p.Longitude),
				Elevation: p.Elevation,
				Time:      utc(p.Time),
			})
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("could not write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", xmlIndent)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode gpx: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not encode gpx: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("could not encode gpx: %w", err)
	}

	return nil
}
