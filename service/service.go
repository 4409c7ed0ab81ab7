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

// Package service implements the file operations behind the HTTP API:
// importing GPX uploads, exporting stored containers and updating their
// waypoints.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"m4o.io/gpstools"
	"m4o.io/gpstools/geojson"
	"m4o.io/gpstools/gpx"
	"m4o.io/gpstools/internal/metrics"
	"m4o.io/gpstools/merge"
	"m4o.io/gpstools/model"
	"m4o.io/gpstools/store"
	"m4o.io/gpstools/tcx"
)

const (
	gpxExtension = ".gpx"
	xmlMimeType  = "text/xml"
	unnamed      = "unnamed"
)

// Format is an export format of a stored container.
type Format string

const (
	FormatGPX    Format = "gpx"
	FormatTCX    Format = "tcx"
	FormatBinary Format = "bin"
)

// ParseFormat parses a format name. The empty string selects GPX.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatGPX, nil
	case FormatGPX, FormatTCX, FormatBinary:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: %w", s, model.ErrInvalidArgument)
	}
}

// ContentType returns the media type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatTCX:
		return "application/vnd.garmin.tcx+xml"
	case FormatBinary:
		return "application/octet-stream"
	default:
		return "application/gpx+xml"
	}
}

// StoredFile describes an imported file.
type StoredFile struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	MimeType string    `json:"mimeType"`
	Size     int       `json:"size"`
}

// Document is an exported container.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FileService imports, exports and updates stored containers.
type FileService struct {
	store  store.Store
	codec  *gpstools.Codec
	engine *merge.Engine
	newID  func() uuid.UUID
}

// New returns a service persisting containers in s with codec.
func New(s store.Store, codec *gpstools.Codec) *FileService {
	return &FileService{
		store:  s,
		codec:  codec,
		engine: merge.NewEngine(s, codec),
		newID:  uuid.New,
	}
}

// IsGPSFile reports whether filename names a GPX document.
func IsGPSFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), gpxExtension)
}

// IsXML reports whether data sniffs as an XML document.
func IsXML(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(xmlMimeType) {
			return true
		}
	}

	return false
}

// Import converts a GPX upload into a stored container.
func (s *FileService) Import(ctx context.Context, filename string, data []byte) (sf StoredFile, err error) {
	defer func() { metrics.RecordConversion(string(FormatGPX), metrics.Import, err) }()

	if !IsGPSFile(filename) || !IsXML(data) {
		return sf, fmt.Errorf("%s is not a file format to hold GPS data: %w", filename, model.ErrInvalidArgument)
	}

	container, err := gpx.Decode(bytes.NewReader(data))
	if err != nil {
		return sf, fmt.Errorf("%s: %w", filename, err)
	}

	payload, err := s.codec.Marshal(container)
	if err != nil {
		return sf, fmt.Errorf("%s: %w", filename, err)
	}

	id := s.newID()
	if err = s.store.Put(ctx, id, store.Object{Filename: filename, Data: payload}); err != nil {
		return sf, err
	}

	if container.Track != nil {
		metrics.ObserveTrackLength(container.Track.Length())
	}

	return StoredFile{
		ID:       id,
		Filename: filename,
		MimeType: FormatBinary.ContentType(),
		Size:     len(payload),
	}, nil
}

// Export renders the container stored under id in format f. A non-blank
// name replaces the container name in the rendered document.
func (s *FileService) Export(ctx context.Context, id uuid.UUID, f Format, name string) (doc Document, err error) {
	defer func() { metrics.RecordConversion(string(f), metrics.Export, err) }()

	obj, err := s.store.Get(ctx, id)
	if err != nil {
		return doc, err
	}

	doc = Document{
		Filename:    DownloadName(obj.Filename, f),
		ContentType: f.ContentType(),
	}

	if f == FormatBinary && strings.TrimSpace(name) == "" {
		doc.Data = obj.Data

		return doc, nil
	}

	container, err := s.codec.Unmarshal(obj.Data)
	if err != nil {
		return doc, fmt.Errorf("container %s: %w", id, err)
	}

	if name = strings.TrimSpace(name); name != "" {
		container.Name = &name
	}

	var buf bytes.Buffer

	if err = s.render(&buf, container, f); err != nil {
		return doc, fmt.Errorf("container %s: %w", id, err)
	}

	doc.Data = buf.Bytes()

	return doc, nil
}

func (s *FileService) render(w io.Writer, c *model.GpsContainer, f Format) error {
	switch f {
	case FormatTCX:
		return tcx.Export(w, c)
	case FormatBinary:
		return s.codec.Encode(w, c)
	default:
		return gpx.Encode(w, c)
	}
}

// Delete removes the container stored under id.
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.engine.Lock(id)
	defer unlock()

	_, err := s.store.Delete(ctx, id)

	return err
}

// WayPoints returns the waypoints of the container stored under id.
func (s *FileService) WayPoints(ctx context.Context, id uuid.UUID) (geojson.FeatureCollection, error) {
	obj, err := s.store.Get(ctx, id)
	if err != nil {
		return geojson.FeatureCollection{}, err
	}

	container, err := s.codec.Unmarshal(obj.Data)
	if err != nil {
		return geojson.FeatureCollection{}, fmt.Errorf("container %s: %w", id, err)
	}

	return geojson.FromWayPoints(container.WayPoints), nil
}

// UpdateWayPoints replaces or merges the waypoints of the container stored
// under id with those of a GeoJSON Feature or FeatureCollection.
func (s *FileService) UpdateWayPoints(ctx context.Context, id uuid.UUID, body []byte, merge bool) (geojson.FeatureCollection, error) {
	update, err := geojson.DecodeUpdate(body)
	if err != nil {
		return geojson.FeatureCollection{}, err
	}

	return s.engine.ApplyUpdate(ctx, id, update, merge)
}

// DownloadName derives the attachment name of a download from the uploaded
// filename: only its letters and digits are kept, "unnamed" when none are
// left, followed by the extension of the format.
func DownloadName(filename string, f Format) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	base = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return -1
	}, base)

	if base == "" {
		base = unnamed
	}

	return base + "." + string(f)
}
