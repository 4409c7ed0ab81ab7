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

// Package gpstools converts GPS containers to and from their persisted
// binary form: a protobuf message wrapped in a size prefixed, optionally
// compressed blob.
package gpstools

import (
	"bytes"
	"fmt"
	"io"

	"m4o.io/gpstools/internal/decoder"
	"m4o.io/gpstools/internal/encoder"
	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

// Codec encodes and decodes persisted containers.  A Codec is immutable and
// safe for concurrent use.
type Codec struct {
	compression Compression
}

// NewCodec returns a new codec configured with options.
func NewCodec(opts ...CodecOption) (*Codec, error) {
	cfg := defaultCodecConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.compression < Raw || cfg.compression > Zstd {
		return nil, fmt.Errorf("compression %v: %w", cfg.compression, model.ErrInvalidArgument)
	}

	return &Codec{compression: cfg.compression}, nil
}

// Compression returns the compression used when encoding.
func (c *Codec) Compression() Compression {
	return c.compression
}

// Encode writes the persisted form of the container to w. Containers that
// fail validation are refused.
func (c *Codec) Encode(w io.Writer, container *model.GpsContainer) error {
	if container == nil {
		return fmt.Errorf("nil container: %w", model.ErrInvalidArgument)
	}

	if err := container.Validate(); err != nil {
		return err
	}

	payload, err := encoder.EncodeContainer(container)
	if err != nil {
		return err
	}

	if err = encoder.WriteBlob(w, wire.ContainerBlobType, payload, c.compression); err != nil {
		return fmt.Errorf("could not write container: %w", err)
	}

	return nil
}

// Decode reads a persisted container from r. A container that decodes but
// fails validation is reported as ErrInvalidFormat.
func (c *Codec) Decode(r io.Reader) (*model.GpsContainer, error) {
	blob, err := decoder.ReadBlob(r, wire.ContainerBlobType)
	if err != nil {
		return nil, err
	}

	payload, err := decoder.Unpack(blob)
	if err != nil {
		return nil, fmt.Errorf("could not unpack container: %w", err)
	}

	container, err := decoder.DecodeContainer(payload)
	if err != nil {
		return nil, err
	}

	if err = container.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container: %v: %w", err, model.ErrInvalidFormat)
	}

	return container, nil
}

// Marshal returns the persisted form of the container.
func (c *Codec) Marshal(container *model.GpsContainer) ([]byte, error) {
	var buf bytes.Buffer

	if err := c.Encode(&buf, container); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal parses a persisted container.
func (c *Codec) Unmarshal(data []byte) (*model.GpsContainer, error) {
	return c.Decode(bytes.NewReader(data))
}
