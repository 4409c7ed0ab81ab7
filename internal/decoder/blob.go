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

package decoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

const (
	maxHeaderSize = 64 * 1024
	maxBlobSize   = 256 * 1024 * 1024
)

// ReadBlob reads a blob of the expected type from the rdr.
func ReadBlob(rdr io.Reader, typ string) (*wire.Blob, error) {
	h, err := readBlobHeader(rdr)
	if err != nil {
		return nil, fmt.Errorf("error reading blob header: %w", err)
	}

	if h.Type != typ {
		return nil, fmt.Errorf("unexpected blob type %q, expected %q: %w", h.Type, typ, model.ErrInvalidFormat)
	}

	b, err := readBlobData(rdr, int64(h.DataSize))
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return b, nil
}

// readBlobHeader unmarshals the size prefixed header that precedes a blob.
func readBlobHeader(rdr io.Reader) (*wire.BlobHeader, error) {
	var size uint32

	if err := binary.Read(rdr, binary.BigEndian, &size); err != nil {
		return nil, fmt.Errorf("error reading blob size: %w: %w", err, model.ErrInvalidFormat)
	}

	if size > maxHeaderSize {
		return nil, fmt.Errorf("blob header size %d exceeds %d: %w", size, maxHeaderSize, model.ErrInvalidFormat)
	}

	buf := make([]byte, size)

	if _, err := io.ReadFull(rdr, buf); err != nil {
		return nil, fmt.Errorf("error reading blob header: %w: %w", err, model.ErrInvalidFormat)
	}

	header := &wire.BlobHeader{}

	if err := header.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("error unmarshalling blob header: %w", err)
	}

	return header, nil
}

// readBlobData unmarshals a blob of the given size. The blob still needs to
// be unpacked.
func readBlobData(rdr io.Reader, size int64) (*wire.Blob, error) {
	if size < 0 || size > maxBlobSize {
		return nil, fmt.Errorf("blob size %d out of range: %w", size, model.ErrInvalidFormat)
	}

	var buf bytes.Buffer

	if n, err := io.CopyN(&buf, rdr, size); err != nil {
		return nil, fmt.Errorf("error reading blob: expected %d bytes, got %d: %w", size, n, model.ErrInvalidFormat)
	}

	blob := &wire.Blob{}

	if err := blob.Unmarshal(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("error unmarshalling blob: %w", err)
	}

	return blob, nil
}
