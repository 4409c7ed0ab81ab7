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

package encoder

import (
	"fmt"
	"io"

	"m4o.io/gpstools/internal/encoder/packers"
	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

// Packer is the interface that groups methods for packing the contents of a
// blob and saving the packed data in the correct place.
type Packer interface {
	// WriteCloser is used to write the contents of the blob to be packed.
	// Be sure to call the Close method to ensure that all the contents are
	// packed.
	io.WriteCloser

	// SaveTo will save the packed contents to the blob using the matching
	// data field.
	SaveTo(blob *wire.Blob)
}

// Pack compresses the payload and marshals it into a blob.
func Pack(payload []byte, c wire.Compression) ([]byte, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(payload); err != nil {
		return nil, fmt.Errorf("could not compress message: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	blob := &wire.Blob{
		RawSize: int32(len(payload)),
	}

	p.SaveTo(blob)

	bb, err := blob.Marshal()
	if err != nil {
		return nil, fmt.Errorf("could not marshal blob data: %w", err)
	}

	return bb, nil
}

// newPacker creates the appropriate Packer for the compression.
func newPacker(c wire.Compression) (Packer, error) {
	switch c {
	case wire.RAW:
		return packers.NewRawPacker(), nil
	case wire.ZLIB:
		return packers.NewZlibPacker(), nil
	case wire.LZMA:
		p, err := packers.NewLzmaPacker()
		if err != nil {
			return nil, err
		}

		return p, nil
	case wire.LZ4:
		return packers.NewLz4Packer(), nil
	case wire.ZSTD:
		p, err := packers.NewZstdPacker()
		if err != nil {
			return nil, err
		}

		return p, nil
	default:
		return nil, fmt.Errorf("unknown compression type %v: %w", c, model.ErrInvalidArgument)
	}
}
