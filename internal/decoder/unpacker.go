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
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/gpstools/internal/wire"
	"m4o.io/gpstools/model"
)

var ErrUnknownCompressionType = errors.New("unknown blob compression type")

// Unpack uncompresses the blob.
func Unpack(blob *wire.Blob) ([]byte, error) {
	var factory func(data []byte) (io.Reader, error)

	switch blob.Compression {
	case wire.RAW:
		return blob.Data, nil
	case wire.ZLIB:
		factory = func(data []byte) (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(data))
		}
	case wire.LZMA:
		factory = func(data []byte) (io.Reader, error) {
			return lzma.NewReader(bytes.NewReader(data))
		}
	case wire.LZ4:
		factory = func(data []byte) (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(data)), nil
		}
	case wire.ZSTD:
		factory = func(data []byte) (io.Reader, error) {
			d, err := zstd.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	default:
		return nil, ErrUnknownCompressionType
	}

	if blob.RawSize < 0 || blob.RawSize > maxBlobSize {
		return nil, fmt.Errorf("raw blob size %d out of range: %w", blob.RawSize, model.ErrInvalidFormat)
	}

	rdr, err := factory(blob.Data)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w: %w", err, model.ErrInvalidFormat)
	}

	if c, ok := rdr.(io.Closer); ok {
		defer c.Close()
	}

	buf := bytes.NewBuffer(make([]byte, 0, int(blob.RawSize)+bytes.MinRead))

	// one byte past the declared size is enough to detect an overrun
	if n, err := buf.ReadFrom(io.LimitReader(rdr, int64(blob.RawSize)+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w: %w", err, model.ErrInvalidFormat)
	} else if n != int64(blob.RawSize) {
		return nil, fmt.Errorf("raw blob data size %d but expected %d: %w", n, blob.RawSize, model.ErrInvalidFormat)
	}

	return buf.Bytes(), nil
}
