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
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/gpstools/model"
)

// ContainerBlobType is the BlobHeader type of a persisted GpsContainer.
const ContainerBlobType = "GpsContainer"

// Compression is the codec used for the payload of a blob.
type Compression int

const (
	RAW Compression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

var compressionNames = [...]string{"raw", "zlib", "lzma", "lz4", "zstd"}

func (c Compression) String() string {
	if c < RAW || c > ZSTD {
		return fmt.Sprintf("compression(%d)", int(c))
	}

	return compressionNames[c]
}

// ParseCompression returns the compression with the given case-insensitive name.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Compression(i), nil
		}
	}

	return RAW, fmt.Errorf("unknown compression %q: %w", s, model.ErrInvalidArgument)
}

const (
	blobHeaderType      protowire.Number = 1
	blobHeaderIndexData protowire.Number = 2
	blobHeaderDataSize  protowire.Number = 3

	blobRaw      protowire.Number = 1
	blobRawSize  protowire.Number = 2
	blobZlibData protowire.Number = 3
	blobLzmaData protowire.Number = 4
	blobLz4Data  protowire.Number = 6
	blobZstdData protowire.Number = 7
)

var dataFields = map[Compression]protowire.Number{
	RAW:  blobRaw,
	ZLIB: blobZlibData,
	LZMA: blobLzmaData,
	LZ4:  blobLz4Data,
	ZSTD: blobZstdData,
}

// BlobHeader precedes every blob and announces its type and size.
type BlobHeader struct {
	Type     string
	DataSize int32
}

// Marshal encodes the header.
func (h *BlobHeader) Marshal() []byte {
	b := AppendString(nil, blobHeaderType, h.Type)

	return AppendInt32(b, blobHeaderDataSize, h.DataSize)
}

// Unmarshal decodes the header from b.
func (h *BlobHeader) Unmarshal(b []byte) error {
	*h = BlobHeader{}

	return EachField(b, func(f Field) (err error) {
		switch f.Num {
		case blobHeaderType:
			h.Type, err = f.Text()
		case blobHeaderDataSize:
			h.DataSize, err = f.Int32()
		case blobHeaderIndexData:
			err = f.Want(protowire.BytesType)
		}

		return err
	})
}

// Blob holds the possibly compressed payload of a message.
type Blob struct {
	Compression Compression
	RawSize     int32
	Data        []byte
}

// Marshal encodes the blob.
func (b *Blob) Marshal() ([]byte, error) {
	num, ok := dataFields[b.Compression]
	if !ok {
		return nil, fmt.Errorf("%v: %w", b.Compression, model.ErrInvalidArgument)
	}

	buf := make([]byte, 0, len(b.Data)+16)
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	buf = protowire.AppendBytes(buf, b.Data)

	return AppendInt32(buf, blobRawSize, b.RawSize), nil
}

// Unmarshal decodes the blob from buf.
func (b *Blob) Unmarshal(buf []byte) error {
	*b = Blob{}

	var seen bool

	err := EachField(buf, func(f Field) (err error) {
		if f.Num == blobRawSize {
			b.RawSize, err = f.Int32()

			return err
		}

		for c, num := range dataFields {
			if num == f.Num {
				if b.Data, err = f.Message(); err != nil {
					return err
				}

				b.Compression = c
				seen = true
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if !seen {
		return fmt.Errorf("blob without data: %w", model.ErrInvalidFormat)
	}

	return nil
}
