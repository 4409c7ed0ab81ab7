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

package gpstools

import (
	"m4o.io/gpstools/internal/wire"
)

// Compression is the algorithm used to compress persisted containers.
type Compression = wire.Compression

// Supported compressions.
const (
	Raw  = wire.RAW
	Zlib = wire.ZLIB
	Lzma = wire.LZMA
	Lz4  = wire.LZ4
	Zstd = wire.ZSTD

	DefaultCompression = wire.ZLIB
)

// ParseCompression returns the compression named s, e.g. "zstd".
func ParseCompression(s string) (Compression, error) {
	return wire.ParseCompression(s)
}

// codecOptions provides optional configuration parameters for Codec construction.
type codecOptions struct {
	compression Compression
}

// CodecOption configures how we set up the codec.
type CodecOption func(*codecOptions)

// WithCompression specifies the compression algorithm to use when encoding
// containers.  The default is ZLIB.  Decoding accepts every compression.
func WithCompression(compression Compression) CodecOption {
	return func(o *codecOptions) {
		o.compression = compression
	}
}

// defaultCodecConfig provides a default configuration for codecs.
var defaultCodecConfig = codecOptions{
	compression: DefaultCompression,
}
