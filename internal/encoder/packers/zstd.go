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

package packers

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"m4o.io/gpstools/internal/wire"
)

type ZstdPacker struct {
	*base
	buf bytes.Buffer
}

func NewZstdPacker() (*ZstdPacker, error) {
	p := ZstdPacker{}

	w, err := zstd.NewWriter(&p.buf)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd writer: %w", err)
	}

	p.base = newBasePacker(w)

	return &p, nil
}

func (p *ZstdPacker) SaveTo(blob *wire.Blob) {
	blob.Compression = wire.ZSTD
	blob.Data = p.buf.Bytes()
}
