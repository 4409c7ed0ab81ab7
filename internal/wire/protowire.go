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

// Package wire holds the protobuf wire schema of the persisted container and
// its blob envelope. Messages are encoded by hand with protowire so that
// every optional field keeps explicit presence.
package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/gpstools/model"
)

// Field is a single decoded protobuf field.
type Field struct {
	Num     protowire.Number
	Type    protowire.Type
	Varint  uint64
	Fixed32 uint32
	Fixed64 uint64
	Bytes   []byte
}

// EachField walks the top-level fields of a message in wire order.
func EachField(b []byte, fn func(f Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("field tag: %w: %w", protowire.ParseError(n), model.ErrInvalidFormat)
		}

		b = b[n:]
		f := Field{Num: num, Type: typ}

		switch typ {
		case protowire.VarintType:
			f.Varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			f.Fixed32, n = protowire.ConsumeFixed32(b)
		case protowire.Fixed64Type:
			f.Fixed64, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.Bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}

		if n < 0 {
			return fmt.Errorf("field %d: %w: %w", num, protowire.ParseError(n), model.ErrInvalidFormat)
		}

		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}

	return nil
}

// Want checks the wire type of the field.
func (f Field) Want(typ protowire.Type) error {
	if f.Type != typ {
		return fmt.Errorf("field %d has wire type %d, expected %d: %w", f.Num, f.Type, typ, model.ErrInvalidFormat)
	}

	return nil
}

// Double reads a fixed64 field as a float64.
func (f Field) Double() (float64, error) {
	if err := f.Want(protowire.Fixed64Type); err != nil {
		return 0, err
	}

	return math.Float64frombits(f.Fixed64), nil
}

// Int64 reads a varint field as an int64.
func (f Field) Int64() (int64, error) {
	if err := f.Want(protowire.VarintType); err != nil {
		return 0, err
	}

	return int64(f.Varint), nil
}

// Int32 reads a varint field as an int32.
func (f Field) Int32() (int32, error) {
	v, err := f.Int64()

	return int32(v), err
}

// Text reads a length-delimited field as a string.
func (f Field) Text() (string, error) {
	if err := f.Want(protowire.BytesType); err != nil {
		return "", err
	}

	return string(f.Bytes), nil
}

// Message reads a length-delimited field as an embedded message.
func (f Field) Message() ([]byte, error) {
	if err := f.Want(protowire.BytesType); err != nil {
		return nil, err
	}

	return f.Bytes, nil
}

// AppendDouble appends a double field.
func AppendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)

	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// AppendInt64 appends an int64 field.
func AppendInt64(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, uint64(v))
}

// AppendInt32 appends an int32 field.
func AppendInt32(b []byte, num protowire.Number, v int32) []byte {
	return AppendInt64(b, num, int64(v))
}

// AppendString appends a string field.
func AppendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}

// AppendMessage appends an already encoded embedded message.
func AppendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, msg)
}
