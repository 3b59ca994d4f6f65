/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

// Package proto defines the wire messages the idgrpc server streams, and
// a minimal binary codec for them.
//
// This deliberately does not use google.golang.org/protobuf message
// types: a real proto.Message needs generated reflection metadata that
// only protoc-gen-go can produce, and hand-faking that metadata would be
// worse than not using protobuf at all. Instead these are plain Go
// structs marshaled by a small fixed-layout binary codec, registered with
// google.golang.org/grpc's low-level encoding.RegisterCodec so the
// generator can still be served over a real gRPC stream without any
// generated code.
//
// Every field on the wire is packed little-endian, matching the ids
// themselves: an id is defined as a little-endian byte string, so the
// envelope around it stays little-endian too rather than mixing
// endianness within one message.
package proto

import (
	"encoding/binary"
	"errors"

	"github.com/fogfish/idflow/internal/u128"
)

// ErrTruncated is returned when a wire message ends before all of its
// declared fields have been read.
var ErrTruncated = errors.New("idflow: proto: truncated message")

// StreamIdsRequest asks the server to stream a batch of ids from one
// named generator.
type StreamIdsRequest struct {
	Generator string
	Count     uint64
}

// Marshal encodes r as: 2-byte generator name length, name bytes, 8-byte
// count, all little-endian.
func (r *StreamIdsRequest) Marshal() ([]byte, error) {
	buf := make([]byte, 2+len(r.Generator)+8)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(r.Generator)))
	copy(buf[2:], r.Generator)
	binary.LittleEndian.PutUint64(buf[2+len(r.Generator):], r.Count)
	return buf, nil
}

// Unmarshal decodes b into r.
func (r *StreamIdsRequest) Unmarshal(b []byte) error {
	if len(b) < 2 {
		return ErrTruncated
	}
	n := int(binary.LittleEndian.Uint16(b[0:2]))
	if len(b) < 2+n+8 {
		return ErrTruncated
	}
	r.Generator = string(b[2 : 2+n])
	r.Count = binary.LittleEndian.Uint64(b[2+n : 2+n+8])
	return nil
}

// IdChunk carries a batch of freshly minted ids as a flat run of
// little-endian fixed-width bytes: len(PackedIds) is always a multiple of
// the id width in use (8 bytes for a 64-bit generator, 16 for a 128-bit
// one). The width itself travels out-of-band: a client learns it from the
// generator name it asked StreamIds for, the same way it already knows
// which preset that name refers to.
type IdChunk struct {
	PackedIds []byte
}

// Marshal returns c's packed bytes unchanged; there is no envelope beyond
// the bytes themselves.
func (c *IdChunk) Marshal() ([]byte, error) {
	return c.PackedIds, nil
}

// Unmarshal copies b into c.PackedIds.
func (c *IdChunk) Unmarshal(b []byte) error {
	c.PackedIds = append([]byte(nil), b...)
	return nil
}

// PackIds64 packs a batch of 64-bit ids into the little-endian flat byte
// layout an IdChunk carries.
func PackIds64(ids []uint64) []byte {
	buf := make([]byte, 8*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint64(buf[8*i:], id)
	}
	return buf
}

// UnpackIds64 reverses PackIds64.
func UnpackIds64(b []byte) ([]uint64, error) {
	if len(b)%8 != 0 {
		return nil, ErrTruncated
	}
	ids := make([]uint64, len(b)/8)
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint64(b[8*i:])
	}
	return ids, nil
}

// PackIds128 packs a batch of 128-bit ids into the little-endian flat
// byte layout an IdChunk carries: each id is 16 bytes, low word first.
func PackIds128(ids []u128.U128) []byte {
	buf := make([]byte, 16*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint64(buf[16*i:], id.Lo)
		binary.LittleEndian.PutUint64(buf[16*i+8:], id.Hi)
	}
	return buf
}

// UnpackIds128 reverses PackIds128.
func UnpackIds128(b []byte) ([]u128.U128, error) {
	if len(b)%16 != 0 {
		return nil, ErrTruncated
	}
	ids := make([]u128.U128, len(b)/16)
	for i := range ids {
		ids[i] = u128.U128{
			Lo: binary.LittleEndian.Uint64(b[16*i:]),
			Hi: binary.LittleEndian.Uint64(b[16*i+8:]),
		}
	}
	return ids, nil
}
