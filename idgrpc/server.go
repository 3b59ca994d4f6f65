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

// Package idgrpc exposes a generator over gRPC as a server-streaming RPC:
// a client sends one StreamIdsRequest and receives a stream of IdChunk
// batches until Count ids have been delivered. It is built directly on
// grpc.ServiceDesc and grpc.StreamDesc rather than protoc-generated
// server code, since the wire messages themselves (proto.StreamIdsRequest,
// proto.IdChunk) are hand-written structs, not real proto.Message values.
package idgrpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fogfish/idflow/generator"
	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/idflow/proto"
	"google.golang.org/grpc"
)

// ChunkSize caps how many ids are batched into a single IdChunk sent over
// the stream.
const ChunkSize = 512

// ErrUnknownGenerator is returned when a StreamIdsRequest names a
// generator the server was not configured with.
var ErrUnknownGenerator = errors.New("idflow: idgrpc: unknown generator")

// Snowflake64 is the minimal interface Server needs from a 64-bit
// generator, satisfied by every shell in the generator package.
type Snowflake64 interface {
	TryNext() (generator.Status, error)
}

// ULID128 is the minimal interface Server needs from a 128-bit generator.
type ULID128 interface {
	TryNext() (generator.Status128, error)
}

// Server implements the StreamIds RPC over a fixed set of named
// generators, some 64-bit and some 128-bit, registered up front.
type Server struct {
	gen64  map[string]Snowflake64
	gen128 map[string]ULID128
}

// NewServer builds a Server with no generators registered.
func NewServer() *Server {
	return &Server{gen64: map[string]Snowflake64{}, gen128: map[string]ULID128{}}
}

// Register64 adds a 64-bit generator under name.
func (s *Server) Register64(name string, g Snowflake64) {
	s.gen64[name] = g
}

// Register128 adds a 128-bit generator under name.
func (s *Server) Register128(name string, g ULID128) {
	s.gen128[name] = g
}

// idChunkStream is the minimal send side of grpc.ServerStream this
// package needs, satisfied by grpc.ServerStream itself.
type idChunkStream interface {
	Context() context.Context
	SendMsg(m any) error
}

// StreamIds implements the RPC handler body: it decodes the request,
// looks up the named generator, and repeatedly calls TryNext, batching
// Ready ids into chunks of up to ChunkSize and sending each chunk as soon
// as it fills, until Count ids have been delivered.
//
// A Pending result is not an error: the handler simply calls TryNext
// again immediately, since spinning inside a single gRPC handler
// goroutine is cheaper than the round trip a client-side retry would
// cost, and generator.Status already tells it exactly how long to expect
// to wait.
func (s *Server) StreamIds(req *proto.StreamIdsRequest, stream idChunkStream) error {
	slog.Debug("stream ids requested", "generator", req.Generator, "count", req.Count)

	if g, ok := s.gen64[req.Generator]; ok {
		err := streamFrom64(stream, g, req.Count)
		if err != nil {
			slog.Warn("stream ids failed", "generator", req.Generator, "error", err)
		}
		return err
	}
	if g, ok := s.gen128[req.Generator]; ok {
		err := streamFrom128(stream, g, req.Count)
		if err != nil {
			slog.Warn("stream ids failed", "generator", req.Generator, "error", err)
		}
		return err
	}
	return ErrUnknownGenerator
}

func streamFrom64(stream idChunkStream, g Snowflake64, count uint64) error {
	batch := make([]uint64, 0, ChunkSize)
	var minted uint64

	for minted < count {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		default:
		}

		status, err := g.TryNext()
		if err != nil {
			return err
		}
		if !status.IsReady() {
			continue
		}

		batch = append(batch, status.ID())
		minted++

		if len(batch) == ChunkSize || minted == count {
			if err := stream.SendMsg(&proto.IdChunk{PackedIds: proto.PackIds64(batch)}); err != nil {
				return err
			}
			batch = make([]uint64, 0, ChunkSize)
		}
	}
	return nil
}

func streamFrom128(stream idChunkStream, g ULID128, count uint64) error {
	batch := make([]u128.U128, 0, ChunkSize)
	var minted uint64

	for minted < count {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		default:
		}

		status, err := g.TryNext()
		if err != nil {
			return err
		}
		if !status.IsReady() {
			continue
		}

		batch = append(batch, status.ID())
		minted++

		if len(batch) == ChunkSize || minted == count {
			if err := stream.SendMsg(&proto.IdChunk{PackedIds: proto.PackIds128(batch)}); err != nil {
				return err
			}
			batch = make([]u128.U128, 0, ChunkSize)
		}
	}
	return nil
}

// ServiceDesc is the low-level grpc.ServiceDesc registration for Server,
// standing in for the protoc-generated descriptor a real .proto file
// would produce.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "idflow.IdGen",
	HandlerType: (*any)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamIds",
			ServerStreams: true,
			Handler:       streamIdsHandler,
		},
	},
	Metadata: "idflow/idgen.proto",
}

func streamIdsHandler(srv any, stream grpc.ServerStream) error {
	req := new(proto.StreamIdsRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(*Server).StreamIds(req, stream)
}
