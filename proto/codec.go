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

package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the codec name this package registers with grpc/encoding. A
// client selects it per call with grpc.CallContentSubtype(Name), which
// steers both client and server away from gRPC's default proto codec
// (which requires a real proto.Message) and onto this package's fixed
// binary layout instead; idgrpc itself does not set it.
const Name = "idflow-binary"

// wireMessage is implemented by every message this package defines.
type wireMessage interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

type binaryCodec struct{}

func (binaryCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("idflow: proto: %T does not implement wireMessage", v)
	}
	return m.Marshal()
}

func (binaryCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("idflow: proto: %T does not implement wireMessage", v)
	}
	return m.Unmarshal(data)
}

func (binaryCodec) Name() string { return Name }

func init() {
	encoding.RegisterCodec(binaryCodec{})
}
