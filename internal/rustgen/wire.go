// Copyright 2024 The protrust Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rustgen

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// wireType is the 3-bit on-the-wire framing code for a field.
type wireType uint32

const (
	wireVarint          wireType = 0
	wireBit64           wireType = 1
	wireLengthDelimited wireType = 2
	wireStartGroup      wireType = 3
	wireEndGroup        wireType = 4
	wireBit32           wireType = 5
)

// wireTypeForKind maps a field kind to its wire type. An unknown kind is a
// bug in the descriptor walk and panics with "unknown field type".
func wireTypeForKind(kind protoreflect.Kind) wireType {
	switch kind {
	case protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind, protoreflect.DoubleKind:
		return wireBit64
	case protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind, protoreflect.FloatKind:
		return wireBit32
	case protoreflect.Int32Kind, protoreflect.Int64Kind,
		protoreflect.Uint32Kind, protoreflect.Uint64Kind,
		protoreflect.Sint32Kind, protoreflect.Sint64Kind,
		protoreflect.BoolKind, protoreflect.EnumKind:
		return wireVarint
	case protoreflect.MessageKind, protoreflect.BytesKind, protoreflect.StringKind:
		return wireLengthDelimited
	case protoreflect.GroupKind:
		return wireStartGroup
	default:
		panic("unknown field type")
	}
}

// makeTag combines a field number and wire type into the varint tag value.
func makeTag(number protoreflect.FieldNumber, wt wireType) uint32 {
	return uint32(number)<<3 | uint32(wt)
}
