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
	"strconv"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// rawFieldType is the runtime-prelude wire-form symbol used as the generic
// argument to the runtime's read, write, and size operations.
func rawFieldType(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return "__prelude::pr::Bool"
	case protoreflect.BytesKind:
		return "__prelude::pr::Bytes<" + rustType(field) + ">"
	case protoreflect.DoubleKind:
		return "__prelude::pr::Double"
	case protoreflect.EnumKind:
		return "__prelude::pr::Enum<" + rustType(field) + ">"
	case protoreflect.Fixed32Kind:
		return "__prelude::pr::Fixed32"
	case protoreflect.Fixed64Kind:
		return "__prelude::pr::Fixed64"
	case protoreflect.FloatKind:
		return "__prelude::pr::Float"
	case protoreflect.GroupKind:
		return "__prelude::pr::Group<" + rustType(field) + ">"
	case protoreflect.Int32Kind:
		return "__prelude::pr::Int32"
	case protoreflect.Int64Kind:
		return "__prelude::pr::Int64"
	case protoreflect.MessageKind:
		return "__prelude::pr::Message<" + rustType(field) + ">"
	case protoreflect.Sfixed32Kind:
		return "__prelude::pr::Sfixed32"
	case protoreflect.Sfixed64Kind:
		return "__prelude::pr::Sfixed64"
	case protoreflect.Sint32Kind:
		return "__prelude::pr::Sint32"
	case protoreflect.Sint64Kind:
		return "__prelude::pr::Sint64"
	case protoreflect.StringKind:
		return "__prelude::pr::String"
	case protoreflect.Uint32Kind:
		return "__prelude::pr::Uint32"
	case protoreflect.Uint64Kind:
		return "__prelude::pr::Uint64"
	default:
		panic("unknown field type")
	}
}

// rustType is the Rust value type a field's values take in generated structs.
func rustType(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return "__prelude::bool"
	case protoreflect.BytesKind:
		return "__prelude::ByteVec"
	case protoreflect.DoubleKind:
		return "__prelude::f64"
	case protoreflect.EnumKind:
		enum := field.Enum()
		return typePath(field, enum.ParentFile(), enum.Parent(), enumName(enum))
	case protoreflect.Fixed32Kind, protoreflect.Uint32Kind:
		return "__prelude::u32"
	case protoreflect.Fixed64Kind, protoreflect.Uint64Kind:
		return "__prelude::u64"
	case protoreflect.FloatKind:
		return "__prelude::f32"
	case protoreflect.GroupKind, protoreflect.MessageKind:
		message := field.Message()
		return typePath(field, message.ParentFile(), message.Parent(), messageName(message))
	case protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind:
		return "__prelude::i32"
	case protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind:
		return "__prelude::i64"
	case protoreflect.StringKind:
		return "__prelude::String"
	default:
		panic("unknown field type")
	}
}

// typePath builds the module path for a message or enum type referenced by
// field. The path starts at the referring file's __file alias, routes through
// __imports for cross-file targets, and then prepends each ancestor's module
// name, outermost first.
func typePath(field protoreflect.FieldDescriptor, targetFile protoreflect.FileDescriptor, parent protoreflect.Descriptor, simpleName string) string {
	var b strings.Builder
	b.WriteString("__file::")
	if field.ParentFile().Path() != targetFile.Path() {
		b.WriteString("__imports::")
		b.WriteString(fileModName(targetFile))
		b.WriteString("::")
	}

	var parents []protoreflect.MessageDescriptor
	for parent != nil {
		message, ok := parent.(protoreflect.MessageDescriptor)
		if !ok {
			break
		}
		parents = append(parents, message)
		parent = message.Parent()
	}
	for i := len(parents) - 1; i >= 0; i-- {
		b.WriteString(messageModName(parents[i]))
		b.WriteString("::")
	}

	b.WriteString(simpleName)
	return b.String()
}

// defaultType is the type of a field's default constant. String and bytes
// defaults are static-storage literals.
func defaultType(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.BytesKind:
		return "&'static [__prelude::u8]"
	case protoreflect.StringKind:
		return "&'static __prelude::str"
	default:
		return rustType(field)
	}
}

// defaultTypeRef is the type returned when reading a field's value against
// its default.
func defaultTypeRef(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.BytesKind:
		return "&[__prelude::u8]"
	case protoreflect.StringKind:
		return "&__prelude::str"
	default:
		return rustType(field)
	}
}

// defaultValue is the literal for a field's default constant.
func defaultValue(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.BoolKind:
		if field.Default().Bool() {
			return "true"
		}
		return "false"
	case protoreflect.BytesKind:
		return "b\"" + string(field.Default().Bytes()) + "\""
	case protoreflect.DoubleKind:
		return strconv.FormatFloat(field.Default().Float(), 'f', 6, 64)
	case protoreflect.EnumKind:
		value := field.DefaultEnumValue()
		enum := field.Enum()
		return typePath(field, enum.ParentFile(), enum.Parent(), enumName(enum)) + "::" + enumValueName(value)
	case protoreflect.Fixed32Kind, protoreflect.Uint32Kind,
		protoreflect.Fixed64Kind, protoreflect.Uint64Kind:
		return strconv.FormatUint(field.Default().Uint(), 10)
	case protoreflect.FloatKind:
		return strconv.FormatFloat(field.Default().Float(), 'f', 6, 32)
	case protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind,
		protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind:
		return strconv.FormatInt(field.Default().Int(), 10)
	case protoreflect.StringKind:
		return "\"" + field.Default().String() + "\""
	default:
		panic("unknown field type")
	}
}

// isCopyable reports whether a field's Rust value type implements Copy.
func isCopyable(field protoreflect.FieldDescriptor) bool {
	switch field.Kind() {
	case protoreflect.BytesKind, protoreflect.StringKind,
		protoreflect.MessageKind, protoreflect.GroupKind:
		return false
	default:
		return true
	}
}

// isProto2 reports whether the file a field is declared in uses proto2
// syntax. Accessor shape follows the referring file, not the file of a
// referenced type.
func isProto2(field protoreflect.FieldDescriptor) bool {
	return field.ParentFile().Syntax() == protoreflect.Proto2
}
