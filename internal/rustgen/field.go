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

	"google.golang.org/protobuf/reflect/protoreflect"
)

// fieldShape selects the emission strategy for a field.
type fieldShape int

const (
	shapePrimitive fieldShape = iota
	shapeMessage
	shapeRepeated
	shapeMap
)

func shapeOf(field protoreflect.FieldDescriptor) fieldShape {
	switch {
	case field.IsMap():
		return shapeMap
	case field.IsList():
		return shapeRepeated
	case field.Message() != nil:
		return shapeMessage
	default:
		return shapePrimitive
	}
}

// fieldGen emits the per-field pieces of a message: the struct member, the
// merge arms, the size and write contributions, the initialization check, the
// accessor surface, the field-number constant, and the extension declaration.
// Some pieces are empty for some shapes.
type fieldGen struct {
	field protoreflect.FieldDescriptor
	opts  *Options
	shape fieldShape
}

func newFieldGen(field protoreflect.FieldDescriptor, opts *Options) *fieldGen {
	return &fieldGen{field: field, opts: opts, shape: shapeOf(field)}
}

// fieldType is the type of the field's struct member.
func (g *fieldGen) fieldType() string {
	switch g.shape {
	case shapePrimitive:
		if isProto2(g.field) {
			return "__prelude::Option<" + rustType(g.field) + ">"
		}
		return rustType(g.field)
	case shapeMessage:
		return "__prelude::Option<__prelude::Box<" + rustType(g.field) + ">>"
	case shapeRepeated:
		return "__prelude::RepeatedField<" + rustType(g.field) + ">"
	case shapeMap:
		key, value := g.mapEntryFields()
		return "__prelude::MapField<" + rustType(key) + ", " + rustType(value) + ">"
	}
	panic("unknown field shape")
}

// implGenericArg is the wire-form generic argument for the runtime's repeated
// field operations. Map entries use the (key, value) tuple form.
func (g *fieldGen) implGenericArg() string {
	if g.shape == shapeMap {
		key, value := g.mapEntryFields()
		return "(" + rawFieldType(key) + ", " + rawFieldType(value) + ")"
	}
	return rawFieldType(g.field)
}

// mapEntryFields returns the key and value fields of the synthetic map-entry
// descriptor.
func (g *fieldGen) mapEntryFields() (key, value protoreflect.FieldDescriptor) {
	entry := g.field.Message()
	return entry.Fields().ByNumber(1), entry.Fields().ByNumber(2)
}

func (g *fieldGen) generateStructField(p *printer) {
	p.Print(map[string]string{
		"name": fieldName(g.field),
		"type": g.fieldType(),
	}, "$name$: $type$,\n")
}

func (g *fieldGen) generateFieldNumberConst(p *printer) {
	p.Print(map[string]string{
		"num":     fieldNumberName(g.field),
		"num_val": strconv.FormatInt(int64(g.field.Number()), 10),
	}, "pub const $num$: __prelude::FieldNumber = unsafe { __prelude::FieldNumber::new_unchecked($num_val$) };\n")
}

func (g *fieldGen) generateMergeBranches(p *printer) {
	switch g.shape {
	case shapePrimitive:
		g.primitiveMergeBranches(p)
	case shapeMessage:
		g.messageMergeBranches(p)
	case shapeRepeated, shapeMap:
		g.repeatedMergeBranches(p)
	}
}

func (g *fieldGen) generateCalculateSize(p *printer) {
	switch g.shape {
	case shapeRepeated, shapeMap:
		g.repeatedCalculateSize(p)
	}
}

func (g *fieldGen) generateWriteTo(p *printer) {
	switch g.shape {
	case shapeRepeated, shapeMap:
		g.repeatedWriteTo(p)
	}
}

func (g *fieldGen) generateIsInitialized(p *printer) {
	switch g.shape {
	case shapeRepeated, shapeMap:
		g.repeatedIsInitialized(p)
	}
}

func (g *fieldGen) generateItems(p *printer) {
	switch g.shape {
	case shapePrimitive:
		g.primitiveItems(p)
	case shapeMessage:
		g.messageItems(p)
	case shapeRepeated, shapeMap:
		g.repeatedItems(p)
	}
}

func (g *fieldGen) generateExtension(p *printer) {
	// TODO: emit Extension / RepeatedExtension statics once the runtime's
	// extension registration surface is settled. Map fields cannot be
	// extensions, so they stay a no-op regardless.
}

// isPackable reports whether the field is a repeated field whose element wire
// form permits packing.
func (g *fieldGen) isPackable() bool {
	if !g.field.IsList() {
		return false
	}
	switch wireTypeForKind(g.field.Kind()) {
	case wireVarint, wireBit32, wireBit64:
		return true
	default:
		return false
	}
}
