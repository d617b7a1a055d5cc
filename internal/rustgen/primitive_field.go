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

import "strconv"

// Emission for singular scalar, string, bytes, and enum fields.
//
// Under proto2 the member is an Option and the accessor surface carries the
// full has/set/take/clear set with a const default; under proto3 the member
// is bare and only a borrowing getter and a mutable getter are emitted, with
// a static default.

func (g *fieldGen) primitiveMergeBranches(p *printer) {
	vars := map[string]string{
		"name": fieldName(g.field),
		"type": rawFieldType(g.field),
		"num":  fieldNumberName(g.field),
		"tag":  strconv.FormatUint(uint64(makeTag(g.field.Number(), wireTypeForKind(g.field.Kind()))), 10),
	}

	if isProto2(g.field) {
		p.Print(vars,
			"$tag$ => field.merge_value::<$type$>(Self::$num$, self.$name$.get_or_insert_with(__prelude::Default::default))?,\n")
	} else {
		p.Print(vars,
			"$tag$ => field.merge_value::<$type$>(Self::$num$, &mut self.$name$)?,\n")
	}
}

func (g *fieldGen) primitiveItems(p *printer) {
	vars := map[string]string{
		"name":         fieldName(g.field),
		"name_noescp":  string(g.field.Name()),
		"type":         rustType(g.field),
		"default":      fieldDefaultName(g.field),
		"default_type": defaultType(g.field),
		"default_ref":  defaultTypeRef(g.field),
		"default_val":  defaultValue(g.field),
	}

	if isProto2(g.field) {
		if isCopyable(g.field) {
			p.Print(vars,
				"pub const $default$: $default_type$ = $default_val$;\n"+
					"pub fn $name$(&self) -> $default_ref$ {\n"+
					"  self.$name$.unwrap_or(Self::$default$)\n"+
					"}\n")
		} else {
			p.Print(vars,
				"pub const $default$: $default_type$ = $default_val$;\n"+
					"pub fn $name$(&self) -> $default_ref$ {\n"+
					"  self.$name$.as_ref().map_or(Self::$default$, __prelude::AsRef::as_ref)\n"+
					"}\n")
		}
		p.Print(vars,
			"pub fn $name_noescp$_option(&self) -> __prelude::Option<&$type$> {\n"+
				"  self.$name$.as_ref()\n"+
				"}\n"+
				"pub fn $name_noescp$_mut(&mut self) -> &mut $type$ {\n"+
				"  self.$name$.get_or_insert_with(__prelude::Default::default)\n"+
				"}\n"+
				"pub fn has_$name_noescp$(&self) -> bool {\n"+
				"  self.$name$.is_some()\n"+
				"}\n"+
				"pub fn set_$name_noescp$(&mut self, value: $type$) {\n"+
				"  self.$name$ = __prelude::Some(__prelude::From::from(value))\n"+
				"}\n"+
				"pub fn take_$name_noescp$(&mut self) -> __prelude::Option<$type$> {\n"+
				"  self.$name$.take()\n"+
				"}\n"+
				"pub fn clear_$name_noescp$(&mut self) {\n"+
				"  self.$name$ = __prelude::None\n"+
				"}\n")
	} else {
		p.Print(vars,
			"pub static $default$: $default_type$ = $default_val$;\n"+
				"pub fn $name$(&self) -> &$type$ {\n"+
				"  &self.$name$\n"+
				"}\n"+
				"pub fn $name_noescp$_mut(&mut self) -> &mut $type$ {\n"+
				"  &mut self.$name$\n"+
				"}\n")
	}
}
