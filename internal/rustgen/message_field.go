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

// Emission for singular submessage and group fields. The member is an
// Option<Box<..>> so an absent submessage costs one word; merging reuses the
// existing box when present.

func (g *fieldGen) messageMergeBranches(p *printer) {
	vars := map[string]string{
		"name": fieldName(g.field),
		"type": rawFieldType(g.field),
		"num":  fieldNumberName(g.field),
		"tag":  strconv.FormatUint(uint64(makeTag(g.field.Number(), wireTypeForKind(g.field.Kind()))), 10),
	}

	p.Print(vars,
		"$tag$ =>\n"+
			"  match &mut self.$name$ {\n"+
			"    __prelude::Some(v) => field.merge_value::<$type$>(Self::$num$, v)?,\n"+
			"    opt @ __prelude::None => *opt = __prelude::Some(__prelude::Box::new(field.read_value::<$type$>(Self::$num$)?)),\n"+
			"  },\n")
}

func (g *fieldGen) messageItems(p *printer) {
	vars := map[string]string{
		"name":        fieldName(g.field),
		"name_noescp": string(g.field.Name()),
		"type":        rustType(g.field),
	}

	p.Print(vars,
		"pub fn $name_noescp$_option(&self) -> __prelude::Option<&$type$> {\n"+
			"  self.$name$.as_deref()\n"+
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
			"  self.$name$.take().map(|v| *v)\n"+
			"}\n"+
			"pub fn clear_$name_noescp$(&mut self) {\n"+
			"  self.$name$ = __prelude::None\n"+
			"}\n")
}
