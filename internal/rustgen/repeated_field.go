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

// Emission for repeated fields, including maps (which specialize the member
// type and the wire-form generic argument; see fieldType and implGenericArg).
//
// Packable fields accept both framings on merge: the element wire type and
// the length-delimited packed form. The arm for the field's declared framing
// comes first.

func (g *fieldGen) repeatedMergeBranches(p *printer) {
	vars := map[string]string{
		"name":     fieldName(g.field),
		"arg":      g.implGenericArg(),
		"num":      fieldNumberName(g.field),
		"unpacked": strconv.FormatUint(uint64(makeTag(g.field.Number(), wireTypeForKind(g.field.Kind()))), 10),
	}

	if g.isPackable() {
		vars["packed"] = strconv.FormatUint(uint64(makeTag(g.field.Number(), wireLengthDelimited)), 10)

		if g.field.IsPacked() {
			p.Print(vars,
				"$packed$ => field.add_entries_to::<_, __prelude::pr::Packed<$arg$>>(Self::$num$, &mut self.$name$)?,\n"+
					"$unpacked$ => field.add_entries_to::<_, $arg$>(Self::$num$, &mut self.$name$)?,\n")
		} else {
			p.Print(vars,
				"$unpacked$ => field.add_entries_to::<_, $arg$>(Self::$num$, &mut self.$name$)?,\n"+
					"$packed$ => field.add_entries_to::<_, __prelude::pr::Packed<$arg$>>(Self::$num$, &mut self.$name$)?,\n")
		}
	} else {
		p.Print(vars,
			"$unpacked$ => field.add_entries_to::<_, $arg$>(Self::$num$, &mut self.$name$)?,\n")
	}
}

func (g *fieldGen) repeatedCalculateSize(p *printer) {
	vars := map[string]string{
		"name": fieldName(g.field),
		"arg":  g.implGenericArg(),
		"num":  fieldNumberName(g.field),
	}

	if g.field.IsPacked() {
		p.Print(vars,
			"builder = builder.add_values::<_, __prelude::pr::Packed<$arg$>>(Self::$num$, &self.$name$)?;\n")
	} else {
		p.Print(vars,
			"builder = builder.add_values::<_, $arg$>(Self::$num$, &self.$name$)?;\n")
	}
}

func (g *fieldGen) repeatedWriteTo(p *printer) {
	vars := map[string]string{
		"name": fieldName(g.field),
		"arg":  g.implGenericArg(),
		"num":  fieldNumberName(g.field),
	}

	if g.field.IsPacked() {
		p.Print(vars,
			"output.write_values::<_, __prelude::pr::Packed<$arg$>>(Self::$num$, &self.$name$)?;\n")
	} else {
		p.Print(vars,
			"output.write_values::<_, $arg$>(Self::$num$, &self.$name$)?;\n")
	}
}

func (g *fieldGen) repeatedIsInitialized(p *printer) {
	p.Print(map[string]string{
		"name": fieldName(g.field),
	}, "if !__prelude::p::is_initialized(&self.$name$) {\n"+
		"  return false;\n"+
		"}\n")
}

func (g *fieldGen) repeatedItems(p *printer) {
	p.Print(map[string]string{
		"name":        fieldName(g.field),
		"name_noescp": string(g.field.Name()),
		"type":        g.fieldType(),
	}, "pub fn $name$(&self) -> &$type$ {\n"+
		"  &self.$name$\n"+
		"}\n"+
		"pub fn $name_noescp$_mut(&mut self) -> &mut $type$ {\n"+
		"  &mut self.$name$\n"+
		"}\n")
}
