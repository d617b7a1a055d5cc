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

// enumGen emits a protobuf enum as a newtype over i32. Every i32 is a valid
// value of the generated type; the declared values become associated
// constants, and the Debug impl falls back to the raw integer for undeclared
// values. The zero value is the default whether or not a declared value has
// number 0.
type enumGen struct {
	enum protoreflect.EnumDescriptor
	opts *Options
}

func newEnumGen(enum protoreflect.EnumDescriptor, opts *Options) *enumGen {
	return &enumGen{enum: enum, opts: opts}
}

func (g *enumGen) generate(p *printer) {
	vars := map[string]string{
		"name": enumName(g.enum),
	}

	p.Print(vars,
		"#[derive(Clone, Copy, PartialEq, Eq, Hash, PartialOrd, Ord)]\n"+
			"pub struct $name$(pub i32);\n"+
			"\n"+
			"impl __prelude::Enum for $name$ { }\n"+
			"impl __prelude::From<i32> for $name$ {\n"+
			"  fn from(x: i32) -> Self {\n"+
			"    Self(x)\n"+
			"  }\n"+
			"}\n"+
			"impl __prelude::From<$name$> for i32 {\n"+
			"  fn from(x: $name$) -> Self {\n"+
			"    x.0\n"+
			"  }\n"+
			"}\n"+
			"impl __prelude::Default for $name$ {\n"+
			"  fn default() -> Self {\n"+
			"    Self(0)\n"+
			"  }\n"+
			"}\n")

	p.Print(vars, "impl $name$ {\n")
	p.Indent()

	values := g.enum.Values()
	for i := 0; i < values.Len(); i++ {
		value := values.Get(i)
		p.Print(map[string]string{
			"name":  enumValueName(value),
			"value": strconv.FormatInt(int64(value.Number()), 10),
		}, "pub const $name$: Self = Self($value$);\n")
	}

	p.Outdent()
	p.PrintRaw("}\n")

	p.Print(vars, "impl __prelude::Debug for $name$ {\n")
	p.Indent()
	p.PrintRaw("fn fmt(&self, f: &mut __prelude::Formatter) -> __prelude::fmt::Result {\n")
	p.Indent()
	// Aliased values produce unreachable arms; tolerate them rather than
	// deduplicating here.
	p.PrintRaw(
		"#[allow(unreachable_patterns)]\n" +
			"match *self {\n")
	p.Indent()

	for i := 0; i < values.Len(); i++ {
		value := values.Get(i)
		p.Print(map[string]string{
			"name": enumValueName(value),
		}, "Self::$name$ => f.write_str(\"$name$\"),\n")
	}

	p.PrintRaw("Self(x) => x.fmt(f),\n")

	p.Outdent() // match
	p.PrintRaw("}\n")
	p.Outdent() // fmt
	p.PrintRaw("}\n")
	p.Outdent() // impl
	p.PrintRaw("}\n")
}
