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

// messageGen emits a message: the struct, the Message and Initializable
// impls, the extension surface when the message has extension ranges, the
// per-field constants and accessors, and a nested module for any inner types.
type messageGen struct {
	message protoreflect.MessageDescriptor
	opts    *Options
}

func newMessageGen(message protoreflect.MessageDescriptor, opts *Options) *messageGen {
	return &messageGen{message: message, opts: opts}
}

// hasInnerItems reports whether the message needs a nested module: nested
// messages, nested enums, extensions, or oneof declarations.
func hasInnerItems(message protoreflect.MessageDescriptor) bool {
	return message.Messages().Len() != 0 ||
		message.Enums().Len() != 0 ||
		message.Extensions().Len() != 0 ||
		message.Oneofs().Len() != 0
}

func (g *messageGen) fieldGens() []*fieldGen {
	fields := g.message.Fields()
	gens := make([]*fieldGen, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		gens[i] = newFieldGen(fields.Get(i), g.opts)
	}
	return gens
}

func (g *messageGen) generate(p *printer) {
	message := g.message
	hasExtensionRanges := message.ExtensionRanges().Len() != 0
	fields := g.fieldGens()
	vars := map[string]string{
		"name":      messageName(message),
		"mod_name":  messageModName(message),
		"full_name": string(message.FullName()),
	}

	p.Print(vars,
		"#[derive(Clone, Debug, PartialEq, Default)]\n"+
			"pub struct $name$ {\n")
	p.Indent()

	for _, field := range fields {
		field.generateStructField(p)
	}

	if hasExtensionRanges {
		p.PrintRaw("__extensions: __prelude::ExtensionSet<Self>,\n")
	}

	p.PrintRaw("__unknown_fields: __prelude::UnknownFieldSet,\n")

	p.Outdent()
	p.PrintRaw("}\n")

	p.Print(vars, "impl __prelude::Message for self::$name$ {\n")
	p.Indent()

	p.PrintRaw("fn merge_from<T: __prelude::Input>(&mut self, input: &mut __prelude::CodedReader<T>) -> __prelude::read::Result<()> {\n")
	p.Indent()

	p.PrintRaw("while let __prelude::Some(field) = input.read_field()? {\n")
	p.Indent()

	p.PrintRaw("match field.tag() {\n")
	p.Indent()

	for _, field := range fields {
		field.generateMergeBranches(p)
	}

	if hasExtensionRanges {
		p.PrintRaw(
			"_ => \n" +
				"  field\n" +
				"    .check_and_try_add_field_to(&mut self.__extensions)?\n" +
				"    .or_try(&mut self.__unknown_fields)?\n" +
				"    .or_skip()?\n")
	} else {
		p.PrintRaw(
			"_ => \n" +
				"  field\n" +
				"    .check_and_try_add_field_to(&mut self.__unknown_fields)?\n" +
				"    .or_skip()?\n")
	}

	p.Outdent() // match
	p.PrintRaw("}\n")
	p.Outdent() // while
	p.PrintRaw(
		"}\n" +
			"__prelude::Ok(())\n")
	p.Outdent() // fn merge_from
	p.PrintRaw(
		"}\n" +
			"fn calculate_size(&self) -> __prelude::Option<__prelude::Length> {\n")
	p.Indent()

	p.PrintRaw("let mut builder = __prelude::pio::LengthBuilder::new();\n")

	for _, field := range fields {
		field.generateCalculateSize(p)
	}

	if hasExtensionRanges {
		p.PrintRaw("builder = builder.add_fields(&self.__extensions)?;\n")
	}

	p.PrintRaw(
		"builder = builder.add_fields(&self.__unknown_fields)?;\n" +
			"__prelude::Some(builder.build())")

	p.Outdent() // fn calculate_size
	p.PrintRaw(
		"}\n" +
			"fn write_to<T: __prelude::Output>(&self, output: &mut __prelude::CodedWriter<T>) -> __prelude::write::Result {\n")
	p.Indent()

	for _, field := range fields {
		field.generateWriteTo(p)
	}

	if hasExtensionRanges {
		p.PrintRaw("output.write_fields(&self.__extensions)?;\n")
	}

	p.PrintRaw(
		"output.write_fields(&self.__unknown_fields)?;\n" +
			"__prelude::Ok(())\n")
	p.Outdent() // fn write_to
	p.PrintRaw(
		"}\n" +
			"fn unknown_fields(&self) -> &__prelude::UnknownFieldSet {\n" +
			"  &self.__unknown_fields\n" +
			"}\n" +
			"fn unknown_fields_mut(&mut self) -> &mut __prelude::UnknownFieldSet {\n" +
			"  &mut self.__unknown_fields\n" +
			"}\n")

	p.Outdent() // impl Message
	p.Print(vars,
		"}\n"+
			"impl __prelude::Initializable for self::$name$ {\n")
	p.Indent()
	p.PrintRaw("fn is_initialized(&self) -> bool {\n")
	p.Indent()

	for _, field := range fields {
		field.generateIsInitialized(p)
	}

	p.PrintRaw("true\n")
	p.Outdent() // fn is_initialized
	p.PrintRaw("}\n")
	p.Outdent() // impl Initializable
	p.PrintRaw("}\n")

	if hasExtensionRanges {
		p.Print(vars,
			"impl __prelude::ExtendableMessage for self::$name$ {\n"+
				"  fn extensions(&self) -> &__prelude::ExtensionSet<Self> {\n"+
				"    &self.__extensions\n"+
				"  }\n"+
				"  fn extensions_mut(&mut self) -> &mut __prelude::ExtensionSet<Self> {\n"+
				"    &mut self.__extensions\n"+
				"  }\n"+
				"}\n")
	}

	// TODO: emit the full msg_type! reflection binding once the runtime's
	// descriptor pool accessors land; dbg_msg! is the only reflection hook
	// generated for now.
	p.Print(vars,
		"__prelude::prefl::dbg_msg!(self::$name$ { full_name: \"$full_name$\", name: \"$name$\" });\n")

	p.Print(vars, "impl self::$name$ {\n")
	p.Indent()

	for _, field := range fields {
		field.generateFieldNumberConst(p)
		field.generateItems(p)
	}

	p.Outdent()
	p.PrintRaw("}\n")

	if hasInnerItems(message) {
		p.Print(vars, "pub mod $mod_name$ {\n")
		p.Indent()

		p.PrintRaw(
			"pub(self) use super::__file;\n" +
				"pub(self) use ::protrust::gen_prelude as __prelude;\n" +
				"\n")

		nested := message.Messages()
		for i := 0; i < nested.Len(); i++ {
			newMessageGen(nested.Get(i), g.opts).generate(p)
		}
		enums := message.Enums()
		for i := 0; i < enums.Len(); i++ {
			newEnumGen(enums.Get(i), g.opts).generate(p)
		}
		extensions := message.Extensions()
		for i := 0; i < extensions.Len(); i++ {
			newFieldGen(extensions.Get(i), g.opts).generateExtension(p)
		}
		// TODO: oneof declarations open this module but have no emitted
		// layout yet.

		p.Outdent()
		p.PrintRaw("}\n")
	}
}
