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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGenerateSingleFileUnimplemented(t *testing.T) {
	t.Parallel()

	err := New().Generate(nil, "", newMemoryContext())
	require.EqualError(t, err, "unimplemented; use GenerateAll")
}

func TestGenerateUnknownOption(t *testing.T) {
	t.Parallel()

	files := compileFiles(t, []string{"empty.proto"}, map[string][]byte{
		"empty.proto": []byte(`syntax = "proto3";`),
	})
	err := New().GenerateAll(files, "frobnicate=1", newMemoryContext())
	require.EqualError(t, err, "Unknown generator option: frobnicate")
}

func TestGenerateEmptyFile(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"empty.proto"}, map[string][]byte{
		"empty.proto": []byte(`syntax = "proto3";`),
	})

	require.Equal(t, []string{"mod.rs", "empty.proto/protrust.rs"}, generatorContext.names)

	expectedFile := "pub(self) use super::__file;\n" +
		"pub(self) use ::protrust::gen_prelude as __prelude;\n" +
		"\n"
	require.Empty(t, cmp.Diff(expectedFile, generatorContext.content("empty.proto/protrust.rs")))

	expectedMod := `// DO NOT EDIT! This file was generated by protoc-gen-rust as part of the protrust library

#[path = "empty.proto"]
pub mod empty_proto {
  pub(self) use super::globals as __globals;
  pub(self) use super::empty_proto as __file;
  pub(self) mod __imports {
  }

  #[path = "protrust.rs"]
  mod protrust;

  pub use self::protrust::*;

}
`
	require.Empty(t, cmp.Diff(expectedMod, generatorContext.content("mod.rs")))
}

func TestGenerateProto3Message(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"counter.proto"}, map[string][]byte{
		"counter.proto": []byte(`
syntax = "proto3";
message Counter {
  int32 count = 7;
}
`),
	})

	expected := `pub(self) use super::__file;
pub(self) use ::protrust::gen_prelude as __prelude;

#[derive(Clone, Debug, PartialEq, Default)]
pub struct Counter {
  count: __prelude::i32,
  __unknown_fields: __prelude::UnknownFieldSet,
}
impl __prelude::Message for self::Counter {
  fn merge_from<T: __prelude::Input>(&mut self, input: &mut __prelude::CodedReader<T>) -> __prelude::read::Result<()> {
    while let __prelude::Some(field) = input.read_field()? {
      match field.tag() {
        56 => field.merge_value::<__prelude::pr::Int32>(Self::COUNT_NUMBER, &mut self.count)?,
        _ => 
          field
            .check_and_try_add_field_to(&mut self.__unknown_fields)?
            .or_skip()?
      }
    }
    __prelude::Ok(())
  }
  fn calculate_size(&self) -> __prelude::Option<__prelude::Length> {
    let mut builder = __prelude::pio::LengthBuilder::new();
    builder = builder.add_fields(&self.__unknown_fields)?;
    __prelude::Some(builder.build())}
  fn write_to<T: __prelude::Output>(&self, output: &mut __prelude::CodedWriter<T>) -> __prelude::write::Result {
    output.write_fields(&self.__unknown_fields)?;
    __prelude::Ok(())
  }
  fn unknown_fields(&self) -> &__prelude::UnknownFieldSet {
    &self.__unknown_fields
  }
  fn unknown_fields_mut(&mut self) -> &mut __prelude::UnknownFieldSet {
    &mut self.__unknown_fields
  }
}
impl __prelude::Initializable for self::Counter {
  fn is_initialized(&self) -> bool {
    true
  }
}
__prelude::prefl::dbg_msg!(self::Counter { full_name: "Counter", name: "Counter" });
impl self::Counter {
  pub const COUNT_NUMBER: __prelude::FieldNumber = unsafe { __prelude::FieldNumber::new_unchecked(7) };
  pub static COUNT_DEFAULT: __prelude::i32 = 0;
  pub fn count(&self) -> &__prelude::i32 {
    &self.count
  }
  pub fn count_mut(&mut self) -> &mut __prelude::i32 {
    &mut self.count
  }
}
`
	require.Empty(t, cmp.Diff(expected, generatorContext.content("counter.proto/protrust.rs")))
}

func TestGenerateProto2StringDefault(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"person.proto"}, map[string][]byte{
		"person.proto": []byte(`
syntax = "proto2";
message Person {
  optional string name = 1 [default = "anon"];
}
`),
	})
	content := generatorContext.content("person.proto/protrust.rs")

	require.Contains(t, content, "  name: __prelude::Option<__prelude::String>,\n")
	require.Contains(t, content,
		"        10 => field.merge_value::<__prelude::pr::String>(Self::NAME_NUMBER, self.name.get_or_insert_with(__prelude::Default::default))?,\n")
	require.Contains(t, content, "  pub const NAME_DEFAULT: &'static __prelude::str = \"anon\";\n")
	require.Contains(t, content,
		"  pub fn name(&self) -> &__prelude::str {\n"+
			"    self.name.as_ref().map_or(Self::NAME_DEFAULT, __prelude::AsRef::as_ref)\n"+
			"  }\n")
	require.Contains(t, content, "  pub fn has_name(&self) -> bool {\n")
	require.Contains(t, content, "  pub fn set_name(&mut self, value: __prelude::String) {\n")
	require.Contains(t, content, "  pub fn take_name(&mut self) -> __prelude::Option<__prelude::String> {\n")
	require.Contains(t, content,
		"  pub fn clear_name(&mut self) {\n"+
			"    self.name = __prelude::None\n"+
			"  }\n")
}

func TestGenerateProto2Defaults(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"settings.proto"}, map[string][]byte{
		"settings.proto": []byte(`
syntax = "proto2";
message Settings {
  optional bool enabled = 1 [default = true];
  optional Mode mode = 2 [default = MODE_FAST];
  optional bytes blob = 3 [default = "hi"];
}
enum Mode {
  MODE_SLOW = 0;
  MODE_FAST = 1;
}
`),
	})
	content := generatorContext.content("settings.proto/protrust.rs")

	require.Contains(t, content, "  pub const ENABLED_DEFAULT: __prelude::bool = true;\n")
	require.Contains(t, content,
		"  pub fn enabled(&self) -> __prelude::bool {\n"+
			"    self.enabled.unwrap_or(Self::ENABLED_DEFAULT)\n"+
			"  }\n")
	require.Contains(t, content, "  pub const MODE_DEFAULT: __file::Mode = __file::Mode::MODE_FAST;\n")
	require.Contains(t, content,
		"  pub fn mode(&self) -> __file::Mode {\n"+
			"    self.mode.unwrap_or(Self::MODE_DEFAULT)\n"+
			"  }\n")
	require.Contains(t, content, "  pub const BLOB_DEFAULT: &'static [__prelude::u8] = b\"hi\";\n")
	require.Contains(t, content,
		"  pub fn blob(&self) -> &[__prelude::u8] {\n"+
			"    self.blob.as_ref().map_or(Self::BLOB_DEFAULT, __prelude::AsRef::as_ref)\n"+
			"  }\n")
}

func TestGeneratePackedRepeated(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"list.proto"}, map[string][]byte{
		"list.proto": []byte(`
syntax = "proto2";
message List {
  repeated int32 xs = 2 [packed = true];
}
`),
	})
	content := generatorContext.content("list.proto/protrust.rs")

	require.Contains(t, content, "  xs: __prelude::RepeatedField<__prelude::i32>,\n")
	// Packed arm first for a packed field.
	require.Contains(t, content,
		"        18 => field.add_entries_to::<_, __prelude::pr::Packed<__prelude::pr::Int32>>(Self::XS_NUMBER, &mut self.xs)?,\n"+
			"        16 => field.add_entries_to::<_, __prelude::pr::Int32>(Self::XS_NUMBER, &mut self.xs)?,\n")
	require.Contains(t, content,
		"    builder = builder.add_values::<_, __prelude::pr::Packed<__prelude::pr::Int32>>(Self::XS_NUMBER, &self.xs)?;\n")
	require.Contains(t, content,
		"    output.write_values::<_, __prelude::pr::Packed<__prelude::pr::Int32>>(Self::XS_NUMBER, &self.xs)?;\n")
	require.Contains(t, content,
		"    if !__prelude::p::is_initialized(&self.xs) {\n"+
			"      return false;\n"+
			"    }\n")
}

func TestGenerateUnpackedRepeated(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"list.proto"}, map[string][]byte{
		"list.proto": []byte(`
syntax = "proto2";
message List {
  repeated int32 ids = 4;
  repeated string tags = 5;
}
`),
	})
	content := generatorContext.content("list.proto/protrust.rs")

	// Unpacked arm first for an unpacked packable field.
	require.Contains(t, content,
		"        32 => field.add_entries_to::<_, __prelude::pr::Int32>(Self::IDS_NUMBER, &mut self.ids)?,\n"+
			"        34 => field.add_entries_to::<_, __prelude::pr::Packed<__prelude::pr::Int32>>(Self::IDS_NUMBER, &mut self.ids)?,\n")
	require.Contains(t, content,
		"    builder = builder.add_values::<_, __prelude::pr::Int32>(Self::IDS_NUMBER, &self.ids)?;\n")
	// Strings cannot be packed: exactly one arm.
	require.Contains(t, content,
		"        42 => field.add_entries_to::<_, __prelude::pr::String>(Self::TAGS_NUMBER, &mut self.tags)?,\n")
	require.NotContains(t, content, "Packed<__prelude::pr::String>")
}

func TestGenerateEnumWithAlias(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"e.proto"}, map[string][]byte{
		"e.proto": []byte(`
syntax = "proto3";
enum E {
  option allow_alias = true;
  A = 0;
  B = 1;
  AA = 1;
}
`),
	})
	content := generatorContext.content("e.proto/protrust.rs")

	require.Contains(t, content,
		"#[derive(Clone, Copy, PartialEq, Eq, Hash, PartialOrd, Ord)]\n"+
			"pub struct E(pub i32);\n")
	require.Contains(t, content,
		"impl E {\n"+
			"  pub const A: Self = Self(0);\n"+
			"  pub const B: Self = Self(1);\n"+
			"  pub const AA: Self = Self(1);\n"+
			"}\n")
	require.Contains(t, content,
		"impl __prelude::Default for E {\n"+
			"  fn default() -> Self {\n"+
			"    Self(0)\n"+
			"  }\n"+
			"}\n")
	require.Contains(t, content,
		"    #[allow(unreachable_patterns)]\n"+
			"    match *self {\n"+
			"      Self::A => f.write_str(\"A\"),\n"+
			"      Self::B => f.write_str(\"B\"),\n"+
			"      Self::AA => f.write_str(\"AA\"),\n"+
			"      Self(x) => x.fmt(f),\n"+
			"    }\n")
}

func TestGenerateNestedMessage(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"outer.proto"}, map[string][]byte{
		"outer.proto": []byte(`
syntax = "proto3";
message Outer {
  message Inner {
    int32 x = 1;
  }
  Inner i = 2;
}
`),
	})
	content := generatorContext.content("outer.proto/protrust.rs")

	require.Contains(t, content, "pub struct Outer {\n")
	require.Contains(t, content, "  i: __prelude::Option<__prelude::Box<__file::outer::Inner>>,\n")
	require.Contains(t, content,
		"        18 =>\n"+
			"          match &mut self.i {\n"+
			"            __prelude::Some(v) => field.merge_value::<__prelude::pr::Message<__file::outer::Inner>>(Self::I_NUMBER, v)?,\n"+
			"            opt @ __prelude::None => *opt = __prelude::Some(__prelude::Box::new(field.read_value::<__prelude::pr::Message<__file::outer::Inner>>(Self::I_NUMBER)?)),\n"+
			"          },\n")
	require.Contains(t, content,
		"  pub fn i_option(&self) -> __prelude::Option<&__file::outer::Inner> {\n"+
			"    self.i.as_deref()\n"+
			"  }\n")
	require.Contains(t, content,
		"  pub fn take_i(&mut self) -> __prelude::Option<__file::outer::Inner> {\n"+
			"    self.i.take().map(|v| *v)\n"+
			"  }\n")
	require.Contains(t, content,
		"pub mod outer {\n"+
			"  pub(self) use super::__file;\n"+
			"  pub(self) use ::protrust::gen_prelude as __prelude;\n")
	require.Contains(t, content, "  pub struct Inner {\n")
	require.Contains(t, content, "    x: __prelude::i32,\n")
}

func TestGenerateCrossFileReference(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"b.proto", "a.proto"}, map[string][]byte{
		"a.proto": []byte(`
syntax = "proto3";
import "b.proto";
message Holder {
  Widget w = 1;
}
`),
		"b.proto": []byte(`
syntax = "proto3";
message Widget {}
`),
	})

	require.Equal(
		t,
		[]string{"mod.rs", "b.proto/protrust.rs", "a.proto/protrust.rs"},
		generatorContext.names,
	)

	aContent := generatorContext.content("a.proto/protrust.rs")
	require.Contains(t, aContent, "  w: __prelude::Option<__prelude::Box<__file::__imports::b_proto::Widget>>,\n")

	modContent := generatorContext.content("mod.rs")
	require.Contains(t, modContent,
		"pub mod a_proto {\n"+
			"  pub(self) use super::globals as __globals;\n"+
			"  pub(self) use super::a_proto as __file;\n"+
			"  pub(self) mod __imports {\n"+
			"    pub(super) use super::super::b_proto;\n"+
			"  }\n")
	require.Contains(t, modContent, "pub mod b_proto {\n")
}

func TestGenerateMapField(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"dict.proto"}, map[string][]byte{
		"dict.proto": []byte(`
syntax = "proto3";
message Dict {
  map<string, int32> values = 3;
}
`),
	})
	content := generatorContext.content("dict.proto/protrust.rs")

	require.Contains(t, content, "  values: __prelude::MapField<__prelude::String, __prelude::i32>,\n")
	require.Contains(t, content,
		"        26 => field.add_entries_to::<_, (__prelude::pr::String, __prelude::pr::Int32)>(Self::VALUES_NUMBER, &mut self.values)?,\n")
	require.Contains(t, content,
		"    builder = builder.add_values::<_, (__prelude::pr::String, __prelude::pr::Int32)>(Self::VALUES_NUMBER, &self.values)?;\n")
	require.Contains(t, content,
		"    output.write_values::<_, (__prelude::pr::String, __prelude::pr::Int32)>(Self::VALUES_NUMBER, &self.values)?;\n")
}

func TestGenerateExtensionRanges(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"ext.proto"}, map[string][]byte{
		"ext.proto": []byte(`
syntax = "proto2";
message Extendable {
  optional int32 id = 1;
  extensions 100 to 200;
}
`),
	})
	content := generatorContext.content("ext.proto/protrust.rs")

	require.Contains(t, content,
		"  __extensions: __prelude::ExtensionSet<Self>,\n"+
			"  __unknown_fields: __prelude::UnknownFieldSet,\n")
	require.Contains(t, content,
		"        _ => \n"+
			"          field\n"+
			"            .check_and_try_add_field_to(&mut self.__extensions)?\n"+
			"            .or_try(&mut self.__unknown_fields)?\n"+
			"            .or_skip()?\n")
	require.Contains(t, content, "    builder = builder.add_fields(&self.__extensions)?;\n")
	require.Contains(t, content, "    output.write_fields(&self.__extensions)?;\n")
	require.Contains(t, content,
		"impl __prelude::ExtendableMessage for self::Extendable {\n"+
			"  fn extensions(&self) -> &__prelude::ExtensionSet<Self> {\n"+
			"    &self.__extensions\n"+
			"  }\n"+
			"  fn extensions_mut(&mut self) -> &mut __prelude::ExtensionSet<Self> {\n"+
			"    &mut self.__extensions\n"+
			"  }\n"+
			"}\n")
}

func TestGenerateKeywordEscaping(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "", []string{"style.proto"}, map[string][]byte{
		"style.proto": []byte(`
syntax = "proto3";
message Style {
  string type = 1;
}
`),
	})
	content := generatorContext.content("style.proto/protrust.rs")

	require.Contains(t, content, "  r#type: __prelude::String,\n")
	require.Contains(t, content,
		"        10 => field.merge_value::<__prelude::pr::String>(Self::TYPE_NUMBER, &mut self.r#type)?,\n")
	require.Contains(t, content, "  pub const TYPE_NUMBER: __prelude::FieldNumber = unsafe { __prelude::FieldNumber::new_unchecked(1) };\n")
	require.Contains(t, content,
		"  pub fn r#type(&self) -> &__prelude::String {\n"+
			"    &self.r#type\n"+
			"  }\n"+
			"  pub fn type_mut(&mut self) -> &mut __prelude::String {\n"+
			"    &mut self.r#type\n"+
			"  }\n")
}

func TestGenerateImportsOption(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "imports=timestamp,duration", []string{"empty.proto"}, map[string][]byte{
		"empty.proto": []byte(`syntax = "proto3";`),
	})
	modContent := generatorContext.content("mod.rs")

	require.Contains(t, modContent,
		"  #[path = \"timestamp.rs\"]\n"+
			"  mod timestamp;\n"+
			"\n"+
			"  pub use self::timestamp::*;\n")
	require.Contains(t, modContent,
		"  #[path = \"duration.rs\"]\n"+
			"  mod duration;\n"+
			"\n"+
			"  pub use self::duration::*;\n")
}

func TestGenerateFileExtensionOption(t *testing.T) {
	t.Parallel()

	generatorContext := generate(t, "file_extension=.gen.rs", []string{"empty.proto"}, map[string][]byte{
		"empty.proto": []byte(`syntax = "proto3";`),
	})

	require.Equal(t, []string{"mod.rs", "empty.proto/protrust.gen.rs"}, generatorContext.names)
	require.Contains(t, generatorContext.content("mod.rs"),
		"  #[path = \"protrust.gen.rs\"]\n"+
			"  mod protrust;\n")
}

func TestGenerateDeterminism(t *testing.T) {
	t.Parallel()

	paths := []string{"b.proto", "a.proto"}
	pathToData := map[string][]byte{
		"a.proto": []byte(`
syntax = "proto3";
import "b.proto";
message Holder {
  Widget w = 1;
  map<string, int64> index = 2;
  repeated fixed32 codes = 3;
}
`),
		"b.proto": []byte(`
syntax = "proto2";
message Widget {
  optional string name = 1 [default = "w"];
  extensions 10 to 20;
}
enum Kind {
  KIND_UNKNOWN = 0;
  KIND_OTHER = 1;
}
`),
	}

	first := generate(t, "imports=timestamp", paths, pathToData)
	second := generate(t, "imports=timestamp", paths, pathToData)

	require.Equal(t, first.names, second.names)
	for _, name := range first.names {
		require.Empty(t, cmp.Diff(first.content(name), second.content(name)), "file %s", name)
	}
}
