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
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// reservedWords is the set of Rust keywords, including reserved-for-future-use
// and edition keywords. A generated identifier equal to one of these must be
// emitted as a raw identifier.
var reservedWords = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "else": {},
	"enum": {}, "false": {}, "fn": {}, "for": {}, "if": {}, "impl": {},
	"in": {}, "let": {}, "loop": {}, "match": {}, "mod": {}, "move": {},
	"mut": {}, "pub": {}, "ref": {}, "return": {}, "static": {},
	"struct": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {},
	"use": {}, "where": {}, "while": {}, "dyn": {}, "abstract": {},
	"become": {}, "box": {}, "do": {}, "final": {}, "macro": {},
	"override": {}, "priv": {}, "typeof": {}, "unsized": {}, "virtual": {},
	"yield": {}, "async": {}, "await": {}, "try": {},
}

// escape prefixes s with the raw-identifier marker if it is a Rust keyword.
func escape(s string) string {
	if _, ok := reservedWords[s]; ok {
		return "r#" + s
	}
	return s
}

func messageName(message protoreflect.MessageDescriptor) string {
	return escape(string(message.Name()))
}

// messageModName lowercases the message's simple name, inserting an underscore
// before each uppercase letter that follows a lowercase one.
func messageModName(message protoreflect.MessageDescriptor) string {
	input := string(message.Name())
	var b strings.Builder
	lastLower := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if 'A' <= c && c <= 'Z' {
			if lastLower {
				b.WriteByte('_')
			}
			b.WriteByte(c + ('a' - 'A'))
			lastLower = false
		} else {
			b.WriteByte(c)
			lastLower = 'a' <= c && c <= 'z'
		}
	}
	return b.String()
}

func enumName(enum protoreflect.EnumDescriptor) string {
	return escape(string(enum.Name()))
}

func enumValueName(value protoreflect.EnumValueDescriptor) string {
	return escape(string(value.Name())) // we can strip prefixes later
}

func fieldName(field protoreflect.FieldDescriptor) string {
	return escape(string(field.Name()))
}

// fieldNumberName uppercases the field name character-wise; the proto name is
// assumed to already be snake-ish.
func fieldNumberName(field protoreflect.FieldDescriptor) string {
	return strings.ToUpper(string(field.Name())) + "_NUMBER"
}

func fieldDefaultName(field protoreflect.FieldDescriptor) string {
	return strings.ToUpper(string(field.Name())) + "_DEFAULT"
}

// fileModName maps every character of the file path that is not an ASCII
// letter to an underscore.
func fileModName(file protoreflect.FileDescriptor) string {
	input := file.Path()
	var b strings.Builder
	for i := 0; i < len(input); i++ {
		c := input[i]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// fileDirPath is the directory the file's generated sources live under.
func fileDirPath(file protoreflect.FileDescriptor) string {
	return file.Path()
}

func outputFilePath(file protoreflect.FileDescriptor, importName string, opts *Options) string {
	return fileDirPath(file) + "/" + importName + opts.FileExtension
}
