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

// fileGen emits the generated source for one input .proto file: a preamble
// binding the enclosing per-file module and the runtime prelude, then every
// top-level message, enum, and extension in descriptor order.
type fileGen struct {
	file protoreflect.FileDescriptor
	opts *Options
}

func newFileGen(file protoreflect.FileDescriptor, opts *Options) *fileGen {
	return &fileGen{file: file, opts: opts}
}

func (g *fileGen) generate(p *printer) {
	p.PrintRaw(
		"pub(self) use super::__file;\n" +
			"pub(self) use ::protrust::gen_prelude as __prelude;\n" +
			"\n")

	messages := g.file.Messages()
	for i := 0; i < messages.Len(); i++ {
		newMessageGen(messages.Get(i), g.opts).generate(p)
	}
	enums := g.file.Enums()
	for i := 0; i < enums.Len(); i++ {
		newEnumGen(enums.Get(i), g.opts).generate(p)
	}
	extensions := g.file.Extensions()
	for i := 0; i < extensions.Len(); i++ {
		newFieldGen(extensions.Get(i), g.opts).generateExtension(p)
	}
}
