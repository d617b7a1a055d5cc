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

// primaryImportName is the module each generated file is bound to inside its
// per-file module.
const primaryImportName = "protrust"

// modGen drives the full response: it writes the top-level mod.rs index and,
// for each input file, opens the file's own output stream and runs the file
// generator against it. Both streams for a file are complete before the next
// file is processed.
type modGen struct {
	opts *Options
}

func newModGen(opts *Options) *modGen {
	return &modGen{opts: opts}
}

func (g *modGen) generate(files []protoreflect.FileDescriptor, context GeneratorContext) error {
	modStream, err := context.Open("mod.rs")
	if err != nil {
		return err
	}
	modPrinter := newPrinter(modStream)

	modPrinter.PrintRaw("// DO NOT EDIT! This file was generated by protoc-gen-rust as part of the protrust library\n\n")

	newGlobalsGen(g.opts).generate(files, modPrinter)

	for _, file := range files {
		g.generateFileMod(file, modPrinter)
		if err := modPrinter.Err(); err != nil {
			return err
		}

		fileStream, err := context.Open(outputFilePath(file, primaryImportName, g.opts))
		if err != nil {
			return err
		}
		filePrinter := newPrinter(fileStream)
		newFileGen(file, g.opts).generate(filePrinter)
		if err := filePrinter.Err(); err != nil {
			return err
		}
	}

	return modPrinter.Err()
}

// generateFileMod contributes one file's module block to the index: the
// __globals and __file aliases, the __imports module listing the file's
// dependencies, and the re-exports of the generated source and of every
// option-provided import.
func (g *modGen) generateFileMod(file protoreflect.FileDescriptor, p *printer) {
	fileMod := fileModName(file)
	p.Print(map[string]string{
		"file_dir": fileDirPath(file),
		"file_mod": fileMod,
	}, "#[path = \"$file_dir$\"]\n"+
		"pub mod $file_mod$ {\n")
	p.Indent()
	p.Print(map[string]string{
		"file_mod": fileMod,
	}, "pub(self) use super::globals as __globals;\n"+
		// alias the module itself so generated code can name any file-level
		// item through __file at every nesting depth
		"pub(self) use super::$file_mod$ as __file;\n")

	p.PrintRaw("pub(self) mod __imports {\n")
	p.Indent()

	imports := file.Imports()
	for i := 0; i < imports.Len(); i++ {
		p.Print(map[string]string{
			"import": fileModName(imports.Get(i).FileDescriptor),
		}, "pub(super) use super::super::$import$;\n")
	}

	p.Outdent()
	p.PrintRaw("}\n\n")

	p.Print(map[string]string{
		"ext": g.opts.FileExtension,
	}, "#[path = \"protrust$ext$\"]\n"+
		"mod protrust;\n"+
		"\n"+
		"pub use self::protrust::*;\n"+
		"\n")

	for _, imp := range g.opts.Imports {
		p.Print(map[string]string{
			"import": imp,
			"ext":    g.opts.FileExtension,
		}, "\n"+
			"#[path = \"$import$$ext$\"]\n"+
			"mod $import$;\n"+
			"\n"+
			"pub use self::$import$::*;\n")
	}

	p.Outdent()
	p.PrintRaw("}\n")
}
