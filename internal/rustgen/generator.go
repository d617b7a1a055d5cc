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

// Package rustgen lowers protobuf descriptors into Rust source backed by the
// protrust runtime library.
package rustgen

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// GeneratorContext receives the generated output. Each call to Open adds one
// file to the plugin response. Every returned sink stays writable until
// GenerateAll returns: the mod.rs sink is written to after the per-file sinks
// are opened.
type GeneratorContext interface {
	Open(path string) (io.Writer, error)
}

// Generator translates a set of file descriptors into generated Rust source.
//
// The zero value is ready to use. Generators are stateless; all configuration
// arrives through the plugin parameter string.
type Generator struct{}

// New returns a new Generator.
func New() *Generator {
	return &Generator{}
}

// Generate is not implemented: generated modules cross-reference types from
// every file in the request, so generation is batch-only.
func (g *Generator) Generate(file protoreflect.FileDescriptor, parameter string, context GeneratorContext) error {
	return errors.New("unimplemented; use GenerateAll")
}

// GenerateAll generates the mod.rs index and one source file per input file,
// in request order.
//
// A panic inside the engine (such as "unknown field type") is returned as an
// error rather than propagated to the caller.
func (g *Generator) GenerateAll(files []protoreflect.FileDescriptor, parameter string, context GeneratorContext) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%v", r)
		}
	}()
	options, err := parseOptions(parameter)
	if err != nil {
		return err
	}
	return newModGen(options).generate(files, context)
}
