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

package protrustc

import (
	"bytes"
	"io"
)

// generatorContext implements rustgen.GeneratorContext over in-memory
// buffers. The index stream and the per-file streams are written
// interleaved, so every opened file keeps its buffer until generation
// finishes; flushTo then adds the files to the response in open order.
type generatorContext struct {
	files []*generatorContextFile
}

type generatorContextFile struct {
	name   string
	buffer bytes.Buffer
}

func newGeneratorContext() *generatorContext {
	return &generatorContext{}
}

func (g *generatorContext) Open(path string) (io.Writer, error) {
	file := &generatorContextFile{name: path}
	g.files = append(g.files, file)
	return &file.buffer, nil
}

func (g *generatorContext) flushTo(responseWriter *ResponseWriter) {
	for _, file := range g.files {
		responseWriter.AddFile(file.name, file.buffer.String())
	}
}
