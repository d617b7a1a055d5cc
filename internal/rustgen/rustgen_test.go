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
	"bytes"
	"context"
	"io"
	"io/fs"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// compileFiles compiles the given .proto sources in-memory and returns the
// file descriptors for paths, in path order.
func compileFiles(t *testing.T, paths []string, pathToData map[string][]byte) []protoreflect.FileDescriptor {
	t.Helper()

	compiler := protocompile.Compiler{
		Resolver: &protocompile.SourceResolver{
			Accessor: func(path string) (io.ReadCloser, error) {
				data, ok := pathToData[path]
				if !ok {
					return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
				}
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		},
	}
	files, err := compiler.Compile(context.Background(), paths...)
	require.NoError(t, err)
	fileDescriptors := make([]protoreflect.FileDescriptor, len(files))
	for i, file := range files {
		fileDescriptors[i] = file
	}
	return fileDescriptors
}

// memoryContext collects opened streams in memory, in open order.
type memoryContext struct {
	names   []string
	buffers map[string]*bytes.Buffer
}

func newMemoryContext() *memoryContext {
	return &memoryContext{buffers: make(map[string]*bytes.Buffer)}
}

func (c *memoryContext) Open(path string) (io.Writer, error) {
	buffer := bytes.NewBuffer(nil)
	c.names = append(c.names, path)
	c.buffers[path] = buffer
	return buffer, nil
}

func (c *memoryContext) content(path string) string {
	buffer, ok := c.buffers[path]
	if !ok {
		return ""
	}
	return buffer.String()
}

// generate compiles the sources, runs GenerateAll over the descriptors for
// paths with the given parameter, and returns the populated context.
func generate(t *testing.T, parameter string, paths []string, pathToData map[string][]byte) *memoryContext {
	t.Helper()

	fileDescriptors := compileFiles(t, paths, pathToData)
	generatorContext := newMemoryContext()
	require.NoError(t, New().GenerateAll(fileDescriptors, parameter, generatorContext))
	return generatorContext
}
