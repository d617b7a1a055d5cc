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
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// Request wraps a CodeGeneratorRequest.
type Request struct {
	codeGeneratorRequest *pluginpb.CodeGeneratorRequest
}

// NewRequest returns a new Request for the CodeGeneratorRequest.
//
// The CodeGeneratorRequest will be validated as part of construction.
func NewRequest(codeGeneratorRequest *pluginpb.CodeGeneratorRequest) (*Request, error) {
	if err := validateCodeGeneratorRequest(codeGeneratorRequest); err != nil {
		return nil, err
	}
	return &Request{
		codeGeneratorRequest: codeGeneratorRequest,
	}, nil
}

// Parameter returns the value of the parameter field on the CodeGeneratorRequest.
func (r *Request) Parameter() string {
	return r.codeGeneratorRequest.GetParameter()
}

// FileDescriptorsToGenerate returns the FileDescriptors for the files
// specified by the file_to_generate field on the CodeGeneratorRequest, in
// request order.
//
// The caller can assume that all FileDescriptors have a valid path as the
// name field. Paths are considered valid if they are non-empty, relative, use
// '/' as the path separator, do not jump context, and have `.proto` as the
// file extension.
func (r *Request) FileDescriptorsToGenerate() ([]protoreflect.FileDescriptor, error) {
	files, err := r.AllFiles()
	if err != nil {
		return nil, err
	}
	fileDescriptors := make([]protoreflect.FileDescriptor, len(r.codeGeneratorRequest.GetFileToGenerate()))
	for i, fileToGenerate := range r.codeGeneratorRequest.GetFileToGenerate() {
		fileDescriptor, err := files.FindFileByPath(fileToGenerate)
		if err != nil {
			return nil, err
		}
		fileDescriptors[i] = fileDescriptor
	}
	return fileDescriptors, nil
}

// AllFiles returns a Files registry for all files in the CodeGeneratorRequest.
//
// This matches the proto_file field on the CodeGeneratorRequest.
func (r *Request) AllFiles() (*protoregistry.Files, error) {
	return protodesc.NewFiles(
		&descriptorpb.FileDescriptorSet{File: r.codeGeneratorRequest.GetProtoFile()},
	)
}

// CompilerVersion returns the specified compiler_version on the CodeGeneratorRequest.
//
// If the compiler_version field was not present, nil is returned.
//
// The caller can assume that the major, minor, and patch values are non-negative.
func (r *Request) CompilerVersion() *CompilerVersion {
	// Already validated via validateCompilerVersion, no need to validate here.
	if version := r.codeGeneratorRequest.GetCompilerVersion(); version != nil {
		return &CompilerVersion{
			Major:  int(version.GetMajor()),
			Minor:  int(version.GetMinor()),
			Patch:  int(version.GetPatch()),
			Suffix: version.GetSuffix(),
		}
	}
	return nil
}

// CodeGeneratorRequest returns the raw underlying CodeGeneratorRequest.
//
// The returned CodeGeneratorRequest is not a copy - do not modify it! If you
// would like to modify the CodeGeneratorRequest, use proto.Clone to create a
// copy.
func (r *Request) CodeGeneratorRequest() *pluginpb.CodeGeneratorRequest {
	return r.codeGeneratorRequest
}
