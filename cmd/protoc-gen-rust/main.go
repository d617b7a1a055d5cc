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

// Package main implements protoc-gen-rust, the protoc plugin that generates
// Rust code backed by the protrust runtime library.
//
// Invoke it through protoc:
//
//	protoc --rust_out=imports=timestamp:src/gen foo.proto
//
// Recognized parameters are file_extension=<suffix> and
// imports=<name1>,<name2>,... (additional sibling modules re-exported from
// every per-file module).
package main

import (
	"github.com/protrust/protrustc"
	"github.com/protrust/protrustc/internal/rustgen"
)

const version = "0.1.0"

func main() {
	protrustc.Main(rustgen.New(), protrustc.WithVersion(version))
}
