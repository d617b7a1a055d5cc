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

// globalsGen will emit the shared reflection state for a generation run: the
// descriptor pool and extension registry the per-file modules re-export as
// __globals.
type globalsGen struct {
	opts *Options
}

func newGlobalsGen(opts *Options) *globalsGen {
	return &globalsGen{opts: opts}
}

func (g *globalsGen) generate(files []protoreflect.FileDescriptor, p *printer) {
	// TODO: emit the pool and registry once the runtime grows reflection
	// facilities; until then the globals module is empty.
}
