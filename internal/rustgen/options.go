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
	"fmt"
	"strings"
)

// Options is the generator configuration parsed from the plugin parameter
// string.
type Options struct {
	// FileExtension is the suffix of generated file names.
	FileExtension string
	// Imports are additional sibling modules re-exported from every per-file
	// module.
	Imports []string
}

// parseOptions parses a comma-separated list of key=value pairs.
//
// Recognized keys are file_extension and imports (itself a comma-separated
// list). An unrecognized key aborts generation.
func parseOptions(parameter string) (*Options, error) {
	options := &Options{
		FileExtension: ".rs",
	}
	if parameter == "" {
		return options, nil
	}
	inImports := false
	for _, pair := range strings.Split(parameter, ",") {
		key, value, hasValue := strings.Cut(pair, "=")
		if !hasValue && inImports {
			// The imports value is itself comma-separated, so bare segments
			// after imports= continue the list.
			options.Imports = append(options.Imports, key)
			continue
		}
		inImports = false
		switch key {
		case "file_extension":
			options.FileExtension = value
		case "imports":
			options.Imports = append(options.Imports, value)
			inImports = true
		default:
			return nil, fmt.Errorf("Unknown generator option: %s", key)
		}
	}
	return options, nil
}
