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

// MainOption is an option for Main.
//
// Note that MainOptions are also RunOptions, so all MainOptions can also be
// passed to Run.
type MainOption interface {
	RunOption
}

// RunOption is an option for Main or Run.
type RunOption interface {
	applyRunOption(runOptions *runOptions)
}

// WithVersion returns a new MainOption that will result in the given version
// string being printed to stdout if the plugin is given the --version flag.
//
// The default is no version flag support.
func WithVersion(version string) MainOption {
	return &versionOption{version: version}
}

// WithWarningHandler returns a new MainOption that says to handle warnings
// with the given function.
//
// The default is to write warnings to stderr.
//
// Implementers of warningHandlerFunc can assume that errors passed will be
// non-nil and have non-empty values for err.Error().
func WithWarningHandler(warningHandlerFunc func(error)) MainOption {
	return &warningHandlerOption{warningHandlerFunc: warningHandlerFunc}
}

/// *** PRIVATE ***

type runOptions struct {
	version            string
	warningHandlerFunc func(error)
}

func newRunOptions() *runOptions {
	return &runOptions{}
}

type versionOption struct {
	version string
}

func (v *versionOption) applyRunOption(runOptions *runOptions) {
	runOptions.version = v.version
}

type warningHandlerOption struct {
	warningHandlerFunc func(error)
}

func (w *warningHandlerOption) applyRunOption(runOptions *runOptions) {
	runOptions.warningHandlerFunc = w.warningHandlerFunc
}
