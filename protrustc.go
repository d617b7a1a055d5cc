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

// Package protrustc implements the protoc-gen-rust plugin: it frames the
// protoc plugin protocol around the Rust code generator in internal/rustgen.
package protrustc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protrust/protrustc/internal/rustgen"
)

var interruptSignals = append([]os.Signal{os.Interrupt}, extraInterruptSignals...)

// Main simplifies the authoring of main functions to invoke Run.
//
// Main will handle interrupt signals, and exit with a non-zero exit code if
// Run returns an error.
//
//	func main() {
//	  protrustc.Main(rustgen.New())
//	}
func Main(generator *rustgen.Generator, options ...MainOption) {
	ctx, cancel := withCancelInterruptSignal(context.Background())
	defer cancel()
	runOptions := make([]RunOption, len(options))
	for i, option := range options {
		runOptions[i] = option
	}
	if err := Run(
		ctx,
		Env{
			Args:    os.Args[1:],
			Environ: os.Environ(),
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		},
		generator,
		runOptions...,
	); err != nil {
		if errString := err.Error(); errString != "" {
			_, _ = fmt.Fprintln(os.Stderr, errString)
		}
		cancel()
		os.Exit(1)
	}
}

// Run runs the plugin for the given stdio.
//
// This is the function that Main calls. However, Run gives you control over
// stdio and the environment, which makes it useful when writing plugin tests.
//
// Errors from the generator that stem from the request content are reported
// in-band on the CodeGeneratorResponse and result in a nil return; protoc
// prints them and fails the invocation itself. A non-nil return means the
// plugin could not complete the protocol at all.
func Run(ctx context.Context, env Env, generator *rustgen.Generator, options ...RunOption) error {
	runOptions := newRunOptions()
	for _, option := range options {
		option.applyRunOption(runOptions)
	}
	return run(ctx, env, generator, runOptions)
}

/// *** PRIVATE ***

func run(
	_ context.Context,
	env Env,
	generator *rustgen.Generator,
	runOptions *runOptions,
) error {
	switch len(env.Args) {
	case 0:
	case 1:
		if runOptions.version != "" && env.Args[0] == "--version" {
			_, err := fmt.Fprintln(env.Stdout, runOptions.version)
			return err
		}
		return newUnknownArgumentsError(env.Args)
	default:
		return newUnknownArgumentsError(env.Args)
	}

	warningHandlerFunc := runOptions.warningHandlerFunc
	if warningHandlerFunc == nil {
		warningHandlerFunc = func(err error) { _, _ = fmt.Fprintln(env.Stderr, err.Error()) }
	}

	input, err := io.ReadAll(env.Stdin)
	if err != nil {
		return err
	}
	codeGeneratorRequest := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, codeGeneratorRequest); err != nil {
		return err
	}
	request, err := NewRequest(codeGeneratorRequest)
	if err != nil {
		return err
	}
	responseWriter := newResponseWriter(warningHandlerFunc)
	responseWriter.SetFeatureProto3Optional()

	fileDescriptors, err := request.FileDescriptorsToGenerate()
	if err != nil {
		return err
	}
	generatorContext := newGeneratorContext()
	if err := generator.GenerateAll(fileDescriptors, request.Parameter(), generatorContext); err != nil {
		// In-band: the request was well-formed but its content could not be
		// generated for (for example an unknown parameter key).
		responseWriter.SetError(err.Error())
	} else {
		generatorContext.flushTo(responseWriter)
	}

	codeGeneratorResponse, err := responseWriter.toCodeGeneratorResponse()
	if err != nil {
		return err
	}
	data, err := proto.Marshal(codeGeneratorResponse)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

// withCancelInterruptSignal returns a context that is cancelled if interrupt signals are sent.
func withCancelInterruptSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	interruptSignalC, closer := newInterruptSignalChannel()
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		<-interruptSignalC
		closer()
		cancel()
	}()
	return ctx, cancel
}

// newInterruptSignalChannel returns a new channel for interrupt signals.
//
// Call the returned function to cancel sending to this channel.
func newInterruptSignalChannel() (<-chan os.Signal, func()) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, interruptSignals...)
	return signalC, func() {
		signal.Stop(signalC)
		close(signalC)
	}
}
