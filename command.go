// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"os/exec"
	"path/filepath"
)

type command struct {
	Path       string   `yaml:"path"`
	Args       []string `yaml:"args"`
	EnvUpdates []string `yaml:"env_updates,omitempty"`
}

// commandResult is the captured outcome of one executed step. The
// golden fixtures use the same shape to describe expected steps and the
// stdio/exit code to inject for them.
type commandResult struct {
	Cmd      *command `yaml:"cmd"`
	Stdout   string   `yaml:"stdout,omitempty"`
	Stderr   string   `yaml:"stderr,omitempty"`
	ExitCode int      `yaml:"exitcode,omitempty"`
}

func newProcessCommand() *command {
	return &command{
		Path: os.Args[0],
		Args: os.Args[1:],
	}
}

func newExecCmd(env env, cmd *command) *exec.Cmd {
	execCmd := exec.Command(cmd.Path, cmd.Args...)
	execCmd.Env = append(env.environ(), cmd.EnvUpdates...)
	execCmd.Dir = env.getwd()
	return execCmd
}

func getAbsCmdPath(env env, cmd *command) string {
	path := cmd.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(env.getwd(), path)
	}
	return path
}

// commandBuilder accumulates the argument vector for the compile step.
// Injected flags are tagged as not-from-user so they always stay in
// front of the caller's original arguments.
type commandBuilder struct {
	path   string
	target builderTarget
	args   []builderArg
	env    env
	cfg    *config
}

type builderArg struct {
	value    string
	fromUser bool
}

type builderTarget struct {
	// Empty for the host toolchain.
	triple   string
	arch     string
	vendor   string
	sys      string
	abi      string
	compiler string
}

func newCommandBuilder(env env, cfg *config, target builderTarget, cmd *command) *commandBuilder {
	return &commandBuilder{
		path:   cmd.Path,
		args:   createBuilderArgs( /*fromUser=*/ true, cmd.Args),
		env:    env,
		cfg:    cfg,
		target: target,
	}
}

func createBuilderArgs(fromUser bool, args []string) []builderArg {
	builderArgs := make([]builderArg, len(args))
	for i, arg := range args {
		builderArgs[i] = builderArg{value: arg, fromUser: fromUser}
	}
	return builderArgs
}

// wrapPath turns the current executable into the first argument and
// replaces it with the given path. Used to route the compile through
// the acceleration relay.
func (builder *commandBuilder) wrapPath(path string) {
	builder.args = append([]builderArg{{value: builder.path, fromUser: false}}, builder.args...)
	builder.path = path
}

func (builder *commandBuilder) addPreUserArgs(args ...string) {
	index := 0
	for _, arg := range builder.args {
		if arg.fromUser {
			break
		}
		index++
	}
	builder.args = append(builder.args[:index], append(createBuilderArgs( /*fromUser=*/ false, args), builder.args[index:]...)...)
}

// Allows to map and filter arguments. Filters when the callback returns an empty string.
func (builder *commandBuilder) transformArgs(transform func(arg builderArg) string) {
	// See https://github.com/golang/go/wiki/SliceTricks
	newArgs := builder.args[:0]
	for _, arg := range builder.args {
		newArg := transform(arg)
		if newArg != "" {
			newArgs = append(newArgs, builderArg{
				value:    newArg,
				fromUser: arg.fromUser,
			})
		}
	}
	builder.args = newArgs
}

func (builder *commandBuilder) build() *command {
	cmdArgs := make([]string, len(builder.args))
	for i, builderArg := range builder.args {
		cmdArgs[i] = builderArg.value
	}
	return &command{
		Path: builder.path,
		Args: cmdArgs,
	}
}
