// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
)

func callCompiler(env env, inputCmd *command) int {
	exitCode, err := callCompilerInternal(env, inputCmd)
	if err != nil {
		printCompilerError(env.stderr(), err)
		exitCode = configErrorExitCode
	}
	return exitCode
}

func callCompilerInternal(env env, inputCmd *command) (exitCode int, err error) {
	if err := checkUnsupportedFlags(inputCmd); err != nil {
		return 0, err
	}
	cfg, target, err := selectConfig(inputCmd.Path)
	if err != nil {
		return 0, err
	}
	wEnv, err := parseWrapperEnv(env)
	if err != nil {
		return 0, err
	}
	builder := newCommandBuilder(env, cfg, target, inputCmd)
	processPrintConfigFlag(builder)
	processPrintCmdlineFlag(builder)
	cSrcFile, useTidy := processClangTidyFlags(wEnv, builder)
	calcCompilerCommand(wEnv, builder)
	// The analysis side-channel always invokes the real compiler
	// directly, so keep its command before any relay routing.
	realCmd := builder.build()
	processGomaccFlag(wEnv, builder)
	compileCmd := builder.build()
	// processPrintCmdlineFlag may have decorated the env.
	env = builder.env

	analysisStderr := ""
	analysisFailed := false
	if useTidy {
		analysisStderr, analysisFailed, err = runClangTidy(env, cfg, realCmd, cSrcFile)
		if err != nil {
			return 0, err
		}
	}

	if analysisFailed {
		// The analysis verdict is advisory. Its output is only
		// surfaced when the compiler itself succeeds; a failing
		// compile is forwarded verbatim.
		exitCode, err := runAndForward(env, compileCmd)
		if err != nil {
			return 0, err
		}
		if exitCode == 0 {
			io.WriteString(env.stderr(), analysisStderr)
			io.WriteString(env.stderr(), clangTidyFailedMarker)
		}
		return exitCode, nil
	}

	// Fast path: nothing left to merge, so the wrapper can become the
	// compiler. This makes it indistinguishable from calling the real
	// compiler directly.
	execErr := env.exec(compileCmd)
	// Note: exec only returns when the env intercepts it (tests,
	// golden fixtures) or when spawning failed.
	if exitCode, ok := getExitCode(execErr); ok {
		return exitCode, nil
	}
	return 0, wrapSubprocessErrorWithSourceLoc(compileCmd, execErr)
}

// calcCompilerCommand applies the argument rewrite. The phase order is
// fixed and mode independent:
//  1. identity / hermetic build flags
//  2. sysroot and target flags (hardened mode only)
//  3. per-invocation crash diagnostics directory
//  4. hardening and warning-suppression table, in declared order
//  5. the caller's arguments, unchanged and last
func calcCompilerCommand(wEnv wrapperEnv, builder *commandBuilder) {
	builder.addPreUserArgs(builder.cfg.identityFlags...)
	processSysrootFlag(builder)
	processCrashDiagnosticsFlag(wEnv, builder)
	builder.addPreUserArgs(builder.cfg.hardeningFlags...)
	builder.path = realCompilerPath(builder.cfg, builder.target, builder.path)
}

func runAndForward(env env, cmd *command) (exitCode int, err error) {
	runErr := env.run(cmd, env.stdin(), env.stdout(), env.stderr())
	if exitCode, ok := getExitCode(runErr); ok {
		return exitCode, nil
	}
	return 0, wrapSubprocessErrorWithSourceLoc(cmd, runErr)
}

func runAndCapture(env env, cmd *command) (result *commandResult, err error) {
	stdoutBuffer := &bytes.Buffer{}
	stderrBuffer := &bytes.Buffer{}
	runErr := env.run(cmd, env.stdin(), stdoutBuffer, stderrBuffer)
	exitCode, ok := getExitCode(runErr)
	if !ok {
		return nil, wrapSubprocessErrorWithSourceLoc(cmd, runErr)
	}
	return &commandResult{
		Cmd:      cmd,
		Stdout:   stdoutBuffer.String(),
		Stderr:   stderrBuffer.String(),
		ExitCode: exitCode,
	}, nil
}

func processPrintConfigFlag(builder *commandBuilder) {
	printConfig := false
	builder.transformArgs(func(arg builderArg) string {
		if arg.value == "-print-config" {
			printConfig = true
			return ""
		}
		return arg.value
	})
	if printConfig {
		fmt.Fprintf(builder.env.stderr(), "wrapper config: %#v\n", *builder.cfg)
	}
}

func printCompilerError(writer io.Writer, compilerErr error) {
	if _, ok := compilerErr.(userError); ok {
		fmt.Fprintf(writer, "%s\n", compilerErr)
	} else {
		fmt.Fprintf(writer,
			"Internal error. Please report to chromeos-toolchain@google.com.\n%s\n",
			compilerErr)
	}
}
