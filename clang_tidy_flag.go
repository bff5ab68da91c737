// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"
)

// Trailing marker identifying an analysis failure on the wrapper's
// stderr, distinct from a compile failure.
const clangTidyFailedMarker = "clang-tidy failed"

// processClangTidyFlags decides whether the clang-tidy side-channel
// runs for this invocation and picks the source file to analyze.
func processClangTidyFlags(wEnv wrapperEnv, builder *commandBuilder) (cSrcFile string, useClangTidy bool) {
	if wEnv.WithTidy == "" {
		return "", false
	}
	srcFileSuffixes := []string{
		".c",
		".cc",
		".cpp",
		".C",
		".cxx",
		".c++",
	}
	cSrcFile = ""
	lastArg := ""
	for _, arg := range builder.args {
		if hasAtLeastOneSuffix(arg.value, srcFileSuffixes) && lastArg != "-o" {
			cSrcFile = arg.value
		}
		lastArg = arg.value
	}
	useClangTidy = cSrcFile != ""
	return cSrcFile, useClangTidy
}

// runClangTidy runs the analysis side-channel: first a probe asking the
// real compiler for its resource directory, then clang-tidy itself with
// the full compile argument vector. Both steps are advisory: their
// failure is reported via the returned stderr text, never as an error,
// and never stops the compile.
func runClangTidy(env env, cfg *config, realCmd *command, cSrcFile string) (failureStderr string, failed bool, err error) {
	probeCmd := &command{
		Path: realCmd.Path,
		Args: []string{"--print-resource-dir"},
	}
	probeResult, err := runAndCapture(env, probeCmd)
	if err != nil {
		return "", false, err
	}
	if probeResult.ExitCode != 0 {
		// Don't run clang-tidy with an empty resource dir; escalate
		// the probe failure as the analysis failure instead.
		return probeResult.Stderr, true, nil
	}
	resourceDir := strings.TrimSpace(probeResult.Stdout)

	clangTidyPath := filepath.Join(filepath.Dir(realCmd.Path), "clang-tidy")
	clangTidyCmd := &command{
		Path: clangTidyPath,
		Args: append([]string{
			"-checks=" + strings.Join(cfg.tidyChecks, ","),
			cSrcFile,
			"--",
			"-resource-dir=" + resourceDir,
		}, realCmd.Args...),
	}
	tidyResult, err := runAndCapture(env, clangTidyCmd)
	if err != nil {
		return "", false, err
	}
	if tidyResult.ExitCode != 0 {
		return tidyResult.Stderr, true, nil
	}
	return "", false, nil
}

func hasAtLeastOneSuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
