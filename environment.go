// Copyright 2022 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// wrapperEnv is the whitelisted subset of the environment the wrapper
// reads. It is parsed once from the invocation's environment snapshot;
// every other variable is passed through to subprocesses untouched.
type wrapperEnv struct {
	// Enables the clang-tidy side-channel when non-empty.
	WithTidy string `env:"WITH_TIDY"`
	// Path of the acceleration relay. The compile step is routed
	// through it when the path exists.
	GomaccPath string `env:"GOMACC_PATH"`
	// Overrides the per-invocation crash diagnostics directory.
	CrashDiagnosticsDir string `env:"CLANG_CRASH_DIAGNOSTICS_DIR"`
}

func parseWrapperEnv(env env) (wrapperEnv, error) {
	snapshot := map[string]string{}
	for _, entry := range env.environ() {
		if pos := strings.IndexByte(entry, '='); pos >= 0 {
			snapshot[entry[:pos]] = entry[pos+1:]
		}
	}
	var wEnv wrapperEnv
	if err := envparse.ParseWithOptions(&wEnv, envparse.Options{Environment: snapshot}); err != nil {
		return wrapperEnv{}, wrapErrorwithSourceLocf(err, "failed to parse wrapper environment")
	}
	return wEnv, nil
}
