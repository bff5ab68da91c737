// Copyright 2022 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"path/filepath"
)

const crashDiagnosticsSubdir = "clang-crash-diagnostics"

// processCrashDiagnosticsFlag gives every invocation its own crash
// diagnostics sink. The directory is derived from the working directory
// so parallel builds never write into a shared path.
func processCrashDiagnosticsFlag(wEnv wrapperEnv, builder *commandBuilder) {
	crashDir := wEnv.CrashDiagnosticsDir
	if crashDir == "" {
		crashDir = filepath.Join(builder.env.getwd(), crashDiagnosticsSubdir)
	}
	builder.addPreUserArgs("-fcrash-diagnostics-dir=" + crashDir)
}
