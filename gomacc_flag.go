// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
)

// processGomaccFlag routes the compile step through the acceleration
// relay when one is configured. The relay is a transparent prefix: the
// real compiler path becomes the first argument and the argument vector
// stays untouched.
func processGomaccFlag(wEnv wrapperEnv, builder *commandBuilder) (gomaUsed bool) {
	if gomaPath := wEnv.GomaccPath; gomaPath != "" {
		if _, err := os.Lstat(gomaPath); err == nil {
			builder.wrapPath(gomaPath)
			return true
		}
	}
	return false
}
