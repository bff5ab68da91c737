// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// The compiler wrapper is installed under the name of the real compiler
// driver and rewrites every invocation according to the active build
// configuration before forwarding it.
//
// The mode (host vs. hardened sysroot) is selected from the name the
// wrapper was invoked as. For names that don't carry a target triple,
// the mode can be baked in via a linker variable:
// - main.ConfigName: Name of the configuration to use.
//   See config.go for the supported values.
//
// E.g. go build -ldflags '-X main.ConfigName=cros.hardened' builds a
// binary that is hardwired to the hardened configuration.
package main

import (
	"log"
	"os"
)

func main() {
	env, err := newProcessEnv()
	if err != nil {
		log.Fatal(err)
	}
	// Note: callCompiler will exec the compile step on the fast path.
	// This os.Exit is only reached when the wrapper had to intercept
	// the compiler's output or failed before running it.
	os.Exit(callCompiler(env, newProcessCommand()))
}
