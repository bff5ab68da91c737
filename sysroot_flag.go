// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"strings"
)

// processSysrootFlag injects the sysroot, target and cross binary
// prefix for hardened builds. A --sysroot given by the caller wins over
// the bundled one.
func processSysrootFlag(builder *commandBuilder) {
	if builder.target.triple == "" {
		return
	}
	fromUser := false
	for _, arg := range builder.args {
		if arg.fromUser && strings.HasPrefix(arg.value, "--sysroot=") {
			fromUser = true
			break
		}
	}
	args := []string{}
	if !fromUser {
		args = append(args, "--sysroot="+sysrootPath(builder.cfg, builder.target))
	}
	args = append(args,
		"-target", builder.target.triple,
		"--prefix="+crossBinaryPrefix(builder.cfg, builder.target))
	builder.addPreUserArgs(args...)
}
