// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"errors"
	"testing"
)

func TestNewErrorwithSourceLocfMessage(t *testing.T) {
	err := newErrorwithSourceLocf("a%sc", "b")
	if err.Error() != "errors_test.go:13: abc" {
		t.Errorf("Error message incorrect. Got: %s", err.Error())
	}
}

func TestWrapErrorwithSourceLocfMessage(t *testing.T) {
	cause := errors.New("someCause")
	err := wrapErrorwithSourceLocf(cause, "a%sc", "b")
	if err.Error() != "errors_test.go:21: abc: someCause" {
		t.Errorf("Error message incorrect. Got: %s", err.Error())
	}
}

func TestNewUserErrorf(t *testing.T) {
	err := newUserErrorf("a%sc", "b")
	if err.Error() != "abc" {
		t.Errorf("Error message incorrect. Got: %s", err.Error())
	}
}

func TestGetExitCodeFromRealProcess(t *testing.T) {
	exitCode, ok := getExitCode(newExitCodeError(2))
	if !ok {
		t.Fatal("expected an exit code")
	}
	if exitCode != 2 {
		t.Errorf("exit code incorrect. Got: %d", exitCode)
	}
}

func TestGetExitCodeForNilError(t *testing.T) {
	exitCode, ok := getExitCode(nil)
	if !ok || exitCode != 0 {
		t.Errorf("expected exit code 0. Got: %d, %t", exitCode, ok)
	}
}

func TestGetExitCodeRejectsOtherErrors(t *testing.T) {
	if _, ok := getExitCode(errors.New("someerror")); ok {
		t.Error("expected no exit code for a plain error")
	}
}
