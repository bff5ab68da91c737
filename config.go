// Copyright 2019 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	_ "embed"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type config struct {
	// Name of the configuration, one of "cros.host" / "cros.hardened".
	name string
	// Flags that identify the wrapper and keep builds hermetic.
	// Injected first, for every mode.
	identityFlags []string
	// Hardening and warning-suppression flags, injected verbatim in
	// table order. This set changes across toolchain upgrades.
	hardeningFlags []string
	// clang-tidy checks expression for the analysis side-channel.
	tidyChecks []string
	// Install root of the cross toolchain. Only used in hardened mode.
	crosRoot string
}

// ConfigName can be set via a linker flag to hardwire the mode for
// wrapper names that don't carry a target triple.
// Value has to be one of:
// - "cros.host"
// - "cros.hardened"
var ConfigName = "unknown"

// The flag tables are versioned configuration compiled into the binary.
// Toolchain upgrades touch flags.yaml only.
//
//go:embed flags.yaml
var rawFlagTable []byte

type flagTable struct {
	TidyChecks []string                  `yaml:"tidy_checks"`
	Configs    map[string]flagTableEntry `yaml:"configs"`
}

type flagTableEntry struct {
	IdentityFlags  []string `yaml:"identity_flags"`
	HardeningFlags []string `yaml:"hardening_flags"`
}

func loadFlagTable() (*flagTable, error) {
	table := &flagTable{}
	if err := yaml.Unmarshal(rawFlagTable, table); err != nil {
		return nil, wrapErrorwithSourceLocf(err, "malformed flag table")
	}
	return table, nil
}

// Names that map to the host toolchain when the wrapper is invoked
// without a target triple prefix.
var hostCompilerNames = map[string]bool{
	"cc":      true,
	"c++":     true,
	"clang":   true,
	"clang++": true,
}

// selectConfig resolves the build mode from the name the wrapper was
// invoked as. Triple-prefixed names select the hardened sysroot mode,
// bare known names the host mode. Anything else is fatal unless the
// mode was hardwired at build time via ConfigName.
func selectConfig(invokedName string) (*config, builderTarget, error) {
	basename := filepath.Base(invokedName)
	if target, ok := parseTargetTriple(basename); ok {
		cfg, err := getConfig("cros.hardened")
		return cfg, target, err
	}
	if hostCompilerNames[basename] {
		cfg, err := getConfig("cros.host")
		return cfg, builderTarget{compiler: basename}, err
	}
	if ConfigName != "unknown" {
		cfg, err := getConfig(ConfigName)
		return cfg, builderTarget{compiler: basename}, err
	}
	return nil, builderTarget{}, newUserErrorf(
		"unknown invoked name %q: expected a <arch>-<vendor>-<sys>-<abi>- prefixed compiler or one of the host compilers", basename)
}

// parseTargetTriple splits e.g. "x86_64-cros-linux-gnu-clang" into the
// target triple and the compiler name.
func parseTargetTriple(basename string) (builderTarget, bool) {
	nameParts := strings.Split(basename, "-")
	if len(nameParts) != 5 {
		return builderTarget{}, false
	}
	compiler := nameParts[4]
	if !strings.HasPrefix(compiler, "clang") {
		return builderTarget{}, false
	}
	return builderTarget{
		triple:   strings.Join(nameParts[:4], "-"),
		arch:     nameParts[0],
		vendor:   nameParts[1],
		sys:      nameParts[2],
		abi:      nameParts[3],
		compiler: compiler,
	}, true
}

func getConfig(configName string) (*config, error) {
	table, err := loadFlagTable()
	if err != nil {
		return nil, err
	}
	entry, ok := table.Configs[configName]
	if !ok {
		return nil, newErrorwithSourceLocf("unknown config name: %s", configName)
	}
	cfg := &config{
		name:           configName,
		identityFlags:  entry.IdentityFlags,
		hardeningFlags: entry.HardeningFlags,
		tidyChecks:     table.TidyChecks,
		crosRoot:       "/",
	}
	return cfg, nil
}

// realCompilerPath resolves the path of the compiler the wrapper stands
// in for. In hardened mode this is the toolchain install layout; in
// host mode the real compiler sits next to the wrapper under a .real
// suffix.
func realCompilerPath(cfg *config, target builderTarget, wrapperPath string) string {
	if target.triple != "" {
		return filepath.Join(cfg.crosRoot, "usr/bin", target.compiler)
	}
	return wrapperPath + ".real"
}

func sysrootPath(cfg *config, target builderTarget) string {
	return filepath.Join(cfg.crosRoot, "usr", target.triple)
}

func crossBinaryPrefix(cfg *config, target builderTarget) string {
	return filepath.Join(cfg.crosRoot, "usr/bin") + "/" + target.triple + "-"
}
