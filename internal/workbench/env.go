// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package workbench

import "os"

// ChildEnv builds the environment for a spawned PTY child per spec §6:
// the parent process environment as baseline, plus fish_features=no-
// query-term to suppress a Device Attributes probe some shells emit.
func ChildEnv() []string {
	env := os.Environ()
	env = append(env, "fish_features=no-query-term")
	return env
}
