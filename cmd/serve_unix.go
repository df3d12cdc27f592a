//go:build !windows

package cmd

import (
	"os"
	"os/exec"
	"syscall"
)

// setDaemonAttrs puts a background board server in its own session so it
// outlives the shell that ran 'serve start'.
func setDaemonAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// shutdownSignals stop 'serve' and 'mcp'; the board server drains
// in-flight requests before exiting.
func shutdownSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// sigTERM asks a background board server to shut down.
func sigTERM() syscall.Signal { return syscall.SIGTERM }

// sigKILL ends a board server that ignored sigTERM for stopGrace.
func sigKILL() syscall.Signal { return syscall.SIGKILL }
