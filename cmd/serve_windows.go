//go:build windows

package cmd

import (
	"os"
	"os/exec"
	"syscall"
)

// setDaemonAttrs does nothing on Windows, which has no Setsid; the board
// server child keeps running after 'serve start' returns.
func setDaemonAttrs(_ *exec.Cmd) {}

// shutdownSignals stop 'serve' and 'mcp' on Ctrl+C.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// sigTERM is what 'serve stop' sends first. Windows delivers both
// signals as a process kill.
func sigTERM() syscall.Signal { return syscall.SIGTERM }

// sigKILL is what 'serve stop' sends after stopGrace.
func sigKILL() syscall.Signal { return syscall.SIGKILL }
