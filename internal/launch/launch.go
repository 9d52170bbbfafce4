// Package launch runs the MCP runtime as the single child process of a
// connector run and reports its termination status. There is exactly one
// child per run: no restarts, no supervision, no timeouts. The parent's only
// job after resolution is to wait and pass the child's exit code through.
package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
)

// DefaultCommand invokes the TypingMind MCP runtime. The runtime reads
// TM_AUTH_TOKEN from its environment, so no arguments are required.
var DefaultCommand = []string{"npx", "-y", "@typingmind/mcp@latest"}

// FailureExitCode is the parent's exit code when the child cannot be started
// or terminates without an exit code.
const FailureExitCode = 1

// Command configures the child process.
type Command struct {
	// Path is the executable name or path, resolved via PATH.
	Path string
	// Args are the arguments, excluding the program name.
	Args []string
	// Env is the resolved environment for the child. Nil inherits the
	// parent's environment.
	Env *env.Snapshot
	// Dir is the working directory; empty uses the parent's.
	Dir string
	// Stdin, Stdout, and Stderr default to the parent's streams, connected
	// directly with no buffering or interception.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the child and blocks until it terminates, returning the child's
// exit code. A start failure (executable not found, permission denied)
// returns FailureExitCode with the error; the caller logs it and exits. A
// child killed by a signal has no exit code and also maps to FailureExitCode.
func Run(c Command) (int, error) {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	if c.Env != nil {
		cmd.Env = c.Env.Environ()
	}

	cmd.Stdin = c.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	log.Debug("starting child process", "path", c.Path, "args", c.Args)
	if err := cmd.Start(); err != nil {
		return FailureExitCode, fmt.Errorf("starting %s: %w", c.Path, err)
	}
	log.Debug("child process started", "pid", cmd.Process.Pid)

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal: no exit code exists, so the run
			// reports the fixed failure code.
			log.Warn("child process terminated by signal", "status", exitErr.String())
			return FailureExitCode, nil
		}
		return code, nil
	}

	// Wait can fail for reasons other than child exit status (stream
	// copying with replaced writers). Treat it like a failed launch.
	return FailureExitCode, fmt.Errorf("waiting for %s: %w", c.Path, err)
}
