package uci

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts external command execution so the executor
// sink and the hardware prober can be tested without a device.
type CommandRunner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes commands on the host.
type RealCommandRunner struct{}

// Run executes a command without capturing output.
func (r *RealCommandRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command %s failed: %w: %s", name, err, string(out))
	}
	return nil
}

// Output executes a command and returns its output.
func (r *RealCommandRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Query runs a read-only uci lookup and returns its trimmed output, or
// the empty string when the key does not exist. Probing treats a failed
// lookup as absence, never as a fatal error.
func Query(r CommandRunner, args ...string) string {
	out, err := r.Output("uci", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
