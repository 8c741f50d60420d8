package uci

import (
	"fmt"
	"io"
)

// Sink consumes the command stream. Exactly one sink is active per run;
// the orchestrator does not know which.
type Sink interface {
	Emit(cmd Command) error
}

// Recorder is the dry-run sink: it collects the ordered command list
// and optionally echoes each line as it arrives.
type Recorder struct {
	Commands []Command
	Out      io.Writer
}

// Emit records the command.
func (r *Recorder) Emit(cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.Out != nil {
		fmt.Fprintln(r.Out, cmd.String())
	}
	return nil
}

// Lines returns the rendered command lines in emission order.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return lines
}

// ExecError reports the first command the store rejected. The rendered
// command is part of the message so an operator can re-run it by hand.
type ExecError struct {
	Cmd Command
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Executor is the apply sink: every command is issued synchronously
// against the live store, in emission order. The first failure stops
// the run; nothing is committed after a failure because the commit
// marker is the last command emitted.
type Executor struct {
	Runner CommandRunner
}

// Emit issues the command through the uci binary.
func (e *Executor) Emit(cmd Command) error {
	if err := e.Runner.Run("uci", cmd.Args()...); err != nil {
		return &ExecError{Cmd: cmd, Err: err}
	}
	return nil
}
