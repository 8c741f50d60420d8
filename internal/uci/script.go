package uci

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"wrtforge/internal/brand"
)

// Script is the export sink: it accumulates the command stream and
// renders it as a standalone shell script equivalent to the apply
// sequence, for later manual execution on a device.
type Script struct {
	Commands []Command

	runID string
	now   time.Time
}

// NewScript creates an export sink stamped with a fresh run id.
func NewScript() *Script {
	return &Script{
		runID: uuid.NewString(),
		now:   time.Now().UTC(),
	}
}

// Emit appends the command to the script body.
func (s *Script) Emit(cmd Command) error {
	s.Commands = append(s.Commands, cmd)
	return nil
}

// String renders the full script: header, one uci line per command.
// "set -e" keeps the manual run semantics aligned with apply mode -
// the script stops at the first rejected command, before the commit.
func (s *Script) String() string {
	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&sb, "# Generated by %s %s\n", brand.Name, brand.Version)
	fmt.Fprintf(&sb, "# Run %s at %s\n", s.runID, s.now.Format(time.RFC3339))
	sb.WriteString("set -e\n\n")
	for _, c := range s.Commands {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteFile persists the script as an executable file.
func (s *Script) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(s.String()), 0o755); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}
