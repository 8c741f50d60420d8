// Package uci models UCI configuration commands and the sinks that
// consume them. A command is pure data; whether it is printed, executed
// against the device store, or rendered into a deployment script is
// decided by the Sink implementation it is emitted into.
package uci

import (
	"fmt"
	"strings"
)

// Op is the kind of mutation a command performs on the store.
type Op string

const (
	OpSet     Op = "set"
	OpAddList Op = "add_list"
	OpDelete  Op = "delete"
	OpCommit  Op = "commit"
)

// Command is a single addressed mutation of the configuration store.
// For OpSet with an empty Option, Value holds the section type
// (uci set network.lan=interface). For OpCommit all other fields are
// empty: the store commits every staged config at once.
type Command struct {
	Op      Op
	Config  string
	Section string
	Option  string
	Value   string
}

// Set creates an option assignment command.
func Set(config, section, option, value string) Command {
	return Command{Op: OpSet, Config: config, Section: section, Option: option, Value: value}
}

// DefineSection creates a named section of the given type.
func DefineSection(config, section, sectionType string) Command {
	return Command{Op: OpSet, Config: config, Section: section, Value: sectionType}
}

// AddList appends a value to a list option.
func AddList(config, section, option, value string) Command {
	return Command{Op: OpAddList, Config: config, Section: section, Option: option, Value: value}
}

// Delete removes a section or option.
func Delete(config, section, option string) Command {
	return Command{Op: OpDelete, Config: config, Section: section, Option: option}
}

// Commit creates the terminal marker that makes staged changes durable.
func Commit() Command {
	return Command{Op: OpCommit}
}

// Path returns the dotted address of the command's target.
func (c Command) Path() string {
	var sb strings.Builder
	sb.WriteString(c.Config)
	if c.Section != "" {
		sb.WriteByte('.')
		sb.WriteString(c.Section)
	}
	if c.Option != "" {
		sb.WriteByte('.')
		sb.WriteString(c.Option)
	}
	return sb.String()
}

// Args returns the argument vector for the uci binary.
func (c Command) Args() []string {
	switch c.Op {
	case OpCommit:
		if c.Config == "" {
			return []string{"commit"}
		}
		return []string{"commit", c.Config}
	case OpDelete:
		return []string{"delete", c.Path()}
	default:
		return []string{string(c.Op), fmt.Sprintf("%s=%s", c.Path(), c.Value)}
	}
}

// String renders the command as one line in the vocabulary of the uci
// command-line tool. This is the form used by scripts, dry-run listings
// and error messages alike.
func (c Command) String() string {
	switch c.Op {
	case OpCommit:
		if c.Config == "" {
			return "uci commit"
		}
		return "uci commit " + c.Config
	case OpDelete:
		return "uci delete " + c.Path()
	default:
		return fmt.Sprintf("uci %s %s='%s'", c.Op, c.Path(), c.Value)
	}
}
