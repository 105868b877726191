// Package bios implements the machine's interactive shell. It separates the
// command logic (Controller) from the presentation layer (UI), so the same
// shell can be driven from a terminal, a script or a test.
package bios

import (
	"github.com/Manu343726/micro8/pkg/hw/cpu"
)

// MessageLevel indicates the severity of a message
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// CommandHelp describes a shell command
type CommandHelp struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
}

// UI renders the outcomes of shell commands
type UI interface {
	// ShowMessage displays a message to the user
	ShowMessage(level MessageLevel, format string, args ...interface{})

	// ShowMemoryDump displays consecutive memory cells starting at start,
	// each one already rendered as an 8 character binary string
	ShowMemoryDump(start int, cells []string)

	// ShowRegisters displays the register file
	ShowRegisters(values [cpu.TotalRegisters]uint8)

	// ShowText displays free form multiline text, like listings and traces
	ShowText(text string)

	// ShowHelp displays the command reference
	ShowHelp(commands []CommandHelp)
}
