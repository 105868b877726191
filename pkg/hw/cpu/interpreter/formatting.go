package interpreter

import (
	"fmt"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/utils"
	"github.com/fatih/color"
)

// FormatStyle controls the output style for formatting functions
type FormatStyle int

const (
	// StylePlain produces plain text output without colors
	StylePlain FormatStyle = iota
	// StyleColored produces colorized output using ANSI escape codes
	StyleColored
)

// TraceFormatter formats execution trace output
type TraceFormatter struct {
	style FormatStyle

	step     *color.Color
	pc       *color.Color
	register *color.Color
	value    *color.Color
	mnemonic *color.Color
}

func NewTraceFormatter(style FormatStyle) *TraceFormatter {
	f := &TraceFormatter{
		style:    style,
		step:     color.New(color.FgHiBlack),
		pc:       color.New(color.FgCyan),
		register: color.New(color.FgGreen),
		value:    color.New(color.FgHiWhite, color.Bold),
		mnemonic: color.New(color.FgMagenta, color.Bold),
	}

	for _, c := range []*color.Color{f.step, f.pc, f.register, f.value, f.mnemonic} {
		if style == StylePlain {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return f
}

// FormatInstruction highlights the mnemonic of an instruction
func (f *TraceFormatter) FormatInstruction(instr *cpu.Instruction) string {
	mnemonic, operands, _ := strings.Cut(instr.String(), " ")
	if len(operands) == 0 {
		return f.mnemonic.Sprint(mnemonic)
	}

	return f.mnemonic.Sprint(mnemonic) + " " + operands
}

// FormatStep formats a single execution step: step count, PC, the register
// file and the executed instruction
func (f *TraceFormatter) FormatStep(step int, pc int, instr *cpu.Instruction, registers *cpu.Registers) string {
	var sb strings.Builder

	sb.WriteString(f.step.Sprintf("[%4d]", step))
	sb.WriteString(" ")
	sb.WriteString(f.register.Sprint("PC"))
	sb.WriteString("=")
	sb.WriteString(f.pc.Sprint(utils.FormatHex(uint(pc), 2)))

	for r, value := range registers.Values() {
		sb.WriteString(" ")
		sb.WriteString(f.register.Sprint(cpu.Register(r)))
		sb.WriteString("=")
		sb.WriteString(f.value.Sprintf("%3d", value))
	}

	sb.WriteString(" | ")
	sb.WriteString(f.FormatInstruction(instr))

	return sb.String()
}

// FormatSummary formats the outcome of a run
func (f *TraceFormatter) FormatSummary(result *ExecutionResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("=== Execution %s ===\n", result.StopReason))
	sb.WriteString(fmt.Sprintf("Steps executed: %d\n", result.StepsExecuted))
	sb.WriteString(fmt.Sprintf("Last PC: %v\n", utils.FormatHex(uint(result.LastPC), 2)))

	if result.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %v\n", result.Error))
	}

	return sb.String()
}

// FormatDisassembly formats a disassembled range, one instruction per line
func (f *TraceFormatter) FormatDisassembly(listing []Disassembly) string {
	var sb strings.Builder

	for _, entry := range listing {
		sb.WriteString(f.pc.Sprint(utils.FormatHex(uint(entry.Address), 2)))
		sb.WriteString("  ")

		if entry.Error != nil {
			sb.WriteString(fmt.Sprintf("?? (%v)", entry.Error))
		} else {
			sb.WriteString(f.FormatInstruction(entry.Instruction))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
