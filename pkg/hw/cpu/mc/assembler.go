package mc

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

var ErrProgramTooLarge = errors.New("program too large")

// Assembler translates text programs into binaries in two passes: the first
// one parses every line and assigns byte addresses to labels, the second one
// resolves jump targets and encodes the instructions
type Assembler struct {
	slotSize int
	logger   *slog.Logger
}

type Option func(*Assembler)

// WithSlotSize pads every instruction to at least the given number of bytes.
// Must match the slot size of the interpreter running the binary.
func WithSlotSize(slotSize int) Option {
	return func(a *Assembler) {
		a.slotSize = slotSize
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

func NewAssembler(options ...Option) *Assembler {
	a := &Assembler{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// pending is an instruction parsed in the first pass
type pending struct {
	line    int
	text    string
	address int
	instr   *cpu.Instruction
	// JUMP only
	target *JumpTarget
}

// ParseInstruction parses a line of assembly into an encodable instruction.
// JUMP targets are returned apart since labels may not be resolved yet.
func ParseInstruction(line string) (*cpu.Instruction, *JumpTarget, error) {
	tokens := strings.Fields(cpu.StripComment(line))
	if len(tokens) == 0 {
		return nil, nil, nil
	}

	desc, err := instructions.Instructions.ParseEncodable(tokens[0])
	if err != nil {
		return nil, nil, err
	}

	if desc.Mnemonic == instructions.Mnemonic_JUMP {
		if len(tokens) != desc.Tokens {
			return nil, nil, utils.MakeError(cpu.ErrArity, "JUMP expects 1 operand, got %d in '%v'", len(tokens)-1, strings.Join(tokens, " "))
		}

		target, err := ParseJumpTarget(tokens[1])
		if err != nil {
			return nil, nil, err
		}

		return &cpu.Instruction{Descriptor: desc}, &target, nil
	}

	instr, err := cpu.Decode(line)
	if err != nil {
		return nil, nil, err
	}

	return instr, nil, nil
}

func (a *Assembler) advance(instr *cpu.Instruction) int {
	return max(a.slotSize, instr.Size())
}

// Assemble translates the given source lines
func (a *Assembler) Assemble(lines []string) (*Program, error) {
	symbols := NewSymbolTable()
	var parsed []pending
	address := 0

	for n, line := range lines {
		text := cpu.StripComment(line)
		if len(text) == 0 {
			continue
		}

		if label, isLabel := cpu.LabelName(text); isLabel {
			if err := symbols.Define(label, address); err != nil {
				return nil, cpu.MakeProgramError(n+1, text, err)
			}
			continue
		}

		instr, target, err := ParseInstruction(text)
		if err != nil {
			return nil, cpu.MakeProgramError(n+1, text, err)
		}

		parsed = append(parsed, pending{line: n + 1, text: text, address: address, instr: instr, target: target})
		address += a.advance(instr)
	}

	if address > memory.Size {
		return nil, utils.MakeError(ErrProgramTooLarge, "%d bytes, memory has %d", address, memory.Size)
	}

	program := &Program{
		Binary:       make([]byte, 0, address),
		Labels:       symbols.Labels(),
		Instructions: make([]AssembledInstruction, 0, len(parsed)),
	}

	for _, p := range parsed {
		if p.target != nil {
			targetAddress, err := p.target.Resolve(symbols)
			if err != nil {
				return nil, cpu.MakeProgramError(p.line, p.text, err)
			}

			p.instr.Operands = []cpu.Operand{cpu.AddressOperand(targetAddress)}
		}

		binary, err := p.instr.Encode()
		if err != nil {
			return nil, cpu.MakeProgramError(p.line, p.text, err)
		}

		for len(binary) < a.slotSize {
			binary = append(binary, 0)
		}

		program.Binary = append(program.Binary, binary...)
		program.Instructions = append(program.Instructions, AssembledInstruction{
			Line:        p.line,
			Text:        p.text,
			Address:     p.address,
			Instruction: p.instr,
			Binary:      binary,
		})
	}

	a.logger.Debug("program assembled",
		slog.Int("instructions", len(program.Instructions)),
		slog.Int("labels", len(program.Labels)),
		slog.Int("size", program.Size()))

	return program, nil
}

func (a *Assembler) AssembleReader(input io.Reader) (*Program, error) {
	lines, err := cpu.ReadLines(input)
	if err != nil {
		return nil, err
	}

	return a.Assemble(lines)
}

// AssembleFile assembles the source file and writes the raw binary to output
func (a *Assembler) AssembleFile(input string, output string) (*Program, error) {
	source, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	program, err := a.AssembleReader(source)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, program.Binary, 0o644); err != nil {
		return nil, err
	}

	a.logger.Info("binary written", slog.String("input", input), slog.String("output", output), slog.Int("size", program.Size()))
	return program, nil
}
