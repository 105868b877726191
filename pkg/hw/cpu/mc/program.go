package mc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/utils"
)

// AssembledInstruction is one instruction of an assembled program
type AssembledInstruction struct {
	// One based source line
	Line        int
	Text        string
	Address     int
	Instruction *cpu.Instruction
	// Encoded bytes, including slot padding
	Binary []byte
}

// Program is the output of the assembler
type Program struct {
	Binary       []byte
	Labels       map[string]int
	Instructions []AssembledInstruction
}

// Size returns the number of bytes of the binary
func (p *Program) Size() int {
	return len(p.Binary)
}

// labelsAt returns the labels pointing to each address, sorted by name
func (p *Program) labelsAt() map[int][]string {
	result := make(map[int][]string)

	for _, name := range utils.SortedKeys(p.Labels) {
		address := p.Labels[name]
		result[address] = append(result[address], name)
	}

	return result
}

// Listing returns a human readable dump of the program: address, encoded
// bytes and source text of each instruction, with label declarations
func (p *Program) Listing() string {
	var builder strings.Builder
	labels := p.labelsAt()

	width := 0
	for _, instr := range p.Instructions {
		width = max(width, len(utils.FormatBytesHex(instr.Binary)))
	}

	for _, instr := range p.Instructions {
		for _, label := range labels[instr.Address] {
			builder.WriteString(fmt.Sprintf("%v:\n", label))
		}
		delete(labels, instr.Address)

		builder.WriteString(fmt.Sprintf("  %v  %-*s  %v\n",
			utils.FormatHex(uint(instr.Address), 2),
			width,
			utils.FormatBytesHex(instr.Binary),
			instr.Text))
	}

	// labels pointing past the last instruction
	trailing := utils.Keys(labels)
	sort.Ints(trailing)
	for _, address := range trailing {
		for _, label := range labels[address] {
			builder.WriteString(fmt.Sprintf("%v:\n", label))
		}
	}

	return builder.String()
}

// WriteBinary writes the raw byte stream of the program
func (p *Program) WriteBinary(w io.Writer) error {
	_, err := w.Write(p.Binary)
	return err
}
