package cpu

import (
	"slices"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
)

// MaxNestingDepth is the deepest chain of IF clauses the decoder accepts
const MaxNestingDepth = 8

const (
	keywordThen = "THEN"
	keywordElse = "ELSE"
)

// Decode parses one line of text into an instruction. Comments are stripped.
// An empty line decodes into a nil instruction and no error.
func Decode(line string) (*Instruction, error) {
	return decode(strings.Fields(StripComment(line)), 0)
}

func decode(tokens []string, depth int) (*Instruction, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	desc, err := instructions.Instructions.Parse(tokens[0])
	if err != nil {
		return nil, err
	}

	if desc.Tokens != 0 && len(tokens) != desc.Tokens {
		return nil, makeError(ErrArity, "%v expects %d operands, got %d in '%v'", desc.Mnemonic, desc.Tokens-1, len(tokens)-1, strings.Join(tokens, " "))
	}

	instr := &Instruction{Descriptor: desc}
	operands := tokens[1:]

	switch desc.Mnemonic {
	case instructions.Mnemonic_LOAD, instructions.Mnemonic_STORE:
		err = instr.decodeRegisterAddress(operands)
	case instructions.Mnemonic_ADD,
		instructions.Mnemonic_AND,
		instructions.Mnemonic_OR,
		instructions.Mnemonic_NAND,
		instructions.Mnemonic_NOR,
		instructions.Mnemonic_XOR,
		instructions.Mnemonic_NOT:
		err = instr.decodeRegisters(operands)
	case instructions.Mnemonic_MOV:
		err = instr.decodeMov(operands)
	case instructions.Mnemonic_QMOV:
		err = instr.decodeQMov(operands)
	case instructions.Mnemonic_INIT:
		err = instr.decodeInit(operands)
	case instructions.Mnemonic_CLEAR:
		err = instr.decodeClear(operands)
	case instructions.Mnemonic_OUT:
		err = instr.decodeOut(operands)
	case instructions.Mnemonic_VER:
		err = instr.decodeVer(operands)
	case instructions.Mnemonic_IF:
		err = instr.decodeIf(operands, depth)
	case instructions.Mnemonic_HALT:
	default:
		err = makeError(ErrUnknownInstruction, "'%v'", tokens[0])
	}

	if err != nil {
		return nil, err
	}

	return instr, nil
}

func (i *Instruction) decodeRegisterAddress(operands []string) error {
	r, err := ParseRegister(operands[0])
	if err != nil {
		return err
	}

	address, err := ParseAddress(operands[1])
	if err != nil {
		return err
	}

	i.Operands = []Operand{RegisterOperand(r), AddressOperand(address)}
	return nil
}

func (i *Instruction) decodeRegisters(operands []string) error {
	i.Operands = make([]Operand, len(operands))

	for n, token := range operands {
		r, err := ParseRegister(token)
		if err != nil {
			return err
		}

		i.Operands[n] = RegisterOperand(r)
	}

	return nil
}

func parseDestination(token string) (Operand, error) {
	dst, err := ParseOperand(token)
	if err != nil {
		return dst, err
	}

	if dst.IsImmediate() {
		return dst, makeError(ErrInvalidDestination, "'%v' is an immediate, expected a register or an address", token)
	}

	return dst, nil
}

func (i *Instruction) decodeMov(operands []string) error {
	dst, err := parseDestination(operands[0])
	if err != nil {
		return err
	}

	src, err := ParseOperand(operands[1])
	if err != nil {
		return err
	}

	i.Operands = []Operand{dst, src}
	return nil
}

func (i *Instruction) decodeQMov(operands []string) error {
	from, err := ParseOperand(operands[0])
	if err != nil {
		return err
	}

	to, err := ParseOperand(operands[1])
	if err != nil {
		return err
	}

	registerToMemory := from.IsRegister() && to.IsAddress()
	memoryToRegister := from.IsAddress() && to.IsRegister()

	if !registerToMemory && !memoryToRegister {
		return makeError(ErrInvalidOperandCombination, "QMOV moves between a register and an address, got %v and %v", from.Kind, to.Kind)
	}

	i.Operands = []Operand{from, to}
	return nil
}

func (i *Instruction) decodeInit(operands []string) error {
	if operands[1] != "=" {
		return makeError(ErrSyntax, "INIT expects 'INIT [address] = value', found '%v' instead of '='", operands[1])
	}

	address, err := ParseAddress(operands[0])
	if err != nil {
		return err
	}

	value, err := ParseImmediate(operands[2])
	if err != nil {
		return err
	}

	i.Operands = []Operand{AddressOperand(address), ImmediateOperand(value)}
	return nil
}

func (i *Instruction) decodeClear(operands []string) error {
	target, err := parseDestination(operands[0])
	if err != nil {
		return err
	}

	i.Operands = []Operand{target}
	return nil
}

func (i *Instruction) decodeOut(operands []string) error {
	value, err := ParseOperand(operands[0])
	if err != nil {
		return err
	}

	i.Operands = []Operand{value}
	return nil
}

func (i *Instruction) decodeVer(operands []string) error {
	mode, err := ParseImmediate(operands[0])
	if err != nil {
		return err
	}

	flag, err := ParseImmediate(operands[1])
	if err != nil || flag > 1 {
		return makeError(ErrInvalidFlag, "VER flag must be 0 or 1, got '%v'", operands[1])
	}

	i.Operands = []Operand{ImmediateOperand(mode), ImmediateOperand(flag)}
	return nil
}

// splitElse splits a clause on its first ELSE keyword. That ELSE always
// belongs to the outermost IF, so an IF nested in a THEN clause has no ELSE of
// its own, while one nested in the ELSE clause keeps the rest of the line.
func splitElse(tokens []string) (then []string, otherwise []string, hasElse bool) {
	if at := slices.Index(tokens, keywordElse); at >= 0 {
		return tokens[:at], tokens[at+1:], true
	}

	return tokens, nil, false
}

func (i *Instruction) decodeIf(operands []string, depth int) error {
	if depth >= MaxNestingDepth {
		return makeError(ErrInvalidCondition, "IF clauses nested deeper than %d levels", MaxNestingDepth)
	}

	thenAt := slices.Index(operands, keywordThen)
	if thenAt < 0 {
		return makeError(ErrSyntax, "IF without THEN")
	}

	condition := operands[:thenAt]
	if len(condition) != 3 {
		return makeError(ErrInvalidCondition, "expected 'IF Ra op value', got 'IF %v'", strings.Join(condition, " "))
	}

	cmp, err := ParseComparison(condition[1])
	if err != nil {
		return err
	}

	lhs, err := ParseRegister(condition[0])
	if err != nil {
		return err
	}

	rhs, err := ParseOperand(condition[2])
	if err != nil {
		return err
	}

	thenTokens, elseTokens, hasElse := splitElse(operands[thenAt+1:])
	if len(thenTokens) == 0 {
		return makeError(ErrSyntax, "empty THEN clause")
	}
	if hasElse && len(elseTokens) == 0 {
		return makeError(ErrSyntax, "empty ELSE clause")
	}

	i.Condition = &Condition{Lhs: lhs, Cmp: cmp, Rhs: rhs}

	if i.Then, err = decode(thenTokens, depth+1); err != nil {
		return err
	}

	if hasElse {
		if i.Else, err = decode(elseTokens, depth+1); err != nil {
			return err
		}
	}

	return nil
}
