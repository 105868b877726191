package cpu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/memory"
	"github.com/Manu343726/micro8/pkg/utils"
)

// Operand is a resolved instruction operand
type Operand struct {
	Kind instructions.OperandKind
	// Register index, memory address or immediate value depending on Kind
	Value int
}

func RegisterOperand(r Register) Operand {
	return Operand{Kind: instructions.OperandKind_Register, Value: int(r)}
}

func AddressOperand(address int) Operand {
	return Operand{Kind: instructions.OperandKind_Address, Value: address}
}

func ImmediateOperand(value uint8) Operand {
	return Operand{Kind: instructions.OperandKind_Immediate, Value: int(value)}
}

func (o Operand) IsRegister() bool {
	return o.Kind == instructions.OperandKind_Register
}

func (o Operand) IsAddress() bool {
	return o.Kind == instructions.OperandKind_Address
}

func (o Operand) IsImmediate() bool {
	return o.Kind == instructions.OperandKind_Immediate
}

func (o Operand) Register() Register {
	return Register(o.Value)
}

func (o Operand) String() string {
	switch o.Kind {
	case instructions.OperandKind_Register:
		return o.Register().String()
	case instructions.OperandKind_Address:
		return fmt.Sprintf("[%d]", o.Value)
	default:
		return fmt.Sprint(o.Value)
	}
}

func sanitizeToken(token string) string {
	return strings.TrimSuffix(token, ",")
}

func isRegisterToken(token string) bool {
	return strings.HasPrefix(token, "R")
}

func isAddressToken(token string) bool {
	return strings.HasPrefix(token, "[")
}

// ParseRegister parses a register reference of the form Rn
func ParseRegister(token string) (Register, error) {
	token = sanitizeToken(token)

	if !isRegisterToken(token) {
		return 0, makeError(ErrInvalidRegister, "'%v' is not a register", token)
	}

	index, err := strconv.ParseUint(token[1:], 10, 64)
	if err != nil {
		return 0, makeError(ErrInvalidRegister, "'%v': %v", token, err)
	}
	if index >= TotalRegisters {
		return 0, makeError(ErrInvalidRegister, "'%v': only registers R0 to R%d exist", token, TotalRegisters-1)
	}

	return Register(index), nil
}

// ParseAddress parses a memory reference of the form [addr], with addr in
// decimal or 0x prefixed hex
func ParseAddress(token string) (int, error) {
	token = sanitizeToken(token)

	if !isAddressToken(token) || !strings.HasSuffix(token, "]") || len(token) < 2 {
		return 0, makeError(ErrInvalidAddress, "'%v' is not an address", token)
	}

	inner := token[1 : len(token)-1]

	var address uint64
	var err error

	if hex, isHex := strings.CutPrefix(inner, "0x"); isHex {
		address, err = strconv.ParseUint(hex, 16, 64)
	} else {
		address, err = strconv.ParseUint(inner, 10, 64)
	}

	if err != nil {
		return 0, makeError(ErrInvalidAddress, "'%v': %v", token, err)
	}
	if address >= memory.Size {
		return 0, makeError(ErrInvalidAddress, "'%v': address %v out of range, memory has %d cells", token, utils.FormatHex(address, 2), memory.Size)
	}

	return int(address), nil
}

// ParseImmediate parses an 8 bit value in decimal, 0x prefixed hex or 0b prefixed binary
func ParseImmediate(token string) (uint8, error) {
	token = sanitizeToken(token)

	var value uint64
	var err error

	if bin, isBin := strings.CutPrefix(token, "0b"); isBin {
		value, err = strconv.ParseUint(bin, 2, 8)
	} else if hex, isHex := strings.CutPrefix(token, "0x"); isHex {
		value, err = strconv.ParseUint(hex, 16, 8)
	} else {
		value, err = strconv.ParseUint(token, 10, 8)
	}

	if err != nil {
		return 0, makeError(ErrInvalidImmediate, "'%v': %v", token, err)
	}

	return uint8(value), nil
}

// ParseOperand resolves a token as a register, an address or an immediate,
// in that order of precedence
func ParseOperand(token string) (Operand, error) {
	token = sanitizeToken(token)

	switch {
	case isRegisterToken(token):
		r, err := ParseRegister(token)
		return RegisterOperand(r), err
	case isAddressToken(token):
		address, err := ParseAddress(token)
		return AddressOperand(address), err
	default:
		value, err := ParseImmediate(token)
		return ImmediateOperand(value), err
	}
}
