package cpu

import (
	"errors"

	"github.com/Manu343726/micro8/pkg/hw/cpu/mc/instructions"
	"github.com/Manu343726/micro8/pkg/hw/logic"
)

// Two operand operations of the arithmetic logic unit, in terms of the logic gates
var binaryOps = map[instructions.Mnemonic]logic.Gate{
	instructions.Mnemonic_ADD:  logic.Add,
	instructions.Mnemonic_AND:  logic.And,
	instructions.Mnemonic_OR:   logic.Or,
	instructions.Mnemonic_NAND: logic.Nand,
	instructions.Mnemonic_NOR:  logic.Nor,
	instructions.Mnemonic_XOR:  logic.Xor,
}

type arithmeticUnit struct {
	rs RegisterBank
}

func (u *arithmeticUnit) UnaryOp(src Register, dest Register, opBody func(uint8) uint8) (uint8, error) {
	srcValue, err := u.rs.Read(src)

	if err != nil {
		return 0, err
	}

	result := opBody(srcValue)
	return result, u.rs.Write(result, dest)
}

func (u *arithmeticUnit) BinaryOp(lhs Register, rhs Register, dest Register, opBody logic.Gate) (uint8, error) {
	lhsValue, lhsErr := u.rs.Read(lhs)
	rhsValue, rhsErr := u.rs.Read(rhs)

	if lhsErr != nil || rhsErr != nil {
		return 0, errors.Join(lhsErr, rhsErr)
	}

	result := opBody(lhsValue, rhsValue)
	return result, u.rs.Write(result, dest)
}
