package instructions

// Represents the kind of operand (Register, address, immediate)
type OperandKind uint

const (
	OperandKind_Register OperandKind = iota
	OperandKind_Address
	OperandKind_Immediate
	// Encoded as a single byte whose meaning depends on the source operand
	OperandKind_Any
)

func (o OperandKind) String() string {
	switch o {
	case OperandKind_Register:
		return "Register"
	case OperandKind_Address:
		return "Address"
	case OperandKind_Immediate:
		return "Immediate"
	case OperandKind_Any:
		return "Any"
	}

	panic("unreachable")
}
