package instructions

var Instructions InstructionsDescriptor = NewInstructionsDescriptor([]*InstructionDescriptor{
	Load(),
	Store(),
	Add(),
	And(),
	Or(),
	Nand(),
	Nor(),
	Xor(),
	Not(),
	Mov(),
	QMov(),
	Init(),
	Clear(),
	Out(),
	Ver(),
	If(),
	Halt(),
	Jump(),
})

var threeRegisters = []OperandKind{OperandKind_Register, OperandKind_Register, OperandKind_Register}

func Load() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_LOAD,
		Tokens:      3,
		Syntax:      "LOAD Rd [addr]",
		Description: "Copies the memory cell at addr into register Rd",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_LOAD,
		Encoding:    []OperandKind{OperandKind_Register, OperandKind_Address},
	}
}

func Store() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_STORE,
		Tokens:      3,
		Syntax:      "STORE Rs [addr]",
		Description: "Copies register Rs into the memory cell at addr",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_STORE,
		Encoding:    []OperandKind{OperandKind_Register, OperandKind_Address},
	}
}

func Add() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_ADD,
		Tokens:      4,
		Syntax:      "ADD Ra Rb Rc",
		Description: "Rc = Ra + Rb, wrapping modulo 256",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_ADD,
		Encoding:    threeRegisters,
	}
}

func And() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_AND,
		Tokens:      4,
		Syntax:      "AND Ra Rb Rc",
		Description: "Rc = Ra & Rb",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_AND,
		Encoding:    threeRegisters,
	}
}

func Or() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_OR,
		Tokens:      4,
		Syntax:      "OR Ra Rb Rc",
		Description: "Rc = Ra | Rb",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_OR,
		Encoding:    threeRegisters,
	}
}

func Nand() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_NAND,
		Tokens:      4,
		Syntax:      "NAND Ra Rb Rc",
		Description: "Rc = ~(Ra & Rb)",
		Text:        true,
	}
}

func Nor() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_NOR,
		Tokens:      4,
		Syntax:      "NOR Ra Rb Rc",
		Description: "Rc = ~(Ra | Rb)",
		Text:        true,
	}
}

func Xor() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_XOR,
		Tokens:      4,
		Syntax:      "XOR Ra Rb Rc",
		Description: "Rc = Ra ^ Rb",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_XOR,
		Encoding:    threeRegisters,
	}
}

func Not() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_NOT,
		Tokens:      3,
		Syntax:      "NOT Ra Rb",
		Description: "Rb = ~Ra",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_NOT,
		Encoding:    []OperandKind{OperandKind_Register, OperandKind_Register},
	}
}

func Mov() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_MOV,
		Tokens:      3,
		Syntax:      "MOV dst src",
		Description: "Copies src (register, memory cell or immediate) into dst (register or memory cell)",
		Text:        true,
	}
}

func QMov() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_QMOV,
		Tokens:      3,
		Syntax:      "QMOV from to",
		Description: "Moves a value between a register and a memory cell, then zeroes the location it came from",
		Text:        true,
	}
}

func Init() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_INIT,
		Tokens:      4,
		Syntax:      "INIT [addr] = value",
		Description: "Writes an immediate value into the memory cell at addr",
		Text:        true,
		Encodable:   true,
		OpCode:      OpCode_INIT,
		Encoding:    []OperandKind{OperandKind_Address, OperandKind_Immediate},
	}
}

func Clear() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_CLEAR,
		Tokens:      2,
		Syntax:      "CLEAR target",
		Description: "Zeroes a register or memory cell",
		Text:        true,
		Encodable:   true,
		OpCode:      OpCode_CLEAR,
		Encoding:    []OperandKind{OperandKind_Any},
	}
}

func Out() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_OUT,
		Tokens:      2,
		Syntax:      "OUT value",
		Description: "Prints a register, memory cell or immediate in binary",
		Text:        true,
		Encodable:   true,
		OpCode:      OpCode_OUT,
		Encoding:    []OperandKind{OperandKind_Any},
	}
}

func Ver() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_VER,
		Tokens:      3,
		Syntax:      "VER mode flag",
		Description: "Turns verbose diagnostics on (flag 1) or off (flag 0). mode is an immediate kept for compatibility",
		Text:        true,
		Encodable:   true,
		OpCode:      OpCode_VER,
		Encoding:    []OperandKind{OperandKind_Immediate},
	}
}

func If() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_IF,
		Tokens:      0,
		Syntax:      "IF Ra op value THEN instruction [ELSE instruction]",
		Description: "Compares Ra against value (== != > < >= <=, unsigned) and runs one of the clauses",
		Text:        true,
	}
}

func Halt() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_HALT,
		Tokens:      1,
		Syntax:      "HALT",
		Description: "Stops execution",
		Text:        true,
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_HALT,
		Encoding:    []OperandKind{},
	}
}

func Jump() *InstructionDescriptor {
	return &InstructionDescriptor{
		Mnemonic:    Mnemonic_JUMP,
		Tokens:      2,
		Syntax:      "JUMP label",
		Description: "Sets the program counter. Only meaningful in binary programs",
		Encodable:   true,
		Executable:  true,
		OpCode:      OpCode_JUMP,
		Encoding:    []OperandKind{OperandKind_Address},
	}
}
