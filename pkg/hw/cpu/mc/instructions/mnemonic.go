package instructions

// Closed enumeration of the operations the machine knows about
type Mnemonic uint

const (
	Mnemonic_LOAD Mnemonic = iota
	Mnemonic_STORE
	Mnemonic_ADD
	Mnemonic_AND
	Mnemonic_OR
	Mnemonic_NAND
	Mnemonic_NOR
	Mnemonic_XOR
	Mnemonic_NOT
	Mnemonic_MOV
	Mnemonic_QMOV
	Mnemonic_INIT
	Mnemonic_CLEAR
	Mnemonic_OUT
	Mnemonic_VER
	Mnemonic_IF
	Mnemonic_HALT
	// Binary only, the text engine has no program counter
	Mnemonic_JUMP

	// Total mnemonics implemented
	TOTAL_MNEMONICS
)

var mnemonicNames = map[Mnemonic]string{
	Mnemonic_LOAD:  "LOAD",
	Mnemonic_STORE: "STORE",
	Mnemonic_ADD:   "ADD",
	Mnemonic_AND:   "AND",
	Mnemonic_OR:    "OR",
	Mnemonic_NAND:  "NAND",
	Mnemonic_NOR:   "NOR",
	Mnemonic_XOR:   "XOR",
	Mnemonic_NOT:   "NOT",
	Mnemonic_MOV:   "MOV",
	Mnemonic_QMOV:  "QMOV",
	Mnemonic_INIT:  "INIT",
	Mnemonic_CLEAR: "CLEAR",
	Mnemonic_OUT:   "OUT",
	Mnemonic_VER:   "VER",
	Mnemonic_IF:    "IF",
	Mnemonic_HALT:  "HALT",
	Mnemonic_JUMP:  "JUMP",
}

func (m Mnemonic) String() string {
	if name, ok := mnemonicNames[m]; ok {
		return name
	}

	return "UNKNOWN"
}
