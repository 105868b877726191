package mc

import (
	"errors"
	"strings"

	"github.com/Manu343726/micro8/pkg/hw/cpu"
	"github.com/Manu343726/micro8/pkg/utils"
)

var (
	ErrDuplicateLabel = errors.New("duplicate label")
	ErrUnknownLabel   = errors.New("unknown label")
)

// SymbolTable maps label names to byte addresses
type SymbolTable struct {
	labels map[string]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{labels: make(map[string]int)}
}

func (s *SymbolTable) Define(name string, address int) error {
	if previous, exists := s.labels[name]; exists {
		return utils.MakeError(ErrDuplicateLabel, "'%v' already declared at address %v", name, utils.FormatHex(uint(previous), 2))
	}

	s.labels[name] = address
	return nil
}

func (s *SymbolTable) Resolve(name string) (int, error) {
	if address, exists := s.labels[name]; exists {
		return address, nil
	}

	return 0, utils.MakeError(ErrUnknownLabel, "'%v'", name)
}

// Labels returns a copy of the table
func (s *SymbolTable) Labels() map[string]int {
	return utils.MapMap(s.labels, func(name string, address int) (string, int) {
		return name, address
	})
}

// JumpTarget is the operand of a JUMP: either a fixed address or a label
// resolved once all labels are known
type JumpTarget struct {
	Label   string
	Address int
}

func (t JumpTarget) String() string {
	if t.Label != "" {
		return t.Label
	}

	return cpu.AddressOperand(t.Address).String()
}

// ParseJumpTarget accepts '[addr]', a plain number or a label name
func ParseJumpTarget(token string) (JumpTarget, error) {
	token = strings.TrimSuffix(token, ",")

	if strings.HasPrefix(token, "[") {
		address, err := cpu.ParseAddress(token)
		return JumpTarget{Address: address}, err
	}

	if address, err := cpu.ParseImmediate(token); err == nil {
		return JumpTarget{Address: int(address)}, nil
	}

	if len(token) == 0 || strings.ContainsAny(token, "[]:") {
		return JumpTarget{}, utils.MakeError(cpu.ErrSyntax, "'%v' is not a valid jump target", token)
	}

	return JumpTarget{Label: token}, nil
}

func (t JumpTarget) Resolve(symbols *SymbolTable) (int, error) {
	if t.Label == "" {
		return t.Address, nil
	}

	return symbols.Resolve(t.Label)
}
