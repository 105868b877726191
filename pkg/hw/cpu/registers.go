package cpu

import (
	"fmt"
)

// TotalRegisters is the size of the register file
const TotalRegisters = 8

// Register is an index into the register file
type Register uint8

func (r Register) String() string {
	return fmt.Sprintf("R%d", uint8(r))
}

func (r Register) Valid() bool {
	return r < TotalRegisters
}

type RegisterBank interface {
	Read(r Register) (uint8, error)
	Write(value uint8, r Register) error
}

// Registers is the register file of the machine
type Registers struct {
	rs [TotalRegisters]uint8
}

func (rs *Registers) Read(r Register) (uint8, error) {
	if !r.Valid() {
		return 0, makeError(ErrInvalidRegister, "'%v'", r)
	}

	return rs.rs[r], nil
}

func (rs *Registers) Write(value uint8, r Register) error {
	if !r.Valid() {
		return makeError(ErrInvalidRegister, "'%v'", r)
	}

	rs.rs[r] = value
	return nil
}

// Values returns a snapshot of every register
func (rs *Registers) Values() [TotalRegisters]uint8 {
	return rs.rs
}

func (rs *Registers) Reset() {
	rs.rs = [TotalRegisters]uint8{}
}
