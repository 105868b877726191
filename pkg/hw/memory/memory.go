// Package memory implements the machine's main memory: a fixed array of
// bytes with bounds-checked access.
package memory

import (
	"errors"
	"fmt"

	"github.com/Manu343726/micro8/pkg/utils"
)

// Size is the number of cells of the machine memory
const Size = 256

var ErrOutOfBounds = errors.New("address out of bounds")

// Bus is the byte addressed interface the CPU uses to reach memory
type Bus interface {
	Read(address int) (byte, error)
	Write(address int, value byte) error
}

// RAM is the main memory of the machine
type RAM struct {
	cells [Size]byte
}

func NewRAM() *RAM {
	return &RAM{}
}

func outOfBounds(address int) error {
	return fmt.Errorf("%w: address 0x%X", ErrOutOfBounds, address)
}

// Size returns the number of memory cells
func (m *RAM) Size() int {
	return len(m.cells)
}

func (m *RAM) Read(address int) (byte, error) {
	if address < 0 || address >= len(m.cells) {
		return 0, outOfBounds(address)
	}

	return m.cells[address], nil
}

func (m *RAM) Write(address int, value byte) error {
	if address < 0 || address >= len(m.cells) {
		return outOfBounds(address)
	}

	m.cells[address] = value
	return nil
}

// Load copies data into memory starting at offset. Nothing is written if the
// data does not fit.
func (m *RAM) Load(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > len(m.cells) {
		return fmt.Errorf("%w: %d bytes at offset 0x%X do not fit in %d bytes of memory", ErrOutOfBounds, len(data), offset, len(m.cells))
	}

	copy(m.cells[offset:], data)
	return nil
}

// Reset zeroes every cell
func (m *RAM) Reset() {
	m.cells = [Size]byte{}
}

// Bytes returns a copy of the memory contents
func (m *RAM) Bytes() []byte {
	out := make([]byte, len(m.cells))
	copy(out, m.cells[:])
	return out
}

// Dump renders length cells starting at start as 8 character binary strings.
// The range is clamped to the memory size, so Dump never fails.
func (m *RAM) Dump(start int, length int) []string {
	if start < 0 || start >= len(m.cells) || length <= 0 {
		return []string{}
	}

	end := len(m.cells)
	if length < end-start {
		end = start + length
	}

	return utils.Map(m.cells[start:end], utils.FormatByte)
}
