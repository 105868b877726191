package logic

import "github.com/Manu343726/micro8/pkg/utils"

// HalfAdder adds two single bit values, returning sum and carry
func HalfAdder(a, b uint8) (sum uint8, carry uint8) {
	return Xor(a, b) & 1, And(a, b) & 1
}

// FullAdder adds two single bit values plus an incoming carry
func FullAdder(a, b, carryIn uint8) (sum uint8, carryOut uint8) {
	partial, c1 := HalfAdder(a, b)
	sum, c2 := HalfAdder(partial, carryIn)
	return sum, Or(c1, c2) & 1
}

// Add is an 8 bit ripple-carry adder. The final carry is discarded, so the
// result wraps modulo 256.
func Add(a, b uint8) uint8 {
	var result, carry uint8

	for bit := range utils.Bits(1) {
		var sum uint8
		sum, carry = FullAdder(utils.Bit(a, bit), utils.Bit(b, bit), carry)
		result |= sum << bit
	}

	return result
}
