// Package logic implements the 8-bit logic gates the machine is built from.
//
// Every function is pure: operands are plain byte values and there are no
// error conditions.
package logic

func And(a, b uint8) uint8 {
	return a & b
}

func Or(a, b uint8) uint8 {
	return a | b
}

func Xor(a, b uint8) uint8 {
	return a ^ b
}

func Not(a uint8) uint8 {
	return ^a & 0xFF
}

func Nand(a, b uint8) uint8 {
	return Not(And(a, b))
}

func Nor(a, b uint8) uint8 {
	return Not(Or(a, b))
}

// Gate is a two input, one output 8-bit logic function
type Gate func(a, b uint8) uint8
