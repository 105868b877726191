package utils

const BitsPerByte = 8

// Returns the size in bits of n bytes
func Bits(bytes int) int {
	return bytes * BitsPerByte
}

// Returns bit n of a byte as 0 or 1
func Bit(value byte, n int) byte {
	return (value >> n) & 1
}
