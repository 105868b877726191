package utils

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Formats an unsigned value into a fixed width binary string of n bits
func FormatBinary[T constraints.Unsigned](value T, bits int) string {
	return fmt.Sprintf("%0*b", bits, uint64(value))
}

// Formats an unsigned value into a "0x" prefixed, fixed width hex string of n digits
func FormatHex[T constraints.Unsigned](value T, digits int) string {
	return fmt.Sprintf("0x%0*X", digits, uint64(value))
}

// Formats a byte as the 8 character binary string used across the machine diagnostics
func FormatByte(value byte) string {
	return FormatBinary(value, BitsPerByte)
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}

// Formats a byte sequence as space separated two digit hex values
func FormatBytesHex(data []byte) string {
	return FormatSlice(Map(data, func(b byte) string { return fmt.Sprintf("%02X", b) }), " ")
}
