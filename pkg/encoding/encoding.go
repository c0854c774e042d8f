// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package encoding

import (
	"errors"
	"strconv"
)

const WordMask = 0xFFFF

// Reports whether s is a non-empty run of digits valid in the given base.
// Only bases 2, 8, 10 and 16 are recognized.
func IsDigits(s string, base int) bool {
	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isDigit(s[i], base) {
			return false
		}
	}

	return true
}

func isDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return '0' <= c && c <= '7'
	case 10:
		return '0' <= c && c <= '9'
	case 16:
		return ('0' <= c && c <= '9') ||
			('a' <= c && c <= 'f') ||
			('A' <= c && c <= 'F')
	}

	return false
}

// Maps a literal prefix (X, O, B) to its base, or 0 if the prefix is unknown
func PrefixBase(prefix string) int {
	switch prefix {
	case "X":
		return 16
	case "O":
		return 8
	case "B":
		return 2
	}

	return 0
}

// Decodes s in the given base, truncating the result to 16 bits
func DecodeBase(s string, base int) (uint16, error) {
	if !IsDigits(s, base) {
		return 0, errors.New("Invalid digits for base " + strconv.Itoa(base))
	}

	// Accumulate modulo 0x10000 so literals of any length keep their low bits
	var result uint32

	for i := 0; i < len(s); i++ {
		result = (result*uint32(base) + digitValue(s[i])) & WordMask
	}

	return uint16(result), nil
}

func digitValue(c byte) uint32 {
	switch {
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10
	}

	return uint32(c - '0')
}

// Decodes a base-10 string in the formats: 123, 0123
func DecodeInt(s string) (uint16, error) {
	return DecodeBase(s, 10)
}

// Decodes a hexadecimal string without prefix in the formats: 1F, 01f
func DecodeHex(s string) (uint16, error) {
	return DecodeBase(s, 16)
}

// Two's complement negation within a 16-bit word (0x10000 - value)
func Negate(value uint16) uint16 {
	return uint16((0x10000 - uint32(value)) & WordMask)
}

// Splits a word into its opcode, field A, field B and payload
// ---- [ op(4) | a(2) | b(2) | payload(8) ]
func SplitWord(word uint16) (uint8, uint8, uint8, uint8) {
	return uint8(word >> 12),
		uint8((word >> 10) & 0x3),
		uint8((word >> 8) & 0x3),
		uint8(word & 0xFF)
}

func JoinWord(op, a, b, payload uint8) uint16 {
	word := uint16(op & 0xF)
	word = (word << 2) | uint16(a&0x3)
	word = (word << 2) | uint16(b&0x3)
	word = (word << 8) | uint16(payload)

	return word
}

func SignExtend(value uint16, bitcount uint16) uint16 {
	if (value>>(bitcount-1))&0x1 == 1 {
		value |= (0xFFFF << bitcount)
	}

	return value
}
