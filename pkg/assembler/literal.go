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


package assembler

import (
	"github.com/lassandro/gomicro1/pkg/encoding"
)

// Literal forms:
//   37          decimal integer
//   X"1F        hexadecimal (a closing quote is optional)
//   O"17        octal
//   B"101       binary
//   -12, +X"1F  signed forms

func tokenAt(tokens []Token, index int) (Token, bool) {
	if index < 0 || index >= len(tokens) {
		return Token{}, false
	}

	return tokens[index], true
}

func isKind(tokens []Token, index int, kind TokenKind) bool {
	token, ok := tokenAt(tokens, index)

	return ok && token.Kind == kind
}

func isDecimalToken(token Token) bool {
	return token.Kind == TOKEN_INTEGER && encoding.IsDigits(token.Text(), 10)
}

// Returns the number of tokens spanned by an unsigned literal starting at
// index, or 0 if there is none
func matchUnsigned(tokens []Token, index int) int {
	head, ok := tokenAt(tokens, index)

	if !ok {
		return 0
	}

	switch head.Kind {
	case TOKEN_INTEGER:
		if isDecimalToken(head) {
			return 1
		}
	case TOKEN_IDENT:
		base := encoding.PrefixBase(head.Text())

		if base == 0 || !isKind(tokens, index+1, TOKEN_QUOTE) {
			return 0
		}

		body, ok := tokenAt(tokens, index+2)

		if !ok || (body.Kind != TOKEN_INTEGER && body.Kind != TOKEN_IDENT) {
			return 0
		}

		if !encoding.IsDigits(body.Text(), base) {
			return 0
		}

		if isKind(tokens, index+3, TOKEN_QUOTE) {
			return 4
		}

		return 3
	}

	return 0
}

func matchSigned(tokens []Token, index int) int {
	if isKind(tokens, index, TOKEN_SIGN) {
		if span := matchUnsigned(tokens, index+1); span != 0 {
			return span + 1
		}

		return 0
	}

	return matchUnsigned(tokens, index)
}

// Matches "*" or a label, optionally followed by a sign and a decimal offset
func matchAddress(tokens []Token, index int) int {
	head, ok := tokenAt(tokens, index)

	if !ok || (head.Kind != TOKEN_STAR && head.Kind != TOKEN_IDENT) {
		return 0
	}

	if !isKind(tokens, index+1, TOKEN_SIGN) {
		return 1
	}

	if offset, ok := tokenAt(tokens, index+2); ok && isDecimalToken(offset) {
		return 3
	}

	return 0
}

func decodeUnsigned(tokens []Token, index int) (uint16, error) {
	span := matchUnsigned(tokens, index)

	if span == 0 {
		return 0, invalidOperand(tokens, index)
	}

	head := tokens[index]

	if head.Kind == TOKEN_INTEGER {
		return encoding.DecodeInt(head.Text())
	}

	return encoding.DecodeBase(
		tokens[index+2].Text(), encoding.PrefixBase(head.Text()),
	)
}

// Signed literals are returned as 16-bit two's complement
func decodeSigned(tokens []Token, index int) (uint16, error) {
	if !isKind(tokens, index, TOKEN_SIGN) {
		return decodeUnsigned(tokens, index)
	}

	value, err := decodeUnsigned(tokens, index+1)

	if err != nil {
		return 0, err
	}

	if tokens[index].Text() == "-" {
		value = encoding.Negate(value)
	}

	return value, nil
}

func decodeAddress(tokens []Token, index int) (ReferenceAddress, error) {
	span := matchAddress(tokens, index)

	if span == 0 {
		return ReferenceAddress{}, invalidOperand(tokens, index)
	}

	reference := ReferenceAddress{Label: tokens[index].Text()}

	if span == 3 {
		offset, err := encoding.DecodeInt(tokens[index+2].Text())

		if err != nil {
			return ReferenceAddress{}, invalidOperand(tokens, index+2)
		}

		reference.Offset = int64(offset)

		if tokens[index+1].Text() == "-" {
			reference.Offset = -reference.Offset
		}
	}

	return reference, nil
}

func decodeRegister(tokens []Token, index int) (uint8, error) {
	token, ok := tokenAt(tokens, index)

	if !ok || !isDecimalToken(token) {
		return 0, invalidOperand(tokens, index)
	}

	value, err := encoding.DecodeInt(token.Text())

	if err != nil {
		return 0, invalidOperand(tokens, index)
	}

	return uint8(value & 0x3), nil
}

func invalidOperand(tokens []Token, index int) error {
	if token, ok := tokenAt(tokens, index); ok {
		return &InvalidOperandError{token.Position(), token.Text()}
	}

	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		return &InvalidOperandError{last.Position(), ""}
	}

	return &InvalidOperandError{}
}
