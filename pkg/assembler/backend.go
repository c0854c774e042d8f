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
	"fmt"

	"github.com/lassandro/gomicro1/pkg/encoding"
)

// An encoded machine word split into its bit fields
// ---- [ op(4) | a(2) | b(2) | payload(8) ]
type Word struct {
	Opcode  uint8
	FieldA  uint8
	FieldB  uint8
	Payload uint8
}

func (word Word) Value() uint16 {
	return encoding.JoinWord(word.Opcode, word.FieldA, word.FieldB, word.Payload)
}

func splitWord(value uint16) Word {
	op, a, b, payload := encoding.SplitWord(value)

	return Word{op, a, b, payload}
}

// Computes the machine word of an Info row. Rows that occupy no word (blank
// lines, TITLE, END) encode to the zero Word.
func Encode(row Row, symbols SymbolTable) (Word, error) {
	if row.IsError() {
		position := Cursor{}

		if token, ok := row.Offender(); ok {
			position = token.Position()
		}

		return Word{}, &InvalidRowError{position, row.Diagnostic.Message}
	}

	if len(row.Tokens) == 0 {
		return Word{}, nil
	}

	mnemonic := row.Mnemonic()

	if mnemonic == PSEUDO_TITLE || mnemonic == PSEUDO_END {
		return Word{}, nil
	}

	instruction, _ := LookupInstruction(mnemonic)

	word := Word{
		Opcode: instruction.Opcode,
		FieldA: instruction.FieldA,
		FieldB: instruction.FieldB,
	}

	tokens := row.Tokens

	switch instruction.Group {
	// ADD  |0000    |ra |rb |nd              | rb, nd[(ra)]
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_1:
		rb, err := decodeRegister(tokens, 1)

		if err != nil {
			return Word{}, err
		}

		word.FieldB = rb
		index := 3

		if !isKind(tokens, index, TOKEN_LPAREN) {
			nd, err := decodeUnsigned(tokens, index)

			if err != nil {
				return Word{}, err
			}

			word.Payload = uint8(nd & 0xFF)
			index += matchUnsigned(tokens, index)
		}

		if isKind(tokens, index, TOKEN_LPAREN) {
			ra, err := decodeRegister(tokens, index+1)

			if err != nil {
				return Word{}, err
			}

			word.FieldA = ra
		}

	// LC   |1001    |11 |rb |nd              | rb, nd
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_2:
		rb, err := decodeRegister(tokens, 1)

		if err != nil {
			return Word{}, err
		}

		nd, err := decodeUnsigned(tokens, 3)

		if err != nil {
			return Word{}, err
		}

		word.FieldB = rb
		word.Payload = uint8(nd & 0xFF)

	// SL   |0101    |00 |rb |±nd             | rb, ±nd
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_3:
		rb, err := decodeRegister(tokens, 1)

		if err != nil {
			return Word{}, err
		}

		nd, err := decodeSigned(tokens, 3)

		if err != nil {
			return Word{}, err
		}

		word.FieldB = rb
		word.Payload = uint8(nd & 0xFF)

	// LEA  |1010    |ra |rb |±nd             | rb, ±nd(ra)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_4:
		rb, err := decodeRegister(tokens, 1)

		if err != nil {
			return Word{}, err
		}

		word.FieldB = rb
		index := 3

		if !isKind(tokens, index, TOKEN_LPAREN) {
			nd, err := decodeSigned(tokens, index)

			if err != nil {
				return Word{}, err
			}

			word.Payload = uint8(nd & 0xFF)
			index += matchSigned(tokens, index)
		}

		ra, err := decodeRegister(tokens, index+1)

		if err != nil {
			return Word{}, err
		}

		word.FieldA = ra

	// L    |1001    |00 |rb |disp            | rb, address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_5:
		rb, err := decodeRegister(tokens, 1)

		if err != nil {
			return Word{}, err
		}

		displacement, err := resolveRelative(row, symbols)

		if err != nil {
			return Word{}, err
		}

		word.FieldB = rb
		word.Payload = displacement

	// B    |1110    |10 |00 |disp            | address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_6:
		displacement, err := resolveRelative(row, symbols)

		if err != nil {
			return Word{}, err
		}

		word.Payload = displacement

	// RIO  |1110    |11 |00 |device          | CR | LPT | 0 | 1
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_7:
		device, ok := row.Token(1)

		if !ok {
			return Word{}, invalidOperand(tokens, 1)
		}

		switch device.Text() {
		case DEVICE_CR:
			word.Payload = 0
		case DEVICE_LPT:
			word.Payload = 1
		default:
			number, err := encoding.DecodeInt(device.Text())

			if err != nil {
				return Word{}, invalidOperand(tokens, 1)
			}

			word.Payload = uint8(number & 0xFF)
		}

	// HLT  |1110    |11 |11 |00000000        |
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_8:

	// DC   |value                            |
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case GROUP_9:
		value, err := encodeDirective(row, symbols)

		if err != nil {
			return Word{}, err
		}

		word = splitWord(value)

	default:
		panic(fmt.Sprintf(
			"%d: cannot encode %q in instruction group %v",
			row.Tokens[0].Row, mnemonic, instruction.Group,
		))
	}

	return word, nil
}

// Resolves the row's address operand to an 8-bit displacement from the row's
// own address. The displacement wraps modulo 256.
func resolveRelative(row Row, symbols SymbolTable) (uint8, error) {
	target := row.Address

	if row.Reference.Label != CurrentAddress {
		address, exists := symbols[row.Reference.Label]

		if !exists {
			token, _ := row.ReferenceToken()

			return 0, &UnresolvedSymbolError{
				token.Position(), row.Reference.Label,
			}
		}

		target = address
	}

	displacement := int64(target) + row.Reference.Offset - int64(row.Address)

	return uint8(displacement & 0xFF), nil
}

func encodeDirective(row Row, symbols SymbolTable) (uint16, error) {
	tokens := row.Tokens

	switch row.Mnemonic() {
	case DIRECTIVE_DC:
		if row.HasSymbolReference() {
			address, exists := symbols[row.Reference.Label]

			if !exists {
				token, _ := row.ReferenceToken()

				return 0, &UnresolvedSymbolError{
					token.Position(), row.Reference.Label,
				}
			}

			return address, nil
		}

		operand, ok := row.Token(1)

		if !ok {
			return 0, nil
		}

		if operand.Kind == TOKEN_CHARS {
			text := operand.Text()

			if len(text) < 3 {
				return 0, invalidOperand(tokens, 1)
			}

			return uint16(text[1])<<8 | uint16(text[2]), nil
		}

		return decodeSigned(tokens, 1)

	case DIRECTIVE_DS:
		return decodeUnsigned(tokens, 1)

	case DIRECTIVE_ORG:
		operand, ok := row.Token(1)

		if !ok {
			return 0, invalidOperand(tokens, 1)
		}

		return encoding.DecodeHex(operand.Text())
	}

	return 0, invalidOperand(tokens, 0)
}
