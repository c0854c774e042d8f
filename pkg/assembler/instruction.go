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

// Bit pattern of a mnemonic before operand-dependent bits are inserted
// ---- [ op(4) | a(2) | b(2) | payload(8) ]
type Instruction struct {
	Group  InstructionGroup
	Opcode uint8
	FieldA uint8
	FieldB uint8
}

var instructions = map[string]Instruction{
	// Group 1: rb, nd[(ra)]
	"ADD":  {GROUP_1, 0x0, 0, 0},
	"SUB":  {GROUP_1, 0x1, 0, 0},
	"AND":  {GROUP_1, 0x2, 0, 0},
	"OR":   {GROUP_1, 0x3, 0, 0},
	"XOR":  {GROUP_1, 0x4, 0, 0},
	"MULT": {GROUP_1, 0x6, 0, 0},
	"DIV":  {GROUP_1, 0x7, 0, 0},
	"CMP":  {GROUP_1, 0x8, 0, 0},
	"EX":   {GROUP_1, 0xF, 0, 0},

	// Group 2: rb, unsigned nd
	"LC":   {GROUP_2, 0x9, 3, 0},
	"PUSH": {GROUP_2, 0xD, 0, 0},
	"POP":  {GROUP_2, 0xD, 1, 0},

	// Group 3: rb, signed nd
	"SL":  {GROUP_3, 0x5, 0, 0},
	"SA":  {GROUP_3, 0x5, 1, 0},
	"SC":  {GROUP_3, 0x5, 2, 0},
	"BIX": {GROUP_3, 0xD, 2, 0},

	// Group 4: rb, nd(ra) | rb, (ra)
	"LEA": {GROUP_4, 0xA, 0, 0},
	"LX":  {GROUP_4, 0xB, 0, 0},
	"STX": {GROUP_4, 0xC, 0, 0},

	// Group 5: rb, address
	"L":  {GROUP_5, 0x9, 0, 0},
	"ST": {GROUP_5, 0x9, 1, 0},
	"LA": {GROUP_5, 0x9, 2, 0},

	// Group 6: address; a and b select the branch condition
	"BDIS": {GROUP_6, 0xD, 3, 0},
	"BP":   {GROUP_6, 0xE, 0, 0},
	"BZ":   {GROUP_6, 0xE, 0, 1},
	"BM":   {GROUP_6, 0xE, 0, 2},
	"BC":   {GROUP_6, 0xE, 0, 3},
	"BNP":  {GROUP_6, 0xE, 1, 0},
	"BNZ":  {GROUP_6, 0xE, 1, 1},
	"BNM":  {GROUP_6, 0xE, 1, 2},
	"BNC":  {GROUP_6, 0xE, 1, 3},
	"B":    {GROUP_6, 0xE, 2, 0},
	"BI":   {GROUP_6, 0xE, 2, 1},
	"BSR":  {GROUP_6, 0xE, 2, 2},

	// Group 7: device
	"RIO": {GROUP_7, 0xE, 3, 0},
	"WIO": {GROUP_7, 0xE, 3, 1},

	// Group 8: no operands
	"RET": {GROUP_8, 0xE, 2, 3},
	"NOP": {GROUP_8, 0xE, 3, 2},
	"HLT": {GROUP_8, 0xE, 3, 3},

	// Group 9: the whole word is computed from the operand
	DIRECTIVE_DC:  {GROUP_9, 0, 0, 0},
	DIRECTIVE_DS:  {GROUP_9, 0, 0, 0},
	DIRECTIVE_ORG: {GROUP_9, 0, 0, 0},
}

// Returns the table entry for a mnemonic. Mnemonics are case sensitive;
// unknown ones yield an entry in GROUP_INVALID.
func LookupInstruction(mnemonic string) (Instruction, bool) {
	instruction, exists := instructions[mnemonic]

	return instruction, exists
}

func LookupGroup(mnemonic string) InstructionGroup {
	return instructions[mnemonic].Group
}

// Lists every mnemonic of a group, in no particular order
func Mnemonics(group InstructionGroup) []string {
	var result []string

	for mnemonic, instruction := range instructions {
		if instruction.Group == group {
			result = append(result, mnemonic)
		}
	}

	return result
}
