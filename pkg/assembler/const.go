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

const (
	TOKEN_IDENT TokenKind = iota
	TOKEN_INTEGER
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_STAR
	TOKEN_CHARS
	TOKEN_QUOTE
	TOKEN_SIGN
	TOKEN_COMMA
	TOKEN_COLON
	TOKEN_EOL
	TOKEN_INVALID
)

const (
	GROUP_INVALID InstructionGroup = iota
	GROUP_1                        // ADD SUB AND OR XOR MULT DIV CMP EX
	GROUP_2                        // LC PUSH POP
	GROUP_3                        // SL SA SC BIX
	GROUP_4                        // LEA LX STX
	GROUP_5                        // L ST LA
	GROUP_6                        // BDIS BP BZ BM BC BNP BNZ BNM BNC B BI BSR
	GROUP_7                        // RIO WIO
	GROUP_8                        // RET NOP HLT
	GROUP_9                        // DC DS ORG
)

const (
	IMPORTANCE_INFO Importance = iota
	IMPORTANCE_WARNING
	IMPORTANCE_ERROR
)

// Pseudo statements outside the instruction groups
const (
	PSEUDO_TITLE = "TITLE"
	PSEUDO_END   = "END"
)

const (
	DIRECTIVE_DC  = "DC"
	DIRECTIVE_DS  = "DS"
	DIRECTIVE_ORG = "ORG"
)

// Device operands accepted by RIO and WIO
const (
	DEVICE_CR  = "CR"
	DEVICE_LPT = "LPT"
)

// The reference label meaning "address of the current instruction"
const CurrentAddress = "*"
