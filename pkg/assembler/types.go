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
)

type TokenKind uint
type InstructionGroup uint
type Importance uint

type Cursor struct {
	Line   int
	Column int
	Size   int
}

// A lexical unit. The token text is a view into its source line.
type Token struct {
	Kind   TokenKind
	Line   string
	Row    int
	Column int
	Length int
}

func (token Token) Text() string {
	start := clamp(token.Column, 0, len(token.Line))
	end := clamp(token.Column+token.Length, start, len(token.Line))

	return token.Line[start:end]
}

// Position of the token with a 1-based column, as used in diagnostics
func (token Token) Position() Cursor {
	return Cursor{Line: token.Row, Column: token.Column + 1, Size: token.Length}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	} else if value > high {
		return high
	}

	return value
}

type DebugInfo struct {
	Importance Importance
	Message    string
	TokenIndex int
}

// An address operand awaiting resolution. Label is empty when the row has no
// reference, "*" for the current address, or a symbol name.
type ReferenceAddress struct {
	Label  string
	Offset int64
}

// One parsed logical source line. Tokens exclude any "label:" prefix, so the
// first token is always the mnemonic when present.
type Row struct {
	Label      string
	Address    uint16
	Tokens     []Token
	Diagnostic DebugInfo
	Reference  ReferenceAddress
}

func (row Row) Token(index int) (Token, bool) {
	if index < 0 || index >= len(row.Tokens) {
		return Token{}, false
	}

	return row.Tokens[index], true
}

func (row Row) Mnemonic() string {
	if token, ok := row.Token(0); ok {
		return token.Text()
	}

	return ""
}

// The full source line the row was parsed from
func (row Row) Source() string {
	if token, ok := row.Token(0); ok {
		return token.Line
	}

	return ""
}

func (row Row) IsError() bool {
	return row.Diagnostic.Importance == IMPORTANCE_ERROR
}

func (row Row) IsWarning() bool {
	return row.Diagnostic.Importance == IMPORTANCE_WARNING
}

// The token the diagnostic points at
func (row Row) Offender() (Token, bool) {
	return row.Token(row.Diagnostic.TokenIndex)
}

// Reports whether the row references a symbol that must be looked up
func (row Row) HasSymbolReference() bool {
	return row.Reference.Label != "" && row.Reference.Label != CurrentAddress
}

// Reports whether the row occupies no address (TITLE, ORG, END)
func (row Row) IsUnplaced() bool {
	switch row.Mnemonic() {
	case PSEUDO_TITLE, PSEUDO_END, DIRECTIVE_ORG:
		return true
	}

	return false
}

// Number of words the row occupies in the object image
func (row Row) Size() uint16 {
	if len(row.Tokens) == 0 || row.IsUnplaced() {
		return 0
	}

	if row.Mnemonic() == DIRECTIVE_DS {
		if size, err := decodeUnsigned(row.Tokens, 1); err == nil {
			return size
		}

		return 0
	}

	return 1
}

// Locates the token holding the reference label, for diagnostics
func (row Row) ReferenceToken() (Token, bool) {
	for _, token := range row.Tokens[min(1, len(row.Tokens)):] {
		if token.Text() == row.Reference.Label {
			return token, true
		}
	}

	return row.Token(0)
}

type SymbolTable map[string]uint16

// Debugger symbol table, written next to an object image
type DebugTable struct {
	Source  string
	Symbols map[uint16]int
	Labels  map[uint16]string
}

type TokenError interface {
	GetPosition() Cursor
}

type SyntaxError struct {
	Position Cursor
	Message  string
}

func (err *SyntaxError) GetPosition() Cursor {
	return err.Position
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf(
		"%d:%d: %s", err.Position.Line, err.Position.Column, err.Message,
	)
}

type UnresolvedSymbolError struct {
	Position Cursor
	Label    string
}

func (err *UnresolvedSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf(
		"%d:%d: Undefined reference to `%s`",
		err.Position.Line,
		err.Position.Column,
		err.Label,
	)
}

type InvalidRowError struct {
	Position Cursor
	Message  string
}

func (err *InvalidRowError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidRowError) Error() string {
	return fmt.Sprintf(
		"%d:%d: Cannot encode erroneous row: %s",
		err.Position.Line,
		err.Position.Column,
		err.Message,
	)
}

type InvalidOperandError struct {
	Position Cursor
	Received string
}

func (err *InvalidOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"%d:%d: Invalid operand '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

func (kind TokenKind) String() string {
	switch kind {
	case TOKEN_IDENT:
		return "Identifier"
	case TOKEN_INTEGER:
		return "Integer"
	case TOKEN_LPAREN:
		return "LeftParen"
	case TOKEN_RPAREN:
		return "RightParen"
	case TOKEN_STAR:
		return "Star"
	case TOKEN_CHARS:
		return "CharPair"
	case TOKEN_QUOTE:
		return "Quote"
	case TOKEN_SIGN:
		return "Sign"
	case TOKEN_COMMA:
		return "Comma"
	case TOKEN_COLON:
		return "Colon"
	case TOKEN_EOL:
		return "EndOfLine"
	}

	return "Invalid"
}

func (group InstructionGroup) String() string {
	if group == GROUP_INVALID || group > GROUP_9 {
		return "Invalid"
	}

	return fmt.Sprintf("Group%d", uint(group))
}

func (importance Importance) String() string {
	switch importance {
	case IMPORTANCE_INFO:
		return "Info"
	case IMPORTANCE_WARNING:
		return "Warning"
	case IMPORTANCE_ERROR:
		return "Error"
	}

	return "<invalid>"
}
