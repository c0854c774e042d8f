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
	"io"
)

// The result of both assembler passes over one source file
type Program struct {
	Rows    []Row
	Symbols SymbolTable
}

// Runs the lexer, the parser and the symbol pass over a source file. Syntax
// errors and undefined references do not fail assembly; they are reported by
// Program.Errors. Only a failure to read input is returned.
func Assemble(input io.Reader) (*Program, error) {
	tokens, err := Tokenize(input)

	if err != nil {
		return nil, err
	}

	rows := Parse(tokens)

	return &Program{Rows: rows, Symbols: BuildSymbolTable(rows)}, nil
}

// The name given by the TITLE statement
func (program *Program) Title() string {
	for _, row := range program.Rows {
		if row.Mnemonic() != PSEUDO_TITLE {
			continue
		}

		if name, ok := row.Token(1); ok && name.Kind == TOKEN_IDENT {
			return name.Text()
		}
	}

	return ""
}

// Syntax errors in source order, followed by undefined references
func (program *Program) Errors() []error {
	var errs []error

	for _, row := range program.Rows {
		if !row.IsError() {
			continue
		}

		position := Cursor{}

		if token, ok := row.Offender(); ok {
			position = token.Position()
		}

		errs = append(errs, &SyntaxError{position, row.Diagnostic.Message})
	}

	return append(errs, program.Symbols.Unresolved(program.Rows)...)
}

// Reports whether the program can be turned into an object image
func (program *Program) OK() bool {
	for _, row := range program.Rows {
		if row.IsError() || program.Symbols.IsUndefined(row) {
			return false
		}
	}

	return true
}

func (program *Program) Encode(row Row) (Word, error) {
	return Encode(row, program.Symbols)
}
