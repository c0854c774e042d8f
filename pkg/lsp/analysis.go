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


package lsp

import (
	"fmt"
	"strings"

	"github.com/lassandro/gomicro1/pkg/assembler"
	"github.com/lassandro/gomicro1/pkg/encoding"
)

const source = "micro1-as"

func tokenRange(token assembler.Token) Range {
	line := token.Row - 1

	return Range{
		Start: Position{line, token.Column},
		End:   Position{line, token.Column + max(token.Length, 1)},
	}
}

// Converts syntax errors, warnings and undefined references into protocol
// diagnostics
func Diagnostics(program *assembler.Program) []Diagnostic {
	diagnostics := make([]Diagnostic, 0)

	for _, row := range program.Rows {
		if row.IsError() || row.IsWarning() {
			token, ok := row.Offender()

			if !ok {
				continue
			}

			severity := SEVERITY_ERROR

			if row.IsWarning() {
				severity = SEVERITY_WARNING
			}

			diagnostics = append(diagnostics, Diagnostic{
				Range:    tokenRange(token),
				Severity: severity,
				Source:   source,
				Message:  row.Diagnostic.Message,
			})
		}

		if program.Symbols.IsUndefined(row) {
			token, _ := row.ReferenceToken()

			diagnostics = append(diagnostics, Diagnostic{
				Range:    tokenRange(token),
				Severity: SEVERITY_ERROR,
				Source:   source,
				Message: fmt.Sprintf(
					"Undefined reference to `%s`", row.Reference.Label,
				),
			})
		}
	}

	return diagnostics
}

// Describes the address and encoding of the row on the given zero-based line
func Describe(program *assembler.Program, line int) (string, bool) {
	for _, row := range program.Rows {
		first, ok := row.Token(0)

		if !ok || first.Row != line+1 {
			continue
		}

		if row.IsError() || row.IsUnplaced() {
			return "", false
		}

		word, err := program.Encode(row)

		if err != nil {
			return "", false
		}

		var builder strings.Builder

		fmt.Fprintf(
			&builder,
			"`%04X`: `%04X` (op `%X`, a `%d`, b `%d`, payload `%02X`)",
			row.Address,
			word.Value(),
			word.Opcode,
			word.FieldA,
			word.FieldB,
			word.Payload,
		)

		switch assembler.LookupGroup(row.Mnemonic()) {
		case assembler.GROUP_5, assembler.GROUP_6:
			displacement := int16(encoding.SignExtend(uint16(word.Payload), 8))

			fmt.Fprintf(
				&builder,
				"\n\ndisplacement %+d, target `%04X`",
				displacement,
				uint16(int(row.Address)+int(displacement)),
			)
		}

		if size := row.Size(); size > 1 {
			fmt.Fprintf(
				&builder,
				"\n\nreserves `%04X`-`%04X`",
				row.Address,
				row.Address+size-1,
			)
		}

		return builder.String(), true
	}

	return "", false
}
