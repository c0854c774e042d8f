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


package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gomicro1/pkg/assembler"
)

const unplacedColumn = "             "
const blankWord = "        "

// Renders the assembly listing: one line per source row carrying tokens,
// annotated with its address and encoded word, followed by the error count
// and the label table
func Listing(program *assembler.Program) string {
	var builder strings.Builder
	var errors int

	for _, row := range program.Rows {
		if len(row.Tokens) == 0 {
			continue
		}

		// 'F'atal marker
		if row.IsError() || program.Symbols.IsUndefined(row) {
			builder.WriteString("F ")
			errors++
		} else {
			builder.WriteString("  ")
		}

		if row.IsUnplaced() {
			builder.WriteString(unplacedColumn)
			builder.WriteString(row.Source())
			builder.WriteByte('\n')
			continue
		}

		fmt.Fprintf(&builder, "%04X ", row.Address)

		word, err := program.Encode(row)

		switch {
		case row.IsError() || err != nil:
			builder.WriteString(blankWord)

		case row.Mnemonic() == assembler.DIRECTIVE_DS:
			builder.WriteString("0000    ")
			builder.WriteString(row.Source())
			builder.WriteByte('\n')

			for i := uint16(1); i < row.Size(); i++ {
				fmt.Fprintf(&builder, "  %04X 0000\n", row.Address+i)
			}

			continue

		case row.Mnemonic() == assembler.DIRECTIVE_DC:
			fmt.Fprintf(&builder, "%04X    ", word.Value())

		default:
			fmt.Fprintf(
				&builder,
				"%X %d%d %02X ",
				word.Opcode,
				word.FieldA,
				word.FieldB,
				word.Payload,
			)
		}

		builder.WriteString(row.Source())
		builder.WriteByte('\n')
	}

	builder.WriteString("\nTHERE ")

	switch errors {
	case 0:
		builder.WriteString("WERE NO ERRORS.")
	case 1:
		builder.WriteString("WAS 1 ERROR.")
	default:
		fmt.Fprintf(&builder, "WERE %d ERRORS.", errors)
	}

	builder.WriteString("\n\nLABEL(S)\n")

	labels := make([]string, 0, len(program.Symbols))

	for _, name := range program.Symbols.Names() {
		labels = append(
			labels, fmt.Sprintf("%s: %04X", name, program.Symbols[name]),
		)
	}

	builder.WriteString(strings.Join(labels, "    "))
	builder.WriteByte('\n')

	return builder.String()
}

func WriteListing(w io.Writer, program *assembler.Program) error {
	_, err := io.WriteString(w, Listing(program))

	return err
}
