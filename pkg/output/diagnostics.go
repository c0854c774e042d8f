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

// Prints each syntax error as "row:column: message" followed by the source
// line and a marker under the offending token, then one line per undefined
// reference. Warnings are printed the same way with a "warning: " prefix.
// Color wraps the marker in red, or yellow for warnings.
func WriteDiagnostics(w io.Writer, program *assembler.Program, color bool) error {
	for _, row := range program.Rows {
		if !row.IsError() && !row.IsWarning() {
			continue
		}

		message := row.Diagnostic.Message
		marker := "\033[31m"

		if row.IsWarning() {
			message = "warning: " + message
			marker = "\033[33m"
		}

		token, ok := row.Offender()

		if !ok {
			if _, err := fmt.Fprintln(w, message); err != nil {
				return err
			}

			continue
		}

		position := token.Position()
		underline := Underline(token)

		if color {
			underline = marker + underline + "\033[0m"
		}

		if _, err := fmt.Fprintf(
			w,
			"%d:%d: %s\n%s\n%s\n",
			position.Line,
			position.Column,
			message,
			token.Line,
			underline,
		); err != nil {
			return err
		}
	}

	for _, row := range program.Rows {
		if !program.Symbols.IsUndefined(row) {
			continue
		}

		token, _ := row.ReferenceToken()

		if _, err := fmt.Fprintf(
			w,
			"%d: Undefined reference to `%s`\n",
			token.Row,
			row.Reference.Label,
		); err != nil {
			return err
		}
	}

	return nil
}

// Marks a token's extent in its source line, i.e. "    ^~~~". Tabs before
// the token are kept so the marker lines up in a terminal.
func Underline(token assembler.Token) string {
	var builder strings.Builder

	for i := 0; i < token.Column && i < len(token.Line); i++ {
		if token.Line[i] == '\t' {
			builder.WriteByte('\t')
		} else {
			builder.WriteByte(' ')
		}
	}

	builder.WriteByte('^')
	builder.WriteString(strings.Repeat("~", max(token.Length, 1)-1))

	return builder.String()
}
