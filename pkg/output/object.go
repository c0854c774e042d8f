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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/lassandro/gomicro1/pkg/assembler"
)

// Checks that every row is error free and every reference resolves
func checkObject(program *assembler.Program) error {
	var count int

	for _, row := range program.Rows {
		if row.IsError() {
			count++
		}
	}

	if count > 0 {
		return &ErroneousRowsError{count}
	}

	for _, row := range program.Rows {
		if program.Symbols.IsUndefined(row) {
			token, _ := row.ReferenceToken()

			return &UndefinedReferenceError{token.Position(), row.Reference.Label}
		}
	}

	return nil
}

// Renders the object image: "MM <title>" followed by one "AAAA WWWW" line
// per occupied address
func Object(program *assembler.Program) ([]byte, error) {
	if err := checkObject(program); err != nil {
		return nil, err
	}

	buffer := new(bytes.Buffer)

	fmt.Fprintf(buffer, "MM %s\n", program.Title())

	for _, row := range program.Rows {
		size := row.Size()

		if size == 0 {
			continue
		}

		word, err := program.Encode(row)

		if err != nil {
			return nil, err
		}

		if row.Mnemonic() == assembler.DIRECTIVE_DS {
			for i := uint16(0); i < size; i++ {
				fmt.Fprintf(buffer, "%04X 0000\n", row.Address+i)
			}

			continue
		}

		fmt.Fprintf(buffer, "%04X %04X\n", row.Address, word.Value())
	}

	return buffer.Bytes(), nil
}

// Writes the object image, or nothing at all if the program cannot be
// fully encoded
func WriteObject(w io.Writer, program *assembler.Program) error {
	image, err := Object(program)

	if err != nil {
		return err
	}

	_, err = w.Write(image)

	return err
}

// Like WriteObject, but the file is only created once the image is complete
func WriteObjectFile(filename string, program *assembler.Program) error {
	image, err := Object(program)

	if err != nil {
		return err
	}

	return os.WriteFile(filename, image, 0666)
}
