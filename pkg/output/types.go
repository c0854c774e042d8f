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

	"github.com/lassandro/gomicro1/pkg/assembler"
)

// Returned when an object image is requested for a program that still
// contains syntax errors
type ErroneousRowsError struct {
	Count int
}

func (err *ErroneousRowsError) Error() string {
	if err.Count == 1 {
		return "Cannot write object image: 1 erroneous row"
	}

	return fmt.Sprintf(
		"Cannot write object image: %d erroneous rows", err.Count,
	)
}

type UndefinedReferenceError struct {
	Position assembler.Cursor
	Label    string
}

func (err *UndefinedReferenceError) GetPosition() assembler.Cursor {
	return err.Position
}

func (err *UndefinedReferenceError) Error() string {
	return fmt.Sprintf(
		"%d:%d: Cannot write object image: undefined reference to `%s`",
		err.Position.Line,
		err.Position.Column,
		err.Label,
	)
}
