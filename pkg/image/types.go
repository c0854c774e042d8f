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


package image

import (
	"fmt"
)

const MemorySize = 1 << 16

// Prefix of the first line of every object file
const ObjectMagic = "MM"

type Cell struct {
	Address uint16
	Value   uint16
}

// A 64K-word memory image loaded from an object file
type Image struct {
	Title  string
	Memory [MemorySize]uint16

	// Addresses in the order the object file listed them
	order  []uint16
	loaded map[uint16]bool
}

type MalformedObjectError struct {
	Line int
	Text string
}

func (err *MalformedObjectError) Error() string {
	return fmt.Sprintf("%d: Malformed object line %q", err.Line, err.Text)
}
