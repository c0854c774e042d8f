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
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gomicro1/pkg/assembler"
	"github.com/lassandro/gomicro1/pkg/encoding"
)

func New() *Image {
	img := new(Image)
	img.Reset()

	return img
}

func (img *Image) Reset() {
	for i := range img.Memory {
		img.Memory[i] = 0x0000
	}

	img.Title = ""
	img.order = nil
	img.loaded = make(map[uint16]bool)
}

// Parses an object file back into a memory image
func ReadObject(reader io.Reader) (*Image, error) {
	img := New()
	scanner := bufio.NewScanner(reader)

	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()

		if line == 1 {
			fields := strings.Fields(text)

			if len(fields) == 0 || fields[0] != ObjectMagic {
				return nil, &MalformedObjectError{line, text}
			}

			img.Title = strings.TrimSpace(strings.TrimPrefix(text, ObjectMagic))
			continue
		}

		fields := strings.Fields(text)

		if len(fields) == 0 {
			continue
		}

		if len(fields) != 2 ||
			!encoding.IsDigits(fields[0], 16) || len(fields[0]) > 4 ||
			!encoding.IsDigits(fields[1], 16) || len(fields[1]) > 4 {
			return nil, &MalformedObjectError{line, text}
		}

		address, _ := encoding.DecodeHex(fields[0])
		value, _ := encoding.DecodeHex(fields[1])

		img.Store(address, value)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if line == 0 {
		return nil, &MalformedObjectError{1, ""}
	}

	return img, nil
}

func (img *Image) Store(address, value uint16) {
	if !img.loaded[address] {
		img.loaded[address] = true
		img.order = append(img.order, address)
	}

	img.Memory[address] = value
}

func (img *Image) Loaded(address uint16) bool {
	return img.loaded[address]
}

// Every loaded word, in load order
func (img *Image) Words() []Cell {
	cells := make([]Cell, 0, len(img.order))

	for _, address := range img.order {
		cells = append(cells, Cell{address, img.Memory[address]})
	}

	return cells
}

// Prints count words starting at addr, four per line
func (img *Image) Dump(w io.Writer, addr, count uint16) {
	for i := uint16(0); i < count; i++ {
		current := addr + i

		if i%4 == 0 {
			if i != 0 {
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "[%04X]", current)
		}

		fmt.Fprintf(w, " %04X", img.Memory[current])
	}

	fmt.Fprintln(w)
}

// Prints every loaded word next to its fields and, when a debug table and the
// source lines are available, the line that produced it
func (img *Image) PrintSource(w io.Writer, table *assembler.DebugTable, source []string) {
	for _, cell := range img.Words() {
		word := assembler.Word{}
		word.Opcode, word.FieldA, word.FieldB, word.Payload = encoding.SplitWord(cell.Value)

		fmt.Fprintf(
			w,
			"[%04X] %04X  %X %d%d %02X",
			cell.Address,
			cell.Value,
			word.Opcode,
			word.FieldA,
			word.FieldB,
			word.Payload,
		)

		if table != nil {
			if label, exists := table.Labels[cell.Address]; exists {
				fmt.Fprintf(w, "  %s:", label)
			}

			if row, exists := table.Symbols[cell.Address]; exists &&
				row >= 1 && row <= len(source) {
				fmt.Fprintf(w, "  ; %d: %s", row, strings.TrimSpace(source[row-1]))
			}
		}

		fmt.Fprintln(w)
	}
}

func WriteDebugTable(w io.Writer, table assembler.DebugTable) error {
	return gob.NewEncoder(w).Encode(table)
}

func ReadDebugTable(r io.Reader) (*assembler.DebugTable, error) {
	var table assembler.DebugTable

	if err := gob.NewDecoder(r).Decode(&table); err != nil {
		return nil, err
	}

	return &table, nil
}
