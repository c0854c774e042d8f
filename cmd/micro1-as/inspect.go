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


package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/lassandro/gomicro1/pkg/assembler"
	"github.com/lassandro/gomicro1/pkg/image"
)

type span struct {
	start uint16
	count uint16
}

// Groups the loaded addresses of img into ascending runs of consecutive words
func spans(img *image.Image) []span {
	cells := img.Words()

	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Address < cells[j].Address
	})

	var result []span

	for _, cell := range cells {
		last := len(result) - 1

		if last >= 0 &&
			uint32(result[last].start)+uint32(result[last].count) ==
				uint32(cell.Address) {
			result[last].count++
			continue
		}

		result = append(result, span{cell.Address, 1})
	}

	return result
}

func readDebugTable(filename string) (*assembler.DebugTable, []string, error) {
	file, err := os.Open(removeExtension(filename) + debugExt)

	if err != nil {
		return nil, nil, err
	}

	defer file.Close()

	table, err := image.ReadDebugTable(file)

	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(table.Source)

	if err != nil {
		return table, nil, nil
	}

	return table, strings.Split(string(content), "\n"), nil
}

func inspect(filename string, dump bool, w io.Writer, logger *slog.Logger) error {
	file, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer file.Close()

	img, err := image.ReadObject(file)

	if err != nil {
		return err
	}

	if dump {
		prettyPrint(w, img.Words())
	}

	if _, err := io.WriteString(w, img.Title+"\n"); err != nil {
		return err
	}

	for _, block := range spans(img) {
		img.Dump(w, block.start, block.count)
	}

	table, source, err := readDebugTable(filename)

	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		logger.Warn("cannot read symbol table", "error", err)
		return nil
	}

	io.WriteString(w, "\n")
	img.PrintSource(w, table, source)

	return nil
}
