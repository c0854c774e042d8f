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
	"sort"
)

// Folds the rows into a label -> address table. When a label is defined more
// than once the first definition wins and later ones are ignored.
func BuildSymbolTable(rows []Row) SymbolTable {
	symbols := make(SymbolTable)

	for _, row := range rows {
		if row.Label == "" {
			continue
		}

		if _, exists := symbols[row.Label]; !exists {
			symbols[row.Label] = row.Address
		}
	}

	return symbols
}

// Label names in ascending order
func (symbols SymbolTable) Names() []string {
	names := make([]string, 0, len(symbols))

	for name := range symbols {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Reports whether the row refers to a label missing from the table
func (symbols SymbolTable) IsUndefined(row Row) bool {
	if !row.HasSymbolReference() {
		return false
	}

	_, exists := symbols[row.Reference.Label]

	return !exists
}

// Collects one error per row whose reference cannot be resolved
func (symbols SymbolTable) Unresolved(rows []Row) []error {
	var errs []error

	for _, row := range rows {
		if !symbols.IsUndefined(row) {
			continue
		}

		token, _ := row.ReferenceToken()

		errs = append(
			errs,
			&UnresolvedSymbolError{token.Position(), row.Reference.Label},
		)
	}

	return errs
}

// Maps every occupied address back to its source line and every defined label
// to its address, for use by a debugger or disassembler
func BuildDebugTable(rows []Row, source string) DebugTable {
	table := DebugTable{
		Source:  source,
		Symbols: make(map[uint16]int),
		Labels:  make(map[uint16]string),
	}

	for _, row := range rows {
		token, ok := row.Token(0)

		if !ok || row.IsError() {
			continue
		}

		for i := uint16(0); i < row.Size(); i++ {
			table.Symbols[row.Address+i] = token.Row
		}
	}

	symbols := BuildSymbolTable(rows)

	for _, label := range symbols.Names() {
		if address := symbols[label]; table.Labels[address] == "" {
			table.Labels[address] = label
		}
	}

	return table
}
