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


package assembler_test

import (
	"reflect"
	"testing"

	"github.com/lassandro/gomicro1/pkg/assembler"
)

func TestSymbolFirstDefinitionWins(t *testing.T) {
	rows := []assembler.Row{
		{Label: "X", Address: 10},
		{Label: "", Address: 15},
		{Label: "X", Address: 20},
		{Label: "Y", Address: 30},
	}

	have := assembler.BuildSymbolTable(rows)
	want := assembler.SymbolTable{"X": 10, "Y": 30}

	if !reflect.DeepEqual(want, have) {
		t.Fatalf("Symbol table mismatch\nwant:%v\nhave:%v", want, have)
	}
}

func TestSymbolIdempotence(t *testing.T) {
	rows := parse(t, source("A: HLT", "B: DS 2", "A: NOP", "C: B A"))

	first := assembler.BuildSymbolTable(rows)
	second := assembler.BuildSymbolTable(rows)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Symbol table changed\nwant:%v\nhave:%v", first, second)
	}

	if want, have := []string{"A", "B", "C"}, first.Names(); !reflect.DeepEqual(want, have) {
		t.Fatalf("Name order mismatch\nwant:%v\nhave:%v", want, have)
	}
}

func TestSymbolUndefined(t *testing.T) {
	rows := parse(t, source("B *+1", "B GONE", "DC THERE", "THERE: HLT"))
	symbols := assembler.BuildSymbolTable(rows)

	want := []bool{false, false, true, false, false, false}

	for i, row := range rows {
		if have := symbols.IsUndefined(row); have != want[i] {
			t.Fatalf(
				"Undefined check mismatch on row %d\nwant:%v\nhave:%v",
				i,
				want[i],
				have,
			)
		}
	}

	if errs := symbols.Unresolved(rows); len(errs) != 1 {
		t.Fatalf("Unresolved count mismatch\nwant:1\nhave:%d", len(errs))
	}
}

func TestDebugTable(t *testing.T) {
	const text = "TITLE T\nA: HLT\nB: DS 2\n  BAD 1\nC: NOP\nEND\n"

	rows := parse(t, text)
	table := assembler.BuildDebugTable(rows, "prog.asm")

	wantSymbols := map[uint16]int{0: 2, 1: 3, 2: 3, 3: 5}
	wantLabels := map[uint16]string{0: "A", 1: "B", 3: "C"}

	if table.Source != "prog.asm" {
		t.Fatalf("Source mismatch\nwant:prog.asm\nhave:%s", table.Source)
	}

	if !reflect.DeepEqual(wantSymbols, table.Symbols) {
		t.Fatalf("Line map mismatch\nwant:%v\nhave:%v", wantSymbols, table.Symbols)
	}

	if !reflect.DeepEqual(wantLabels, table.Labels) {
		t.Fatalf("Label map mismatch\nwant:%v\nhave:%v", wantLabels, table.Labels)
	}
}
