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


package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lassandro/gomicro1/pkg/config"
)

// Default panics when the embedded schema fails to compile, so this also
// guards the schema text itself
func TestDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Default panicked\nwant:<nil>\nhave:%v", r)
		}
	}()

	want := config.Config{
		ObjectExt:  ".b",
		ListingExt: ".a",
		Log:        config.Log{Level: "info"},
	}

	if have := config.Default(); have != want {
		t.Fatalf("Default mismatch\nwant:%+v\nhave:%+v", want, have)
	}
}

func TestParse(t *testing.T) {
	const source = `
listing: true
objectExt: ".obj"
log: level: "debug"
`

	have, err := config.Parse([]byte(source), "test.cue")

	if err != nil {
		t.Fatal(err)
	}

	want := config.Config{
		Listing:    true,
		ObjectExt:  ".obj",
		ListingExt: ".a",
		Log:        config.Log{Level: "debug"},
	}

	if have != want {
		t.Fatalf("Config mismatch\nwant:%+v\nhave:%+v", want, have)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		Name   string
		Source string
	}{
		{"Unknown field", "verbose: true\n"},
		{"Wrong type", "listing: \"yes\"\n"},
		{"Bad extension", "objectExt: \"b\"\n"},
		{"Bad level", "log: level: \"trace\"\n"},
		{"Syntax", "listing: {\n"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if _, err := config.Parse([]byte(test.Source), "bad.cue"); err == nil {
				t.Fatalf("%s accepted\nwant:error\nhave:<nil>", test.Source)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")

	if err := os.WriteFile(path, []byte("debugSymbols: true\n"), 0666); err != nil {
		t.Fatal(err)
	}

	have, err := config.Load(path)

	if err != nil {
		t.Fatal(err)
	}

	if !have.DebugSymbols {
		t.Fatalf("Config mismatch\nwant:DebugSymbols=true\nhave:%+v", have)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.cue")); err == nil {
		t.Fatal("Missing explicit config accepted")
	}
}
