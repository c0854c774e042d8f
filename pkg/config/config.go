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


package config

import (
	"errors"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Looked up in the working directory when no path is given
const DefaultFile = "micro1-as.cue"

// Closed schema; every field carries its default
const schema = `
listing:      bool | *false
objectExt:    =~"^\\.[A-Za-z0-9]+$" | *".b"
listingExt:   =~"^\\.[A-Za-z0-9]+$" | *".a"
debugSymbols: bool | *false
history:      string | *""
log: close({
	level: "debug" | "info" | "warn" | "error" | *"info"
	file:  string | *""
})
`

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Config struct {
	Listing      bool   `json:"listing"`
	ObjectExt    string `json:"objectExt"`
	ListingExt   string `json:"listingExt"`
	DebugSymbols bool   `json:"debugSymbols"`
	History      string `json:"history"`
	Log          Log    `json:"log"`
}

// The configuration used when no file exists
func Default() Config {
	config, err := Parse(nil, "")

	if err != nil {
		panic(err)
	}

	return config
}

// Validates CUE source against the schema and decodes it with defaults
// filled in
func Parse(content []byte, filename string) (Config, error) {
	var config Config

	ctx := cuecontext.New()
	spec := ctx.CompileString("close({" + schema + "})")

	if err := spec.Err(); err != nil {
		return config, err
	}

	value := ctx.CompileBytes(content, cue.Filename(filename))

	if err := value.Err(); err != nil {
		return config, err
	}

	unified := spec.Unify(value)

	if err := unified.Validate(); err != nil {
		return config, err
	}

	if err := unified.Decode(&config); err != nil {
		return config, err
	}

	return config, nil
}

// Reads the configuration at path. An empty path falls back to DefaultFile,
// which may be absent; an explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""

	if !explicit {
		path = DefaultFile
	}

	content, err := os.ReadFile(path)

	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}

	return Parse(content, path)
}
