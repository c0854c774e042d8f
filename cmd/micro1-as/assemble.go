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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/lassandro/gomicro1/pkg/assembler"
	"github.com/lassandro/gomicro1/pkg/config"
	"github.com/lassandro/gomicro1/pkg/image"
	"github.com/lassandro/gomicro1/pkg/logs"
	"github.com/lassandro/gomicro1/pkg/output"
)

const debugExt = ".m1db"

type assembly struct {
	config config.Config
	out    string
	dump   bool
	logger logs.Logger
	stdout io.Writer
	stderr io.Writer
	color  bool
}

func removeExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func prettyPrint(w io.Writer, value any) {
	printer := pp.New()
	printer.SetColoringEnabled(false)
	printer.Fprintln(w, value)
}

// Assembles filename and writes its object file. Interactive runs always write
// a listing and stay quiet otherwise; command runs print diagnostics instead.
// Returns whether the object file was written.
func (job *assembly) run(filename string, interactive bool) bool {
	file, err := os.Open(filename)

	if err != nil {
		fmt.Fprintln(job.stderr, "ERROR: FILE NOT FOUND")
		job.logger.Debug("cannot open source", "file", filename, "error", err)
		return false
	}

	defer file.Close()

	program, err := assembler.Assemble(file)

	if err != nil {
		job.logger.Error("cannot read source", "file", filename, "error", err)
		return false
	}

	job.logger.Debug(
		"assembled",
		"file", filename,
		"title", program.Title(),
		"rows", len(program.Rows),
		"labels", len(program.Symbols),
	)

	if job.dump {
		prettyPrint(job.stdout, program)
	}

	base := removeExtension(filename)

	if interactive || job.config.Listing {
		listing := base + job.config.ListingExt

		if err := os.WriteFile(
			listing, []byte(output.Listing(program)), 0666,
		); err != nil {
			job.logger.Error("cannot write listing", "file", listing, "error", err)
			return false
		}
	}

	if !interactive {
		if err := output.WriteDiagnostics(job.stderr, program, job.color); err != nil {
			job.logger.Warn("cannot write diagnostics", "error", err)
		}
	}

	object := job.out

	if object == "" {
		object = base + job.config.ObjectExt
	}

	if err := output.WriteObjectFile(object, program); err != nil {
		// Gating errors have already been shown as diagnostics or listing marks
		if program.OK() {
			job.logger.Error("cannot write object file", "file", object, "error", err)
		} else {
			job.logger.Debug("object file not written", "file", object, "error", err)
		}

		return false
	}

	if job.config.DebugSymbols {
		if err := job.writeDebugTable(filename, object, program); err != nil {
			job.logger.Error("cannot write symbol table", "error", err)
			return false
		}
	}

	return true
}

func (job *assembly) writeDebugTable(
	source, object string,
	program *assembler.Program,
) error {
	if absolute, err := filepath.Abs(source); err == nil {
		source = absolute
	}

	file, err := os.Create(removeExtension(object) + debugExt)

	if err != nil {
		return err
	}

	defer file.Close()

	return image.WriteDebugTable(
		file, assembler.BuildDebugTable(program.Rows, source),
	)
}
