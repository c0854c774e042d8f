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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lassandro/gomicro1/pkg/config"
	"github.com/lassandro/gomicro1/pkg/logs"
	"github.com/lassandro/gomicro1/pkg/lsp"
)

const Version = "1.0.0.0"

const banner = "   *** MICRO-1 ASSEMBLER (Ver. " + Version + ")  ***"

const usage = `Usage: micro1-as                (interactive mode)
 Or  : micro1-as <source_code>  (command mode)
 Or  : micro1-as (-v|--version) (print version)
 Or  : micro1-as (-h|--help)    (help mode; print this message)`

// Returned when a failure has already been reported to the user
var errFailed = errors.New("assembly failed")

type options struct {
	configPath string
	logLevel   string
	logFile    string
	out        string
	inspect    string
	listing    bool
	debug      bool
	dump       bool
	lsp        bool
}

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error {
	return nil
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "micro1-as [source_code]",
		Short:         "Two-pass assembler for the MICRO-1 computer",
		Long:          usage,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.SetVersionTemplate(banner + "\n")
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()

	flags.BoolVar(
		&opts.listing, "listing", false,
		"Write a listing file next to the source in command mode",
	)
	flags.BoolVar(
		&opts.debug, "debug", false,
		"Write a debug symbol table next to the object file with "+
			"extension '.m1db'",
	)
	flags.StringVar(
		&opts.out, "out", "",
		"Specifies a precise name for the object file, "+
			"overriding the default means of determining it",
	)
	flags.StringVar(
		&opts.configPath, "config", "",
		"Configuration file (default "+config.DefaultFile+" when present)",
	)
	flags.StringVar(
		&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)",
	)
	flags.StringVar(
		&opts.logFile, "log-file", "", "Append JSON log records to this file",
	)
	flags.BoolVar(
		&opts.dump, "dump", false,
		"Pretty-print the parsed program or the inspected image",
	)
	flags.BoolVar(
		&opts.lsp, "lsp", false, "Serve the language server protocol on stdio",
	)
	flags.StringVar(
		&opts.inspect, "inspect", "", "Print the contents of an object file",
	)

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := config.Load(opts.configPath)

	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("listing") {
		cfg.Listing = opts.listing
	}

	if flags.Changed("debug") {
		cfg.DebugSymbols = opts.debug
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}

	logger, closeLog, err := logs.Open(
		cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.File,
	)

	if err != nil {
		return err
	}

	defer closeLog()

	job := &assembly{
		config: cfg,
		out:    opts.out,
		dump:   opts.dump,
		logger: logger,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		color:  isTerminalWriter(cmd.ErrOrStderr()),
	}

	switch {
	case opts.lsp:
		logger.Debug("serving language server", "name", lsp.Name)
		return lsp.Serve(
			cmd.Context(),
			stdio{cmd.InOrStdin(), cmd.OutOrStdout()},
			logger,
		)
	case opts.inspect != "":
		return inspect(opts.inspect, opts.dump, cmd.OutOrStdout(), logger)
	case len(args) == 0:
		return interactive(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, job)
	}

	if !job.run(args[0], false) {
		return errFailed
	}

	return nil
}

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
