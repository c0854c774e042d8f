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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lassandro/gomicro1/pkg/config"
)

type prompter interface {
	// Prints prompt and reads one line without its terminator
	Line(prompt string) (string, error)

	// Prints prompt and reads one answer character
	Key(prompt string) (byte, error)

	Close() error
}

// Prompts over any reader, one line per answer
type linePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func (p *linePrompter) Line(prompt string) (string, error) {
	io.WriteString(p.writer, prompt)

	line, err := p.reader.ReadString('\n')

	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Key(prompt string) (byte, error) {
	line, err := p.Line(prompt)

	if err != nil || line == "" {
		return 0, err
	}

	return line[0], nil
}

func (p *linePrompter) Close() error {
	return nil
}

// Prompts on a terminal: line editing with history, single keypress answers
type terminalPrompter struct {
	rl   *readline.Instance
	file *os.File
}

func newTerminalPrompter(file *os.File, stdout io.Writer, history string) (*terminalPrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:            history,
		DisableAutoSaveHistory: history == "",
		Stdout:                 stdout,
	})

	if err != nil {
		return nil, err
	}

	return &terminalPrompter{rl, file}, nil
}

func (p *terminalPrompter) Line(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)

	line, err := p.rl.Readline()

	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}

	return line, err
}

func (p *terminalPrompter) Key(prompt string) (byte, error) {
	io.WriteString(p.rl.Stdout(), prompt)

	key, err := readKey(p.file)

	if err != nil {
		return 0, err
	}

	fmt.Fprintf(p.rl.Stdout(), "%c\n", key)

	return key, nil
}

func (p *terminalPrompter) Close() error {
	return p.rl.Close()
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}

// Runs the interactive loop until the user declines to continue or the input
// ends
func shell(p prompter, stdout io.Writer, assemble func(string) bool) error {
	fmt.Fprintln(stdout, banner)

	for {
		fmt.Fprintln(stdout)
		filename, err := p.Line(" SOURCE FILE NAME ? ")

		if err != nil {
			return endOfInput(err)
		}

		fmt.Fprintln(stdout)

		if _, err := p.Line(" START ?"); err != nil {
			return endOfInput(err)
		}

		if assemble(filename) {
			fmt.Fprintln(stdout, " NORMAL TERMINATION !")
		}

		fmt.Fprintln(stdout)
		fmt.Fprint(stdout, " CONTINUE ? ")

		var answer byte

		for answer != 'y' && answer != 'n' {
			key, err := p.Key("(Y/N):")

			if err != nil {
				return endOfInput(err)
			}

			answer = toLower(key)
		}

		if answer == 'n' {
			return nil
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func interactive(stdin io.Reader, stdout io.Writer, cfg config.Config, job *assembly) error {
	var p prompter = &linePrompter{bufio.NewReader(stdin), stdout}

	if file, ok := stdin.(*os.File); ok && isTerminal(int(file.Fd())) {
		terminal, err := newTerminalPrompter(file, stdout, cfg.History)

		if err != nil {
			return err
		}

		p = terminal
	}

	defer p.Close()

	return shell(p, stdout, func(filename string) bool {
		return job.run(filename, true)
	})
}
