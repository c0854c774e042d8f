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


package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

type Logger = *slog.Logger

func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level

	if name == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("Invalid log level %q", name)
	}

	return level, nil
}

// Fans records out to a text handler on the terminal and, when file is not
// nil, a JSON handler on the log file. The file always receives every level.
func New(terminal io.Writer, level slog.Leveler, file io.Writer) Logger {
	handlers := []slog.Handler{
		slog.NewTextHandler(terminal, &slog.HandlerOptions{Level: level}),
	}

	if file != nil {
		handlers = append(
			handlers,
			slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// Opens the optional log file in append mode and builds the logger. The
// returned close function is never nil.
func Open(terminal io.Writer, levelName, path string) (Logger, func() error, error) {
	level, err := ParseLevel(levelName)

	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		return New(terminal, level, nil), func() error { return nil }, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)

	if err != nil {
		return nil, nil, err
	}

	return New(terminal, level, file), file.Close, nil
}

// A logger that drops everything, for library callers without one
func Discard() Logger {
	return slog.New(slog.DiscardHandler)
}
