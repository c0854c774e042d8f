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
	"bufio"
	"io"
)

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDecimalDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}

	return false
}

// Splits source text into classified tokens. Every physical line yields its
// tokens followed by exactly one TOKEN_EOL. Unclassifiable bytes become
// one-byte TOKEN_INVALID tokens.
func Tokenize(input io.Reader) ([]Token, error) {
	var tokens []Token
	var scanner = bufio.NewScanner(input)

	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for row := 1; scanner.Scan(); row++ {
		tokens = tokenizeLine(tokens, scanner.Text(), row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}

func tokenizeLine(tokens []Token, line string, row int) []Token {
	emit := func(kind TokenKind, column, length int) {
		tokens = append(tokens, Token{kind, line, row, column, length})
	}

	for column := 0; column < len(line); column++ {
		char := line[column]

		if isSpace(char) {
			continue
		}

		// Comments run to the end of the line
		if char == ';' {
			break
		}

		switch {
		case char == '(':
			emit(TOKEN_LPAREN, column, 1)
		case char == ')':
			emit(TOKEN_RPAREN, column, 1)
		case char == '*':
			emit(TOKEN_STAR, column, 1)
		case char == '+' || char == '-':
			emit(TOKEN_SIGN, column, 1)
		case char == ',':
			emit(TOKEN_COMMA, column, 1)
		case char == ':':
			emit(TOKEN_COLON, column, 1)
		case char == '"':
			emit(TOKEN_QUOTE, column, 1)

		// Character pair (i.e. 'AB or 'AB')
		case char == '\'':
			if column+2 >= len(line) {
				emit(TOKEN_INVALID, column, 1)
				break
			}

			length := 3
			if column+3 < len(line) && line[column+3] == '\'' {
				length = 4
			}

			emit(TOKEN_CHARS, column, length)
			column += length - 1

		// Integer (i.e. 37, 1F; hex digits may follow the leading digit)
		case isDecimalDigit(char):
			start := column
			for column+1 < len(line) && isHexDigit(line[column+1]) {
				column++
			}

			emit(TOKEN_INTEGER, start, column-start+1)

		// Identifier
		case isLetter(char):
			start := column
			for column+1 < len(line) &&
				(isLetter(line[column+1]) || isDecimalDigit(line[column+1])) {
				column++
			}

			emit(TOKEN_IDENT, start, column-start+1)

		default:
			emit(TOKEN_INVALID, column, 1)
		}
	}

	emit(TOKEN_EOL, len(line), 0)

	return tokens
}
