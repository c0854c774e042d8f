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
	"github.com/lassandro/gomicro1/pkg/encoding"
)

type parserState uint

// Grammar positions: label -> colon -> opcode -> operands -> end of line
const (
	STATE_WAIT_TITLE parserState = iota
	STATE_TITLE_NAME
	STATE_TITLE_EOL
	STATE_LABEL
	STATE_OPCODE
	STATE_RB
	STATE_COMMA
	STATE_OP1_OPERAND
	STATE_OP1_NEXT_OPERAND
	STATE_OP1_RA
	STATE_OP1_RPAREN
	STATE_OP2_OPERAND
	STATE_OP3_OPERAND
	STATE_OP4_OPERAND
	STATE_OP4_LPAREN
	STATE_OP4_RA
	STATE_OP4_RPAREN
	STATE_OP5_ADDRESS
	STATE_OP6_ADDRESS
	STATE_OP7_DEVICE
	STATE_DC_OPERAND
	STATE_DS_OPERAND
	STATE_ORG_OPERAND
	STATE_INST_EOL
	STATE_END_EOL
	STATE_FINAL
)

type parser struct {
	tokens []Token
	index  int
	state  parserState

	label     string
	mnemonic  string
	group     InstructionGroup
	address   uint16
	reference ReferenceAddress
	line      []Token

	rows []Row
}

// Recognizes a token stream and returns one Row per logical source line.
// Syntax errors never abort parsing: the offending line becomes an Error row
// and recognition resumes at the next line.
func Parse(tokens []Token) []Row {
	p := parser{tokens: tokens, state: STATE_WAIT_TITLE}

	for p.index < len(p.tokens) && p.state != STATE_FINAL {
		p.step(p.tokens[p.index])
	}

	p.finish()

	return p.rows
}

// Appends the next count tokens to the current line
func (p *parser) take(count int) {
	for i := 0; i < count && p.index < len(p.tokens); i++ {
		p.line = append(p.line, p.tokens[p.index])
		p.index++
	}
}

func (p *parser) last() Token {
	return p.line[len(p.line)-1]
}

func (p *parser) push(row Row) {
	p.rows = append(p.rows, row)
	p.line = nil
}

// Emits an Info row for an empty or comment-only line
func (p *parser) blank() {
	p.push(Row{Address: p.address})
	p.index++
}

func (p *parser) accept() {
	p.push(Row{
		Label:     p.label,
		Address:   p.address,
		Tokens:    p.line,
		Reference: p.reference,
	})
}

// Emits an Error row pointing at the last token taken and discards the rest
// of the line
func (p *parser) fail(message string) {
	p.failTo(message, STATE_LABEL)
}

func (p *parser) failTo(message string, next parserState) {
	atEOL := p.last().Kind == TOKEN_EOL

	p.push(Row{
		Label:   p.label,
		Address: p.address,
		Tokens:  p.line,
		Diagnostic: DebugInfo{
			Importance: IMPORTANCE_ERROR,
			Message:    message,
			TokenIndex: len(p.line) - 1,
		},
	})

	if !atEOL {
		for p.index < len(p.tokens) && p.tokens[p.index].Kind != TOKEN_EOL {
			p.index++
		}

		p.index++
	}

	p.state = next
}

// Finishes an instruction line and advances the location counter
func (p *parser) complete() {
	operand := p.last()

	p.accept()
	p.state = STATE_LABEL

	next := uint32(p.address)

	switch p.mnemonic {
	case DIRECTIVE_ORG:
		if origin, err := encoding.DecodeHex(operand.Text()); err == nil {
			next = uint32(origin)
		}
	case DIRECTIVE_DS:
		if size, err := encoding.DecodeInt(operand.Text()); err == nil {
			next += uint32(size)
		}
	default:
		next++
	}

	if next > encoding.WordMask {
		p.rows[len(p.rows)-1].Diagnostic = DebugInfo{
			Importance: IMPORTANCE_WARNING,
			Message:    "Location counter wraps around to 0000.",
		}
	}

	p.address = uint16(next & encoding.WordMask)
}

func (p *parser) step(token Token) {
	switch p.state {
	case STATE_WAIT_TITLE:
		if token.Kind == TOKEN_EOL {
			p.blank()
		} else if token.Kind == TOKEN_IDENT && token.Text() == PSEUDO_TITLE {
			p.take(1)
			p.state = STATE_TITLE_NAME
		} else {
			p.take(1)
			p.fail(`Required "TITLE".`)
		}

	case STATE_TITLE_NAME:
		p.take(1)

		if token.Kind == TOKEN_IDENT {
			p.state = STATE_TITLE_EOL
		} else {
			p.fail("Required title name.")
		}

	case STATE_TITLE_EOL:
		if token.Kind == TOKEN_EOL {
			p.index++
			p.accept()
			p.state = STATE_LABEL
		} else {
			p.take(1)
			p.fail("Too many tokens.")
		}

	case STATE_LABEL:
		p.label = ""
		p.mnemonic = ""
		p.group = GROUP_INVALID
		p.reference = ReferenceAddress{}

		if token.Kind == TOKEN_EOL {
			p.blank()
		} else if token.Kind == TOKEN_IDENT {
			// "label:" prefix; otherwise the identifier is reread as opcode
			if isKind(p.tokens, p.index+1, TOKEN_COLON) {
				p.label = token.Text()
				p.index += 2
			}

			p.state = STATE_OPCODE
		} else {
			p.take(1)
			p.fail("Required label name or opecode.")
		}

	case STATE_OPCODE:
		p.take(1)

		if token.Kind != TOKEN_IDENT {
			p.fail("Required opecode.")
			break
		}

		p.mnemonic = token.Text()
		p.group = LookupGroup(p.mnemonic)

		switch p.group {
		case GROUP_1, GROUP_2, GROUP_3, GROUP_4, GROUP_5:
			p.state = STATE_RB
		case GROUP_6:
			p.state = STATE_OP6_ADDRESS
		case GROUP_7:
			p.state = STATE_OP7_DEVICE
		case GROUP_8:
			p.state = STATE_INST_EOL
		case GROUP_9:
			switch p.mnemonic {
			case DIRECTIVE_DC:
				p.state = STATE_DC_OPERAND
			case DIRECTIVE_DS:
				p.state = STATE_DS_OPERAND
			default:
				p.state = STATE_ORG_OPERAND
			}
		default:
			if p.mnemonic == PSEUDO_END {
				p.state = STATE_END_EOL
			} else {
				p.fail("Unknown opecode.")
			}
		}

	case STATE_RB:
		p.take(1)

		if isDecimalToken(token) {
			p.state = STATE_COMMA
		} else {
			p.fail("Required integer for rb register.")
		}

	case STATE_COMMA:
		p.take(1)

		if token.Kind != TOKEN_COMMA {
			p.fail("Required comma.")
			break
		}

		switch p.group {
		case GROUP_1:
			p.state = STATE_OP1_OPERAND
		case GROUP_2:
			p.state = STATE_OP2_OPERAND
		case GROUP_3:
			p.state = STATE_OP3_OPERAND
		case GROUP_4:
			p.state = STATE_OP4_OPERAND
		default:
			p.state = STATE_OP5_ADDRESS
		}

	case STATE_OP1_OPERAND:
		if token.Kind == TOKEN_LPAREN {
			p.take(1)
			p.state = STATE_OP1_RA
		} else if span := matchUnsigned(p.tokens, p.index); span != 0 {
			p.take(span)
			p.state = STATE_OP1_NEXT_OPERAND
		} else {
			p.take(1)
			p.fail("Required unsigned integer.")
		}

	case STATE_OP1_NEXT_OPERAND:
		if token.Kind == TOKEN_LPAREN {
			p.take(1)
			p.state = STATE_OP1_RA
		} else if token.Kind == TOKEN_EOL {
			p.index++
			p.complete()
		} else {
			p.take(1)
			p.fail("Required an end of line or a left parenthesis.")
		}

	case STATE_OP1_RA, STATE_OP4_RA:
		p.take(1)

		if !isDecimalToken(token) {
			p.fail("Required integer for ra register.")
		} else if p.state == STATE_OP1_RA {
			p.state = STATE_OP1_RPAREN
		} else {
			p.state = STATE_OP4_RPAREN
		}

	case STATE_OP1_RPAREN, STATE_OP4_RPAREN:
		p.take(1)

		if token.Kind == TOKEN_RPAREN {
			p.state = STATE_INST_EOL
		} else {
			p.fail("Required a right parenthesis.")
		}

	case STATE_OP2_OPERAND:
		if span := matchUnsigned(p.tokens, p.index); span != 0 {
			p.take(span)
			p.state = STATE_INST_EOL
		} else {
			p.take(1)
			p.fail("Required unsigned integer.")
		}

	case STATE_OP3_OPERAND:
		if span := matchSigned(p.tokens, p.index); span != 0 {
			p.take(span)
			p.state = STATE_INST_EOL
		} else {
			p.take(1)
			p.fail("Required signed integer.")
		}

	case STATE_OP4_OPERAND:
		if token.Kind == TOKEN_LPAREN {
			p.take(1)
			p.state = STATE_OP4_RA
		} else if span := matchSigned(p.tokens, p.index); span != 0 {
			p.take(span)
			p.state = STATE_OP4_LPAREN
		} else {
			p.take(1)
			p.fail("Required signed integer or a left parenthesis.")
		}

	case STATE_OP4_LPAREN:
		p.take(1)

		if token.Kind == TOKEN_LPAREN {
			p.state = STATE_OP4_RA
		} else {
			p.fail("Required a left parenthesis.")
		}

	case STATE_OP5_ADDRESS, STATE_OP6_ADDRESS:
		reference, err := decodeAddress(p.tokens, p.index)

		if err != nil {
			p.take(1)
			p.fail("Required address.")
			break
		}

		p.take(matchAddress(p.tokens, p.index))
		p.reference = reference
		p.state = STATE_INST_EOL

	case STATE_OP7_DEVICE:
		p.take(1)

		switch token.Kind {
		case TOKEN_IDENT:
			if name := token.Text(); name == DEVICE_CR || name == DEVICE_LPT {
				p.state = STATE_INST_EOL
			} else {
				p.fail("Unknown device name.")
			}
		case TOKEN_INTEGER:
			if number := token.Text(); number == "0" || number == "1" {
				p.state = STATE_INST_EOL
			} else {
				p.fail("Unknown device number.")
			}
		default:
			p.fail("Required device name or number.")
		}

	case STATE_DC_OPERAND:
		if span := matchSigned(p.tokens, p.index); span != 0 {
			p.take(span)
			p.state = STATE_INST_EOL
		} else if token.Kind == TOKEN_CHARS {
			p.take(1)
			p.state = STATE_INST_EOL
		} else if token.Kind == TOKEN_IDENT {
			p.take(1)
			p.reference = ReferenceAddress{Label: token.Text()}
			p.state = STATE_INST_EOL
		} else {
			p.take(1)
			p.fail("Required constant value.")
		}

	case STATE_DS_OPERAND:
		p.take(1)

		if isDecimalToken(token) {
			p.state = STATE_INST_EOL
		} else {
			p.fail("Required decimal.")
		}

	case STATE_ORG_OPERAND:
		p.take(1)

		isHex := token.Kind == TOKEN_INTEGER || token.Kind == TOKEN_IDENT

		if isHex && encoding.IsDigits(token.Text(), 16) {
			p.state = STATE_INST_EOL
		} else {
			p.fail("Required hexadecimal.")
		}

	case STATE_INST_EOL:
		if token.Kind == TOKEN_EOL {
			p.index++
			p.complete()
		} else {
			p.take(1)
			p.fail("Too many tokens.")
		}

	case STATE_END_EOL:
		if token.Kind == TOKEN_EOL {
			p.index++
			p.accept()
			p.state = STATE_FINAL
		} else {
			p.take(1)
			p.failTo("Too many tokens.", STATE_FINAL)
		}

	default:
		panic("parser reached an invalid state")
	}
}

func (p *parser) finish() {
	// A stream cut off mid-line leaves a partial line behind
	if len(p.line) > 0 {
		p.push(Row{
			Label:   p.label,
			Address: p.address,
			Tokens:  p.line,
			Diagnostic: DebugInfo{
				Importance: IMPORTANCE_ERROR,
				Message:    "Unexpected end of input.",
				TokenIndex: len(p.line) - 1,
			},
		})
	}

	if p.state != STATE_FINAL {
		return
	}

	var trailing []Token

	for _, token := range p.tokens[p.index:] {
		if token.Kind != TOKEN_EOL {
			trailing = append(trailing, token)
		}
	}

	if len(trailing) > 0 {
		p.push(Row{
			Address: p.address,
			Tokens:  trailing,
			Diagnostic: DebugInfo{
				Importance: IMPORTANCE_ERROR,
				Message:    "Invalid token.",
				TokenIndex: 0,
			},
		})
	}
}
