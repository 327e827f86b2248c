// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package assign

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
type Type int

// Tokens
const (
	EOF Type = iota
	Word
	Equal
	Comma
	Invalid
)

var typeNames = [...]string{EOF: "end of input", Word: "word", Equal: "'='", Comma: "','", Invalid: "invalid token"}

func (t Type) String() string { return typeNames[t] }

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value string
}

func (i Item) String() string {
	if i.Type == Word || i.Type == Invalid {
		return strconv.Quote(i.Value)
	}
	return i.Type.String()
}

type stateFn func(l *lexer) stateFn

// lexer is a simple state machine lexer. Each call to lex runs states until
// an item is emitted.
//
type lexer struct {
	input string
	start int
	pos   int
	items []Item
	state stateFn
}

func newLexer(input string) *lexer {
	return &lexer{input: input, state: lexInit}
}

func (l *lexer) lex() Item {
	for len(l.items) == 0 {
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		return -1
	}
	r, sz := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += sz
	return r
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) emit(t Type, v string) {
	l.items = append(l.items, Item{t, l.start, v})
	l.start = l.pos
}

func isWordRune(r rune) bool {
	return r >= 0 && r != '=' && r != ',' && r != '"' && !unicode.IsSpace(r)
}

func lexInit(l *lexer) stateFn {
	l.start = l.pos
	r := l.next()
	switch {
	case r < 0:
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(l.peek()) {
			l.next()
		}
		l.start = l.pos
	case r == '=':
		l.emit(Equal, "=")
	case r == ',':
		l.emit(Comma, ",")
	case r == '"':
		return lexString
	default:
		return lexWord
	}
	return lexInit
}

func lexWord(l *lexer) stateFn {
	for isWordRune(l.peek()) {
		l.next()
	}
	l.emit(Word, l.input[l.start:l.pos])
	return lexInit
}

func lexString(l *lexer) stateFn {
	for {
		switch l.next() {
		case -1:
			l.emit(Invalid, l.input[l.start:l.pos])
			return lexEOF
		case '\\':
			l.next()
		case '"':
			s, err := strconv.Unquote(l.input[l.start:l.pos])
			if err != nil {
				l.emit(Invalid, l.input[l.start:l.pos])
				return lexInit
			}
			l.emit(Word, s)
			return lexInit
		}
	}
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lexer) stateFn {
	l.start = l.pos
	l.emit(EOF, "")
	return lexEOF
}
