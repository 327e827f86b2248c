// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package assign parses comma separated lists of name=value assignments like
//
//	a=1, b=0x0f, label="carry in"
//
// Values containing spaces, commas or equal signs must be quoted.
//
package assign

import (
	"github.com/pkg/errors"
)

// Assignment is a single name=value pair.
//
type Assignment struct {
	Name  string
	Value string
	Pos   int
}

// Parser returns assignments one at a time.
//
type Parser struct {
	Input string
	l     *lexer
	done  bool
}

// Next returns the next assignment in the input. At the end of the input, it
// returns a nil assignment and a nil error.
//
func (p *Parser) Next() (*Assignment, error) {
	if p.done {
		return nil, nil
	}
	if p.l == nil {
		p.l = newLexer(p.Input)
	}
	i := p.l.lex()
	if i.Type == EOF {
		p.done = true
		return nil, nil
	}
	if i.Type != Word {
		return nil, p.fail(i, "expected name")
	}
	a := &Assignment{Name: i.Value, Pos: i.Pos}
	if i = p.l.lex(); i.Type != Equal {
		return nil, p.fail(i, "expected '=' after name")
	}
	if i = p.l.lex(); i.Type != Word {
		return nil, p.fail(i, "expected value")
	}
	a.Value = i.Value
	switch i = p.l.lex(); i.Type {
	case EOF:
		p.done = true
	case Comma:
	default:
		return nil, p.fail(i, "expected comma or end of input")
	}
	return a, nil
}

func (p *Parser) fail(i Item, msg string) error {
	p.done = true
	return errors.Errorf("in %q at pos %d: %s, got %v", p.Input, i.Pos+1, msg, i)
}

// Parse parses all assignments in s.
//
func Parse(s string) ([]Assignment, error) {
	p := Parser{Input: s}
	var as []Assignment
	for {
		a, err := p.Next()
		if err != nil {
			return nil, err
		}
		if a == nil {
			return as, nil
		}
		as = append(as, *a)
	}
}

// Map parses s and returns the assignments as a map. Duplicate names are an
// error.
//
func Map(s string) (map[string]string, error) {
	as, err := Parse(s)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(as))
	for _, a := range as {
		if _, ok := m[a.Name]; ok {
			return nil, errors.Errorf("in %q at pos %d: duplicate name %q", s, a.Pos+1, a.Name)
		}
		m[a.Name] = a.Value
	}
	return m, nil
}
