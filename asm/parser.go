// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      []vm.Cell
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	errs   ErrAsm
	ins    int // address of the instruction being assembled
	argc   int // parameter count of the instruction being assembled
	argn   int // number of parameters assembled so far
	wr     int // write target parameter (1-based) of the instruction being assembled
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	p.errs = append(p.errs, Error{pos, msg})
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
}

func (p *parser) useLabel(pos scanner.Position, name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{pos, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) define(pos scanner.Position, name string) {
	if len(name) == 0 {
		p.error(pos, "Empty label name")
		return
	}
	if _, ok := opcodeIndex[name]; ok {
		p.error(pos, "Reserved label name "+name)
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "Label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = pos
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// value writes an integer, char or label value.
func (p *parser) value(pos scanner.Position, s string) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		p.write(vm.Cell(n))
		return
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(pos, "Invalid character literal "+s)
		}
		p.write(vm.Cell(r))
		return
	}
	if c := s[0]; c == '-' || c == '+' || (c >= '0' && c <= '9') {
		p.error(pos, "Invalid integer literal "+s)
		p.write(0)
		return
	}
	if _, ok := opcodeIndex[s]; ok {
		p.error(pos, "Unexpected opcode as argument: "+s)
		p.write(0)
		return
	}
	p.useLabel(pos, s)
	p.write(0)
}

func (p *parser) operand(pos scanner.Position, s string) {
	var mode vm.Mode
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '@':
		mode = vm.Relative
		s = s[1:]
	case ':':
		p.error(pos, "Unexpected label definition as argument: "+s)
		p.argn++
		p.write(0)
		return
	}
	p.argn++
	if mode == vm.Immediate && p.argn == p.wr {
		p.error(pos, "Immediate mode write target")
	}
	if s == "" {
		p.error(pos, "Missing operand value")
		p.write(0)
		return
	}
	m := vm.Cell(mode) * 100
	for k := 1; k < p.argn; k++ {
		m *= 10
	}
	p.i[p.ins] += m
	p.value(pos, s)
}

func (p *parser) instruction(op vm.Cell) {
	_, p.argc, p.wr, _ = vm.OpInfo(op)
	p.argn = 0
	p.ins = p.pc
	p.write(op)
}

func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		s := p.s.TokenText()
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "Unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.error(pos, "Unterminated comment")
				break
			}
			continue
		}
		if p.argn < p.argc {
			p.operand(pos, s)
			continue
		}
		if s[0] == ':' {
			p.define(pos, s[1:])
			continue
		}
		if op, ok := opcodeIndex[s]; ok {
			p.instruction(op)
			continue
		}
		// raw data
		p.value(pos, s)
	}
	if p.argn < p.argc {
		p.error(p.s.Pos(), "Missing operand")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.pc], nil
}
