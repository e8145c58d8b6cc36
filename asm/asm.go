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
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

var opcodes = [...]struct {
	op    vm.Cell
	names []string
}{
	{vm.OpAdd, []string{"add"}},
	{vm.OpMul, []string{"mul"}},
	{vm.OpIn, []string{"in"}},
	{vm.OpOut, []string{"out"}},
	{vm.OpJnz, []string{"jnz", "jt"}},
	{vm.OpJz, []string{"jz", "jf"}},
	{vm.OpLt, []string{"lt"}},
	{vm.OpEq, []string{"eq"}},
	{vm.OpArb, []string{"arb", "rb"}},
	{vm.OpHalt, []string{"hlt", "halt"}},
}

var opcodeIndex = make(map[string]vm.Cell)

func init() {
	for _, o := range opcodes {
		for _, n := range o.names {
			opcodeIndex[n] = o.op
		}
	}
}

// Error is a single assembler error.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds every error found
// in the source.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[k].Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program image. The name parameter is used only in error messages
// to name the source of the error.
//
// The returned error, if any, is of type ErrAsm.
func Assemble(name string, r io.Reader) ([]vm.Cell, error) {
	p := newParser()
	return p.Parse(name, r)
}

// Reader is the interface to memory used by Disassemble. It is implemented by
// *vm.Memory.
type Reader interface {
	Read(addr vm.Cell) vm.Cell
}

type cells []vm.Cell

func (c cells) Read(addr vm.Cell) vm.Cell {
	if addr < 0 || addr >= vm.Cell(len(c)) {
		return 0
	}
	return c[addr]
}

// decode returns the mnemonic and parameter modes of instruction v. ok is
// false if v cannot be represented in assembly.
func decode(v vm.Cell) (name string, modes []vm.Mode, ok bool) {
	op, modes, err := vm.Decode(v)
	if err != nil {
		return "", nil, false
	}
	name, n, wr, _ := vm.OpInfo(op)
	if wr > 0 && modes[wr-1] == vm.Immediate {
		return "", nil, false
	}
	// extra mode digits
	m := v / 100
	for ; n > 0; n-- {
		m /= 10
	}
	if m != 0 {
		return "", nil, false
	}
	return name, modes, true
}

func writeOperand(w *ici.ErrWriter, m vm.Mode, v vm.Cell) {
	switch m {
	case vm.Immediate:
		w.WriteCell(" #", v)
	case vm.Relative:
		w.WriteCell(" @", v)
	default:
		w.WriteCell(" ", v)
	}
}

// Disassemble writes a disassembly of the instruction at address pc in memory
// m to w. Values that do not decode to a valid instruction are written as
// plain integers. It returns the address of the next instruction.
func Disassemble(m Reader, pc vm.Cell, w io.Writer) (next vm.Cell, err error) {
	ew := ici.NewErrWriter(w)
	v := m.Read(pc)
	name, modes, ok := decode(v)
	if !ok {
		ew.WriteCell("", v)
		return pc + 1, ew.Err
	}
	ew.WriteString(name)
	for k, mode := range modes {
		writeOperand(ew, mode, m.Read(pc+vm.Cell(k)+1))
	}
	return pc + vm.Cell(len(modes)) + 1, ew.Err
}

// DisassembleAll disassembles the whole program image img to w, one
// instruction per line, each line prefixed with its address. Instructions
// truncated by the end of the image are written as plain integers.
func DisassembleAll(img []vm.Cell, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	m := cells(img)
	for pc := vm.Cell(0); pc < vm.Cell(len(img)); {
		fmt.Fprintf(ew, "% 6d\t", pc)
		if _, modes, ok := decode(img[pc]); ok && pc+vm.Cell(len(modes)) < vm.Cell(len(img)) {
			pc, _ = Disassemble(m, pc, ew)
		} else {
			ew.WriteCell("", img[pc])
			pc++
		}
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
