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

package vm

import "strconv"

// Intcode opcodes.
const (
	OpAdd  Cell = 1
	OpMul  Cell = 2
	OpIn   Cell = 3
	OpOut  Cell = 4
	OpJnz  Cell = 5
	OpJz   Cell = 6
	OpLt   Cell = 7
	OpEq   Cell = 8
	OpArb  Cell = 9
	OpHalt Cell = 99
)

// Mode is a parameter mode.
type Mode int

// Parameter modes.
const (
	Position  Mode = iota // parameter is an address
	Immediate             // parameter is the operand
	Relative              // parameter is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

type opInfo struct {
	name   string
	params int
	write  int // 1-based index of the write target parameter, 0 if none
}

var opcodes = map[Cell]opInfo{
	OpAdd:  {"add", 3, 3},
	OpMul:  {"mul", 3, 3},
	OpIn:   {"in", 1, 1},
	OpOut:  {"out", 1, 0},
	OpJnz:  {"jnz", 2, 0},
	OpJz:   {"jz", 2, 0},
	OpLt:   {"lt", 3, 3},
	OpEq:   {"eq", 3, 3},
	OpArb:  {"arb", 1, 0},
	OpHalt: {"hlt", 0, 0},
}

// OpInfo returns the mnemonic of opcode op, its parameter count and the
// 1-based index of its write target parameter (0 if it has none). ok is false
// if op is not a valid opcode.
func OpInfo(op Cell) (name string, params int, write int, ok bool) {
	info, ok := opcodes[op]
	return info.name, info.params, info.write, ok
}

// Decode splits an instruction value into its opcode and its parameter
// modes. The returned slice holds one mode per parameter of the opcode. Decode
// returns ErrInvalidOpcode or ErrInvalidMode if the instruction cannot be
// decoded. Modes of write targets are not checked.
func Decode(v Cell) (op Cell, modes []Mode, err error) {
	op = v % 100
	info, ok := opcodes[op]
	if !ok {
		return op, nil, ErrInvalidOpcode
	}
	modes = make([]Mode, info.params)
	m := v / 100
	for k := range modes {
		d := Mode(m % 10)
		if d > Relative {
			return op, nil, ErrInvalidMode
		}
		modes[k] = d
		m /= 10
	}
	return op, modes, nil
}
