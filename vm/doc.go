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

// Package vm implements an Intcode virtual machine.
//
// An Intcode program is a flat list of integers loaded at address 0 of a
// sparse, unbounded memory. Each instruction is encoded as a single value:
// the two lowest decimal digits hold the opcode and the following digits hold
// the mode of each parameter, least significant first:
//
//	opcode	asm	params	description
//	------	---	------	------------------------------------------------------------
//	1	add	a b c	c = a + b
//	2	mul	a b c	c = a * b
//	3	in	a	a = input value
//	4	out	a	output a
//	5	jnz	a b	jump to b if a != 0
//	6	jz	a b	jump to b if a == 0
//	7	lt	a b c	c = 1 if a < b, else 0
//	8	eq	a b c	c = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// Parameter modes are 0 (position: the parameter is an address), 1
// (immediate: the parameter is the operand) and 2 (relative: the parameter is
// an offset from the relative base). Write targets cannot be in immediate
// mode.
//
// Input and output are cooperative: the VM never blocks nor calls back into
// the program driving it unless asked to. An Instance runs from within Start,
// WriteInput or ReadOutput until the program requests input, outputs a value
// or halts, then returns control to the caller:
//
//	i, _ := vm.New(program)
//	err := i.Start()
//	for err == nil && !i.IsFinished() {
//		if i.RequiresInput() {
//			err = i.WriteInput(42)
//			continue
//		}
//		var v vm.Cell
//		v, err = i.ReadOutput()
//		fmt.Println(v)
//	}
//
// Alternatively, input and output handlers can be bound to an instance with
// the BindInHandler and BindOutHandler options (or Input and Output for
// numeric I/O on io.Reader and io.Writer) and the program run with the Run
// method.
//
// Arithmetic is checked: an overflow of a 64 bits value stops the program with
// an error instead of silently wrapping around.
//
// Instances do not hold any resource besides memory and do not start any
// goroutine. An instance can be discarded at any time.
package vm
