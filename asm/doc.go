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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		params	description
//	------	---		------	------------------------------------------------
//	1	add		a b c	c = a + b
//	2	mul		a b c	c = a * b
//	3	in		a	a = input value
//	4	out		a	output a
//	5	jnz, jt		a b	jump to b if a != 0
//	6	jz, jf		a b	jump to b if a == 0
//	7	lt		a b c	c = 1 if a < b, else 0
//	8	eq		a b c	c = 1 if a == b, else 0
//	9	arb, rb		a	add a to the relative base
//	99	hlt, halt		halt
//
// Operands:
//
// A plain operand is assembled in position mode, i.e. it is the address of
// the actual operand. Prefix it with '#' for immediate mode and with '@' for
// relative mode:
//
//	add 100 #1 100	( increment the value at address 100 )
//	out @-1		( output the value just below the relative base )
//
// The parameter modes are encoded in the instruction value, so that the line
// "add 100 #1 100" assembles to 1001,100,1,100.
//
// Literals and labels:
//
// Literals are decimal integers, optionally signed, or single quoted
// characters like 'A' or '\n'. A space must be written as 32.
//
// Labels are defined by prefixing their name with a colon and are used
// without the colon:
//
//	:loop
//		out #'*'
//		jnz #1 #loop
//
// A literal or label found where an instruction is expected is written as is
// in the program image. This is how data is declared:
//
//	:counter 0
//	:msg 'h' 'i' '\n' 0
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space. That is:
//
// Some valid comments:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Comments may not be nested.
package asm
