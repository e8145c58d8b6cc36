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

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fatal execution errors. They are never returned as is but wrapped in an
// *ExecError. Use errors.Cause or errors.Is to check for a specific kind.
var (
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrInvalidMode      = errors.New("invalid parameter mode")
	ErrIllegalWriteMode = errors.New("immediate mode write target")
	ErrNegativeAddress  = errors.New("negative address")
	ErrOverflow         = errors.New("integer overflow")
)

var (
	// ErrPokeRange is returned by Poke for addresses outside of the loaded
	// program image.
	ErrPokeRange = errors.New("address outside of program image")
	// ErrNoInput is returned by Run when the program requests input and no
	// input handler is bound.
	ErrNoInput = errors.New("no input handler")
)

// ExecError is the error returned when a program cannot continue. The Instance
// that returned it is in the Failed state.
type ExecError struct {
	Err   error // one of the ErrXXX fatal errors
	PC    Cell  // address of the faulting instruction
	Instr Cell  // value of the faulting instruction
	Addr  Cell  // offending address or value, if any
}

func (e *ExecError) Error() string {
	switch errors.Cause(e.Err) {
	case ErrNegativeAddress, ErrOverflow:
		return fmt.Sprintf("%v (%d) @pc=%d, instr=%d", e.Err, e.Addr, e.PC, e.Instr)
	}
	return fmt.Sprintf("%v @pc=%d, instr=%d", e.Err, e.PC, e.Instr)
}

// Cause returns the underlying error kind.
func (e *ExecError) Cause() error { return e.Err }

// Unwrap returns the underlying error kind.
func (e *ExecError) Unwrap() error { return e.Err }

// ProtocolError is returned when an Instance method is called while the
// instance is not in the state required by that method. The state of the
// instance is left untouched.
type ProtocolError struct {
	Op   string
	Want State
	Got  State
}

func (e *ProtocolError) Error() string {
	switch e.Got {
	case NotStarted:
		return e.Op + ": not yet started"
	case Finished:
		return e.Op + ": program finished"
	case Failed:
		return e.Op + ": program failed"
	}
	return fmt.Sprintf("%s: protocol violation: expected state %v, got %v", e.Op, e.Want, e.Got)
}

// memError is the panic value raised by Memory when accessed with a negative
// address.
type memError Cell

func (e memError) Error() string {
	return fmt.Sprintf("memory access at negative address %d", Cell(e))
}
