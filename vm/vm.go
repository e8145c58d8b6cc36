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
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the execution state of an Instance.
type State int

// Instance states. Running is never observed by callers: an Instance only
// runs from within Start, WriteInput or ReadOutput and always returns in one
// of the other states.
const (
	NotStarted State = iota
	Running
	WaitingForInput
	OutputReady
	Finished
	Failed
)

var stateNames = [...]string{
	"NotStarted",
	"Running",
	"WaitingForInput",
	"OutputReady",
	"Finished",
	"Failed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Instance represents an Intcode VM instance.
type Instance struct {
	mem       *Memory
	pc        Cell
	rb        Cell
	state     State
	err       error
	out       Cell // pending output
	inAddr    Cell // write target of the pending input
	modes     [3]Mode
	imageSize Cell
	insCount  int64
	inH       InHandler
	outH      OutHandler
	trace     TraceFunc
	input     *multiReader
}

// Option interface
type Option func(*Instance) error

// InHandler is the function prototype for input handlers. It must return the
// next input value for the program.
type InHandler func(i *Instance) (Cell, error)

// OutHandler is the function prototype for output handlers.
type OutHandler func(i *Instance, v Cell) error

// TraceFunc is the function prototype for trace hooks. It is called before
// the instruction at address pc is executed.
type TraceFunc func(i *Instance, pc Cell)

// BindInHandler binds the provided input handler. It will be called by Run
// whenever the program requests input.
func BindInHandler(h InHandler) Option {
	return func(i *Instance) error {
		i.inH = h
		return nil
	}
}

// BindOutHandler binds the provided output handler. It will be called by Run
// for each value output by the program.
func BindOutHandler(h OutHandler) Option {
	return func(i *Instance) error {
		i.outH = h
		return nil
	}
}

// Input pushes the given Reader on top of the input stack and binds the
// default input handler. The default handler reads decimal integers separated
// by white space or commas. Readers are consumed in reverse order of
// appearance: the last pushed reader is read first. Exhausted readers that
// implement io.Closer are closed.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		i.PushInput(r)
		i.inH = (*Instance).readInput
		return nil
	}
}

// Output binds an output handler that writes output values to w in decimal,
// one per line.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.outH = func(_ *Instance, v Cell) error {
			return writeValue(w, v)
		}
		return nil
	}
}

// Trace sets a trace hook. Tracing slows down execution significantly.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error {
		i.trace = fn
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied into the instance's memory at address 0, so the
// caller is free to reuse the program slice, for example to create other
// instances from it.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:       NewMemory(program),
		imageSize: Cell(len(program)),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current state of the instance.
func (i *Instance) State() State { return i.state }

// IsFinished returns true if the program has halted.
func (i *Instance) IsFinished() bool { return i.state == Finished }

// RequiresInput returns true if the program is waiting for input.
func (i *Instance) RequiresInput() bool { return i.state == WaitingForInput }

// HasOutput returns true if an output value is pending.
func (i *Instance) HasOutput() bool { return i.state == OutputReady }

// Err returns the error that put the instance in the Failed state, or nil.
func (i *Instance) Err() error { return i.err }

// PC returns the program counter.
func (i *Instance) PC() Cell { return i.pc }

// RelativeBase returns the relative base register.
func (i *Instance) RelativeBase() Cell { return i.rb }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Memory returns the instance's memory. It is meant for inspection only:
// changing memory contents from outside the VM while a program is running
// should be done through Poke.
func (i *Instance) Memory() *Memory { return i.mem }

// ImageSize returns the size of the program image the instance was created
// with.
func (i *Instance) ImageSize() Cell { return i.imageSize }

// Peek returns the value at address addr.
func (i *Instance) Peek(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "peek %d", addr)
	}
	return i.mem.Read(addr), nil
}

// Poke sets the value at address addr. Only addresses within the program
// image loaded by New can be modified. It is typically used to patch a
// program before calling Start.
func (i *Instance) Poke(addr, v Cell) error {
	if addr < 0 || addr >= i.imageSize {
		return errors.Wrapf(ErrPokeRange, "poke %d", addr)
	}
	i.mem.Write(addr, v)
	return nil
}
