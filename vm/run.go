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

	"github.com/pkg/errors"
)

func (i *Instance) fail(err error) error {
	i.state = Failed
	i.err = err
	return err
}

// run executes instructions until the next pause point.
func (i *Instance) run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case memError:
				// pc + k wrapped around
				err = i.fail(i.fault(ErrNegativeAddress, Cell(e)))
			case error:
				err = i.fail(errors.Wrapf(e, "Recovered error @pc=%d, rb=%d", i.pc, i.rb))
			default:
				panic(e)
			}
		}
	}()
	i.state = Running
	for i.state == Running {
		if i.trace != nil {
			i.trace(i, i.pc)
		}
		if err = i.step(); err != nil {
			return i.fail(err)
		}
	}
	return nil
}

// Start starts execution of the program at address 0. It returns when the
// program requests input, outputs a value or halts.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error and the instance is left in the Failed state.
func (i *Instance) Start() error {
	if i.state != NotStarted {
		return &ProtocolError{"Start", NotStarted, i.state}
	}
	return i.run()
}

// WriteInput supplies the input value requested by the program and resumes
// execution until the next input request, output or halt.
func (i *Instance) WriteInput(v Cell) error {
	if i.state != WaitingForInput {
		return &ProtocolError{"WriteInput", WaitingForInput, i.state}
	}
	i.mem.Write(i.inAddr, v)
	i.pc += 2
	return i.run()
}

// ReadOutput returns the pending output value and resumes execution until the
// next input request, output or halt. If resuming fails, the output value is
// returned along with the error.
func (i *Instance) ReadOutput() (Cell, error) {
	if i.state != OutputReady {
		return 0, &ProtocolError{"ReadOutput", OutputReady, i.state}
	}
	v := i.out
	return v, i.run()
}

// Run runs the program until it halts, starting it if necessary. Input
// requests and output values are handed over to the bound input and output
// handlers. Output values are discarded if there is no output handler.
//
// Any error returned by a handler is returned as is and leaves the instance
// in its current state, so that Run can be called again. With the default
// input handler set by the Input option, Run returns io.EOF when the last
// input stream is exhausted. This is a normal exit condition in most use
// cases.
//
// On an instance in the Failed state, Run returns the error that stopped the
// program.
func (i *Instance) Run() error {
	if i.state == NotStarted {
		if err := i.Start(); err != nil {
			return err
		}
	}
	for {
		switch i.state {
		case Finished:
			return nil
		case WaitingForInput:
			if i.inH == nil {
				return errors.Wrapf(ErrNoInput, "input requested @pc=%d", i.pc)
			}
			v, err := i.inH(i)
			if err != nil {
				return err
			}
			if err = i.WriteInput(v); err != nil {
				return err
			}
		case OutputReady:
			v, err := i.ReadOutput()
			if i.outH != nil {
				if herr := i.outH(i, v); herr != nil {
					return herr
				}
			}
			if err != nil {
				return err
			}
		case Failed:
			return errors.WithMessage(i.err, "Run")
		default:
			return &ProtocolError{"Run", NotStarted, i.state}
		}
	}
}

// Exec runs the given program with a fixed list of input values and returns
// all the values it outputs. If the program requests more input than
// provided, Exec returns the outputs so far along with an error wrapping
// io.ErrUnexpectedEOF.
func Exec(program []Cell, inputs ...Cell) ([]Cell, error) {
	var out []Cell
	i, err := New(program,
		BindInHandler(func(*Instance) (Cell, error) {
			if len(inputs) == 0 {
				return 0, errors.Wrap(io.ErrUnexpectedEOF, "input exhausted")
			}
			v := inputs[0]
			inputs = inputs[1:]
			return v, nil
		}),
		BindOutHandler(func(_ *Instance, v Cell) error {
			out = append(out, v)
			return nil
		}))
	if err != nil {
		return nil, err
	}
	err = i.Run()
	return out, err
}
