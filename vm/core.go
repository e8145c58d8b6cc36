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
	"math"

	"github.com/holiman/uint256"
)

func (i *Instance) fault(err error, addr Cell) error {
	e := &ExecError{Err: err, PC: i.pc, Addr: addr}
	if i.pc >= 0 {
		e.Instr = i.mem.Read(i.pc)
	}
	return e
}

// decode decodes the instruction at pc, sets the parameter modes and returns
// the opcode.
func (i *Instance) decode() (Cell, error) {
	v := i.mem.Read(i.pc)
	op := v % 100
	info, ok := opcodes[op]
	if !ok {
		return op, i.fault(ErrInvalidOpcode, op)
	}
	m := v / 100
	for k := 0; k < info.params; k++ {
		d := Mode(m % 10)
		if d > Relative {
			return op, i.fault(ErrInvalidMode, Cell(d))
		}
		i.modes[k] = d
		m /= 10
	}
	return op, nil
}

// address returns the address referenced by parameter k (1-based) of the
// current instruction. The parameter must not be in immediate mode.
func (i *Instance) address(k int) (Cell, error) {
	p := i.mem.Read(i.pc + Cell(k))
	switch i.modes[k-1] {
	case Immediate:
		return 0, i.fault(ErrIllegalWriteMode, p)
	case Relative:
		var ok bool
		if p, ok = add(i.rb, p); !ok {
			return 0, i.fault(ErrOverflow, i.rb)
		}
	}
	if p < 0 {
		return 0, i.fault(ErrNegativeAddress, p)
	}
	return p, nil
}

// read returns the operand of parameter k (1-based).
func (i *Instance) read(k int) (Cell, error) {
	if i.modes[k-1] == Immediate {
		return i.mem.Read(i.pc + Cell(k)), nil
	}
	addr, err := i.address(k)
	if err != nil {
		return 0, err
	}
	return i.mem.Read(addr), nil
}

// read2 returns the operands of the first two parameters.
func (i *Instance) read2() (a, b Cell, err error) {
	if a, err = i.read(1); err != nil {
		return 0, 0, err
	}
	b, err = i.read(2)
	return a, b, err
}

// step executes a single instruction. Input and output instructions only
// change the state of the instance, the actual transfer is completed by
// WriteInput and ReadOutput.
func (i *Instance) step() error {
	op, err := i.decode()
	if err != nil {
		return err
	}
	i.insCount++
	switch op {
	case OpAdd, OpMul, OpLt, OpEq:
		a, b, err := i.read2()
		if err != nil {
			return err
		}
		dst, err := i.address(3)
		if err != nil {
			return err
		}
		var (
			r  Cell
			ok = true
		)
		switch op {
		case OpAdd:
			r, ok = add(a, b)
		case OpMul:
			r, ok = mul(a, b)
		case OpLt:
			r = bool2Cell(a < b)
		case OpEq:
			r = bool2Cell(a == b)
		}
		if !ok {
			return i.fault(ErrOverflow, a)
		}
		i.mem.Write(dst, r)
		i.pc += 4
	case OpIn:
		dst, err := i.address(1)
		if err != nil {
			return err
		}
		i.inAddr = dst
		i.state = WaitingForInput
	case OpOut:
		v, err := i.read(1)
		if err != nil {
			return err
		}
		i.out = v
		i.pc += 2
		i.state = OutputReady
	case OpJnz, OpJz:
		c, t, err := i.read2()
		if err != nil {
			return err
		}
		if (c != 0) != (op == OpJz) {
			if t < 0 {
				return i.fault(ErrNegativeAddress, t)
			}
			i.pc = t
		} else {
			i.pc += 3
		}
	case OpArb:
		v, err := i.read(1)
		if err != nil {
			return err
		}
		rb, ok := add(i.rb, v)
		if !ok {
			return i.fault(ErrOverflow, v)
		}
		i.rb = rb
		i.pc += 2
	case OpHalt:
		i.state = Finished
	}
	return nil
}

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// add returns a+b. ok is false on overflow.
func add(a, b Cell) (Cell, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func abs(v Cell) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// mul returns a*b. ok is false on overflow.
func mul(a, b Cell) (Cell, bool) {
	var x, y uint256.Int
	x.SetUint64(abs(a))
	y.SetUint64(abs(b))
	x.Mul(&x, &y)
	if !x.IsUint64() {
		return 0, false
	}
	u := x.Uint64()
	if (a < 0) != (b < 0) {
		if u > 1<<63 {
			return 0, false
		}
		return Cell(-int64(u)), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return Cell(u), true
}
