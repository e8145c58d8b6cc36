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

package vm_test

import (
	"strconv"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

var quine = C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}

func newInstance(t *testing.T, program C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(program, opts...)
	require.NoError(t, err)
	return i
}

// drain reads all output from i until it halts or requests input.
func drain(t *testing.T, i *vm.Instance) C {
	t.Helper()
	var out C
	for i.HasOutput() {
		v, err := i.ReadOutput()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func requireCause(t *testing.T, want, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, errors.Cause(err), "%+v", err)
}

func requireProtocolError(t *testing.T, err error, want, got vm.State) {
	t.Helper()
	var pe *vm.ProtocolError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, want, pe.Want)
	require.Equal(t, got, pe.Got)
}

func TestHalt(t *testing.T) {
	i := newInstance(t, C{99})
	require.Equal(t, vm.NotStarted, i.State())
	require.NoError(t, i.Start())
	require.True(t, i.IsFinished())
	require.False(t, i.HasOutput())
	require.False(t, i.RequiresInput())
	require.Equal(t, int64(1), i.InstructionCount())
	require.Equal(t, vm.Cell(0), i.PC())
}

func TestQuine(t *testing.T) {
	i := newInstance(t, quine)
	require.NoError(t, i.Start())
	out := drain(t, i)
	require.True(t, i.IsFinished())
	require.Equal(t, quine, out)
}

func TestLargeValues(t *testing.T) {
	out, err := vm.Exec(C{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	require.NoError(t, err)
	require.Equal(t, C{1219070632396864}, C(out))
	require.Len(t, strconv.FormatInt(int64(out[0]), 10), 16)

	out, err = vm.Exec(C{104, 1125899906842624, 99})
	require.NoError(t, err)
	require.Equal(t, C{1125899906842624}, C(out))

	// MinInt64 is a valid product
	out, err = vm.Exec(C{1102, -4611686018427387904, 2, 7, 4, 7, 99, 0})
	require.NoError(t, err)
	require.Equal(t, C{-1 << 63}, C(out))
}

func TestOverflow(t *testing.T) {
	for _, p := range []C{
		{1102, 4611686018427387904, 2, 5, 99, 0},
		{1102, -4611686018427387905, 2, 5, 99, 0},
		{1102, 9223372036854775807, 9223372036854775807, 5, 99, 0},
		{1101, 9223372036854775807, 1, 5, 99, 0},
		{1101, -9223372036854775807, -2, 5, 99, 0},
		{109, 9223372036854775807, 109, 1, 99},
	} {
		i := newInstance(t, p)
		err := i.Start()
		requireCause(t, vm.ErrOverflow, err)
		require.Equal(t, vm.Failed, i.State())
	}
}

func TestEcho(t *testing.T) {
	for _, v := range []vm.Cell{0, -1, 42, -123456789012, 1 << 62} {
		i := newInstance(t, C{3, 0, 4, 0, 99})
		require.NoError(t, i.Start())
		require.True(t, i.RequiresInput())
		require.NoError(t, i.WriteInput(v))
		require.True(t, i.HasOutput())
		out, err := i.ReadOutput()
		require.NoError(t, err)
		require.Equal(t, v, out)
		require.True(t, i.IsFinished())
	}
}

func TestInvalidOpcode(t *testing.T) {
	i := newInstance(t, C{98})
	err := i.Start()
	requireCause(t, vm.ErrInvalidOpcode, err)
	require.True(t, errors.Is(err, vm.ErrInvalidOpcode))

	// the opcode is rejected only once reached.
	i = newInstance(t, C{104, 7, 42, 0, 0})
	require.NoError(t, i.Start())
	require.True(t, i.HasOutput())
	v, err := i.ReadOutput()
	require.Equal(t, vm.Cell(7), v)
	requireCause(t, vm.ErrInvalidOpcode, err)
	var ee *vm.ExecError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, vm.Cell(2), ee.PC)
	require.Equal(t, vm.Cell(42), ee.Instr)
	require.Equal(t, vm.Failed, i.State())
	require.Equal(t, err, i.Err())

	// negative instructions
	i = newInstance(t, C{-1})
	requireCause(t, vm.ErrInvalidOpcode, i.Start())

	// 0 is not an opcode either
	i = newInstance(t, C{1101, 0, 0, 3})
	requireCause(t, vm.ErrInvalidOpcode, i.Start())
	require.Equal(t, vm.Cell(4), i.PC())
}

func TestInvalidMode(t *testing.T) {
	i := newInstance(t, C{304, 0, 99})
	requireCause(t, vm.ErrInvalidMode, i.Start())
	// extra mode digits are ignored
	out, err := vm.Exec(C{11104, 3, 99, 5})
	require.NoError(t, err)
	require.Equal(t, C{3}, C(out))
}

func TestIllegalWriteMode(t *testing.T) {
	i := newInstance(t, C{11101, 1, 1, 5, 99})
	requireCause(t, vm.ErrIllegalWriteMode, i.Start())

	// input with an immediate target fails before suspending
	i = newInstance(t, C{103, 5, 99})
	requireCause(t, vm.ErrIllegalWriteMode, i.Start())
	require.False(t, i.RequiresInput())
}

func TestNegativeAddress(t *testing.T) {
	for _, p := range []C{
		{4, -1, 99},                   // position read
		{204, -1, 99},                 // relative read
		{1101, 1, 1, -3, 99},          // position write
		{109, -5, 21101, 1, 1, 4, 99}, // relative write
		{1105, 1, -5},                 // jump
		{3, -1, 99},                   // input target
	} {
		i := newInstance(t, p)
		err := i.Start()
		requireCause(t, vm.ErrNegativeAddress, err)
		require.Equal(t, vm.Failed, i.State())
	}
}

// A program counter running past the end of the address space wraps to
// negative addresses.
func TestPCWrapAround(t *testing.T) {
	const maxCell = vm.Cell(9223372036854775807)
	for _, p := range []C{
		{1101, 4, 0, maxCell, 1105, 1, maxCell},   // position operand
		{1101, 109, 0, maxCell, 1105, 1, maxCell}, // immediate operand
		{1101, 99, 0, maxCell, 1105, 1, maxCell},  // halt has no operand
	} {
		i := newInstance(t, p)
		err := i.Start()
		if p[1] == 99 {
			require.NoError(t, err)
			require.True(t, i.IsFinished())
			require.Equal(t, maxCell, i.PC())
			continue
		}
		requireCause(t, vm.ErrNegativeAddress, err)
		require.True(t, errors.Is(err, vm.ErrNegativeAddress))
		var ee *vm.ExecError
		require.ErrorAs(t, err, &ee)
		require.Equal(t, vm.Failed, i.State())
		require.Equal(t, err, i.Err())
	}
}

func TestProtocol(t *testing.T) {
	i := newInstance(t, C{3, 0, 4, 0, 99})

	// not started
	requireProtocolError(t, i.WriteInput(1), vm.WaitingForInput, vm.NotStarted)
	_, err := i.ReadOutput()
	requireProtocolError(t, err, vm.OutputReady, vm.NotStarted)
	require.Equal(t, vm.NotStarted, i.State())

	// waiting for input
	require.NoError(t, i.Start())
	requireProtocolError(t, i.Start(), vm.NotStarted, vm.WaitingForInput)
	_, err = i.ReadOutput()
	requireProtocolError(t, err, vm.OutputReady, vm.WaitingForInput)
	require.True(t, i.RequiresInput())

	// output ready
	require.NoError(t, i.WriteInput(17))
	requireProtocolError(t, i.WriteInput(18), vm.WaitingForInput, vm.OutputReady)
	require.True(t, i.HasOutput())
	v, err := i.ReadOutput()
	require.NoError(t, err)
	require.Equal(t, vm.Cell(17), v)

	// finished
	require.True(t, i.IsFinished())
	requireProtocolError(t, i.Start(), vm.NotStarted, vm.Finished)
	requireProtocolError(t, i.WriteInput(1), vm.WaitingForInput, vm.Finished)
	_, err = i.ReadOutput()
	requireProtocolError(t, err, vm.OutputReady, vm.Finished)
	require.True(t, i.IsFinished())
	require.NoError(t, i.Err())
}

func TestFailedIsSticky(t *testing.T) {
	i := newInstance(t, C{3, 0, 77})
	require.NoError(t, i.Start())
	err := i.WriteInput(1)
	requireCause(t, vm.ErrInvalidOpcode, err)
	require.Equal(t, vm.Failed, i.State())
	requireProtocolError(t, i.WriteInput(1), vm.WaitingForInput, vm.Failed)
	require.Equal(t, err, i.Err())

	// Run reports the original failure
	rerr := i.Run()
	requireCause(t, vm.ErrInvalidOpcode, rerr)
	var ee *vm.ExecError
	require.ErrorAs(t, rerr, &ee)
	require.Equal(t, vm.Cell(2), ee.PC)
	require.Equal(t, vm.Failed, i.State())
	require.Contains(t, err.Error(), "invalid opcode @pc=2, instr=77")
}

// Modes 0 and 2 address the same cell whenever rb + offset equals the
// absolute address.
func TestRelativeMode(t *testing.T) {
	// addresses start past the end of both programs
	for _, addr := range []vm.Cell{10, 100, 1000, 123456} {
		for _, base := range []vm.Cell{0, 1, 50, 999, 200000} {
			off := addr - base
			ia := newInstance(t, C{1101, 7, 5, addr, 4, addr, 99})
			ir := newInstance(t, C{109, base, 21101, 7, 5, off, 204, off, 99})
			require.NoError(t, ia.Start())
			require.NoError(t, ir.Start())
			va, err := ia.ReadOutput()
			require.NoError(t, err)
			vr, err := ir.ReadOutput()
			require.NoError(t, err)
			require.Equal(t, va, vr)
			require.Equal(t, vm.Cell(12), vr)
			pa, _ := ia.Peek(addr)
			pr, _ := ir.Peek(addr)
			require.Equal(t, pa, pr)
			require.Equal(t, base, ir.RelativeBase())
		}
	}

	// mixed: write in position mode, read back in relative mode
	out, err := vm.Exec(C{1101, 7, 5, 1000, 109, 995, 204, 5, 99})
	require.NoError(t, err)
	require.Equal(t, C{12}, C(out))
}

func TestPeekPoke(t *testing.T) {
	i := newInstance(t, C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	require.NoError(t, i.Poke(1, 10))
	require.NoError(t, i.Poke(2, 9))
	v, err := i.Peek(1)
	require.NoError(t, err)
	require.Equal(t, vm.Cell(10), v)
	requireCause(t, vm.ErrPokeRange, i.Poke(12, 1))
	requireCause(t, vm.ErrPokeRange, i.Poke(-1, 1))
	_, err = i.Peek(-1)
	requireCause(t, vm.ErrNegativeAddress, err)
	v, err = i.Peek(1 << 40)
	require.NoError(t, err)
	require.Zero(t, v)

	require.NoError(t, i.Start())
	require.True(t, i.IsFinished())
	v, _ = i.Peek(0)
	require.Equal(t, vm.Cell(3500), v)
	require.Equal(t, vm.Cell(12), i.ImageSize())
}

func TestProgramIsCopied(t *testing.T) {
	p := C{1101, 1, 1, 0, 99}
	i := newInstance(t, p)
	require.NoError(t, i.Start())
	require.Equal(t, vm.Cell(1101), p[0])
	v, _ := i.Peek(0)
	require.Equal(t, vm.Cell(2), v)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "WaitingForInput", vm.WaitingForInput.String())
	require.Equal(t, "State(42)", vm.State(42).String())
	require.Equal(t, "relative", vm.Relative.String())
}
