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

// Package ascii provides utility functions and types to run Intcode programs
// that communicate through ASCII text, like interactive adventures or robots
// programmed with text scripts.
//
// Such programs read their input one character per input instruction and
// write text the same way. Values outside of the ASCII range are not text:
// programs use them to report a final result.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// MaxChar is the largest value considered as text.
const MaxChar = 127

// IsChar returns true if v is an ASCII character.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Encode returns the input values for the string s. Non ASCII runes are
// replaced by '?'.
func Encode(s string) []vm.Cell {
	in := make([]vm.Cell, 0, len(s))
	for _, r := range s {
		if r > MaxChar {
			r = '?'
		}
		in = append(in, vm.Cell(r))
	}
	return in
}

// Decode splits program output into text and non-text values.
func Decode(out []vm.Cell) (text string, values []vm.Cell) {
	var b strings.Builder
	for _, v := range out {
		if IsChar(v) {
			b.WriteByte(byte(v))
			continue
		}
		values = append(values, v)
	}
	return b.String(), values
}

// InHandler returns a vm.InHandler that feeds the program with the characters
// read from r. It returns io.EOF when r is exhausted. Carriage returns are
// dropped so that text files with CRLF line endings can be used as input.
func InHandler(r io.Reader) vm.InHandler {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return func(*vm.Instance) (vm.Cell, error) {
		for {
			c, _, err := rr.ReadRune()
			if err != nil {
				return 0, err
			}
			if c == '\r' {
				continue
			}
			if c > MaxChar {
				c = '?'
			}
			return vm.Cell(c), nil
		}
	}
}

// OutHandler returns a vm.OutHandler that writes characters to w as text, and
// non-text values in decimal, on a line of their own.
func OutHandler(w io.Writer) vm.OutHandler {
	var col int
	return func(_ *vm.Instance, v vm.Cell) error {
		var b []byte
		if IsChar(v) {
			b = append(b, byte(v))
			col++
			if v == '\n' {
				col = 0
			}
		} else {
			if col > 0 {
				b = append(b, '\n')
			}
			b = strconv.AppendInt(b, int64(v), 10)
			b = append(b, '\n')
			col = 0
		}
		_, err := w.Write(b)
		return errors.Wrap(err, "output failed")
	}
}

// Command writes line followed by a new line to an instance waiting for input.
// Input requests issued by the program after the first one are satisfied
// with the following characters. Command returns as soon as the program
// stops requesting input with the remaining characters, if any, still
// pending. In that case, the returned error wraps io.ErrShortWrite.
func Command(i *vm.Instance, line string) error {
	in := Encode(line + "\n")
	for k, v := range in {
		if !i.RequiresInput() {
			if err := i.Err(); err != nil {
				return err
			}
			return errors.Wrapf(io.ErrShortWrite, "%d characters not consumed", len(in)-k)
		}
		if err := i.WriteInput(v); err != nil {
			return err
		}
	}
	return nil
}

// ReadText reads output from an instance as long as output is available and
// returns it split into text and non-text values.
func ReadText(i *vm.Instance) (text string, values []vm.Cell, err error) {
	var out []vm.Cell
	for i.HasOutput() {
		var v vm.Cell
		v, err = i.ReadOutput()
		out = append(out, v)
		if err != nil {
			break
		}
	}
	text, values = Decode(out)
	return text, values, err
}
