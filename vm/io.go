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
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// PushInput pushes the given Reader on top of the input stack used by the
// default input handler.
func (i *Instance) PushInput(r io.Reader) {
	if i.input == nil {
		i.input = new(multiReader)
	}
	i.input.pushReader(r)
}

// readInput is the default input handler.
func (i *Instance) readInput() (Cell, error) {
	if i.input == nil {
		return 0, io.EOF
	}
	tok, err := i.input.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid input")
	}
	return Cell(v), nil
}

func writeValue(w io.Writer, v Cell) error {
	b := make([]byte, 0, 24)
	b = strconv.AppendInt(b, int64(v), 10)
	b = append(b, '\n')
	_, err := w.Write(b)
	return errors.Wrap(err, "output failed")
}

func isSep(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',':
		return true
	}
	return false
}

// scanToken reads the next separator delimited token from r.
func scanToken(r *bufio.Reader) (string, error) {
	var b []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return string(b), err
		}
		if isSep(c) {
			if len(b) > 0 {
				return string(b), nil
			}
			continue
		}
		b = append(b, c)
	}
}
