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

package main

import (
	"bufio"
	"io"
)

const (
	ctrlD = 4
	bs    = 8
	del   = 127
)

// lineEditor provides minimal line editing on a terminal in raw mode. Typed
// characters are echoed and only complete lines are handed over to the
// program, so that backspace can still erase characters. Ctrl-D on an empty
// line closes the input.
type lineEditor struct {
	r    *bufio.Reader
	w    *bufio.Writer
	line []byte
	eof  bool
}

func newLineEditor(r io.Reader, w *bufio.Writer) *lineEditor {
	return &lineEditor{r: bufio.NewReader(r), w: w}
}

func (e *lineEditor) Read(p []byte) (int, error) {
	if len(e.line) == 0 {
		if e.eof {
			return 0, io.EOF
		}
		if err := e.readLine(); err != nil {
			return 0, err
		}
	}
	n := copy(p, e.line)
	e.line = e.line[n:]
	return n, nil
}

func (e *lineEditor) readLine() error {
	var buf []byte
	for {
		if err := e.w.Flush(); err != nil {
			return err
		}
		c, err := e.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				e.line, e.eof = buf, true
				return nil
			}
			return err
		}
		switch c {
		case ctrlD:
			if len(buf) == 0 {
				e.eof = true
				return io.EOF
			}
		case bs, del:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				e.w.WriteString("\b \b")
			}
		case '\r', '\n':
			e.line = append(buf, '\n')
			e.w.WriteByte('\n')
			return e.w.Flush()
		default:
			buf = append(buf, c)
			e.w.WriteByte(c)
		}
	}
}
