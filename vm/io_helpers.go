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
)

type stackedReader struct {
	*bufio.Reader
	src io.Reader
	eof bool
}

type multiReader struct {
	readers []stackedReader
}

// token returns the next token from the reader on top of the stack. Tokens
// never span two readers.
func (mr *multiReader) token() (string, error) {
	for len(mr.readers) > 0 {
		r := &mr.readers[0]
		if !r.eof {
			tok, err := scanToken(r.Reader)
			if err == io.EOF {
				r.eof = true
			} else if err != nil {
				return "", err
			}
			if len(tok) > 0 {
				return tok, nil
			}
		}
		// discard the reader and optionally close it
		if c, ok := mr.readers[0].src.(io.Closer); ok {
			c.Close()
		}
		mr.readers = mr.readers[1:]
	}
	return "", io.EOF
}

func (mr *multiReader) pushReader(r io.Reader) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	mr.readers = append([]stackedReader{{Reader: br, src: r}}, mr.readers...)
}
