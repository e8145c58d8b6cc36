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
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a program image in its textual form: a list of comma separated
// decimal integers. White space around values, including new lines, is
// ignored.
func Parse(r io.Reader) ([]Cell, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Parse")
	}
	src := strings.TrimSpace(string(b))
	if src == "" {
		return nil, errors.New("Parse: empty program image")
	}
	fields := strings.Split(src, ",")
	img := make([]Cell, len(fields))
	for k, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Parse: value #%d", k)
		}
		img[k] = Cell(v)
	}
	return img, nil
}

// Load loads a program image from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return img, nil
}

// Format writes mem to w in the textual program image format, followed by a
// new line.
func Format(w io.Writer, mem []Cell) error {
	bw := bufio.NewWriter(w)
	b := make([]byte, 0, 24)
	for k, v := range mem {
		b = b[:0]
		if k > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := bw.Write(b); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// Save saves a Cell slice to a program image file. The file is removed if an
// error occurs.
func Save(fileName string, mem []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return errors.Wrap(Format(f, mem), "save failed")
}
