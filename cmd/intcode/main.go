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
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

type patch struct {
	addr, v vm.Cell
}

type patchList []patch

func (p *patchList) String() string { return "" }
func (p *patchList) Set(s string) error {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return errors.Errorf("invalid patch %q, expected addr=value", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	if err != nil {
		return errors.Wrap(err, "invalid patch address")
	}
	val, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return errors.Wrap(err, "invalid patch value")
	}
	*p = append(*p, patch{vm.Cell(addr), vm.Cell(val)})
	return nil
}
func (p *patchList) Get() interface{} { return *p }

var (
	asciiIO     bool
	noRawIO     bool
	debug       bool
	trace       bool
	dump        bool
	outFileName string
)

// flushReader flushes pending output before blocking on input.
type flushReader struct {
	r io.Reader
	w *bufio.Writer
}

func (f *flushReader) Read(p []byte) (int, error) {
	if err := f.w.Flush(); err != nil {
		return 0, err
	}
	return f.r.Read(p)
}

func setupLog() {
	lvl := log.LevelWarn
	switch {
	case trace:
		lvl = log.LevelTrace
	case debug:
		lvl = log.LevelDebug
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false)))
}

func traceHook(i *vm.Instance, pc vm.Cell) {
	var b strings.Builder
	asm.Disassemble(i.Memory(), pc, &b)
	log.Trace(b.String(), "pc", pc, "rb", i.RelativeBase())
}

func setupIO() (raw bool, tearDown func()) {
	var err error
	if !noRawIO {
		tearDown, err = setRawIO()
		if err != nil {
			log.Debug("Raw terminal IO disabled", "err", err)
			return false, nil
		}
	}
	return tearDown != nil, tearDown
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: %d, RB: %d, state: %v, instructions: %d\n",
			i.PC(), i.RelativeBase(), i.State(), i.InstructionCount())
	}
	os.Exit(1)
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		if i != nil && dump {
			if derr := dumpVM(i, os.Stdout); err == nil {
				err = derr
			}
		}
		if i != nil && outFileName != "" {
			if serr := saveVM(i, outFileName); err == nil {
				err = serr
			}
		}
		atExit(i, err)
	}()

	var withFiles fileList
	var patches patchList

	var fileName = flag.String("image", "input.txt", "Load program image from file `filename`")
	flag.BoolVar(&asciiIO, "ascii", false, "ASCII mode: exchange text with the program, one character per value")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.Var(&patches, "patch", "Set the value at address `addr=value` before starting (can be specified multiple times)")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO in ASCII mode")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&trace, "trace", false, "log every executed instruction")
	flag.BoolVar(&dump, "dump", false, "dump registers and memory upon exit")
	flag.StringVar(&outFileName, "o", "", "save memory image to `filename` upon exit")

	flag.Parse()
	setupLog()

	img, err := vm.Load(*fileName)
	if err != nil {
		return
	}
	log.Debug("Loaded program image", "file", *fileName, "size", len(img))

	var files []io.Reader
	for _, name := range withFiles {
		var f *os.File
		f, err = os.Open(name)
		if err != nil {
			return
		}
		defer f.Close()
		files = append(files, f)
	}

	var opts []vm.Option
	if trace {
		opts = append(opts, vm.Trace(traceHook))
	}

	if asciiIO {
		var stdin io.Reader = os.Stdin
		// switch the terminal to raw mode only when reading from it.
		if rawtty, ioTearDownFn := setupIO(); rawtty {
			defer ioTearDownFn()
			stdin = newLineEditor(os.Stdin, stdout)
		}
		in := io.MultiReader(append(files, &flushReader{stdin, stdout})...)
		opts = append(opts,
			vm.BindInHandler(ascii.InHandler(in)),
			vm.BindOutHandler(ascii.OutHandler(stdout)))
	} else {
		opts = append(opts,
			vm.Input(&flushReader{os.Stdin, stdout}),
			vm.Output(stdout))
		// push -with files in reverse order so that they are read in order
		// of appearance on the command line.
		for n := len(files) - 1; n >= 0; n-- {
			opts = append(opts, vm.Input(files[n]))
		}
	}

	i, err = vm.New(img, opts...)
	if err != nil {
		return
	}
	for _, p := range patches {
		if err = i.Poke(p.addr, p.v); err != nil {
			return
		}
		log.Debug("Patched program image", "addr", p.addr, "value", p.v)
	}

	err = i.Run()
	if errors.Cause(err) == io.EOF {
		log.Debug("Input closed", "state", i.State())
		err = nil
	}
	log.Debug("Program exit", "state", i.State(), "instructions", i.InstructionCount())
}
