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
	"fmt"
	"io"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
	"github.com/ethereum/go-ethereum/log"
)

// dumpVM dumps the instance registers and memory to the specified io.Writer.
// The program image range is written in image format, other touched
// addresses follow as addr=value pairs.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	fmt.Fprintf(ew, "\npc=%d rb=%d state=%v instructions=%d\n",
		i.PC(), i.RelativeBase(), i.State(), i.InstructionCount())
	size := i.ImageSize()
	m := i.Memory()
	if err := vm.Format(ew, m.Slice(0, size)); err != nil {
		return err
	}
	sep := ""
	for _, addr := range m.Addresses() {
		if addr < size {
			continue
		}
		ew.WriteCell(sep, addr)
		ew.WriteCell("=", m.Read(addr))
		sep = " "
	}
	if sep != "" {
		ew.WriteByte('\n')
	}
	return ew.Err
}

// saveVM saves the program image range of the instance memory.
func saveVM(i *vm.Instance, fileName string) error {
	log.Debug("Saving memory image", "file", fileName, "size", i.ImageSize())
	return vm.Save(fileName, i.Memory().Slice(0, i.ImageSize()))
}
