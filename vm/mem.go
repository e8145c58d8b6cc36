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

import "golang.org/x/exp/slices"

// Memory is the sparse, unbounded memory of an Instance. Unset addresses read
// as 0. Addresses must be positive or zero, Read and Write will panic
// otherwise.
type Memory struct {
	cells map[Cell]Cell
}

// NewMemory returns a new Memory with the given image loaded at address 0.
func NewMemory(image []Cell) *Memory {
	m := &Memory{cells: make(map[Cell]Cell, len(image))}
	for addr, v := range image {
		m.cells[Cell(addr)] = v
	}
	return m
}

// Read returns the value at address addr.
func (m *Memory) Read(addr Cell) Cell {
	if addr < 0 {
		panic(memError(addr))
	}
	return m.cells[addr]
}

// Write sets the value at address addr.
func (m *Memory) Write(addr, v Cell) {
	if addr < 0 {
		panic(memError(addr))
	}
	m.cells[addr] = v
}

// Len returns the number of addresses that have been touched so far.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Addresses returns the touched addresses in ascending order.
func (m *Memory) Addresses() []Cell {
	a := make([]Cell, 0, len(m.cells))
	for addr := range m.cells {
		a = append(a, addr)
	}
	slices.Sort(a)
	return a
}

// Slice returns a copy of the memory range [from, to).
func (m *Memory) Slice(from, to Cell) []Cell {
	if from < 0 {
		panic(memError(from))
	}
	if to <= from {
		return nil
	}
	s := make([]Cell, to-from)
	for k := range s {
		s[k] = m.cells[from+Cell(k)]
	}
	return s
}
