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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

var countdown = `
	( count down from the input value to 1 )
	in n
:loop
	out n
	add n #-1 n
	jnz n #loop
	hlt
:n	0
`

func ExampleAssemble() {
	img, err := asm.Assemble("countdown", strings.NewReader(countdown))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img)

	out, err := vm.Exec(img, 3)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	// Output:
	// [3 12 4 12 1001 12 -1 12 1005 12 2 99 0]
	// [3 2 1]
}

func ExampleDisassembleAll() {
	img := []vm.Cell{3, 12, 4, 12, 1001, 12, -1, 12, 1005, 12, 2, 99, 0}
	asm.DisassembleAll(img, os.Stdout)

	// Output:
	//      0	in 12
	//      2	out 12
	//      4	add 12 #-1 12
	//      8	jnz 12 #2
	//     11	hlt
	//     12	0
}
