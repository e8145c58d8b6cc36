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

// The intcode command line tool loads and runs Intcode programs.
//
// Usage:
//
//	-ascii
//		  ASCII mode: exchange text with the program, one character per value
//	-debug
//		  enable debug diagnostics
//	-dump
//		  dump registers and memory upon exit
//	-image filename
//		  Load program image from file filename (default "input.txt")
//	-noraw
//		  disable raw terminal IO in ASCII mode
//	-o filename
//		  save memory image to filename upon exit
//	-patch addr=value
//		  Set the value at address addr=value before starting (can be specified multiple times)
//	-trace
//		  log every executed instruction
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// -image: program image file to load on startup, as a list of comma separated
// integers. The default is a file named "input.txt" in the current directory.
//
// -with: the specified files are fed to the program as input before stdin. If
// specified multiple times, files will be fed to the program in order of
// appearance on the command line.
//
// In the default numeric mode, input values are decimal integers separated by
// white space or commas and each output value is printed on a line of its
// own.
//
// -ascii: input is read as text, one character per input request, and output
// values in the ASCII range are printed as characters. Other values are
// printed in decimal on a line of their own. Upon startup in ASCII mode,
// intcode switches the terminal to raw mode unless stdin is not a terminal or
// -noraw is specified. In raw mode, lines are edited locally before being sent
// to the program, and Ctrl-D on an empty line closes the input.
//
// -patch: change the program image before running it. For example:
//
//	intcode -image day2.txt -patch 1=12 -patch 2=2 -dump
//
// -debug: will print a full stacktrace should the VM crash, along with debug
// logs on stderr.
//
// -trace: disassemble each instruction to stderr before executing it. This
// slows down execution significantly.
//
// -dump: print the program counter, relative base and memory contents upon
// exit. The program image range is printed in image format, other addresses
// written to by the program follow as addr=value pairs.
//
// -o: save the program image range of memory upon exit.
package main
