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

package vm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	img, err := vm.Parse(strings.NewReader(" 1,-2, 3 ,\n4\n\n"))
	require.NoError(t, err)
	require.Equal(t, C{1, -2, 3, 4}, C(img))

	for _, src := range []string{"", " \n", "1,,2", "1,x", "1,2,", "9223372036854775808"} {
		_, err = vm.Parse(strings.NewReader(src))
		require.Error(t, err, "%q", src)
	}
	_, err = vm.Parse(strings.NewReader("1,x"))
	require.Contains(t, err.Error(), "value #1")
}

func TestFormat(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, vm.Format(&b, C{1, -2, 1 << 40}))
	require.Equal(t, "1,-2,1099511627776\n", b.String())
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "quine.txt")
	require.NoError(t, vm.Save(name, quine))
	img, err := vm.Load(name)
	require.NoError(t, err)
	require.Equal(t, quine, C(img))

	_, err = vm.Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(errors.Cause(err)))

	require.NoError(t, os.WriteFile(name, []byte("1,2,foo"), 0644))
	_, err = vm.Load(name)
	require.Error(t, err)
	require.Contains(t, err.Error(), name)

	// saving a halted program's memory
	i := newInstance(t, C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	require.NoError(t, i.Start())
	require.NoError(t, vm.Save(name, i.Memory().Slice(0, i.ImageSize())))
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, "3500,9,10,70,2,3,11,0,99,30,40,50\n", string(b))

	err = vm.Save(filepath.Join(dir, "nodir", "x.txt"), quine)
	require.Error(t, err)
}
