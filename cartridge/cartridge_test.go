// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cartridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nilclass/c64emu/cartridge"
	"github.com/nilclass/c64emu/hardware/memory/memorymap"
	"github.com/nilclass/c64emu/test"
)

type recordingLoader struct {
	loads map[uint16][]byte
}

func (r *recordingLoader) LoadROM(addr uint16, buf []byte) {
	if r.loads == nil {
		r.loads = make(map[uint16][]byte)
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	r.loads[addr] = cp
}

func TestLoadROMsInstallsEachImageAtItsFixedAddress(t *testing.T) {
	dir := t.TempDir()
	basic := filepath.Join(dir, "basic")
	kernal := filepath.Join(dir, "kernal")
	test.ExpectSuccess(t, os.WriteFile(basic, []byte{0x01, 0x02}, 0o644))
	test.ExpectSuccess(t, os.WriteFile(kernal, []byte{0x03, 0x04}, 0o644))

	mem := &recordingLoader{}
	errs := cartridge.LoadROMs(mem, cartridge.ROMPaths{Basic: basic, Kernal: kernal})

	test.ExpectEquality(t, 0, len(errs))
	test.ExpectEquality(t, []byte{0x01, 0x02}, mem.loads[memorymap.BasicROMBase])
	test.ExpectEquality(t, []byte{0x03, 0x04}, mem.loads[memorymap.KernalROMBase])
	_, hasChar := mem.loads[memorymap.CharROMBase]
	test.ExpectEquality(t, false, hasChar)
}

func TestLoadROMsCollectsErrorsForMissingFilesWithoutStopping(t *testing.T) {
	dir := t.TempDir()
	basic := filepath.Join(dir, "basic")
	test.ExpectSuccess(t, os.WriteFile(basic, []byte{0x42}, 0o644))

	mem := &recordingLoader{}
	errs := cartridge.LoadROMs(mem, cartridge.ROMPaths{
		Basic:  basic,
		Char:   filepath.Join(dir, "does-not-exist"),
		Kernal: filepath.Join(dir, "also-missing"),
	})

	test.ExpectEquality(t, 2, len(errs))
	test.ExpectEquality(t, []byte{0x42}, mem.loads[memorymap.BasicROMBase])
}
