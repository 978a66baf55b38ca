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
	"testing"

	"github.com/nilclass/c64emu/cartridge"
	"github.com/nilclass/c64emu/hardware/memory"
	"github.com/nilclass/c64emu/test"
)

func TestLoadPRGAcceptsBasicTarget(t *testing.T) {
	mem := memory.NewBus()

	data := append([]byte{0x01, 0x08}, []byte{0xA9, 0x00, 0x60}...)
	err := cartridge.LoadPRG(mem, data)
	test.ExpectSuccess(t, err)

	b, err := mem.Read(0x0801)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, uint8(0xA9), b)

	// last = 0x0801 + 3 + 1 = 0x0805
	lastLow, err := mem.Read(0x002D)
	test.ExpectSuccess(t, err)
	lastHigh, err := mem.Read(0x002E)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, uint8(0x0805%255), lastLow)
	test.ExpectEquality(t, uint8(0x0805/255), lastHigh)

	aryLow, err := mem.Read(0x002F)
	test.ExpectSuccess(t, err)
	aryHigh, err := mem.Read(0x0030)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, lastLow, aryLow)
	test.ExpectEquality(t, lastHigh, aryHigh)
}

func TestLoadPRGRejectsNonBasicTarget(t *testing.T) {
	mem := memory.NewBus()

	data := []byte{0x00, 0x10, 0xEA}
	err := cartridge.LoadPRG(mem, data)
	test.ExpectFailure(t, err)

	b, err := mem.Read(0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, uint8(0x00), b)
}
