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

package cartridge

import (
	"fmt"

	"github.com/nilclass/c64emu/hardware/memory/memorymap"
)

// ErrPRGTarget is returned when a PRG buffer's load address is not $0801.
var ErrPRGTarget = fmt.Errorf("cartridge: PRG target is not BASIC ($0801)")

// RAMWriter is the subset of the memory bus the PRG loader writes through.
type RAMWriter interface {
	Write(addr uint16, data uint8) error
}

// LoadPRG accepts a PRG-style byte buffer - a little-endian load address
// followed by the program body - and, if it targets $0801, copies the body
// into RAM and patches the BASIC variable-table pointers to point past it.
//
// The patch reproduces the source's mod-255/div-255 encoding rather than the
// conventional mod-256/div-256 split; see the design notes' open question.
func LoadPRG(mem RAMWriter, data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("cartridge: PRG buffer too short")
	}

	target := uint16(data[0]) | uint16(data[1])<<8
	if target != memorymap.BasicProgramStart {
		return ErrPRGTarget
	}

	body := data[2:]
	for i, b := range body {
		if err := mem.Write(memorymap.BasicProgramStart+uint16(i), b); err != nil {
			return err
		}
	}

	last := uint16(memorymap.BasicProgramStart) + uint16(len(body)) + 1
	lastLow := uint8(last % 255)
	lastHigh := uint8(last / 255)

	for _, addr := range []uint16{memorymap.BasicVarTab, memorymap.BasicAryTab} {
		if err := mem.Write(addr, lastLow); err != nil {
			return err
		}
		if err := mem.Write(addr+1, lastHigh); err != nil {
			return err
		}
	}

	return nil
}
