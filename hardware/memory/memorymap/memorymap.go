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

// Package memorymap centralises the C64 address constants that the memory
// bus, CPU and VIC-II all need to agree on.
package memorymap

// processor port, at the bottom of the zero page.
const (
	ProcessorPortDDR = uint16(0x0000)
	ProcessorPort    = uint16(0x0001)
)

// processor port bit meanings.
const (
	LORAM  = uint8(0x01)
	HIRAM  = uint8(0x02)
	CHAREN = uint8(0x04)
)

// overlaid ROM windows.
const (
	BasicROMBase  = uint16(0xA000)
	BasicROMSize  = uint16(0x2000)
	CharROMBase   = uint16(0xD000)
	CharROMSize   = uint16(0x1000)
	KernalROMBase = uint16(0xE000)
	KernalROMSize = uint16(0x2000)
)

// the shared I/O page. VIC-II, the two CIAs, color RAM and the SID (unused by
// this emulator) are all mirrored within it.
const (
	IOPageBase    = uint16(0xD000)
	IOPageSize    = uint16(0x1000)
	VICRegisters  = uint16(0xD000)
	VICRegistersN = uint16(0x2E)
	ColorRAMBase  = uint16(0xD800)
	CIA1Base      = uint16(0xDC00)
	CIA2Base      = uint16(0xDD00)
)

// CIA register offsets used by the keyboard bridge and VIC bank select.
const (
	CIA1PortA = uint16(0xDC00) // keyboard column mask (active-low, write)
	CIA1PortB = uint16(0xDC01) // keyboard row scan (read)
	CIA2PortA = uint16(0xDD00) // VIC bank select, low 2 bits
)

// stack page and interrupt vectors.
const (
	StackPage  = uint16(0x0100)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// BASIC program area, used by the PRG loader.
const (
	BasicProgramStart = uint16(0x0801)
	BasicTxtTab       = uint16(0x002B)
	BasicVarTab       = uint16(0x002D)
	BasicAryTab       = uint16(0x002F)
)

// VICBankSize is the size of one of the four 16 KiB windows of RAM the
// VIC-II can be pointed at via CIA2.
const VICBankSize = uint16(0x4000)
