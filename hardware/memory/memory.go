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

// Package memory implements the C64's banked 64KiB address space: RAM, the
// three overlaid ROM windows, and the shared I/O page that the CPU, the CIA
// keyboard bridge and the VIC-II all read through different rules.
package memory

import (
	"fmt"

	"github.com/nilclass/c64emu/hardware/memory/memorymap"
	"github.com/nilclass/c64emu/keyboard"
	"github.com/nilclass/c64emu/logger"
)

// ErrRegisterRange is returned when a CIA, VIC or I/O-page access falls
// outside the address range that view covers. It is returned as an error,
// never panicked with.
var ErrRegisterRange = fmt.Errorf("memory: register address out of range")

// Bus owns the three byte arrays that make up the C64's address space and
// implements every capability view bus.CPUBus, bus.CIABus, bus.VICBus and
// bus.DebugBus define.
type Bus struct {
	ram [65536]byte
	rom [65536]byte
	io  [4096]byte

	keys    map[keyboard.Key]bool
	colMask uint8
}

// NewBus returns a Bus in its documented power-on state: the processor port
// direction register and data register hold their C64 reset values, and
// every other byte of RAM, ROM and I/O is zero.
func NewBus() *Bus {
	b := &Bus{
		keys: make(map[keyboard.Key]bool),
	}
	b.ram[memorymap.ProcessorPortDDR] = 0b101111
	b.ram[memorymap.ProcessorPort] = 0b111
	b.colMask = 0xFF
	return b
}

// LoadROM bulk-copies buf into the ROM array starting at addr.
func (b *Bus) LoadROM(addr uint16, buf []byte) {
	logger.Logf("memory", "loading ROM at $%04X (%d bytes)", addr, len(buf))
	copy(b.rom[int(addr):], buf)
}

// LoadRAM bulk-copies buf into the RAM array starting at addr.
func (b *Bus) LoadRAM(addr uint16, buf []byte) {
	logger.Logf("memory", "loading RAM at $%04X (%d bytes)", addr, len(buf))
	copy(b.ram[int(addr):], buf)
}

// SetPressedKeys replaces the bus's view of which C64 keys are currently
// held down, as supplied by the host keyboard collaborator at each frame
// boundary.
func (b *Bus) SetPressedKeys(keys map[keyboard.Key]bool) {
	b.keys = keys
}

func (b *Bus) processorPort() uint8 {
	return b.ram[memorymap.ProcessorPort]
}

// Read implements bus.CPUBus.
func (b *Bus) Read(addr uint16) (uint8, error) {
	port := b.processorPort()
	switch {
	case addr == memorymap.ProcessorPort || addr == memorymap.ProcessorPortDDR:
		return b.ram[addr], nil
	case addr >= memorymap.BasicROMBase && addr < memorymap.BasicROMBase+memorymap.BasicROMSize:
		if port&memorymap.LORAM != 0 {
			return b.rom[addr], nil
		}
		return b.ram[addr], nil
	case addr >= memorymap.IOPageBase && addr < memorymap.IOPageBase+memorymap.IOPageSize:
		if port&memorymap.CHAREN != 0 {
			return b.readRegister(addr)
		}
		return b.rom[addr], nil
	case addr >= memorymap.KernalROMBase:
		if port&memorymap.HIRAM != 0 {
			return b.rom[addr], nil
		}
		return b.ram[addr], nil
	default:
		return b.ram[addr], nil
	}
}

// ReadWord implements bus.CPUBus: a little-endian pair of Read calls.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Write implements bus.CPUBus. Writes always land in RAM, except within the
// I/O window when CHAREN selects the register page.
func (b *Bus) Write(addr uint16, data uint8) error {
	switch {
	case addr == memorymap.ProcessorPort || addr == memorymap.ProcessorPortDDR:
		b.ram[addr] = data
	case addr >= memorymap.IOPageBase && addr < memorymap.IOPageBase+memorymap.IOPageSize:
		if b.processorPort()&memorymap.CHAREN != 0 {
			return b.writeRegister(addr, data)
		}
		b.ram[addr] = data
	default:
		b.ram[addr] = data
	}
	return nil
}

func (b *Bus) readRegister(addr uint16) (uint8, error) {
	if addr == memorymap.CIA1PortB {
		return keyboard.Scan(b.keys, b.colMask), nil
	}
	if addr < memorymap.IOPageBase || addr >= memorymap.IOPageBase+memorymap.IOPageSize {
		return 0, fmt.Errorf("%w: $%04X", ErrRegisterRange, addr)
	}
	return b.io[addr-memorymap.IOPageBase], nil
}

func (b *Bus) writeRegister(addr uint16, val uint8) error {
	if addr < memorymap.IOPageBase || addr >= memorymap.IOPageBase+memorymap.IOPageSize {
		return fmt.Errorf("%w: $%04X", ErrRegisterRange, addr)
	}
	b.io[addr-memorymap.IOPageBase] = val
	if addr == memorymap.CIA1PortA {
		// column mask is active-low; stash the raw byte, keyboard.Scan does
		// the inversion so the $FF all-released case stays obvious here.
		b.colMask = val
	}
	return nil
}

// CIARead implements bus.CIABus.
func (b *Bus) CIARead(addr uint16) (uint8, error) {
	if addr < memorymap.CIA1Base || addr > 0xDDFF {
		return 0, fmt.Errorf("%w: CIA read $%04X", ErrRegisterRange, addr)
	}
	return b.readRegister(addr)
}

// CIAWrite implements bus.CIABus.
func (b *Bus) CIAWrite(addr uint16, val uint8) error {
	if addr < memorymap.CIA1Base || addr > 0xDDFF {
		return fmt.Errorf("%w: CIA write $%04X", ErrRegisterRange, addr)
	}
	return b.writeRegister(addr, val)
}

func (b *Bus) vicBank() uint16 {
	port, _ := b.readRegister(memorymap.CIA2PortA)
	return uint16(3 - (port & 0x03))
}

// VICReadByte implements bus.VICBus: a byte from the VIC's current 16KiB
// bank, with the character ROM substituted at $1000-$1FFF for banks 0 and 2.
func (b *Bus) VICReadByte(addr uint16) (uint8, error) {
	if addr >= memorymap.VICBankSize {
		return 0, fmt.Errorf("%w: VIC read $%04X exceeds 16KiB window", ErrRegisterRange, addr)
	}
	bank := b.vicBank()
	if addr >= 0x1000 && addr < 0x2000 && (bank == 0 || bank == 2) {
		return b.rom[addr+0xC000], nil
	}
	return b.ram[addr+bank*memorymap.VICBankSize], nil
}

// VICReadVideoMatrix implements bus.VICBus: pairs a screen-code byte from
// the current bank with its color-RAM nibble.
func (b *Bus) VICReadVideoMatrix(addr uint16) (uint8, uint8, error) {
	if addr >= memorymap.VICBankSize {
		return 0, 0, fmt.Errorf("%w: VIC read $%04X exceeds 16KiB window", ErrRegisterRange, addr)
	}
	bank := b.vicBank()
	ch := b.ram[addr+bank*memorymap.VICBankSize]
	colorIx := addr % 0x0400
	color := b.io[memorymap.ColorRAMBase-memorymap.IOPageBase+colorIx] & 0x0F
	return ch, color, nil
}

// VICReadRegister implements bus.VICBus.
func (b *Bus) VICReadRegister(addr uint16) (uint8, error) {
	if addr < memorymap.VICRegisters || addr > memorymap.VICRegisters+memorymap.VICRegistersN {
		return 0, fmt.Errorf("%w: VIC register read $%04X", ErrRegisterRange, addr)
	}
	return b.readRegister(addr)
}

// VICWriteRegister implements bus.VICBus.
func (b *Bus) VICWriteRegister(addr uint16, val uint8) error {
	if addr < memorymap.VICRegisters || addr > memorymap.VICRegisters+memorymap.VICRegistersN {
		return fmt.Errorf("%w: VIC register write $%04X", ErrRegisterRange, addr)
	}
	return b.writeRegister(addr, val)
}

// Peek implements bus.DebugBus: like Read but without side effects (there
// are none to avoid here - kept separate so the monitor isn't coupled to
// CPUBus's error semantics).
func (b *Bus) Peek(addr uint16) (uint8, error) {
	return b.Read(addr)
}

// Poke implements bus.DebugBus.
func (b *Bus) Poke(addr uint16, val uint8) error {
	return b.Write(addr, val)
}
