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

// Package disassembly renders 6502 instructions as text, one instruction at
// a time, for the monitor's break-state listing.
package disassembly

import (
	"fmt"

	"github.com/nilclass/c64emu/hardware/cpu/instructions"
	"github.com/nilclass/c64emu/hardware/memory/bus"
)

// Step disassembles the instruction at addr and returns its text along with
// the address of the instruction that follows it. mem is read through the
// debug view so disassembly never disturbs I/O registers with side effects.
func Step(mem bus.DebugBus, addr uint16) (string, uint16, error) {
	opcode, err := mem.Peek(addr)
	if err != nil {
		return "", addr, err
	}

	defn, ok := instructions.Lookup(opcode)
	if !ok {
		return "", addr, fmt.Errorf("disassembly: invalid opcode $%02X at $%04X", opcode, addr)
	}

	ip := addr + 1
	operand := ""

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		// no operand bytes

	case instructions.Immediate:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" #$%02X", b)

	case instructions.Absolute:
		lo, hi, err := peekWord(mem, ip)
		if err != nil {
			return "", addr, err
		}
		ip += 2
		operand = fmt.Sprintf(" $%02X%02X", hi, lo)

	case instructions.AbsoluteX:
		lo, hi, err := peekWord(mem, ip)
		if err != nil {
			return "", addr, err
		}
		ip += 2
		operand = fmt.Sprintf(" $%02X%02X,X", hi, lo)

	case instructions.AbsoluteY:
		lo, hi, err := peekWord(mem, ip)
		if err != nil {
			return "", addr, err
		}
		ip += 2
		operand = fmt.Sprintf(" $%02X%02X,Y", hi, lo)

	case instructions.Indirect:
		lo, hi, err := peekWord(mem, ip)
		if err != nil {
			return "", addr, err
		}
		ip += 2
		operand = fmt.Sprintf(" ($%02X%02X)", hi, lo)

	case instructions.IndexedIndirect:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" ($%02X,X)", b)

	case instructions.IndirectIndexed:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" ($%02X),Y", b)

	case instructions.ZeroPage:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" $%02X", b)

	case instructions.ZeroPageX:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" $%02X,X", b)

	case instructions.ZeroPageY:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" $%02X,Y", b)

	case instructions.Relative:
		b, err := mem.Peek(ip)
		if err != nil {
			return "", addr, err
		}
		ip++
		operand = fmt.Sprintf(" $%02X", b)
	}

	return fmt.Sprintf("$%04X %s%s", addr, defn.Mnemonic, operand), ip, nil
}

func peekWord(mem bus.DebugBus, addr uint16) (lo, hi uint8, err error) {
	lo, err = mem.Peek(addr)
	if err != nil {
		return 0, 0, err
	}
	hi, err = mem.Peek(addr + 1)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}
