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

// Package instructions defines the 6502 opcode table: the per-byte
// addressing mode, instruction length and declared cycle count that the
// CPU's decode stage needs before it can execute an opcode's semantics.
package instructions

import "fmt"

// Definition defines one documented 6502 instruction, keyed by opcode byte.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	Effect         EffectCategory
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undefined opcode"
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s effect=%s]",
		defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.Effect)
}

// IsBranch returns true if the instruction is one of the eight conditional
// branch instructions.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// Lookup returns the definition for an opcode byte and whether it is defined
// in the documented instruction set.
func Lookup(opcode uint8) (Definition, bool) {
	defn := definitions[opcode]
	return defn, defn.Mnemonic != ""
}
